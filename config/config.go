package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Checkout CheckoutConfig
	Defaults DefaultsConfig
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string
	JWTExpirationHours int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

// CheckoutConfig holds the flat-rate shop policy applied by the checkout
// transaction. Hardened opts into the race-safe order-number allocator and
// coupon counter; the default keeps the legacy behavior.
type CheckoutConfig struct {
	OrderPrefix     string
	FreeShippingMin float64
	ShippingFee     float64
	TaxRate         float64
	Hardened        bool
}

type DefaultsConfig struct {
	AdminEmail    string
	AdminPassword string
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "PORT")
	viper.BindEnv("DATABASE_URL")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 24)
	viper.SetDefault("ORDER_PREFIX", "VES")
	viper.SetDefault("FREE_SHIPPING_MIN", 100.0)
	viper.SetDefault("SHIPPING_FEE", 9.90)
	viper.SetDefault("TAX_RATE", 0.22)
	viper.SetDefault("CHECKOUT_HARDENED", false)

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		Checkout: CheckoutConfig{
			OrderPrefix:     viper.GetString("ORDER_PREFIX"),
			FreeShippingMin: viper.GetFloat64("FREE_SHIPPING_MIN"),
			ShippingFee:     viper.GetFloat64("SHIPPING_FEE"),
			TaxRate:         viper.GetFloat64("TAX_RATE"),
			Hardened:        viper.GetBool("CHECKOUT_HARDENED"),
		},
		Defaults: DefaultsConfig{
			AdminEmail:    viper.GetString("ADMIN_EMAIL"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	log.Printf("Configuration loaded:")
	log.Printf("- Server Port: %s", AppConfig.Server.Port)
	log.Printf("- Server Env: %s", AppConfig.Server.Env)
	log.Printf("- Database Name: %s", AppConfig.Database.Name)
	log.Printf("- Order Prefix: %s", AppConfig.Checkout.OrderPrefix)
	log.Printf("- Checkout Hardened: %t", AppConfig.Checkout.Hardened)
}
