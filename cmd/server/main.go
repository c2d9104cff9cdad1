package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Giuseppe84/vespera/config"
	"github.com/Giuseppe84/vespera/internal/handler"
	"github.com/Giuseppe84/vespera/internal/middleware"
	"github.com/Giuseppe84/vespera/internal/models"
	"github.com/Giuseppe84/vespera/internal/service"
	"github.com/Giuseppe84/vespera/pkg/database"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	db, err := database.Connect(config.AppConfig.Database)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")

	err = db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Lamp{},
		&models.LampVariant{},
		&models.Component{},
		&models.ElectricalPart{},
		&models.ComponentCompatibility{},
		&models.LampComponent{},
		&models.LampElectricalPart{},
		&models.LampConfiguration{},
		&models.ConfigurationSlot{},
		&models.ConfigurationElectricalPart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.ShippingProvider{},
		&models.Shipment{},
		&models.OrderSequence{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.Seed(db, config.AppConfig)

	// 4. Initialize Router
	r := gin.Default()

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 5. Services
	catalog := service.NewCatalogService(db)
	compatibility := service.NewCompatibilityService(db)
	pricing := service.NewPricingService(db, catalog)
	configurator := service.NewConfiguratorService(db, catalog, pricing)
	cart := service.NewCartService(db, catalog)
	orders := service.NewOrderService(db, service.CheckoutPolicy{
		OrderPrefix:     config.AppConfig.Checkout.OrderPrefix,
		FreeShippingMin: config.AppConfig.Checkout.FreeShippingMin,
		ShippingFee:     config.AppConfig.Checkout.ShippingFee,
		TaxRate:         config.AppConfig.Checkout.TaxRate,
		Hardened:        config.AppConfig.Checkout.Hardened,
	})

	// 6. Setup Routes
	authHandler := handler.NewAuthHandler(db)
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", middleware.AuthMiddleware(), authHandler.Me)
	}

	catalogHandler := handler.NewCatalogHandler(db)
	lampRoutes := r.Group("/api/v1/lamps")
	{
		lampRoutes.GET("", catalogHandler.ListLamps)
		lampRoutes.GET("/:slug", catalogHandler.GetLamp)
	}

	configuratorHandler := handler.NewConfiguratorHandler(configurator, pricing, compatibility)

	// Public configurator reads: component palette, price preview,
	// compatibility check. Nothing here persists.
	r.GET("/api/v1/configurator/lamps/:lampId/components", configuratorHandler.AvailableComponents)
	r.POST("/api/v1/configurator/preview", configuratorHandler.PreviewPrice)
	r.POST("/api/v1/configurator/compatibility", configuratorHandler.CheckCompatibility)

	configRoutes := r.Group("/api/v1/configurator")
	configRoutes.Use(middleware.AuthMiddleware())
	{
		configRoutes.GET("/my", configuratorHandler.ListMine)
		configRoutes.POST("", configuratorHandler.Create)
		configRoutes.PATCH("/slots/:slotId", configuratorHandler.UpdateSlot)
		configRoutes.GET("/:id", configuratorHandler.Get)
		configRoutes.PATCH("/:id", configuratorHandler.Update)
		configRoutes.POST("/:id/duplicate", configuratorHandler.Duplicate)
		configRoutes.DELETE("/:id", configuratorHandler.Archive)
	}

	cartHandler := handler.NewCartHandler(cart)
	cartRoutes := r.Group("/api/v1/cart")
	cartRoutes.Use(middleware.AuthMiddleware())
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.GET("/count", cartHandler.GetCount)
		cartRoutes.POST("", cartHandler.AddItem)
		cartRoutes.PATCH("/:itemId", cartHandler.UpdateItem)
		cartRoutes.DELETE("/:itemId", cartHandler.RemoveItem)
		cartRoutes.DELETE("", cartHandler.ClearCart)
	}

	addressHandler := handler.NewAddressHandler(db)
	addressRoutes := r.Group("/api/v1/addresses")
	addressRoutes.Use(middleware.AuthMiddleware())
	{
		addressRoutes.GET("", addressHandler.List)
		addressRoutes.POST("", addressHandler.Create)
		addressRoutes.DELETE("/:id", addressHandler.Delete)
	}

	orderHandler := handler.NewOrderHandler(orders)
	orderRoutes := r.Group("/api/v1/orders")
	orderRoutes.Use(middleware.AuthMiddleware())
	{
		orderRoutes.POST("", orderHandler.Create)
		orderRoutes.GET("/my", orderHandler.ListMine)
		orderRoutes.GET("/my/:id", orderHandler.GetMine)
		orderRoutes.PATCH("/my/:id/cancel", orderHandler.Cancel)
	}

	adminOrderRoutes := r.Group("/api/v1/admin/orders")
	adminOrderRoutes.Use(middleware.AuthMiddleware(models.RoleAdmin, models.RoleManager))
	{
		adminOrderRoutes.GET("", orderHandler.ListAll)
		adminOrderRoutes.GET("/stats", orderHandler.Stats)
		adminOrderRoutes.PATCH("/:id/status", orderHandler.UpdateStatus)
		adminOrderRoutes.POST("/:id/shipments", orderHandler.AddShipment)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 7. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
