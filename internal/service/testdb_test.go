package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Giuseppe84/vespera/internal/models"
)

// newTestDB opens an isolated in-memory sqlite database, one per test, and
// runs the full migration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

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
	require.NoError(t, err)
	return db
}

type catalogFixture struct {
	Lamp    models.Lamp // configurable, base 89.00
	Plain   models.Lamp // not configurable, base 49.00
	Shade   models.Component
	Base    models.Component
	Stem    models.Component
	LED     models.ElectricalPart
	Variant models.LampVariant // 94.00, in stock
	SoldOut models.LampVariant // 89.00, stock 0
}

// seedCatalog creates a small catalog: a configurable lamp with two variants,
// three components with edges shade-base and base-stem (shade-stem is left
// out on purpose), and one electrical part.
func seedCatalog(t *testing.T, db *gorm.DB) catalogFixture {
	t.Helper()

	f := catalogFixture{
		Lamp: models.Lamp{
			Name: "Vespera Classic", Slug: "vespera-classic", SKU: "VES-CLS-001",
			BasePrice: 89.00, IsActive: true, IsConfigurable: true,
		},
		Plain: models.Lamp{
			Name: "Vespera Mini", Slug: "vespera-mini", SKU: "VES-MIN-001",
			BasePrice: 49.00, IsActive: true, IsConfigurable: false,
		},
		Shade: models.Component{Name: "Cone Shade Hex", Slug: "cone-shade-hex", UnitCost: 18.00, IsActive: true},
		Base:  models.Component{Name: "Round Base", Slug: "round-base", UnitCost: 14.00, IsActive: true},
		Stem:  models.Component{Name: "Medium Stem", Slug: "medium-stem", UnitCost: 8.00, IsActive: true},
		LED:   models.ElectricalPart{Name: "LED Bulb E27 Warm", Slug: "led-e27-warm", SKU: "ELEC-E27-001", UnitCost: 12.00, StockQty: 100, IsActive: true},
	}

	require.NoError(t, db.Create(&f.Lamp).Error)
	require.NoError(t, db.Create(&f.Plain).Error)
	require.NoError(t, db.Create(&f.Shade).Error)
	require.NoError(t, db.Create(&f.Base).Error)
	require.NoError(t, db.Create(&f.Stem).Error)
	require.NoError(t, db.Create(&f.LED).Error)

	f.Variant = models.LampVariant{LampID: f.Lamp.ID, Name: "Sage Green", SKU: "VES-CLS-001-VS", Price: 94.00, StockQty: 5, IsActive: true}
	f.SoldOut = models.LampVariant{LampID: f.Lamp.ID, Name: "Matte Black", SKU: "VES-CLS-001-NO", Price: 89.00, StockQty: 0, IsActive: true}
	require.NoError(t, db.Create(&f.Variant).Error)
	require.NoError(t, db.Create(&f.SoldOut).Error)

	edges := []models.ComponentCompatibility{
		{ComponentAID: f.Shade.ID, ComponentBID: f.Base.ID},
		{ComponentAID: f.Base.ID, ComponentBID: f.Stem.ID},
	}
	require.NoError(t, db.Create(&edges).Error)

	links := []models.LampComponent{
		{LampID: f.Lamp.ID, ComponentID: f.Shade.ID, Quantity: 1, IsSwappable: true, SortOrder: 0, PositionLabel: "Shade"},
		{LampID: f.Lamp.ID, ComponentID: f.Base.ID, Quantity: 1, IsSwappable: true, SortOrder: 1, PositionLabel: "Base"},
	}
	require.NoError(t, db.Create(&links).Error)
	require.NoError(t, db.Create(&models.LampElectricalPart{LampID: f.Lamp.ID, PartID: f.LED.ID, Quantity: 1}).Error)

	return f
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createAddress(t *testing.T, db *gorm.DB, userID uint, addrType string) models.Address {
	t.Helper()
	address := models.Address{
		UserID: userID, Type: addrType, FullName: "Mario Rossi",
		Line1: "Via Roma 1", City: "Torino", Province: "TO", PostalCode: "10100", Country: "IT",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func newConfigurator(db *gorm.DB) (*CatalogService, *PricingService, *ConfiguratorService) {
	catalog := NewCatalogService(db)
	pricing := NewPricingService(db, catalog)
	return catalog, pricing, NewConfiguratorService(db, catalog, pricing)
}
