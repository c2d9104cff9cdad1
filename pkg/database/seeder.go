package database

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Giuseppe84/vespera/config"
	"github.com/Giuseppe84/vespera/internal/models"
	"github.com/Giuseppe84/vespera/internal/utils"
)

// Seed creates the admin account and a demo dataset: components with their
// compatibility edges, electrical parts, configurable lamps with variants,
// coupons and shipping providers. Idempotent via FirstOrCreate on unique
// keys, safe to run at every startup.
func Seed(db *gorm.DB, cfg *config.Config) {
	seedAdmin(db, cfg)
	components := seedComponents(db)
	parts := seedElectricalParts(db)
	seedLamps(db, components, parts)
	seedCoupons(db)
	seedShippingProviders(db)
}

func seedAdmin(db *gorm.DB, cfg *config.Config) {
	email := cfg.Defaults.AdminEmail
	if email == "" {
		return
	}

	var admin models.User
	err := db.Where("email = ?", email).First(&admin).Error
	if err != gorm.ErrRecordNotFound {
		return
	}

	hash, err := utils.HashPassword(cfg.Defaults.AdminPassword)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}
	admin = models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Vespera",
		LastName:     "Admin",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Println("Admin user seeded.")
}

func seedComponents(db *gorm.DB) map[string]models.Component {
	specs := []models.Component{
		{Name: "Cone Shade Hex", Slug: "cone-shade-hex", UnitCost: 18.00},
		{Name: "Sphere Shade Voronoi", Slug: "sphere-shade-voronoi", UnitCost: 24.00},
		{Name: "Round Base", Slug: "round-base", UnitCost: 14.00},
		{Name: "Square Base", Slug: "square-base", UnitCost: 12.00},
		{Name: "Medium Stem", Slug: "medium-stem", UnitCost: 8.00},
		{Name: "Tall Stem", Slug: "tall-stem", UnitCost: 12.00},
		{Name: "Angled Joint", Slug: "angled-joint", UnitCost: 4.50},
	}

	bySlug := make(map[string]models.Component, len(specs))
	for _, spec := range specs {
		var component models.Component
		if err := db.Where(models.Component{Slug: spec.Slug}).Attrs(spec).FirstOrCreate(&component).Error; err != nil {
			log.Printf("Failed to seed component %s: %v", spec.Slug, err)
			continue
		}
		bySlug[spec.Slug] = component
	}

	edges := [][2]string{
		{"cone-shade-hex", "round-base"},
		{"cone-shade-hex", "square-base"},
		{"cone-shade-hex", "medium-stem"},
		{"cone-shade-hex", "tall-stem"},
		{"sphere-shade-voronoi", "round-base"},
		{"sphere-shade-voronoi", "medium-stem"},
		{"sphere-shade-voronoi", "tall-stem"},
		{"round-base", "medium-stem"},
		{"round-base", "tall-stem"},
		{"square-base", "medium-stem"},
		{"square-base", "tall-stem"},
		{"medium-stem", "angled-joint"},
		{"tall-stem", "angled-joint"},
	}
	for _, edge := range edges {
		a, okA := bySlug[edge[0]]
		b, okB := bySlug[edge[1]]
		if !okA || !okB {
			continue
		}
		var existing models.ComponentCompatibility
		err := db.Where(models.ComponentCompatibility{ComponentAID: a.ID, ComponentBID: b.ID}).
			FirstOrCreate(&existing).Error
		if err != nil {
			log.Printf("Failed to seed compatibility %s-%s: %v", edge[0], edge[1], err)
		}
	}
	return bySlug
}

func seedElectricalParts(db *gorm.DB) map[string]models.ElectricalPart {
	specs := []models.ElectricalPart{
		{Name: "LED Bulb E27 Warm", Slug: "led-e27-warm", SKU: "ELEC-E27-001", Voltage: 230, Wattage: 60, UnitCost: 12.00, StockQty: 150},
		{Name: "LED Bulb E27 Dimmer", Slug: "led-e27-dimmer", SKU: "ELEC-E27-DIM-001", Voltage: 230, Wattage: 60, UnitCost: 18.50, StockQty: 80},
		{Name: "LED Strip COB 50cm 2700K", Slug: "led-strip-cob-50cm", SKU: "ELEC-LED-COB-50", Voltage: 12, Wattage: 8, UnitCost: 9.00, StockQty: 200},
		{Name: "Power Supply 12V 2A EU", Slug: "power-supply-12v-2a", SKU: "ELEC-PWR-12V-2A", Voltage: 12, Wattage: 24, UnitCost: 7.50, StockQty: 120},
	}

	bySlug := make(map[string]models.ElectricalPart, len(specs))
	for _, spec := range specs {
		var part models.ElectricalPart
		if err := db.Where(models.ElectricalPart{Slug: spec.Slug}).Attrs(spec).FirstOrCreate(&part).Error; err != nil {
			log.Printf("Failed to seed electrical part %s: %v", spec.Slug, err)
			continue
		}
		bySlug[spec.Slug] = part
	}
	return bySlug
}

func seedLamps(db *gorm.DB, components map[string]models.Component, parts map[string]models.ElectricalPart) {
	type lampSpec struct {
		lamp       models.Lamp
		variants   []models.LampVariant
		positions  [][2]string // component slug, position label
		partSlugs  []string
	}

	specs := []lampSpec{
		{
			lamp: models.Lamp{
				Name: "Vespera Classic", Slug: "vespera-classic", SKU: "VES-CLS-001",
				ShortDescription: "Iconic table lamp with cone shade and round base",
				BasePrice:        89.00, IsActive: true, IsFeatured: true, IsConfigurable: true, WeightKg: 0.9,
			},
			variants: []models.LampVariant{
				{Name: "Milk White / Standard", SKU: "VES-CLS-001-BL", Price: 89.00, StockQty: 25, IsActive: true},
				{Name: "Matte Black / Standard", SKU: "VES-CLS-001-NO", Price: 89.00, StockQty: 18, IsActive: true},
				{Name: "Sage Green / Standard", SKU: "VES-CLS-001-VS", Price: 94.00, StockQty: 10, IsActive: true},
			},
			positions: [][2]string{{"cone-shade-hex", "Shade"}, {"round-base", "Base"}, {"medium-stem", "Stem"}},
			partSlugs: []string{"led-e27-warm"},
		},
		{
			lamp: models.Lamp{
				Name: "Vespera Sfera", Slug: "vespera-sfera", SKU: "VES-SFR-001",
				ShortDescription: "Sphere shade with voronoi pattern for dramatic light play",
				BasePrice:        105.00, IsActive: true, IsFeatured: true, IsConfigurable: true, WeightKg: 1.1,
			},
			positions: [][2]string{{"sphere-shade-voronoi", "Shade"}, {"round-base", "Base"}, {"tall-stem", "Stem"}},
			partSlugs: []string{"led-e27-dimmer"},
		},
		{
			lamp: models.Lamp{
				Name: "Vespera Industrial", Slug: "vespera-industrial", SKU: "VES-IND-001",
				ShortDescription: "Industrial style with tall stem and square base",
				BasePrice:        119.00, IsActive: true, IsConfigurable: true, WeightKg: 1.3,
			},
			positions: [][2]string{{"cone-shade-hex", "Shade"}, {"square-base", "Base"}, {"tall-stem", "Stem"}, {"angled-joint", "Joint"}},
			partSlugs: []string{"led-e27-warm"},
		},
	}

	for _, spec := range specs {
		var lamp models.Lamp
		if err := db.Where(models.Lamp{Slug: spec.lamp.Slug}).Attrs(spec.lamp).FirstOrCreate(&lamp).Error; err != nil {
			log.Printf("Failed to seed lamp %s: %v", spec.lamp.Slug, err)
			continue
		}

		for _, v := range spec.variants {
			v.LampID = lamp.ID
			var variant models.LampVariant
			if err := db.Where(models.LampVariant{SKU: v.SKU}).Attrs(v).FirstOrCreate(&variant).Error; err != nil {
				log.Printf("Failed to seed variant %s: %v", v.SKU, err)
			}
		}

		for i, position := range spec.positions {
			component, ok := components[position[0]]
			if !ok {
				continue
			}
			link := models.LampComponent{
				LampID: lamp.ID, ComponentID: component.ID,
				Quantity: 1, IsSwappable: true, SortOrder: i, PositionLabel: position[1],
			}
			var existing models.LampComponent
			err := db.Where(models.LampComponent{LampID: lamp.ID, ComponentID: component.ID}).
				Attrs(link).FirstOrCreate(&existing).Error
			if err != nil {
				log.Printf("Failed to link component %s to %s: %v", position[0], lamp.Slug, err)
			}
		}

		for _, slug := range spec.partSlugs {
			part, ok := parts[slug]
			if !ok {
				continue
			}
			var existing models.LampElectricalPart
			err := db.Where(models.LampElectricalPart{LampID: lamp.ID, PartID: part.ID}).
				Attrs(models.LampElectricalPart{LampID: lamp.ID, PartID: part.ID, Quantity: 1}).
				FirstOrCreate(&existing).Error
			if err != nil {
				log.Printf("Failed to link part %s to %s: %v", slug, lamp.Slug, err)
			}
		}
	}
}

func seedCoupons(db *gorm.DB) {
	expiry := func(year int, month time.Month, day int) *time.Time {
		t := time.Date(year, month, day, 23, 59, 59, 0, time.UTC)
		return &t
	}

	coupons := []models.Coupon{
		{Code: "BENVENUTO10", Description: "10% off for new customers", DiscountPercent: 10, MinOrderAmount: 50, MaxUses: 500, IsActive: true, ExpiresAt: expiry(2026, time.December, 31)},
		{Code: "ESTATE20", Description: "20 off orders over 150", DiscountFixed: 20, MinOrderAmount: 150, MaxUses: 100, IsActive: true, ExpiresAt: expiry(2026, time.September, 30)},
		{Code: "SPEDIZIONEGRATIS", Description: "Free shipping (fixed 9.90 off)", DiscountFixed: 9.90, IsActive: true},
	}
	for _, spec := range coupons {
		var coupon models.Coupon
		if err := db.Where(models.Coupon{Code: spec.Code}).Attrs(spec).FirstOrCreate(&coupon).Error; err != nil {
			log.Printf("Failed to seed coupon %s: %v", spec.Code, err)
		}
	}
}

func seedShippingProviders(db *gorm.DB) {
	providers := []models.ShippingProvider{
		{Name: "GLS Italy", Code: "GLS", IsActive: true},
		{Name: "BRT - Bartolini", Code: "BRT", IsActive: true},
		{Name: "DHL Express", Code: "DHL", IsActive: true},
		{Name: "Poste Italiane", Code: "SDA", IsActive: true},
	}
	for _, spec := range providers {
		var provider models.ShippingProvider
		if err := db.Where(models.ShippingProvider{Code: spec.Code}).Attrs(spec).FirstOrCreate(&provider).Error; err != nil {
			log.Printf("Failed to seed shipping provider %s: %v", spec.Code, err)
		}
	}
}
