package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Giuseppe84/vespera/internal/models"
)

type CreateConfigurationInput struct {
	LampID          uint              `json:"lampId" binding:"required"`
	Name            string            `json:"name"`
	Notes           string            `json:"notes"`
	Slots           []SlotInput       `json:"slots" binding:"required,dive"`
	ElectricalParts []ElectricalInput `json:"electricalParts" binding:"omitempty,dive"`
}

type UpdateConfigurationInput struct {
	Name            *string           `json:"name"`
	Notes           *string           `json:"notes"`
	Slots           []SlotInput       `json:"slots" binding:"omitempty,dive"`
	ElectricalParts []ElectricalInput `json:"electricalParts" binding:"omitempty,dive"`
}

type UpdateSlotInput struct {
	ColorHex  *string `json:"colorHex"`
	ColorName *string `json:"colorName"`
	Quantity  *int    `json:"quantity" binding:"omitempty,min=1"`
}

type AvailableComponentsResult struct {
	Components      []models.LampComponent          `json:"components"`
	ElectricalParts []models.LampElectricalPart     `json:"electricalParts"`
	Compatibility   []models.ComponentCompatibility `json:"compatibility"`
}

// ConfiguratorService owns the configuration lifecycle. Totals always come
// from PricingService so saved prices match what the preview showed.
type ConfiguratorService struct {
	db      *gorm.DB
	catalog *CatalogService
	pricing *PricingService
}

func NewConfiguratorService(db *gorm.DB, catalog *CatalogService, pricing *PricingService) *ConfiguratorService {
	return &ConfiguratorService{db: db, catalog: catalog, pricing: pricing}
}

// Create saves a new DRAFT configuration. Slot and line unit prices are
// snapshotted from the pricing breakdown, which lists slots first and then
// electrical lines in input order.
func (s *ConfiguratorService) Create(userID uint, in CreateConfigurationInput) (*models.LampConfiguration, error) {
	lamp, err := s.catalog.Lamp(in.LampID)
	if err != nil {
		return nil, err
	}
	if !lamp.IsConfigurable {
		return nil, badRequest("this lamp does not support configuration")
	}

	pricing, err := s.pricing.Calculate(in.LampID, in.Slots, in.ElectricalParts)
	if err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = fmt.Sprintf("La mia %s", lamp.Name)
	}

	config := models.LampConfiguration{
		UserID:          userID,
		LampID:          in.LampID,
		Name:            name,
		Notes:           in.Notes,
		TotalPrice:      pricing.Total,
		Status:          models.ConfigStatusDraft,
		Slots:           buildSlots(in.Slots, pricing.Breakdown),
		ElectricalParts: buildElectricalLines(in.ElectricalParts, pricing.Breakdown[len(in.Slots):]),
	}

	if err := s.db.Create(&config).Error; err != nil {
		return nil, err
	}
	return s.load(config.ID)
}

// FindAllByUser lists the user's configurations, newest-updated first.
// ARCHIVED ones are hidden.
func (s *ConfiguratorService) FindAllByUser(userID uint) ([]models.LampConfiguration, error) {
	var configs []models.LampConfiguration
	err := s.db.
		Where("user_id = ? AND status <> ?", userID, models.ConfigStatusArchived).
		Preload("Lamp").
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Preload("Slots.Component").
		Order("updated_at desc").
		Find(&configs).Error
	if err != nil {
		return nil, err
	}
	return configs, nil
}

func (s *ConfiguratorService) FindOne(id, userID uint) (*models.LampConfiguration, error) {
	config, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if config.UserID != userID {
		return nil, forbidden("access denied")
	}
	return config, nil
}

// Update applies a patch to a non-ORDERED configuration and marks it SAVED.
// When slots are supplied the total is recomputed and slots are fully
// replaced, not merged: any slot not resubmitted is lost. Electrical lines
// are replaced when supplied.
func (s *ConfiguratorService) Update(id, userID uint, in UpdateConfigurationInput) (*models.LampConfiguration, error) {
	config, err := s.FindOne(id, userID)
	if err != nil {
		return nil, err
	}
	if config.Status == models.ConfigStatusOrdered {
		return nil, badRequest("cannot modify a configuration that has been ordered")
	}

	totalPrice := config.TotalPrice
	var pricing *PricingResult
	if in.Slots != nil {
		pricing, err = s.pricing.Calculate(config.LampID, in.Slots, in.ElectricalParts)
		if err != nil {
			return nil, err
		}
		totalPrice = pricing.Total
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"total_price": totalPrice,
			"status":      models.ConfigStatusSaved,
		}
		if in.Name != nil {
			updates["name"] = *in.Name
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}
		if err := tx.Model(&models.LampConfiguration{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if in.Slots != nil {
			if err := tx.Where("configuration_id = ?", id).Delete(&models.ConfigurationSlot{}).Error; err != nil {
				return err
			}
			slots := buildSlots(in.Slots, pricing.Breakdown)
			for i := range slots {
				slots[i].ConfigurationID = id
			}
			if len(slots) > 0 {
				if err := tx.Create(&slots).Error; err != nil {
					return err
				}
			}
		}

		if in.ElectricalParts != nil {
			if err := tx.Where("configuration_id = ?", id).Delete(&models.ConfigurationElectricalPart{}).Error; err != nil {
				return err
			}
			var lines []models.ConfigurationElectricalPart
			if pricing != nil {
				lines = buildElectricalLines(in.ElectricalParts, pricing.Breakdown[len(in.Slots):])
			} else {
				priced, err := s.priceLines(in.ElectricalParts)
				if err != nil {
					return err
				}
				lines = priced
			}
			for i := range lines {
				lines[i].ConfigurationID = id
			}
			if len(lines) > 0 {
				if err := tx.Create(&lines).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(id)
}

// UpdateSlot mutates one slot's color or quantity in place. The stored
// configuration total is NOT recomputed here, so it can drift from the sum
// of slot costs until the next full Update. Known quirk, kept on purpose;
// see DESIGN.md before changing it.
func (s *ConfiguratorService) UpdateSlot(slotID, userID uint, in UpdateSlotInput) (*models.ConfigurationSlot, error) {
	var slot models.ConfigurationSlot
	if err := s.db.First(&slot, slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("slot not found")
		}
		return nil, err
	}

	var config models.LampConfiguration
	if err := s.db.First(&config, slot.ConfigurationID).Error; err != nil {
		return nil, err
	}
	if config.UserID != userID {
		return nil, forbidden("access denied")
	}
	if config.Status == models.ConfigStatusOrdered {
		return nil, badRequest("cannot modify a configuration that has been ordered")
	}

	updates := map[string]any{}
	if in.ColorHex != nil {
		updates["color_hex"] = *in.ColorHex
	}
	if in.ColorName != nil {
		updates["color_name"] = *in.ColorName
	}
	if in.Quantity != nil {
		updates["quantity"] = *in.Quantity
	}
	if len(updates) > 0 {
		if err := s.db.Model(&slot).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &slot, nil
}

// Duplicate creates a DRAFT copy of a configuration. Prices are copied
// verbatim, no re-pricing against the current catalog.
func (s *ConfiguratorService) Duplicate(id, userID uint) (*models.LampConfiguration, error) {
	config, err := s.FindOne(id, userID)
	if err != nil {
		return nil, err
	}

	dup := models.LampConfiguration{
		UserID:     userID,
		LampID:     config.LampID,
		Name:       fmt.Sprintf("%s (copia)", config.Name),
		Notes:      config.Notes,
		TotalPrice: config.TotalPrice,
		Status:     models.ConfigStatusDraft,
	}
	for _, slot := range config.Slots {
		dup.Slots = append(dup.Slots, models.ConfigurationSlot{
			ComponentID: slot.ComponentID,
			ColorHex:    slot.ColorHex,
			ColorName:   slot.ColorName,
			Quantity:    slot.Quantity,
			SlotLabel:   slot.SlotLabel,
			SortOrder:   slot.SortOrder,
			UnitPrice:   slot.UnitPrice,
		})
	}
	for _, line := range config.ElectricalParts {
		dup.ElectricalParts = append(dup.ElectricalParts, models.ConfigurationElectricalPart{
			PartID:    line.PartID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	if err := s.db.Create(&dup).Error; err != nil {
		return nil, err
	}
	return s.load(dup.ID)
}

// Archive hides a configuration from the user's list. ORDERED configurations
// are immutable, status included.
func (s *ConfiguratorService) Archive(id, userID uint) error {
	config, err := s.FindOne(id, userID)
	if err != nil {
		return err
	}
	if config.Status == models.ConfigStatusOrdered {
		return badRequest("cannot archive a configuration that has been ordered")
	}
	return s.db.Model(&models.LampConfiguration{}).
		Where("id = ?", id).
		Update("status", models.ConfigStatusArchived).Error
}

// AvailableComponents returns a lamp's configurable component positions and
// electrical parts, plus every compatibility edge touching those components.
func (s *ConfiguratorService) AvailableComponents(lampID uint) (*AvailableComponentsResult, error) {
	if _, err := s.catalog.Lamp(lampID); err != nil {
		return nil, err
	}

	var components []models.LampComponent
	if err := s.db.Where("lamp_id = ?", lampID).Preload("Component").Order("sort_order asc").Find(&components).Error; err != nil {
		return nil, err
	}

	var parts []models.LampElectricalPart
	if err := s.db.Where("lamp_id = ?", lampID).Preload("Part").Find(&parts).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(components))
	for _, lc := range components {
		ids = append(ids, lc.ComponentID)
	}

	edges := []models.ComponentCompatibility{}
	if len(ids) > 0 {
		if err := s.db.Where("component_a_id IN ? OR component_b_id IN ?", ids, ids).Find(&edges).Error; err != nil {
			return nil, err
		}
	}

	return &AvailableComponentsResult{
		Components:      components,
		ElectricalParts: parts,
		Compatibility:   edges,
	}, nil
}

func (s *ConfiguratorService) load(id uint) (*models.LampConfiguration, error) {
	var config models.LampConfiguration
	err := s.db.
		Preload("Lamp").
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc") }).
		Preload("Slots.Component").
		Preload("ElectricalParts.Part").
		First(&config, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("configuration not found")
		}
		return nil, err
	}
	return &config, nil
}

// priceLines snapshots current part costs for electrical lines when no full
// pricing run happened (update with lines but no slots).
func (s *ConfiguratorService) priceLines(inputs []ElectricalInput) ([]models.ConfigurationElectricalPart, error) {
	lines := make([]models.ConfigurationElectricalPart, 0, len(inputs))
	for _, in := range inputs {
		part, err := s.catalog.ElectricalPart(in.PartID)
		if err != nil {
			if KindOf(err) == KindNotFound {
				return nil, badRequest("electrical part %d not found", in.PartID)
			}
			return nil, err
		}
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, models.ConfigurationElectricalPart{
			PartID:    in.PartID,
			Quantity:  qty,
			UnitPrice: part.UnitCost,
		})
	}
	return lines, nil
}

// buildSlots pairs slot inputs with their pricing breakdown rows to capture
// unit-price snapshots. breakdown[i] corresponds to slots[i].
func buildSlots(inputs []SlotInput, breakdown []BreakdownLine) []models.ConfigurationSlot {
	slots := make([]models.ConfigurationSlot, 0, len(inputs))
	for i, in := range inputs {
		sortOrder := i
		if in.SortOrder != nil {
			sortOrder = *in.SortOrder
		}
		slots = append(slots, models.ConfigurationSlot{
			ComponentID: in.ComponentID,
			ColorHex:    in.ColorHex,
			ColorName:   in.ColorName,
			Quantity:    breakdown[i].Quantity,
			SlotLabel:   in.SlotLabel,
			SortOrder:   sortOrder,
			UnitPrice:   breakdown[i].UnitCost,
		})
	}
	return slots
}

func buildElectricalLines(inputs []ElectricalInput, breakdown []BreakdownLine) []models.ConfigurationElectricalPart {
	lines := make([]models.ConfigurationElectricalPart, 0, len(inputs))
	for i, in := range inputs {
		lines = append(lines, models.ConfigurationElectricalPart{
			PartID:    in.PartID,
			Quantity:  breakdown[i].Quantity,
			UnitPrice: breakdown[i].UnitCost,
		})
	}
	return lines
}
