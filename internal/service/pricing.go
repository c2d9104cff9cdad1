package service

import (
	"math"

	"gorm.io/gorm"
)

// SlotInput is one component placement in a configuration request.
type SlotInput struct {
	ComponentID uint   `json:"componentId" binding:"required"`
	ColorHex    string `json:"colorHex"`
	ColorName   string `json:"colorName"`
	Quantity    int    `json:"quantity" binding:"omitempty,min=1"`
	SlotLabel   string `json:"slotLabel"`
	SortOrder   *int   `json:"sortOrder"`
}

type ElectricalInput struct {
	PartID   uint `json:"partId" binding:"required"`
	Quantity int  `json:"quantity" binding:"omitempty,min=1"`
}

type BreakdownLine struct {
	Type      string  `json:"type"` // "component" or "electrical"
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	UnitCost  float64 `json:"unitCost"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

type PricingResult struct {
	BasePrice       float64         `json:"basePrice"`
	ComponentsTotal float64         `json:"componentsTotal"`
	ElectricalTotal float64         `json:"electricalTotal"`
	Total           float64         `json:"total"`
	Breakdown       []BreakdownLine `json:"breakdown"`
}

// PricingService computes configuration prices. The same calculation serves
// the unsaved preview endpoint and persisted create/update, so the two can
// never disagree. No rounding happens here; callers round at persistence or
// presentation boundaries.
type PricingService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewPricingService(db *gorm.DB, catalog *CatalogService) *PricingService {
	return &PricingService{db: db, catalog: catalog}
}

// Calculate prices a lamp with the given slots and electrical lines.
// A missing lamp is NotFound; a missing component or part is BadRequest —
// invalid references never silently resolve to a zero-cost line.
// Quantity defaults to 1. The breakdown preserves input order: slots first,
// then electrical lines.
func (s *PricingService) Calculate(lampID uint, slots []SlotInput, electricalParts []ElectricalInput) (*PricingResult, error) {
	lamp, err := s.catalog.Lamp(lampID)
	if err != nil {
		return nil, err
	}

	result := &PricingResult{
		BasePrice: lamp.BasePrice,
		Breakdown: []BreakdownLine{},
	}

	for _, slot := range slots {
		component, err := s.catalog.Component(slot.ComponentID)
		if err != nil {
			if KindOf(err) == KindNotFound {
				return nil, badRequest("component %d not found", slot.ComponentID)
			}
			return nil, err
		}
		qty := slot.Quantity
		if qty < 1 {
			qty = 1
		}
		lineTotal := component.UnitCost * float64(qty)
		result.ComponentsTotal += lineTotal
		result.Breakdown = append(result.Breakdown, BreakdownLine{
			Type:      "component",
			ID:        component.ID,
			Name:      component.Name,
			UnitCost:  component.UnitCost,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
	}

	for _, ep := range electricalParts {
		part, err := s.catalog.ElectricalPart(ep.PartID)
		if err != nil {
			if KindOf(err) == KindNotFound {
				return nil, badRequest("electrical part %d not found", ep.PartID)
			}
			return nil, err
		}
		qty := ep.Quantity
		if qty < 1 {
			qty = 1
		}
		lineTotal := part.UnitCost * float64(qty)
		result.ElectricalTotal += lineTotal
		result.Breakdown = append(result.Breakdown, BreakdownLine{
			Type:      "electrical",
			ID:        part.ID,
			Name:      part.Name,
			UnitCost:  part.UnitCost,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
	}

	result.Total = result.BasePrice + result.ComponentsTotal + result.ElectricalTotal
	return result, nil
}

// round2 rounds a monetary amount to two decimals. Applied only where values
// cross a persistence or response boundary.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
