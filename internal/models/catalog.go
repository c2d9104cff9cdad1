package models

import (
	"time"

	"gorm.io/gorm"
)

type Lamp struct {
	ID               uint                 `gorm:"primaryKey" json:"id"`
	Name             string               `gorm:"size:150;not null" json:"name"`
	Slug             string               `gorm:"size:150;unique;not null" json:"slug"`
	SKU              string               `gorm:"size:50;unique;not null" json:"sku"`
	ShortDescription string               `gorm:"size:255" json:"short_description"`
	Description      string               `gorm:"type:text" json:"description"`
	BasePrice        float64              `gorm:"type:decimal(10,2);not null" json:"base_price"`
	IsActive         bool                 `gorm:"default:true" json:"is_active"`
	IsFeatured       bool                 `gorm:"default:false" json:"is_featured"`
	IsConfigurable   bool                 `gorm:"default:false" json:"is_configurable"`
	WeightKg         float64              `gorm:"type:decimal(6,2)" json:"weight_kg"`
	Variants         []LampVariant        `json:"variants,omitempty"`
	Components       []LampComponent      `json:"components,omitempty"`
	ElectricalParts  []LampElectricalPart `json:"electrical_parts,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	DeletedAt        gorm.DeletedAt       `gorm:"index" json:"-"`
}

type LampVariant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LampID    uint      `gorm:"index;not null" json:"lamp_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	SKU       string    `gorm:"size:50;unique;not null" json:"sku"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQty  int       `gorm:"default:0" json:"stock_qty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Component is a swappable 3D-printed part (shade, base, stem, joint).
type Component struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Slug         string    `gorm:"size:100;unique;not null" json:"slug"`
	Description  string    `gorm:"type:text" json:"description"`
	UnitCost     float64   `gorm:"type:decimal(10,2);not null" json:"unit_cost"`
	ThumbnailURL string    `gorm:"size:255" json:"thumbnail_url"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ElectricalPart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Slug      string    `gorm:"size:150;unique;not null" json:"slug"`
	SKU       string    `gorm:"size:50;unique;not null" json:"sku"`
	Voltage   int       `json:"voltage"`
	Wattage   int       `json:"wattage"`
	UnitCost  float64   `gorm:"type:decimal(10,2);not null" json:"unit_cost"`
	StockQty  int       `gorm:"default:0" json:"stock_qty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ComponentCompatibility is a symmetric edge: (A,B) means A and B can be
// combined regardless of which side each id is stored on. No self-edges.
type ComponentCompatibility struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ComponentAID uint      `gorm:"index;not null" json:"component_a_id"`
	ComponentA   Component `gorm:"foreignKey:ComponentAID" json:"component_a,omitempty"`
	ComponentBID uint      `gorm:"index;not null" json:"component_b_id"`
	ComponentB   Component `gorm:"foreignKey:ComponentBID" json:"component_b,omitempty"`
}

// LampComponent links a lamp to one of its configurable component positions.
type LampComponent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	LampID        uint      `gorm:"index;not null" json:"lamp_id"`
	ComponentID   uint      `gorm:"not null" json:"component_id"`
	Component     Component `gorm:"foreignKey:ComponentID" json:"component"`
	Quantity      int       `gorm:"default:1" json:"quantity"`
	IsOptional    bool      `gorm:"default:false" json:"is_optional"`
	IsSwappable   bool      `gorm:"default:true" json:"is_swappable"`
	SortOrder     int       `gorm:"default:0" json:"sort_order"`
	PositionLabel string    `gorm:"size:50" json:"position_label"`
}

type LampElectricalPart struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	LampID     uint           `gorm:"index;not null" json:"lamp_id"`
	PartID     uint           `gorm:"not null" json:"part_id"`
	Part       ElectricalPart `gorm:"foreignKey:PartID" json:"part"`
	Quantity   int            `gorm:"default:1" json:"quantity"`
	IsOptional bool           `gorm:"default:false" json:"is_optional"`
}
