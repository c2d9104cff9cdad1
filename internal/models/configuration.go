package models

import "time"

// Configuration lifecycle: DRAFT on create, SAVED on any update, ORDERED is
// set only by checkout and is terminal. ARCHIVED is terminal and reachable
// only from DRAFT/SAVED.
const (
	ConfigStatusDraft    = "DRAFT"
	ConfigStatusSaved    = "SAVED"
	ConfigStatusOrdered  = "ORDERED"
	ConfigStatusArchived = "ARCHIVED"
)

// LampConfiguration is a user's saved build of a lamp: chosen components in
// slots plus electrical parts, with unit prices snapshotted at save time.
type LampConfiguration struct {
	ID              uint                          `gorm:"primaryKey" json:"id"`
	UserID          uint                          `gorm:"index;not null" json:"user_id"`
	LampID          uint                          `gorm:"index;not null" json:"lamp_id"`
	Lamp            Lamp                          `gorm:"foreignKey:LampID" json:"lamp"`
	Name            string                        `gorm:"size:150;not null" json:"name"`
	Notes           string                        `gorm:"type:text" json:"notes"`
	TotalPrice      float64                       `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status          string                        `gorm:"size:20;default:'DRAFT'" json:"status"`
	Slots           []ConfigurationSlot           `gorm:"foreignKey:ConfigurationID" json:"slots"`
	ElectricalParts []ConfigurationElectricalPart `gorm:"foreignKey:ConfigurationID" json:"electrical_parts"`
	CreatedAt       time.Time                     `json:"created_at"`
	UpdatedAt       time.Time                     `json:"updated_at"`
}

type ConfigurationSlot struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ConfigurationID uint      `gorm:"index;not null" json:"configuration_id"`
	ComponentID     uint      `gorm:"not null" json:"component_id"`
	Component       Component `gorm:"foreignKey:ComponentID" json:"component"`
	ColorHex        string    `gorm:"size:10" json:"color_hex"`
	ColorName       string    `gorm:"size:50" json:"color_name"`
	Quantity        int       `gorm:"default:1" json:"quantity"`
	SlotLabel       string    `gorm:"size:50" json:"slot_label"`
	SortOrder       int       `gorm:"default:0" json:"sort_order"`
	// UnitPrice is the component cost captured when the slot was saved,
	// deliberately decoupled from later catalog price changes.
	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}

type ConfigurationElectricalPart struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ConfigurationID uint           `gorm:"index;not null" json:"configuration_id"`
	PartID          uint           `gorm:"not null" json:"part_id"`
	Part            ElectricalPart `gorm:"foreignKey:PartID" json:"part"`
	Quantity        int            `gorm:"default:1" json:"quantity"`
	UnitPrice       float64        `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}
