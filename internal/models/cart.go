package models

import "time"

// CartItem references a lamp and at most one price source on top of it:
// a variant or a saved configuration. UnitPrice is captured at add time from
// whichever source won (configuration > variant > lamp base price).
type CartItem struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	UserID          uint               `gorm:"index;not null" json:"user_id"`
	LampID          uint               `gorm:"not null" json:"lamp_id"`
	Lamp            Lamp               `gorm:"foreignKey:LampID" json:"lamp"`
	VariantID       *uint              `json:"variant_id"`
	Variant         *LampVariant       `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	ConfigurationID *uint              `json:"configuration_id"`
	Configuration   *LampConfiguration `gorm:"foreignKey:ConfigurationID" json:"configuration,omitempty"`
	Quantity        int                `gorm:"not null;default:1" json:"quantity"`
	UnitPrice       float64            `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	AddedAt         time.Time          `gorm:"autoCreateTime" json:"added_at"`
}
