package models

import "time"

// Order status machine: PENDING → CONFIRMED → PROCESSING → SHIPPED →
// DELIVERED, admin-driven. CANCELLED only from PENDING/CONFIRMED.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

type Order struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	OrderNumber       string        `gorm:"size:30;unique;not null" json:"order_number"`
	UserID            uint          `gorm:"index;not null" json:"user_id"`
	User              User          `gorm:"foreignKey:UserID" json:"user"`
	Status            string        `gorm:"size:20;default:'PENDING'" json:"status"`
	Subtotal          float64       `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	ShippingCost      float64       `gorm:"type:decimal(10,2);default:0.00" json:"shipping_cost"`
	TaxAmount         float64       `gorm:"type:decimal(10,2);default:0.00" json:"tax_amount"`
	DiscountAmount    float64       `gorm:"type:decimal(10,2);default:0.00" json:"discount_amount"`
	TotalAmount       float64       `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Notes             string        `gorm:"type:text" json:"notes"`
	ShippingAddressID uint          `gorm:"not null" json:"shipping_address_id"`
	ShippingAddress   Address       `gorm:"foreignKey:ShippingAddressID" json:"shipping_address"`
	BillingAddressID  uint          `gorm:"not null" json:"billing_address_id"`
	BillingAddress    Address       `gorm:"foreignKey:BillingAddressID" json:"billing_address"`
	Items             []OrderItem   `gorm:"foreignKey:OrderID" json:"items"`
	Shipments         []Shipment    `gorm:"foreignKey:OrderID" json:"shipments"`
	CouponUsages      []CouponUsage `gorm:"foreignKey:OrderID" json:"coupon_usages"`
	DeliveredAt       *time.Time    `json:"delivered_at"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// OrderItem snapshots the purchased thing at order time. The *Name/SKU
// columns keep the receipt stable even if the catalog is edited later.
type OrderItem struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	OrderID           uint               `gorm:"index;not null" json:"order_id"`
	LampID            uint               `gorm:"not null" json:"lamp_id"`
	Lamp              Lamp               `gorm:"foreignKey:LampID" json:"lamp"`
	VariantID         *uint              `json:"variant_id"`
	ConfigurationID   *uint              `json:"configuration_id"`
	Configuration     *LampConfiguration `gorm:"foreignKey:ConfigurationID" json:"configuration,omitempty"`
	Quantity          int                `gorm:"not null" json:"quantity"`
	UnitPrice         float64            `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice        float64            `gorm:"type:decimal(10,2);not null" json:"total_price"`
	LampName          string             `gorm:"size:150;not null" json:"lamp_name"`
	LampSKU           string             `gorm:"size:50;not null" json:"lamp_sku"`
	VariantName       string             `gorm:"size:100" json:"variant_name"`
	ConfigurationName string             `gorm:"size:150" json:"configuration_name"`
}

type Coupon struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Code            string     `gorm:"size:50;unique;not null" json:"code"`
	Description     string     `gorm:"size:255" json:"description"`
	DiscountPercent float64    `gorm:"type:decimal(5,2)" json:"discount_percent"`
	DiscountFixed   float64    `gorm:"type:decimal(10,2)" json:"discount_fixed"`
	MinOrderAmount  float64    `gorm:"type:decimal(10,2);default:0.00" json:"min_order_amount"`
	MaxUses         int        `gorm:"default:0" json:"max_uses"` // 0 means unlimited
	UsedCount       int        `gorm:"default:0" json:"used_count"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	StartsAt        *time.Time `json:"starts_at"`
	ExpiresAt       *time.Time `json:"expires_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

type CouponUsage struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	CouponID uint      `gorm:"index;not null" json:"coupon_id"`
	Coupon   Coupon    `gorm:"foreignKey:CouponID" json:"coupon"`
	OrderID  uint      `gorm:"index;not null" json:"order_id"`
	UsedAt   time.Time `gorm:"autoCreateTime" json:"used_at"`
}

type ShippingProvider struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Code     string `gorm:"size:20;unique;not null" json:"code"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

type Shipment struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	OrderID        uint             `gorm:"index;not null" json:"order_id"`
	ProviderID     uint             `gorm:"not null" json:"provider_id"`
	Provider       ShippingProvider `gorm:"foreignKey:ProviderID" json:"provider"`
	TrackingNumber string           `gorm:"size:100" json:"tracking_number"`
	TrackingURL    string           `gorm:"size:255" json:"tracking_url"`
	ShippedAt      time.Time        `json:"shipped_at"`
}

// OrderSequence backs the hardened order-number allocator: one row per
// YYYYMM period, incremented atomically inside the checkout transaction.
type OrderSequence struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Period    string `gorm:"size:6;unique;not null" json:"period"`
	LastValue int    `gorm:"not null;default:0" json:"last_value"`
}
