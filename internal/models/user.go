package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"size:150;unique;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	FirstName    string         `gorm:"size:50" json:"first_name"`
	LastName     string         `gorm:"size:50" json:"last_name"`
	Role         string         `gorm:"size:20;default:'customer'" json:"role"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	Addresses    []Address      `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type Address struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Type       string    `gorm:"size:20;default:'SHIPPING'" json:"type"` // SHIPPING or BILLING
	FullName   string    `gorm:"size:100;not null" json:"full_name"`
	Line1      string    `gorm:"size:150;not null" json:"line1"`
	Line2      string    `gorm:"size:150" json:"line2"`
	City       string    `gorm:"size:100;not null" json:"city"`
	Province   string    `gorm:"size:10" json:"province"`
	PostalCode string    `gorm:"size:20;not null" json:"postal_code"`
	Country    string    `gorm:"size:2;default:'IT'" json:"country"`
	Phone      string    `gorm:"size:20" json:"phone"`
	IsDefault  bool      `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}
