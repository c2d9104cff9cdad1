package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Giuseppe84/vespera/internal/models"
)

// AddressHandler manages the user's address book, the records checkout
// validates against.
type AddressHandler struct {
	DB *gorm.DB
}

func NewAddressHandler(db *gorm.DB) *AddressHandler {
	return &AddressHandler{DB: db}
}

type AddressRequest struct {
	Type       string `json:"type" binding:"required,oneof=SHIPPING BILLING"`
	FullName   string `json:"fullName" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"isDefault"`
}

// GET /api/v1/addresses
func (h *AddressHandler) List(c *gin.Context) {
	addresses := []models.Address{}
	err := h.DB.Where("user_id = ?", currentUserID(c)).
		Order("is_default desc, created_at desc").
		Find(&addresses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load addresses"})
		return
	}
	c.JSON(http.StatusOK, addresses)
}

// POST /api/v1/addresses
func (h *AddressHandler) Create(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	country := req.Country
	if country == "" {
		country = "IT"
	}
	address := models.Address{
		UserID:     currentUserID(c),
		Type:       req.Type,
		FullName:   req.FullName,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		Province:   req.Province,
		PostalCode: req.PostalCode,
		Country:    country,
		Phone:      req.Phone,
		IsDefault:  req.IsDefault,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			err := tx.Model(&models.Address{}).
				Where("user_id = ? AND type = ?", address.UserID, address.Type).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
		return
	}
	c.JSON(http.StatusCreated, address)
}

// DELETE /api/v1/addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var address models.Address
	err := h.DB.Where("id = ? AND user_id = ?", id, currentUserID(c)).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load address"})
		return
	}

	if err := h.DB.Delete(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}
	c.Status(http.StatusNoContent)
}
