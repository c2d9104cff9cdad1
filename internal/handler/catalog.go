package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Giuseppe84/vespera/internal/models"
)

// CatalogHandler serves the public storefront reads.
type CatalogHandler struct {
	DB *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{DB: db}
}

// GET /api/v1/lamps?featured=true
func (h *CatalogHandler) ListLamps(c *gin.Context) {
	query := h.DB.Where("is_active = ?", true)
	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}

	lamps := []models.Lamp{}
	err := query.
		Preload("Variants", "is_active = ?", true).
		Order("name asc").
		Find(&lamps).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lamps"})
		return
	}
	c.JSON(http.StatusOK, lamps)
}

// GET /api/v1/lamps/:slug
func (h *CatalogHandler) GetLamp(c *gin.Context) {
	var lamp models.Lamp
	err := h.DB.Where("slug = ? AND is_active = ?", c.Param("slug"), true).
		Preload("Variants", "is_active = ?", true).
		First(&lamp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lamp not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lamp"})
		return
	}
	c.JSON(http.StatusOK, lamp)
}
