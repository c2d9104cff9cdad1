package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Giuseppe84/vespera/internal/service"
)

type ConfiguratorHandler struct {
	Configurator  *service.ConfiguratorService
	Pricing       *service.PricingService
	Compatibility *service.CompatibilityService
}

func NewConfiguratorHandler(configurator *service.ConfiguratorService, pricing *service.PricingService, compatibility *service.CompatibilityService) *ConfiguratorHandler {
	return &ConfiguratorHandler{
		Configurator:  configurator,
		Pricing:       pricing,
		Compatibility: compatibility,
	}
}

// GET /api/v1/configurator/lamps/:lampId/components (public)
func (h *ConfiguratorHandler) AvailableComponents(c *gin.Context) {
	lampID, ok := paramID(c, "lampId")
	if !ok {
		return
	}
	result, err := h.Configurator.AvailableComponents(lampID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type PricePreviewRequest struct {
	LampID          uint                      `json:"lampId" binding:"required"`
	Slots           []service.SlotInput       `json:"slots" binding:"required,dive"`
	ElectricalParts []service.ElectricalInput `json:"electricalParts" binding:"omitempty,dive"`
}

// POST /api/v1/configurator/preview (public) — same calculation as a
// persisted create, nothing saved.
func (h *ConfiguratorHandler) PreviewPrice(c *gin.Context) {
	var req PricePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Pricing.Calculate(req.LampID, req.Slots, req.ElectricalParts)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type CompatibilityRequest struct {
	ComponentIDs []uint `json:"componentIds" binding:"required"`
}

// POST /api/v1/configurator/compatibility (public)
func (h *ConfiguratorHandler) CheckCompatibility(c *gin.Context) {
	var req CompatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Compatibility.Check(req.ComponentIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/v1/configurator/my
func (h *ConfiguratorHandler) ListMine(c *gin.Context) {
	configs, err := h.Configurator.FindAllByUser(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

// GET /api/v1/configurator/:id
func (h *ConfiguratorHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	config, err := h.Configurator.FindOne(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// POST /api/v1/configurator
func (h *ConfiguratorHandler) Create(c *gin.Context) {
	var req service.CreateConfigurationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config, err := h.Configurator.Create(currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, config)
}

// PATCH /api/v1/configurator/:id
func (h *ConfiguratorHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.UpdateConfigurationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config, err := h.Configurator.Update(id, currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// PATCH /api/v1/configurator/slots/:slotId
func (h *ConfiguratorHandler) UpdateSlot(c *gin.Context) {
	slotID, ok := paramID(c, "slotId")
	if !ok {
		return
	}
	var req service.UpdateSlotInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slot, err := h.Configurator.UpdateSlot(slotID, currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// POST /api/v1/configurator/:id/duplicate
func (h *ConfiguratorHandler) Duplicate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	config, err := h.Configurator.Duplicate(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, config)
}

// DELETE /api/v1/configurator/:id — archives, never deletes.
func (h *ConfiguratorHandler) Archive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Configurator.Archive(id, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
