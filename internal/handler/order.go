package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Giuseppe84/vespera/internal/service"
)

type OrderHandler struct {
	Orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// POST /api/v1/orders — checkout. Converts the cart into an order.
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.Orders.CreateFromCart(currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GET /api/v1/orders/my
func (h *OrderHandler) ListMine(c *gin.Context) {
	var q service.OrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.Orders.FindAllByUser(currentUserID(c), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/orders/my/:id
func (h *OrderHandler) GetMine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.Orders.FindOne(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PATCH /api/v1/orders/my/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.Orders.Cancel(id, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/v1/admin/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	var q service.OrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.Orders.FindAllAdmin(q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/v1/admin/orders/stats
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.Orders.Stats()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/v1/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.Orders.UpdateStatus(id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// POST /api/v1/admin/orders/:id/shipments
func (h *OrderHandler) AddShipment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.AddShipmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shipment, err := h.Orders.AddShipment(id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipment)
}
