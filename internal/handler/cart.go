package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Giuseppe84/vespera/internal/service"
)

type CartHandler struct {
	Cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{Cart: cart}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.Cart.GetCart(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/v1/cart/count — for the header badge.
func (h *CartHandler) GetCount(c *gin.Context) {
	count, err := h.Cart.GetCount(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// POST /api/v1/cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req service.AddToCartInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Cart.AddItem(currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// PATCH /api/v1/cart/:itemId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Cart.UpdateItem(itemID, currentUserID(c), req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DELETE /api/v1/cart/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	if err := h.Cart.RemoveItem(itemID, currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.Cart.ClearCart(currentUserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
