package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
)

// CartHandler handles cart routes
type CartHandler struct {
	BaseHandler
	cart *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart *cartapp.Service) *CartHandler {
	return &CartHandler{cart: cart}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.List)
		cart.POST("/items", h.Add)
		cart.PUT("/items/:id", h.SetQuantity)
		cart.DELETE("/items/:id", h.RemoveOne)
		cart.POST("/items/remove", h.RemoveMany)
		cart.DELETE("", h.Clear)
	}
}

// List returns the current cart
func (h *CartHandler) List(c *gin.Context) {
	h.Success(c, h.cart.List(c.Request.Context()))
}

// Add puts a selection into the cart
func (h *CartHandler) Add(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid cart item payload: "+err.Error())
		return
	}
	resp, err := h.cart.Add(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetQuantity replaces the quantity of a line
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req cartapp.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid quantity payload: "+err.Error())
		return
	}
	resp, err := h.cart.SetQuantity(c.Request.Context(), c.Param("id"), req.Qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveOne deletes a single line
func (h *CartHandler) RemoveOne(c *gin.Context) {
	resp, err := h.cart.RemoveOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveMany deletes a batch of lines
func (h *CartHandler) RemoveMany(c *gin.Context) {
	var req cartapp.RemoveManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid remove payload: "+err.Error())
		return
	}
	resp, err := h.cart.RemoveMany(c.Request.Context(), req.IDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.Clear(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
