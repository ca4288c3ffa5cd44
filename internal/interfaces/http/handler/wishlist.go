package handler

import (
	"github.com/gin-gonic/gin"
	wishlistapp "github.com/storefront/backend/internal/application/wishlist"
)

// WishlistHandler handles wishlist routes
type WishlistHandler struct {
	BaseHandler
	wishlist *wishlistapp.Service
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlist *wishlistapp.Service) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

// RegisterRoutes registers wishlist routes
func (h *WishlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", h.List)
		wishlist.POST("/toggle", h.Toggle)
		wishlist.DELETE("", h.Clear)
	}
}

// List returns the wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	h.Success(c, h.wishlist.List(c.Request.Context()))
}

// Toggle flips a product in or out of the wishlist
func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req wishlistapp.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid wishlist payload: "+err.Error())
		return
	}
	resp, err := h.wishlist.Toggle(c.Request.Context(), req.Item)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the wishlist
func (h *WishlistHandler) Clear(c *gin.Context) {
	if err := h.wishlist.Clear(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
