package handler

import (
	"github.com/gin-gonic/gin"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
)

// CheckoutHandler handles the staged checkout flow: stage a selection,
// review a quote, pick a payment method, confirm.
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.POST("/buy-now", h.BuyNow)
		checkout.POST("/cart-selection", h.StageCartSelection)
		checkout.POST("/quote", h.Quote)
		checkout.POST("/begin", h.Begin)
		checkout.POST("/method", h.SelectMethod)
		checkout.POST("/confirm", h.Confirm)
	}
}

// BuyNow stages a single line for immediate checkout
func (h *CheckoutHandler) BuyNow(c *gin.Context) {
	var req checkoutapp.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid buy-now payload: "+err.Error())
		return
	}
	if err := h.checkout.BuyNow(c.Request.Context(), req.Item); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// StageCartSelection stages the lines picked on the cart page
func (h *CheckoutHandler) StageCartSelection(c *gin.Context) {
	var req checkoutapp.StageCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid cart selection payload: "+err.Error())
		return
	}
	if err := h.checkout.StageCartSelection(c.Request.Context(), req.Items); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Quote prices the current selection without staging anything
func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req checkoutapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid quote payload: "+err.Error())
		return
	}
	quote, err := h.checkout.Quote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// Begin prices the selection and stages it for review
func (h *CheckoutHandler) Begin(c *gin.Context) {
	var req checkoutapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid checkout payload: "+err.Error())
		return
	}
	quote, err := h.checkout.Begin(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// SelectMethod records the chosen payment method
func (h *CheckoutHandler) SelectMethod(c *gin.Context) {
	var req checkoutapp.SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid method payload: "+err.Error())
		return
	}
	payload, err := h.checkout.SelectMethod(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payload)
}

// Confirm finalizes the checkout and writes the orders
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	var req checkoutapp.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid confirm payload: "+err.Error())
		return
	}
	resp, err := h.checkout.Confirm(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
