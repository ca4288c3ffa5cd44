package handler

import (
	"github.com/gin-gonic/gin"
	couponapp "github.com/storefront/backend/internal/application/coupon"
)

// CouponHandler handles coupon ledger routes
type CouponHandler struct {
	BaseHandler
	coupons *couponapp.Service
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(coupons *couponapp.Service) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

// RegisterRoutes registers coupon routes
func (h *CouponHandler) RegisterRoutes(rg *gin.RouterGroup) {
	coupons := rg.Group("/coupons")
	{
		coupons.GET("", h.List)
		coupons.POST("/welcome", h.IssueWelcome)
		coupons.POST("/:id/use", h.MarkUsed)
	}
}

// List returns the coupon ledger split into available and used
func (h *CouponHandler) List(c *gin.Context) {
	h.Success(c, h.coupons.List(c.Request.Context()))
}

// IssueWelcome grants the signup coupon once
func (h *CouponHandler) IssueWelcome(c *gin.Context) {
	resp, err := h.coupons.IssueWelcome(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp.Issued {
		h.Created(c, resp)
		return
	}
	h.Success(c, resp)
}

// MarkUsed spends a coupon and returns the updated ledger
func (h *CouponHandler) MarkUsed(c *gin.Context) {
	if err := h.coupons.MarkUsed(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.coupons.List(c.Request.Context()))
}
