package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order history and the admin order panel
type OrderHandler struct {
	BaseHandler
	orders *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers order routes. Listing everything, changing
// status, and deleting are admin operations; the rest serve the buyer.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("/my", middleware.RequireLogin(), h.ListMine)
		orders.GET("/:id", h.Get)
		orders.POST("/bulk", h.CreateBulk)

		orders.GET("", middleware.RequireAdmin(), h.ListAll)
		orders.PUT("/:id/status", middleware.RequireAdmin(), h.UpdateStatus)
		orders.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}

// ListAll returns every order, newest first
func (h *OrderHandler) ListAll(c *gin.Context) {
	h.Success(c, h.orders.ListAll(c.Request.Context()))
}

// ListMine returns the session user's orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID := middleware.GetSessionUserID(c)
	h.Success(c, h.orders.ListForBuyer(c.Request.Context(), userID))
}

// Get returns a single order
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// UpdateStatus moves an order along the fulfillment flow
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid status payload: "+err.Error())
		return
	}
	o, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Delete removes an order from the ledger
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateBulk files a B2B quote inquiry as a zero-total order
func (h *OrderHandler) CreateBulk(c *gin.Context) {
	var req orderapp.CreateBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid bulk inquiry payload: "+err.Error())
		return
	}
	o, err := h.orders.CreateBulk(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, o)
}
