package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
)

// BadgeHandler serves the header badge counters maintained by the badge
// projection. Missing or unreadable counters read as zeros.
type BadgeHandler struct {
	BaseHandler
	store kvstore.Store
}

// NewBadgeHandler creates a new BadgeHandler
func NewBadgeHandler(store kvstore.Store) *BadgeHandler {
	return &BadgeHandler{store: store}
}

// RegisterRoutes registers badge routes
func (h *BadgeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/badges", h.Get)
}

// Get returns the current badge counters
func (h *BadgeHandler) Get(c *gin.Context) {
	var counts event.BadgeCounts
	h.store.Get(c.Request.Context(), event.BadgeDocumentKey, &counts)
	h.Success(c, counts)
}
