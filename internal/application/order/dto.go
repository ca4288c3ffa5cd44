package order

import (
	"github.com/storefront/backend/internal/domain/order"
)

// UpdateStatusRequest moves an order through the fulfillment flow
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateBulkRequest files a B2B quote request
type CreateBulkRequest struct {
	Company  string `json:"company"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Product  string `json:"product" binding:"required"`
	WishQty  int    `json:"wishQty"`
	NeedDate string `json:"needDate"`
	Message  string `json:"message"`
	Agree    bool   `json:"agree"`
	Source   string `json:"source"`
}

// OrderListResponse is a page-less order listing, newest first
type OrderListResponse struct {
	Orders []order.Order `json:"orders"`
	Total  int           `json:"total"`
}
