package cart

import (
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductPayload is the product snapshot a client submits when adding a
// line. Prices tolerate formatted strings as well as numbers.
type ProductPayload struct {
	ID    string            `json:"id" binding:"required"`
	Name  string            `json:"name"`
	Image string            `json:"image"`
	Price valueobject.Money `json:"price"`
}

// AddItemRequest adds one (product, size, quantity) selection to the cart
type AddItemRequest struct {
	Product ProductPayload `json:"product" binding:"required"`
	Size    string         `json:"size"`
	Qty     int            `json:"qty"`
}

// SetQuantityRequest replaces the quantity of an existing line
type SetQuantityRequest struct {
	Qty int `json:"qty"`
}

// RemoveManyRequest removes a batch of lines by ID
type RemoveManyRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// CartResponse is the full cart with its derived totals
type CartResponse struct {
	Items    []cart.Item       `json:"items"`
	TotalQty int               `json:"totalQty"`
	Subtotal valueobject.Money `json:"subtotal"`
}

// toCartResponse derives the response from the stored lines
func toCartResponse(items []cart.Item) CartResponse {
	totalQty := 0
	subtotal := valueobject.ZeroKRW()
	for i := range items {
		totalQty += items[i].Qty
		subtotal = subtotal.Add(items[i].LineTotal())
	}
	return CartResponse{Items: items, TotalQty: totalQty, Subtotal: subtotal}
}
