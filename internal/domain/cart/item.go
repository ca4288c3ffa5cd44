package cart

import (
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Quantity bounds for a single cart line
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Product is the snapshot of a product embedded in a cart line
type Product struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Image string            `json:"image"`
	Price valueobject.Money `json:"price"`
}

// Item is one (product, size, quantity) line in the cart.
// ID uniquely identifies a (product, size) pair within the cart.
type Item struct {
	ID      string  `json:"id"`
	Product Product `json:"product"`
	Size    string  `json:"size"`
	Qty     int     `json:"qty"`
}

// Key derives the cart line identifier from a product ID and size.
// The same product in two sizes is two distinct lines.
func Key(productID, size string) string {
	return productID + "-" + size
}

// ClampQuantity clamps a quantity into [MinQuantity, MaxQuantity]
func ClampQuantity(qty int) int {
	if qty < MinQuantity {
		return MinQuantity
	}
	if qty > MaxQuantity {
		return MaxQuantity
	}
	return qty
}

// NewItem creates a cart line for the given product selection
func NewItem(product Product, size string, qty int) (*Item, error) {
	if product.ID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	return &Item{
		ID:      Key(product.ID, size),
		Product: product,
		Size:    size,
		Qty:     ClampQuantity(qty),
	}, nil
}

// SetQuantity replaces the line quantity, clamped to the valid range
func (i *Item) SetQuantity(qty int) {
	i.Qty = ClampQuantity(qty)
}

// AddQuantity merges an additional quantity into the line
func (i *Item) AddQuantity(qty int) {
	if qty < 1 {
		qty = 1
	}
	i.Qty = ClampQuantity(i.Qty + qty)
}

// LineTotal returns price * qty for this line
func (i *Item) LineTotal() valueobject.Money {
	return i.Product.Price.MulInt(i.Qty)
}

// Matches reports whether the line is the given (product, size) pair
func (i *Item) Matches(productID, size string) bool {
	return i.Product.ID == productID && i.Size == size
}

// PurchasedPair identifies a (product, size) pair bought at checkout.
// Confirmation removes exactly these pairs from the cart, leaving other
// sizes of the same product untouched.
type PurchasedPair struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
}
