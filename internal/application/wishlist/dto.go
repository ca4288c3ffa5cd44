package wishlist

import (
	"github.com/storefront/backend/internal/domain/wishlist"
)

// ToggleRequest likes or unlikes a product. The item carries whatever
// identity the rendering section had: a real ID, a product ID, or just
// its display fields.
type ToggleRequest struct {
	Item wishlist.Item `json:"item" binding:"required"`
}

// WishlistResponse is the full wishlist with the effect of the last
// toggle
type WishlistResponse struct {
	Items []wishlist.Item `json:"items"`
	Added bool            `json:"added"`
}
