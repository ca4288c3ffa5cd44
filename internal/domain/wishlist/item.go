package wishlist

import (
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Item is a liked product. Uniqueness is by product ID when present,
// otherwise by a name/image/price composite key - some catalog sections
// render products that never carried an ID.
type Item struct {
	ID            string            `json:"id,omitempty"`
	ProductID     string            `json:"productId,omitempty"`
	Name          string            `json:"name"`
	Image         string            `json:"image,omitempty"`
	Img           string            `json:"img,omitempty"`
	Price         valueobject.Money  `json:"price"`
	OriginalPrice *valueobject.Money `json:"originalPrice,omitempty"`
	PriceLabel    string            `json:"priceLabel,omitempty"`
	DiscountLabel string            `json:"discountLabel,omitempty"`
}

// Key returns the deduplication key for a wishlist entry:
// id, else productId, else name::image::price.
func (i Item) Key() string {
	if i.ID != "" {
		return i.ID
	}
	if i.ProductID != "" {
		return i.ProductID
	}
	image := i.Image
	if image == "" {
		image = i.Img
	}
	return i.Name + "::" + image + "::" + i.Price.Amount().String()
}
