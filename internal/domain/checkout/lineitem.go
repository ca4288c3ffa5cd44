package checkout

import (
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Option carries the selected product option of a checkout line
type Option struct {
	Size string `json:"size"`
}

// LineItem is the canonical checkout line: a product snapshot, the
// selected option, and a quantity. Every accepted input shape is mapped
// into this form at the ingestion boundary; nothing downstream deals
// with optional or aliased fields.
type LineItem struct {
	Product cart.Product `json:"product"`
	Option  Option       `json:"option"`
	Qty     int          `json:"qty"`
}

// LineTotal returns price * qty for this line
func (l LineItem) LineTotal() valueobject.Money {
	return l.Product.Price.MulInt(l.Qty)
}

// RawItem is an incoming checkout line in any of the shapes the
// storefront has produced over time: the cart shape with a nested
// product object, or the flat shape used by buy-now and the cart
// selection handoff. Prices may be numbers or formatted strings, the
// image may live under image or img, and the size under size or
// option.size.
type RawItem struct {
	ID      string              `json:"id,omitempty"`
	Name    string              `json:"name,omitempty"`
	Image   string              `json:"image,omitempty"`
	Img     string              `json:"img,omitempty"`
	Price   *valueobject.Money  `json:"price,omitempty"`
	Size    string              `json:"size,omitempty"`
	Qty     *valueobject.Scalar `json:"qty,omitempty"`
	Option  *Option             `json:"option,omitempty"`
	Product *RawItem            `json:"product,omitempty"`
}

// Normalize maps a raw item onto the canonical LineItem. It returns
// false when no product can be identified at all; a missing quantity
// defaults to 1.
func (r *RawItem) Normalize() (LineItem, bool) {
	if r == nil {
		return LineItem{}, false
	}

	// The product fields live either on the nested object or on the
	// item itself.
	p := r
	if r.Product != nil {
		p = r.Product
	}
	if p.ID == "" && p.Name == "" {
		return LineItem{}, false
	}

	image := p.Image
	if image == "" {
		image = p.Img
	}

	price := valueobject.ZeroKRW()
	if p.Price != nil {
		price = *p.Price
	}

	size := r.Size
	if size == "" && r.Option != nil {
		size = r.Option.Size
	}
	if size == "" {
		size = p.Size
	}

	qty := 1
	if r.Qty != nil && r.Qty.Int() > 0 {
		qty = r.Qty.Int()
	} else if r.Qty == nil && p.Qty != nil && p.Qty.Int() > 0 {
		qty = p.Qty.Int()
	}

	return LineItem{
		Product: cart.Product{
			ID:    p.ID,
			Name:  p.Name,
			Image: image,
			Price: price,
		},
		Option: Option{Size: size},
		Qty:    qty,
	}, true
}

// NormalizeItems maps a batch of raw items, dropping entries that carry
// no identifiable product
func NormalizeItems(raw []RawItem) []LineItem {
	items := make([]LineItem, 0, len(raw))
	for i := range raw {
		if item, ok := raw[i].Normalize(); ok {
			items = append(items, item)
		}
	}
	return items
}

// RawFromCartItem converts a stored cart line into the raw checkout
// shape, the same handoff the cart page performs
func RawFromCartItem(it cart.Item) RawItem {
	price := it.Product.Price
	qty := valueobject.ScalarFromInt(int64(it.Qty))
	return RawItem{
		Product: &RawItem{
			ID:    it.Product.ID,
			Name:  it.Product.Name,
			Image: it.Product.Image,
			Price: &price,
		},
		Size: it.Size,
		Qty:  &qty,
	}
}
