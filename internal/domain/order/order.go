package order

import (
	"fmt"
	"strconv"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Type distinguishes consumer purchases from B2B quote requests
type Type string

const (
	TypeNormal Type = "normal"
	TypeBulk   Type = "bulk"
)

// Status represents the fulfillment state of an order. The values are
// the literal strings the storefront has always written; downstream
// consumers match on them, so they are not translated.
type Status string

const (
	StatusInquiryReceived Status = "문의접수"
	StatusPaid            Status = "결제완료"
	StatusShipping        Status = "배송중"
	StatusDelivered       Status = "배송완료"
	StatusCancelled       Status = "주문취소"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusInquiryReceived, StatusPaid, StatusShipping, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target.
// The admin flow is 결제완료 → 배송중 → 배송완료; cancellation is allowed
// from any non-terminal state, and bulk inquiries may be converted to a
// paid order.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	switch s {
	case StatusInquiryReceived:
		return target == StatusPaid
	case StatusPaid:
		return target == StatusShipping
	case StatusShipping:
		return target == StatusDelivered
	}
	return false
}

// Buyer identifies who placed the order
type Buyer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// Product is the snapshot of the purchased product
type Product struct {
	ID    string            `json:"id,omitempty"`
	Name  string            `json:"name"`
	Image string            `json:"image,omitempty"`
	Price valueobject.Money `json:"price"`
}

// Option carries the selected product option
type Option struct {
	Size string `json:"size"`
}

// BulkMeta carries the free-form requirements of a B2B quote request
type BulkMeta struct {
	NeedDate string `json:"needDate,omitempty"`
	WishQty  int    `json:"wishQty,omitempty"`
	Message  string `json:"message,omitempty"`
	Agree    bool   `json:"agree"`
	Source   string `json:"__source,omitempty"`
}

// Order is one purchased line item, or one bulk quote request. Checkout
// creates one order per cart line rather than one per transaction - the
// admin panel and "my orders" both key off individual order IDs.
type Order struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Type      Type              `json:"type,omitempty"`
	Status    Status            `json:"status"`
	Buyer     Buyer             `json:"buyer"`
	Product   Product           `json:"product"`
	Option    Option            `json:"option"`
	Qty       int               `json:"qty"`
	Subtotal  valueobject.Money `json:"subtotal"`
	Discount  valueobject.Money `json:"discount"`
	Shipping  valueobject.Money `json:"shipping"`
	Total     valueobject.Money `json:"total"`
	Method    string            `json:"method,omitempty"`
	Meta      *BulkMeta         `json:"meta,omitempty"`
}

// LineID formats the ID of the idx-th order of a checkout batch
func LineID(base time.Time, idx int) string {
	return fmt.Sprintf("ORD-%d-%d", base.UnixMilli(), idx)
}

// BulkID formats a bulk order ID
func BulkID(at time.Time) string {
	return "BULK-" + strconv.FormatInt(at.UnixMilli(), 10)
}

// NewLine creates one paid consumer order for a purchased cart line
func NewLine(id string, at time.Time, buyer Buyer, product Product, size string, qty int, subtotal, discount, shipping, total valueobject.Money, method string) (*Order, error) {
	if product.Name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if qty < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}
	return &Order{
		ID:        id,
		CreatedAt: at,
		Type:      TypeNormal,
		Status:    StatusPaid,
		Buyer:     buyer,
		Product:   product,
		Option:    Option{Size: size},
		Qty:       qty,
		Subtotal:  subtotal,
		Discount:  discount,
		Shipping:  shipping,
		Total:     total,
		Method:    method,
	}, nil
}

// NewBulk creates a B2B quote request. It carries requirement metadata
// instead of a priced line item; the total stays zero until quoted.
func NewBulk(at time.Time, buyer Buyer, productLabel string, qty int, meta BulkMeta) (*Order, error) {
	if qty < 1 {
		qty = 1
	}
	return &Order{
		ID:        BulkID(at),
		CreatedAt: at,
		Type:      TypeBulk,
		Status:    StatusInquiryReceived,
		Buyer:     buyer,
		Product:   Product{Name: productLabel},
		Option:    Option{Size: "-"},
		Qty:       qty,
		Total:     valueobject.ZeroKRW(),
		Meta:      &meta,
	}, nil
}

// UpdateStatus transitions the order to the target status
func (o *Order) UpdateStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	return nil
}
