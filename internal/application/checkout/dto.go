package checkout

import (
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/order"
)

// QuoteRequest prices a selection. With no explicit items the selection
// is resolved from the staged state: pending buy-now line, then the cart
// page handoff, then the whole cart.
type QuoteRequest struct {
	Items    []checkout.RawItem `json:"items"`
	CouponID string             `json:"couponId"`
}

// BuyNowRequest stages a single line for checkout, bypassing the cart
type BuyNowRequest struct {
	Item checkout.RawItem `json:"item" binding:"required"`
}

// StageCartRequest stages the lines selected on the cart page
type StageCartRequest struct {
	Items []checkout.RawItem `json:"items" binding:"required"`
}

// SelectMethodRequest records the chosen payment method. An explicit
// payload wins over the staged review when it carries items.
type SelectMethodRequest struct {
	Method  string            `json:"method" binding:"required"`
	Payload *checkout.Payload `json:"payload"`
}

// ConfirmRequest finalizes a checkout. An explicit payload wins over the
// staged pay payload when it carries items.
type ConfirmRequest struct {
	Payload *checkout.Payload `json:"payload"`
}

// ConfirmResponse reports the orders written and the cart lines consumed
type ConfirmResponse struct {
	Orders    []order.Order        `json:"orders"`
	Purchased []cart.PurchasedPair `json:"purchased"`
}
