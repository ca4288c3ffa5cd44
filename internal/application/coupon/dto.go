package coupon

import (
	"github.com/storefront/backend/internal/domain/coupon"
)

// LedgerResponse splits the ledger the way the coupon page renders it:
// usable coupons first, spent ones kept as history
type LedgerResponse struct {
	Coupons   []coupon.Coupon `json:"coupons"`
	Available []coupon.Coupon `json:"available"`
	Used      []coupon.Coupon `json:"used"`
}

// IssueWelcomeResponse reports whether the signup coupon was granted or
// already present
type IssueWelcomeResponse struct {
	Issued bool          `json:"issued"`
	Coupon coupon.Coupon `json:"coupon"`
}
