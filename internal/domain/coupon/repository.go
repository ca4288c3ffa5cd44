package coupon

import "context"

// Repository persists the coupon ledger as a single document.
// Absent or unreadable documents read as an empty ledger.
type Repository interface {
	List(ctx context.Context) []Coupon
	Save(ctx context.Context, coupons []Coupon) error
}
