package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
)

// CouponRepository implements coupon.Repository on the document store
type CouponRepository struct {
	store kvstore.Store
}

// NewCouponRepository creates a document-backed coupon repository
func NewCouponRepository(store kvstore.Store) *CouponRepository {
	return &CouponRepository{store: store}
}

// List returns the coupon ledger, empty when nothing readable is stored
func (r *CouponRepository) List(ctx context.Context) []coupon.Coupon {
	var coupons []coupon.Coupon
	if !r.store.Get(ctx, KeyCoupons, &coupons) || coupons == nil {
		return []coupon.Coupon{}
	}
	return coupons
}

// Save replaces the coupon ledger document
func (r *CouponRepository) Save(ctx context.Context, coupons []coupon.Coupon) error {
	if coupons == nil {
		coupons = []coupon.Coupon{}
	}
	return r.store.Set(ctx, KeyCoupons, coupons)
}

// Ensure CouponRepository implements coupon.Repository
var _ coupon.Repository = (*CouponRepository)(nil)
