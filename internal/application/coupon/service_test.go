package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	store := kvstore.NewMemoryStore(zap.NewNop())
	svc := NewService(persistence.NewCouponRepository(store), zap.NewNop())
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func TestService_IssueWelcomeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	first, err := svc.IssueWelcome(ctx)
	require.NoError(t, err)
	assert.True(t, first.Issued)
	assert.Equal(t, coupon.WelcomeCouponID, first.Coupon.ID)

	second, err := svc.IssueWelcome(ctx)
	require.NoError(t, err)
	assert.False(t, second.Issued)

	ledger := svc.List(ctx)
	assert.Len(t, ledger.Coupons, 1)
}

func TestService_IssueWelcomeStaysIdempotentAfterUse(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.IssueWelcome(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.MarkUsed(ctx, coupon.WelcomeCouponID))

	resp, err := svc.IssueWelcome(ctx)
	require.NoError(t, err)
	assert.False(t, resp.Issued)
	assert.Len(t, svc.List(ctx).Coupons, 1)
}

func TestService_MarkUsedKeepsHistory(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.IssueWelcome(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.MarkUsed(ctx, coupon.WelcomeCouponID))

	ledger := svc.List(ctx)
	assert.Empty(t, ledger.Available)
	require.Len(t, ledger.Used, 1)
	assert.True(t, ledger.Used[0].Used)
	assert.NotEmpty(t, ledger.Used[0].UsedAt)
}

func TestService_MarkUsedTwiceFails(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.IssueWelcome(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.MarkUsed(ctx, coupon.WelcomeCouponID))

	err = svc.MarkUsed(ctx, coupon.WelcomeCouponID)
	assert.Error(t, err)
}

func TestService_MarkUsedUnknownCoupon(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	assert.Error(t, svc.MarkUsed(ctx, "no-such-coupon"))
}

func TestService_ListSplitsExpiredIntoUsed(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore(zap.NewNop())
	repo := persistence.NewCouponRepository(store)
	svc := NewService(repo, zap.NewNop())
	svc.SetClock(func() time.Time { return fixedNow })

	require.NoError(t, repo.Save(ctx, []coupon.Coupon{
		{ID: "fresh", Name: "봄맞이 쿠폰", ValidUntil: "2024-12-31"},
		{ID: "stale", Name: "겨울 쿠폰", ValidUntil: "2024-01-31"},
	}))

	ledger := svc.List(ctx)
	require.Len(t, ledger.Available, 1)
	assert.Equal(t, "fresh", ledger.Available[0].ID)
	require.Len(t, ledger.Used, 1)
	assert.Equal(t, "stale", ledger.Used[0].ID)
}
