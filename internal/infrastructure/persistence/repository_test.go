package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore() *kvstore.MemoryStore {
	return kvstore.NewMemoryStore(zap.NewNop())
}

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCartRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(newStore())

	assert.Empty(t, repo.List(ctx))

	items := []cart.Item{
		{
			ID:      "p1-M",
			Product: cart.Product{ID: "p1", Name: "티셔츠", Price: valueobject.KRW(19000)},
			Size:    "M",
			Qty:     2,
		},
	}
	require.NoError(t, repo.Save(ctx, items))

	got := repo.List(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "p1-M", got[0].ID)
	assert.Equal(t, 2, got[0].Qty)
	assert.True(t, got[0].Product.Price.Equal(valueobject.KRW(19000)))

	require.NoError(t, repo.Clear(ctx))
	assert.Empty(t, repo.List(ctx))
}

func TestCartRepository_CorruptDocumentReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	store.SetRaw(KeyCart, []byte("{not json"))

	repo := NewCartRepository(store)
	got := repo.List(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCouponRepository_CorruptDocumentReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	store.SetRaw(KeyCoupons, []byte(`"a string, not a list"`))

	repo := NewCouponRepository(store)
	got := repo.List(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, repo.Save(ctx, []coupon.Coupon{coupon.NewWelcomeCoupon(testNow)}))
	assert.Len(t, repo.List(ctx), 1)
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newStore())

	u, err := identity.NewLocalUser("kim@example.com", "김철수", "secret1", testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, []identity.User{*u}))

	found, ok := repo.FindByID(ctx, "kim@example.com")
	require.True(t, ok)
	assert.Equal(t, "김철수", found.Name)

	_, ok = repo.FindByID(ctx, "nobody@example.com")
	assert.False(t, ok)
}

func TestSessionRepository_SaveMirrorsThreeKeys(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	repo := NewSessionRepository(store)

	_, ok := repo.Current(ctx)
	assert.False(t, ok)

	session := identity.NewSession(identity.Profile{
		ID:   "admin",
		Name: "관리자",
		Role: identity.RoleAdmin,
	}, "token-123")
	require.NoError(t, repo.Save(ctx, session))

	assert.True(t, store.Has(ctx, KeyLoginUser))
	assert.True(t, store.Has(ctx, KeyLoginInfo))
	assert.True(t, store.Has(ctx, KeyIsLogin))

	got, ok := repo.Current(ctx)
	require.True(t, ok)
	assert.True(t, got.IsAdmin())
	assert.Equal(t, "token-123", got.Info.Token)
}

func TestSessionRepository_ClearRemovesLegacyAuthKey(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	repo := NewSessionRepository(store)

	require.NoError(t, repo.Save(ctx, identity.NewSession(identity.Profile{ID: "u1"}, "t")))
	require.NoError(t, store.Set(ctx, KeyAuth, map[string]string{"token": "stale"}))

	require.NoError(t, repo.Clear(ctx))

	assert.False(t, store.Has(ctx, KeyLoginUser))
	assert.False(t, store.Has(ctx, KeyLoginInfo))
	assert.False(t, store.Has(ctx, KeyIsLogin))
	assert.False(t, store.Has(ctx, KeyAuth))

	_, ok := repo.Current(ctx)
	assert.False(t, ok)
}

func TestSessionRepository_FalseIsLoginMeansNoSession(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	repo := NewSessionRepository(store)

	session := identity.NewSession(identity.Profile{ID: "u1"}, "t")
	session.IsLogin = false
	require.NoError(t, repo.Save(ctx, session))

	_, ok := repo.Current(ctx)
	assert.False(t, ok)
}

func TestCheckoutStageRepository_ClearTempKeepsLastCheckout(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	repo := NewCheckoutStageRepository(store)

	payload := checkout.Payload{Items: []checkout.RawItem{{ID: "p1", Name: "셔츠"}}}
	require.NoError(t, repo.SaveLastCheckout(ctx, payload))
	require.NoError(t, repo.SavePayPayload(ctx, payload))
	require.NoError(t, repo.SavePendingOrder(ctx, checkout.RawItem{ID: "p2"}))
	require.NoError(t, repo.SaveCartCheckout(ctx, payload.Items))

	require.NoError(t, repo.ClearTemp(ctx))

	_, ok := repo.LoadPayPayload(ctx)
	assert.False(t, ok)
	_, ok = repo.LoadPendingOrder(ctx)
	assert.False(t, ok)
	_, ok = repo.LoadCartCheckout(ctx)
	assert.False(t, ok)

	last, ok := repo.LoadLastCheckout(ctx)
	require.True(t, ok)
	assert.Len(t, last.Items, 1)
}
