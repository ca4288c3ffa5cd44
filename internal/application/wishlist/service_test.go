package wishlist

import (
	"context"
	"testing"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/wishlist"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store := kvstore.NewMemoryStore(zap.NewNop())
	return NewService(persistence.NewWishlistRepository(store), zap.NewNop())
}

func TestService_ToggleAddsThenRemoves(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	item := wishlist.Item{ID: "p1", Name: "티셔츠", Price: valueobject.KRW(19000)}

	resp, err := svc.Toggle(ctx, item)
	require.NoError(t, err)
	assert.True(t, resp.Added)
	assert.Len(t, resp.Items, 1)

	resp, err = svc.Toggle(ctx, item)
	require.NoError(t, err)
	assert.False(t, resp.Added)
	assert.Empty(t, resp.Items)
}

func TestService_ToggleMatchesByProductID(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Toggle(ctx, wishlist.Item{ProductID: "p1", Name: "티셔츠"})
	require.NoError(t, err)

	// Same product arriving from another section, still keyed by productId
	resp, err := svc.Toggle(ctx, wishlist.Item{ProductID: "p1", Name: "티셔츠 (기획전)"})
	require.NoError(t, err)
	assert.False(t, resp.Added)
	assert.Empty(t, resp.Items)
}

func TestService_ToggleCompositeKeyForAnonymousProducts(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	a := wishlist.Item{Name: "무지 티셔츠", Image: "/img/a.jpg", Price: valueobject.KRW(9900)}
	b := wishlist.Item{Name: "무지 티셔츠", Image: "/img/b.jpg", Price: valueobject.KRW(9900)}

	_, err := svc.Toggle(ctx, a)
	require.NoError(t, err)
	resp, err := svc.Toggle(ctx, b)
	require.NoError(t, err)

	// Different images are different entries
	assert.True(t, resp.Added)
	assert.Len(t, resp.Items, 2)
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Toggle(ctx, wishlist.Item{ID: "p1", Name: "티셔츠"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))
	assert.Empty(t, svc.List(ctx))
}
