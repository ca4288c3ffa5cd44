package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	store    *kvstore.MemoryStore
	cart     cart.Repository
	coupons  coupon.Repository
	orders   order.Repository
	sessions identity.SessionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kvstore.NewMemoryStore(zap.NewNop())
	f := &fixture{
		store:    store,
		cart:     persistence.NewCartRepository(store),
		coupons:  persistence.NewCouponRepository(store),
		orders:   persistence.NewOrderRepository(store),
		sessions: persistence.NewSessionRepository(store),
	}
	f.svc = NewService(
		persistence.NewCheckoutStageRepository(store),
		f.cart, f.coupons, f.orders, f.sessions,
		zap.NewNop(),
	)
	f.svc.SetClock(func() time.Time { return fixedNow })
	return f
}

func rawLine(id, name string, price int64, size string, qty int64) checkout.RawItem {
	p := valueobject.KRW(price)
	q := valueobject.ScalarFromInt(qty)
	return checkout.RawItem{ID: id, Name: name, Price: &p, Size: size, Qty: &q}
}

func TestQuote_CouponAndFreeShipping(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.coupons.Save(ctx, []coupon.Coupon{coupon.NewWelcomeCoupon(fixedNow)}))

	q, err := f.svc.Quote(ctx, QuoteRequest{
		Items:    []checkout.RawItem{rawLine("p1", "코트", 100000, "L", 1)},
		CouponID: coupon.WelcomeCouponID,
	})
	require.NoError(t, err)

	assert.True(t, q.Subtotal.Equal(valueobject.KRW(100000)))
	assert.True(t, q.Discount.Equal(valueobject.KRW(10000)))
	assert.True(t, q.Shipping.IsZero())
	assert.True(t, q.Total.Equal(valueobject.KRW(90000)))
}

func TestQuote_ShippingFeeBelowThreshold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	q, err := f.svc.Quote(ctx, QuoteRequest{
		Items: []checkout.RawItem{rawLine("p1", "양말", 10000, "F", 1)},
	})
	require.NoError(t, err)

	assert.True(t, q.Shipping.Equal(valueobject.KRW(3000)))
	assert.True(t, q.Total.Equal(valueobject.KRW(13000)))
}

func TestQuote_SelectionPriority(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Whole cart is the last resort
	require.NoError(t, f.cart.Save(ctx, []cart.Item{{
		ID:      "c1-M",
		Product: cart.Product{ID: "c1", Name: "카트상품", Price: valueobject.KRW(5000)},
		Size:    "M",
		Qty:     1,
	}}))
	q, err := f.svc.Quote(ctx, QuoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, "c1", q.Items[0].Product.ID)

	// Cart page handoff beats the cart
	require.NoError(t, f.svc.StageCartSelection(ctx, []checkout.RawItem{rawLine("s1", "선택상품", 7000, "L", 1)}))
	q, err = f.svc.Quote(ctx, QuoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, "s1", q.Items[0].Product.ID)

	// Buy-now beats the handoff
	require.NoError(t, f.svc.BuyNow(ctx, rawLine("b1", "바로구매", 9000, "S", 1)))
	q, err = f.svc.Quote(ctx, QuoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, "b1", q.Items[0].Product.ID)

	// Explicit items beat everything
	q, err = f.svc.Quote(ctx, QuoteRequest{Items: []checkout.RawItem{rawLine("e1", "직접지정", 11000, "M", 1)}})
	require.NoError(t, err)
	assert.Equal(t, "e1", q.Items[0].Product.ID)
}

func TestQuote_EmptySelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Quote(ctx, QuoteRequest{})
	assert.ErrorIs(t, err, shared.ErrEmptyCheckout)
}

func TestConfirm_CreatesOneOrderPerLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.coupons.Save(ctx, []coupon.Coupon{coupon.NewWelcomeCoupon(fixedNow)}))

	_, err := f.svc.Begin(ctx, QuoteRequest{
		Items: []checkout.RawItem{
			rawLine("p1", "코트", 60000, "L", 1),
			rawLine("p2", "셔츠", 40000, "M", 1),
		},
		CouponID: coupon.WelcomeCouponID,
	})
	require.NoError(t, err)

	payload, err := f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "card"})
	require.NoError(t, err)
	assert.Equal(t, "card", payload.Method)

	resp, err := f.svc.Confirm(ctx, ConfirmRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 2)

	first, second := resp.Orders[0], resp.Orders[1]
	assert.Equal(t, "ORD-1709294400000-0", first.ID)
	assert.Equal(t, "ORD-1709294400000-1", second.ID)
	assert.Equal(t, order.StatusPaid, first.Status)
	assert.Equal(t, "card", first.Method)

	// 10,000 split 60/40 with per-line rounding
	assert.True(t, first.Discount.Equal(valueobject.KRW(6000)))
	assert.True(t, second.Discount.Equal(valueobject.KRW(4000)))

	// Free shipping above 50,000, carried by the first line
	assert.True(t, first.Shipping.IsZero())
	assert.True(t, second.Shipping.IsZero())
	assert.True(t, first.Total.Equal(valueobject.KRW(54000)))
	assert.True(t, second.Total.Equal(valueobject.KRW(36000)))

	// Ledger holds them newest first
	ledger := f.orders.List(ctx)
	require.Len(t, ledger, 2)
	assert.Equal(t, first.ID, ledger[0].ID)
}

func TestConfirm_ShippingOnFirstLineOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Begin(ctx, QuoteRequest{
		Items: []checkout.RawItem{
			rawLine("p1", "양말", 4000, "F", 1),
			rawLine("p2", "손수건", 6000, "F", 1),
		},
	})
	require.NoError(t, err)
	_, err = f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "transfer"})
	require.NoError(t, err)

	resp, err := f.svc.Confirm(ctx, ConfirmRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 2)

	assert.True(t, resp.Orders[0].Shipping.Equal(valueobject.KRW(3000)))
	assert.True(t, resp.Orders[1].Shipping.IsZero())
	assert.True(t, resp.Orders[0].Total.Equal(valueobject.KRW(7000)))
	assert.True(t, resp.Orders[1].Total.Equal(valueobject.KRW(6000)))
}

func TestConfirm_SpendsCouponAndBlocksReuse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.coupons.Save(ctx, []coupon.Coupon{coupon.NewWelcomeCoupon(fixedNow)}))

	confirmOnce := func() (*ConfirmResponse, error) {
		_, err := f.svc.Begin(ctx, QuoteRequest{
			Items:    []checkout.RawItem{rawLine("p1", "코트", 100000, "L", 1)},
			CouponID: coupon.WelcomeCouponID,
		})
		require.NoError(t, err)
		_, err = f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "card"})
		require.NoError(t, err)
		return f.svc.Confirm(ctx, ConfirmRequest{})
	}

	_, err := confirmOnce()
	require.NoError(t, err)

	spent := f.coupons.List(ctx)
	require.Len(t, spent, 1)
	assert.True(t, spent[0].Used)

	// The payload still references the coupon, but it is spent now
	_, err = confirmOnce()
	assert.Error(t, err)
}

func TestConfirm_RemovesExactlyPurchasedPairs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.cart.Save(ctx, []cart.Item{
		{ID: "p1-M", Product: cart.Product{ID: "p1", Name: "티셔츠", Price: valueobject.KRW(19000)}, Size: "M", Qty: 1},
		{ID: "p1-L", Product: cart.Product{ID: "p1", Name: "티셔츠", Price: valueobject.KRW(19000)}, Size: "L", Qty: 1},
		{ID: "p2-F", Product: cart.Product{ID: "p2", Name: "모자", Price: valueobject.KRW(12000)}, Size: "F", Qty: 1},
	}))

	_, err := f.svc.Begin(ctx, QuoteRequest{
		Items: []checkout.RawItem{rawLine("p1", "티셔츠", 19000, "M", 1)},
	})
	require.NoError(t, err)
	_, err = f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "card"})
	require.NoError(t, err)

	resp, err := f.svc.Confirm(ctx, ConfirmRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Purchased, 1)

	left := f.cart.List(ctx)
	require.Len(t, left, 2)
	ids := []string{left[0].ID, left[1].ID}
	assert.Contains(t, ids, "p1-L")
	assert.Contains(t, ids, "p2-F")
}

func TestConfirm_ClearsStagedState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.svc.BuyNow(ctx, rawLine("p1", "코트", 100000, "L", 1)))
	_, err := f.svc.Begin(ctx, QuoteRequest{})
	require.NoError(t, err)
	_, err = f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "card"})
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, ConfirmRequest{})
	require.NoError(t, err)

	assert.False(t, f.store.Has(ctx, persistence.KeyPayPayload))
	assert.False(t, f.store.Has(ctx, persistence.KeyPendingOrder))
	assert.False(t, f.store.Has(ctx, persistence.KeyCartCheckout))

	// A second confirm finds nothing staged
	_, err = f.svc.Confirm(ctx, ConfirmRequest{})
	assert.ErrorIs(t, err, shared.ErrEmptyCheckout)
}

func TestConfirm_ExplicitPayloadWinsOverStaged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Begin(ctx, QuoteRequest{Items: []checkout.RawItem{rawLine("old", "이전상품", 10000, "M", 1)}})
	require.NoError(t, err)
	_, err = f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "card"})
	require.NoError(t, err)

	resp, err := f.svc.Confirm(ctx, ConfirmRequest{Payload: &checkout.Payload{
		Items:  []checkout.RawItem{rawLine("new", "새상품", 20000, "L", 1)},
		Method: "transfer",
	}})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "new", resp.Orders[0].Product.ID)
	assert.Equal(t, "transfer", resp.Orders[0].Method)
}

func TestConfirm_BuyerFromSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.sessions.Save(ctx, identity.NewSession(identity.Profile{
		ID: "kim@example.com", Name: "김철수", Email: "kim@example.com",
	}, "token")))

	_, err := f.svc.Begin(ctx, QuoteRequest{Items: []checkout.RawItem{rawLine("p1", "코트", 100000, "L", 1)}})
	require.NoError(t, err)
	_, err = f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "card"})
	require.NoError(t, err)

	resp, err := f.svc.Confirm(ctx, ConfirmRequest{})
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", resp.Orders[0].Buyer.ID)
	assert.Equal(t, "김철수", resp.Orders[0].Buyer.Name)
}

func TestConfirm_GuestBuyerWithoutSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Begin(ctx, QuoteRequest{Items: []checkout.RawItem{rawLine("p1", "코트", 100000, "L", 1)}})
	require.NoError(t, err)
	_, err = f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "card"})
	require.NoError(t, err)

	resp, err := f.svc.Confirm(ctx, ConfirmRequest{})
	require.NoError(t, err)
	assert.Equal(t, GuestBuyerID, resp.Orders[0].Buyer.ID)
	assert.Equal(t, "비회원", resp.Orders[0].Buyer.Name)
}

func TestConfirm_BuyerNameFallsBackToEmailLocalPart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.sessions.Save(ctx, identity.NewSession(identity.Profile{
		ID: "hong@example.com", Email: "hong@example.com",
	}, "token")))

	_, err := f.svc.Begin(ctx, QuoteRequest{Items: []checkout.RawItem{rawLine("p1", "코트", 100000, "L", 1)}})
	require.NoError(t, err)
	_, err = f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "card"})
	require.NoError(t, err)

	resp, err := f.svc.Confirm(ctx, ConfirmRequest{})
	require.NoError(t, err)
	assert.Equal(t, "hong@example.com", resp.Orders[0].Buyer.ID)
	assert.Equal(t, "hong", resp.Orders[0].Buyer.Name)
}

func TestBuyerName(t *testing.T) {
	tests := []struct {
		name  string
		pname string
		email string
		want  string
	}{
		{"profile name wins", "김철수", "kim@example.com", "김철수"},
		{"email local part", "", "hong@example.com", "hong"},
		{"no name and no usable email", "", "", "사용자"},
		{"email without local part", "", "@example.com", "사용자"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buyerName(tt.pname, tt.email))
		})
	}
}

func TestConfirm_UnevenAllocationMatchesPerLineRounding(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.coupons.Save(ctx, []coupon.Coupon{{
		ID:     "c-1000",
		Name:   "천원 쿠폰",
		Amount: valueobject.KRW(1000),
	}}))

	// 3,000 / 3,000 / 3,000: each line rounds 333.33 to 333, and the
	// 1 won remainder is deliberately not redistributed
	_, err := f.svc.Begin(ctx, QuoteRequest{
		Items: []checkout.RawItem{
			rawLine("p1", "양말A", 3000, "F", 1),
			rawLine("p2", "양말B", 3000, "F", 1),
			rawLine("p3", "양말C", 3000, "F", 1),
		},
		CouponID: "c-1000",
	})
	require.NoError(t, err)
	_, err = f.svc.SelectMethod(ctx, SelectMethodRequest{Method: "card"})
	require.NoError(t, err)

	resp, err := f.svc.Confirm(ctx, ConfirmRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Orders, 3)
	for _, o := range resp.Orders {
		assert.True(t, o.Discount.Equal(valueobject.KRW(333)), "line %s", o.ID)
	}
}
