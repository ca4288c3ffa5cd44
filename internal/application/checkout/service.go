package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Buyer identity fallbacks. Orders placed without a session belong to
// the guest buyer; a member whose profile carries no name is labeled by
// the local part of their email, then by the generic member label.
const (
	GuestBuyerID     = "guest"
	GuestBuyerName   = "비회원"
	DefaultBuyerName = "사용자"
)

// Service orchestrates the checkout flow: staging a selection, pricing
// it, recording the payment method, and turning the confirmed payload
// into orders
type Service struct {
	stages         checkout.StageRepository
	cartRepo       cart.Repository
	couponRepo     coupon.Repository
	orderRepo      order.Repository
	sessionRepo    identity.SessionRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewService creates a new checkout Service
func NewService(
	stages checkout.StageRepository,
	cartRepo cart.Repository,
	couponRepo coupon.Repository,
	orderRepo order.Repository,
	sessionRepo identity.SessionRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		stages:      stages,
		cartRepo:    cartRepo,
		couponRepo:  couponRepo,
		orderRepo:   orderRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the time source, for tests
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// BuyNow stages a single line for immediate checkout, bypassing the cart
func (s *Service) BuyNow(ctx context.Context, item checkout.RawItem) error {
	if _, ok := item.Normalize(); !ok {
		return shared.NewDomainError("INVALID_ITEM", "Item carries no identifiable product")
	}
	return s.stages.SavePendingOrder(ctx, item)
}

// StageCartSelection stages the lines selected on the cart page
func (s *Service) StageCartSelection(ctx context.Context, items []checkout.RawItem) error {
	if len(checkout.NormalizeItems(items)) == 0 {
		return shared.ErrEmptyCheckout
	}
	return s.stages.SaveCartCheckout(ctx, items)
}

// Quote prices a selection without touching the staged state
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*checkout.Quote, error) {
	items, err := s.resolveSelection(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	q := checkout.NewQuote(items, s.findCoupon(ctx, req.CouponID), s.now())
	return &q, nil
}

// Begin prices a selection and stages it as the reviewed checkout, the
// step before payment method selection
func (s *Service) Begin(ctx context.Context, req QuoteRequest) (*checkout.Quote, error) {
	q, err := s.Quote(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.stages.SaveLastCheckout(ctx, payloadFromQuote(*q)); err != nil {
		return nil, err
	}
	return q, nil
}

// SelectMethod records the chosen payment method on the staged review.
// The resulting payload is what confirmation consumes.
func (s *Service) SelectMethod(ctx context.Context, req SelectMethodRequest) (*checkout.Payload, error) {
	payload := req.Payload
	if payload.IsEmpty() {
		staged, ok := s.stages.LoadLastCheckout(ctx)
		if !ok || staged.IsEmpty() {
			return nil, shared.ErrEmptyCheckout
		}
		payload = staged
	}
	payload.Method = req.Method

	if err := s.stages.SavePayPayload(ctx, *payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Confirm finalizes a checkout: the coupon is spent, one order is
// written per line, the purchased lines leave the cart, and the staged
// flow state is cleared. There is no rollback across these steps; a
// failure surfaces as a plain error and leaves whatever already
// happened in place.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (*ConfirmResponse, error) {
	payload := req.Payload
	if payload.IsEmpty() {
		staged, ok := s.stages.LoadPayPayload(ctx)
		if !ok || staged.IsEmpty() {
			return nil, shared.ErrEmptyCheckout
		}
		payload = staged
	}

	items := checkout.NormalizeItems(payload.Items)
	if len(items) == 0 {
		return nil, shared.ErrEmptyCheckout
	}

	subtotal := checkout.Subtotal(items)
	shipping := checkout.ShippingFor(subtotal)
	discount := s.resolveDiscount(ctx, payload, subtotal)
	effective := checkout.EffectiveDiscount(subtotal, discount)

	if payload.Coupon != nil && payload.Coupon.ID != "" {
		if err := s.spendCoupon(ctx, payload.Coupon.ID); err != nil {
			return nil, err
		}
	}

	orders, purchased, err := s.writeOrders(ctx, items, subtotal, effective, shipping, payload.Method)
	if err != nil {
		return nil, err
	}

	s.consumeCartLines(ctx, purchased)

	if err := s.stages.ClearTemp(ctx); err != nil {
		s.logger.Warn("failed to clear staged checkout state", zap.Error(err))
	}

	return &ConfirmResponse{Orders: orders, Purchased: purchased}, nil
}

// resolveSelection applies the selection priority: explicit items, then
// the staged buy-now line, then the cart page handoff, then the cart
func (s *Service) resolveSelection(ctx context.Context, explicit []checkout.RawItem) ([]checkout.LineItem, error) {
	if items := checkout.NormalizeItems(explicit); len(items) > 0 {
		return items, nil
	}
	if pending, ok := s.stages.LoadPendingOrder(ctx); ok {
		if item, ok := pending.Normalize(); ok {
			return []checkout.LineItem{item}, nil
		}
	}
	if staged, ok := s.stages.LoadCartCheckout(ctx); ok {
		if items := checkout.NormalizeItems(staged); len(items) > 0 {
			return items, nil
		}
	}
	raw := make([]checkout.RawItem, 0)
	for _, it := range s.cartRepo.List(ctx) {
		raw = append(raw, checkout.RawFromCartItem(it))
	}
	if items := checkout.NormalizeItems(raw); len(items) > 0 {
		return items, nil
	}
	return nil, shared.ErrEmptyCheckout
}

// resolveDiscount prefers the discount already priced into the payload;
// otherwise the coupon is re-evaluated against the subtotal
func (s *Service) resolveDiscount(ctx context.Context, payload *checkout.Payload, subtotal valueobject.Money) valueobject.Money {
	if payload.Discount != nil {
		return *payload.Discount
	}
	if payload.Coupon != nil {
		c := s.findCoupon(ctx, payload.Coupon.ID)
		if c == nil {
			c = &payload.Coupon.Coupon
		}
		return coupon.DiscountFor(subtotal, c, s.now())
	}
	return valueobject.ZeroKRW()
}

// writeOrders creates one order per line. The effective discount is
// split proportionally with per-line rounding, and shipping is carried
// entirely by the first line.
func (s *Service) writeOrders(
	ctx context.Context,
	items []checkout.LineItem,
	subtotal, effective, shipping valueobject.Money,
	method string,
) ([]order.Order, []cart.PurchasedPair, error) {
	buyer := s.currentBuyer(ctx)
	base := s.now()
	shares := checkout.AllocateDiscount(items, effective)

	created := make([]order.Order, 0, len(items))
	purchased := make([]cart.PurchasedPair, 0, len(items))
	for i, it := range items {
		lineShipping := valueobject.ZeroKRW()
		if i == 0 {
			lineShipping = shipping
		}
		lineSubtotal := it.LineTotal()
		lineTotal := lineSubtotal.Sub(shares[i]).Add(lineShipping).FloorZero()

		o, err := order.NewLine(
			order.LineID(base, i),
			base,
			buyer,
			order.Product{
				ID:    it.Product.ID,
				Name:  it.Product.Name,
				Image: it.Product.Image,
				Price: it.Product.Price,
			},
			it.Option.Size,
			it.Qty,
			lineSubtotal,
			shares[i],
			lineShipping,
			lineTotal,
			method,
		)
		if err != nil {
			return nil, nil, err
		}
		created = append(created, *o)
		purchased = append(purchased, cart.PurchasedPair{ProductID: it.Product.ID, Size: it.Option.Size})
	}

	// Newest first
	ledger := append(append([]order.Order{}, created...), s.orderRepo.List(ctx)...)
	if err := s.orderRepo.Save(ctx, ledger); err != nil {
		return nil, nil, err
	}
	for i := range created {
		s.publish(ctx, order.NewCreatedEvent(&created[i]))
	}

	return created, purchased, nil
}

// spendCoupon marks the coupon used in the ledger. A coupon missing from
// the ledger is ignored; a coupon already spent fails the confirmation.
func (s *Service) spendCoupon(ctx context.Context, id string) error {
	ledger := s.couponRepo.List(ctx)
	for i := range ledger {
		if ledger[i].ID != id {
			continue
		}
		if err := ledger[i].MarkUsed(s.now()); err != nil {
			return err
		}
		if err := s.couponRepo.Save(ctx, ledger); err != nil {
			return err
		}
		s.publish(ctx, coupon.NewUsedEvent(id))
		return nil
	}
	return nil
}

// consumeCartLines removes exactly the purchased (product, size) pairs
func (s *Service) consumeCartLines(ctx context.Context, purchased []cart.PurchasedPair) {
	items := s.cartRepo.List(ctx)
	kept := make([]cart.Item, 0, len(items))
	for _, it := range items {
		bought := false
		for _, p := range purchased {
			if it.Matches(p.ProductID, p.Size) {
				bought = true
				break
			}
		}
		if !bought {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return
	}
	if err := s.cartRepo.Save(ctx, kept); err != nil {
		s.logger.Warn("failed to remove purchased cart lines", zap.Error(err))
		return
	}
	s.publish(ctx, cart.NewChangedEvent(kept))
}

// currentBuyer reads the session identity, falling back to a guest buyer
func (s *Service) currentBuyer(ctx context.Context) order.Buyer {
	if session, ok := s.sessionRepo.Current(ctx); ok {
		return order.Buyer{
			ID:    session.Info.UserID,
			Name:  buyerName(session.Profile.Name, session.Profile.Email),
			Email: session.Profile.Email,
		}
	}
	return order.Buyer{ID: GuestBuyerID, Name: GuestBuyerName}
}

// buyerName resolves the display name stamped on orders: the profile
// name, else the local part of the email, else the generic member label
func buyerName(name, email string) string {
	if name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return DefaultBuyerName
}

func (s *Service) findCoupon(ctx context.Context, id string) *coupon.Coupon {
	if id == "" {
		return nil
	}
	for _, c := range s.couponRepo.List(ctx) {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// payloadFromQuote flattens a priced quote into the persisted payload
// shape
func payloadFromQuote(q checkout.Quote) checkout.Payload {
	raw := make([]checkout.RawItem, 0, len(q.Items))
	for _, it := range q.Items {
		price := it.Product.Price
		qty := valueobject.ScalarFromInt(int64(it.Qty))
		raw = append(raw, checkout.RawItem{
			Product: &checkout.RawItem{
				ID:    it.Product.ID,
				Name:  it.Product.Name,
				Image: it.Product.Image,
				Price: &price,
			},
			Size: it.Option.Size,
			Qty:  &qty,
		})
	}
	subtotal, discount, shipping, total := q.Subtotal, q.Discount, q.Shipping, q.Total
	return checkout.Payload{
		Items:    raw,
		Subtotal: &subtotal,
		Discount: &discount,
		Shipping: &shipping,
		Total:    &total,
		Coupon:   q.Coupon,
		Method:   q.Method,
	}
}

func (s *Service) publish(ctx context.Context, e shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish checkout event", zap.Error(err))
	}
}
