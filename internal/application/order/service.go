package order

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles order ledger operations
type Service struct {
	repo           order.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewService creates a new order Service
func NewService(repo order.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the time source, for tests
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ListAll returns every order, newest first. Admin only.
func (s *Service) ListAll(ctx context.Context) OrderListResponse {
	orders := s.repo.List(ctx)
	return OrderListResponse{Orders: orders, Total: len(orders)}
}

// ListForBuyer returns the orders whose buyer matches the given ID or
// email. "My orders" passes the session identity here.
func (s *Service) ListForBuyer(ctx context.Context, idOrEmail string) OrderListResponse {
	all := s.repo.List(ctx)
	mine := make([]order.Order, 0, len(all))
	for _, o := range all {
		if o.Buyer.ID == idOrEmail || (o.Buyer.Email != "" && o.Buyer.Email == idOrEmail) {
			mine = append(mine, o)
		}
	}
	return OrderListResponse{Orders: mine, Total: len(mine)}
}

// Get returns a single order by ID
func (s *Service) Get(ctx context.Context, id string) (*order.Order, error) {
	for _, o := range s.repo.List(ctx) {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Order not found: "+id)
}

// UpdateStatus transitions an order's fulfillment status
func (s *Service) UpdateStatus(ctx context.Context, id string, target order.Status) (*order.Order, error) {
	orders := s.repo.List(ctx)
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		from := orders[i].Status
		if err := orders[i].UpdateStatus(target); err != nil {
			return nil, err
		}
		if err := s.repo.Save(ctx, orders); err != nil {
			return nil, err
		}
		s.publish(ctx, order.NewStatusChangedEvent(id, from, target))
		return &orders[i], nil
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Order not found: "+id)
}

// Delete hard-removes an order from the ledger. Admin only.
func (s *Service) Delete(ctx context.Context, id string) error {
	orders := s.repo.List(ctx)
	kept := make([]order.Order, 0, len(orders))
	found := false
	for _, o := range orders {
		if o.ID == id {
			found = true
			continue
		}
		kept = append(kept, o)
	}
	if !found {
		return shared.NewDomainError("NOT_FOUND", "Order not found: "+id)
	}
	if err := s.repo.Save(ctx, kept); err != nil {
		return err
	}
	s.publish(ctx, order.NewDeletedEvent(id))
	return nil
}

// CreateBulk files a B2B quote request as an inquiry-status order
func (s *Service) CreateBulk(ctx context.Context, req CreateBulkRequest) (*order.Order, error) {
	buyer := order.Buyer{
		ID:      req.Email,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	}
	meta := order.BulkMeta{
		NeedDate: req.NeedDate,
		WishQty:  req.WishQty,
		Message:  req.Message,
		Agree:    req.Agree,
		Source:   req.Source,
	}

	o, err := order.NewBulk(s.now(), buyer, req.Product, req.WishQty, meta)
	if err != nil {
		return nil, err
	}

	// Newest first
	orders := append([]order.Order{*o}, s.repo.List(ctx)...)
	if err := s.repo.Save(ctx, orders); err != nil {
		return nil, err
	}
	s.publish(ctx, order.NewCreatedEvent(o))

	return o, nil
}

func (s *Service) publish(ctx context.Context, e shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish order event", zap.Error(err))
	}
}
