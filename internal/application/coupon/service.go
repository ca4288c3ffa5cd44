package coupon

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles coupon ledger operations
type Service struct {
	repo           coupon.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewService creates a new coupon Service
func NewService(repo coupon.Repository, logger *zap.Logger) *Service {
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

// List returns the ledger split into usable and spent coupons
func (s *Service) List(ctx context.Context) LedgerResponse {
	now := s.now()
	all := s.repo.List(ctx)

	available := make([]coupon.Coupon, 0, len(all))
	used := make([]coupon.Coupon, 0)
	for _, c := range all {
		if c.IsUsable(now) {
			available = append(available, c)
		} else {
			used = append(used, c)
		}
	}
	return LedgerResponse{Coupons: all, Available: available, Used: used}
}

// Find returns the coupon with the given ID
func (s *Service) Find(ctx context.Context, id string) (*coupon.Coupon, bool) {
	for _, c := range s.repo.List(ctx) {
		if c.ID == id {
			return &c, true
		}
	}
	return nil, false
}

// IssueWelcome grants the signup coupon. Granting is idempotent: if the
// ledger already holds the welcome coupon ID, in any state, nothing is
// added.
func (s *Service) IssueWelcome(ctx context.Context) (*IssueWelcomeResponse, error) {
	ledger := s.repo.List(ctx)
	for _, c := range ledger {
		if c.ID == coupon.WelcomeCouponID {
			return &IssueWelcomeResponse{Issued: false, Coupon: c}, nil
		}
	}

	granted := coupon.NewWelcomeCoupon(s.now())
	ledger = append(ledger, granted)
	if err := s.repo.Save(ctx, ledger); err != nil {
		return nil, err
	}
	s.publish(ctx, coupon.NewIssuedEvent(granted))

	return &IssueWelcomeResponse{Issued: true, Coupon: granted}, nil
}

// MarkUsed spends a coupon. Spending an already-used coupon is an error;
// the entry stays in the ledger as history either way.
func (s *Service) MarkUsed(ctx context.Context, id string) error {
	ledger := s.repo.List(ctx)
	for i := range ledger {
		if ledger[i].ID != id {
			continue
		}
		if err := ledger[i].MarkUsed(s.now()); err != nil {
			return err
		}
		if err := s.repo.Save(ctx, ledger); err != nil {
			return err
		}
		s.publish(ctx, coupon.NewUsedEvent(id))
		return nil
	}
	return shared.NewDomainError("NOT_FOUND", "Coupon not found: "+id)
}

func (s *Service) publish(ctx context.Context, e shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish coupon event", zap.Error(err))
	}
}
