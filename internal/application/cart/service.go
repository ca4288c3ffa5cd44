package cart

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles cart business operations
type Service struct {
	repo           cart.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new cart Service
func NewService(repo cart.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List returns the current cart
func (s *Service) List(ctx context.Context) CartResponse {
	return toCartResponse(s.repo.List(ctx))
}

// Add puts a selection into the cart. Adding a (product, size) pair that
// is already present merges the quantities instead of creating a second
// line.
func (s *Service) Add(ctx context.Context, req AddItemRequest) (*CartResponse, error) {
	item, err := cart.NewItem(cart.Product{
		ID:    req.Product.ID,
		Name:  req.Product.Name,
		Image: req.Product.Image,
		Price: req.Product.Price,
	}, req.Size, req.Qty)
	if err != nil {
		return nil, err
	}

	items := s.repo.List(ctx)
	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].AddQuantity(item.Qty)
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, *item)
	}

	if err := s.repo.Save(ctx, items); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, items)

	resp := toCartResponse(items)
	return &resp, nil
}

// SetQuantity replaces the quantity of a line, clamped to [1, 99]
func (s *Service) SetQuantity(ctx context.Context, id string, qty int) (*CartResponse, error) {
	items := s.repo.List(ctx)
	found := false
	for i := range items {
		if items[i].ID == id {
			items[i].SetQuantity(qty)
			found = true
			break
		}
	}
	if !found {
		return nil, shared.NewDomainError("NOT_FOUND", "Cart item not found: "+id)
	}

	if err := s.repo.Save(ctx, items); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, items)

	resp := toCartResponse(items)
	return &resp, nil
}

// RemoveOne deletes a single line by ID. Removing an absent line is not
// an error.
func (s *Service) RemoveOne(ctx context.Context, id string) (*CartResponse, error) {
	return s.removeWhere(ctx, func(it cart.Item) bool {
		return it.ID == id
	})
}

// RemoveMany deletes a batch of lines by ID
func (s *Service) RemoveMany(ctx context.Context, ids []string) (*CartResponse, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	return s.removeWhere(ctx, func(it cart.Item) bool {
		return drop[it.ID]
	})
}

// RemovePurchased deletes the lines matching purchased (product, size)
// pairs after a completed checkout
func (s *Service) RemovePurchased(ctx context.Context, pairs []cart.PurchasedPair) (*CartResponse, error) {
	return s.removeWhere(ctx, func(it cart.Item) bool {
		for _, p := range pairs {
			if it.Matches(p.ProductID, p.Size) {
				return true
			}
		}
		return false
	})
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.publishChanged(ctx, nil)
	return nil
}

func (s *Service) removeWhere(ctx context.Context, match func(cart.Item) bool) (*CartResponse, error) {
	items := s.repo.List(ctx)
	kept := make([]cart.Item, 0, len(items))
	for _, it := range items {
		if !match(it) {
			kept = append(kept, it)
		}
	}

	if err := s.repo.Save(ctx, kept); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, kept)

	resp := toCartResponse(kept)
	return &resp, nil
}

func (s *Service) publishChanged(ctx context.Context, items []cart.Item) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, cart.NewChangedEvent(items)); err != nil {
		s.logger.Warn("failed to publish cart change", zap.Error(err))
	}
}
