package wishlist

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/wishlist"
	"go.uber.org/zap"
)

// Service handles wishlist business operations
type Service struct {
	repo           wishlist.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new wishlist Service
func NewService(repo wishlist.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List returns the current wishlist
func (s *Service) List(ctx context.Context) []wishlist.Item {
	return s.repo.List(ctx)
}

// Toggle likes a product, or unlikes it when its key is already present.
// Toggling twice always restores the previous state.
func (s *Service) Toggle(ctx context.Context, item wishlist.Item) (*WishlistResponse, error) {
	key := item.Key()
	items := s.repo.List(ctx)

	kept := make([]wishlist.Item, 0, len(items)+1)
	removed := false
	for _, it := range items {
		if it.Key() == key {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		kept = append(kept, item)
	}

	if err := s.repo.Save(ctx, kept); err != nil {
		return nil, err
	}
	s.publishChanged(ctx, kept)

	return &WishlistResponse{Items: kept, Added: !removed}, nil
}

// Clear empties the wishlist
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.publishChanged(ctx, nil)
	return nil
}

func (s *Service) publishChanged(ctx context.Context, items []wishlist.Item) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, wishlist.NewChangedEvent(items)); err != nil {
		s.logger.Warn("failed to publish wishlist change", zap.Error(err))
	}
}
