package pool

import (
	"context"

	"item-matcher/feature/pool/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements the pool operations over the store.
// It caches nothing: the store is the single source of truth and every
// operation re-reads current state.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new pool service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		store:  NewStore(db),
		logger: logger,
	}
}

// Store exposes the underlying store, mainly for migration at startup.
func (s *Service) Store() *Store {
	return s.store
}

// ListItems returns the namespace's live items, optionally filtered.
func (s *Service) ListItems(ctx context.Context, namespace string, filter Filter) ([]models.Item, error) {
	return s.store.List(ctx, namespace, filter)
}

// Stats returns live pool counts. Matched is derived so that
// total == matched + available holds by construction.
func (s *Service) Stats(ctx context.Context, namespace string) (*models.StatsResponse, error) {
	total, available, err := s.store.Counts(ctx, namespace)
	if err != nil {
		return nil, err
	}
	return &models.StatsResponse{
		Total:     total,
		Matched:   total - available,
		Available: available,
	}, nil
}
