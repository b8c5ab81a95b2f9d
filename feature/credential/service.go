package credential

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements credential management. Create and Delete are elevated
// operations; the route layer guards them with the master key middleware.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new credential service.
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

// Authorize reports whether a live credential matches both key and namespace.
// It is handed to the namespace auth middleware as its lookup.
func (s *Service) Authorize(ctx context.Context, apiKey, namespace string) (bool, error) {
	return s.store.Exists(ctx, apiKey, namespace)
}

// Create adds a new namespace-scoped credential.
// Duplicates surface as gorm.ErrDuplicatedKey for the caller to classify.
func (s *Service) Create(ctx context.Context, apiKey, namespace string) error {
	if err := s.store.Create(ctx, apiKey, namespace); err != nil {
		return err
	}
	s.logger.Info("Credential created", zap.String("namespace", namespace))
	return nil
}

// Delete soft-deletes a credential by key. Deleting an absent or already
// deleted key succeeds as a no-op.
func (s *Service) Delete(ctx context.Context, apiKey string) error {
	removed, err := s.store.RemoveByKey(ctx, apiKey)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("Credential deleted", zap.Int64("removed", removed))
	}
	return nil
}

// List returns all live credentials across namespaces.
func (s *Service) List(ctx context.Context) ([]Credential, error) {
	return s.store.List(ctx)
}
