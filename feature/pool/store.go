package pool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"item-matcher/core/database"
	"item-matcher/feature/pool/models"

	"gorm.io/gorm"
)

// Store is the durable item table. It holds no state beyond the connection;
// every operation re-reads current rows, so there is nothing to invalidate
// under concurrent access.
type Store struct {
	db *gorm.DB
}

// NewStore creates a pool store over the given connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Filter narrows List results. Zero-value fields are ignored.
type Filter struct {
	Token     string
	Requestor string
}

// Migrate creates the items table and its conditional unique indexes.
// The partial indexes over live rows are what make concurrent matching and
// re-add-after-remove safe; migration must run before the store is used.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&models.Item{}); err != nil {
		return fmt.Errorf("failed to migrate items table: %w", err)
	}
	if err := database.EnsurePartialUnique(s.db, "items", "idx_items_ns_token_live", "namespace", "token"); err != nil {
		return err
	}
	if err := database.EnsurePartialUnique(s.db, "items", "idx_items_ns_requestor_live", "namespace", "requestor"); err != nil {
		return err
	}
	return nil
}

// FindAssigned returns the live item held by the requestor, or nil.
func (s *Store) FindAssigned(ctx context.Context, namespace, requestor string) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND requestor = ?", namespace, requestor).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up assignment: %w", err)
	}
	return &item, nil
}

// OldestAvailable returns the unassigned live item with the earliest creation
// order, or nil when the pool is exhausted.
func (s *Store) OldestAvailable(ctx context.Context, namespace string) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND requestor IS NULL", namespace).
		Order("created_at ASC, id ASC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select available item: %w", err)
	}
	return &item, nil
}

// Claim assigns the item to the requestor iff it is still live and unassigned.
// The guard lives in the UPDATE itself, so two concurrent claims of the same
// item can never both succeed; the loser sees claimed=false.
func (s *Store) Claim(ctx context.Context, itemID uint, requestor string, now time.Time) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND requestor IS NULL", itemID).
		Updates(map[string]any{
			"requestor":  requestor,
			"matched_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Insert adds a new unmatched item. A live duplicate token in the namespace
// surfaces as gorm.ErrDuplicatedKey.
func (s *Store) Insert(ctx context.Context, namespace, token string) error {
	item := models.Item{Namespace: namespace, Token: token}
	return s.db.WithContext(ctx).Create(&item).Error
}

// RemoveByTokens soft-deletes every live item in the namespace whose token is
// in the given set. This is removal by value: duplicate live tokens cannot
// exist, but a matched item is removed together with its assignment.
// Returns the number of rows tombstoned.
func (s *Store) RemoveByTokens(ctx context.Context, namespace string, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).
		Where("namespace = ? AND token IN ?", namespace, tokens).
		Delete(&models.Item{})
	if result.Error != nil {
		return result.RowsAffected, fmt.Errorf("failed to remove items: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// LiveTokens returns the namespace's current live token set in creation order.
func (s *Store) LiveTokens(ctx context.Context, namespace string) ([]string, error) {
	var tokens []string
	err := s.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("namespace = ?", namespace).
		Order("created_at ASC, id ASC").
		Pluck("token", &tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list live tokens: %w", err)
	}
	return tokens, nil
}

// List returns live items in creation order, optionally filtered by token
// and/or requestor.
func (s *Store) List(ctx context.Context, namespace string, filter Filter) ([]models.Item, error) {
	query := s.db.WithContext(ctx).Where("namespace = ?", namespace)
	if filter.Token != "" {
		query = query.Where("token = ?", filter.Token)
	}
	if filter.Requestor != "" {
		query = query.Where("requestor = ?", filter.Requestor)
	}

	var items []models.Item
	if err := query.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Counts returns the number of live items and how many of them are unassigned.
func (s *Store) Counts(ctx context.Context, namespace string) (total, available int64, err error) {
	err = s.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("namespace = ?", namespace).
		Count(&total).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count items: %w", err)
	}

	err = s.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("namespace = ? AND requestor IS NULL", namespace).
		Count(&available).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count available items: %w", err)
	}

	return total, available, nil
}
