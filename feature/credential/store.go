package credential

import (
	"context"
	"fmt"
	"time"

	"item-matcher/core/database"

	"gorm.io/gorm"
)

// Credential is a namespace-scoped API key. Master keys are configuration
// only and never appear in this table.
type Credential struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	ApiKey    string         `gorm:"column:api_key;size:255;not null" json:"api_key"`
	Namespace string         `gorm:"size:128;not null" json:"namespace"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the GORM table name.
func (Credential) TableName() string {
	return "api_keys"
}

// Store is the durable credential table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a credential store over the given connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the api_keys table and its conditional unique index.
// As with items, uniqueness is scoped to live rows so a deleted key can be
// re-created.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Credential{}); err != nil {
		return fmt.Errorf("failed to migrate api_keys table: %w", err)
	}
	return database.EnsurePartialUnique(s.db, "api_keys", "idx_api_keys_ns_key_live", "namespace", "api_key")
}

// Exists reports whether a live credential matches both key and namespace.
// It satisfies auth.Lookup and must stay a pure read.
func (s *Store) Exists(ctx context.Context, apiKey, namespace string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Credential{}).
		Where("api_key = ? AND namespace = ?", apiKey, namespace).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up credential: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new live credential. A live duplicate key within the
// namespace surfaces as gorm.ErrDuplicatedKey.
func (s *Store) Create(ctx context.Context, apiKey, namespace string) error {
	cred := Credential{ApiKey: apiKey, Namespace: namespace}
	return s.db.WithContext(ctx).Create(&cred).Error
}

// RemoveByKey soft-deletes every live credential with the given key,
// regardless of namespace. Removing an absent key is a no-op.
func (s *Store) RemoveByKey(ctx context.Context, apiKey string) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("api_key = ?", apiKey).
		Delete(&Credential{})
	if result.Error != nil {
		return result.RowsAffected, fmt.Errorf("failed to remove credential: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// List returns all live credentials across namespaces in creation order.
func (s *Store) List(ctx context.Context) ([]Credential, error) {
	var creds []Credential
	err := s.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&creds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	return creds, nil
}
