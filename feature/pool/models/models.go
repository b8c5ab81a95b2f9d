package models

import (
	"time"

	"gorm.io/gorm"
)

// Item is one allocatable token in a namespace's pool.
//
// Rows are never hard-deleted or reused: removal sets DeletedAt and a
// re-added token becomes a fresh row. Uniqueness of (namespace, token) and
// (namespace, requestor) is enforced only over live rows, via partial unique
// indexes created during migration (see the pool store's Migrate).
type Item struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	Namespace string         `gorm:"size:128;not null;index:idx_items_namespace" json:"namespace"`
	Token     string         `gorm:"size:255;not null" json:"token"`
	Requestor *string        `gorm:"size:255" json:"requestor"`
	MatchedAt *time.Time     `json:"matched_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the GORM table name.
func (Item) TableName() string {
	return "items"
}

// MatchRequest is the body of POST /namespaces/:namespace/match.
type MatchRequest struct {
	Requestor string `json:"requestor"`
}

// MatchResponse is the envelope returned by the match endpoint.
type MatchResponse struct {
	Success         bool   `json:"success"`
	Item            string `json:"item,omitempty"`
	AlreadyAssigned bool   `json:"already_assigned"`
	Message         string `json:"message"`
}

// ItemView is the public projection of an item in list responses.
type ItemView struct {
	Token     string     `json:"token"`
	Requestor *string    `json:"requestor"`
	MatchedAt *time.Time `json:"matched_at"`
}

// ListResponse wraps the items of a namespace.
type ListResponse struct {
	Items []ItemView `json:"items"`
}

// StatsResponse reports live pool counts for a namespace.
// Available is always Total - Matched; soft-deleted rows are excluded.
type StatsResponse struct {
	Total     int64 `json:"total"`
	Matched   int64 `json:"matched"`
	Available int64 `json:"available"`
}

// BatchRequest is the body of PATCH /namespaces/:namespace/items.
type BatchRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

// SyncRequest is the body of PUT /namespaces/:namespace/items.
type SyncRequest struct {
	Items []string `json:"items"`
}

// UpdateResponse is the envelope returned by mutating pool endpoints.
type UpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
