package pool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"item-matcher/core/reconcile"

	"gorm.io/gorm"
)

// UpdateSummary reports what a batch or sync operation actually did.
// Skipped duplicates are listed rather than silently dropped.
type UpdateSummary struct {
	Added   int
	Removed int
	Skipped []string
}

// Message renders the summary for the response envelope.
func (u *UpdateSummary) Message() string {
	var parts []string
	if u.Added > 0 {
		parts = append(parts, fmt.Sprintf("Added %d items", u.Added))
	}
	if len(u.Skipped) > 0 {
		parts = append(parts, fmt.Sprintf("Skipped %d duplicate tokens (%s)", len(u.Skipped), strings.Join(u.Skipped, ", ")))
	}
	if u.Removed > 0 {
		parts = append(parts, fmt.Sprintf("Removed %d items", u.Removed))
	}
	if len(parts) == 0 {
		return "No changes made"
	}
	return strings.Join(parts, ", ")
}

// BatchUpdate inserts and removes tokens in one call. Adds are best-effort:
// a token colliding with a live duplicate (in the database or earlier in the
// same call) is skipped and reported in the summary. Each insert and the
// removal are individually atomic; the call as a whole is not, and the
// summary reflects partial progress if an unexpected error aborts it.
func (s *Service) BatchUpdate(ctx context.Context, namespace string, add, remove []string) (*UpdateSummary, error) {
	summary := &UpdateSummary{}

	seen := make(map[string]struct{}, len(add))
	for _, token := range add {
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			summary.Skipped = append(summary.Skipped, token)
			continue
		}
		seen[token] = struct{}{}

		err := s.store.Insert(ctx, namespace, token)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			summary.Skipped = append(summary.Skipped, token)
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("failed to add token %s: %w", token, err)
		}
		summary.Added++
	}

	removed, err := s.store.RemoveByTokens(ctx, namespace, remove)
	summary.Removed = int(removed)
	if err != nil {
		return summary, err
	}

	return summary, nil
}

// SyncSet makes the namespace's live token set equal the desired set.
// It diffs against current state and applies only the difference, so a repeat
// call with the same set performs zero mutations. A removed token takes any
// assignment it carried with it.
func (s *Service) SyncSet(ctx context.Context, namespace string, desired []string) (*UpdateSummary, error) {
	current, err := s.store.LiveTokens(ctx, namespace)
	if err != nil {
		return nil, err
	}

	plan := reconcile.BuildPlan(current, desired)
	if plan.InSync() {
		return &UpdateSummary{}, nil
	}

	return s.BatchUpdate(ctx, namespace, plan.ToAdd, plan.ToRemove)
}
