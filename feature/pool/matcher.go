package pool

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatchOutcome is the result of a match operation. Exactly one of the three
// shapes occurs: a fresh assignment (Token set), an idempotent repeat
// (Token set, AlreadyAssigned), or an exhausted pool (NoneAvailable).
type MatchOutcome struct {
	Token           string
	AlreadyAssigned bool
	NoneAvailable   bool
}

// Match assigns one item to the requestor, or returns their existing
// assignment. An empty pool is a normal outcome, not an error.
//
// Assignment is a conditional write: the claim UPDATE only applies while the
// item is still live and unassigned. Losing the race to a concurrent matcher
// shrinks the observed available set, so the retry loop terminates after at
// most pool-size iterations.
func (s *Service) Match(ctx context.Context, namespace, requestor string) (*MatchOutcome, error) {
	existing, err := s.store.FindAssigned(ctx, namespace, requestor)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &MatchOutcome{Token: existing.Token, AlreadyAssigned: true}, nil
	}

	for {
		candidate, err := s.store.OldestAvailable(ctx, namespace)
		if err != nil {
			return nil, err
		}
		if candidate == nil {
			return &MatchOutcome{NoneAvailable: true}, nil
		}

		claimed, err := s.store.Claim(ctx, candidate.ID, requestor, time.Now())
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent call for the same requestor completed first; the
			// (namespace, requestor) constraint rejected our claim. Return
			// the assignment that won.
			existing, lookupErr := s.store.FindAssigned(ctx, namespace, requestor)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing != nil {
				return &MatchOutcome{Token: existing.Token, AlreadyAssigned: true}, nil
			}
			// The winning assignment was removed in between; claim again.
			continue
		}
		if err != nil {
			return nil, err
		}

		if !claimed {
			// Lost the item to another requestor (or it was tombstoned).
			s.logger.Debug("Claim lost, retrying selection",
				zap.String("namespace", namespace),
				zap.String("requestor", requestor),
				zap.String("token", candidate.Token),
			)
			continue
		}

		return &MatchOutcome{Token: candidate.Token}, nil
	}
}
