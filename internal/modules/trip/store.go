// README: Trip ledger store; in-memory, newest-first, compare-and-set status.
package trip

import (
	"context"
	"sync"

	"seabid/internal/types"
)

// Store owns the canonical trip collection for the process. The platform
// keeps no durable state, so the ledger is an ordered in-memory list guarded
// by one mutex; every read hands out deep copies.
type Store struct {
	mu     sync.Mutex
	orders []*Trip // head is most recent
	byID   map[types.ID]*Trip
}

func NewStore() *Store {
	return &Store{byID: make(map[types.ID]*Trip)}
}

// Upsert inserts the trip at the head of the ledger. Re-upserting an existing
// order ID replaces the stored record in place instead of duplicating it.
func (s *Store) Upsert(ctx context.Context, t *Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := t.Clone()
	if _, ok := s.byID[t.OrderID]; ok {
		for i, cur := range s.orders {
			if cur.OrderID == t.OrderID {
				s.orders[i] = &c
				break
			}
		}
	} else {
		s.orders = append([]*Trip{&c}, s.orders...)
	}
	s.byID[t.OrderID] = &c
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := t.Clone()
	return &c, nil
}

// UpdateStatus moves the trip from `from` to `to` and applies extra mutations
// under the same lock. It reports false when the trip is no longer in `from`,
// which is how concurrent transitions lose the race.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, apply func(*Trip)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	if t.Status != from {
		return false, nil
	}
	t.Status = to
	if apply != nil {
		apply(t)
	}
	return true, nil
}

// SetReviewed flags a completed trip as reviewed. Idempotent.
func (s *Store) SetReviewed(ctx context.Context, id types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	if t.Status != StatusCompleted {
		return false, nil
	}
	t.HasReviewed = true
	return true, nil
}

// List returns newest-first copies of every trip matching the filter.
// A nil filter matches everything.
func (s *Store) List(ctx context.Context, match func(*Trip) bool) ([]*Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Trip, 0, len(s.orders))
	for _, t := range s.orders {
		if match != nil && !match(t) {
			continue
		}
		c := t.Clone()
		out = append(out, &c)
	}
	return out, nil
}

// FindQuote returns the live speculative quote a captain holds against a
// request, if any.
func (s *Store) FindQuote(ctx context.Context, requestID, captainID types.ID) (*Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.orders {
		if t.Status == StatusBidding && t.Request.ID == requestID && t.Bid.CaptainID == captainID {
			c := t.Clone()
			return &c, nil
		}
	}
	return nil, ErrNotFound
}
