// Package history keeps the bounded per-session order history the storefront
// shows on the "my orders" screen. Entries are most-recent-first and the
// oldest are dropped silently past the cap.
package history

import (
	"context"
	"encoding/json"
	"errors"

	"maqha/internal/domain"
	"maqha/internal/kvstore"
)

// MaxEntries bounds the history length per session.
const MaxEntries = 50

type Store struct {
	store kvstore.Store
}

func New(store kvstore.Store) *Store {
	return &Store{store: store}
}

func key(sessionID string) string {
	return "orders:" + sessionID
}

// Append prepends the summary and truncates to MaxEntries.
func (s *Store) Append(ctx context.Context, sessionID string, sum domain.OrderSummary) error {
	list, err := s.List(ctx, sessionID)
	if err != nil {
		return err
	}
	list = append([]domain.OrderSummary{sum}, list...)
	if len(list) > MaxEntries {
		list = list[:MaxEntries]
	}
	return s.save(ctx, sessionID, list)
}

// List returns the history, newest first. A missing or corrupted document
// reads as empty rather than failing.
func (s *Store) List(ctx context.Context, sessionID string) ([]domain.OrderSummary, error) {
	raw, err := s.store.Get(ctx, key(sessionID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []domain.OrderSummary
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, nil
	}
	return list, nil
}

// Remove drops the entry with the given order number. Removing an unknown
// number is a no-op.
func (s *Store) Remove(ctx context.Context, sessionID, number string) error {
	list, err := s.List(ctx, sessionID)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, sum := range list {
		if sum.Number != number {
			kept = append(kept, sum)
		}
	}
	return s.save(ctx, sessionID, kept)
}

// Clear resets the session's history.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, key(sessionID))
}

func (s *Store) save(ctx context.Context, sessionID string, list []domain.OrderSummary) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, key(sessionID), raw)
}
