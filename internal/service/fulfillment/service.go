// Package fulfillment manages the per-session delivery descriptor: how the
// customer wants the order handed over and what fee that adds to the total.
package fulfillment

import (
	"context"
	"encoding/json"
	"errors"

	"maqha/internal/domain"
	"maqha/internal/kvstore"
)

var (
	// ErrTableRequired is returned for dine-in descriptors without a table.
	ErrTableRequired = errors.New("dine-in requires a table reference")
	// ErrDestinationRequired is returned for delivery descriptors without a
	// resolvable destination.
	ErrDestinationRequired = errors.New("delivery requires a destination with coordinates")
	// ErrNegativeFee is returned when the descriptor carries a negative fee.
	ErrNegativeFee = errors.New("fee must not be negative")
	// ErrUnknownMode is returned for modes outside pickup/delivery/dine_in.
	ErrUnknownMode = errors.New("unknown fulfillment mode")
)

type Service struct {
	store kvstore.Store
}

func New(store kvstore.Store) *Service {
	return &Service{store: store}
}

func key(sessionID string) string {
	return "fulfillment:" + sessionID
}

// Set validates the descriptor and replaces the active one wholesale. There
// is no partial merge; the previous descriptor is gone after this call.
func (s *Service) Set(ctx context.Context, sessionID string, f domain.Fulfillment) (*domain.Fulfillment, error) {
	normalized, err := normalize(f)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, key(sessionID), raw); err != nil {
		return nil, err
	}
	return normalized, nil
}

// Get returns the active descriptor, or domain.ErrNotFound when the session
// has not chosen one. A corrupted stored document is treated as absent.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Fulfillment, error) {
	raw, err := s.store.Get(ctx, key(sessionID))
	if err != nil {
		return nil, err
	}
	var f domain.Fulfillment
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

// Clear removes the active descriptor. Clearing a session without one is a
// no-op.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, key(sessionID))
}

func normalize(f domain.Fulfillment) (*domain.Fulfillment, error) {
	if f.FeeCents < 0 {
		return nil, ErrNegativeFee
	}
	switch f.Mode {
	case domain.Pickup:
		// Pickup carries no destination, no table, and no fee.
		return &domain.Fulfillment{Mode: domain.Pickup}, nil
	case domain.DineIn:
		if f.Table == "" {
			return nil, ErrTableRequired
		}
		return &domain.Fulfillment{Mode: domain.DineIn, Table: f.Table}, nil
	case domain.Delivery:
		if f.Destination == nil || f.Destination.Address == "" {
			return nil, ErrDestinationRequired
		}
		if f.Destination.Location.Lat == 0 && f.Destination.Location.Lng == 0 {
			return nil, ErrDestinationRequired
		}
		dest := *f.Destination
		return &domain.Fulfillment{Mode: domain.Delivery, FeeCents: f.FeeCents, Destination: &dest}, nil
	default:
		return nil, ErrUnknownMode
	}
}
