// Package cart implements the cart aggregate: session-keyed lines with merged
// adds, overwrite-or-remove quantity updates, and totals joined in from the
// catalog plus the active fulfillment fee.
package cart

import (
	"context"
	"errors"

	"maqha/internal/domain"
)

var (
	// ErrInvalidQuantity is returned when an add carries a non-positive
	// quantity. Decrements go through SetQuantity, never AddItem.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrItemUnavailable is returned when the item exists but cannot be
	// ordered right now.
	ErrItemUnavailable = errors.New("item not available")
)

type cartRepo interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID, itemID string, quantity int) error
	SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, itemID string) error
	Clear(ctx context.Context, sessionID string) error
}

type catalogRepo interface {
	GetByID(ctx context.Context, id string) (*domain.CatalogItem, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.CatalogItem, error)
}

type fulfillmentStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Fulfillment, error)
	Clear(ctx context.Context, sessionID string) error
}

type Service struct {
	repo        cartRepo
	catalog     catalogRepo
	fulfillment fulfillmentStore
}

func New(repo cartRepo, catalog catalogRepo, fulfillment fulfillmentStore) *Service {
	return &Service{repo: repo, catalog: catalog, fulfillment: fulfillment}
}

// Get returns the authoritative priced cart for the session. Callers refetch
// through here after every mutation instead of merging state client-side.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.PricedCart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.price(ctx, cart)
}

// AddItem merges quantity into an existing line or creates one. The item must
// exist in the catalog and be orderable.
func (s *Service) AddItem(ctx context.Context, sessionID, itemID string, quantity int) (*domain.PricedCart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.catalog.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Availability != domain.Available {
		return nil, ErrItemUnavailable
	}
	if err := s.repo.AddItem(ctx, sessionID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, sessionID)
}

// SetQuantity overwrites a line's quantity exactly. A quantity of zero or
// less removes the line instead; quantities are never persisted at zero.
func (s *Service) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domain.PricedCart, error) {
	if quantity <= 0 {
		if err := s.repo.RemoveItem(ctx, sessionID, itemID); err != nil {
			return nil, err
		}
	} else if err := s.repo.SetQuantity(ctx, sessionID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.Get(ctx, sessionID)
}

// RemoveItem deletes the line. Removing an item that is not in the cart is a
// benign no-op, so the operation is idempotent.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.PricedCart, error) {
	if err := s.repo.RemoveItem(ctx, sessionID, itemID); err != nil {
		return nil, err
	}
	return s.Get(ctx, sessionID)
}

// Clear removes every line and the session's fulfillment descriptor, so no
// checkout state leaks across a cleared cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		return err
	}
	return s.fulfillment.Clear(ctx, sessionID)
}

func (s *Service) price(ctx context.Context, cart *domain.Cart) (*domain.PricedCart, error) {
	ids := make([]string, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ItemID)
	}
	items, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	priced := domain.PricedCart{SessionID: cart.SessionID, Lines: make([]domain.PricedLine, 0, len(cart.Lines))}
	for _, line := range cart.Lines {
		pl := domain.PricedLine{ItemID: line.ItemID, Quantity: line.Quantity}
		if item, ok := items[line.ItemID]; ok {
			pl.Name = item.Name
			pl.NameAr = item.NameAr
			pl.UnitPriceCents = item.PriceCents
			pl.TotalCents = item.PriceCents * int64(line.Quantity)
		} else {
			// A line whose catalog item is gone prices at zero rather
			// than failing the whole cart.
			pl.Unresolved = true
		}
		priced.ItemCount += line.Quantity
		priced.SubtotalCents += pl.TotalCents
		priced.Lines = append(priced.Lines, pl)
	}

	f, err := s.fulfillment.Get(ctx, cart.SessionID)
	switch {
	case err == nil:
		priced.FeeCents = f.FeeCents
	case errors.Is(err, domain.ErrNotFound):
		// No descriptor chosen yet; no fee.
	default:
		return nil, err
	}
	priced.TotalCents = priced.SubtotalCents + priced.FeeCents
	return &priced, nil
}
