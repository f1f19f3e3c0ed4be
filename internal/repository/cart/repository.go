package cart

import (
	"context"

	"maqha/internal/domain"
)

// Repository persists cart lines keyed by session. The server-held rows are
// the single source of truth; every mutation is followed by a refetch rather
// than a client-side merge, so concurrent tabs converge on whatever the last
// write left behind.
type Repository interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID, itemID string, quantity int) error
	SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, itemID string) error
	Clear(ctx context.Context, sessionID string) error
}
