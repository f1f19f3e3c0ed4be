package customer

import (
	"context"

	"maqha/internal/domain"
)

// Repository persists loyalty-program customers. Stamp and free-drink
// counters are only ever written through UpdateLoyalty, which the ledger
// calls; handlers read but never mutate them.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	UpdateLoyalty(ctx context.Context, id string, stamps, freeDrinks int) (*domain.Customer, error)
}
