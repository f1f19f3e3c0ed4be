package order

import (
	"context"
	"time"

	"maqha/internal/domain"
)

// Repository persists placed orders. Orders are immutable snapshots except
// for their status, which the back-office advances.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, number string, status domain.OrderStatus) (*domain.Order, error)
	NextDailySequence(ctx context.Context, day time.Time) (int, error)
}
