package staff

import (
	"context"

	"maqha/internal/domain"
)

// Repository persists back-office accounts.
type Repository interface {
	Create(ctx context.Context, u domain.StaffUser) (*domain.StaffUser, error)
	GetByUsername(ctx context.Context, username string) (*domain.StaffUser, error)
	GetByID(ctx context.Context, id string) (*domain.StaffUser, error)
}
