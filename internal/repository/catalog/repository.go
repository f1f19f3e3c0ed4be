package catalog

import (
	"context"

	"maqha/internal/domain"
)

// Repository is the read/write store for menu items. The cart and order
// services use it read-only; writes come from the importer and seeder.
type Repository interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	GetByID(ctx context.Context, id string) (*domain.CatalogItem, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.CatalogItem, error)
	Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
}
