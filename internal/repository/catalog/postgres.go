package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	"maqha/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const itemColumns = `id, name, COALESCE(name_ar, ''), COALESCE(category, ''), price_cents, previous_price_cents, availability, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.CatalogItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM catalog_items
ORDER BY category, name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("catalog repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("catalog repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	const q = `
SELECT ` + itemColumns + `
FROM catalog_items
WHERE id = $1
`
	item, err := scanItem(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.CatalogItem, error) {
	if len(ids) == 0 {
		return map[string]domain.CatalogItem{}, nil
	}
	const q = `
SELECT ` + itemColumns + `
FROM catalog_items
WHERE id = ANY($1)
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("catalog repo: get by ids error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]domain.CatalogItem, len(ids))
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	const q = `
INSERT INTO catalog_items (id, name, name_ar, category, price_cents, previous_price_cents, availability)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    name_ar = EXCLUDED.name_ar,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    previous_price_cents = EXCLUDED.previous_price_cents,
    availability = EXCLUDED.availability
RETURNING ` + itemColumns + `
`
	res, err := scanItem(r.pool.QueryRow(ctx, q,
		item.ID,
		item.Name,
		item.NameAr,
		item.Category,
		item.PriceCents,
		item.PreviousPriceCents,
		item.Availability,
	))
	if err != nil {
		r.logger.Printf("catalog repo: upsert id=%s error=%v", item.ID, err)
		return nil, err
	}
	return &res, nil
}

func scanItem(row pgx.Row) (domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.NameAr,
		&item.Category,
		&item.PriceCents,
		&item.PreviousPriceCents,
		&item.Availability,
		&item.CreatedAt,
	)
	return item, err
}
