package customer

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"maqha/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const customerColumns = `id::text, name, phone, card_number, stamps, free_drinks, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (name, phone, card_number, stamps, free_drinks)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + customerColumns + `
`
	res, err := r.scanCustomer(r.pool.QueryRow(ctx, q,
		c.Name,
		strings.TrimSpace(c.Phone),
		c.CardNumber,
		c.Stamps,
		c.FreeDrinks,
	))
	if err != nil {
		r.logger.Printf("customer repo: create phone=%s error=%v", c.Phone, err)
		return nil, err
	}
	return res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE phone = $1
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, strings.TrimSpace(phone)))
}

func (r *postgresRepo) UpdateLoyalty(ctx context.Context, id string, stamps, freeDrinks int) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET stamps = $1, free_drinks = $2
WHERE id = $3
RETURNING ` + customerColumns + `
`
	res, err := r.scanCustomer(r.pool.QueryRow(ctx, q, stamps, freeDrinks, id))
	if err != nil {
		r.logger.Printf("customer repo: update loyalty id=%s error=%v", id, err)
		return nil, err
	}
	return res, nil
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.CardNumber,
		&c.Stamps,
		&c.FreeDrinks,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return &c, nil
}
