package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

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

const orderColumns = `id::text, number, session_id, customer_id::text, subtotal_cents, discount_cents, fee_cents, total_cents,
       payment_method, fulfillment_mode, COALESCE(table_ref, ''), COALESCE(address, ''), used_free_drink, status, created_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (number, session_id, customer_id, subtotal_cents, discount_cents, fee_cents, total_cents,
                    payment_method, fulfillment_mode, table_ref, address, used_free_drink, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''), $12, $13)
RETURNING id::text, created_at
`
	var created domain.Order
	if err := tx.QueryRow(ctx, q,
		o.Number,
		o.SessionID,
		o.CustomerID,
		o.SubtotalCents,
		o.DiscountCents,
		o.FeeCents,
		o.TotalCents,
		o.PaymentMethod,
		o.FulfillmentMode,
		o.Table,
		o.Address,
		o.UsedFreeDrink,
		o.Status,
	).Scan(&created.ID, &created.CreatedAt); err != nil {
		r.logger.Printf("order repo: insert number=%s error=%v", o.Number, err)
		return nil, err
	}

	for _, line := range o.Lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_id, item_id, name, quantity, unit_price_cents, total_cents)
VALUES ($1, $2, $3, $4, $5, $6)
`, created.ID, line.ItemID, line.Name, line.Quantity, line.UnitPriceCents, line.TotalCents); err != nil {
			r.logger.Printf("order repo: insert line number=%s item=%s error=%v", o.Number, line.ItemID, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result := o
	result.ID = created.ID
	result.CreatedAt = created.CreatedAt
	return &result, nil
}

func (r *postgresRepo) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE number = $1
LIMIT 1
`
	o, err := r.scanOrder(r.pool.QueryRow(ctx, q, number))
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
`
	return r.list(ctx, q, customerID)
}

func (r *postgresRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE session_id = $1
ORDER BY created_at DESC
`
	return r.list(ctx, q, sessionID)
}

func (r *postgresRepo) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE status = $1
ORDER BY created_at ASC
`
	return r.list(ctx, q, status)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, number string, status domain.OrderStatus) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $1
WHERE number = $2
RETURNING ` + orderColumns + `
`
	o, err := r.scanOrder(r.pool.QueryRow(ctx, q, status, number))
	if err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// NextDailySequence atomically increments and returns the per-day order
// counter used to compose order numbers.
func (r *postgresRepo) NextDailySequence(ctx context.Context, day time.Time) (int, error) {
	const q = `
INSERT INTO order_counters (day, counter)
VALUES ($1, 1)
ON CONFLICT (day) DO UPDATE SET counter = order_counters.counter + 1
RETURNING counter
`
	var seq int
	if err := r.pool.QueryRow(ctx, q, day.UTC().Format("2006-01-02")).Scan(&seq); err != nil {
		r.logger.Printf("order repo: next sequence error=%v", err)
		return 0, err
	}
	return seq, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if err := r.attachLines(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresRepo) attachLines(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT item_id, name, quantity, unit_price_cents, total_cents
FROM order_lines
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ItemID, &line.Name, &line.Quantity, &line.UnitPriceCents, &line.TotalCents); err != nil {
			return err
		}
		o.Lines = append(o.Lines, line)
	}
	return rows.Err()
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var customerID *string
	err := row.Scan(
		&o.ID,
		&o.Number,
		&o.SessionID,
		&customerID,
		&o.SubtotalCents,
		&o.DiscountCents,
		&o.FeeCents,
		&o.TotalCents,
		&o.PaymentMethod,
		&o.FulfillmentMode,
		&o.Table,
		&o.Address,
		&o.UsedFreeDrink,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.CustomerID = customerID
	return &o, nil
}
