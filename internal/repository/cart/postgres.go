package cart

import (
	"context"

	"maqha/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	const q = `
SELECT item_id, quantity, added_at
FROM cart_lines
WHERE session_id = $1
ORDER BY added_at ASC
`
	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart := domain.Cart{SessionID: sessionID}
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ItemID, &line.Quantity, &line.AddedAt); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem merges into an existing line: at most one row exists per
// (session, item), so a repeated add bumps the quantity instead of
// duplicating the line.
func (r *postgresRepo) AddItem(ctx context.Context, sessionID, itemID string, quantity int) error {
	const q = `
INSERT INTO cart_lines (session_id, item_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (session_id, item_id) DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
`
	_, err := r.pool.Exec(ctx, q, sessionID, itemID, quantity)
	return err
}

func (r *postgresRepo) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) error {
	const q = `
UPDATE cart_lines
SET quantity = $1
WHERE session_id = $2 AND item_id = $3
`
	cmd, err := r.pool.Exec(ctx, q, quantity, sessionID, itemID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveItem deletes the line if present. Removing an absent line is a no-op,
// so repeated removals are idempotent.
func (r *postgresRepo) RemoveItem(ctx context.Context, sessionID, itemID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE session_id = $1 AND item_id = $2`, sessionID, itemID)
	return err
}

func (r *postgresRepo) Clear(ctx context.Context, sessionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE session_id = $1`, sessionID)
	return err
}
