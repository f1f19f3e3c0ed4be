package staff

import (
	"context"
	"errors"
	"strings"

	"maqha/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const staffColumns = `id::text, username, password_hash, role, created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.StaffUser) (*domain.StaffUser, error) {
	const q = `
INSERT INTO staff_users (username, password_hash, role)
VALUES ($1, $2, $3)
RETURNING ` + staffColumns + `
`
	return r.scanStaff(r.pool.QueryRow(ctx, q, strings.ToLower(u.Username), u.PasswordHash, u.Role))
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	const q = `
SELECT ` + staffColumns + `
FROM staff_users
WHERE username = lower($1)
LIMIT 1
`
	return r.scanStaff(r.pool.QueryRow(ctx, q, username))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.StaffUser, error) {
	const q = `
SELECT ` + staffColumns + `
FROM staff_users
WHERE id = $1
LIMIT 1
`
	return r.scanStaff(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) scanStaff(row pgx.Row) (*domain.StaffUser, error) {
	var u domain.StaffUser
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
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
	return &u, nil
}
