package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type itemSeed struct {
	ID         string
	Name       string
	NameAr     string
	Category   string
	PriceCents int64
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	items := []itemSeed{
		{ID: "espresso-single", Name: "Single Espresso", NameAr: "اسبريسو", Category: "hot", PriceCents: 400},
		{ID: "espresso-double", Name: "Double Espresso", NameAr: "اسبريسو دبل", Category: "hot", PriceCents: 550},
		{ID: "turkish-coffee", Name: "Turkish Coffee", NameAr: "قهوة تركية", Category: "hot", PriceCents: 500},
		{ID: "flat-white", Name: "Flat White", NameAr: "فلات وايت", Category: "hot", PriceCents: 650},
		{ID: "mocha", Name: "Mocha", NameAr: "موكا", Category: "hot", PriceCents: 700},
		{ID: "iced-latte", Name: "Iced Latte", NameAr: "لاتيه مثلج", Category: "cold", PriceCents: 700},
		{ID: "iced-spanish", Name: "Iced Spanish Latte", NameAr: "سبانيش لاتيه مثلج", Category: "cold", PriceCents: 800},
		{ID: "hibiscus-tea", Name: "Hibiscus Tea", NameAr: "كركديه", Category: "tea", PriceCents: 450},
	}

	for _, item := range items {
		if err := upsertItem(ctx, pool, item); err != nil {
			return fmt.Errorf("upsert item %s: %w", item.ID, err)
		}
	}

	if err := ensureStaffUser(ctx, pool, "manager", "ChangeMe123", "manager"); err != nil {
		return fmt.Errorf("ensure staff user: %w", err)
	}

	return nil
}

func upsertItem(ctx context.Context, pool *pgxpool.Pool, item itemSeed) error {
	const q = `
INSERT INTO catalog_items (id, name, name_ar, category, price_cents, availability)
VALUES ($1, $2, $3, $4, $5, 'available')
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    name_ar = EXCLUDED.name_ar,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents
`
	_, err := pool.Exec(ctx, q, item.ID, item.Name, item.NameAr, item.Category, item.PriceCents)
	return err
}

func ensureStaffUser(ctx context.Context, pool *pgxpool.Pool, username, password, role string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO staff_users (username, password_hash, role)
VALUES ($1, $2, $3)
ON CONFLICT (username) DO NOTHING
`
	_, err = pool.Exec(ctx, q, username, string(hashed), role)
	return err
}
