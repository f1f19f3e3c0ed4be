package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"maqha/internal/kvstore"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	svc := New(kvstore.NewMemory())
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first != second {
		t.Fatalf("expected stable id, got %s then %s", first, second)
	}
}

func TestDistinctStoresGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	a, err := New(kvstore.NewMemory()).GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("store a: %v", err)
	}
	b, err := New(kvstore.NewMemory()).GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("store b: %v", err)
	}
	if a == b {
		t.Fatalf("two devices received the same session id %s", a)
	}
}

func TestEmptyStoredValueRemints(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()
	if err := store.Put(ctx, storageKey, []byte("   ")); err != nil {
		t.Fatalf("put: %v", err)
	}

	id, err := New(store).GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if strings.TrimSpace(id) == "" {
		t.Fatalf("expected a freshly minted id, got %q", id)
	}
}

func TestMintFormat(t *testing.T) {
	svc := New(kvstore.NewMemory())
	svc.now = func() time.Time { return time.UnixMilli(1756450000000) }

	id, err := svc.Mint()
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if !strings.HasPrefix(id, "S1756450000000-") {
		t.Fatalf("unexpected id format: %s", id)
	}
	suffix := strings.TrimPrefix(id, "S1756450000000-")
	if len(suffix) != 12 {
		t.Fatalf("expected 12 hex chars of randomness, got %q", suffix)
	}
}
