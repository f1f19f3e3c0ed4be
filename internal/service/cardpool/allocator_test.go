package cardpool

import (
	"context"
	"strings"
	"testing"

	"maqha/internal/kvstore"
)

func TestAssignNeverRepeats(t *testing.T) {
	alloc := New(kvstore.NewMemory())
	ctx := context.Background()

	seen := make(map[string]bool)
	var cards []string
	for i := 0; i < 60; i++ {
		card, err := alloc.Assign(ctx)
		if err != nil {
			t.Fatalf("assign %d: %v", i, err)
		}
		if seen[card] {
			t.Fatalf("card %s issued twice", card)
		}
		seen[card] = true
		cards = append(cards, card)
	}

	// Seed pool covers the first 50, synthesized numbers the rest.
	for i, card := range cards[:50] {
		if !strings.HasPrefix(card, "M-10") {
			t.Fatalf("assign %d: expected seeded number, got %s", i, card)
		}
	}
	for i, card := range cards[50:] {
		if !strings.HasPrefix(card, "M-60") {
			t.Fatalf("assign %d: expected synthesized number, got %s", 50+i, card)
		}
	}
}

func TestAssignPopsFromTheEnd(t *testing.T) {
	alloc := New(kvstore.NewMemory())
	ctx := context.Background()

	first, err := alloc.Assign(ctx)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if first != "M-1050" {
		t.Fatalf("expected M-1050 first, got %s", first)
	}
	second, err := alloc.Assign(ctx)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if second != "M-1049" {
		t.Fatalf("expected M-1049 second, got %s", second)
	}
}

func TestStateSurvivesNewAllocator(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()

	first, err := New(store).Assign(ctx)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	second, err := New(store).Assign(ctx)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if first == second {
		t.Fatalf("pool state lost across allocators: %s issued twice", first)
	}
}

func TestCorruptStateReseeds(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()
	if err := store.Put(ctx, stateKey, []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}

	card, err := New(store).Assign(ctx)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if card != "M-1050" {
		t.Fatalf("expected a fresh pool after corrupt state, got %s", card)
	}
}
