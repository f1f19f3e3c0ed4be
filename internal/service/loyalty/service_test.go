package loyalty

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"maqha/internal/domain"
)

type fakeCustomerRepo struct {
	byID    map[string]*domain.Customer
	byPhone map[string]*domain.Customer
	nextID  int
	updates int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		byID:    make(map[string]*domain.Customer),
		byPhone: make(map[string]*domain.Customer),
	}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if _, ok := f.byPhone[c.Phone]; ok {
		return nil, domain.ErrConflict
	}
	f.nextID++
	c.ID = fmt.Sprintf("c-%d", f.nextID)
	stored := c
	f.byID[c.ID] = &stored
	f.byPhone[c.Phone] = &stored
	out := c
	return &out, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	c, ok := f.byPhone[phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCustomerRepo) UpdateLoyalty(_ context.Context, id string, stamps, freeDrinks int) (*domain.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Stamps = stamps
	c.FreeDrinks = freeDrinks
	f.updates++
	out := *c
	return &out, nil
}

type stubAllocator struct {
	next int
}

func (s *stubAllocator) Assign(_ context.Context) (string, error) {
	s.next++
	return fmt.Sprintf("M-%04d", 1000+s.next), nil
}

func newTestService() (*Service, *fakeCustomerRepo) {
	repo := newFakeCustomerRepo()
	return New(repo, &stubAllocator{}), repo
}

func TestRegisterIssuesCard(t *testing.T) {
	svc, _ := newTestService()
	c, err := svc.Register(context.Background(), "  Huda  ", "0501234567")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if c.Name != "Huda" {
		t.Fatalf("expected trimmed name, got %q", c.Name)
	}
	if c.CardNumber == "" {
		t.Fatalf("expected a card number assigned at registration")
	}
	if c.Stamps != 0 || c.FreeDrinks != 0 {
		t.Fatalf("expected fresh ledger, got stamps=%d freeDrinks=%d", c.Stamps, c.FreeDrinks)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), "", "0501234567"); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "Huda", "   "); !errors.Is(err, ErrPhoneRequired) {
		t.Fatalf("expected ErrPhoneRequired, got %v", err)
	}
}

func TestRegisterDuplicatePhoneRejected(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), "Huda", "0501234567"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Other", "0501234567"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate phone, got %v", err)
	}
}

func TestStampRollover(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	c, err := svc.Register(ctx, "Huda", "0501234567")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Four paid orders accumulate stamps without conversion.
	for i := 1; i <= domain.StampThreshold-1; i++ {
		c, err = svc.RecordCompletedOrder(ctx, c.ID, false)
		if err != nil {
			t.Fatalf("order %d: %v", i, err)
		}
		if c.Stamps != i || c.FreeDrinks != 0 {
			t.Fatalf("after order %d: stamps=%d freeDrinks=%d", i, c.Stamps, c.FreeDrinks)
		}
	}

	// The fifth converts into exactly one free drink and resets stamps.
	c, err = svc.RecordCompletedOrder(ctx, c.ID, false)
	if err != nil {
		t.Fatalf("threshold order: %v", err)
	}
	if c.Stamps != 0 {
		t.Fatalf("expected stamps reset to 0, got %d", c.Stamps)
	}
	if c.FreeDrinks != 1 {
		t.Fatalf("expected exactly 1 free drink, got %d", c.FreeDrinks)
	}
}

func TestFreeDrinkOrderEarnsNoStamp(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, _ := svc.Register(ctx, "Huda", "0501234567")
	repo.byID[c.ID].Stamps = 2
	repo.byID[c.ID].FreeDrinks = 1

	c, err := svc.RecordCompletedOrder(ctx, c.ID, true)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if c.FreeDrinks != 0 {
		t.Fatalf("expected balance spent to 0, got %d", c.FreeDrinks)
	}
	if c.Stamps != 2 {
		t.Fatalf("free-drink order must not earn a stamp, got %d", c.Stamps)
	}
}

func TestFreeDrinkNeverGoesNegative(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, _ := svc.Register(ctx, "Huda", "0501234567")

	before := repo.updates
	if _, err := svc.RecordCompletedOrder(ctx, c.ID, true); !errors.Is(err, ErrNoFreeDrinks) {
		t.Fatalf("expected ErrNoFreeDrinks, got %v", err)
	}
	if _, err := svc.UseFreeDrink(ctx, c.ID); !errors.Is(err, ErrNoFreeDrinks) {
		t.Fatalf("expected ErrNoFreeDrinks, got %v", err)
	}
	if repo.updates != before {
		t.Fatalf("failed redemption must not mutate the ledger")
	}
}

func TestGuestOrdersAreExempt(t *testing.T) {
	svc, repo := newTestService()
	c, err := svc.RecordCompletedOrder(context.Background(), "", false)
	if err != nil {
		t.Fatalf("guest order should be a no-op, got %v", err)
	}
	if c != nil {
		t.Fatalf("expected nil customer for guest order, got %+v", c)
	}
	if repo.updates != 0 {
		t.Fatalf("guest order must not touch the ledger")
	}
}

func TestUseFreeDrinkDecrements(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c, _ := svc.Register(ctx, "Huda", "0501234567")
	repo.byID[c.ID].FreeDrinks = 2

	c, err := svc.UseFreeDrink(ctx, c.ID)
	if err != nil {
		t.Fatalf("use free drink: %v", err)
	}
	if c.FreeDrinks != 1 {
		t.Fatalf("expected balance 1, got %d", c.FreeDrinks)
	}
}
