// Package loyalty keeps the stamp and free-drink ledger. Every
// StampThreshold-th completed paid order converts into one free drink; the
// ledger is the only writer of those counters.
package loyalty

import (
	"context"
	"errors"
	"strings"

	"maqha/internal/domain"
)

var (
	// ErrNoFreeDrinks is returned when a redemption is attempted with a zero
	// balance. State is left unchanged.
	ErrNoFreeDrinks = errors.New("no free drinks available")
	// ErrNameRequired and ErrPhoneRequired reject incomplete registrations
	// before any state changes.
	ErrNameRequired  = errors.New("name required")
	ErrPhoneRequired = errors.New("phone required")
)

type customerRepo interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	UpdateLoyalty(ctx context.Context, id string, stamps, freeDrinks int) (*domain.Customer, error)
}

type cardAllocator interface {
	Assign(ctx context.Context) (string, error)
}

type Service struct {
	repo  customerRepo
	cards cardAllocator
}

func New(repo customerRepo, cards cardAllocator) *Service {
	return &Service{repo: repo, cards: cards}
}

// Register creates a customer profile and issues a card number from the
// pool. A second registration with the same phone is rejected with
// domain.ErrConflict; the existing profile is never overwritten.
func (s *Service) Register(ctx context.Context, name, phone string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, ErrNameRequired
	}
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	card, err := s.cards.Assign(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Customer{
		Name:       name,
		Phone:      phone,
		CardNumber: card,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return s.repo.GetByPhone(ctx, phone)
}

// RecordCompletedOrder applies the ledger transition for one completed order.
// A paid order earns a stamp; reaching the threshold converts into exactly
// one free drink and resets stamps to zero, regardless of overshoot. An order
// paid with a free drink spends one and earns nothing. Guests (empty
// customerID) are exempt: the call is a no-op.
func (s *Service) RecordCompletedOrder(ctx context.Context, customerID string, usedFreeDrink bool) (*domain.Customer, error) {
	if customerID == "" {
		return nil, nil
	}
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	stamps := c.Stamps
	freeDrinks := c.FreeDrinks
	if usedFreeDrink {
		if freeDrinks <= 0 {
			// Caller bug: redemption must be checked before the order is
			// accepted. Never clamp silently.
			return nil, ErrNoFreeDrinks
		}
		freeDrinks--
	} else {
		stamps++
		if stamps >= domain.StampThreshold {
			freeDrinks++
			stamps = 0
		}
	}
	return s.repo.UpdateLoyalty(ctx, customerID, stamps, freeDrinks)
}

// UseFreeDrink decrements the balance by one, failing without mutation when
// the balance is already zero.
func (s *Service) UseFreeDrink(ctx context.Context, customerID string) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c.FreeDrinks <= 0 {
		return nil, ErrNoFreeDrinks
	}
	return s.repo.UpdateLoyalty(ctx, customerID, c.Stamps, c.FreeDrinks-1)
}
