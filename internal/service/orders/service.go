// Package orders turns a cart snapshot into a placed order and owns the
// order's status lifecycle afterwards.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maqha/internal/domain"
)

var (
	// ErrEmptyCart rejects checkout of a session with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPaymentRequired rejects checkout without a payment method.
	ErrPaymentRequired = errors.New("payment method required")
	// ErrGuestFreeDrink rejects a free-drink redemption without a profile.
	ErrGuestFreeDrink = errors.New("free drink requires a registered customer")
	// ErrBadTransition rejects an illegal status change.
	ErrBadTransition = errors.New("illegal status transition")
)

type orderRepo interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, number string, status domain.OrderStatus) (*domain.Order, error)
	NextDailySequence(ctx context.Context, day time.Time) (int, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (*domain.PricedCart, error)
	Clear(ctx context.Context, sessionID string) error
}

type fulfillmentStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Fulfillment, error)
}

type ledger interface {
	Get(ctx context.Context, customerID string) (*domain.Customer, error)
	RecordCompletedOrder(ctx context.Context, customerID string, usedFreeDrink bool) (*domain.Customer, error)
}

type historyStore interface {
	Append(ctx context.Context, sessionID string, sum domain.OrderSummary) error
}

type Service struct {
	repo        orderRepo
	cart        cartService
	fulfillment fulfillmentStore
	loyalty     ledger
	history     historyStore
	now         func() time.Time
}

func New(repo orderRepo, cart cartService, fulfillment fulfillmentStore, loyalty ledger, history historyStore) *Service {
	return &Service{
		repo:        repo,
		cart:        cart,
		fulfillment: fulfillment,
		loyalty:     loyalty,
		history:     history,
		now:         time.Now,
	}
}

// PlaceInput is the checkout request.
type PlaceInput struct {
	SessionID     string `json:"sessionId"`
	CustomerID    string `json:"customerId,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
	UseFreeDrink  bool   `json:"useFreeDrink,omitempty"`
}

// Place snapshots the cart and fulfillment into an order, records the loyalty
// effect, appends to the session's history, and clears the cart. The cart and
// descriptor are consumed: a successful checkout leaves the session empty.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*domain.Order, error) {
	if in.SessionID == "" {
		return nil, errors.New("session id required")
	}
	if in.PaymentMethod == "" {
		return nil, ErrPaymentRequired
	}
	if in.UseFreeDrink && in.CustomerID == "" {
		return nil, ErrGuestFreeDrink
	}

	priced, err := s.cart.Get(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if len(priced.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Check the redemption balance before anything is persisted so a
	// precondition violation cannot leave a half-placed order behind.
	if in.UseFreeDrink {
		c, err := s.loyalty.Get(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c.FreeDrinks <= 0 {
			return nil, errors.New("no free drinks available")
		}
	}

	f := domain.Fulfillment{Mode: domain.Pickup}
	if active, err := s.fulfillment.Get(ctx, in.SessionID); err == nil {
		f = *active
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	number, err := s.nextNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		Number:          number,
		SessionID:       in.SessionID,
		SubtotalCents:   priced.SubtotalCents,
		DiscountCents:   freeDrinkDiscount(priced, in.UseFreeDrink),
		FeeCents:        f.FeeCents,
		PaymentMethod:   in.PaymentMethod,
		FulfillmentMode: f.Mode,
		Table:           f.Table,
		UsedFreeDrink:   in.UseFreeDrink,
		Status:          domain.OrderPending,
	}
	if f.Destination != nil {
		order.Address = f.Destination.Address
	}
	if in.CustomerID != "" {
		customerID := in.CustomerID
		order.CustomerID = &customerID
	}
	order.TotalCents = order.SubtotalCents - order.DiscountCents + order.FeeCents
	for _, line := range priced.Lines {
		name := line.Name
		if name == "" {
			name = line.ItemID
		}
		order.Lines = append(order.Lines, domain.OrderLine{
			ItemID:         line.ItemID,
			Name:           name,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			TotalCents:     line.TotalCents,
		})
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if _, err := s.loyalty.RecordCompletedOrder(ctx, in.CustomerID, in.UseFreeDrink); err != nil {
		return nil, fmt.Errorf("order %s placed but loyalty update failed: %w", created.Number, err)
	}
	if err := s.history.Append(ctx, in.SessionID, summarize(created)); err != nil {
		return nil, fmt.Errorf("order %s placed but history update failed: %w", created.Number, err)
	}
	if err := s.cart.Clear(ctx, in.SessionID); err != nil {
		return nil, fmt.Errorf("order %s placed but cart clear failed: %w", created.Number, err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, number string) (*domain.Order, error) {
	return s.repo.GetByNumber(ctx, number)
}

// ListForCustomer backs the storefront's status feed, polled by the UI.
func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) ListForSession(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func (s *Service) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return s.repo.ListByStatus(ctx, status)
}

// UpdateStatus advances an order through its lifecycle, rejecting transitions
// the kitchen flow does not allow.
func (s *Service) UpdateStatus(ctx context.Context, number string, next domain.OrderStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, ErrBadTransition
	}
	current, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, current.Status, next)
	}
	return s.repo.UpdateStatus(ctx, number, next)
}

func (s *Service) nextNumber(ctx context.Context) (string, error) {
	day := s.now().UTC()
	seq, err := s.repo.NextDailySequence(ctx, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%03d", day.Format("20060102"), seq), nil
}

// freeDrinkDiscount zeroes the single most expensive unit in the cart, which
// is the drink the free credit pays for.
func freeDrinkDiscount(priced *domain.PricedCart, used bool) int64 {
	if !used {
		return 0
	}
	var max int64
	for _, line := range priced.Lines {
		if line.UnitPriceCents > max {
			max = line.UnitPriceCents
		}
	}
	return max
}

func summarize(o *domain.Order) domain.OrderSummary {
	sum := domain.OrderSummary{
		Number:        o.Number,
		TotalCents:    o.TotalCents,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
	for _, line := range o.Lines {
		sum.Items = append(sum.Items, domain.OrderSummaryItem{
			ItemID:         line.ItemID,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}
	return sum
}
