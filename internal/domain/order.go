package domain

import "time"

// OrderStatus tracks an order through the kitchen.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderCompleted},
}

// CanTransitionTo reports whether next is a legal status after s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order is a placed order: an immutable snapshot of the cart and fulfillment
// at checkout time. Only Status changes afterwards.
type Order struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	SessionID       string          `json:"sessionId"`
	CustomerID      *string         `json:"customerId,omitempty"`
	Lines           []OrderLine     `json:"lines"`
	SubtotalCents   int64           `json:"subtotalCents"`
	DiscountCents   int64           `json:"discountCents,omitempty"`
	FeeCents        int64           `json:"feeCents"`
	TotalCents      int64           `json:"totalCents"`
	PaymentMethod   string          `json:"paymentMethod"`
	FulfillmentMode FulfillmentMode `json:"fulfillmentMode"`
	Table           string          `json:"table,omitempty"`
	Address         string          `json:"address,omitempty"`
	UsedFreeDrink   bool            `json:"usedFreeDrink"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderLine snapshots one purchased item with the price charged.
type OrderLine struct {
	ItemID         string `json:"itemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	TotalCents     int64  `json:"totalCents"`
}

// OrderSummary is the compact history record shown on the storefront's
// "my orders" screen, stored per session.
type OrderSummary struct {
	Number        string             `json:"number"`
	Items         []OrderSummaryItem `json:"items"`
	TotalCents    int64              `json:"totalCents"`
	PaymentMethod string             `json:"paymentMethod"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// OrderSummaryItem is one line of an OrderSummary.
type OrderSummaryItem struct {
	ItemID         string `json:"itemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}
