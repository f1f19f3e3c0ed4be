package domain

import "time"

// Cart holds the raw lines of one shopping session. Prices are not stored on
// lines; they are joined in from the catalog when totals are computed.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Lines     []CartLine `json:"lines"`
}

// CartLine is one (item, quantity) pair. At most one line exists per
// (session, item); quantities are always positive once persisted.
type CartLine struct {
	ItemID   string    `json:"itemId"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

// PricedCart is a cart joined with catalog prices plus the active fulfillment
// fee, ready for rendering and checkout.
type PricedCart struct {
	SessionID     string       `json:"sessionId"`
	Lines         []PricedLine `json:"lines"`
	ItemCount     int          `json:"itemCount"`
	SubtotalCents int64        `json:"subtotalCents"`
	FeeCents      int64        `json:"feeCents"`
	TotalCents    int64        `json:"totalCents"`
}

// PricedLine carries the catalog join result for one cart line. Unresolved is
// set when the catalog no longer knows the item; such lines price at zero.
type PricedLine struct {
	ItemID         string `json:"itemId"`
	Name           string `json:"name,omitempty"`
	NameAr         string `json:"nameAr,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	TotalCents     int64  `json:"totalCents"`
	Unresolved     bool   `json:"unresolved,omitempty"`
}
