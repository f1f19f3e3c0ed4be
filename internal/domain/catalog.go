package domain

import "time"

// Availability mirrors the states the storefront renders for a menu item.
type Availability string

const (
	Available              Availability = "available"
	OutOfStock             Availability = "out_of_stock"
	ComingSoon             Availability = "coming_soon"
	TemporarilyUnavailable Availability = "temporarily_unavailable"
)

// Valid reports whether a is one of the known availability states.
func (a Availability) Valid() bool {
	switch a {
	case Available, OutOfStock, ComingSoon, TemporarilyUnavailable:
		return true
	}
	return false
}

// CatalogItem is a menu entry. Prices are fixed-point cents; normalization of
// foreign price encodings happens at the import boundary, never here.
type CatalogItem struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	NameAr             string       `json:"nameAr,omitempty"`
	Category           string       `json:"category,omitempty"`
	PriceCents         int64        `json:"priceCents"`
	PreviousPriceCents *int64       `json:"previousPriceCents,omitempty"`
	Availability       Availability `json:"availability"`
	CreatedAt          time.Time    `json:"createdAt"`
}
