package domain

import "time"

// StampThreshold is the number of loyalty stamps that converts into one free
// drink. Stamps never persist at or above this value.
const StampThreshold = 5

// Customer is a registered loyalty-program member. Stamps and FreeDrinks are
// mutated only through the loyalty ledger, never directly by handlers.
type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	CardNumber string    `json:"cardNumber"`
	Stamps     int       `json:"stamps"`
	FreeDrinks int       `json:"freeDrinks"`
	CreatedAt  time.Time `json:"createdAt"`
}
