package domain

// FulfillmentMode is how the customer wants to receive the order.
type FulfillmentMode string

const (
	Pickup   FulfillmentMode = "pickup"
	Delivery FulfillmentMode = "delivery"
	DineIn   FulfillmentMode = "dine_in"
)

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Destination describes where a delivery order goes.
type Destination struct {
	Address  string   `json:"address"`
	Location GeoPoint `json:"location"`
	Zone     string   `json:"zone,omitempty"`
}

// Fulfillment is the active delivery descriptor for a session. At most one
// exists per session; it is replaced wholesale and cleared after checkout.
type Fulfillment struct {
	Mode        FulfillmentMode `json:"mode"`
	FeeCents    int64           `json:"feeCents"`
	Destination *Destination    `json:"destination,omitempty"`
	Table       string          `json:"table,omitempty"`
}
