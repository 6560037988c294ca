package ozon

// Offer is a single product page observation.
type Offer struct {
	Price int64 // smallest currency unit
	Name  string
}
