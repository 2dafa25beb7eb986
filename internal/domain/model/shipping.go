package model

// Parcel is the physical package a label is purchased for. Dimensions
// are in inches, weight in ounces.
type Parcel struct {
	Length float64
	Width  float64
	Height float64
	Weight float64
}

// ShippingLabel is a purchased carrier label for an outbound order.
type ShippingLabel struct {
	ShipmentID   string
	TrackingCode string
	Carrier      string
	Service      string
	Rate         float64
	Currency     string
	LabelURL     string
}
