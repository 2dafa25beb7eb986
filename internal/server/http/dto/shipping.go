package dto

import "github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"

// ParcelPayload carries package dimensions for a label purchase.
// Dimensions are in inches, weight in ounces.
type ParcelPayload struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// CreateLabelRequest asks for a carrier label. The parcel is optional; a
// standard box is assumed when absent.
type CreateLabelRequest struct {
	Parcel *ParcelPayload `json:"parcel,omitempty"`
}

// ShippingLabelResponse is a purchased label together with the order it
// ships, which moves to shipped as part of the purchase.
type ShippingLabelResponse struct {
	ShipmentID   string        `json:"shipment_id"`
	TrackingCode string        `json:"tracking_code"`
	Carrier      string        `json:"carrier"`
	Service      string        `json:"service"`
	Rate         float64       `json:"rate"`
	Currency     string        `json:"currency,omitempty"`
	LabelURL     string        `json:"label_url"`
	Order        OrderResponse `json:"order"`
}

// ToShippingLabelResponse converts a purchased label and the shipped
// order into the transport shape.
func ToShippingLabelResponse(label model.ShippingLabel, order model.Order) ShippingLabelResponse {
	return ShippingLabelResponse{
		ShipmentID:   label.ShipmentID,
		TrackingCode: label.TrackingCode,
		Carrier:      label.Carrier,
		Service:      label.Service,
		Rate:         label.Rate,
		Currency:     label.Currency,
		LabelURL:     label.LabelURL,
		Order:        ToOrderResponse(order),
	}
}
