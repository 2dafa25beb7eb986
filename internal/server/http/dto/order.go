package dto

import (
	"time"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
)

// LineItemRequest is a single position on a new quote.
type LineItemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// AddressPayload carries an optional shipping destination.
type AddressPayload struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CreateOrderRequest describes a new quote submission. Totals are
// computed server-side; only the adjustments are accepted.
type CreateOrderRequest struct {
	Nickname string            `json:"nickname"`
	DueDate  *time.Time        `json:"due_date,omitempty"`
	Items    []LineItemRequest `json:"items"`
	Tax      float64           `json:"tax"`
	Shipping float64           `json:"shipping"`
	Discount float64           `json:"discount"`
	Fees     float64           `json:"fees"`
	Address  *AddressPayload   `json:"address,omitempty"`
}

// UpdateStatusRequest moves an order along its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// LineItemResponse is a stored line item.
type LineItemResponse struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// TotalsResponse is the money summary of an order.
type TotalsResponse struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Shipping    float64 `json:"shipping"`
	Discount    float64 `json:"discount"`
	Fees        float64 `json:"fees"`
	Total       float64 `json:"total"`
	AmountPaid  float64 `json:"amount_paid"`
	Outstanding float64 `json:"outstanding"`
}

// OrderResponse is the full order view.
type OrderResponse struct {
	ID          string             `json:"id"`
	Number      string             `json:"number"`
	Nickname    string             `json:"nickname,omitempty"`
	Status      string             `json:"status"`
	StatusLabel string             `json:"status_label"`
	StatusColor string             `json:"status_color"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
	Items       []LineItemResponse `json:"items,omitempty"`
	Totals      TotalsResponse     `json:"totals"`
	Address     *AddressPayload    `json:"address,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// OrderListResponse is one page of orders with paging metadata.
type OrderListResponse struct {
	Orders     []OrderResponse  `json:"orders"`
	Pagination query.Pagination `json:"pagination"`
}

// TimelineStepResponse is one milestone on the order timeline.
type TimelineStepResponse struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	State string `json:"state"`
}

// TimelineResponse projects an order onto the production milestones.
type TimelineResponse struct {
	ID        string                 `json:"id"`
	Number    string                 `json:"number"`
	Status    string                 `json:"status"`
	Cancelled bool                   `json:"cancelled"`
	Steps     []TimelineStepResponse `json:"steps"`
}

// ToOrderResponse converts the domain order into its transport shape.
func ToOrderResponse(order model.Order) OrderResponse {
	resp := OrderResponse{
		ID:          order.PublicID.String(),
		Number:      order.Number,
		Nickname:    order.Nickname,
		Status:      string(order.Status),
		StatusLabel: order.Status.Label(),
		StatusColor: string(order.Status.Color()),
		DueDate:     order.DueDate,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		Totals: TotalsResponse{
			Subtotal:    order.Totals.Subtotal,
			Tax:         order.Totals.Tax,
			Shipping:    order.Totals.Shipping,
			Discount:    order.Totals.Discount,
			Fees:        order.Totals.Fees,
			Total:       order.Totals.Total,
			AmountPaid:  order.Totals.AmountPaid,
			Outstanding: order.Totals.Outstanding,
		},
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	if order.Shipping != nil {
		resp.Address = &AddressPayload{
			Line1:      order.Shipping.Line1,
			Line2:      order.Shipping.Line2,
			City:       order.Shipping.City,
			State:      order.Shipping.State,
			PostalCode: order.Shipping.PostalCode,
			Country:    order.Shipping.Country,
		}
	}
	return resp
}

// ToTimelineResponse converts an order and its projection into the
// transport shape.
func ToTimelineResponse(order model.Order, projection model.Projection) TimelineResponse {
	resp := TimelineResponse{
		ID:        order.PublicID.String(),
		Number:    order.Number,
		Status:    string(order.Status),
		Cancelled: projection.Cancelled,
	}
	for _, step := range projection.Steps {
		resp.Steps = append(resp.Steps, TimelineStepResponse{
			Index: int(step.Milestone),
			Label: step.Milestone.Label(),
			State: string(step.State),
		})
	}
	return resp
}
