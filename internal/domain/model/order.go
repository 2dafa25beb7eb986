package model

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is a single priced position on an order.
type LineItem struct {
	ID          int64
	OrderID     int64
	Description string
	Quantity    int
	UnitPrice   float64
	Total       float64
}

// Totals aggregates the money fields of an order. All values are derived
// server-side; clients never submit them.
type Totals struct {
	Subtotal    float64
	Tax         float64
	Shipping    float64
	Discount    float64
	Fees        float64
	Total       float64
	AmountPaid  float64
	Outstanding float64
}

// Address is an optional shipping destination on an order.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Order is a print-shop order or quote. Quotes are orders whose status has
// not left the quote stage.
type Order struct {
	ID        int64
	PublicID  uuid.UUID
	UserID    int64
	Number    string
	Nickname  string
	Status    Status
	DueDate   *time.Time
	Items     []LineItem
	Totals    Totals
	Shipping  *Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeTotals recalculates line item totals and order aggregates from
// quantities, unit prices and the tax/shipping/discount/fees inputs.
func (o *Order) ComputeTotals() {
	var subtotal float64
	for i := range o.Items {
		o.Items[i].Total = float64(o.Items[i].Quantity) * o.Items[i].UnitPrice
		subtotal += o.Items[i].Total
	}
	o.Totals.Subtotal = subtotal
	o.Totals.Total = subtotal + o.Totals.Tax + o.Totals.Shipping + o.Totals.Fees - o.Totals.Discount
	o.Totals.Outstanding = o.Totals.Total - o.Totals.AmountPaid
}

// CanTransition reports whether moving the order to next is a legal
// lifecycle step. Terminal statuses are final, cancellation is reachable
// from any non-terminal status, and otherwise the milestone index must
// not move backwards.
func (o *Order) CanTransition(next Status) bool {
	if !next.Valid() || o.Status == next {
		return false
	}
	if o.Status.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, _ := MilestoneFor(o.Status)
	to, _ := MilestoneFor(next)
	return to >= from
}
