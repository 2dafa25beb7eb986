package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStatus flags input outside the closed status vocabulary.
var ErrUnknownStatus = errors.New("unknown status")

// Status describes the order/quote lifecycle. The vocabulary is closed:
// every value maps to exactly one display label, one color token and one
// timeline milestone (or the cancelled sentinel).
type Status string

const (
	StatusQuote        Status = "quote"
	StatusPending      Status = "pending"
	StatusInProduction Status = "in_production"
	StatusReadyToShip  Status = "ready_to_ship"
	StatusShipped      Status = "shipped"
	StatusDelivered    Status = "delivered"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
	StatusInvoicePaid  Status = "invoice_paid"
	StatusPaymentDue   Status = "payment_due"
)

// ColorToken is a semantic badge color shared by every surface that
// renders a status.
type ColorToken string

const (
	ColorBlue   ColorToken = "blue"
	ColorGray   ColorToken = "gray"
	ColorYellow ColorToken = "yellow"
	ColorOrange ColorToken = "orange"
	ColorGreen  ColorToken = "green"
	ColorRed    ColorToken = "red"
)

// AllStatuses lists the vocabulary in lifecycle order, cancelled last.
var AllStatuses = []Status{
	StatusQuote,
	StatusPending,
	StatusInProduction,
	StatusPaymentDue,
	StatusReadyToShip,
	StatusShipped,
	StatusDelivered,
	StatusCompleted,
	StatusInvoicePaid,
	StatusCancelled,
}

var statusColors = map[Status]ColorToken{
	StatusQuote:        ColorBlue,
	StatusPending:      ColorGray,
	StatusInProduction: ColorYellow,
	StatusPaymentDue:   ColorOrange,
	StatusReadyToShip:  ColorOrange,
	StatusShipped:      ColorBlue,
	StatusDelivered:    ColorGreen,
	StatusCompleted:    ColorGreen,
	StatusInvoicePaid:  ColorGreen,
	StatusCancelled:    ColorRed,
}

// ParseStatus validates raw input against the vocabulary. Values outside
// the vocabulary indicate an upstream data defect.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := statusColors[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// Valid reports whether the status belongs to the vocabulary.
func (s Status) Valid() bool {
	_, ok := statusColors[s]
	return ok
}

// Label title-cases each underscore-delimited segment of the token,
// e.g. "in_production" -> "In Production".
func (s Status) Label() string {
	s.mustBeValid()
	parts := strings.Split(string(s), "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// Color returns the badge color token for the status.
func (s Status) Color() ColorToken {
	s.mustBeValid()
	return statusColors[s]
}

// Terminal reports whether no further lifecycle progression is expected.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusDelivered, StatusInvoicePaid, StatusCancelled:
		return true
	}
	return false
}

// TerminalSuccess reports whether the status ends the lifecycle with the
// full milestone sequence reached.
func (s Status) TerminalSuccess() bool {
	return s.Terminal() && s != StatusCancelled
}

func (s Status) mustBeValid() {
	if !s.Valid() {
		panic(fmt.Sprintf("status %q outside the vocabulary; parse input before use", string(s)))
	}
}
