package dto

import (
	"time"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
)

// ApproveQuoteRequest carries the customer signature on a quote.
type ApproveQuoteRequest struct {
	Signature     string `json:"signature"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// RejectQuoteRequest carries the rejection reason.
type RejectQuoteRequest struct {
	Reason   string `json:"reason"`
	Comments string `json:"comments,omitempty"`
}

// ChangeRequestPayload carries free-text revision comments.
type ChangeRequestPayload struct {
	Comments string `json:"comments"`
}

// ApprovalResponse is a recorded customer decision.
type ApprovalResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Signature string    `json:"signature,omitempty"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Comments  string    `json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToApprovalResponse converts the domain approval into its transport
// shape.
func ToApprovalResponse(a model.Approval) ApprovalResponse {
	return ApprovalResponse{
		ID:        a.ID.String(),
		Kind:      string(a.Kind),
		Signature: a.Signature,
		Name:      a.Name,
		Email:     a.Email,
		Reason:    a.Reason,
		Comments:  a.Comments,
		CreatedAt: a.CreatedAt,
	}
}
