package model

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalKind distinguishes recorded quote decisions.
type ApprovalKind string

const (
	ApprovalKindApprove       ApprovalKind = "approve"
	ApprovalKindReject        ApprovalKind = "reject"
	ApprovalKindChangeRequest ApprovalKind = "change_request"
)

// Approval is an immutable record of a customer decision on a quote.
// Approve carries signature/name/email, reject carries the reason, change
// requests carry free-text comments.
type Approval struct {
	ID        uuid.UUID
	OrderID   int64
	Kind      ApprovalKind
	Signature string
	Name      string
	Email     string
	Reason    string
	Comments  string
	CreatedAt time.Time
}
