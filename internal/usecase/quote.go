package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/repository"
)

// QuoteUseCase handles customer decisions on quotes: approval, rejection
// and change requests.
type QuoteUseCase struct {
	orders    repository.OrderRepository
	approvals repository.ApprovalRepository
}

// NewQuoteUseCase constructs QuoteUseCase.
func NewQuoteUseCase(orders repository.OrderRepository, approvals repository.ApprovalRepository) *QuoteUseCase {
	return &QuoteUseCase{orders: orders, approvals: approvals}
}

// ApproveInput carries the customer signature on a quote.
type ApproveInput struct {
	Signature     string
	Name          string
	Email         string
	TermsAccepted bool
}

// RejectInput carries the rejection reason.
type RejectInput struct {
	Reason   string
	Comments string
}

// Approve validates the signature payload before any repository work, so
// an invalid submission has no side effects, then records the approval
// and moves the quote to pending.
func (u *QuoteUseCase) Approve(ctx context.Context, userID int64, publicID uuid.UUID, in ApproveInput) (*model.Approval, error) {
	if strings.TrimSpace(in.Signature) == "" {
		return nil, domainErrors.NewValidation("signature", "required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domainErrors.NewValidation("name", "required")
	}
	if !validEmail(strings.ToLower(strings.TrimSpace(in.Email))) {
		return nil, domainErrors.NewValidation("email", "must be a valid address")
	}
	if !in.TermsAccepted {
		return nil, domainErrors.NewValidation("terms_accepted", "terms must be accepted")
	}

	order, err := u.requireQuote(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	approval := &model.Approval{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Kind:      model.ApprovalKindApprove,
		Signature: in.Signature,
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
	}
	stored, err := u.approvals.Create(ctx, approval)
	if err != nil {
		return nil, err
	}

	if err := u.orders.UpdateStatus(ctx, order.ID, model.StatusPending); err != nil {
		return nil, err
	}
	return stored, nil
}

// Reject records the rejection and cancels the quote.
func (u *QuoteUseCase) Reject(ctx context.Context, userID int64, publicID uuid.UUID, in RejectInput) (*model.Approval, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domainErrors.NewValidation("reason", "required")
	}

	order, err := u.requireQuote(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	approval := &model.Approval{
		ID:       uuid.New(),
		OrderID:  order.ID,
		Kind:     model.ApprovalKindReject,
		Reason:   in.Reason,
		Comments: in.Comments,
	}
	stored, err := u.approvals.Create(ctx, approval)
	if err != nil {
		return nil, err
	}

	if err := u.orders.UpdateStatus(ctx, order.ID, model.StatusCancelled); err != nil {
		return nil, err
	}
	return stored, nil
}

// RequestChanges records free-text comments; the quote stays open.
func (u *QuoteUseCase) RequestChanges(ctx context.Context, userID int64, publicID uuid.UUID, comments string) (*model.Approval, error) {
	if strings.TrimSpace(comments) == "" {
		return nil, domainErrors.NewValidation("comments", "required")
	}

	order, err := u.requireQuote(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	approval := &model.Approval{
		ID:       uuid.New(),
		OrderID:  order.ID,
		Kind:     model.ApprovalKindChangeRequest,
		Comments: comments,
	}
	return u.approvals.Create(ctx, approval)
}

// History lists every recorded decision on the quote.
func (u *QuoteUseCase) History(ctx context.Context, userID int64, publicID uuid.UUID) ([]model.Approval, error) {
	order, err := u.orders.GetByPublicID(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	return u.approvals.ListByOrder(ctx, order.ID)
}

func (u *QuoteUseCase) requireQuote(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, error) {
	order, err := u.orders.GetByPublicID(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.StatusQuote {
		return nil, domainErrors.ErrNotAQuote
	}
	return order, nil
}
