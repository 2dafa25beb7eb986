package repository

import (
	"context"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
)

// ApprovalRepository records customer decisions on quotes.
type ApprovalRepository interface {
	Create(ctx context.Context, approval *model.Approval) (*model.Approval, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Approval, error)
}
