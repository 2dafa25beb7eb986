package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
)

// OrderRepository describes persistence operations with orders and quotes.
type OrderRepository interface {
	// Create persists the order with its line items and returns the stored
	// record.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	// GetByPublicID fetches the full record, line items included, scoped to
	// its owner.
	GetByPublicID(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, error)
	// List returns one page of the owner's orders matching the criteria.
	// The returned pagination is clamped against the total match count.
	List(ctx context.Context, userID int64, c query.Criteria, page, limit int) ([]model.Order, query.Pagination, error)
	// ListRecent returns the owner's newest orders up to limit, unfiltered.
	ListRecent(ctx context.Context, userID int64, limit int) ([]model.Order, error)
	// UpdateStatus persists a status change.
	UpdateStatus(ctx context.Context, orderID int64, status model.Status) error
}
