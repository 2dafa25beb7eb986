package repository

import (
	"context"
	"time"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
)

// ProductRepository mirrors the supplier catalog locally.
type ProductRepository interface {
	Upsert(ctx context.Context, product *model.Product) error
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)
	// List returns one page of products matching the optional search term.
	// The returned pagination is clamped against the total match count.
	List(ctx context.Context, search string, page, limit int) ([]model.Product, query.Pagination, error)
	// SelectStaleBatch claims up to limit products not synced since the
	// cutoff, marking them as claimed so concurrent pollers skip them.
	SelectStaleBatch(ctx context.Context, cutoff time.Time, limit int) ([]model.Product, error)
	// UpdateSyncResult stores refreshed price/inventory and the sync time.
	UpdateSyncResult(ctx context.Context, productID int64, unitPrice float64, inventory int) error
}
