package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/repository"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
)

// ProductUseCase serves the locally mirrored supplier catalog.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// List returns one page of catalog entries matching the search term.
func (u *ProductUseCase) List(ctx context.Context, search string, page, limit int) ([]model.Product, query.Pagination, error) {
	return u.products.List(ctx, strings.TrimSpace(search), page, limit)
}

// GetBySKU fetches a single catalog entry.
func (u *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.products.GetBySKU(ctx, sku)
}

// Save mirrors a supplier product locally.
func (u *ProductUseCase) Save(ctx context.Context, product *model.Product) error {
	return u.products.Upsert(ctx, product)
}

// SelectStaleBatch claims products whose sync result is older than maxAge.
func (u *ProductUseCase) SelectStaleBatch(ctx context.Context, maxAge time.Duration, limit int) ([]model.Product, error) {
	return u.products.SelectStaleBatch(ctx, time.Now().Add(-maxAge), limit)
}

// RecordSyncResult stores refreshed price and inventory.
func (u *ProductUseCase) RecordSyncResult(ctx context.Context, productID int64, unitPrice float64, inventory int) error {
	return u.products.UpdateSyncResult(ctx, productID, unitPrice, inventory)
}
