package dto

import (
	"time"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
)

// ProductResponse is a catalog entry with its last synced price and
// inventory.
type ProductResponse struct {
	SKU       string     `json:"sku"`
	Supplier  string     `json:"supplier"`
	Name      string     `json:"name"`
	Category  string     `json:"category,omitempty"`
	UnitPrice float64    `json:"unit_price"`
	Inventory int        `json:"inventory"`
	SyncedAt  *time.Time `json:"synced_at,omitempty"`
}

// ProductListResponse is one page of catalog entries.
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination query.Pagination  `json:"pagination"`
}

// ToProductResponse converts the domain product into its transport shape.
func ToProductResponse(p model.Product) ProductResponse {
	resp := ProductResponse{
		SKU:       p.SKU,
		Supplier:  p.Supplier,
		Name:      p.Name,
		Category:  p.Category,
		UnitPrice: p.UnitPrice,
		Inventory: p.Inventory,
	}
	if !p.SyncedAt.IsZero() {
		synced := p.SyncedAt
		resp.SyncedAt = &synced
	}
	return resp
}
