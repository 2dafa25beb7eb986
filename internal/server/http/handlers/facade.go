package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
	"github.com/hypnotizedent/printshop-os-sub005/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order and quote operations exposed via HTTP.
type OrderFacade interface {
	CreateQuote(ctx context.Context, userID int64, in usecase.CreateQuoteInput) (*model.Order, error)
	Order(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, error)
	Orders(ctx context.Context, userID int64, c query.Criteria, page, limit int) ([]model.Order, query.Pagination, error)
	OrderTimeline(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, model.Projection, error)
	UpdateOrderStatus(ctx context.Context, userID int64, publicID uuid.UUID, status string) (*model.Order, error)
}

// ShippingFacade buys carrier labels for orders that are ready to ship.
type ShippingFacade interface {
	CreateShippingLabel(ctx context.Context, userID int64, publicID uuid.UUID, parcel model.Parcel) (*model.ShippingLabel, *model.Order, error)
}

// QuoteFacade covers customer decisions on quotes.
type QuoteFacade interface {
	ApproveQuote(ctx context.Context, userID int64, publicID uuid.UUID, in usecase.ApproveInput) (*model.Approval, error)
	RejectQuote(ctx context.Context, userID int64, publicID uuid.UUID, in usecase.RejectInput) (*model.Approval, error)
	RequestQuoteChanges(ctx context.Context, userID int64, publicID uuid.UUID, comments string) (*model.Approval, error)
	QuoteHistory(ctx context.Context, userID int64, publicID uuid.UUID) ([]model.Approval, error)
}

// ProductFacade serves the mirrored supplier catalog.
type ProductFacade interface {
	Products(ctx context.Context, search string, page, limit int) ([]model.Product, query.Pagination, error)
	Product(ctx context.Context, sku string) (*model.Product, error)
}

// StatsFacade computes dashboard aggregates.
type StatsFacade interface {
	DashboardStats(ctx context.Context, userID int64) (*usecase.DashboardStats, error)
}

// FileFacade hands out download links for stored order documents.
type FileFacade interface {
	InvoiceURL(ctx context.Context, userID int64, publicID uuid.UUID) (string, error)
	ArtworkURL(ctx context.Context, userID int64, publicID uuid.UUID, name string) (string, error)
}

// HealthFacade reports downstream dependency health.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// PrintShopFacade aggregates the full set of operations used across
// handlers.
type PrintShopFacade interface {
	AuthFacade
	OrderFacade
	ShippingFacade
	QuoteFacade
	ProductFacade
	StatsFacade
	FileFacade
	HealthFacade
}
