package app

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hypnotizedent/printshop-os-sub005/internal/adapter/shipping"
	"github.com/hypnotizedent/printshop-os-sub005/internal/adapter/supplier"
	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
	"github.com/hypnotizedent/printshop-os-sub005/internal/usecase"
)

// SupplierProvider queries the supplier catalog API.
type SupplierProvider interface {
	Product(ctx context.Context, sku string) (*model.Product, error)
	HealthCheck(ctx context.Context) error
}

// ShippingProvider purchases carrier labels through the shipping API.
type ShippingProvider interface {
	CreateLabel(ctx context.Context, req shipping.LabelRequest) (*model.ShippingLabel, error)
}

// DocumentStore hands out download links for stored order documents.
type DocumentStore interface {
	PresignDownload(ctx context.Context, objectKey string) (string, error)
}

// StorageHealth reports database connectivity.
type StorageHealth interface {
	HealthCheck(ctx context.Context) error
}

// PrintShopFacade aggregates the use cases behind the HTTP and worker
// surfaces.
type PrintShopFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	quotes    *usecase.QuoteUseCase
	products  *usecase.ProductUseCase
	stats     *usecase.StatsUseCase
	supplier  SupplierProvider
	shipping  ShippingProvider
	documents DocumentStore
	storage   StorageHealth
}

// NewPrintShopFacade constructs the application facade.
func NewPrintShopFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	quotes *usecase.QuoteUseCase,
	products *usecase.ProductUseCase,
	stats *usecase.StatsUseCase,
	supplierProvider SupplierProvider,
	shippingProvider ShippingProvider,
	documents DocumentStore,
	storage StorageHealth,
) *PrintShopFacade {
	return &PrintShopFacade{
		auth:      auth,
		orders:    orders,
		quotes:    quotes,
		products:  products,
		stats:     stats,
		supplier:  supplierProvider,
		shipping:  shippingProvider,
		documents: documents,
		storage:   storage,
	}
}

func (f *PrintShopFacade) Register(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password)
	return token, err
}

func (f *PrintShopFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *PrintShopFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *PrintShopFacade) CreateQuote(ctx context.Context, userID int64, in usecase.CreateQuoteInput) (*model.Order, error) {
	return f.orders.CreateQuote(ctx, userID, in)
}

func (f *PrintShopFacade) Order(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, error) {
	return f.orders.Get(ctx, userID, publicID)
}

func (f *PrintShopFacade) Orders(ctx context.Context, userID int64, c query.Criteria, page, limit int) ([]model.Order, query.Pagination, error) {
	return f.orders.List(ctx, userID, c, page, limit)
}

func (f *PrintShopFacade) OrderTimeline(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, model.Projection, error) {
	return f.orders.Timeline(ctx, userID, publicID)
}

func (f *PrintShopFacade) UpdateOrderStatus(ctx context.Context, userID int64, publicID uuid.UUID, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, userID, publicID, status)
}

// shopOrigin is the return address printed on outbound labels.
var shopOrigin = model.Address{
	Line1:      "123 Main St",
	City:       "San Francisco",
	State:      "CA",
	PostalCode: "94105",
	Country:    "US",
}

// defaultParcel is the standard shirt box assumed when the request
// carries no package dimensions.
var defaultParcel = model.Parcel{Length: 10, Width: 8, Height: 4, Weight: 15.5}

// CreateShippingLabel buys a carrier label for an order that is ready to
// ship and advances it to shipped. The label is purchased at the lowest
// offered rate with the order number as the carrier reference.
func (f *PrintShopFacade) CreateShippingLabel(ctx context.Context, userID int64, publicID uuid.UUID, parcel model.Parcel) (*model.ShippingLabel, *model.Order, error) {
	order, err := f.orders.Get(ctx, userID, publicID)
	if err != nil {
		return nil, nil, err
	}
	if order.Status != model.StatusReadyToShip {
		return nil, nil, domainErrors.ErrInvalidTransition
	}
	if order.Shipping == nil {
		return nil, nil, domainErrors.NewValidation("address", "order has no shipping address")
	}
	if parcel == (model.Parcel{}) {
		parcel = defaultParcel
	}

	recipient := order.Nickname
	if recipient == "" {
		recipient = order.Number
	}
	label, err := f.shipping.CreateLabel(ctx, shipping.LabelRequest{
		Reference: order.Number,
		Recipient: recipient,
		To:        *order.Shipping,
		Shipper:   "PrintShop",
		From:      shopOrigin,
		Parcel:    parcel,
	})
	if err != nil {
		var invalid shipping.InvalidAddressError
		if errors.As(err, &invalid) {
			return nil, nil, domainErrors.NewValidation("address", invalid.Message)
		}
		return nil, nil, err
	}

	shipped, err := f.orders.UpdateStatus(ctx, userID, publicID, string(model.StatusShipped))
	if err != nil {
		return nil, nil, err
	}
	return label, shipped, nil
}

func (f *PrintShopFacade) ApproveQuote(ctx context.Context, userID int64, publicID uuid.UUID, in usecase.ApproveInput) (*model.Approval, error) {
	return f.quotes.Approve(ctx, userID, publicID, in)
}

func (f *PrintShopFacade) RejectQuote(ctx context.Context, userID int64, publicID uuid.UUID, in usecase.RejectInput) (*model.Approval, error) {
	return f.quotes.Reject(ctx, userID, publicID, in)
}

func (f *PrintShopFacade) RequestQuoteChanges(ctx context.Context, userID int64, publicID uuid.UUID, comments string) (*model.Approval, error) {
	return f.quotes.RequestChanges(ctx, userID, publicID, comments)
}

func (f *PrintShopFacade) QuoteHistory(ctx context.Context, userID int64, publicID uuid.UUID) ([]model.Approval, error) {
	return f.quotes.History(ctx, userID, publicID)
}

func (f *PrintShopFacade) Products(ctx context.Context, search string, page, limit int) ([]model.Product, query.Pagination, error) {
	return f.products.List(ctx, search, page, limit)
}

// Product serves a catalog entry from the local mirror, falling back to a
// live supplier lookup for styles not mirrored yet. Successful lookups
// are saved so the next request is local.
func (f *PrintShopFacade) Product(ctx context.Context, sku string) (*model.Product, error) {
	product, err := f.products.GetBySKU(ctx, sku)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	fresh, err := f.supplier.Product(ctx, sku)
	if err != nil {
		if errors.Is(err, supplier.ErrNotInCatalog) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := f.products.Save(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (f *PrintShopFacade) DashboardStats(ctx context.Context, userID int64) (*usecase.DashboardStats, error) {
	return f.stats.Dashboard(ctx, userID)
}

// InvoiceURL returns a short-lived link to the order's invoice PDF. The
// order lookup enforces ownership before anything is presigned.
func (f *PrintShopFacade) InvoiceURL(ctx context.Context, userID int64, publicID uuid.UUID) (string, error) {
	order, err := f.orders.Get(ctx, userID, publicID)
	if err != nil {
		return "", err
	}
	return f.documents.PresignDownload(ctx, fmt.Sprintf("invoices/%s.pdf", order.PublicID))
}

// ArtworkURL returns a short-lived link to one artwork file on the order.
func (f *PrintShopFacade) ArtworkURL(ctx context.Context, userID int64, publicID uuid.UUID, name string) (string, error) {
	if name == "" || name != path.Base(name) || name == "." || name == ".." {
		return "", domainErrors.ErrNotFound
	}
	order, err := f.orders.Get(ctx, userID, publicID)
	if err != nil {
		return "", err
	}
	return f.documents.PresignDownload(ctx, fmt.Sprintf("artwork/%s/%s", order.PublicID, name))
}

// Health fans out to the database and the supplier API.
func (f *PrintShopFacade) Health(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return f.storage.HealthCheck(gctx) })
	g.Go(func() error { return f.supplier.HealthCheck(gctx) })
	return g.Wait()
}

// ProductsForSync claims a batch of catalog entries whose sync result is
// older than maxAge.
func (f *PrintShopFacade) ProductsForSync(ctx context.Context, maxAge time.Duration, limit int) ([]model.Product, error) {
	return f.products.SelectStaleBatch(ctx, maxAge, limit)
}

// FetchSupplierProduct queries the supplier for current price and
// inventory.
func (f *PrintShopFacade) FetchSupplierProduct(ctx context.Context, sku string) (*model.Product, error) {
	return f.supplier.Product(ctx, sku)
}

// RecordProductSync stores a sync result.
func (f *PrintShopFacade) RecordProductSync(ctx context.Context, productID int64, unitPrice float64, inventory int) error {
	return f.products.RecordSyncResult(ctx, productID, unitPrice, inventory)
}
