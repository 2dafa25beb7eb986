package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hypnotizedent/printshop-os-sub005/internal/adapter/shipping"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
	"github.com/hypnotizedent/printshop-os-sub005/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn   func(context.Context, int64, usecase.CreateQuoteInput) (*model.Order, error)
	GetFn      func(context.Context, int64, uuid.UUID) (*model.Order, error)
	ListFn     func(context.Context, int64, query.Criteria, int, int) ([]model.Order, query.Pagination, error)
	TimelineFn func(context.Context, int64, uuid.UUID) (*model.Order, model.Projection, error)
	UpdateFn   func(context.Context, int64, uuid.UUID, string) (*model.Order, error)
}

// CreateQuote delegates to the override or returns a stored quote.
func (s OrderFacadeStub) CreateQuote(ctx context.Context, userID int64, in usecase.CreateQuoteInput) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, in)
	}
	order := &model.Order{
		ID: 1, PublicID: uuid.New(), UserID: userID, Number: "P-1001",
		Nickname: in.Nickname, Status: model.StatusQuote, Items: in.Items,
	}
	order.ComputeTotals()
	return order, nil
}

// Order returns a stored order for the identifier.
func (s OrderFacadeStub) Order(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, publicID)
	}
	return &model.Order{ID: 1, PublicID: publicID, UserID: userID, Number: "P-1001", Status: model.StatusQuote}, nil
}

// Orders returns one page of orders.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, c query.Criteria, page, limit int) ([]model.Order, query.Pagination, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID, c, page, limit)
	}
	orders := []model.Order{{ID: 1, PublicID: uuid.New(), UserID: userID, Number: "P-1001", Status: model.StatusQuote}}
	return orders, query.NewPagination(page, limit, len(orders)), nil
}

// OrderTimeline returns the milestone projection.
func (s OrderFacadeStub) OrderTimeline(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, model.Projection, error) {
	if s.TimelineFn != nil {
		return s.TimelineFn(ctx, userID, publicID)
	}
	order := &model.Order{ID: 1, PublicID: publicID, UserID: userID, Number: "P-1001", Status: model.StatusQuote}
	return order, model.ProjectTimeline(order.Status), nil
}

// UpdateOrderStatus returns the order with the new status applied.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, userID int64, publicID uuid.UUID, status string) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, publicID, status)
	}
	next, err := model.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return &model.Order{ID: 1, PublicID: publicID, UserID: userID, Number: "P-1001", Status: next}, nil
}

// ShippingFacadeStub purchases canned labels.
type ShippingFacadeStub struct {
	CreateLabelFn func(context.Context, int64, uuid.UUID, model.Parcel) (*model.ShippingLabel, *model.Order, error)
}

// CreateShippingLabel delegates to the override or returns a fixed label
// with the order moved to shipped.
func (s ShippingFacadeStub) CreateShippingLabel(ctx context.Context, userID int64, publicID uuid.UUID, parcel model.Parcel) (*model.ShippingLabel, *model.Order, error) {
	if s.CreateLabelFn != nil {
		return s.CreateLabelFn(ctx, userID, publicID, parcel)
	}
	label := &model.ShippingLabel{
		ShipmentID:   "shp_100",
		TrackingCode: "9400111899562539802544",
		Carrier:      "USPS",
		Service:      "Priority",
		Rate:         7.33,
		LabelURL:     "https://labels.example.com/shp_100.png",
	}
	order := &model.Order{ID: 1, PublicID: publicID, UserID: userID, Number: "P-1001", Status: model.StatusShipped}
	return label, order, nil
}

// QuoteFacadeStub simulates the quote approval flow.
type QuoteFacadeStub struct {
	ApproveFn func(context.Context, int64, uuid.UUID, usecase.ApproveInput) (*model.Approval, error)
	RejectFn  func(context.Context, int64, uuid.UUID, usecase.RejectInput) (*model.Approval, error)
	ChangesFn func(context.Context, int64, uuid.UUID, string) (*model.Approval, error)
	HistoryFn func(context.Context, int64, uuid.UUID) ([]model.Approval, error)
}

// ApproveQuote delegates to the override or returns a recorded approval.
func (s QuoteFacadeStub) ApproveQuote(ctx context.Context, userID int64, publicID uuid.UUID, in usecase.ApproveInput) (*model.Approval, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, userID, publicID, in)
	}
	return &model.Approval{ID: uuid.New(), OrderID: 1, Kind: model.ApprovalKindApprove, Signature: in.Signature, CreatedAt: time.Now()}, nil
}

// RejectQuote delegates to the override or returns a recorded rejection.
func (s QuoteFacadeStub) RejectQuote(ctx context.Context, userID int64, publicID uuid.UUID, in usecase.RejectInput) (*model.Approval, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, userID, publicID, in)
	}
	return &model.Approval{ID: uuid.New(), OrderID: 1, Kind: model.ApprovalKindReject, Reason: in.Reason, CreatedAt: time.Now()}, nil
}

// RequestQuoteChanges delegates to the override or records comments.
func (s QuoteFacadeStub) RequestQuoteChanges(ctx context.Context, userID int64, publicID uuid.UUID, comments string) (*model.Approval, error) {
	if s.ChangesFn != nil {
		return s.ChangesFn(ctx, userID, publicID, comments)
	}
	return &model.Approval{ID: uuid.New(), OrderID: 1, Kind: model.ApprovalKindChangeRequest, Comments: comments, CreatedAt: time.Now()}, nil
}

// QuoteHistory delegates to the override or returns one approval.
func (s QuoteFacadeStub) QuoteHistory(ctx context.Context, userID int64, publicID uuid.UUID) ([]model.Approval, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID, publicID)
	}
	return []model.Approval{{ID: uuid.New(), OrderID: 1, Kind: model.ApprovalKindApprove, CreatedAt: time.Unix(0, 0)}}, nil
}

// ProductFacadeStub serves canned catalog data.
type ProductFacadeStub struct {
	ListFn func(context.Context, string, int, int) ([]model.Product, query.Pagination, error)
	GetFn  func(context.Context, string) (*model.Product, error)
}

// Products returns one page of catalog entries.
func (s ProductFacadeStub) Products(ctx context.Context, search string, page, limit int) ([]model.Product, query.Pagination, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, search, page, limit)
	}
	products := []model.Product{{ID: 1, SKU: "G500-BLK-L", Supplier: "Gildan", Name: "Heavy Cotton Tee", UnitPrice: 3.42, Inventory: 1840}}
	return products, query.NewPagination(page, limit, len(products)), nil
}

// Product returns a single catalog entry.
func (s ProductFacadeStub) Product(ctx context.Context, sku string) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, sku)
	}
	return &model.Product{ID: 1, SKU: sku, Supplier: "Gildan", Name: "Heavy Cotton Tee", UnitPrice: 3.42, Inventory: 1840}, nil
}

// StatsFacadeStub serves canned dashboard aggregates.
type StatsFacadeStub struct {
	DashboardFn func(context.Context, int64) (*usecase.DashboardStats, error)
}

// DashboardStats returns configured aggregates or a small default.
func (s StatsFacadeStub) DashboardStats(ctx context.Context, userID int64) (*usecase.DashboardStats, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, userID)
	}
	return &usecase.DashboardStats{
		StatusCounts: map[model.Status]int{model.StatusQuote: 2, model.StatusShipped: 1},
		OpenOrders:   3,
		Outstanding:  420,
	}, nil
}

// FileFacadeStub returns canned download URLs.
type FileFacadeStub struct {
	InvoiceFn func(context.Context, int64, uuid.UUID) (string, error)
	ArtworkFn func(context.Context, int64, uuid.UUID, string) (string, error)
}

// InvoiceURL delegates to the override or returns a fixed link.
func (s FileFacadeStub) InvoiceURL(ctx context.Context, userID int64, publicID uuid.UUID) (string, error) {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, userID, publicID)
	}
	return "https://files.example.com/invoices/" + publicID.String() + ".pdf", nil
}

// ArtworkURL delegates to the override or returns a fixed link.
func (s FileFacadeStub) ArtworkURL(ctx context.Context, userID int64, publicID uuid.UUID, name string) (string, error) {
	if s.ArtworkFn != nil {
		return s.ArtworkFn(ctx, userID, publicID, name)
	}
	return "https://files.example.com/artwork/" + publicID.String() + "/" + name, nil
}

// HealthFacadeStub reports configured health state.
type HealthFacadeStub struct {
	Err error
}

// Health returns the configured error.
func (s HealthFacadeStub) Health(ctx context.Context) error {
	return s.Err
}

// PrintShopFacadeStub aggregates facade dependencies for HTTP layer tests.
type PrintShopFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	ShippingFacadeStub
	QuoteFacadeStub
	ProductFacadeStub
	StatsFacadeStub
	FileFacadeStub
	HealthFacadeStub
}

// ProductSyncCall records one RecordProductSync invocation.
type ProductSyncCall struct {
	ProductID int64
	UnitPrice float64
	Inventory int
}

// WorkerFacadeStub mimics worker interactions with the catalog facade.
type WorkerFacadeStub struct {
	Batches          [][]model.Product
	BatchFn          func(context.Context, time.Duration, int) ([]model.Product, error)
	FetchFn          func(context.Context, string) (*model.Product, error)
	RecordFn         func(context.Context, int64, float64, int) error
	Syncs            []ProductSyncCall
	mu               sync.Mutex
	batchesCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// ProductsForSync returns batches from the configured queue.
func (s *WorkerFacadeStub) ProductsForSync(ctx context.Context, maxAge time.Duration, limit int) ([]model.Product, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, maxAge, limit)
	}
	call := atomic.AddInt32(&s.batchesCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// FetchSupplierProduct returns configured supplier data.
func (s *WorkerFacadeStub) FetchSupplierProduct(ctx context.Context, sku string) (*model.Product, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, sku)
	}
	return &model.Product{SKU: sku, UnitPrice: 3.55, Inventory: 1600}, nil
}

// RecordProductSync records sync outcomes.
func (s *WorkerFacadeStub) RecordProductSync(ctx context.Context, productID int64, unitPrice float64, inventory int) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, productID, unitPrice, inventory)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Syncs = append(s.Syncs, ProductSyncCall{ProductID: productID, UnitPrice: unitPrice, Inventory: inventory})
	return nil
}

// SupplierProviderStub fetches supplier products for tests.
type SupplierProviderStub struct {
	FetchFn  func(context.Context, string) (*model.Product, error)
	Entry    *model.Product
	Err      error
	HealthFn func(context.Context) error
}

// Product returns the configured response or a default entry.
func (s SupplierProviderStub) Product(ctx context.Context, sku string) (*model.Product, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, sku)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Entry != nil {
		return s.Entry, nil
	}
	return &model.Product{SKU: sku, Supplier: "Gildan", Name: "Heavy Cotton Tee", UnitPrice: 3.42, Inventory: 1840}, nil
}

// HealthCheck reports configured supplier health.
func (s SupplierProviderStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// ShippingProviderStub purchases labels for tests and records the
// requests it saw.
type ShippingProviderStub struct {
	CreateFn func(context.Context, shipping.LabelRequest) (*model.ShippingLabel, error)
	Label    *model.ShippingLabel
	Err      error

	mu       sync.Mutex
	Requests []shipping.LabelRequest
}

// CreateLabel records the request and returns the configured label.
func (s *ShippingProviderStub) CreateLabel(ctx context.Context, req shipping.LabelRequest) (*model.ShippingLabel, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	s.mu.Lock()
	s.Requests = append(s.Requests, req)
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Label != nil {
		return s.Label, nil
	}
	return &model.ShippingLabel{
		ShipmentID:   "shp_100",
		TrackingCode: "9400111899562539802544",
		Carrier:      "USPS",
		Service:      "Priority",
		Rate:         7.33,
		LabelURL:     "https://labels.example.com/shp_100.png",
	}, nil
}

// DocumentStoreStub presigns deterministic URLs.
type DocumentStoreStub struct {
	PresignFn func(context.Context, string) (string, error)
	Keys      []string
	mu        sync.Mutex
}

// PresignDownload records the object key and returns a fake link.
func (s *DocumentStoreStub) PresignDownload(ctx context.Context, objectKey string) (string, error) {
	if s.PresignFn != nil {
		return s.PresignFn(ctx, objectKey)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Keys = append(s.Keys, objectKey)
	return "https://files.example.com/" + objectKey, nil
}

// StorageHealthStub reports configured database health.
type StorageHealthStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s StorageHealthStub) HealthCheck(ctx context.Context) error {
	return s.Err
}
