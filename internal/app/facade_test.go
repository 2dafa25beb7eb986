package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hypnotizedent/printshop-os-sub005/internal/adapter/shipping"
	"github.com/hypnotizedent/printshop-os-sub005/internal/adapter/supplier"
	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	testhelpers "github.com/hypnotizedent/printshop-os-sub005/internal/test"
	"github.com/hypnotizedent/printshop-os-sub005/internal/usecase"
)

type facadeDeps struct {
	users     *testhelpers.UserRepositoryStub
	orders    *testhelpers.OrderRepositoryStub
	approvals *testhelpers.ApprovalRepositoryStub
	products  *testhelpers.ProductRepositoryStub
	supplier  *testhelpers.SupplierProviderStub
	shipping  *testhelpers.ShippingProviderStub
	documents *testhelpers.DocumentStoreStub
	storage   *testhelpers.StorageHealthStub
}

func newFacade() (*PrintShopFacade, *facadeDeps) {
	deps := &facadeDeps{
		users:     &testhelpers.UserRepositoryStub{},
		orders:    &testhelpers.OrderRepositoryStub{},
		approvals: &testhelpers.ApprovalRepositoryStub{},
		products:  &testhelpers.ProductRepositoryStub{},
		supplier:  &testhelpers.SupplierProviderStub{},
		shipping:  &testhelpers.ShippingProviderStub{},
		documents: &testhelpers.DocumentStoreStub{},
		storage:   &testhelpers.StorageHealthStub{},
	}

	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(deps.users, testhelpers.HasherStub{}, strategy)
	orderUC := usecase.NewOrderUseCase(deps.orders)
	quoteUC := usecase.NewQuoteUseCase(deps.orders, deps.approvals)
	productUC := usecase.NewProductUseCase(deps.products)
	statsUC := usecase.NewStatsUseCase(deps.orders)

	facade := NewPrintShopFacade(authUC, orderUC, quoteUC, productUC, statsUC, deps.supplier, deps.shipping, deps.documents, deps.storage)
	return facade, deps
}

func TestPrintShopFacadeAuth(t *testing.T) {
	facade, deps := newFacade()
	token, err := facade.Register(context.Background(), "user@example.com", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := deps.users.GetByEmail(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Email != "user@example.com" {
		t.Fatalf("unexpected stored email %q", stored.Email)
	}

	token, err = facade.Authenticate(context.Background(), "user@example.com", "pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

func TestPrintShopFacadeOrders(t *testing.T) {
	facade, deps := newFacade()

	order, err := facade.CreateQuote(context.Background(), 7, usecase.CreateQuoteInput{
		Nickname: "banquet shirts",
		Items:    []model.LineItem{{Description: "Heavy Cotton Tee", Quantity: 24, UnitPrice: 12.50}},
	})
	if err != nil {
		t.Fatalf("create quote returned error: %v", err)
	}
	if order.Status != model.StatusQuote {
		t.Fatalf("expected quote status, got %q", order.Status)
	}
	if len(deps.orders.Created) != 1 {
		t.Fatalf("expected one stored order, got %d", len(deps.orders.Created))
	}

	updated, err := facade.UpdateOrderStatus(context.Background(), 7, order.PublicID, "pending")
	if err != nil {
		t.Fatalf("update status returned error: %v", err)
	}
	if updated.Status != model.StatusPending {
		t.Fatalf("expected pending, got %q", updated.Status)
	}
	if len(deps.orders.StatusUpdates) != 1 {
		t.Fatalf("expected one status update, got %d", len(deps.orders.StatusUpdates))
	}

	_, projection, err := facade.OrderTimeline(context.Background(), 7, order.PublicID)
	if err != nil {
		t.Fatalf("timeline returned error: %v", err)
	}
	if projection.Cancelled || projection.Current != model.MilestoneQuote {
		t.Fatalf("unexpected projection: %+v", projection)
	}
}

func readyToShipOrder(userID int64, publicID uuid.UUID) *model.Order {
	return &model.Order{
		ID:       1,
		PublicID: publicID,
		UserID:   userID,
		Number:   "P-1042",
		Nickname: "banquet shirts",
		Status:   model.StatusReadyToShip,
		Shipping: &model.Address{
			Line1:      "456 Market St",
			City:       "Los Angeles",
			State:      "CA",
			PostalCode: "90001",
			Country:    "US",
		},
	}
}

func TestPrintShopFacadeCreateShippingLabel(t *testing.T) {
	facade, deps := newFacade()
	publicID := uuid.New()
	deps.orders.GetFn = func(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
		return readyToShipOrder(userID, id), nil
	}

	label, order, err := facade.CreateShippingLabel(context.Background(), 7, publicID, model.Parcel{})
	if err != nil {
		t.Fatalf("create label returned error: %v", err)
	}
	if label.TrackingCode != "9400111899562539802544" || label.Carrier != "USPS" {
		t.Fatalf("unexpected label: %+v", label)
	}
	if order.Status != model.StatusShipped {
		t.Fatalf("expected order to ship, got %q", order.Status)
	}
	if len(deps.orders.StatusUpdates) != 1 || deps.orders.StatusUpdates[0].Status != model.StatusShipped {
		t.Fatalf("unexpected status updates: %+v", deps.orders.StatusUpdates)
	}

	if len(deps.shipping.Requests) != 1 {
		t.Fatalf("expected one label request, got %d", len(deps.shipping.Requests))
	}
	req := deps.shipping.Requests[0]
	if req.Reference != "P-1042" || req.To.PostalCode != "90001" {
		t.Fatalf("unexpected label request: %+v", req)
	}
	// zero parcel falls back to the standard box
	if req.Parcel != defaultParcel {
		t.Fatalf("expected default parcel, got %+v", req.Parcel)
	}
}

func TestPrintShopFacadeCreateShippingLabelNotReady(t *testing.T) {
	facade, deps := newFacade()

	// the default stub order is still a quote
	_, _, err := facade.CreateShippingLabel(context.Background(), 7, uuid.New(), model.Parcel{})
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if len(deps.shipping.Requests) != 0 {
		t.Fatalf("no label must be purchased, got %d requests", len(deps.shipping.Requests))
	}
}

func TestPrintShopFacadeCreateShippingLabelValidation(t *testing.T) {
	facade, deps := newFacade()
	deps.orders.GetFn = func(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
		order := readyToShipOrder(userID, id)
		order.Shipping = nil
		return order, nil
	}

	_, _, err := facade.CreateShippingLabel(context.Background(), 7, uuid.New(), model.Parcel{})
	v, ok := domainErrors.AsValidation(err)
	if !ok || v.Field != "address" {
		t.Fatalf("expected address validation error, got %v", err)
	}

	deps.orders.GetFn = func(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
		return readyToShipOrder(userID, id), nil
	}
	deps.shipping.Err = shipping.InvalidAddressError{Message: "zip does not match state"}

	_, _, err = facade.CreateShippingLabel(context.Background(), 7, uuid.New(), model.Parcel{})
	v, ok = domainErrors.AsValidation(err)
	if !ok || v.Field != "address" || v.Reason != "zip does not match state" {
		t.Fatalf("expected carrier rejection as validation error, got %v", err)
	}
	if len(deps.orders.StatusUpdates) != 0 {
		t.Fatalf("failed purchase must not ship the order: %+v", deps.orders.StatusUpdates)
	}
}

func TestPrintShopFacadeProductFallback(t *testing.T) {
	facade, deps := newFacade()
	deps.supplier.Entry = &model.Product{SKU: "G500-BLK-L", Supplier: "Gildan", Name: "Heavy Cotton Tee", UnitPrice: 3.42, Inventory: 1840}

	product, err := facade.Product(context.Background(), "G500-BLK-L")
	if err != nil {
		t.Fatalf("expected supplier fallback, got %v", err)
	}
	if product.SKU != "G500-BLK-L" || product.UnitPrice != 3.42 {
		t.Fatalf("unexpected product: %+v", product)
	}

	// The fallback result is mirrored so the next lookup is local.
	deps.products.Lock()
	mirrored := len(deps.products.Products)
	deps.products.Unlock()
	if mirrored != 1 {
		t.Fatalf("expected product to be mirrored, got %d entries", mirrored)
	}

	deps.supplier.Entry = nil
	deps.supplier.Err = errors.New("supplier down")
	if _, err := facade.Product(context.Background(), "G500-BLK-L"); err != nil {
		t.Fatalf("mirrored product must be served locally, got %v", err)
	}
}

func TestPrintShopFacadeProductNotInCatalog(t *testing.T) {
	facade, deps := newFacade()
	deps.supplier.Err = supplier.ErrNotInCatalog

	_, err := facade.Product(context.Background(), "NOPE")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPrintShopFacadeInvoiceURL(t *testing.T) {
	facade, deps := newFacade()
	publicID := uuid.New()

	url, err := facade.InvoiceURL(context.Background(), 7, publicID)
	if err != nil {
		t.Fatalf("invoice url returned error: %v", err)
	}
	want := "https://files.example.com/invoices/" + publicID.String() + ".pdf"
	if url != want {
		t.Fatalf("expected %q, got %q", want, url)
	}
	if len(deps.documents.Keys) != 1 || deps.documents.Keys[0] != "invoices/"+publicID.String()+".pdf" {
		t.Fatalf("unexpected presigned keys: %v", deps.documents.Keys)
	}
}

func TestPrintShopFacadeInvoiceURLMissingOrder(t *testing.T) {
	facade, deps := newFacade()
	deps.orders.GetFn = func(context.Context, int64, uuid.UUID) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}

	_, err := facade.InvoiceURL(context.Background(), 7, uuid.New())
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(deps.documents.Keys) != 0 {
		t.Fatalf("nothing must be presigned without an owned order, got %v", deps.documents.Keys)
	}
}

func TestPrintShopFacadeArtworkURL(t *testing.T) {
	facade, deps := newFacade()
	publicID := uuid.New()

	url, err := facade.ArtworkURL(context.Background(), 7, publicID, "front.png")
	if err != nil {
		t.Fatalf("artwork url returned error: %v", err)
	}
	want := "https://files.example.com/artwork/" + publicID.String() + "/front.png"
	if url != want {
		t.Fatalf("expected %q, got %q", want, url)
	}

	for _, name := range []string{"", ".", "..", "../secrets.pdf", "nested/file.png"} {
		if _, err := facade.ArtworkURL(context.Background(), 7, publicID, name); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found for name %q, got %v", name, err)
		}
	}
	if len(deps.documents.Keys) != 1 {
		t.Fatalf("only the valid name may be presigned, got %v", deps.documents.Keys)
	}
}

func TestPrintShopFacadeHealth(t *testing.T) {
	facade, deps := newFacade()
	if err := facade.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}

	deps.storage.Err = errors.New("database unreachable")
	if err := facade.Health(context.Background()); err == nil {
		t.Fatal("expected storage failure to surface")
	}

	deps.storage.Err = nil
	deps.supplier.HealthFn = func(context.Context) error { return errors.New("supplier unreachable") }
	if err := facade.Health(context.Background()); err == nil {
		t.Fatal("expected supplier failure to surface")
	}
}

func TestPrintShopFacadeWorkerDelegation(t *testing.T) {
	facade, deps := newFacade()
	stale := time.Now().Add(-2 * time.Hour)
	deps.products.Products = []model.Product{{ID: 3, SKU: "G500-BLK-L", SyncedAt: stale}}

	batch, err := facade.ProductsForSync(context.Background(), time.Hour, 10)
	if err != nil || len(batch) != 1 {
		t.Fatalf("unexpected batch: %v err=%v", batch, err)
	}

	fresh, err := facade.FetchSupplierProduct(context.Background(), "G500-BLK-L")
	if err != nil || fresh.SKU != "G500-BLK-L" {
		t.Fatalf("unexpected supplier result: %v err=%v", fresh, err)
	}

	if err := facade.RecordProductSync(context.Background(), 3, 3.55, 1600); err != nil {
		t.Fatalf("record sync returned error: %v", err)
	}
	deps.products.Lock()
	defer deps.products.Unlock()
	if len(deps.products.Synced) != 1 || deps.products.Synced[0].ProductID != 3 {
		t.Fatalf("unexpected sync calls: %v", deps.products.Synced)
	}
}
