package test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/repository"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
)

// UserRepositoryStub keeps accounts in memory.
type UserRepositoryStub struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*model.User

	CreateFn func(context.Context, string, string) (*model.User, error)
}

// Create stores a new account unless the email is taken.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, email, passwordHash)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users == nil {
		s.users = make(map[string]*model.User)
	}
	if _, ok := s.users[email]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.nextID++
	u := &model.User{ID: s.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.users[email] = u
	return u, nil
}

// GetByEmail returns the stored account.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID returns the stored account by identifier.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub provides controllable order persistence.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetFn          func(context.Context, int64, uuid.UUID) (*model.Order, error)
	ListFn         func(context.Context, int64, query.Criteria, int, int) ([]model.Order, query.Pagination, error)
	ListRecentFn   func(context.Context, int64, int) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.Status) error

	mu            sync.Mutex
	Created       []model.Order
	StatusUpdates []StatusUpdateCall
}

// StatusUpdateCall records one UpdateStatus invocation.
type StatusUpdateCall struct {
	OrderID int64
	Status  model.Status
}

// Lock exposes internal mutex for external synchronization.
func (s *OrderRepositoryStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *OrderRepositoryStub) Unlock() { s.mu.Unlock() }

// Create records the order and assigns identifiers.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *order
	stored.ID = int64(len(s.Created) + 1)
	stored.Number = "P-1001"
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.Created = append(s.Created, stored)
	return &stored, nil
}

// GetByPublicID returns a quote owned by the user unless overridden.
func (s *OrderRepositoryStub) GetByPublicID(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, publicID)
	}
	return &model.Order{ID: 1, PublicID: publicID, UserID: userID, Number: "P-1001", Status: model.StatusQuote}, nil
}

// List delegates to the override or returns an empty page.
func (s *OrderRepositoryStub) List(ctx context.Context, userID int64, c query.Criteria, page, limit int) ([]model.Order, query.Pagination, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID, c, page, limit)
	}
	return nil, query.NewPagination(page, limit, 0), nil
}

// ListRecent delegates to the override or returns nothing.
func (s *OrderRepositoryStub) ListRecent(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	if s.ListRecentFn != nil {
		return s.ListRecentFn(ctx, userID, limit)
	}
	return nil, nil
}

// UpdateStatus records the transition.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.Status) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StatusUpdates = append(s.StatusUpdates, StatusUpdateCall{OrderID: orderID, Status: status})
	return nil
}

// ApprovalRepositoryStub records quote decisions in memory.
type ApprovalRepositoryStub struct {
	CreateFn func(context.Context, *model.Approval) (*model.Approval, error)
	ListFn   func(context.Context, int64) ([]model.Approval, error)

	mu      sync.Mutex
	Created []model.Approval
}

// Lock exposes internal mutex for external synchronization.
func (s *ApprovalRepositoryStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ApprovalRepositoryStub) Unlock() { s.mu.Unlock() }

// Create records the approval.
func (s *ApprovalRepositoryStub) Create(ctx context.Context, approval *model.Approval) (*model.Approval, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, approval)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *approval
	stored.CreatedAt = time.Now()
	s.Created = append(s.Created, stored)
	return &stored, nil
}

// ListByOrder returns recorded approvals for the order.
func (s *ApprovalRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Approval, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Approval
	for _, a := range s.Created {
		if a.OrderID == orderID {
			result = append(result, a)
		}
	}
	return result, nil
}

// ProductRepositoryStub keeps catalog entries in memory.
type ProductRepositoryStub struct {
	UpsertFn      func(context.Context, *model.Product) error
	GetFn         func(context.Context, string) (*model.Product, error)
	ListProductFn func(context.Context, string, int, int) ([]model.Product, query.Pagination, error)
	StaleFn       func(context.Context, time.Time, int) ([]model.Product, error)
	SyncResultFn  func(context.Context, int64, float64, int) error

	mu       sync.Mutex
	Products []model.Product
	Synced   []SyncResultCall
}

// SyncResultCall records one UpdateSyncResult invocation.
type SyncResultCall struct {
	ProductID int64
	UnitPrice float64
	Inventory int
}

// Lock exposes internal mutex for external synchronization.
func (s *ProductRepositoryStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ProductRepositoryStub) Unlock() { s.mu.Unlock() }

// Upsert stores or replaces the product by SKU.
func (s *ProductRepositoryStub) Upsert(ctx context.Context, product *model.Product) error {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, product)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Products {
		if s.Products[i].SKU == product.SKU {
			s.Products[i] = *product
			return nil
		}
	}
	stored := *product
	stored.ID = int64(len(s.Products) + 1)
	s.Products = append(s.Products, stored)
	return nil
}

// GetBySKU returns a stored product.
func (s *ProductRepositoryStub) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, sku)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Products {
		if p.SKU == sku {
			stored := p
			return &stored, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List filters stored products by the search term.
func (s *ProductRepositoryStub) List(ctx context.Context, search string, page, limit int) ([]model.Product, query.Pagination, error) {
	if s.ListProductFn != nil {
		return s.ListProductFn(ctx, search, page, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []model.Product
	term := strings.ToLower(search)
	for _, p := range s.Products {
		if term == "" || strings.Contains(strings.ToLower(p.SKU), term) || strings.Contains(strings.ToLower(p.Name), term) {
			matched = append(matched, p)
		}
	}
	p := query.NewPagination(page, limit, len(matched))
	start := p.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + p.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], p, nil
}

// SelectStaleBatch returns products synced before the cutoff.
func (s *ProductRepositoryStub) SelectStaleBatch(ctx context.Context, cutoff time.Time, limit int) ([]model.Product, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, cutoff, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var stale []model.Product
	for _, p := range s.Products {
		if p.SyncedAt.Before(cutoff) && len(stale) < limit {
			stale = append(stale, p)
		}
	}
	return stale, nil
}

// UpdateSyncResult records the sync outcome.
func (s *ProductRepositoryStub) UpdateSyncResult(ctx context.Context, productID int64, unitPrice float64, inventory int) error {
	if s.SyncResultFn != nil {
		return s.SyncResultFn(ctx, productID, unitPrice, inventory)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Synced = append(s.Synced, SyncResultCall{ProductID: productID, UnitPrice: unitPrice, Inventory: inventory})
	return nil
}

var (
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.ApprovalRepository = (*ApprovalRepositoryStub)(nil)
	_ repository.ProductRepository  = (*ProductRepositoryStub)(nil)
)
