package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/repository"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
)

// OrderUseCase encapsulates order/quote lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// CreateQuoteInput describes a new quote request from the portal.
type CreateQuoteInput struct {
	Nickname string
	DueDate  *time.Time
	Items    []model.LineItem
	Tax      float64
	Shipping float64
	Discount float64
	Fees     float64
	Address  *model.Address
}

// CreateQuote validates the request and persists a new order in the quote
// stage. Totals are always computed server-side.
func (u *OrderUseCase) CreateQuote(ctx context.Context, userID int64, in CreateQuoteInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, domainErrors.NewValidation("items", "at least one line item is required")
	}
	for _, item := range in.Items {
		if item.Description == "" {
			return nil, domainErrors.NewValidation("items.description", "required")
		}
		if item.Quantity <= 0 {
			return nil, domainErrors.NewValidation("items.quantity", "must be positive")
		}
		if item.UnitPrice < 0 {
			return nil, domainErrors.NewValidation("items.unit_price", "must not be negative")
		}
	}
	if in.Tax < 0 || in.Shipping < 0 || in.Discount < 0 || in.Fees < 0 {
		return nil, domainErrors.NewValidation("totals", "adjustments must not be negative")
	}

	order := &model.Order{
		PublicID: uuid.New(),
		UserID:   userID,
		Nickname: in.Nickname,
		Status:   model.StatusQuote,
		DueDate:  in.DueDate,
		Items:    in.Items,
		Shipping: in.Address,
		Totals: model.Totals{
			Tax:      in.Tax,
			Shipping: in.Shipping,
			Discount: in.Discount,
			Fees:     in.Fees,
		},
	}
	order.ComputeTotals()

	return u.orders.Create(ctx, order)
}

// Get returns the full record scoped to its owner.
func (u *OrderUseCase) Get(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, error) {
	return u.orders.GetByPublicID(ctx, userID, publicID)
}

// List returns one page of the owner's orders matching the criteria.
func (u *OrderUseCase) List(ctx context.Context, userID int64, c query.Criteria, page, limit int) ([]model.Order, query.Pagination, error) {
	return u.orders.List(ctx, userID, c, page, limit)
}

// Timeline projects the order status onto the milestone sequence.
func (u *OrderUseCase) Timeline(ctx context.Context, userID int64, publicID uuid.UUID) (*model.Order, model.Projection, error) {
	order, err := u.orders.GetByPublicID(ctx, userID, publicID)
	if err != nil {
		return nil, model.Projection{}, err
	}
	return order, model.ProjectTimeline(order.Status), nil
}

// UpdateStatus moves the order to the next status after validating the
// transition against the lifecycle rules.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, userID int64, publicID uuid.UUID, raw string) (*model.Order, error) {
	next, err := model.ParseStatus(raw)
	if err != nil {
		return nil, domainErrors.NewValidation("status", err.Error())
	}

	order, err := u.orders.GetByPublicID(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	if !order.CanTransition(next) {
		return nil, domainErrors.ErrInvalidTransition
	}

	if err := u.orders.UpdateStatus(ctx, order.ID, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}

// Recent returns the owner's newest orders for dashboard aggregation.
func (u *OrderUseCase) Recent(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	return u.orders.ListRecent(ctx, userID, limit)
}
