package usecase

import (
	"context"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/repository"
	"github.com/hypnotizedent/printshop-os-sub005/internal/query"
)

// recentWindow bounds the number of orders the dashboard aggregates over.
const recentWindow = 200

// DashboardStats summarizes the caller's recent orders per status.
type DashboardStats struct {
	StatusCounts map[model.Status]int
	OpenOrders   int
	Outstanding  float64
}

// StatsUseCase computes dashboard aggregates.
type StatsUseCase struct {
	orders repository.OrderRepository
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(orders repository.OrderRepository) *StatsUseCase {
	return &StatsUseCase{orders: orders}
}

// Dashboard aggregates per-status counts and the outstanding amount over
// the caller's recent orders.
func (u *StatsUseCase) Dashboard(ctx context.Context, userID int64) (*DashboardStats, error) {
	orders, err := u.orders.ListRecent(ctx, userID, recentWindow)
	if err != nil {
		return nil, err
	}
	// Repositories treat the limit as a hint; the window is enforced here.
	orders = query.NewPagination(1, recentWindow, len(orders)).Slice(orders)

	stats := &DashboardStats{StatusCounts: make(map[model.Status]int, len(model.AllStatuses))}
	for _, s := range model.AllStatuses {
		matched := query.FilterStatus(orders, s)
		if len(matched) == 0 {
			continue
		}
		stats.StatusCounts[s] = len(matched)
		if !s.Terminal() {
			stats.OpenOrders += len(matched)
		}
	}
	for _, o := range orders {
		if o.Status != model.StatusCancelled {
			stats.Outstanding += o.Totals.Outstanding
		}
	}
	return stats, nil
}
