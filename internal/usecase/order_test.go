package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/hypnotizedent/printshop-os-sub005/internal/domain/errors"
	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
	testhelpers "github.com/hypnotizedent/printshop-os-sub005/internal/test"
	"github.com/hypnotizedent/printshop-os-sub005/internal/usecase"
)

func validQuoteInput() usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		Nickname: "banquet shirts",
		Items: []model.LineItem{
			{Description: "Heavy Cotton Tee", Quantity: 24, UnitPrice: 12.50},
			{Description: "Setup fee", Quantity: 2, UnitPrice: 45},
		},
		Tax:      30,
		Shipping: 15,
		Discount: 25,
		Fees:     10,
	}
}

func TestCreateQuote(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := usecase.NewOrderUseCase(repo)

	order, err := uc.CreateQuote(context.Background(), 7, validQuoteInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.StatusQuote {
		t.Errorf("new orders must start as quotes, got %s", order.Status)
	}
	if order.PublicID == (uuid.UUID{}) {
		t.Error("expected a public identifier")
	}
	if order.Totals.Subtotal != 390 {
		t.Errorf("expected subtotal 390, got %v", order.Totals.Subtotal)
	}
	if order.Totals.Total != 420 {
		t.Errorf("expected total 420, got %v", order.Totals.Total)
	}
	if order.Totals.Outstanding != 420 {
		t.Errorf("expected outstanding 420, got %v", order.Totals.Outstanding)
	}
}

func TestCreateQuoteValidation(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := usecase.NewOrderUseCase(repo)

	cases := []struct {
		name   string
		mutate func(*usecase.CreateQuoteInput)
		field  string
	}{
		{"no items", func(in *usecase.CreateQuoteInput) { in.Items = nil }, "items"},
		{"blank description", func(in *usecase.CreateQuoteInput) { in.Items[0].Description = "" }, "items.description"},
		{"zero quantity", func(in *usecase.CreateQuoteInput) { in.Items[0].Quantity = 0 }, "items.quantity"},
		{"negative price", func(in *usecase.CreateQuoteInput) { in.Items[0].UnitPrice = -1 }, "items.unit_price"},
		{"negative tax", func(in *usecase.CreateQuoteInput) { in.Tax = -1 }, "totals"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validQuoteInput()
			tc.mutate(&in)
			_, err := uc.CreateQuote(context.Background(), 7, in)
			v, ok := domainErrors.AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if v.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, v.Field)
			}
		})
	}

	repo.Lock()
	defer repo.Unlock()
	if len(repo.Created) != 0 {
		t.Errorf("invalid submissions must not be persisted, got %d", len(repo.Created))
	}
}

func TestUpdateStatus(t *testing.T) {
	publicID := uuid.New()

	t.Run("legal transition", func(t *testing.T) {
		repo := &testhelpers.OrderRepositoryStub{
			GetFn: func(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
				return &model.Order{ID: 1, PublicID: id, UserID: userID, Status: model.StatusInProduction}, nil
			},
		}
		uc := usecase.NewOrderUseCase(repo)

		order, err := uc.UpdateStatus(context.Background(), 7, publicID, "shipped")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Status != model.StatusShipped {
			t.Errorf("expected shipped, got %s", order.Status)
		}
		repo.Lock()
		defer repo.Unlock()
		if len(repo.StatusUpdates) != 1 || repo.StatusUpdates[0].Status != model.StatusShipped {
			t.Errorf("unexpected status updates: %+v", repo.StatusUpdates)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		uc := usecase.NewOrderUseCase(&testhelpers.OrderRepositoryStub{})
		_, err := uc.UpdateStatus(context.Background(), 7, publicID, "teleported")
		if _, ok := domainErrors.AsValidation(err); !ok {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("backwards move", func(t *testing.T) {
		repo := &testhelpers.OrderRepositoryStub{
			GetFn: func(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
				return &model.Order{ID: 1, PublicID: id, UserID: userID, Status: model.StatusShipped}, nil
			},
		}
		uc := usecase.NewOrderUseCase(repo)
		if _, err := uc.UpdateStatus(context.Background(), 7, publicID, "in_production"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("terminal status is final", func(t *testing.T) {
		repo := &testhelpers.OrderRepositoryStub{
			GetFn: func(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
				return &model.Order{ID: 1, PublicID: id, UserID: userID, Status: model.StatusCancelled}, nil
			},
		}
		uc := usecase.NewOrderUseCase(repo)
		if _, err := uc.UpdateStatus(context.Background(), 7, publicID, "pending"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("cancel from open status", func(t *testing.T) {
		repo := &testhelpers.OrderRepositoryStub{
			GetFn: func(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
				return &model.Order{ID: 1, PublicID: id, UserID: userID, Status: model.StatusReadyToShip}, nil
			},
		}
		uc := usecase.NewOrderUseCase(repo)
		order, err := uc.UpdateStatus(context.Background(), 7, publicID, "cancelled")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.Status != model.StatusCancelled {
			t.Errorf("expected cancelled, got %s", order.Status)
		}
	})
}

func TestTimeline(t *testing.T) {
	publicID := uuid.New()
	repo := &testhelpers.OrderRepositoryStub{
		GetFn: func(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
			return &model.Order{ID: 1, PublicID: id, UserID: userID, Status: model.StatusShipped}, nil
		},
	}
	uc := usecase.NewOrderUseCase(repo)

	_, projection, err := uc.Timeline(context.Background(), 7, publicID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if projection.Cancelled {
		t.Error("shipped order must not project as cancelled")
	}
	if projection.Current != model.MilestoneShipped {
		t.Errorf("expected shipped milestone, got %d", projection.Current)
	}
}
