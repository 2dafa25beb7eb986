package repository

import (
	"context"

	"github.com/hypnotizedent/printshop-os-sub005/internal/domain/model"
)

// UserRepository describes persistence operations with portal accounts.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
