package admin

import (
	"context"

	"github.com/vinestrading/catalog-service/internal/model"
)

// Repository finders return nil, nil when no row matches.
type Repository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id int64) (*model.Admin, error)
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
	FindAll(ctx context.Context) ([]model.Admin, error)
	Count(ctx context.Context) (int, error)
	UpdatePassword(ctx context.Context, id int64, hash string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
