package product

import (
	"context"

	"github.com/vinestrading/catalog-service/internal/model"
	"github.com/vinestrading/catalog-service/internal/product/dto"
)

// Repository finders return nil, nil when no row matches.
type Repository interface {
	Transact(ctx context.Context, fn func(repo Repository) error) error

	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	CodeTaken(ctx context.Context, code string, excludeID int64) (bool, error)
	Update(ctx context.Context, product *model.Product) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
