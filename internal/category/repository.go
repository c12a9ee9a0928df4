package category

import (
	"context"

	"github.com/vinestrading/catalog-service/internal/model"
)

// Repository finders return nil, nil when no row matches. Update and Delete
// report whether a row was affected.
type Repository interface {
	// Transact runs fn against a repository bound to a single transaction.
	Transact(ctx context.Context, fn func(repo Repository) error) error

	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
	Update(ctx context.Context, category *model.Category) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// ProductImages lists the image references of the category's products.
	ProductImages(ctx context.Context, categoryID int64) ([]string, error)
	DeleteProducts(ctx context.Context, categoryID int64) (int64, error)
}
