package category

import (
	"context"

	"github.com/vinestrading/catalog-service/internal/category/dto"
	"github.com/vinestrading/catalog-service/internal/model"
	"github.com/vinestrading/catalog-service/internal/upload"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type ImageStore interface {
	Save(owner string, img *upload.Image) (string, error)
	Remove(ref string) error
}
