package product

import (
	"context"

	"github.com/vinestrading/catalog-service/internal/model"
	"github.com/vinestrading/catalog-service/internal/product/dto"
	"github.com/vinestrading/catalog-service/internal/upload"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	// ListProducts returns products in insertion order with their category attached.
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type ImageStore interface {
	Save(owner string, img *upload.Image) (string, error)
	Remove(ref string) error
}
