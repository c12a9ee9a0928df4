// Package seed fills an empty catalog with the sample categories and products.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/internal/category"
	catdto "github.com/vinestrading/catalog-service/internal/category/dto"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/product"
	productdto "github.com/vinestrading/catalog-service/internal/product/dto"
)

type Result struct {
	CategoriesAdded int
	ProductsAdded   int
	ProductsSkipped int
}

type Seeder struct {
	categories category.UseCase
	products   product.UseCase
	logger     logger.ZapLogger
}

func NewSeeder(categories category.UseCase, products product.UseCase, log logger.ZapLogger) *Seeder {
	return &Seeder{
		categories: categories,
		products:   products,
		logger:     log,
	}
}

// Run adds every missing category by slug, then the sample products if the
// catalog has none. Running it twice changes nothing.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	existing, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	bySlug := make(map[string]int64, len(existing))
	for _, c := range existing {
		bySlug[c.Slug] = c.ID
	}

	for _, c := range Categories {
		if _, ok := bySlug[c.Slug]; ok {
			s.logger.Debug("Category exists", zap.String("slug", c.Slug))
			continue
		}
		created, err := s.categories.CreateCategory(ctx, &catdto.CreateCategoryInput{
			NameEN: c.NameEN,
			NameAR: c.NameAR,
			Slug:   c.Slug,
		})
		if err != nil {
			return nil, fmt.Errorf("create category %s: %w", c.Slug, err)
		}
		bySlug[c.Slug] = created.ID
		res.CategoriesAdded++
		s.logger.Info("Adding category", zap.String("slug", c.Slug))
	}

	current, err := s.products.ListProducts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(current) > 0 {
		s.logger.Info("Products present, skipping sample products", zap.Int("count", len(current)))
		return res, nil
	}

	for _, p := range Products {
		categoryID, ok := bySlug[p.CategorySlug]
		if !ok {
			res.ProductsSkipped++
			s.logger.Warn("Skipping product of unknown category",
				zap.String("code", p.Code), zap.String("category", p.CategorySlug))
			continue
		}
		_, err := s.products.CreateProduct(ctx, &productdto.CreateProductInput{
			CategoryID:    categoryID,
			NameEN:        p.NameEN,
			NameAR:        p.NameAR,
			Code:          p.Code,
			Weight:        p.Weight,
			DescriptionEN: p.DescriptionEN,
			DescriptionAR: p.DescriptionAR,
		})
		if err != nil {
			return nil, fmt.Errorf("create product %s: %w", p.Code, err)
		}
		res.ProductsAdded++
	}

	s.logger.Info("Seeding complete",
		zap.Int("categories_added", res.CategoriesAdded),
		zap.Int("products_added", res.ProductsAdded))
	return res, nil
}
