package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/internal/category"
	"github.com/vinestrading/catalog-service/internal/database"
	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/model"
	"github.com/vinestrading/catalog-service/internal/product"
	"github.com/vinestrading/catalog-service/internal/product/dto"
	"github.com/vinestrading/catalog-service/internal/validation"
)

type productUseCase struct {
	repo       product.Repository
	categories category.Repository
	images     product.ImageStore
	logger     logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, categories category.Repository, images product.ImageStore, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:       repo,
		categories: categories,
		images:     images,
		logger:     log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	p := &model.Product{
		BaseModel:     model.BaseModel{CreatedAt: database.Now()},
		CategoryID:    input.CategoryID,
		NameEN:        strings.TrimSpace(input.NameEN),
		NameAR:        strings.TrimSpace(input.NameAR),
		Code:          strings.TrimSpace(input.Code),
		Weight:        strings.TrimSpace(input.Weight),
		DescriptionEN: optional(input.DescriptionEN),
		DescriptionAR: optional(input.DescriptionAR),
	}
	input.NameEN, input.NameAR, input.Code, input.Weight = p.NameEN, p.NameAR, p.Code, p.Weight
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := uc.ensureCategory(ctx, p.CategoryID); err != nil {
		return nil, err
	}

	// Row first, then the file, then commit: a failed write rolls the row
	// back and a failed commit removes the file.
	var saved string
	err := uc.repo.Transact(ctx, func(repo product.Repository) error {
		taken, err := repo.CodeTaken(ctx, p.Code, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("code", code.MsgCodeExists)
		}
		if err := repo.Create(ctx, p); err != nil {
			return mapWriteError(err)
		}

		if input.Image == nil {
			return nil
		}
		ref, err := uc.images.Save(p.Code, input.Image)
		if err != nil {
			return err
		}
		saved = ref
		p.Image = &ref
		_, err = repo.Update(ctx, p)
		return err
	})
	if err != nil {
		uc.discard(saved, "")
		return nil, err
	}

	uc.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("code", p.Code))
	return uc.withCategory(ctx, p)
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound(code.MsgProductNotFound)
	}
	return uc.withCategory(ctx, p)
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}
	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	cats, err := uc.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Category, len(cats))
	for i := range cats {
		byID[cats[i].ID] = &cats[i]
	}
	for i := range products {
		products[i].Category = byID[products[i].CategoryID]
	}
	return products, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	input.NameEN = strings.TrimSpace(input.NameEN)
	input.NameAR = strings.TrimSpace(input.NameAR)
	input.Code = strings.TrimSpace(input.Code)
	input.Weight = strings.TrimSpace(input.Weight)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var (
		p        *model.Product
		previous string
		saved    string
	)
	err := uc.repo.Transact(ctx, func(repo product.Repository) error {
		var err error
		p, err = repo.FindByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound(code.MsgProductNotFound)
		}
		if p.Image != nil {
			previous = *p.Image
		}

		if input.CategoryID != p.CategoryID {
			if err := uc.ensureCategory(ctx, input.CategoryID); err != nil {
				return err
			}
		}
		if input.Code != p.Code {
			taken, err := repo.CodeTaken(ctx, input.Code, p.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict("code", code.MsgCodeExists)
			}
		}

		p.CategoryID = input.CategoryID
		p.NameEN = input.NameEN
		p.NameAR = input.NameAR
		p.Code = input.Code
		p.Weight = input.Weight
		p.DescriptionEN = optional(input.DescriptionEN)
		p.DescriptionAR = optional(input.DescriptionAR)

		if input.Image != nil {
			ref, err := uc.images.Save(p.Code, input.Image)
			if err != nil {
				return err
			}
			saved = ref
			p.Image = &ref
		}

		updated, err := repo.Update(ctx, p)
		if err != nil {
			return mapWriteError(err)
		}
		if !updated {
			return apperr.NotFound(code.MsgProductNotFound)
		}
		return nil
	})
	if err != nil {
		uc.discard(saved, previous)
		return nil, err
	}

	if saved != "" && previous != "" && previous != saved {
		uc.discard(previous, "")
	}
	uc.logger.Info("product updated", zap.Int64("product_id", p.ID), zap.String("code", p.Code))
	return uc.withCategory(ctx, p)
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	var image string
	err := uc.repo.Transact(ctx, func(repo product.Repository) error {
		p, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound(code.MsgProductNotFound)
		}
		if p.Image != nil {
			image = *p.Image
		}

		deleted, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound(code.MsgProductNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.discard(image, "")
	uc.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

func (uc *productUseCase) ensureCategory(ctx context.Context, id int64) error {
	cat, err := uc.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperr.Invalidf("category_id", code.MsgUnknownCategory, "category %d does not exist", id)
	}
	return nil
}

func (uc *productUseCase) withCategory(ctx context.Context, p *model.Product) (*model.Product, error) {
	cat, err := uc.categories.FindByID(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	p.Category = cat
	return p, nil
}

func (uc *productUseCase) discard(ref, keep string) {
	if ref == "" || ref == keep {
		return
	}
	if err := uc.images.Remove(ref); err != nil {
		uc.logger.Warn("failed to remove image", zap.String("image", ref), zap.Error(err))
	}
}

func mapWriteError(err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return apperr.Conflict("code", code.MsgCodeExists)
	case database.IsForeignKeyViolation(err):
		return apperr.Invalid("category_id", code.MsgUnknownCategory, err)
	default:
		return err
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
