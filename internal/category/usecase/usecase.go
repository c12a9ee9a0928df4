package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/internal/category"
	"github.com/vinestrading/catalog-service/internal/category/dto"
	"github.com/vinestrading/catalog-service/internal/database"
	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/model"
	"github.com/vinestrading/catalog-service/internal/validation"
)

type categoryUseCase struct {
	repo   category.Repository
	images category.ImageStore
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, images category.ImageStore, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		images: images,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	input.NameEN = strings.TrimSpace(input.NameEN)
	input.NameAR = strings.TrimSpace(input.NameAR)
	input.Slug = strings.TrimSpace(input.Slug)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	cat := &model.Category{
		BaseModel: model.BaseModel{CreatedAt: database.Now()},
		NameEN:    input.NameEN,
		NameAR:    input.NameAR,
		Slug:      input.Slug,
	}

	var saved string
	err := uc.repo.Transact(ctx, func(repo category.Repository) error {
		taken, err := repo.SlugTaken(ctx, cat.Slug, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("slug", code.MsgSlugExists)
		}
		if err := repo.Create(ctx, cat); err != nil {
			return mapWriteError(err)
		}

		if input.Image == nil {
			return nil
		}
		ref, err := uc.images.Save(cat.Slug, input.Image)
		if err != nil {
			return err
		}
		saved = ref
		cat.Image = &ref
		_, err = repo.Update(ctx, cat)
		return err
	})
	if err != nil {
		uc.discard(saved, "")
		return nil, err
	}

	uc.logger.Info("category created", zap.Int64("category_id", cat.ID), zap.String("slug", cat.Slug))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound(code.MsgCategoryNotFound)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	input.NameEN = strings.TrimSpace(input.NameEN)
	input.NameAR = strings.TrimSpace(input.NameAR)
	input.Slug = strings.TrimSpace(input.Slug)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var (
		cat      *model.Category
		previous string
		saved    string
	)
	err := uc.repo.Transact(ctx, func(repo category.Repository) error {
		var err error
		cat, err = repo.FindByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperr.NotFound(code.MsgCategoryNotFound)
		}
		if cat.Image != nil {
			previous = *cat.Image
		}

		if input.Slug != cat.Slug {
			taken, err := repo.SlugTaken(ctx, input.Slug, cat.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict("slug", code.MsgSlugExists)
			}
		}

		cat.NameEN = input.NameEN
		cat.NameAR = input.NameAR
		cat.Slug = input.Slug

		if input.Image != nil {
			ref, err := uc.images.Save(cat.Slug, input.Image)
			if err != nil {
				return err
			}
			saved = ref
			cat.Image = &ref
		}

		updated, err := repo.Update(ctx, cat)
		if err != nil {
			return mapWriteError(err)
		}
		if !updated {
			return apperr.NotFound(code.MsgCategoryNotFound)
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
	uc.logger.Info("category updated", zap.Int64("category_id", cat.ID), zap.String("slug", cat.Slug))
	return cat, nil
}

// DeleteCategory removes the category together with its products. Image
// files are removed once the rows are gone.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	var (
		images   []string
		products int64
	)
	err := uc.repo.Transact(ctx, func(repo category.Repository) error {
		cat, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperr.NotFound(code.MsgCategoryNotFound)
		}

		images, err = repo.ProductImages(ctx, id)
		if err != nil {
			return err
		}
		if products, err = repo.DeleteProducts(ctx, id); err != nil {
			return err
		}

		deleted, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound(code.MsgCategoryNotFound)
		}
		if cat.Image != nil {
			images = append(images, *cat.Image)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, ref := range images {
		uc.discard(ref, "")
	}
	uc.logger.Info("category deleted", zap.Int64("category_id", id), zap.Int64("products", products))
	return nil
}

// discard removes an image file unless it is still referenced as keep.
// Failures are logged only.
func (uc *categoryUseCase) discard(ref, keep string) {
	if ref == "" || ref == keep {
		return
	}
	if err := uc.images.Remove(ref); err != nil {
		uc.logger.Warn("failed to remove image", zap.String("image", ref), zap.Error(err))
	}
}

func mapWriteError(err error) error {
	if database.IsUniqueViolation(err) {
		return apperr.Conflict("slug", code.MsgSlugExists)
	}
	return err
}
