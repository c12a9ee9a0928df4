package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/internal/admin"
	"github.com/vinestrading/catalog-service/internal/admin/dto"
	"github.com/vinestrading/catalog-service/internal/database"
	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/model"
	"github.com/vinestrading/catalog-service/internal/validation"
)

type adminUseCase struct {
	repo   admin.Repository
	hasher admin.PasswordHasher
	logger logger.ZapLogger
}

func NewAdminUseCase(repo admin.Repository, hasher admin.PasswordHasher, log logger.ZapLogger) admin.UseCase {
	return &adminUseCase{
		repo:   repo,
		hasher: hasher,
		logger: log,
	}
}

func (uc *adminUseCase) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *adminUseCase) GetAdmin(ctx context.Context, id int64) (*model.Admin, error) {
	a, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound(code.MsgAdminNotFound)
	}
	return a, nil
}

func (uc *adminUseCase) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	return uc.repo.FindByUsername(ctx, username)
}

func (uc *adminUseCase) CreateAdmin(ctx context.Context, input *dto.CreateAdminInput) (*model.Admin, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Role == "" {
		input.Role = string(model.RoleAdmin)
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("username", code.MsgUsernameExists)
	}

	hash, err := uc.hasher.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	a := &model.Admin{
		BaseModel:    model.BaseModel{CreatedAt: database.Now()},
		Username:     input.Username,
		PasswordHash: hash,
		Role:         model.Role(input.Role),
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		// Lost a race against a concurrent create of the same username.
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("username", code.MsgUsernameExists)
		}
		return nil, err
	}

	uc.logger.Info("admin created", zap.String("username", a.Username), zap.String("role", string(a.Role)))
	return a, nil
}

func (uc *adminUseCase) DeleteAdmin(ctx context.Context, id int64, actor *model.Admin) error {
	if actor != nil && actor.ID == id {
		return apperr.ErrSelfDelete
	}

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound(code.MsgAdminNotFound)
	}

	uc.logger.Info("admin deleted", zap.Int64("admin_id", id))
	return nil
}

func (uc *adminUseCase) ChangePassword(ctx context.Context, input *dto.ChangePasswordInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	a, err := uc.GetAdmin(ctx, input.AdminID)
	if err != nil {
		return err
	}
	if !uc.hasher.VerifyPassword(input.CurrentPassword, a.PasswordHash) {
		return apperr.Invalid("current_password", code.MsgWrongPassword, nil)
	}

	hash, err := uc.hasher.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	updated, err := uc.repo.UpdatePassword(ctx, a.ID, hash)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound(code.MsgAdminNotFound)
	}

	uc.logger.Info("admin password changed", zap.String("username", a.Username))
	return nil
}

func (uc *adminUseCase) Count(ctx context.Context) (int, error) {
	return uc.repo.Count(ctx)
}
