package admin

import (
	"context"

	"github.com/vinestrading/catalog-service/internal/admin/dto"
	"github.com/vinestrading/catalog-service/internal/model"
)

type UseCase interface {
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	GetAdmin(ctx context.Context, id int64) (*model.Admin, error)
	// FindByUsername returns nil, nil for an unknown username.
	FindByUsername(ctx context.Context, username string) (*model.Admin, error)
	CreateAdmin(ctx context.Context, input *dto.CreateAdminInput) (*model.Admin, error)
	DeleteAdmin(ctx context.Context, id int64, actor *model.Admin) error
	ChangePassword(ctx context.Context, input *dto.ChangePasswordInput) error
	Count(ctx context.Context) (int, error)
}

// PasswordHasher hashes and checks admin passwords.
type PasswordHasher interface {
	HashPassword(plaintext string) (string, error)
	VerifyPassword(plaintext, hash string) bool
}
