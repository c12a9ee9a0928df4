// Package auth resolves session cookies and bearer tokens to admin identities
// and guards the admin routes.
package auth

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/vinestrading/catalog-service/internal/admin"
	"github.com/vinestrading/catalog-service/internal/admin/dto"
	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/logger"
	"github.com/vinestrading/catalog-service/internal/model"
)

// DefaultBootstrapPassword is the well-known password of a fresh install.
const DefaultBootstrapPassword = "DesignMaster2025"

type BootstrapCredentials struct {
	Username string
	Password string
}

type Service struct {
	admins    admin.UseCase
	hasher    admin.PasswordHasher
	tokens    *TokenIssuer
	bootstrap BootstrapCredentials
	logger    logger.ZapLogger

	dummyOnce sync.Once
	dummyHash string
}

func NewService(admins admin.UseCase, hasher admin.PasswordHasher, tokens *TokenIssuer, bootstrap BootstrapCredentials, log logger.ZapLogger) *Service {
	return &Service{
		admins:    admins,
		hasher:    hasher,
		tokens:    tokens,
		bootstrap: bootstrap,
		logger:    log,
	}
}

func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// IssueToken signs a session token for a.
func (s *Service) IssueToken(a *model.Admin) (string, error) {
	return s.tokens.Issue(a.Username, a.Role)
}

// ResolveToken maps a cookie or Authorization header value onto the admin it
// was issued for. Any failure yields false.
func (s *Service) ResolveToken(ctx context.Context, raw string) (*model.Admin, bool) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		s.logger.Debug("rejected token", zap.Error(err))
		return nil, false
	}

	a, err := s.admins.FindByUsername(ctx, claims.Subject)
	if err != nil {
		s.logger.Error("failed to look up token subject", zap.String("username", claims.Subject), zap.Error(err))
		return nil, false
	}
	if a == nil {
		return nil, false
	}
	return a, true
}

// Authenticate checks username and password. Unknown users still pay for a
// bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.Admin, bool) {
	a, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to look up admin", zap.String("username", username), zap.Error(err))
		return nil, false
	}
	if a == nil {
		s.hasher.VerifyPassword(password, s.dummy())
		return nil, false
	}
	if !s.hasher.VerifyPassword(password, a.PasswordHash) {
		return nil, false
	}
	return a, true
}

// BootstrapSuperAdmin creates the configured super admin when no admin
// exists yet. It reports whether an account was created.
func (s *Service) BootstrapSuperAdmin(ctx context.Context) (bool, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	a, err := s.admins.CreateAdmin(ctx, &dto.CreateAdminInput{
		Username: s.bootstrap.Username,
		Password: s.bootstrap.Password,
		Role:     string(model.RoleSuperAdmin),
	})
	if err != nil {
		// Another instance bootstrapped concurrently.
		if errors.Is(err, apperr.ErrConflict) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info("bootstrapped super admin", zap.String("username", a.Username))
	if s.bootstrap.Password == DefaultBootstrapPassword {
		s.logger.Warn("super admin uses the default password, change it from /admin/password",
			zap.String("username", a.Username))
	}
	return true, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.HashPassword("not-a-real-password")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
