package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SamriddhiRoy/user-dashboard/internal/common"
	"github.com/SamriddhiRoy/user-dashboard/internal/common/clock"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/repository"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdentityProvider resolves a session token to the principal the external
// auth provider asserts for it. A nil principal means "no session".
type IdentityProvider interface {
	Principal(ctx context.Context, token string) (*model.Principal, error)
}

type AuthService struct {
	provider IdentityProvider
	userRepo repository.UserRepository
	clock    clock.Clock
}

func NewAuthService(provider IdentityProvider, userRepo repository.UserRepository, clk clock.Clock) *AuthService {
	return &AuthService{provider: provider, userRepo: userRepo, clock: clk}
}

// ResolveCurrentUser maps a session token to the local user, provisioning
// the row on first sight. Every failure is logged and reads as "no user".
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) *model.User {
	user, err := s.resolve(ctx, token)
	if err != nil {
		logger.Error("resolving current user", zap.Error(err))
		return nil
	}
	return user
}

func (s *AuthService) resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}
	principal, err := s.provider.Principal(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("identity lookup: %w", err)
	}
	if principal == nil || principal.Email == "" {
		return nil, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, principal.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("finding user by email: %w", err)
	}

	user, created, err := s.userRepo.CreateIfAbsent(ctx, newUserFromPrincipal(principal, s.clock))
	if err != nil {
		return nil, fmt.Errorf("provisioning user: %w", err)
	}
	if created {
		logger.Info("provisioned user", zap.String("user_id", user.ID), zap.String("provider", principal.Provider))
	}
	return user, nil
}

func newUserFromPrincipal(p *model.Principal, clk clock.Clock) *model.User {
	now := clk.Now()
	name := p.DisplayName
	if name == "" {
		name = strings.SplitN(p.Email, "@", 2)[0]
	}
	user := &model.User{
		ID:            uuid.NewString(),
		Email:         p.Email,
		Name:          &name,
		Role:          model.RoleNormal,
		EmailVerified: p.EmailVerified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.AvatarURL != "" {
		avatar := p.AvatarURL
		user.AvatarURL = &avatar
	}
	if p.Provider == model.ProviderGoogle && p.ID != "" {
		googleID := p.ID
		user.GoogleID = &googleID
	}
	return user
}

// HasSession reports whether the provider accepts token. It never touches
// the user table.
func (s *AuthService) HasSession(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	principal, err := s.provider.Principal(ctx, token)
	if err != nil {
		logger.Warn("session check failed", zap.Error(err))
		return false
	}
	return principal != nil
}

// EnsureUser is the "any authenticated user" guard over an already resolved user.
func EnsureUser(user *model.User) (*model.User, error) {
	if user == nil {
		return nil, common.NewError(common.ErrUnauthorized, "Not authenticated")
	}
	return user, nil
}

// EnsureSuperuser is the superuser guard over an already resolved user.
func EnsureSuperuser(user *model.User) (*model.User, error) {
	user, err := EnsureUser(user)
	if err != nil {
		return nil, err
	}
	if !user.IsSuperuser() {
		return nil, common.NewError(common.ErrForbidden, "Superuser access required")
	}
	return user, nil
}
