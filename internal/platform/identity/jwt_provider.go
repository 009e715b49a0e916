// Package identity asks the external auth provider who a session token
// belongs to. Providers return a nil principal, not an error, for tokens
// that are missing, expired or forged.
package identity

import (
	"context"
	"fmt"

	"github.com/SamriddhiRoy/user-dashboard/internal/common/security"
	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/logger"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JWTProvider verifies Supabase access tokens locally with the project secret.
type JWTProvider struct {
	auth *jwtauth.JWTAuth
}

func NewJWTProvider(auth *jwtauth.JWTAuth) *JWTProvider {
	return &JWTProvider{auth: auth}
}

func (p *JWTProvider) Principal(ctx context.Context, token string) (*model.Principal, error) {
	if token == "" {
		return nil, nil
	}
	verified, err := jwtauth.VerifyToken(p.auth, token)
	if err != nil {
		logger.Debug("rejected session token", zap.Error(err))
		return nil, nil
	}
	raw, err := verified.AsMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("JWTProvider.Principal claims: %w", err)
	}
	return principalFromClaims(jwt.MapClaims(raw)), nil
}

func principalFromClaims(claims jwt.MapClaims) *model.Principal {
	sub, err := security.GetSubjectFromClaims(claims)
	if err != nil {
		return nil
	}
	email, err := security.GetEmailFromClaims(claims)
	if err != nil {
		return nil
	}

	name := security.MetadataString(claims, "user_metadata", "full_name")
	if name == "" {
		name = security.MetadataString(claims, "user_metadata", "name")
	}
	return &model.Principal{
		ID:            sub,
		Email:         email,
		DisplayName:   name,
		AvatarURL:     security.MetadataString(claims, "user_metadata", "avatar_url"),
		Provider:      security.MetadataString(claims, "app_metadata", "provider"),
		EmailVerified: security.MetadataBool(claims, "user_metadata", "email_verified"),
	}
}
