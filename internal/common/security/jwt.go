package security

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenAudience is the audience Supabase puts on user access tokens.
const TokenAudience = "authenticated"

var TokenAuth *jwtauth.JWTAuth

func InitJWT(secret []byte) {
	TokenAuth = NewTokenAuth(secret)
}

// NewTokenAuth builds an HS256 signer/verifier for the project's JWT secret.
func NewTokenAuth(secret []byte) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", secret, nil)
}

// TokenFromRequest reads the access token from the session cookie, falling
// back to an "Authorization: Bearer" header.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return jwtauth.TokenFromHeader(r)
}

// SessionClaims describes the user a minted token speaks for.
type SessionClaims struct {
	UserID        string
	Email         string
	FullName      string
	AvatarURL     string
	Provider      string
	EmailVerified bool
}

// GenerateToken signs a token shaped like a Supabase access token.
func GenerateToken(auth *jwtauth.JWTAuth, c SessionClaims, ttl time.Duration) (string, error) {
	if auth == nil {
		return "", errors.New("token auth is not initialised")
	}
	provider := c.Provider
	if provider == "" {
		provider = "email"
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   c.UserID,
		"email": c.Email,
		"aud":   TokenAudience,
		"role":  TokenAudience,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		"app_metadata": map[string]interface{}{
			"provider": provider,
		},
		"user_metadata": map[string]interface{}{
			"full_name":      c.FullName,
			"avatar_url":     c.AvatarURL,
			"email_verified": c.EmailVerified,
		},
	}
	_, tokenString, err := auth.Encode(claims)
	return tokenString, err
}

func GetSubjectFromClaims(claims jwt.MapClaims) (string, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return sub, nil
}

func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

// MetadataString returns claims[section][key] when it is a string.
func MetadataString(claims jwt.MapClaims, section, key string) string {
	meta, ok := claims[section].(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := meta[key].(string)
	return s
}

// MetadataBool returns claims[section][key] when it is a bool.
func MetadataBool(claims jwt.MapClaims, section, key string) bool {
	meta, ok := claims[section].(map[string]interface{})
	if !ok {
		return false
	}
	b, _ := meta[key].(bool)
	return b
}
