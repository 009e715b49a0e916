package security

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateTokenVerifies(t *testing.T) {
	auth := NewTokenAuth([]byte("test-secret"))
	token, err := GenerateToken(auth, SessionClaims{
		UserID:        "0b6f0a1e-6c5d-4a1f-9f3e-3f5c2a9d7e11",
		Email:         "ada@example.com",
		FullName:      "Ada Lovelace",
		Provider:      "google",
		EmailVerified: true,
	}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parsed, err := jwtauth.VerifyToken(auth, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	raw, err := parsed.AsMap(context.Background())
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}
	claims := jwt.MapClaims(raw)

	if sub, err := GetSubjectFromClaims(claims); err != nil || sub != "0b6f0a1e-6c5d-4a1f-9f3e-3f5c2a9d7e11" {
		t.Errorf("subject = %q, %v", sub, err)
	}
	if email, err := GetEmailFromClaims(claims); err != nil || email != "ada@example.com" {
		t.Errorf("email = %q, %v", email, err)
	}
	if got := MetadataString(claims, "user_metadata", "full_name"); got != "Ada Lovelace" {
		t.Errorf("full_name = %q", got)
	}
	if got := MetadataString(claims, "app_metadata", "provider"); got != "google" {
		t.Errorf("provider = %q", got)
	}
	if !MetadataBool(claims, "user_metadata", "email_verified") {
		t.Error("email_verified = false")
	}
}

func TestGenerateTokenRejectedWithOtherSecret(t *testing.T) {
	token, err := GenerateToken(NewTokenAuth([]byte("one")), SessionClaims{UserID: "u", Email: "u@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := jwtauth.VerifyToken(NewTokenAuth([]byte("two")), token); err == nil {
		t.Error("token signed with another secret verified")
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"cookie", "from-cookie", "", "from-cookie"},
		{"cookie wins over header", "from-cookie", "Bearer from-header", "from-cookie"},
		{"bearer header", "", "Bearer from-header", "from-header"},
		{"nothing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/auth/me", nil)
			if tt.cookie != "" {
				r.Header.Add("Cookie", "sb-access-token="+tt.cookie)
			}
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := TokenFromRequest(r, "sb-access-token"); got != tt.want {
				t.Errorf("TokenFromRequest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetadataHelpersTolerateMissingSections(t *testing.T) {
	claims := jwt.MapClaims{"user_metadata": "not a map"}
	if got := MetadataString(claims, "user_metadata", "full_name"); got != "" {
		t.Errorf("MetadataString = %q, want empty", got)
	}
	if MetadataBool(claims, "app_metadata", "x") {
		t.Error("MetadataBool = true, want false")
	}
	if _, err := GetSubjectFromClaims(claims); err == nil {
		t.Error("GetSubjectFromClaims on empty claims returned nil error")
	}
}
