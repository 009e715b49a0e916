package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
)

// GoTrueProvider asks the Supabase auth server for the token's user, the
// same call supabase.auth.getUser() makes.
type GoTrueProvider struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewGoTrueProvider(baseURL, anonKey string, timeout time.Duration) *GoTrueProvider {
	return &GoTrueProvider{
		baseURL: baseURL,
		anonKey: anonKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type goTrueUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
	AppMetadata      struct {
		Provider string `json:"provider"`
	} `json:"app_metadata"`
	UserMetadata struct {
		FullName  string `json:"full_name"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
}

func (p *GoTrueProvider) Principal(ctx context.Context, token string) (*model.Principal, error) {
	if token == "" {
		return nil, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("GoTrueProvider.Principal request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", p.anonKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GoTrueProvider.Principal: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, nil
	default:
		return nil, fmt.Errorf("GoTrueProvider.Principal: unexpected status %d", resp.StatusCode)
	}

	var u goTrueUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("GoTrueProvider.Principal decode: %w", err)
	}
	if u.ID == "" || u.Email == "" {
		return nil, nil
	}

	name := u.UserMetadata.FullName
	if name == "" {
		name = u.UserMetadata.Name
	}
	return &model.Principal{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   name,
		AvatarURL:     u.UserMetadata.AvatarURL,
		Provider:      u.AppMetadata.Provider,
		EmailVerified: u.EmailConfirmedAt != nil,
	}, nil
}
