package testutil

import (
	"context"
	"sync"

	"github.com/SamriddhiRoy/user-dashboard/internal/domain/model"
)

// StaticProvider maps session tokens to principals.
type StaticProvider struct {
	mu     sync.Mutex
	tokens map[string]model.Principal
	calls  int

	// Err, when set, is returned for every non-empty token.
	Err error
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{tokens: make(map[string]model.Principal)}
}

func (p *StaticProvider) Add(token string, principal model.Principal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[token] = principal
}

// Calls reports how many lookups reached the provider.
func (p *StaticProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *StaticProvider) Principal(ctx context.Context, token string) (*model.Principal, error) {
	if token == "" {
		return nil, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.Err != nil {
		return nil, p.Err
	}
	principal, ok := p.tokens[token]
	if !ok {
		return nil, nil
	}
	return &principal, nil
}
