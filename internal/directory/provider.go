package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mohamim360/kanban-api/pkg/config"
	"golang.org/x/oauth2"
)

// RemoteUser is one entry from the identity provider's directory.
type RemoteUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName derives a human-readable name from the profile fields,
// matching the derivation used for credential claims.
func (u RemoteUser) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return "User"
	}
	return name
}

// Provider exposes the identity provider's authoritative user directory.
// Reachable over the network; may fail or time out.
type Provider interface {
	ListUsers(ctx context.Context) ([]RemoteUser, error)
}

// HTTPProvider talks to the provider's REST directory API, authenticating
// with a static bearer secret.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// Compile-time interface satisfaction check
var _ Provider = (*HTTPProvider)(nil)

func NewHTTPProvider(cfg *config.ProviderConfig) *HTTPProvider {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.SecretKey})
	client := oauth2.NewClient(context.Background(), src)

	// Bound every directory call; the caller has a defined local fallback.
	client.Timeout = cfg.Timeout()

	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}
}

func (p *HTTPProvider) ListUsers(ctx context.Context) ([]RemoteUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/users", nil)
	if err != nil {
		return nil, fmt.Errorf("building provider request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing provider users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var users []RemoteUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decoding provider response: %w", err)
	}

	return users, nil
}
