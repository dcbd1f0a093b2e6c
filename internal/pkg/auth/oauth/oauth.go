/*
Package oauth implements the OAuth2 login flow against the supported external
identity providers.

Each provider adapter owns the mapping from its raw profile payload to the
application's identity.External value, so the rest of the server never looks
at provider-specific attribute maps.
*/
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"learnly/internal/app/identity"
)

// maxProfileBody bounds the userinfo response size read from a provider.
const maxProfileBody = 1 << 20

// Profile is the normalized result of a completed login: the external identity
// plus the profile attributes used to seed a new User record.
type Profile struct {
	Identity identity.External
	Email    string
	Name     string
	Picture  string
}

// Provider is one configured external identity provider.
type Provider interface {
	// Name returns the provider's URL-safe name ("google", "github").
	Name() identity.Provider

	// LoginURL returns the authorization URL carrying the given state token.
	LoginURL(state string) string

	// Exchange trades the authorization code for the caller's Profile.
	Exchange(ctx context.Context, code string) (*Profile, error)
}

// Config holds the client credentials for one provider registration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// fetchJSON performs an authenticated GET with the provider's token-bearing
// client and decodes the JSON response into dst.
func fetchJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("profile request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("profile request returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxProfileBody))
	if err != nil {
		return fmt.Errorf("failed to read profile response: %w", err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to decode profile response: %w", err)
	}

	return nil
}

// exchangeClient trades the code for a token and returns an HTTP client that
// attaches it to outgoing requests.
func exchangeClient(ctx context.Context, cfg *oauth2.Config, code string) (*http.Client, error) {
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("authorization code exchange failed: %w", err)
	}

	return cfg.Client(ctx, token), nil
}
