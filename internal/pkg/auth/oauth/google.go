package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"learnly/internal/app/identity"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// googleProvider implements Provider against Google's OAuth2 endpoints.
// Google identifies accounts by the OIDC "sub" claim.
type googleProvider struct {
	cfg *oauth2.Config

	// userInfoURL is overridable in tests.
	userInfoURL string
}

// NewGoogle creates the Google provider adapter.
func NewGoogle(cfg Config) Provider {
	return &googleProvider{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (p *googleProvider) Name() identity.Provider {
	return identity.ProviderGoogle
}

func (p *googleProvider) LoginURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

// googleUserInfo mirrors the fields of Google's userinfo response.
type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	client, err := exchangeClient(ctx, p.cfg, code)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := fetchJSON(ctx, client, p.userInfoURL, &info); err != nil {
		return nil, err
	}

	if info.Sub == "" {
		return nil, fmt.Errorf("google profile is missing the sub claim")
	}

	return &Profile{
		Identity: identity.External{
			Provider:  identity.ProviderGoogle,
			SubjectID: info.Sub,
		},
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
