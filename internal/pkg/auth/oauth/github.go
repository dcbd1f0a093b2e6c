package oauth

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"learnly/internal/app/identity"
)

const githubUserURL = "https://api.github.com/user"

// githubProvider implements Provider against GitHub's OAuth2 endpoints.
// GitHub identifies accounts by the numeric "id" field, not an OIDC subject.
type githubProvider struct {
	cfg *oauth2.Config

	userURL string
}

// NewGitHub creates the GitHub provider adapter.
func NewGitHub(cfg Config) Provider {
	return &githubProvider{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		userURL: githubUserURL,
	}
}

func (p *githubProvider) Name() identity.Provider {
	return identity.ProviderGitHub
}

func (p *githubProvider) LoginURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

// githubUser mirrors the fields of GitHub's /user response.
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

func (p *githubProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	client, err := exchangeClient(ctx, p.cfg, code)
	if err != nil {
		return nil, err
	}

	var user githubUser
	if err := fetchJSON(ctx, client, p.userURL, &user); err != nil {
		return nil, err
	}

	if user.ID == 0 {
		return nil, fmt.Errorf("github profile is missing the account id")
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return &Profile{
		Identity: identity.External{
			Provider:  identity.ProviderGitHub,
			SubjectID: strconv.FormatInt(user.ID, 10),
		},
		Email:   user.Email,
		Name:    name,
		Picture: user.AvatarURL,
	}, nil
}
