/*
Package handler provides the HTTP handlers and routing setup for the Learnly
server.

This file implements the OAuth2 login flow: the login redirect that sends the
browser to the external provider, and the callback that exchanges the
authorization code, provisions the user record on first login, and issues the
session JWT.
*/
package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"learnly/internal/app/identity"
	"learnly/internal/pkg/auth/jwt"
	"learnly/internal/pkg/auth/oauth"
	"learnly/internal/pkg/errs"
	"learnly/internal/pkg/logx"
	"learnly/internal/pkg/randx"
	"learnly/internal/pkg/resp"
)

const (
	// stateCookieName stores the OAuth2 state token between the login redirect
	// and the provider callback.
	stateCookieName = "oauth_state"

	// stateCookieMaxAge bounds how long a login attempt stays valid.
	stateCookieMaxAge = 600
)

// HandleOAuthLogin starts the login flow: it generates a state token, stores
// it in a short-lived cookie, and redirects the browser to the provider's
// authorization page.
func HandleOAuthLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, customErr := resolveProvider(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		state, err := randx.StateToken()
		if err != nil {
			logx.Error(err, "Failed to generate OAuth state token")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    state,
			Path:     "/",
			MaxAge:   stateCookieMaxAge,
			HttpOnly: true,
			Secure:   !deps.Config.IsDevelopment(),
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, provider.LoginURL(state), http.StatusTemporaryRedirect)
	}
}

// HandleOAuthCallback completes the login flow. It verifies the state token,
// exchanges the authorization code for the provider profile, creates the user
// record on first login, and redirects the browser back to the client app with
// a fresh session token.
func HandleOAuthCallback(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, customErr := resolveProvider(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if errParam := r.URL.Query().Get("error"); errParam != "" {
			logx.Warn("OAuth provider returned an error", "provider", string(provider.Name()), "error", errParam)
			resp.RespondError(w, r, errs.NewError(errs.ErrOAuthExchangeFailed))
			return
		}

		state := r.URL.Query().Get("state")
		cookie, err := r.Cookie(stateCookieName)
		if err != nil || state == "" || cookie.Value != state {
			logx.Warn("OAuth state mismatch", "provider", string(provider.Name()))
			resp.RespondError(w, r, errs.NewError(errs.ErrOAuthStateMismatch))
			return
		}

		// The state token is single-use.
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})

		code := r.URL.Query().Get("code")
		if code == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams, "missing authorization code"))
			return
		}

		profile, err := provider.Exchange(r.Context(), code)
		if err != nil {
			logx.Error(err, "OAuth code exchange failed", "provider", string(provider.Name()))
			resp.RespondError(w, r, errs.NewError(errs.ErrOAuthExchangeFailed))
			return
		}

		u, err := deps.Users.GetByIdentity(r.Context(), profile.Identity)
		if err != nil {
			u, err = deps.Users.CreateFromLogin(r.Context(),
				profile.Identity, profile.Email, profile.Name, profile.Picture)
			if err != nil {
				logx.Error(err, "Failed to provision user on first login",
					"identity", profile.Identity.String())
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}
			logx.Info("Provisioned new user from login",
				"user_id", u.ID, "identity", profile.Identity.String())
		}

		payload := &jwt.Payload{
			UserID:    u.ID,
			Provider:  string(u.Provider),
			SubjectID: u.ProviderID,
			Name:      u.Name,
			Picture:   u.Picture,
		}

		token, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "Failed to generate session token after login", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		redirectURL := fmt.Sprintf("%s?token=%s", deps.Config.ClientAppURL, url.QueryEscape(token))
		http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
	}
}

// resolveProvider maps the {provider} URL parameter to a configured adapter.
func resolveProvider(deps *AppDeps, r *http.Request) (oauth.Provider, *errs.CustomError) {
	name, err := identity.ParseProvider(chi.URLParam(r, "provider"))
	if err != nil {
		return nil, errs.NewError(errs.ErrOAuthProviderInvalid)
	}

	provider, ok := deps.Providers[name]
	if !ok {
		return nil, errs.NewError(errs.ErrOAuthProviderInvalid)
	}
	return provider, nil
}
