package jwt

import (
	"github.com/golang-jwt/jwt"

	"learnly/internal/app/identity"
)

// Payload defines the JWT claims issued after a successful OAuth2 login.
// It carries both the durable user id and the provider identity the session
// was established with, so handlers never have to re-consult the login layer.
type Payload struct {
	// StandardClaims embeds Exp, Iat and Iss, required for validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// UserID is the application's durable user id.
	UserID string `json:"user_id"`

	// Provider and SubjectID identify the external login identity.
	Provider  string `json:"provider"`
	SubjectID string `json:"subject_id"`

	// Name and Picture mirror the profile at issuance time, for client use.
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Identity returns the explicit external identity carried by the token.
func (p *Payload) Identity() identity.External {
	return identity.External{
		Provider:  identity.Provider(p.Provider),
		SubjectID: p.SubjectID,
	}
}
