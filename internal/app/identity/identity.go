/*
Package identity defines the external-provider identity attached to a signed-in
principal.

An External value is produced exactly once, by the provider adapter that
handled the OAuth2 login, and is then passed explicitly through every call that
needs to know who the caller is. Downstream code never inspects raw
provider-specific attribute maps and never reads ambient authentication state.
*/
package identity

import "fmt"

// Provider enumerates the supported external identity providers.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// External is the externally-verified identity of a connecting principal.
// SubjectID is the provider-issued subject identifier ("sub" for Google, the
// numeric account id for GitHub), distinct from the application's durable
// user id.
type External struct {
	Provider  Provider
	SubjectID string
}

// Valid reports whether the identity names a supported provider and carries a
// non-empty subject.
func (e External) Valid() bool {
	switch e.Provider {
	case ProviderGoogle, ProviderGitHub:
		return e.SubjectID != ""
	}
	return false
}

// String renders the identity as provider:subject for logging.
func (e External) String() string {
	return fmt.Sprintf("%s:%s", e.Provider, e.SubjectID)
}

// ParseProvider validates a provider name from a URL or token claim.
func ParseProvider(name string) (Provider, error) {
	switch Provider(name) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderGitHub:
		return ProviderGitHub, nil
	}
	return "", fmt.Errorf("unsupported identity provider %q", name)
}
