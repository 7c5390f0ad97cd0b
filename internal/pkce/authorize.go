package pkce

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// AuthorizeParams describes an authorization request that carries a
// challenge.
type AuthorizeParams struct {
	AuthURL     string
	ClientID    string
	RedirectURI string
	Scopes      []string
	State       string
	Challenge   string
}

// AuthorizeURL appends the authorization request parameters, including the
// PKCE challenge, to AuthURL. Existing query parameters are kept.
func AuthorizeURL(p AuthorizeParams) (string, error) {
	if p.AuthURL == "" {
		return "", fmt.Errorf("authorization URL is required")
	}
	if p.Challenge == "" {
		return "", ErrIncompleteState
	}

	u, err := url.Parse(p.AuthURL)
	if err != nil {
		return "", fmt.Errorf("invalid authorization URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid authorization URL: %q is not absolute", p.AuthURL)
	}

	q := u.Query()
	q.Set("response_type", "code")
	if p.ClientID != "" {
		q.Set("client_id", p.ClientID)
	}
	if p.RedirectURI != "" {
		q.Set("redirect_uri", p.RedirectURI)
	}
	if p.State != "" {
		q.Set("state", p.State)
	}
	if len(p.Scopes) > 0 {
		q.Set("scope", strings.Join(p.Scopes, " "))
	}
	q.Set("code_challenge", p.Challenge)
	q.Set("code_challenge_method", MethodS256)

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// NewState returns 32 hex characters of random state for CSRF protection.
func NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
