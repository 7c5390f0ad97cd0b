package pkce

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizeURL(t *testing.T) {
	p := AuthorizeParams{
		AuthURL:     "https://auth.example.com/authorize?audience=api",
		ClientID:    "test-client-id",
		RedirectURI: "http://localhost:8080/callback",
		Scopes:      []string{"read", "write"},
		State:       "test-state",
		Challenge:   "test-challenge",
	}

	result, err := AuthorizeURL(p)
	require.NoError(t, err)

	parsed, err := url.Parse(result)
	require.NoError(t, err)

	require.Equal(t, "https", parsed.Scheme)
	require.Equal(t, "auth.example.com", parsed.Host)
	require.Equal(t, "/authorize", parsed.Path)

	// Expected query parameters - add new params here
	expected := map[string]string{
		"audience":              "api",
		"client_id":             "test-client-id",
		"redirect_uri":          "http://localhost:8080/callback",
		"response_type":         "code",
		"state":                 "test-state",
		"scope":                 "read write",
		"code_challenge":        "test-challenge",
		"code_challenge_method": "S256",
	}

	query := parsed.Query()
	require.Equal(t, len(expected), len(query),
		"query parameter count mismatch: expected %d, got %d", len(expected), len(query))
	for key, want := range expected {
		require.Equal(t, want, query.Get(key), "parameter %q mismatch", key)
	}
}

func TestAuthorizeURLOmitsEmptyParams(t *testing.T) {
	result, err := AuthorizeURL(AuthorizeParams{
		AuthURL:   "https://auth.example.com/authorize",
		Challenge: "c",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(result)
	require.NoError(t, err)
	query := parsed.Query()
	require.Len(t, query, 3)
	require.Equal(t, "code", query.Get("response_type"))
	require.Equal(t, "c", query.Get("code_challenge"))
	require.Equal(t, "S256", query.Get("code_challenge_method"))
}

func TestAuthorizeURLErrors(t *testing.T) {
	tests := []struct {
		name   string
		params AuthorizeParams
	}{
		{name: "missing auth url", params: AuthorizeParams{Challenge: "c"}},
		{name: "relative auth url", params: AuthorizeParams{AuthURL: "/authorize", Challenge: "c"}},
		{name: "unparseable auth url", params: AuthorizeParams{AuthURL: "://invalid", Challenge: "c"}},
		{name: "missing challenge", params: AuthorizeParams{AuthURL: "https://auth.example.com/authorize"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AuthorizeURL(tt.params)
			require.Error(t, err)
			require.Empty(t, result)
		})
	}
}

func TestNewState(t *testing.T) {
	state1, err := NewState()
	require.NoError(t, err)
	require.Len(t, state1, 32)

	state2, err := NewState()
	require.NoError(t, err)
	require.NotEqual(t, state1, state2)
}
