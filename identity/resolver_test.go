package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zendworks/go-session-keeper/credentials"
	"github.com/zendworks/go-session-keeper/identity"
)

func TestResolveSendsBearerCredential(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Ada","email":"ada@x.com","picture":"p.png"}`))
	}))
	defer server.Close()

	resolver, err := identity.NewResolver(server.URL, server.Client())
	require.NoError(t, err)

	resolved, err := resolver.Resolve(context.Background(), credentials.Parse("oauth_token=abc"))
	require.NoError(t, err)
	require.Equal(t, "Bearer abc", gotAuth.Load())
	require.Equal(t, identity.Identity{Name: "Ada", Email: "ada@x.com", PictureURL: "p.png"}, resolved)
}

func TestResolveIgnoresExtraFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Ada","email":"ada@x.com","picture":"p.png","account_id":"a1","zoneinfo":"UTC"}`))
	}))
	defer server.Close()

	resolver, err := identity.NewResolver(server.URL, server.Client())
	require.NoError(t, err)

	resolved, err := resolver.Resolve(context.Background(), credentials.Parse("oauth_token=abc"))
	require.NoError(t, err)
	require.Equal(t, "Ada", resolved.Name)
}

func TestResolveFailsOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorised", http.StatusUnauthorized)
	}))
	defer server.Close()

	resolver, err := identity.NewResolver(server.URL, server.Client())
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), credentials.Parse("oauth_token=abc"))
	require.Error(t, err)
}

func TestResolveFailsOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	resolver, err := identity.NewResolver(server.URL, server.Client())
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), credentials.Parse("oauth_token=abc"))
	require.Error(t, err)
}

func TestNewResolverRequiresEndpoint(t *testing.T) {
	_, err := identity.NewResolver("", nil)
	require.Error(t, err)
}
