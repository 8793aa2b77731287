package identity

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/zendworks/go-session-keeper/credentials"
)

// Resolver fetches the authenticated identity from the remote identity
// endpoint using the snapshot's access token as a bearer credential.
type Resolver struct {
	endpoint string
	client   *http.Client
}

// NewResolver creates a Resolver against the given identity endpoint.
func NewResolver(endpoint string, client *http.Client) (*Resolver, error) {
	if endpoint == "" {
		return nil, errors.New("[NewResolver] identity endpoint is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Resolver{endpoint: endpoint, client: client}, nil
}

// Resolve performs one authenticated GET against the identity endpoint.
// Extra response fields are ignored. Failures are returned for the caller to
// recover from (cached fallback); they are never user-facing errors.
func (r *Resolver) Resolve(ctx context.Context, snapshot credentials.Snapshot) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return Identity{}, errors.Wrap(err, "[Resolver.Resolve] build request")
	}
	snapshot.Token().SetAuthHeader(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return Identity{}, errors.Wrap(err, "[Resolver.Resolve] identity request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, errors.Errorf("[Resolver.Resolve] identity endpoint returned %d", resp.StatusCode)
	}

	var resolved Identity
	if err := json.NewDecoder(resp.Body).Decode(&resolved); err != nil {
		return Identity{}, errors.Wrap(err, "[Resolver.Resolve] decode identity")
	}
	return resolved, nil
}
