package refresh

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/zendworks/go-session-keeper/credentials"
	"github.com/zendworks/go-session-keeper/storage"
)

// CounterKey is the durable key holding the refresh counter as a decimal
// string. The counter is observability only; nothing makes control decisions
// from it.
const CounterKey = "refresh_count"

// Restarter restarts the page context. Injected so refresh behaviour stays
// testable without an actual navigation; in a browser-like host this is the
// page reload.
type Restarter func()

// Config for the Coordinator.
type Config struct {
	// Endpoint receiving the refresh POST.
	Endpoint string

	// IncludeCredentials forwards the raw attribute string alongside the
	// refresh request, for deployments whose refresh endpoint expects the
	// session attributes rather than only the x-refresh header.
	IncludeCredentials bool
}

// Coordinator performs the proactive token refresh. Its one terminal action
// is unconditional: whatever the outcome, the page context restarts, because
// a fresh load is the only way to re-derive a valid session. A failed refresh
// therefore lands the user back on the anonymous state rather than in an
// error dialog.
type Coordinator struct {
	config  Config
	client  *http.Client
	counter storage.KeyValue
	restart Restarter
}

// NewCoordinator creates a Coordinator with required dependencies.
func NewCoordinator(config Config, client *http.Client, counter storage.KeyValue, restart Restarter) (*Coordinator, error) {
	if config.Endpoint == "" {
		return nil, errors.New("[NewCoordinator] refresh endpoint is required")
	}
	if counter == nil {
		return nil, errors.New("[NewCoordinator] counter store is required")
	}
	if restart == nil {
		return nil, errors.New("[NewCoordinator] restarter is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Coordinator{
		config:  config,
		client:  client,
		counter: counter,
		restart: restart,
	}, nil
}

// Refresh issues the refresh request carrying the snapshot's refresh token.
// On success the refresh counter is incremented; on any failure (network
// error, non-2xx) the failure is logged and nothing else. Both paths end in
// the injected restart. Refresh never fails outward.
func (c *Coordinator) Refresh(ctx context.Context, snapshot credentials.Snapshot) {
	defer c.restart()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, nil)
	if err != nil {
		log.Error().Err(err).Msg("building refresh request failed")
		return
	}
	req.Header.Set("x-refresh", snapshot.RefreshToken)
	if c.config.IncludeCredentials && snapshot.Raw != "" {
		req.Header.Set("Cookie", snapshot.Raw)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("refresh request failed, restarting")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Msg("refresh rejected, restarting")
		return
	}

	c.incrementCounter()
	log.Info().Int("refreshes", Count(c.counter)).Msg("session refreshed")
}

func (c *Coordinator) incrementCounter() {
	next := Count(c.counter) + 1
	if err := c.counter.Set(CounterKey, strconv.Itoa(next)); err != nil {
		log.Warn().Err(err).Msg("persisting refresh counter failed")
	}
}

// Count reads the persisted refresh counter. Absent or non-numeric values
// default to zero, never an error.
func Count(kv storage.KeyValue) int {
	value, ok, err := kv.Get(CounterKey)
	if err != nil || !ok {
		return 0
	}
	count, err := strconv.Atoi(value)
	if err != nil || count < 0 {
		return 0
	}
	return count
}
