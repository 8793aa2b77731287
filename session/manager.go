package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/zendworks/go-session-keeper/countdown"
	"github.com/zendworks/go-session-keeper/credentials"
	"github.com/zendworks/go-session-keeper/identity"
	"github.com/zendworks/go-session-keeper/refresh"
	"github.com/zendworks/go-session-keeper/storage"
)

// Config for the Manager.
type Config struct {
	// ClearCounterOnLogout wipes the refresh counter along with the identity
	// on logout, returning the client to a fully anonymous state.
	ClearCounterOnLogout bool
}

// DefaultConfig returns the standard manager configuration.
func DefaultConfig() Config {
	return Config{ClearCounterOnLogout: true}
}

// Deps holds all collaborator dependencies for the Manager. Every field
// except the tick publisher is required.
type Deps struct {
	Credentials *credentials.Reader  // snapshot source
	Resolver    *identity.Resolver   // remote identity endpoint
	Identities  *identity.Store      // persisted identity cache
	Refresher   *refresh.Coordinator // proactive refresh
	Scheduler   *countdown.Scheduler // expiry ticking, one instance per page context
	KeyValue    storage.KeyValue     // durable store (refresh counter lives here)
	Restart     refresh.Restarter    // page-context restart, shared with the coordinator
}

// Manager is the session lifecycle manager: one instance per page context,
// constructed explicitly and passed to collaborators by reference. It derives
// session state from the attribute store, arms the expiry scheduler, resolves
// the authenticated identity, and emits the session-ready signal dependent
// features key off.
//
// No public operation on the Manager propagates an error: missing credentials
// are the anonymous state, identity failures fall back to the cached value,
// and refresh failures end in a restart. The only way out of an inconsistent
// state is a fresh page context, which Restart provides.
type Manager struct {
	deps     Deps
	config   Config
	onTick   func(countdown string)
	notifier *notifier

	lock         sync.Mutex
	cancelTicker countdown.CancelFunc
}

// ManagerOption modifies a Manager at construction.
type ManagerOption func(*Manager)

// WithTick sets the countdown publisher invoked on every scheduler tick.
// Defaults to a debug log line.
func WithTick(onTick func(countdown string)) ManagerOption {
	return func(m *Manager) {
		m.onTick = onTick
	}
}

// NewManager initializes a Manager with required dependencies.
func NewManager(deps Deps, config Config, options ...ManagerOption) (*Manager, error) {
	if deps.Credentials == nil {
		return nil, errors.New("[NewManager] credentials reader is required")
	}
	if deps.Resolver == nil {
		return nil, errors.New("[NewManager] identity resolver is required")
	}
	if deps.Identities == nil {
		return nil, errors.New("[NewManager] identity store is required")
	}
	if deps.Refresher == nil {
		return nil, errors.New("[NewManager] refresh coordinator is required")
	}
	if deps.Scheduler == nil {
		return nil, errors.New("[NewManager] scheduler is required")
	}
	if deps.KeyValue == nil {
		return nil, errors.New("[NewManager] key-value store is required")
	}
	if deps.Restart == nil {
		return nil, errors.New("[NewManager] restarter is required")
	}

	m := &Manager{
		deps:     deps,
		config:   config,
		notifier: newNotifier(),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.onTick == nil {
		m.onTick = func(remaining string) {
			log.Debug().Str("remaining", remaining).Msg("session expiring")
		}
	}
	return m, nil
}

// OnReady subscribes to the session-ready signal and returns an unsubscribe
// function. Subscribers registered after the signal fired miss it; register
// before Start.
func (m *Manager) OnReady(fn ReadyFunc) func() {
	return m.notifier.subscribe(fn)
}

// Start runs the load-time synchronization once per page context: if valid
// credentials are present it arms the expiry scheduler, resolves the
// authenticated identity (cached fallback on failure), and emits exactly one
// session-ready signal. With no credentials it is a silent no-op and nothing
// else happens - no network calls, no signal.
func (m *Manager) Start(ctx context.Context) {
	snapshot := m.deps.Credentials.Read()
	if !snapshot.HasToken() {
		log.Debug().Msg("no session attributes present, staying anonymous")
		return
	}

	m.armScheduler(ctx, snapshot)
	m.notifier.emit(m.resolveIdentity(ctx, snapshot))
}

// Logout unconditionally clears the session: every allow-listed attribute is
// expired, the persisted identity (and counter, per config) is removed, any
// running scheduler stops, and the page context restarts. Logout always
// succeeds from the caller's perspective and is idempotent.
func (m *Manager) Logout() {
	m.lock.Lock()
	cancel := m.cancelTicker
	m.cancelTicker = nil
	m.lock.Unlock()
	if cancel != nil {
		cancel()
	}

	store := m.deps.Credentials.Store()
	for _, name := range credentials.AllowedAttributes {
		if err := store.Expire(name); err != nil {
			log.Warn().Err(err).Str("attribute", name).Msg("expiring session attribute failed")
		}
	}
	if err := m.deps.Identities.Clear(); err != nil {
		log.Warn().Err(err).Msg("clearing persisted identity failed")
	}
	if m.config.ClearCounterOnLogout {
		if err := m.deps.KeyValue.Delete(refresh.CounterKey); err != nil {
			log.Warn().Err(err).Msg("clearing refresh counter failed")
		}
	}

	log.Info().Msg("session logged out")
	m.deps.Restart()
}

func (m *Manager) armScheduler(ctx context.Context, snapshot credentials.Snapshot) {
	cancel, err := m.deps.Scheduler.Start(snapshot, m.onTick, func() {
		// The attribute store may have changed since arming; the refresh
		// always runs against a fresh snapshot.
		m.deps.Refresher.Refresh(ctx, m.deps.Credentials.Read())
	})
	if err != nil {
		log.Warn().Err(err).Msg("arming expiry scheduler failed")
		return
	}

	m.lock.Lock()
	m.cancelTicker = cancel
	m.lock.Unlock()
}

func (m *Manager) resolveIdentity(ctx context.Context, snapshot credentials.Snapshot) identity.Identity {
	resolved, err := m.deps.Resolver.Resolve(ctx, snapshot)
	if err != nil {
		log.Warn().Err(err).Msg("identity resolution failed, using cached identity")
		cached, ok := m.deps.Identities.Load()
		if !ok {
			return identity.Identity{}
		}
		return cached
	}

	if err := m.deps.Identities.Save(resolved); err != nil {
		log.Warn().Err(err).Msg("persisting identity failed")
	}
	log.Info().Str("user", resolved.Name).Int("refreshes", refresh.Count(m.deps.KeyValue)).Msg("session ready")
	return resolved
}
