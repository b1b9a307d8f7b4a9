//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on the teacher package's config.go defaults-constructor idiom
// (NewConfig pre-wiring sane defaults) generalized to a long-lived owner
// type with an explicit init/deinit lifecycle (spec.md §3's Manager).
//

package mongoconn

import "time"

// Manager is the long-lived owner of the connection registry, the interval
// tunables, and the log sink (spec.md §3). Its lifecycle is init → many
// acquisitions → deinit. A *Manager is not safe for concurrent use
// (spec.md §5); callers needing concurrency own one per goroutine.
type Manager struct {
	registry *Registry
	cfg      *Config
	logFunc  LogFunc
}

// Option configures a *Manager at construction time, mirroring the
// teacher's constructor-injection style (e.g. NewConnectFunc(cfg, network,
// logger)) rather than exposing every field as a public zero-value default
// on the manager itself.
type Option func(*Manager)

// WithDialer overrides the [Dialer] used to open transport sessions.
func WithDialer(d Dialer) Option {
	return func(m *Manager) { m.cfg.Dialer = d }
}

// WithWire installs the wire-protocol collaborator (spec.md §1). Production
// callers must supply this; the default, [NoWire], fails every call.
func WithWire(w Wire) Option {
	return func(m *Manager) { m.cfg.Wire = w }
}

// WithErrClassifier overrides the [ErrClassifier] used for structured
// logging.
func WithErrClassifier(c ErrClassifier) Option {
	return func(m *Manager) { m.cfg.ErrClassifier = c }
}

// WithLogger installs a [LogFunc] sink (spec.md §4.H).
func WithLogger(fn LogFunc) Option {
	return func(m *Manager) { m.logFunc = fn }
}

// WithPingInterval overrides the minimum time between two real pings of the
// same connection.
func WithPingInterval(d time.Duration) Option {
	return func(m *Manager) { m.cfg.PingInterval = d }
}

// WithIsMasterInterval overrides the minimum time between two real ismaster
// probes of the same connection.
func WithIsMasterInterval(d time.Duration) Option {
	return func(m *Manager) { m.cfg.IsMasterInterval = d }
}

// WithLatencyThreshold overrides the default latency window width (spec.md
// §4.F phase 3), in milliseconds.
func WithLatencyThreshold(ms int) Option {
	return func(m *Manager) { m.cfg.LatencyThresholdMS = ms }
}

// WithTimeNow overrides the clock, for deterministic tests.
func WithTimeNow(fn func() time.Time) Option {
	return func(m *Manager) { m.cfg.TimeNow = fn }
}

// NewManager creates a new *Manager (spec.md §6's init). Equivalent to the
// source's `init()` entry point.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		registry: NewRegistry(),
		cfg:      NewConfig(),
		logFunc:  DefaultLogFunc(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Deinit destroys every registered connection, in forward (insertion)
// order, and empties the registry (spec.md §6's deinit). Call exactly once,
// after the last acquisition.
func (m *Manager) Deinit() {
	m.registry.teardown()
}

// FindByHash looks up a connection by its identity hash without touching
// the network.
func (m *Manager) FindByHash(hash string) (*Connection, bool) {
	return m.registry.Find(hash)
}

// Register adds an already-created, already-authenticated-and-pinged
// connection to the registry. Most callers should go through
// [*Manager.GetReadWriteConnection] instead; this is exposed for parity
// with spec.md §6's manager_connection_register.
func (m *Manager) Register(c *Connection) error {
	return m.registry.Register(c)
}

// Deregister removes c from the registry, destroying it, and reports
// whether an entry was actually removed.
func (m *Manager) Deregister(c *Connection) bool {
	return m.registry.Deregister(c)
}

// latencyThreshold resolves the effective latency window for list,
// preferring its own override over the manager's default (see SPEC_FULL.md
// §3's ServerList.LatencyThresholdMS expansion).
func (m *Manager) latencyThreshold(list *ServerList) int {
	if list.LatencyThresholdMS > 0 {
		return list.LatencyThresholdMS
	}
	return m.cfg.LatencyThresholdMS
}
