// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import (
	"context"
	"net"
	"time"
)

// Dialer abstracts [*net.Dialer]'s behavior, exactly as the teacher
// package's Dialer interface does, so tests can inject
// [github.com/bassosimone/netstub.FuncDialer] in place of a real dialer.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Config holds common configuration for the connection primitive
// (spec.md §4.B). [NewManager] builds one with [NewConfig] and applies its
// [Option] values to it; all fields have sensible defaults set by
// [NewConfig] and are safe to modify after construction but before first
// use.
type Config struct {
	// Dialer opens the transport session in Create.
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// Wire is the external wire-protocol collaborator (spec.md §1's
	// out-of-scope framer/codec) that implements ismaster, getnonce,
	// authenticate and ping.
	//
	// Set by [NewConfig] to [NoWire], which fails every call. Production
	// callers must install a real implementation.
	Wire Wire

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time

	// ConnectTimeout bounds Create's dial-plus-handshake step.
	//
	// Set by [NewConfig] to 10 seconds.
	ConnectTimeout time.Duration

	// PingInterval is the minimum time between two real pings of the same
	// connection (spec.md §4.B); a ping requested sooner returns success
	// immediately without a round trip.
	//
	// Set by [NewConfig] to 5 seconds.
	PingInterval time.Duration

	// IsMasterInterval is the minimum time between two real ismaster
	// probes of the same connection; a probe requested sooner is skipped
	// (spec.md §4.B), which is not an error.
	//
	// Set by [NewConfig] to 5 seconds.
	IsMasterInterval time.Duration

	// LatencyThresholdMS is the default latency window width applied in
	// selection phase 3 (spec.md §4.F).
	//
	// Set by [NewConfig] to 15.
	LatencyThresholdMS int
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialer:             &net.Dialer{},
		Wire:               NoWire{},
		ErrClassifier:      DefaultErrClassifier,
		TimeNow:            time.Now,
		ConnectTimeout:     10 * time.Second,
		PingInterval:       5 * time.Second,
		IsMasterInterval:   5 * time.Second,
		LatencyThresholdMS: 15,
	}
}
