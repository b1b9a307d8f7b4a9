// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the taxonomy in spec.md §7. Callers branch on these
// with errors.Is; they are never surfaced as bare strings where a caller
// might need to distinguish them programmatically.
var (
	// ErrNoCandidateServers is returned by selection when no connection
	// survives the filter/sort/truncate pipeline and no seed error was
	// recorded (or the deployment is a replica set, where per-seed errors
	// are never surfaced — discovery is expected to recover from them).
	ErrNoCandidateServers = errors.New("no candidate servers found")

	// ErrUnknownConnectionType is returned when a ServerList.Type is not
	// one of Standalone, ReplicaSet, Multiple.
	ErrUnknownConnectionType = errors.New("unknown connection type requested")

	// ErrAuthentication wraps an authentication failure; the connection is
	// destroyed and never registered.
	ErrAuthentication = errors.New("authentication failed")

	// ErrPingFailed wraps a ping failure. When single-connection acquire
	// sees it, a reused connection is deregistered and destroyed, and a
	// just-created one is destroyed, before the error returns.
	ErrPingFailed = errors.New("ping failed")

	// ErrConnectFailed wraps a transport-level connect failure.
	ErrConnectFailed = errors.New("connect failed")
)

// connectError wraps a transport-level connect failure with the server
// definition it was attempting to reach, while still satisfying
// errors.Is(err, ErrConnectFailed).
type connectError struct {
	def ServerDef
	err error
}

func (e *connectError) Error() string {
	return fmt.Sprintf("connect %s:%d: %v", e.def.Host, e.def.Port, e.err)
}

func (e *connectError) Unwrap() []error { return []error{ErrConnectFailed, e.err} }

func wrapConnectError(def ServerDef, err error) error {
	return &connectError{def: def, err: err}
}

// pingError wraps a ping failure on a reused or just-created connection.
type pingError struct {
	def ServerDef
	err error
}

func (e *pingError) Error() string {
	return fmt.Sprintf("ping %s:%d: %v", e.def.Host, e.def.Port, e.err)
}

func (e *pingError) Unwrap() []error { return []error{ErrPingFailed, e.err} }

// authError wraps an authentication failure.
type authError struct {
	def ServerDef
	err error
}

func (e *authError) Error() string {
	return fmt.Sprintf("authenticate %s:%d as %s: %v", e.def.Host, e.def.Port, e.def.Username, e.err)
}

func (e *authError) Unwrap() []error { return []error{ErrAuthentication, e.err} }

// seedErrors accumulates one error per seed for the Standalone/Multiple
// composite-error path (spec.md §4.G). A ReplicaSet acquisition also
// accumulates into one of these during the per-seed acquire phase, but
// never surfaces it: discovery is expected to recover, and the top-level
// error on total failure is always ErrNoCandidateServers.
type seedErrors struct {
	errs []error
}

func (s *seedErrors) add(def ServerDef, err error) {
	s.errs = append(s.errs, fmt.Errorf("%s:%d: %w", def.Host, def.Port, err))
}

func (s *seedErrors) empty() bool {
	return len(s.errs) == 0
}

// composite joins every recorded per-seed error into a single message, used
// only by the Standalone/Multiple strategy when selection yields nothing.
func (s *seedErrors) composite() error {
	if s.empty() {
		return ErrNoCandidateServers
	}
	parts := make([]string, 0, len(s.errs))
	for _, e := range s.errs {
		parts = append(parts, e.Error())
	}
	return fmt.Errorf("%w", errors.New(strings.Join(parts, "; ")))
}
