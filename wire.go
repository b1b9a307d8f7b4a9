// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import (
	"context"
	"errors"
	"net"
)

// IsMasterResult is the outcome of a Wire.IsMaster call (spec.md §4.B).
type IsMasterResult int

const (
	// IsMasterError means the call failed outright; the caller must
	// deregister the connection and move on.
	IsMasterError IsMasterResult = iota

	// IsMasterOk means the call succeeded and reported a fresh host list.
	IsMasterOk

	// IsMasterSkipped means the call was skipped because the last probe
	// was within the manager's ismaster_interval; this is not an error.
	IsMasterSkipped

	// IsMasterRemoveSeed means the call succeeded, but the contacted
	// host is not itself a member of the reported host list (e.g. a DNS
	// alias). The ismaster payload is still usable for discovery, but
	// the caller must deregister this connection.
	IsMasterRemoveSeed
)

// IsMasterReport is the payload of a successful (Ok or RemoveSeed) IsMaster
// call: the members the contacted server reports, and the replica-set name
// it claims to belong to.
type IsMasterReport struct {
	Hosts          []string
	ReplicaSetName string
	Type           ConnectionType
	Tags           map[string]string
	MaxBSONSize    int
}

// Wire is the external wire-protocol collaborator this package consumes
// but does not own (spec.md §1's "out of scope" list: the framer that
// issues ismaster/getnonce/authenticate/ping, and the BSON codec behind
// it). Production code wires a real implementation living in a sibling
// package; tests inject a hand-rolled fake, the same way the teacher's
// tests inject a [github.com/bassosimone/netstub.FuncDialer] in place of
// a real [net.Dialer].
type Wire interface {
	// IsMaster issues an ismaster probe against conn. Interval-gated
	// skipping (spec.md §4.B) is the caller's responsibility, not the Wire
	// implementation's. The reported ReplicaSetName is returned as is; this
	// package does not compare it against ServerList.ReplicaSetName.
	IsMaster(ctx context.Context, conn net.Conn, def ServerDef) (IsMasterResult, IsMasterReport, error)

	// GetNonce requests a fresh authentication nonce from conn.
	GetNonce(ctx context.Context, conn net.Conn) (string, error)

	// Authenticate sends (db, user, digest(nonce, user, hashedPassword))
	// over conn. hashedPassword is the value [HashedPassword] computes.
	Authenticate(ctx context.Context, conn net.Conn, db, user, hashedPassword, nonce string) (bool, error)

	// Ping issues a liveness probe over conn and returns the round-trip
	// latency. Interval-gated reuse (spec.md §4.B) is the caller's
	// responsibility, not the Wire implementation's.
	Ping(ctx context.Context, conn net.Conn) (rtt float64, err error)
}

// ErrWireNotImplemented is returned by [NoWire] for every operation. The
// real wire-protocol framer and BSON codec are a sibling package this
// repository does not own (spec.md §1); production callers must supply
// their own [Wire] via [WithWire].
var ErrWireNotImplemented = errors.New("mongoconn: no wire protocol implementation configured")

// NoWire is the zero-value [Wire]: every call fails with
// [ErrWireNotImplemented]. [NewConfig] installs it as a placeholder, so a
// [*Manager] constructed without [WithWire] fails every acquisition: the
// first ping of each connection fails. For Standalone/Multiple the composite
// error carries [ErrWireNotImplemented]'s message; for ReplicaSet the
// acquisition reports [ErrNoCandidateServers].
type NoWire struct{}

var _ Wire = NoWire{}

func (NoWire) IsMaster(context.Context, net.Conn, ServerDef) (IsMasterResult, IsMasterReport, error) {
	return IsMasterError, IsMasterReport{}, ErrWireNotImplemented
}

func (NoWire) GetNonce(context.Context, net.Conn) (string, error) {
	return "", ErrWireNotImplemented
}

func (NoWire) Authenticate(context.Context, net.Conn, string, string, string, string) (bool, error) {
	return false, ErrWireNotImplemented
}

func (NoWire) Ping(context.Context, net.Conn) (float64, error) {
	return 0, ErrWireNotImplemented
}
