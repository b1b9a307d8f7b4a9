//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on the teacher package's connect.go (span-shaped start/done
// logging around a blocking dial) and tls.go (ownership transfer: the
// just-created resource is closed before an error propagates).
//

package mongoconn

import (
	"context"
	"net"
	"time"

	"github.com/bassosimone/safeconn"
)

// Connection owns one live session to a single server (spec.md §3). It is
// created only by [createConnection] (component D's single-connection
// acquire); once registered it is destroyed only by [*Registry.Deregister]
// or [*Manager.Deinit], while a connection that fails before registration
// is destroyed by the acquire itself. Its Hash is immutable for its lifetime.
type Connection struct {
	// Hash is this connection's identity, computed once at creation by
	// [Hash] and never recomputed.
	Hash string

	// LastIsMaster is the wall-clock time of the last ismaster probe that
	// actually performed a round trip (not a skipped one).
	LastIsMaster time.Time

	// LastPing is the wall-clock time of the last ping that actually
	// performed a round trip.
	LastPing time.Time

	// PingMS is the measured round-trip latency, in milliseconds, of the
	// last real ping.
	PingMS float64

	// Tags are the tag strings this server reported through ismaster.
	Tags map[string]string

	// ConnectionType is the role this server last reported.
	ConnectionType ConnectionType

	// MaxBSONSize is the maximum document size this server declared.
	MaxBSONSize int

	def     ServerDef
	conn    net.Conn
	cfg     *Config
	logFunc LogFunc
	span    string
}

const defaultMaxBSONSize = 16 * 1024 * 1024

// createConnection opens a transport session to def and sets sane
// defaults. It does NOT register the connection and does NOT authenticate
// or ping it; those are the caller's (component D's) responsibility.
func createConnection(ctx context.Context, cfg *Config, def ServerDef, logFunc LogFunc, span string) (*Connection, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	addr := net.JoinHostPort(def.Host, itoa(def.Port))
	t0 := cfg.TimeNow()
	deadline, _ := ctx.Deadline()
	logConnectStart(logFunc, span, addr, t0, deadline)

	conn, err := cfg.Dialer.DialContext(ctx, "tcp", addr)
	logConnectDone(logFunc, span, cfg.ErrClassifier, addr, t0, deadline, conn, err)
	if err != nil {
		return nil, wrapConnectError(def, err)
	}

	return &Connection{
		Hash:           Hash(def),
		ConnectionType: Unknown,
		MaxBSONSize:    defaultMaxBSONSize,
		def:            def,
		conn:           conn,
		cfg:            cfg,
		logFunc:        logFunc,
		span:           span,
	}, nil
}

// ping issues a liveness probe, honoring the configured ping interval
// (spec.md §4.B): if the last real ping was within cfg.PingInterval, this
// returns success immediately without a round trip.
func (c *Connection) ping(ctx context.Context) error {
	now := c.cfg.TimeNow()
	if !c.LastPing.IsZero() && now.Sub(c.LastPing) < c.cfg.PingInterval {
		return nil
	}

	t0 := now
	rtt, err := c.cfg.Wire.Ping(ctx, c.conn)
	c.logFunc(ModuleConnection, levelFor(err), c.span, "pingDone remoteAddr=%s err=%v errClass=%s elapsedMS=%.3f",
		safeconn.RemoteAddr(c.conn), err, c.cfg.ErrClassifier.Classify(err), c.cfg.TimeNow().Sub(t0).Seconds()*1000)
	if err != nil {
		return &pingError{def: c.def, err: err}
	}
	c.LastPing = c.cfg.TimeNow()
	c.PingMS = rtt
	return nil
}

// isMaster issues (or skips) an ismaster probe, honoring the configured
// ismaster interval. On [IsMasterOk] or [IsMasterRemoveSeed] it also
// updates Tags, ConnectionType and MaxBSONSize from the report. The reported
// replica-set name is not checked against expectedReplicaSet, here or by
// any caller.
func (c *Connection) isMaster(ctx context.Context, expectedReplicaSet string) (IsMasterResult, IsMasterReport, error) {
	now := c.cfg.TimeNow()
	if !c.LastIsMaster.IsZero() && now.Sub(c.LastIsMaster) < c.cfg.IsMasterInterval {
		return IsMasterSkipped, IsMasterReport{}, nil
	}

	result, report, err := c.cfg.Wire.IsMaster(ctx, c.conn, c.def)
	c.logFunc(ModuleConnection, levelForIsMaster(result, err), c.span,
		"isMasterDone remoteAddr=%s result=%d err=%v", safeconn.RemoteAddr(c.conn), result, err)
	if err != nil {
		return IsMasterError, IsMasterReport{}, err
	}
	if result == IsMasterOk || result == IsMasterRemoveSeed {
		c.LastIsMaster = c.cfg.TimeNow()
		c.Tags = report.Tags
		c.ConnectionType = report.Type
		if report.MaxBSONSize > 0 {
			c.MaxBSONSize = report.MaxBSONSize
		}
	}
	_ = expectedReplicaSet // not compared: report.ReplicaSetName is returned unchecked
	return result, report, nil
}

// authenticate requests a nonce and sends the credential digest, per
// spec.md §4.B's authentication protocol. On failure the caller must
// destroy the connection without registering it.
func (c *Connection) authenticate(ctx context.Context) error {
	nonce, err := c.cfg.Wire.GetNonce(ctx, c.conn)
	if err != nil {
		return &authError{def: c.def, err: err}
	}

	hashed := HashedPassword(c.def.Username, c.def.Password)
	ok, err := c.cfg.Wire.Authenticate(ctx, c.conn, c.def.DB, c.def.Username, hashed, nonce)
	c.logFunc(ModuleConnection, levelFor(err), c.span, "authenticateDone remoteAddr=%s ok=%v err=%v",
		safeconn.RemoteAddr(c.conn), ok, err)
	if err != nil {
		return &authError{def: c.def, err: err}
	}
	if !ok {
		return &authError{def: c.def, err: ErrAuthentication}
	}
	return nil
}

// destroy closes the transport session. It is idempotent.
func (c *Connection) destroy() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func levelFor(err error) LogLevel {
	if err != nil {
		return LevelWarn
	}
	return LevelInfo
}

func levelForIsMaster(result IsMasterResult, err error) LogLevel {
	if err != nil || result == IsMasterError {
		return LevelWarn
	}
	return LevelInfo
}

func logConnectStart(logFunc LogFunc, span, addr string, t0, deadline time.Time) {
	logFunc(ModuleConnection, LevelInfo, span, "connectStart remoteAddr=%s deadline=%s t=%s", addr, deadline, t0)
}

func logConnectDone(logFunc LogFunc, span string, classifier ErrClassifier, addr string, t0, deadline time.Time, conn net.Conn, err error) {
	logFunc(ModuleConnection, levelFor(err), span, "connectDone remoteAddr=%s localAddr=%s err=%v errClass=%s",
		addr, safeconn.LocalAddr(conn), err, classifier.Classify(err))
}
