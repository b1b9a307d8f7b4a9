// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import (
	"context"
	"log/slog"
	"net"

	"github.com/bassosimone/netstub"
	"github.com/bassosimone/slogstub"
)

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}
	return slog.New(handler), &records
}

// newMinimalConn returns a [*netstub.FuncConn] with only LocalAddrFunc and
// RemoteAddrFunc set. This is the minimum needed for code that calls
// [safeconn.LocalAddr], [safeconn.RemoteAddr] during construction, without
// the test needing a real socket.
func newMinimalConn() *netstub.FuncConn {
	return &netstub.FuncConn{
		LocalAddrFunc:  func() net.Addr { return &net.TCPAddr{} },
		RemoteAddrFunc: func() net.Addr { return &net.TCPAddr{} },
	}
}

// fakeWire is a hand-rolled [Wire] test double: every method is optional and
// defaults to a canned success, so a test only overrides the calls it cares
// about. This plays the role the teacher package's tlsstub mock engine plays
// for TLS, but for the wire-protocol collaborator this package instead
// depends on.
type fakeWire struct {
	isMasterFunc     func(ctx context.Context, conn net.Conn, def ServerDef) (IsMasterResult, IsMasterReport, error)
	getNonceFunc     func(ctx context.Context, conn net.Conn) (string, error)
	authenticateFunc func(ctx context.Context, conn net.Conn, db, user, hashedPassword, nonce string) (bool, error)
	pingFunc         func(ctx context.Context, conn net.Conn) (float64, error)
}

var _ Wire = (*fakeWire)(nil)

func (w *fakeWire) IsMaster(ctx context.Context, conn net.Conn, def ServerDef) (IsMasterResult, IsMasterReport, error) {
	if w.isMasterFunc != nil {
		return w.isMasterFunc(ctx, conn, def)
	}
	return IsMasterOk, IsMasterReport{Type: TypeStandalone}, nil
}

func (w *fakeWire) GetNonce(ctx context.Context, conn net.Conn) (string, error) {
	if w.getNonceFunc != nil {
		return w.getNonceFunc(ctx, conn)
	}
	return "nonce", nil
}

func (w *fakeWire) Authenticate(ctx context.Context, conn net.Conn, db, user, hashedPassword, nonce string) (bool, error) {
	if w.authenticateFunc != nil {
		return w.authenticateFunc(ctx, conn, db, user, hashedPassword, nonce)
	}
	return true, nil
}

func (w *fakeWire) Ping(ctx context.Context, conn net.Conn) (float64, error) {
	if w.pingFunc != nil {
		return w.pingFunc(ctx, conn)
	}
	return 1.0, nil
}

// fakeDialer is a hand-rolled [Dialer] test double: dialFunc, when set,
// decides the result; otherwise it returns [newMinimalConn], so tests never
// open a real socket.
type fakeDialer struct {
	dialFunc func(ctx context.Context, network, address string) (net.Conn, error)
}

var _ Dialer = (*fakeDialer)(nil)

func (d *fakeDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	if d.dialFunc != nil {
		return d.dialFunc(ctx, network, address)
	}
	return newMinimalConn(), nil
}
