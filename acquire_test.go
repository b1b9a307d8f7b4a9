// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(cfg *Config) *Manager {
	m := NewManager()
	m.cfg = cfg
	return m
}

func TestAcquireSingleCreatesAuthenticatesAndRegisters(t *testing.T) {
	cfg := testConfig()
	m := newTestManager(cfg)
	def := ServerDef{Host: "h", Port: 1, DB: "admin", Username: "alice", Password: "s3cret"}

	c, err := acquireSingle(context.Background(), m, def, 0, "span")
	require.NoError(t, err)
	require.NotNil(t, c)

	found, ok := m.registry.Find(Hash(def))
	assert.True(t, ok)
	assert.Same(t, c, found)
}

func TestAcquireSingleReusesRegisteredConnection(t *testing.T) {
	cfg := testConfig()
	m := newTestManager(cfg)
	def := ServerDef{Host: "h", Port: 1}

	first, err := acquireSingle(context.Background(), m, def, 0, "span")
	require.NoError(t, err)

	second, err := acquireSingle(context.Background(), m, def, 0, "span")
	require.NoError(t, err)
	assert.Same(t, first, second, "a registered connection must be reused, not recreated")
}

func TestAcquireSingleDontConnectReturnsNilWithoutError(t *testing.T) {
	cfg := testConfig()
	m := newTestManager(cfg)

	c, err := acquireSingle(context.Background(), m, ServerDef{Host: "h", Port: 1}, FlagDontConnect, "span")
	assert.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, 0, m.registry.Len())
}

func TestAcquireSingleAuthenticationFailureDestroysAndDoesNotRegister(t *testing.T) {
	cfg := testConfig()
	cfg.Wire = &fakeWire{
		authenticateFunc: func(ctx context.Context, conn net.Conn, db, user, hashedPassword, nonce string) (bool, error) {
			return false, nil
		},
	}
	m := newTestManager(cfg)
	def := ServerDef{Host: "h", Port: 1, Username: "alice", Password: "bad"}

	c, err := acquireSingle(context.Background(), m, def, 0, "span")
	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Equal(t, 0, m.registry.Len())
}

func TestAcquireSinglePingFailureOnReuseDeregisters(t *testing.T) {
	cfg := testConfig()
	m := newTestManager(cfg)
	def := ServerDef{Host: "h", Port: 1}

	first, err := acquireSingle(context.Background(), m, def, 0, "span")
	require.NoError(t, err)
	require.NotNil(t, first)

	// Force a later ping on the already-registered connection to fail.
	cfg.PingInterval = 0
	pingErr := errors.New("reset")
	cfg.Wire = &fakeWire{
		pingFunc: func(ctx context.Context, conn net.Conn) (float64, error) { return 0, pingErr },
	}
	first.cfg = cfg

	_, err = acquireSingle(context.Background(), m, def, 0, "span")
	assert.Error(t, err)
	_, ok := m.registry.Find(Hash(def))
	assert.False(t, ok, "a connection that fails to ping on reuse must be deregistered")
}

func TestAcquireSingleConnectFailureIsNotRegistered(t *testing.T) {
	cfg := testConfig()
	cfg.Dialer = &fakeDialer{
		dialFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
			return nil, errors.New("refused")
		},
	}
	m := newTestManager(cfg)
	def := ServerDef{Host: "h", Port: 1}

	c, err := acquireSingle(context.Background(), m, def, 0, "span")
	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Equal(t, 0, m.registry.Len())
}
