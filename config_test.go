// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	require.NotNil(t, cfg)

	_, ok := cfg.Dialer.(*net.Dialer)
	assert.True(t, ok, "Dialer should be *net.Dialer")

	_, ok = cfg.Wire.(NoWire)
	assert.True(t, ok, "Wire should default to NoWire")

	assert.Equal(t, "", cfg.ErrClassifier.Classify(nil))
	assert.Equal(t, "ETIMEDOUT", cfg.ErrClassifier.Classify(context.DeadlineExceeded))

	now := cfg.TimeNow()
	assert.False(t, now.IsZero())

	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.PingInterval)
	assert.Equal(t, 5*time.Second, cfg.IsMasterInterval)
	assert.Equal(t, 15, cfg.LatencyThresholdMS)
}

func TestNoWireFailsLoudly(t *testing.T) {
	_, _, err := (NoWire{}).IsMaster(context.Background(), nil, ServerDef{})
	assert.ErrorIs(t, err, ErrWireNotImplemented)

	_, err = (NoWire{}).GetNonce(context.Background(), nil)
	assert.ErrorIs(t, err, ErrWireNotImplemented)

	_, err = (NoWire{}).Authenticate(context.Background(), nil, "", "", "", "")
	assert.ErrorIs(t, err, ErrWireNotImplemented)

	_, err = (NoWire{}).Ping(context.Background(), nil)
	assert.ErrorIs(t, err, ErrWireNotImplemented)
}
