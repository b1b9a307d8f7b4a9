// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerFakeConnection(t *testing.T, m *Manager, hash string, typ ConnectionType, pingMS float64, tags map[string]string) *Connection {
	t.Helper()
	c := &Connection{Hash: hash, ConnectionType: typ, PingMS: pingMS, Tags: tags, conn: newMinimalConn()}
	require.NoError(t, m.registry.Register(c))
	return c
}

func TestSelectCandidateFiltersByRole(t *testing.T) {
	cfg := testConfig()
	m := newTestManager(cfg)
	authPrefix := AuthHashPrefix(ServerDef{})

	secondary := registerFakeConnection(t, m, authPrefix+"secondary", TypeSecondary, 5, nil)
	registerFakeConnection(t, m, authPrefix+"arbiter", TypeArbiter, 1, nil)

	list := &ServerList{Preference: ReadPreference{Type: Secondary}}
	got, err := selectCandidate(m, list, authPrefix)
	require.NoError(t, err)
	assert.Same(t, secondary, got)
}

func TestSelectCandidateExcludesDifferentCredentials(t *testing.T) {
	cfg := testConfig()
	m := newTestManager(cfg)
	otherPrefix := AuthHashPrefix(ServerDef{Username: "bob", Password: "x"})
	registerFakeConnection(t, m, otherPrefix+"endpoint", TypePrimary, 1, nil)

	myPrefix := AuthHashPrefix(ServerDef{Username: "alice", Password: "y"})
	list := &ServerList{Preference: ReadPreference{Type: Primary}}
	_, err := selectCandidate(m, list, myPrefix)
	assert.ErrorIs(t, err, ErrNoCandidateServers)
}

func TestSelectCandidateTruncatesByLatencyWindow(t *testing.T) {
	cfg := testConfig()
	cfg.LatencyThresholdMS = 10
	m := newTestManager(cfg)
	authPrefix := AuthHashPrefix(ServerDef{})

	near := registerFakeConnection(t, m, authPrefix+"near", TypeSecondary, 5, nil)
	registerFakeConnection(t, m, authPrefix+"far", TypeSecondary, 100, nil)

	list := &ServerList{Preference: ReadPreference{Type: Secondary}}
	got, err := selectCandidate(m, list, authPrefix)
	require.NoError(t, err)
	assert.Same(t, near, got, "only the connection within the latency window may be picked")
}

func TestSelectCandidatePrimaryPreferredKeepsPrimaryRegardlessOfLatency(t *testing.T) {
	cfg := testConfig()
	cfg.LatencyThresholdMS = 1
	m := newTestManager(cfg)
	authPrefix := AuthHashPrefix(ServerDef{})

	registerFakeConnection(t, m, authPrefix+"secondary", TypeSecondary, 1, nil)
	primary := registerFakeConnection(t, m, authPrefix+"primary", TypePrimary, 500, nil)

	list := &ServerList{Preference: ReadPreference{Type: PrimaryPreferred}}
	got, err := selectCandidate(m, list, authPrefix)
	require.NoError(t, err)
	assert.Same(t, primary, got)
}

func TestSelectCandidateSecondaryPreferredKeepsSecondaryOverPrimary(t *testing.T) {
	cfg := testConfig()
	cfg.LatencyThresholdMS = 1
	m := newTestManager(cfg)
	authPrefix := AuthHashPrefix(ServerDef{})

	secondary := registerFakeConnection(t, m, authPrefix+"secondary", TypeSecondary, 500, nil)
	registerFakeConnection(t, m, authPrefix+"primary", TypePrimary, 1, nil)

	list := &ServerList{Preference: ReadPreference{Type: SecondaryPreferred}}
	got, err := selectCandidate(m, list, authPrefix)
	require.NoError(t, err)
	assert.Same(t, secondary, got, "SecondaryPreferred must prefer an available secondary over a faster primary")
}

func TestSelectCandidateSecondaryPreferredFallsBackToPrimary(t *testing.T) {
	cfg := testConfig()
	m := newTestManager(cfg)
	authPrefix := AuthHashPrefix(ServerDef{})

	primary := registerFakeConnection(t, m, authPrefix+"primary", TypePrimary, 1, nil)

	list := &ServerList{Preference: ReadPreference{Type: SecondaryPreferred}}
	got, err := selectCandidate(m, list, authPrefix)
	require.NoError(t, err)
	assert.Same(t, primary, got, "SecondaryPreferred must fall back to the primary when no secondary survived")
}

func TestSelectCandidateTagSetFallsThroughToNextSet(t *testing.T) {
	cfg := testConfig()
	m := newTestManager(cfg)
	authPrefix := AuthHashPrefix(ServerDef{})

	east := registerFakeConnection(t, m, authPrefix+"east", TypeSecondary, 1, map[string]string{"region": "east"})

	list := &ServerList{
		Preference: ReadPreference{
			Type: Secondary,
			TagSets: []TagSet{
				{"region": "west"},
				{"region": "east"},
			},
		},
	}
	got, err := selectCandidate(m, list, authPrefix)
	require.NoError(t, err)
	assert.Same(t, east, got, "the first tag set with a surviving candidate must win")
}

func TestSelectCandidateNoCandidatesIsNoCandidateServers(t *testing.T) {
	cfg := testConfig()
	m := newTestManager(cfg)
	list := &ServerList{Preference: ReadPreference{Type: Primary}}
	_, err := selectCandidate(m, list, AuthHashPrefix(ServerDef{}))
	assert.ErrorIs(t, err, ErrNoCandidateServers)
}
