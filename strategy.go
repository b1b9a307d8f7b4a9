//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on the teacher package's compose.go idiom of gluing small
// sequenced stages into one entry point, applied to spec.md §4.G's
// dispatch between the Standalone/Multiple and ReplicaSet strategies.
//

package mongoconn

import (
	"context"
	"errors"
)

// GetReadWriteConnection is the package's single public entry point
// (spec.md §6), implementing component G. It acquires (creating
// connections as needed) and selects one connection satisfying
// list.Preference, dispatching on list.Type:
//
//   - Standalone, Multiple: every server in list.Servers is acquired
//     directly and probed once with ismaster to learn its role, with no
//     topology discovery; selection is forced to
//     [Nearest] (tag sets are still honored) since neither deployment
//     shape has a primary/secondary distinction to prefer between.
//   - ReplicaSet: at least one seed must be reachable, after which
//     [discover] expands list.Servers to the full reported membership.
//     [FlagWrite] forces selection to [Primary], overriding whatever
//     list.Preference.Type the caller declared, since writes always
//     target the primary.
//
// An unrecognized list.Type yields [ErrUnknownConnectionType]. Any other
// failure yields [ErrNoCandidateServers], except that for Standalone/Multiple,
// when at least one seed failed, the error is instead a composite of the
// per-seed error messages, which does not match [ErrNoCandidateServers]
// (spec.md §7); a ReplicaSet's per-seed errors are never surfaced, since a
// replica set is expected to tolerate some seeds being unreachable.
func (m *Manager) GetReadWriteConnection(ctx context.Context, list *ServerList, flags Flags) (*Connection, error) {
	switch list.Type {
	case Standalone, Multiple:
		return m.acquireStandaloneOrMultiple(ctx, list, flags)
	case ReplicaSet:
		return m.acquireReplicaSet(ctx, list, flags)
	default:
		return nil, ErrUnknownConnectionType
	}
}

// acquireStandaloneOrMultiple implements the non-discovering half of
// spec.md §4.G: acquire every declared server directly and learn its role
// through ismaster (a server whose ismaster fails is deregistered and
// counted as a seed error), then select among whichever of them are now
// registered, forcing [Nearest].
func (m *Manager) acquireStandaloneOrMultiple(ctx context.Context, list *ServerList, flags Flags) (*Connection, error) {
	if len(list.Servers) == 0 {
		return nil, ErrNoCandidateServers
	}

	span := NewSpanID()
	var errs seedErrors
	reachedAny := false
	for _, def := range list.Servers {
		c, err := acquireSingle(ctx, m, def, flags, span)
		if err != nil {
			errs.add(def, err)
			continue
		}
		if c == nil {
			continue
		}
		// Learn the server's role: selection never matches a connection
		// whose ConnectionType is still Unknown.
		if result, _, err := c.isMaster(ctx, list.ReplicaSetName); err != nil || result == IsMasterError {
			m.registry.Deregister(c)
			if err == nil {
				err = errors.New("ismaster failed")
			}
			errs.add(def, err)
			continue
		}
		reachedAny = true
	}

	// spec.md §4.G / §8: DONT_CONNECT with no reachable (already-registered)
	// seed returns none without running selection, not an error.
	if flags.Has(FlagDontConnect) && !reachedAny {
		return nil, nil
	}

	forced := *list
	forced.Preference = ReadPreference{Type: Nearest, TagSets: list.Preference.TagSets}

	authPrefix := AuthHashPrefix(list.Servers[0])
	c, err := selectCandidate(m, &forced, authPrefix)
	if err != nil {
		if !errs.empty() {
			return nil, errs.composite()
		}
		return nil, err
	}
	return c, nil
}

// acquireReplicaSet implements the discovering half of spec.md §4.G:
// acquire at least one seed, discover the full membership, then select,
// forcing [Primary] when [FlagWrite] is set.
func (m *Manager) acquireReplicaSet(ctx context.Context, list *ServerList, flags Flags) (*Connection, error) {
	if len(list.Servers) == 0 {
		return nil, ErrNoCandidateServers
	}

	span := NewSpanID()
	var errs seedErrors
	reachedAny := false
	for _, def := range list.Servers {
		c, err := acquireSingle(ctx, m, def, flags, span)
		if err != nil {
			errs.add(def, err)
			m.logFunc(ModuleAcquire, LevelWarn, span, "replica-set seed %s:%d unreachable: %v", def.Host, def.Port, err)
			continue
		}
		if c != nil {
			reachedAny = true
		}
	}

	// spec.md §4.G / §8: DONT_CONNECT with no reachable seed returns none
	// without running discovery or selection.
	if flags.Has(FlagDontConnect) && !reachedAny {
		return nil, nil
	}
	if !reachedAny {
		return nil, ErrNoCandidateServers
	}

	discover(ctx, m, list, span)

	pref := list.Preference
	if flags.Has(FlagWrite) {
		pref = ReadPreference{Type: Primary, TagSets: list.Preference.TagSets}
	}
	forced := *list
	forced.Preference = pref

	authPrefix := AuthHashPrefix(list.Servers[0])
	return selectCandidate(m, &forced, authPrefix)
}
