//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on the teacher package's compose.go idea of small, named
// sequential stages, applied here to spec.md §4.F's four-phase pipeline:
// filter, sort, truncate, pick.
//

package mongoconn

import (
	"math/rand/v2"
	"sort"
)

// candidate is one connection still in the running.
type candidate struct {
	conn *Connection
}

// selectCandidate is component F, spec.md §4.F: from every connection
// currently registered, pick one that satisfies list.Preference, or
// [ErrNoCandidateServers] if none survive.
//
// Phase 1 (filter) keeps only connections whose hash begins with
// authPrefix (so pools for different credentials never cross-contaminate;
// the prefix is shared by every server reached with the same credentials)
// and whose reported role
// is compatible with the requested preference; phase 2 (sort) orders
// survivors by PingMS ascending; phase 3 (truncate) keeps only the window
// within threshold milliseconds of the lowest latency seen; phase 4
// (pick) returns one truncated survivor at random.
func selectCandidate(m *Manager, list *ServerList, authPrefix string) (*Connection, error) {
	survivors := filterCandidates(m, list, authPrefix)
	if len(survivors) == 0 {
		return nil, ErrNoCandidateServers
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].conn.PingMS < survivors[j].conn.PingMS
	})

	survivors = truncateByLatency(survivors, list.Preference.Type, m.latencyThreshold(list))
	if len(survivors) == 0 {
		return nil, ErrNoCandidateServers
	}

	return survivors[rand.N(len(survivors))].conn, nil
}

// filterCandidates is phase 1: auth-hash-prefix match, role compatibility,
// and tag-set matching. Per spec.md §4.F, the first tag set (in order)
// with at least one surviving connection wins; an empty TagSets list
// matches everything and skips tag filtering entirely.
func filterCandidates(m *Manager, list *ServerList, authPrefix string) []candidate {
	var roleMatched []candidate
	m.registry.Each(func(c *Connection) {
		if len(c.Hash) < len(authPrefix) || c.Hash[:len(authPrefix)] != authPrefix {
			return
		}
		if !roleCompatible(c.ConnectionType, list.Preference.Type) {
			return
		}
		roleMatched = append(roleMatched, candidate{conn: c})
	})

	if len(list.Preference.TagSets) == 0 {
		return roleMatched
	}

	for _, ts := range list.Preference.TagSets {
		var matched []candidate
		for _, cand := range roleMatched {
			if ts.Matches(cand.conn.Tags) {
				matched = append(matched, cand)
			}
		}
		if len(matched) > 0 {
			return matched
		}
	}
	return nil
}

// roleCompatible reports whether a connection reporting role t may satisfy
// preference p, per spec.md §4.F phase 1's role-compatibility table.
func roleCompatible(t ConnectionType, p PreferenceType) bool {
	switch p {
	case Primary:
		return t == TypePrimary
	case PrimaryPreferred:
		return t == TypePrimary || t == TypeSecondary
	case Secondary:
		return t == TypeSecondary
	case SecondaryPreferred:
		return t == TypeSecondary || t == TypePrimary
	case Nearest:
		return t == TypePrimary || t == TypeSecondary || t == TypeStandalone || t == TypeMongos
	default:
		return false
	}
}

// truncateByLatency is phase 3: keep only candidates within thresholdMS of
// the fastest one. survivors must already be sorted ascending by PingMS.
//
// PrimaryPreferred and SecondaryPreferred are special-cased per spec.md
// §4.F phase 3: "preferred" means "use it unless it is altogether
// unavailable", not "use it only if fastest". PrimaryPreferred keeps the
// primary alone, regardless of latency, whenever one survived filtering.
// SecondaryPreferred is dual: it keeps the truncated window of secondaries
// alone whenever at least one survived, falling back to the primary only
// when no secondary is present.
func truncateByLatency(survivors []candidate, pref PreferenceType, thresholdMS int) []candidate {
	switch pref {
	case PrimaryPreferred:
		if primary, ok := findByType(survivors, TypePrimary); ok {
			return []candidate{primary}
		}
	case SecondaryPreferred:
		secondaries := filterByType(survivors, TypeSecondary)
		if len(secondaries) > 0 {
			return truncateWindow(secondaries, thresholdMS)
		}
		if primary, ok := findByType(survivors, TypePrimary); ok {
			return []candidate{primary}
		}
	}

	return truncateWindow(survivors, thresholdMS)
}

// findByType returns the first survivor reporting role t.
func findByType(survivors []candidate, t ConnectionType) (candidate, bool) {
	for _, cand := range survivors {
		if cand.conn.ConnectionType == t {
			return cand, true
		}
	}
	return candidate{}, false
}

// filterByType returns every survivor reporting role t, preserving order
// (and therefore the ascending-PingMS sort already applied by the caller).
func filterByType(survivors []candidate, t ConnectionType) []candidate {
	var out []candidate
	for _, cand := range survivors {
		if cand.conn.ConnectionType == t {
			out = append(out, cand)
		}
	}
	return out
}

// truncateWindow keeps only the prefix of survivors within thresholdMS of
// the fastest one. survivors must already be sorted ascending by PingMS.
func truncateWindow(survivors []candidate, thresholdMS int) []candidate {
	min := survivors[0].conn.PingMS
	cutoff := min + float64(thresholdMS)
	i := 0
	for ; i < len(survivors); i++ {
		if survivors[i].conn.PingMS > cutoff {
			break
		}
	}
	return survivors[:i]
}
