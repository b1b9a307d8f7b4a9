//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on the teacher package's compose.go Func-composition idiom
// (small, explicitly sequenced steps), applied to the index-based loop
// spec.md §4.E and §9 require — not a range-based/snapshot iterator, since
// spec.md §9 explicitly warns that a snapshot iterator would miss hosts
// discovered mid-loop.
//

package mongoconn

import (
	"context"
	"net"
	"strconv"
)

// discover is component E, spec.md §4.E: expand list.Servers to every
// member the cluster reports, starting from the servers already present
// (which must include at least one successfully-acquired seed).
//
// The loop bound is captured at entry and re-read on each iteration, so
// hosts appended by an earlier iteration are themselves probed within the
// same call — this is the one place in the package where a range-style
// loop would be wrong.
//
// Per spec.md §9's Open Question (decided in DESIGN.md): a discovered
// server that later fails to respond is removed from the registry but
// stays in list.Servers forever; there is no eviction path for the list
// itself, only for the registry. Selection naturally ignores connections
// no longer in the registry.
func discover(ctx context.Context, m *Manager, list *ServerList, span string) {
	for i := 0; i < len(list.Servers); i++ {
		def := list.Servers[i]
		c, ok := m.registry.Find(Hash(def))
		if !ok {
			m.logFunc(ModuleDiscovery, LevelWarn, span, "discovery: seed %s:%d has no live connection, skipping", def.Host, def.Port)
			continue
		}

		result, report, err := c.isMaster(ctx, list.ReplicaSetName)
		if err != nil {
			// ismaster failure is never fatal to the whole acquisition
			// (spec.md §7, item 4): deregister this seed and move on.
			m.logFunc(ModuleDiscovery, LevelWarn, span, "discovery: ismaster %s:%d failed: %v", def.Host, def.Port, err)
			m.registry.Deregister(c)
			continue
		}

		switch result {
		case IsMasterError:
			m.registry.Deregister(c)
			continue
		case IsMasterSkipped:
			continue
		case IsMasterRemoveSeed:
			// The ismaster payload is still usable for discovery even
			// though this connection must be deregistered — deregister
			// first, then fall through into the Ok expansion logic
			// (spec.md §9's "Fall-through between discovery result
			// codes" design note).
			m.registry.Deregister(c)
			fallthrough
		case IsMasterOk:
			expandHosts(ctx, m, list, def, report.Hosts, span)
		}
	}
}

// expandHosts processes one ismaster payload's host list: for every
// host:port not already known to the registry, it attempts a
// write-capable single-acquire and, on success, appends the new
// definition to list.Servers so it is itself probed by a later iteration
// of discover's loop.
func expandHosts(ctx context.Context, m *Manager, list *ServerList, seed ServerDef, hosts []string, span string) {
	for _, hostPort := range hosts {
		def, ok := cloneCredentials(seed, hostPort)
		if !ok {
			m.logFunc(ModuleDiscovery, LevelWarn, span, "discovery: malformed host %q reported by %s:%d", hostPort, seed.Host, seed.Port)
			continue
		}

		if _, exists := m.registry.Find(Hash(def)); exists {
			continue // already known; discard the duplicate definition
		}

		if _, err := acquireSingle(ctx, m, def, FlagWrite, span); err != nil {
			m.logFunc(ModuleDiscovery, LevelWarn, span, "discovery: could not reach discovered member %s: %v", hostPort, err)
			continue
		}
		list.Servers = append(list.Servers, def)
	}
}

// cloneCredentials builds a ServerDef for hostPort, inheriting db/username/
// password from seed, per spec.md §3: "Discovered definitions inherit
// db/username/password from the seed that discovered them."
func cloneCredentials(seed ServerDef, hostPort string) (ServerDef, bool) {
	host, portStr, err := net.SplitHostPort(hostPort)
	if err != nil {
		return ServerDef{}, false
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return ServerDef{}, false
	}
	return ServerDef{
		Host:     host,
		Port:     port,
		DB:       seed.DB,
		Username: seed.Username,
		Password: seed.Password,
	}, true
}
