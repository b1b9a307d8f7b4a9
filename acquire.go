//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Grounded on the teacher package's connect.go + cancelwatch.go: a small,
// explicitly-sequenced pipeline (dial, then optionally authenticate, then
// ping, then hand off ownership) where any step's failure destroys the
// just-created resource before returning.
//

package mongoconn

import "context"

// acquireSingle is component D, spec.md §4.D: given one server definition,
// find-or-create a connection, authenticate it if credentials are present,
// ping it, and register it.
//
//  1. Compute hash.
//  2. Look up in registry.
//  3. If present: ping (respecting interval); on ping failure deregister
//     and fail.
//  4. If absent and FlagDontConnect is set: return (nil, nil) — not an
//     error.
//  5. Otherwise: create, then (if credentials present) authenticate, then
//     ping, then register. Any step's failure destroys the just-created
//     connection and fails the acquire.
func acquireSingle(ctx context.Context, m *Manager, def ServerDef, flags Flags, span string) (*Connection, error) {
	hash := Hash(def)

	if c, ok := m.registry.Find(hash); ok {
		if err := c.ping(ctx); err != nil {
			m.registry.Deregister(c)
			return nil, err
		}
		return c, nil
	}

	if flags.Has(FlagDontConnect) {
		return nil, nil
	}

	c, err := createConnection(ctx, m.cfg, def, m.logFunc, span)
	if err != nil {
		return nil, err
	}

	if def.HasCredentials() {
		if err := c.authenticate(ctx); err != nil {
			c.destroy()
			return nil, err
		}
	}

	if err := c.ping(ctx); err != nil {
		c.destroy()
		return nil, err
	}

	if err := m.registry.Register(c); err != nil {
		c.destroy()
		return nil, err
	}

	return c, nil
}
