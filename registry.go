// SPDX-License-Identifier: GPL-3.0-or-later

package mongoconn

// Registry is a process-scoped mapping from identity hash to live
// connection (spec.md §4.C). The source this package is modeled on used a
// hand-rolled singly-linked list with linear scans; spec.md §9's design
// note calls that acceptable at cluster scale but recommends a hash map
// keyed by the identity string with insertion order kept externally for
// deterministic iteration — that is what Registry does.
//
// Invariant: every hash in the Registry is unique; each *Connection
// appears in exactly one entry. A Registry is not safe for concurrent use,
// consistent with the rest of this package's synchronous, single-threaded
// model (spec.md §5).
type Registry struct {
	byHash map[string]*Connection
	order  []string // insertion order, for deterministic iteration
}

// NewRegistry returns an empty *Registry.
func NewRegistry() *Registry {
	return &Registry{byHash: make(map[string]*Connection)}
}

// Find returns the connection registered under hash, or (nil, false).
func (r *Registry) Find(hash string) (*Connection, bool) {
	c, ok := r.byHash[hash]
	return c, ok
}

// Register appends c to the registry. It is an error to register a
// connection whose hash already has an entry; callers are expected to
// guarantee this via a prior [Registry.Find], per spec.md §4.C.
func (r *Registry) Register(c *Connection) error {
	if _, exists := r.byHash[c.Hash]; exists {
		return errAlreadyRegistered
	}
	r.byHash[c.Hash] = c
	r.order = append(r.order, c.Hash)
	return nil
}

// Deregister locates c by hash, unlinks it, destroys it, and frees the
// entry. It reports whether an entry was actually removed.
func (r *Registry) Deregister(c *Connection) bool {
	if c == nil {
		return false
	}
	if _, exists := r.byHash[c.Hash]; !exists {
		return false
	}
	delete(r.byHash, c.Hash)
	for i, h := range r.order {
		if h == c.Hash {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	c.destroy()
	return true
}

// Each calls fn for every registered connection, in insertion order. fn
// must not register or deregister connections while iterating.
func (r *Registry) Each(fn func(*Connection)) {
	for _, h := range r.order {
		if c, ok := r.byHash[h]; ok {
			fn(c)
		}
	}
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	return len(r.order)
}

// teardown destroys every registered connection, in forward (insertion)
// order, and empties the registry. Used by [*Manager.Deinit]. Unlike the
// source this package is modeled on — which recurses down a linked list's
// next pointer — this iterates, so teardown of a large cluster cannot blow
// the stack (spec.md §9's "Recursive teardown" design note).
func (r *Registry) teardown() {
	for _, h := range r.order {
		if c, ok := r.byHash[h]; ok {
			c.destroy()
		}
	}
	r.byHash = make(map[string]*Connection)
	r.order = nil
}

var errAlreadyRegistered = &registryError{"hash already registered"}

type registryError struct{ msg string }

func (e *registryError) Error() string { return e.msg }
