package infer

import "github.com/pylint-dev/astroid/nodes"

// pathKey identifies one step of an inference walk: the node being
// inferred and the name it was reached under. The same node may appear
// on the path twice under different names without forming a cycle.
type pathKey struct {
	node nodes.Node
	name string
}

// Context carries the per-request state of one inference walk: the
// cycle-guard path, the name the current node was reached under, the
// call being analyzed, the bound receiver, and a memoization cache.
// A fresh context starts every top-level request; the engine clones it
// at branch points.
type Context struct {
	// LookupName is the name under which the current node was reached,
	// empty when inference started from the node directly.
	LookupName string
	// Call is the call whose parameters are being bound, nil outside of
	// call analysis.
	Call *CallContext
	// Bound is the receiver value when inferring inside a method body
	// reached through an instance or class attribute.
	Bound Value
	// Extra pins specific nodes to fixed values, bypassing inference.
	Extra map[nodes.Node][]Value

	path  map[pathKey]struct{}
	cache map[pathKey][]Value
	depth int
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		path:  make(map[pathKey]struct{}),
		cache: make(map[pathKey][]Value),
	}
}

// Clone branches the context. The visited path is shared, the cycle
// guard must see the whole walk regardless of branching; call state and
// the memoization cache are isolated so sibling branches do not leak
// arguments or partial results into one another.
func (c *Context) Clone() *Context {
	return &Context{
		LookupName: c.LookupName,
		Call:       c.Call,
		Bound:      c.Bound,
		Extra:      c.Extra,
		path:       c.path,
		cache:      make(map[pathKey][]Value),
		depth:      c.depth,
	}
}

// push marks k as active on the walk. It reports false when k is
// already active, which means the walk has cycled.
func (c *Context) push(k pathKey) bool {
	if _, seen := c.path[k]; seen {
		return false
	}
	c.path[k] = struct{}{}
	return true
}

func (c *Context) pop(k pathKey) { delete(c.path, k) }

func (c *Context) cached(k pathKey) ([]Value, bool) {
	vals, ok := c.cache[k]
	return vals, ok
}

func (c *Context) memoize(k pathKey, vals []Value) { c.cache[k] = vals }
