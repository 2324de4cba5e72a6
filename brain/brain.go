// Package brain is the transform registry: an ordered set of
// (predicate, rewrite-or-inference-override) entries that extend the
// analysis without modifying the core node types. Entries come in two
// phases. Transforms rewrite freshly built trees once at build time;
// tips override default inference and are consulted by the engine
// before its per-kind rules.
//
// The registry is an explicit object handed to the engine and the
// module manager at construction. Registration happens at process
// setup, before any inference request begins; there is no
// unregistration. The registry is purely additive: base language
// semantics never depend on it.
package brain

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/pylint-dev/astroid/nodes"
)

// Predicate decides whether an entry applies to a node.
type Predicate func(nodes.Node) bool

// Transform rewrites a node at build time. Returning nil keeps the
// original node; returning a replacement substitutes it in the tree.
type Transform func(nodes.Node) nodes.Node

// Result is one value produced by an inference override. The engine's
// value types and the node types all satisfy it.
type Result interface {
	String() string
}

// Tip overrides inference for a matched node. The boolean reports
// whether the tip handled the node; a false return falls through to
// the next entry and ultimately to default inference.
type Tip func(nodes.Node) ([]Result, bool)

type entry struct {
	name       string
	pred       Predicate
	transform  Transform
	tip        Tip
	pkg        string
	constraint *semver.Constraints
}

// Registry holds the registered entries in registration order.
type Registry struct {
	transforms []entry
	tips       []entry
	versions   map[string]*semver.Version
	disabled   map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		versions: make(map[string]*semver.Version),
		disabled: make(map[string]bool),
	}
}

// KnownVersion records the version of a modeled library. Entries gated
// on that library fire only when their constraint matches.
func (r *Registry) KnownVersion(pkg, version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("brain: invalid version %q for %s: %w", version, pkg, err)
	}
	r.versions[pkg] = v
	return nil
}

// Disable deactivates all entries registered under name.
func (r *Registry) Disable(name string) { r.disabled[name] = true }

// Register adds a build-phase transform entry.
func (r *Registry) Register(name string, pred Predicate, t Transform) {
	r.transforms = append(r.transforms, entry{name: name, pred: pred, transform: t})
}

// RegisterFor adds a build-phase transform gated on a library version
// constraint, e.g. RegisterFor("six-compat", "six", "< 2.0.0", ...).
func (r *Registry) RegisterFor(name, pkg, constraint string, pred Predicate, t Transform) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("brain: invalid constraint %q: %w", constraint, err)
	}
	r.transforms = append(r.transforms, entry{name: name, pred: pred, transform: t, pkg: pkg, constraint: c})
	return nil
}

// RegisterTip adds an inference override entry.
func (r *Registry) RegisterTip(name string, pred Predicate, tip Tip) {
	r.tips = append(r.tips, entry{name: name, pred: pred, tip: tip})
}

// RegisterTipFor adds an inference override gated on a library version
// constraint.
func (r *Registry) RegisterTipFor(name, pkg, constraint string, pred Predicate, tip Tip) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("brain: invalid constraint %q: %w", constraint, err)
	}
	r.tips = append(r.tips, entry{name: name, pred: pred, tip: tip, pkg: pkg, constraint: c})
	return nil
}

func (r *Registry) active(e entry) bool {
	if r.disabled[e.name] {
		return false
	}
	if e.constraint == nil {
		return true
	}
	v, ok := r.versions[e.pkg]
	return ok && e.constraint.Check(v)
}

// Transform returns the replacement for n from the first matching
// active transform entry, or nil when no entry rewrites it.
func (r *Registry) Transform(n nodes.Node) nodes.Node {
	for _, e := range r.transforms {
		if e.transform == nil || !r.active(e) || !e.pred(n) {
			continue
		}
		if replacement := e.transform(n); replacement != nil {
			return replacement
		}
		return nil // first match wins, even when it keeps the node
	}
	return nil
}

// Tip returns the inference override produced by the first matching
// active tip entry that handles n.
func (r *Registry) Tip(n nodes.Node) ([]Result, bool) {
	for _, e := range r.tips {
		if e.tip == nil || !r.active(e) || !e.pred(n) {
			continue
		}
		if results, ok := e.tip(n); ok {
			return results, true
		}
	}
	return nil, false
}

// KindIs returns a predicate matching nodes of the given kind.
func KindIs(k nodes.NodeKind) Predicate {
	return func(n nodes.Node) bool { return n.Kind() == k }
}

// CallTo returns a predicate matching call expressions whose callee is
// a plain name, the usual shape brains hook.
func CallTo(name string) Predicate {
	return func(n nodes.Node) bool {
		call, ok := n.(*nodes.Call)
		if !ok {
			return false
		}
		callee, ok := call.Func.(*nodes.Name)
		return ok && callee.Name == name
	}
}
