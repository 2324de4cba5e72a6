// Package scope implements name lookup over the node tree: given a
// name and a position, it finds the enclosing scopes that bind the name
// and returns the candidate binding statements in control-flow order.
//
// The source language's runtime scoping rules are the specification of
// record here; the carve-outs (class bodies invisible to nested
// functions, comprehension first iterables evaluated outside, global
// and nonlocal redirection) are enumerated explicitly rather than
// derived.
package scope

import (
	"github.com/pylint-dev/astroid/nodes"
)

// ScopeOf returns the scope a node's name lookups start from. This is
// usually the nearest enclosing scope, with the language's attribution
// carve-outs applied:
//
//   - the first iterable of a comprehension evaluates in the scope
//     enclosing the comprehension;
//   - parameter defaults, decorators, base classes and class keywords
//     evaluate in the scope enclosing their def or class.
func ScopeOf(n nodes.Node) nodes.ScopeNode {
	if m, ok := n.(*nodes.Module); ok {
		return m
	}
	if _, ok := n.(nodes.ScopeNode); ok {
		// A scope node itself (a def, class or lambda appearing as an
		// expression or binding) resolves names in its enclosing scope.
		return nodes.EnclosingScope(n)
	}
	s := nodes.EnclosingScope(n)
	if s == nil {
		return nil
	}
	// Find the direct child of s that n sits under.
	top := n
	for top.Parent() != nil && top.Parent() != nodes.Node(s) {
		top = top.Parent()
	}
	switch s := s.(type) {
	case *nodes.Comprehension:
		if len(s.Clauses) > 0 && top == s.Clauses[0].Iter {
			return nodes.EnclosingScope(s)
		}
	case *nodes.FunctionDef:
		if top == nodes.Node(s.Args) && !inParamBody(n) {
			return nodes.EnclosingScope(s)
		}
		for _, d := range s.Decorators {
			if top == d {
				return nodes.EnclosingScope(s)
			}
		}
	case *nodes.Lambda:
		if top == nodes.Node(s.Args) && !inParamBody(n) {
			return nodes.EnclosingScope(s)
		}
	case *nodes.ClassDef:
		for _, b := range s.Bases {
			if top == b {
				return nodes.EnclosingScope(s)
			}
		}
		for _, d := range s.Decorators {
			if top == d {
				return nodes.EnclosingScope(s)
			}
		}
		for _, kw := range s.Keywords {
			if top == nodes.Node(kw) {
				return nodes.EnclosingScope(s)
			}
		}
	}
	return s
}

// inParamBody reports whether n is a Param node itself rather than an
// expression inside a default value. Param names belong to the
// function's scope; default values do not.
func inParamBody(n nodes.Node) bool {
	_, ok := n.(*nodes.Param)
	return ok
}

// Lookup walks from the given scope outward and returns the binding
// nodes for name visible at the position of from, in control-flow
// order. A nil from disables position filtering. The result is empty,
// never an error, when nothing binds the name.
func Lookup(s nodes.ScopeNode, name string, from nodes.Node) []nodes.Node {
	start := s
	for cur := s; cur != nil; {
		// Global and nonlocal declarations redirect the rest of the
		// lookup past any intervening scopes.
		if _, isModule := cur.(*nodes.Module); !isModule {
			if cur.DeclaresGlobal(name) {
				if m := nodes.ModuleOf(cur); m != nil {
					return filterBindings(m, m.LocalsOf(name), from)
				}
			}
			if cur.DeclaresNonlocal(name) {
				if fn := enclosingFunction(cur); fn != nil {
					cur = fn
					continue
				}
			}
		}
		// Class-body locals are invisible to scopes nested inside the
		// class; only lookups starting in the class body itself see them.
		if _, isClass := cur.(*nodes.ClassDef); isClass && cur != start {
			cur = nodes.EnclosingScope(cur)
			continue
		}
		if bindings := cur.LocalsOf(name); len(bindings) > 0 {
			// The name is local to this scope. A use before any
			// reachable binding is undefined, not an outer-scope
			// reference.
			return filterBindings(cur, bindings, from)
		}
		cur = nodes.EnclosingScope(cur)
	}
	return nil
}

// LookupName resolves a load-position Name from its own location.
func LookupName(n *nodes.Name) []nodes.Node {
	s := ScopeOf(n)
	if s == nil {
		return nil
	}
	return Lookup(s, n.Name, n)
}

func enclosingFunction(s nodes.ScopeNode) nodes.ScopeNode {
	for cur := nodes.EnclosingScope(s); cur != nil; cur = nodes.EnclosingScope(cur) {
		switch cur.(type) {
		case *nodes.FunctionDef, *nodes.Lambda:
			return cur
		case *nodes.Module:
			return nil
		}
	}
	return nil
}

// filterBindings keeps the bindings that can reach the use position
// along some control-flow path: bindings textually after the use are
// dropped (unless the use sits in a nested frame, which executes
// later), and an unconditional rebinding shadows everything before it
// while conditional ones accumulate.
func filterBindings(s nodes.ScopeNode, bindings []nodes.Node, from nodes.Node) []nodes.Node {
	usePos := -1
	if from != nil && nodes.EnclosingScope(from) == s {
		usePos = from.GetSpan().Start.Offset
	}
	var out []nodes.Node
	for _, b := range bindings {
		if usePos >= 0 && b.GetSpan().Start.Offset > usePos {
			continue
		}
		if !isConditional(b, s) {
			out = out[:0]
		}
		out = append(out, b)
	}
	return out
}

// isConditional reports whether the binding executes under a branch or
// loop relative to its scope body.
func isConditional(b nodes.Node, s nodes.ScopeNode) bool {
	for cur := b.Parent(); cur != nil && cur != nodes.Node(s); cur = cur.Parent() {
		switch cur.(type) {
		case *nodes.If, *nodes.For, *nodes.While, *nodes.Try, *nodes.ExceptHandler:
			return true
		}
	}
	return false
}
