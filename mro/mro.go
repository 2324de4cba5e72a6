// Package mro computes the linear method resolution order of a class
// under multiple inheritance using C3 linearization. The merge is a
// pure function over adjacency lists: classes are interned into an
// index arena and the algorithm works on integer sequences, so node
// identity never leaks into the selection logic.
package mro

import (
	"fmt"

	"github.com/pylint-dev/astroid/nodes"
)

// ErrorKind classifies why a linearization failed.
type ErrorKind int

const (
	// InconsistentHierarchy means no valid linearization exists, e.g.
	// two bases demand contradictory orders.
	InconsistentHierarchy ErrorKind = iota
	// DuplicateBases means the same base appears twice in one base list.
	DuplicateBases
	// UnresolvableBase means a base expression did not resolve to a class.
	UnresolvableBase
)

func (k ErrorKind) String() string {
	switch k {
	case InconsistentHierarchy:
		return "inconsistent hierarchy"
	case DuplicateBases:
		return "duplicate bases"
	case UnresolvableBase:
		return "unresolvable base"
	default:
		return "unknown"
	}
}

// Error reports a failed linearization for a class.
type Error struct {
	Kind  ErrorKind
	Class *nodes.ClassDef
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot compute MRO of %s: %s", e.Class.QName(), e.Kind)
}

// BaseResolver resolves the base expressions of a class declaration to
// class definitions, in declaration order. The inference engine
// supplies one; tests may use a static table.
type BaseResolver func(*nodes.ClassDef) ([]*nodes.ClassDef, error)

// Resolver linearizes class hierarchies and caches the results. The
// hierarchy is immutable during an analysis run, so the cache is valid
// process-wide until Invalidate is called.
type Resolver struct {
	resolveBases BaseResolver
	cache        map[*nodes.ClassDef][]*nodes.ClassDef
	inProgress   map[*nodes.ClassDef]bool
}

// New creates a resolver using the given base resolution strategy.
func New(resolve BaseResolver) *Resolver {
	return &Resolver{
		resolveBases: resolve,
		cache:        make(map[*nodes.ClassDef][]*nodes.ClassDef),
		inProgress:   make(map[*nodes.ClassDef]bool),
	}
}

// Linearize returns the method resolution order of cls, starting with
// cls itself. Tie-breaking is strictly left-to-right by declaration
// order of the base list.
func (r *Resolver) Linearize(cls *nodes.ClassDef) ([]*nodes.ClassDef, error) {
	if cached, ok := r.cache[cls]; ok {
		return cached, nil
	}
	if r.inProgress[cls] {
		// A class reachable from its own bases has no linearization.
		return nil, &Error{Kind: InconsistentHierarchy, Class: cls}
	}
	r.inProgress[cls] = true
	defer delete(r.inProgress, cls)

	bases, err := r.resolveBases(cls)
	if err != nil {
		return nil, &Error{Kind: UnresolvableBase, Class: cls}
	}
	seen := make(map[*nodes.ClassDef]bool, len(bases))
	for _, b := range bases {
		if seen[b] {
			return nil, &Error{Kind: DuplicateBases, Class: cls}
		}
		seen[b] = true
	}

	// Merge input: the MRO of each base, then the base list itself.
	sequences := [][]*nodes.ClassDef{{cls}}
	for _, b := range bases {
		baseMRO, err := r.Linearize(b)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, baseMRO)
	}
	if len(bases) > 0 {
		sequences = append(sequences, bases)
	}

	result, ok := c3Merge(intern(sequences))
	if !ok {
		return nil, &Error{Kind: InconsistentHierarchy, Class: cls}
	}
	r.cache[cls] = result
	return result, nil
}

// Invalidate drops the cached linearization of cls, or the whole cache
// when cls is nil.
func (r *Resolver) Invalidate(cls *nodes.ClassDef) {
	if cls == nil {
		r.cache = make(map[*nodes.ClassDef][]*nodes.ClassDef)
		return
	}
	delete(r.cache, cls)
}

// arena maps classes to dense indices so the merge runs on integers.
type arena struct {
	classes []*nodes.ClassDef
	index   map[*nodes.ClassDef]int
	seqs    [][]int
}

func intern(sequences [][]*nodes.ClassDef) *arena {
	a := &arena{index: make(map[*nodes.ClassDef]int)}
	for _, seq := range sequences {
		ids := make([]int, len(seq))
		for i, c := range seq {
			id, ok := a.index[c]
			if !ok {
				id = len(a.classes)
				a.index[c] = id
				a.classes = append(a.classes, c)
			}
			ids[i] = id
		}
		a.seqs = append(a.seqs, ids)
	}
	return a
}

// c3Merge repeatedly selects the first head that appears in no other
// sequence's tail, scanning the sequences left to right so ties break
// by declaration order. It reports failure when no valid head exists.
func c3Merge(a *arena) ([]*nodes.ClassDef, bool) {
	seqs := a.seqs
	var result []*nodes.ClassDef
	for {
		live := seqs[:0]
		for _, s := range seqs {
			if len(s) > 0 {
				live = append(live, s)
			}
		}
		seqs = live
		if len(seqs) == 0 {
			return result, true
		}

		candidate := -1
		for _, s := range seqs {
			head := s[0]
			if inAnyTail(seqs, head) {
				continue
			}
			candidate = head
			break
		}
		if candidate < 0 {
			return nil, false
		}

		result = append(result, a.classes[candidate])
		for i, s := range seqs {
			if s[0] == candidate {
				seqs[i] = s[1:]
			}
		}
	}
}

func inAnyTail(seqs [][]int, id int) bool {
	for _, s := range seqs {
		for _, other := range s[1:] {
			if other == id {
				return true
			}
		}
	}
	return false
}
