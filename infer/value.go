// Package infer implements the inference engine: given a node and a
// context, it produces a lazy, cycle-guarded sequence of candidate
// values for that node. The engine never executes code and never
// guarantees soundness; when analysis cannot determine a result it
// yields the Unresolved sentinel instead of failing.
package infer

import (
	"fmt"

	"github.com/pylint-dev/astroid/nodes"
)

// Value is one candidate result of inference: an AST node standing in
// for its own constant or collection value, an Instance, a class
// definition, a bound method, or the Unresolved sentinel.
type Value interface {
	String() string
}

type unresolvedType struct{}

func (unresolvedType) String() string { return "Unresolved" }

// Unresolved is the sentinel meaning "analysis cannot determine this".
// It is never equal to any real value, and every operation composing
// with it yields Unresolved again rather than erroring.
var Unresolved Value = unresolvedType{}

// IsUnresolved reports whether v is the Unresolved sentinel.
func IsUnresolved(v Value) bool {
	_, ok := v.(unresolvedType)
	return ok
}

// Instance is a class bound as a runtime object: the result of calling
// a class.
type Instance struct {
	Class *nodes.ClassDef
}

func (i *Instance) String() string { return fmt.Sprintf("instance of %s", i.Class.Name) }

// BoundMethod is a function retrieved through an instance or class
// attribute; calling it binds Receiver to the first parameter.
type BoundMethod struct {
	Func     *nodes.FunctionDef
	Receiver Value
}

func (m *BoundMethod) String() string { return fmt.Sprintf("bound method %s", m.Func.Name) }
