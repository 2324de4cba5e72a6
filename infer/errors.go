package infer

import (
	"fmt"

	"github.com/pylint-dev/astroid/nodes"
)

// InferenceError reports a violated structural precondition: a nil
// node, or a name with no enclosing scope at all. It is the only
// failure that crosses the public Infer boundary; every other
// ambiguity degrades to Unresolved values instead.
type InferenceError struct {
	Node    nodes.Node
	Message string
}

func (e *InferenceError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("inference error at %s: %s", e.Node.GetSpan(), e.Message)
	}
	return "inference error: " + e.Message
}

// BindErrorKind classifies call-binding failures.
type BindErrorKind int

const (
	// InvalidArguments is an arity mismatch: more positional arguments
	// than a non-variadic callable declares.
	InvalidArguments BindErrorKind = iota
	// InvalidKeywords is an unknown keyword name, or a keyword
	// duplicated across explicit and double-starred arguments.
	InvalidKeywords
)

func (k BindErrorKind) String() string {
	if k == InvalidArguments {
		return "invalid arguments"
	}
	return "invalid keywords"
}

// BindError reports that a call site cannot be matched against a
// callable's declared parameters. The engine catches it internally and
// degrades the affected parameters to Unresolved; it never aborts a
// whole call's inference.
type BindError struct {
	Kind     BindErrorKind
	Callable string // function name, or "lambda"
	Name     string // offending parameter or keyword name, may be empty
}

func (e *BindError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("cannot bind call to %s: %s (%s)", e.Callable, e.Kind, e.Name)
	}
	return fmt.Sprintf("cannot bind call to %s: %s", e.Callable, e.Kind)
}

// errNoBinding marks a parameter the call site simply does not supply;
// distinct from the user-visible BindError kinds.
type errNoBinding struct{ name string }

func (e errNoBinding) Error() string { return "no binding for parameter " + e.name }
