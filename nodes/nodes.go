// Package nodes defines the abstract syntax tree for a dynamic,
// duck-typed source language. Nodes are typed records with source spans
// and non-owning parent back references; ownership flows strictly from
// parent to child, so the tree is acyclic by construction.
//
// The concrete-syntax parser is an external collaborator: it (or the
// Builder in this package) produces a finished tree which must be wired
// with Finalize before any lookup or inference runs against it.
package nodes

import (
	"fmt"
	"strings"

	"github.com/pylint-dev/astroid/position"
)

// NodeKind is the tag identifying a node's concrete type.
type NodeKind int

const (
	KindModule NodeKind = iota
	KindClassDef
	KindFunctionDef
	KindLambda
	KindComprehension

	KindArguments
	KindParam

	KindAssign
	KindAssignName
	KindAssignAttr
	KindIf
	KindFor
	KindWhile
	KindTry
	KindExceptHandler
	KindReturn
	KindGlobal
	KindNonlocal
	KindImport
	KindImportFrom
	KindExprStmt
	KindPass

	KindName
	KindConst
	KindBinOp
	KindUnaryOp
	KindBoolOp
	KindCompare
	KindCall
	KindKeyword
	KindStarred
	KindAttribute
	KindSubscript
	KindSlice
	KindIfExp
	KindList
	KindTuple
	KindDict
	KindSet
)

func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return "Module"
	case KindClassDef:
		return "ClassDef"
	case KindFunctionDef:
		return "FunctionDef"
	case KindLambda:
		return "Lambda"
	case KindComprehension:
		return "Comprehension"
	case KindArguments:
		return "Arguments"
	case KindParam:
		return "Param"
	case KindAssign:
		return "Assign"
	case KindAssignName:
		return "AssignName"
	case KindAssignAttr:
		return "AssignAttr"
	case KindIf:
		return "If"
	case KindFor:
		return "For"
	case KindWhile:
		return "While"
	case KindTry:
		return "Try"
	case KindExceptHandler:
		return "ExceptHandler"
	case KindReturn:
		return "Return"
	case KindGlobal:
		return "Global"
	case KindNonlocal:
		return "Nonlocal"
	case KindImport:
		return "Import"
	case KindImportFrom:
		return "ImportFrom"
	case KindExprStmt:
		return "ExprStmt"
	case KindPass:
		return "Pass"
	case KindName:
		return "Name"
	case KindConst:
		return "Const"
	case KindBinOp:
		return "BinOp"
	case KindUnaryOp:
		return "UnaryOp"
	case KindBoolOp:
		return "BoolOp"
	case KindCompare:
		return "Compare"
	case KindCall:
		return "Call"
	case KindKeyword:
		return "Keyword"
	case KindStarred:
		return "Starred"
	case KindAttribute:
		return "Attribute"
	case KindSubscript:
		return "Subscript"
	case KindSlice:
		return "Slice"
	case KindIfExp:
		return "IfExp"
	case KindList:
		return "List"
	case KindTuple:
		return "Tuple"
	case KindDict:
		return "Dict"
	case KindSet:
		return "Set"
	default:
		return "unknown"
	}
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Kind() NodeKind
	GetSpan() position.Span
	// Parent returns the owning node, nil for the tree root. The back
	// reference is non-owning and is wired by Finalize.
	Parent() Node
	SetParent(Node)
	String() string
}

// base carries the fields shared by every node.
type base struct {
	span   position.Span
	parent Node
}

func (b *base) GetSpan() position.Span { return b.span }
func (b *base) SetSpan(s position.Span) {
	b.span = s
}
func (b *base) Parent() Node      { return b.parent }
func (b *base) SetParent(p Node)  { b.parent = p }

// ===== Scope nodes =====

// scopeBase holds the ordered local bindings of a scope-owning node.
type scopeBase struct {
	base
	locals        map[string][]Node
	localOrder    []string
	globalNames   map[string]bool
	nonlocalNames map[string]bool
}

func (s *scopeBase) Locals() map[string][]Node { return s.locals }

// LocalsOf returns the binding nodes for name, in source order.
func (s *scopeBase) LocalsOf(name string) []Node { return s.locals[name] }

// AddLocal records a binding statement for name. Insertion order is
// source order; Finalize is the only expected caller.
func (s *scopeBase) AddLocal(name string, n Node) {
	if s.locals == nil {
		s.locals = make(map[string][]Node)
	}
	if _, seen := s.locals[name]; !seen {
		s.localOrder = append(s.localOrder, name)
	}
	s.locals[name] = append(s.locals[name], n)
}

// LocalNames returns the bound names in first-binding order.
func (s *scopeBase) LocalNames() []string { return s.localOrder }

// DeclaresGlobal reports whether the scope body contains a global
// statement for name.
func (s *scopeBase) DeclaresGlobal(name string) bool { return s.globalNames[name] }

func (s *scopeBase) markGlobal(name string) {
	if s.globalNames == nil {
		s.globalNames = make(map[string]bool)
	}
	s.globalNames[name] = true
}

// DeclaresNonlocal reports whether the scope body contains a nonlocal
// statement for name.
func (s *scopeBase) DeclaresNonlocal(name string) bool { return s.nonlocalNames[name] }

func (s *scopeBase) markNonlocal(name string) {
	if s.nonlocalNames == nil {
		s.nonlocalNames = make(map[string]bool)
	}
	s.nonlocalNames[name] = true
}

func (s *scopeBase) resetLocals() {
	s.locals = nil
	s.localOrder = nil
	s.globalNames = nil
	s.nonlocalNames = nil
}

// ScopeNode is implemented by the node kinds that own name bindings:
// Module, ClassDef, FunctionDef, Lambda and Comprehension.
type ScopeNode interface {
	Node
	ScopeName() string
	Locals() map[string][]Node
	LocalsOf(name string) []Node
	AddLocal(name string, n Node)
	LocalNames() []string
	DeclaresGlobal(name string) bool
	DeclaresNonlocal(name string) bool
	markGlobal(name string)
	markNonlocal(name string)
	resetLocals()
}

// Module is the root scope of one source file.
type Module struct {
	scopeBase
	Name string
	Body []Node
}

func (m *Module) Kind() NodeKind    { return KindModule }
func (m *Module) ScopeName() string { return m.Name }
func (m *Module) String() string    { return fmt.Sprintf("module %s", m.Name) }

// ClassDef is a class definition. Its body is a scope whose locals are
// the class attributes; Bases are the unresolved base expressions in
// declaration order.
type ClassDef struct {
	scopeBase
	Name       string
	Bases      []Node
	Keywords   []*Keyword
	Body       []Node
	Decorators []Node
}

func (c *ClassDef) Kind() NodeKind    { return KindClassDef }
func (c *ClassDef) ScopeName() string { return c.Name }
func (c *ClassDef) String() string    { return fmt.Sprintf("class %s", c.Name) }

// QName returns the dotted name of the class relative to its module.
func (c *ClassDef) QName() string {
	if m := ModuleOf(c); m != nil {
		return m.Name + "." + c.Name
	}
	return c.Name
}

// FunctionType classifies how a function is bound at lookup time.
type FunctionType int

const (
	FreeFunction FunctionType = iota
	Method
	ClassMethod
	StaticMethod
)

func (t FunctionType) String() string {
	switch t {
	case FreeFunction:
		return "function"
	case Method:
		return "method"
	case ClassMethod:
		return "classmethod"
	case StaticMethod:
		return "staticmethod"
	default:
		return "unknown"
	}
}

// FunctionDef is a named function or method definition.
type FunctionDef struct {
	scopeBase
	Name       string
	Args       *Arguments
	Body       []Node
	Decorators []Node
}

func (f *FunctionDef) Kind() NodeKind    { return KindFunctionDef }
func (f *FunctionDef) ScopeName() string { return f.Name }
func (f *FunctionDef) String() string    { return fmt.Sprintf("def %s", f.Name) }

// Type classifies the function by its position and decorators: a def
// directly inside a class body is a method unless decorated with
// staticmethod or classmethod.
func (f *FunctionDef) Type() FunctionType {
	for _, dec := range f.Decorators {
		if name, ok := dec.(*Name); ok {
			switch name.Name {
			case "staticmethod":
				return StaticMethod
			case "classmethod":
				return ClassMethod
			}
		}
	}
	if _, ok := f.Parent().(*ClassDef); ok {
		return Method
	}
	return FreeFunction
}

// Lambda is an anonymous function expression.
type Lambda struct {
	scopeBase
	Args *Arguments
	Body Node // single expression
}

func (l *Lambda) Kind() NodeKind    { return KindLambda }
func (l *Lambda) ScopeName() string { return "<lambda>" }
func (l *Lambda) String() string    { return "lambda" }

// CompFlavor distinguishes the comprehension forms.
type CompFlavor int

const (
	ListComp CompFlavor = iota
	SetComp
	DictComp
	GeneratorExp
)

// Comprehension is a list/set/dict comprehension or generator
// expression. It introduces its own scope; the iterable of the first
// clause is evaluated in the enclosing scope.
type Comprehension struct {
	scopeBase
	Flavor  CompFlavor
	Element Node  // element expression; for DictComp, a key:value pair via DictItem
	Key     Node  // DictComp only
	Clauses []*CompClause
}

func (c *Comprehension) Kind() NodeKind    { return KindComprehension }
func (c *Comprehension) ScopeName() string { return "<comprehension>" }
func (c *Comprehension) String() string    { return "comprehension" }

// CompClause is one "for target in iter [if cond]*" clause.
type CompClause struct {
	Target Node // AssignName or Tuple of AssignNames
	Iter   Node
	Ifs    []Node
}

// ===== Parameters =====

// Arguments describes the declared parameters of a callable.
type Arguments struct {
	base
	Params  []*Param // positional-or-keyword parameters, in order
	KwOnly  []*Param // keyword-only parameters
	Vararg  *Param   // *args parameter, nil if absent
	Kwarg   *Param   // **kwargs parameter, nil if absent
}

func (a *Arguments) Kind() NodeKind { return KindArguments }
func (a *Arguments) String() string {
	names := make([]string, 0, len(a.Params))
	for _, p := range a.Params {
		names = append(names, p.Name)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// Find returns the positional index of the named parameter and the
// parameter itself, or (-1, nil) when the callable does not declare it.
// Keyword-only parameters report index -1 but a non-nil parameter.
func (a *Arguments) Find(name string) (int, *Param) {
	for i, p := range a.Params {
		if p.Name == name {
			return i, p
		}
	}
	for _, p := range a.KwOnly {
		if p.Name == name {
			return -1, p
		}
	}
	return -1, nil
}

// Param is a single declared parameter. It is the binding node for the
// parameter name in the callable's scope.
type Param struct {
	base
	Name    string
	Default Node // nil when the parameter has no default
}

func (p *Param) Kind() NodeKind { return KindParam }
func (p *Param) String() string { return p.Name }

// ===== Statements =====

// Assign is "targets = value". Multiple targets model chained
// assignment (a = b = expr).
type Assign struct {
	base
	Targets []Node
	Value   Node
}

func (a *Assign) Kind() NodeKind { return KindAssign }
func (a *Assign) String() string { return "assign" }

// AssignName is a name appearing in a binding position. It is the node
// recorded in scope locals; its assigned value is recovered from the
// parent statement during inference.
type AssignName struct {
	base
	Name string
}

func (a *AssignName) Kind() NodeKind { return KindAssignName }
func (a *AssignName) String() string { return a.Name }

// AssignAttr is an attribute appearing in a binding position
// (obj.attr = value). Attribute bindings are not tracked in scope
// locals; they belong to the object, not the lexical scope.
type AssignAttr struct {
	base
	Expr Node
	Name string
}

func (a *AssignAttr) Kind() NodeKind { return KindAssignAttr }
func (a *AssignAttr) String() string { return fmt.Sprintf("%s.%s", a.Expr, a.Name) }

// If is a conditional statement.
type If struct {
	base
	Test   Node
	Body   []Node
	Orelse []Node
}

func (i *If) Kind() NodeKind { return KindIf }
func (i *If) String() string { return "if" }

// For is a for-in loop. Target binds in the enclosing scope.
type For struct {
	base
	Target Node
	Iter   Node
	Body   []Node
	Orelse []Node
}

func (f *For) Kind() NodeKind { return KindFor }
func (f *For) String() string { return "for" }

// While is a while loop.
type While struct {
	base
	Test   Node
	Body   []Node
	Orelse []Node
}

func (w *While) Kind() NodeKind { return KindWhile }
func (w *While) String() string { return "while" }

// Try is a try/except/else/finally statement.
type Try struct {
	base
	Body     []Node
	Handlers []*ExceptHandler
	Orelse   []Node
	Final    []Node
}

func (t *Try) Kind() NodeKind { return KindTry }
func (t *Try) String() string { return "try" }

// ExceptHandler is one except clause. Name, when present, binds the
// caught exception in the enclosing scope.
type ExceptHandler struct {
	base
	Type Node        // exception type expression, nil for bare except
	Name *AssignName // nil when the clause binds no name
	Body []Node
}

func (e *ExceptHandler) Kind() NodeKind { return KindExceptHandler }
func (e *ExceptHandler) String() string { return "except" }

// Return is a return statement.
type Return struct {
	base
	Value Node // nil for a bare return
}

func (r *Return) Kind() NodeKind { return KindReturn }
func (r *Return) String() string { return "return" }

// Global declares names as module-level inside a function or class body.
type Global struct {
	base
	Names []string
}

func (g *Global) Kind() NodeKind { return KindGlobal }
func (g *Global) String() string { return "global " + strings.Join(g.Names, ", ") }

// Nonlocal declares names as bound in the nearest enclosing function.
type Nonlocal struct {
	base
	Names []string
}

func (n *Nonlocal) Kind() NodeKind { return KindNonlocal }
func (n *Nonlocal) String() string { return "nonlocal " + strings.Join(n.Names, ", ") }

// ImportAlias is one "path [as name]" item of an import statement.
type ImportAlias struct {
	Path   string // dotted module path, or imported name for ImportFrom
	AsName string // empty when no alias is given
}

// BoundName returns the name the alias binds in the importing scope.
func (a ImportAlias) BoundName() string {
	if a.AsName != "" {
		return a.AsName
	}
	if i := strings.IndexByte(a.Path, '.'); i >= 0 {
		return a.Path[:i]
	}
	return a.Path
}

// Import is "import a.b [as c], ...". The statement is the binding node
// for each bound name.
type Import struct {
	base
	Names []ImportAlias
}

func (im *Import) Kind() NodeKind { return KindImport }
func (im *Import) String() string { return "import" }

// ImportFrom is "from module import name [as alias], ...".
type ImportFrom struct {
	base
	Module string
	Names  []ImportAlias
}

func (im *ImportFrom) Kind() NodeKind { return KindImportFrom }
func (im *ImportFrom) String() string { return "from " + im.Module + " import" }

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	base
	Value Node
}

func (e *ExprStmt) Kind() NodeKind { return KindExprStmt }
func (e *ExprStmt) String() string { return e.Value.String() }

// Pass is the no-op statement.
type Pass struct {
	base
}

func (p *Pass) Kind() NodeKind { return KindPass }
func (p *Pass) String() string { return "pass" }

// ===== Expressions =====

// Name is an identifier in a load position.
type Name struct {
	base
	Name string
}

func (n *Name) Kind() NodeKind { return KindName }
func (n *Name) String() string { return n.Name }

// ConstKind tags the value stored in a Const node.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstStr
	ConstBool
	ConstNone
)

func (k ConstKind) String() string {
	switch k {
	case ConstInt:
		return "int"
	case ConstFloat:
		return "float"
	case ConstStr:
		return "str"
	case ConstBool:
		return "bool"
	case ConstNone:
		return "none"
	default:
		return "unknown"
	}
}

// Const is a literal constant. Value holds int64, float64, string or
// bool depending on ConstKind; nil for ConstNone.
type Const struct {
	base
	ConstKind ConstKind
	Value     any
}

func (c *Const) Kind() NodeKind { return KindConst }
func (c *Const) String() string {
	if c.ConstKind == ConstNone {
		return "None"
	}
	if c.ConstKind == ConstStr {
		return fmt.Sprintf("%q", c.Value)
	}
	return fmt.Sprintf("%v", c.Value)
}

// Int returns the integer value; valid only when ConstKind is ConstInt.
func (c *Const) Int() int64 { v, _ := c.Value.(int64); return v }

// Str returns the string value; valid only when ConstKind is ConstStr.
func (c *Const) Str() string { v, _ := c.Value.(string); return v }

// BinOp is a binary arithmetic or bitwise operation.
type BinOp struct {
	base
	Left  Node
	Op    Operator
	Right Node
}

func (b *BinOp) Kind() NodeKind { return KindBinOp }
func (b *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryOp is a unary operation.
type UnaryOp struct {
	base
	Op      Operator
	Operand Node
}

func (u *UnaryOp) Kind() NodeKind { return KindUnaryOp }
func (u *UnaryOp) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.Operand) }

// BoolOpKind distinguishes "and" from "or".
type BoolOpKind int

const (
	BoolAnd BoolOpKind = iota
	BoolOr
)

func (k BoolOpKind) String() string {
	if k == BoolAnd {
		return "and"
	}
	return "or"
}

// BoolOp is a short-circuiting boolean operation over two or more
// operands. Its value at runtime is one of the operand values.
type BoolOp struct {
	base
	Op     BoolOpKind
	Values []Node
}

func (b *BoolOp) Kind() NodeKind { return KindBoolOp }
func (b *BoolOp) String() string { return "boolop" }

// Compare is a chained comparison (a < b <= c).
type Compare struct {
	base
	Left        Node
	Ops         []Operator
	Comparators []Node
}

func (c *Compare) Kind() NodeKind { return KindCompare }
func (c *Compare) String() string { return "compare" }

// Call is a call expression.
type Call struct {
	base
	Func     Node
	Args     []Node // positional arguments, possibly containing Starred
	Keywords []*Keyword
}

func (c *Call) Kind() NodeKind { return KindCall }
func (c *Call) String() string { return fmt.Sprintf("%s(...)", c.Func) }

// Keyword is one keyword argument at a call site. An empty Name marks a
// double-star expansion (**mapping).
type Keyword struct {
	base
	Name  string
	Value Node
}

func (k *Keyword) Kind() NodeKind { return KindKeyword }
func (k *Keyword) String() string {
	if k.Name == "" {
		return "**" + k.Value.String()
	}
	return k.Name + "=" + k.Value.String()
}

// Starred is a *expr argument or assignment target element.
type Starred struct {
	base
	Value Node
}

func (s *Starred) Kind() NodeKind { return KindStarred }
func (s *Starred) String() string { return "*" + s.Value.String() }

// Attribute is an attribute access in a load position.
type Attribute struct {
	base
	Expr Node
	Name string
}

func (a *Attribute) Kind() NodeKind { return KindAttribute }
func (a *Attribute) String() string { return fmt.Sprintf("%s.%s", a.Expr, a.Name) }

// Subscript is an index or slice access: value[index].
type Subscript struct {
	base
	Value Node
	Index Node
}

func (s *Subscript) Kind() NodeKind { return KindSubscript }
func (s *Subscript) String() string { return fmt.Sprintf("%s[%s]", s.Value, s.Index) }

// Slice is a lower:upper:step slice expression.
type Slice struct {
	base
	Lower Node
	Upper Node
	Step  Node
}

func (s *Slice) Kind() NodeKind { return KindSlice }
func (s *Slice) String() string { return "slice" }

// IfExp is a conditional expression: body if test else orelse.
type IfExp struct {
	base
	Test   Node
	Body   Node
	Orelse Node
}

func (i *IfExp) Kind() NodeKind { return KindIfExp }
func (i *IfExp) String() string { return "ifexp" }

// List is a list literal.
type List struct {
	base
	Elts []Node
}

func (l *List) Kind() NodeKind { return KindList }
func (l *List) String() string { return fmt.Sprintf("list[%d]", len(l.Elts)) }

// Tuple is a tuple literal or a tuple assignment target.
type Tuple struct {
	base
	Elts []Node
}

func (t *Tuple) Kind() NodeKind { return KindTuple }
func (t *Tuple) String() string { return fmt.Sprintf("tuple[%d]", len(t.Elts)) }

// Set is a set literal.
type Set struct {
	base
	Elts []Node
}

func (s *Set) Kind() NodeKind { return KindSet }
func (s *Set) String() string { return fmt.Sprintf("set[%d]", len(s.Elts)) }

// Dict is a dict literal. Keys and Values are parallel slices.
type Dict struct {
	base
	Keys   []Node
	Values []Node
}

func (d *Dict) Kind() NodeKind { return KindDict }
func (d *Dict) String() string { return fmt.Sprintf("dict[%d]", len(d.Keys)) }

// Item returns the value for a constant string or integer key, if the
// literal has one.
func (d *Dict) Item(key *Const) (Node, bool) {
	for i, k := range d.Keys {
		kc, ok := k.(*Const)
		if !ok || kc.ConstKind != key.ConstKind {
			continue
		}
		if kc.Value == key.Value {
			return d.Values[i], true
		}
	}
	return nil, false
}
