package nodes

import "github.com/pylint-dev/astroid/position"

// Builder constructs wired trees programmatically. The parser is an
// external collaborator; the builder is the in-repo construction
// surface for brains, synthetic nodes and tests.
//
// Nodes receive monotonically increasing source offsets in creation
// order, so building in textual order preserves the source ordering
// that lookup filtering relies on.
type Builder struct {
	filename string
	offset   int
}

// NewBuilder creates a builder producing synthetic spans.
func NewBuilder() *Builder { return &Builder{filename: "<synthetic>"} }

// NewBuilderFor creates a builder attributing spans to the given file.
func NewBuilderFor(filename string) *Builder { return &Builder{filename: filename} }

func (b *Builder) next() position.Span {
	b.offset++
	p := position.Position{Filename: b.filename, Line: b.offset, Column: 1, Offset: b.offset}
	end := p
	end.Column = 2
	end.Offset++
	return position.Span{Start: p, End: end}
}

func (b *Builder) span(n interface{ SetSpan(position.Span) }) {
	n.SetSpan(b.next())
}

// Module builds a module and finalizes the whole tree.
func (b *Builder) Module(name string, body ...Node) *Module {
	m := &Module{Name: name, Body: body}
	b.span(m)
	Finalize(m)
	return m
}

// Class builds a class definition. Body and bases are wired by the
// enclosing Module call.
func (b *Builder) Class(name string, bases []Node, body ...Node) *ClassDef {
	c := &ClassDef{Name: name, Bases: bases, Body: body}
	b.span(c)
	return c
}

// Func builds a named function definition.
func (b *Builder) Func(name string, args *Arguments, body ...Node) *FunctionDef {
	f := &FunctionDef{Name: name, Args: args, Body: body}
	b.span(f)
	return f
}

// Decorated attaches decorator expressions to a function definition.
func (b *Builder) Decorated(f *FunctionDef, decorators ...Node) *FunctionDef {
	f.Decorators = decorators
	return f
}

// Lambda builds an anonymous function expression.
func (b *Builder) Lambda(args *Arguments, body Node) *Lambda {
	l := &Lambda{Args: args, Body: body}
	b.span(l)
	return l
}

// Args builds a parameter list from positional-or-keyword parameters.
func (b *Builder) Args(params ...*Param) *Arguments {
	a := &Arguments{Params: params}
	b.span(a)
	return a
}

// Param builds a parameter without a default.
func (b *Builder) Param(name string) *Param {
	p := &Param{Name: name}
	b.span(p)
	return p
}

// ParamDefault builds a parameter with a default value expression.
func (b *Builder) ParamDefault(name string, def Node) *Param {
	p := &Param{Name: name, Default: def}
	b.span(p)
	return p
}

// Comp builds a comprehension of the given flavor.
func (b *Builder) Comp(flavor CompFlavor, element Node, clauses ...*CompClause) *Comprehension {
	c := &Comprehension{Flavor: flavor, Element: element, Clauses: clauses}
	b.span(c)
	return c
}

// CompFor builds one comprehension clause.
func (b *Builder) CompFor(target Node, iter Node, ifs ...Node) *CompClause {
	return &CompClause{Target: target, Iter: iter, Ifs: ifs}
}

// Assign builds a single-target assignment statement.
func (b *Builder) Assign(target Node, value Node) *Assign {
	a := &Assign{Targets: []Node{target}, Value: value}
	b.span(a)
	return a
}

// AssignName builds a name in binding position.
func (b *Builder) AssignName(name string) *AssignName {
	a := &AssignName{Name: name}
	b.span(a)
	return a
}

// If builds a conditional statement.
func (b *Builder) If(test Node, body []Node, orelse ...Node) *If {
	i := &If{Test: test, Body: body, Orelse: orelse}
	b.span(i)
	return i
}

// For builds a for-in loop.
func (b *Builder) For(target Node, iter Node, body ...Node) *For {
	f := &For{Target: target, Iter: iter, Body: body}
	b.span(f)
	return f
}

// While builds a while loop.
func (b *Builder) While(test Node, body ...Node) *While {
	w := &While{Test: test, Body: body}
	b.span(w)
	return w
}

// Return builds a return statement.
func (b *Builder) Return(value Node) *Return {
	r := &Return{Value: value}
	b.span(r)
	return r
}

// GlobalStmt builds a global declaration.
func (b *Builder) GlobalStmt(names ...string) *Global {
	g := &Global{Names: names}
	b.span(g)
	return g
}

// NonlocalStmt builds a nonlocal declaration.
func (b *Builder) NonlocalStmt(names ...string) *Nonlocal {
	n := &Nonlocal{Names: names}
	b.span(n)
	return n
}

// Import builds an import statement from dotted paths.
func (b *Builder) Import(paths ...string) *Import {
	aliases := make([]ImportAlias, len(paths))
	for i, p := range paths {
		aliases[i] = ImportAlias{Path: p}
	}
	im := &Import{Names: aliases}
	b.span(im)
	return im
}

// ImportAs builds "import path as name".
func (b *Builder) ImportAs(path, as string) *Import {
	im := &Import{Names: []ImportAlias{{Path: path, AsName: as}}}
	b.span(im)
	return im
}

// Expr builds an expression statement.
func (b *Builder) Expr(value Node) *ExprStmt {
	e := &ExprStmt{Value: value}
	b.span(e)
	return e
}

// PassStmt builds a pass statement.
func (b *Builder) PassStmt() *Pass {
	p := &Pass{}
	b.span(p)
	return p
}

// Name builds an identifier in load position.
func (b *Builder) Name(name string) *Name {
	n := &Name{Name: name}
	b.span(n)
	return n
}

// Int builds an integer literal.
func (b *Builder) Int(v int64) *Const {
	c := &Const{ConstKind: ConstInt, Value: v}
	b.span(c)
	return c
}

// Float builds a float literal.
func (b *Builder) Float(v float64) *Const {
	c := &Const{ConstKind: ConstFloat, Value: v}
	b.span(c)
	return c
}

// Str builds a string literal.
func (b *Builder) Str(v string) *Const {
	c := &Const{ConstKind: ConstStr, Value: v}
	b.span(c)
	return c
}

// Bool builds a boolean literal.
func (b *Builder) Bool(v bool) *Const {
	c := &Const{ConstKind: ConstBool, Value: v}
	b.span(c)
	return c
}

// None builds the none literal.
func (b *Builder) None() *Const {
	c := &Const{ConstKind: ConstNone}
	b.span(c)
	return c
}

// BinOp builds a binary operation.
func (b *Builder) BinOp(left Node, op Operator, right Node) *BinOp {
	n := &BinOp{Left: left, Op: op, Right: right}
	b.span(n)
	return n
}

// UnaryOp builds a unary operation.
func (b *Builder) UnaryOp(op Operator, operand Node) *UnaryOp {
	n := &UnaryOp{Op: op, Operand: operand}
	b.span(n)
	return n
}

// BoolOp builds an and/or expression.
func (b *Builder) BoolOp(op BoolOpKind, values ...Node) *BoolOp {
	n := &BoolOp{Op: op, Values: values}
	b.span(n)
	return n
}

// Compare builds a comparison expression.
func (b *Builder) Compare(left Node, op Operator, right Node) *Compare {
	n := &Compare{Left: left, Ops: []Operator{op}, Comparators: []Node{right}}
	b.span(n)
	return n
}

// Call builds a call expression.
func (b *Builder) Call(fn Node, args ...Node) *Call {
	c := &Call{Func: fn, Args: args}
	b.span(c)
	return c
}

// CallKw builds a call expression with keyword arguments.
func (b *Builder) CallKw(fn Node, args []Node, keywords ...*Keyword) *Call {
	c := &Call{Func: fn, Args: args, Keywords: keywords}
	b.span(c)
	return c
}

// Kw builds a keyword argument. An empty name marks **mapping.
func (b *Builder) Kw(name string, value Node) *Keyword {
	k := &Keyword{Name: name, Value: value}
	b.span(k)
	return k
}

// Star builds a *expr argument.
func (b *Builder) Star(value Node) *Starred {
	s := &Starred{Value: value}
	b.span(s)
	return s
}

// Attr builds an attribute access.
func (b *Builder) Attr(expr Node, name string) *Attribute {
	a := &Attribute{Expr: expr, Name: name}
	b.span(a)
	return a
}

// Sub builds a subscript access.
func (b *Builder) Sub(value Node, index Node) *Subscript {
	s := &Subscript{Value: value, Index: index}
	b.span(s)
	return s
}

// IfExp builds a conditional expression.
func (b *Builder) IfExp(test, body, orelse Node) *IfExp {
	i := &IfExp{Test: test, Body: body, Orelse: orelse}
	b.span(i)
	return i
}

// List builds a list literal.
func (b *Builder) List(elts ...Node) *List {
	l := &List{Elts: elts}
	b.span(l)
	return l
}

// Tuple builds a tuple literal.
func (b *Builder) Tuple(elts ...Node) *Tuple {
	t := &Tuple{Elts: elts}
	b.span(t)
	return t
}

// SetLit builds a set literal.
func (b *Builder) SetLit(elts ...Node) *Set {
	s := &Set{Elts: elts}
	b.span(s)
	return s
}

// Dict builds a dict literal from alternating key, value nodes.
func (b *Builder) Dict(kv ...Node) *Dict {
	d := &Dict{}
	for i := 0; i+1 < len(kv); i += 2 {
		d.Keys = append(d.Keys, kv[i])
		d.Values = append(d.Values, kv[i+1])
	}
	b.span(d)
	return d
}
