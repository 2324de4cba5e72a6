package infer

import (
	"testing"

	"github.com/pylint-dev/astroid/brain"
	"github.com/pylint-dev/astroid/config"
	"github.com/pylint-dev/astroid/nodes"
)

// Trees in these tests are built in textual order: the builder assigns
// source offsets in creation order and lookup filtering relies on them.

func newEngine() *Engine {
	return NewEngine(nil, config.Default())
}

func inferValues(t *testing.T, e *Engine, n nodes.Node) []Value {
	t.Helper()
	vals, err := e.InferAll(n, nil)
	if err != nil {
		t.Fatalf("InferAll(%s): %v", n, err)
	}
	return vals
}

func inferOne(t *testing.T, e *Engine, n nodes.Node) Value {
	t.Helper()
	vals := inferValues(t, e, n)
	if len(vals) != 1 {
		t.Fatalf("InferAll(%s) = %v, want exactly one value", n, vals)
	}
	return vals[0]
}

func wantInt(t *testing.T, v Value, want int64) {
	t.Helper()
	c, ok := v.(*nodes.Const)
	if !ok || c.ConstKind != nodes.ConstInt {
		t.Fatalf("value = %v (%T), want int %d", v, v, want)
	}
	if c.Int() != want {
		t.Fatalf("value = %d, want %d", c.Int(), want)
	}
}

func wantStr(t *testing.T, v Value, want string) {
	t.Helper()
	c, ok := v.(*nodes.Const)
	if !ok || c.ConstKind != nodes.ConstStr {
		t.Fatalf("value = %v (%T), want string %q", v, v, want)
	}
	if c.Str() != want {
		t.Fatalf("value = %q, want %q", c.Str(), want)
	}
}

func wantUnresolved(t *testing.T, v Value) {
	t.Helper()
	if !IsUnresolved(v) {
		t.Fatalf("value = %v (%T), want Unresolved", v, v)
	}
}

func TestInferNilNode(t *testing.T) {
	if _, err := newEngine().Infer(nil, nil); err == nil {
		t.Fatal("nil node should report a structural error")
	}
}

func TestInferDetachedName(t *testing.T) {
	detached := &nodes.Name{Name: "x"}
	if _, err := newEngine().Infer(detached, nil); err == nil {
		t.Fatal("a name outside any scope should report a structural error")
	}
}

func TestInferConstantChain(t *testing.T) {
	b := nodes.NewBuilder()
	s1 := b.Assign(b.AssignName("x"), b.Int(1))
	s2 := b.Assign(b.AssignName("y"), b.Name("x"))
	use := b.Name("y")
	b.Module("m", s1, s2, b.Expr(use))

	wantInt(t, inferOne(t, newEngine(), use), 1)
}

func TestSelfAssignmentTerminates(t *testing.T) {
	b := nodes.NewBuilder()
	s := b.Assign(b.AssignName("x"), b.Name("x"))
	use := b.Name("x")
	b.Module("m", s, b.Expr(use))

	e := newEngine()
	wantUnresolved(t, inferOne(t, e, use))
	if e.Stats().CycleBreaks == 0 {
		t.Error("the cycle guard should have fired")
	}
}

func TestMutualRecursionTerminates(t *testing.T) {
	b := nodes.NewBuilder()
	s1 := b.Assign(b.AssignName("a"), b.Name("b"))
	s2 := b.Assign(b.AssignName("b"), b.Name("a"))
	use := b.Name("a")
	b.Module("m", s1, s2, b.Expr(use))

	wantUnresolved(t, inferOne(t, newEngine(), use))
}

func TestUndefinedName(t *testing.T) {
	b := nodes.NewBuilder()
	use := b.Name("missing")
	b.Module("m", b.Expr(use))

	wantUnresolved(t, inferOne(t, newEngine(), use))
}

func TestBinOpConstantFolding(t *testing.T) {
	b := nodes.NewBuilder()
	sum := b.BinOp(b.Int(1), nodes.OpAdd, b.Int(2))
	concat := b.BinOp(b.Str("ab"), nodes.OpAdd, b.Str("cd"))
	repeat := b.BinOp(b.Str("ab"), nodes.OpMul, b.Int(2))
	div := b.BinOp(b.Int(1), nodes.OpDiv, b.Int(0))
	b.Module("m", b.Expr(sum), b.Expr(concat), b.Expr(repeat), b.Expr(div))
	e := newEngine()

	wantInt(t, inferOne(t, e, sum), 3)
	wantStr(t, inferOne(t, e, concat), "abcd")
	wantStr(t, inferOne(t, e, repeat), "abab")
	wantUnresolved(t, inferOne(t, e, div))
}

func TestBinOpUnresolvedPropagates(t *testing.T) {
	b := nodes.NewBuilder()
	expr := b.BinOp(b.Name("unknown"), nodes.OpAdd, b.Int(1))
	b.Module("m", b.Expr(expr))

	wantUnresolved(t, inferOne(t, newEngine(), expr))
}

func TestBinOpSequenceConcat(t *testing.T) {
	b := nodes.NewBuilder()
	expr := b.BinOp(b.List(b.Int(1)), nodes.OpAdd, b.List(b.Int(2), b.Int(3)))
	b.Module("m", b.Expr(expr))

	v := inferOne(t, newEngine(), expr)
	list, ok := v.(*nodes.List)
	if !ok || len(list.Elts) != 3 {
		t.Fatalf("value = %v, want a three element list", v)
	}
}

func TestUnaryOpFolding(t *testing.T) {
	b := nodes.NewBuilder()
	neg := b.UnaryOp(nodes.OpNeg, b.Int(3))
	not := b.UnaryOp(nodes.OpNot, b.Int(0))
	b.Module("m", b.Expr(neg), b.Expr(not))
	e := newEngine()

	wantInt(t, inferOne(t, e, neg), -3)
	v := inferOne(t, e, not).(*nodes.Const)
	if v.ConstKind != nodes.ConstBool || v.Value != true {
		t.Fatalf("not 0 = %v, want True", v)
	}
}

func TestCompareFolding(t *testing.T) {
	b := nodes.NewBuilder()
	lt := b.Compare(b.Int(1), nodes.OpLt, b.Int(2))
	chain := &nodes.Compare{
		Left:        b.Int(1),
		Ops:         []nodes.Operator{nodes.OpLt, nodes.OpLt},
		Comparators: []nodes.Node{b.Int(2), b.Int(2)},
	}
	unknown := b.Compare(b.Name("n"), nodes.OpLt, b.Int(2))
	b.Module("m", b.Expr(lt), b.Expr(chain), b.Expr(unknown))
	e := newEngine()

	if v := inferOne(t, e, lt).(*nodes.Const); v.Value != true {
		t.Errorf("1 < 2 = %v, want True", v)
	}
	if v := inferOne(t, e, chain).(*nodes.Const); v.Value != false {
		t.Errorf("1 < 2 < 2 = %v, want False", v)
	}
	wantUnresolved(t, inferOne(t, e, unknown))
}

func TestIfExpMergesBranchesInOrder(t *testing.T) {
	b := nodes.NewBuilder()
	expr := b.IfExp(b.Name("cond"), b.Int(1), b.Str("two"))
	b.Module("m", b.Expr(expr))

	vals := inferValues(t, newEngine(), expr)
	if len(vals) != 2 {
		t.Fatalf("IfExp values = %v, want two candidates", vals)
	}
	wantInt(t, vals[0], 1)
	wantStr(t, vals[1], "two")
}

func TestBoolOpYieldsOperandUnion(t *testing.T) {
	b := nodes.NewBuilder()
	expr := b.BoolOp(nodes.BoolOr, b.Int(0), b.Str("fallback"))
	b.Module("m", b.Expr(expr))

	vals := inferValues(t, newEngine(), expr)
	if len(vals) != 2 {
		t.Fatalf("BoolOp values = %v, want both operands", vals)
	}
	wantInt(t, vals[0], 0)
	wantStr(t, vals[1], "fallback")
}

func TestConditionalBindingsYieldAllCandidates(t *testing.T) {
	b := nodes.NewBuilder()
	s1 := b.Assign(b.AssignName("x"), b.Int(1))
	branch := b.If(b.Name("cond"), []nodes.Node{b.Assign(b.AssignName("x"), b.Int(2))})
	use := b.Name("x")
	b.Module("m", s1, branch, b.Expr(use))

	vals := inferValues(t, newEngine(), use)
	if len(vals) != 2 {
		t.Fatalf("values = %v, want both branch candidates", vals)
	}
	wantInt(t, vals[0], 1)
	wantInt(t, vals[1], 2)
}

func TestTupleUnpacking(t *testing.T) {
	b := nodes.NewBuilder()
	s := b.Assign(b.Tuple(b.AssignName("a"), b.AssignName("b")), b.Tuple(b.Int(1), b.Int(2)))
	useA := b.Name("a")
	useB := b.Name("b")
	b.Module("m", s, b.Expr(useA), b.Expr(useB))
	e := newEngine()

	wantInt(t, inferOne(t, e, useA), 1)
	wantInt(t, inferOne(t, e, useB), 2)
}

func TestForLoopTarget(t *testing.T) {
	b := nodes.NewBuilder()
	target := b.AssignName("i")
	iter := b.List(b.Int(1), b.Int(2))
	use := b.Name("i")
	b.Module("m", b.For(target, iter, b.Expr(use)))

	vals := inferValues(t, newEngine(), use)
	if len(vals) != 2 {
		t.Fatalf("loop variable values = %v, want the two elements", vals)
	}
	wantInt(t, vals[0], 1)
	wantInt(t, vals[1], 2)
}

func TestComprehensionTarget(t *testing.T) {
	b := nodes.NewBuilder()
	target := b.AssignName("x")
	iter := b.List(b.Int(7))
	use := b.Name("x")
	comp := b.Comp(nodes.ListComp, use, b.CompFor(target, iter))
	b.Module("m", b.Expr(comp))

	wantInt(t, inferOne(t, newEngine(), use), 7)
}

func TestSubscripts(t *testing.T) {
	b := nodes.NewBuilder()
	listIdx := b.Sub(b.List(b.Int(10), b.Int(20)), b.Int(1))
	negIdx := b.Sub(b.Tuple(b.Int(10), b.Int(20)), b.UnaryOp(nodes.OpNeg, b.Int(1)))
	outOfRange := b.Sub(b.List(b.Int(10)), b.Int(5))
	dictIdx := b.Sub(b.Dict(b.Str("k"), b.Int(3)), b.Str("k"))
	strIdx := b.Sub(b.Str("abc"), b.Int(0))
	b.Module("m", b.Expr(listIdx), b.Expr(negIdx), b.Expr(outOfRange), b.Expr(dictIdx), b.Expr(strIdx))
	e := newEngine()

	wantInt(t, inferOne(t, e, listIdx), 20)
	wantInt(t, inferOne(t, e, negIdx), 20)
	wantUnresolved(t, inferOne(t, e, outOfRange))
	wantInt(t, inferOne(t, e, dictIdx), 3)
	wantStr(t, inferOne(t, e, strIdx), "a")
}

func TestCallBindsArguments(t *testing.T) {
	b := nodes.NewBuilder()
	fn := b.Func("f",
		b.Args(b.Param("a"), b.ParamDefault("b", b.Int(1))),
		b.Return(b.BinOp(b.Name("a"), nodes.OpAdd, b.Name("b"))),
	)
	positional := b.Call(b.Name("f"), b.Int(2))
	keyword := b.CallKw(b.Name("f"), []nodes.Node{b.Int(2)}, b.Kw("b", b.Int(5)))
	tooMany := b.Call(b.Name("f"), b.Int(1), b.Int(2), b.Int(3))
	unknownKw := b.CallKw(b.Name("f"), nil, b.Kw("z", b.Int(1)))
	missing := b.Call(b.Name("f"))
	twice := b.CallKw(b.Name("f"), []nodes.Node{b.Int(1)}, b.Kw("a", b.Int(2)))
	b.Module("m", fn,
		b.Expr(positional), b.Expr(keyword), b.Expr(tooMany),
		b.Expr(unknownKw), b.Expr(missing), b.Expr(twice),
	)
	e := newEngine()

	wantInt(t, inferOne(t, e, positional), 3) // default b=1
	wantInt(t, inferOne(t, e, keyword), 7)
	wantUnresolved(t, inferOne(t, e, tooMany))
	wantUnresolved(t, inferOne(t, e, unknownKw))
	wantUnresolved(t, inferOne(t, e, missing))
	wantUnresolved(t, inferOne(t, e, twice))
}

func TestCallWithoutReturnYieldsNone(t *testing.T) {
	b := nodes.NewBuilder()
	fn := b.Func("noop", b.Args(), b.PassStmt())
	call := b.Call(b.Name("noop"))
	b.Module("m", fn, b.Expr(call))

	v := inferOne(t, newEngine(), call).(*nodes.Const)
	if v.ConstKind != nodes.ConstNone {
		t.Fatalf("call result = %v, want None", v)
	}
}

func TestCallStarUnpacking(t *testing.T) {
	b := nodes.NewBuilder()
	fn := b.Func("f", b.Args(b.Param("a"), b.Param("b")), b.Return(b.Name("a")))
	pair := b.Assign(b.AssignName("pair"), b.Tuple(b.Int(8), b.Int(9)))
	call := b.Call(b.Name("f"), b.Star(b.Name("pair")))
	b.Module("m", fn, pair, b.Expr(call))

	wantInt(t, inferOne(t, newEngine(), call), 8)
}

func TestCallDoubleStarUnpacking(t *testing.T) {
	b := nodes.NewBuilder()
	fn := b.Func("f",
		b.Args(b.ParamDefault("a", b.Int(1)), b.ParamDefault("b", b.Int(2))),
		b.Return(b.Name("b")),
	)
	call := b.CallKw(b.Name("f"), nil, b.Kw("", b.Dict(b.Str("b"), b.Int(3))))
	dup := b.CallKw(b.Name("f"), nil, b.Kw("b", b.Int(1)), b.Kw("", b.Dict(b.Str("b"), b.Int(3))))
	b.Module("m", fn, b.Expr(call), b.Expr(dup))
	e := newEngine()

	wantInt(t, inferOne(t, e, call), 3)
	wantUnresolved(t, inferOne(t, e, dup))
}

func TestCallVarargAndKwarg(t *testing.T) {
	b := nodes.NewBuilder()
	varargs := b.Args(b.Param("first"))
	varargs.Vararg = b.Param("rest")
	fnV := b.Func("fv", varargs, b.Return(b.Name("rest")))
	callV := b.Call(b.Name("fv"), b.Int(1), b.Int(2), b.Int(3))

	kwargs := b.Args()
	kwargs.Kwarg = b.Param("extra")
	fnK := b.Func("fk", kwargs, b.Return(b.Name("extra")))
	callK := b.CallKw(b.Name("fk"), nil, b.Kw("x", b.Int(1)))

	b.Module("m", fnV, fnK, b.Expr(callV), b.Expr(callK))
	e := newEngine()

	tup, ok := inferOne(t, e, callV).(*nodes.Tuple)
	if !ok || len(tup.Elts) != 2 {
		t.Fatalf("vararg = %v, want a two element tuple", tup)
	}
	d, ok := inferOne(t, e, callK).(*nodes.Dict)
	if !ok || len(d.Keys) != 1 {
		t.Fatalf("kwarg = %v, want a one entry dict", d)
	}
}

func TestLambdaCall(t *testing.T) {
	b := nodes.NewBuilder()
	assign := b.Assign(b.AssignName("f"),
		b.Lambda(b.Args(b.Param("a")), b.BinOp(b.Name("a"), nodes.OpAdd, b.Int(1))),
	)
	call := b.Call(b.Name("f"), b.Int(2))
	b.Module("m", assign, b.Expr(call))

	wantInt(t, inferOne(t, newEngine(), call), 3)
}

func TestRecursiveCallTerminates(t *testing.T) {
	b := nodes.NewBuilder()
	fn := b.Func("loop", b.Args(), b.Return(b.Call(b.Name("loop"))))
	call := b.Call(b.Name("loop"))
	b.Module("m", fn, b.Expr(call))

	wantUnresolved(t, inferOne(t, newEngine(), call))
}

func TestClassInstantiationAndMethodCall(t *testing.T) {
	b := nodes.NewBuilder()
	cls := b.Class("A", nil,
		b.Func("get", b.Args(b.Param("self")), b.Return(b.Int(42))),
	)
	mk := b.Call(b.Name("A"))
	assign := b.Assign(b.AssignName("a"), mk)
	methodCall := b.Call(b.Attr(b.Name("a"), "get"))
	b.Module("m", cls, assign, b.Expr(methodCall))
	e := newEngine()

	inst, ok := inferOne(t, e, mk).(*Instance)
	if !ok || inst.Class != cls {
		t.Fatalf("A() = %v, want an instance of A", inst)
	}
	wantInt(t, inferOne(t, e, methodCall), 42)
}

func TestInitArityChecked(t *testing.T) {
	b := nodes.NewBuilder()
	cls := b.Class("Box", nil,
		b.Func("__init__", b.Args(b.Param("self"), b.Param("size")), b.PassStmt()),
	)
	ok := b.Call(b.Name("Box"), b.Int(1))
	bad := b.Call(b.Name("Box"), b.Int(1), b.Int(2))
	b.Module("m", cls, b.Expr(ok), b.Expr(bad))
	e := newEngine()

	if _, isInst := inferOne(t, e, ok).(*Instance); !isInst {
		t.Fatal("well-formed construction should yield an instance")
	}
	wantUnresolved(t, inferOne(t, e, bad))
}

func TestMethodReceiverBinding(t *testing.T) {
	b := nodes.NewBuilder()
	cls := b.Class("A", nil,
		b.Func("who", b.Args(b.Param("self")), b.Return(b.Name("self"))),
	)
	call := b.Call(b.Attr(b.Call(b.Name("A")), "who"))
	b.Module("m", cls, b.Expr(call))

	inst, ok := inferOne(t, newEngine(), call).(*Instance)
	if !ok || inst.Class != cls {
		t.Fatalf("self = %v, want the receiver instance", inst)
	}
}

func TestClassmethodBindsClass(t *testing.T) {
	b := nodes.NewBuilder()
	cls := b.Class("A", nil,
		b.Decorated(
			b.Func("make", b.Args(b.Param("cls")), b.Return(b.Call(b.Name("cls")))),
			b.Name("classmethod"),
		),
	)
	call := b.Call(b.Attr(b.Name("A"), "make"))
	b.Module("m", cls, b.Expr(call))

	inst, ok := inferOne(t, newEngine(), call).(*Instance)
	if !ok || inst.Class != cls {
		t.Fatalf("A.make() = %v, want an instance of A", inst)
	}
}

func TestAttributeThroughHierarchy(t *testing.T) {
	b := nodes.NewBuilder()
	base := b.Class("Base", nil, b.Assign(b.AssignName("kind"), b.Str("base")))
	child := b.Class("Child", []nodes.Node{b.Name("Base")})
	access := b.Attr(b.Call(b.Name("Child")), "kind")
	b.Module("m", base, child, b.Expr(access))

	wantStr(t, inferOne(t, newEngine(), access), "base")
}

func TestAttributeOverrideWins(t *testing.T) {
	b := nodes.NewBuilder()
	base := b.Class("Base", nil, b.Assign(b.AssignName("kind"), b.Str("base")))
	child := b.Class("Child", []nodes.Node{b.Name("Base")},
		b.Assign(b.AssignName("kind"), b.Str("child")),
	)
	access := b.Attr(b.Call(b.Name("Child")), "kind")
	b.Module("m", base, child, b.Expr(access))

	wantStr(t, inferOne(t, newEngine(), access), "child")
}

func TestEngineMRODiamond(t *testing.T) {
	b := nodes.NewBuilder()
	a := b.Class("A", nil)
	bb := b.Class("B", []nodes.Node{b.Name("A")})
	c := b.Class("C", []nodes.Node{b.Name("A")})
	d := b.Class("D", []nodes.Node{b.Name("B"), b.Name("C")})
	b.Module("m", a, bb, c, d)

	linear, err := newEngine().MRO(d)
	if err != nil {
		t.Fatalf("MRO(D): %v", err)
	}
	want := []*nodes.ClassDef{d, bb, c, a}
	if len(linear) != len(want) {
		t.Fatalf("MRO(D) has %d entries, want %d", len(linear), len(want))
	}
	for i := range want {
		if linear[i] != want[i] {
			t.Fatalf("MRO(D)[%d] = %s, want %s", i, linear[i].Name, want[i].Name)
		}
	}
}

func TestAttributeOnUnresolvableHierarchy(t *testing.T) {
	b := nodes.NewBuilder()
	a := b.Class("A", nil)
	bb := b.Class("B", []nodes.Node{b.Name("A")})
	c := b.Class("C", []nodes.Node{b.Name("A"), b.Name("B")})
	access := b.Attr(b.Call(b.Name("C")), "anything")
	b.Module("m", a, bb, c, b.Expr(access))

	wantUnresolved(t, inferOne(t, newEngine(), access))
}

func TestInstanceDunderBinOp(t *testing.T) {
	b := nodes.NewBuilder()
	cls := b.Class("N", nil,
		b.Func("__add__", b.Args(b.Param("self"), b.Param("other")), b.Return(b.Name("other"))),
	)
	expr := b.BinOp(b.Call(b.Name("N")), nodes.OpAdd, b.Int(5))
	b.Module("m", cls, b.Expr(expr))

	wantInt(t, inferOne(t, newEngine(), expr), 5)
}

func TestInstanceReflectedBinOp(t *testing.T) {
	b := nodes.NewBuilder()
	cls := b.Class("N", nil,
		b.Func("__radd__", b.Args(b.Param("self"), b.Param("other")), b.Return(b.Int(9))),
	)
	expr := b.BinOp(b.Int(1), nodes.OpAdd, b.Call(b.Name("N")))
	b.Module("m", cls, b.Expr(expr))

	wantInt(t, inferOne(t, newEngine(), expr), 9)
}

func TestInstanceGetitem(t *testing.T) {
	b := nodes.NewBuilder()
	cls := b.Class("Box", nil,
		b.Func("__getitem__", b.Args(b.Param("self"), b.Param("key")), b.Return(b.Name("key"))),
	)
	access := b.Sub(b.Call(b.Name("Box")), b.Int(3))
	b.Module("m", cls, b.Expr(access))

	wantInt(t, inferOne(t, newEngine(), access), 3)
}

type moduleTable map[string]*nodes.Module

func (t moduleTable) LookupModule(path string) (*nodes.Module, bool) {
	m, ok := t[path]
	return m, ok
}

func TestImportResolution(t *testing.T) {
	lb := nodes.NewBuilder()
	lib := lb.Module("lib", lb.Assign(lb.AssignName("answer"), lb.Int(42)))

	b := nodes.NewBuilder()
	imp := b.Import("lib")
	imf := &nodes.ImportFrom{Module: "lib", Names: []nodes.ImportAlias{{Path: "answer"}}}
	attr := b.Attr(b.Name("lib"), "answer")
	fromUse := b.Name("answer")
	b.Module("main", imp, imf, b.Expr(attr), b.Expr(fromUse))

	e := newEngine()
	e.SetModules(moduleTable{"lib": lib})

	wantInt(t, inferOne(t, e, attr), 42)
	wantInt(t, inferOne(t, e, fromUse), 42)
}

func TestImportWithoutResolverIsUnresolved(t *testing.T) {
	b := nodes.NewBuilder()
	imp := b.Import("lib")
	use := b.Name("lib")
	b.Module("main", imp, b.Expr(use))

	wantUnresolved(t, inferOne(t, newEngine(), use))
}

func TestTipOverridesDefaultInference(t *testing.T) {
	b := nodes.NewBuilder()
	call := b.Call(b.Name("magic"))
	b.Module("m", b.Expr(call))

	reg := brain.NewRegistry()
	reg.RegisterTip("magic", brain.CallTo("magic"), func(nodes.Node) ([]brain.Result, bool) {
		return []brain.Result{b.Int(42)}, true
	})
	e := NewEngine(reg, config.Default())

	wantInt(t, inferOne(t, e, call), 42)
	if e.Stats().TipHits != 1 {
		t.Errorf("TipHits = %d, want 1", e.Stats().TipHits)
	}
}

func TestRepeatedInferenceHitsCache(t *testing.T) {
	b := nodes.NewBuilder()
	s1 := b.Assign(b.AssignName("x"), b.Int(1))
	s2 := b.Assign(b.AssignName("y"), b.BinOp(b.Name("x"), nodes.OpAdd, b.Int(2)))
	use := b.Name("y")
	b.Module("m", s1, s2, b.Expr(use))

	e := newEngine()
	ctx := NewContext()

	first, err := e.InferAll(use, ctx)
	if err != nil {
		t.Fatal(err)
	}
	dispatched := e.Stats().Dispatched

	second, err := e.InferAll(use, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if e.Stats().Dispatched != dispatched {
		t.Errorf("second request dispatched %d new nodes, want 0", e.Stats().Dispatched-dispatched)
	}
	if e.Stats().CacheHits == 0 {
		t.Error("second request should be served from the context cache")
	}
	if len(first) != len(second) {
		t.Fatalf("results differ across runs: %v vs %v", first, second)
	}
	wantInt(t, second[0], 3)
}

func TestDepthLimit(t *testing.T) {
	b := nodes.NewBuilder()
	s1 := b.Assign(b.AssignName("a"), b.Int(1))
	s2 := b.Assign(b.AssignName("b"), b.Name("a"))
	s3 := b.Assign(b.AssignName("c"), b.Name("b"))
	s4 := b.Assign(b.AssignName("d"), b.Name("c"))
	use := b.Name("d")
	b.Module("m", s1, s2, s3, s4, b.Expr(use))

	cfg := config.Default()
	cfg.Limits.MaxDepth = 2
	e := NewEngine(nil, cfg)

	wantUnresolved(t, inferOne(t, e, use))
	if e.Stats().DepthLimited == 0 {
		t.Error("the depth cap should have fired")
	}
}

func TestMaxResultsCapsCandidates(t *testing.T) {
	b := nodes.NewBuilder()
	s1 := b.Assign(b.AssignName("x"), b.Int(1))
	b1 := b.If(b.Name("c1"), []nodes.Node{b.Assign(b.AssignName("x"), b.Int(2))})
	b2 := b.If(b.Name("c2"), []nodes.Node{b.Assign(b.AssignName("x"), b.Int(3))})
	use := b.Name("x")
	b.Module("m", s1, b1, b2, b.Expr(use))

	cfg := config.Default()
	cfg.Limits.MaxResults = 2
	e := NewEngine(nil, cfg)

	vals := inferValues(t, e, use)
	if len(vals) != 2 {
		t.Fatalf("got %d candidates, want the cap of 2", len(vals))
	}
}

func TestLazyConsumerStopsEarly(t *testing.T) {
	b := nodes.NewBuilder()
	s1 := b.Assign(b.AssignName("x"), b.Int(1))
	branch := b.If(b.Name("c"), []nodes.Node{b.Assign(b.AssignName("x"), b.Int(2))})
	use := b.Name("x")
	b.Module("m", s1, branch, b.Expr(use))

	seq, err := newEngine().Infer(use, nil)
	if err != nil {
		t.Fatal(err)
	}
	var got []Value
	for v := range seq {
		got = append(got, v)
		break
	}
	if len(got) != 1 {
		t.Fatalf("early stop collected %d values, want 1", len(got))
	}
	wantInt(t, got[0], 1)
}

func TestExceptHandlerNameIsUnresolved(t *testing.T) {
	b := nodes.NewBuilder()
	errName := b.AssignName("err")
	use := b.Name("err")
	try := &nodes.Try{
		Body: []nodes.Node{b.PassStmt()},
		Handlers: []*nodes.ExceptHandler{
			{Name: errName, Body: []nodes.Node{b.Expr(use)}},
		},
	}
	b.Module("m", try)

	wantUnresolved(t, inferOne(t, newEngine(), use))
}

func TestParamDefaultOutsideCall(t *testing.T) {
	b := nodes.NewBuilder()
	args := b.Args(b.ParamDefault("n", b.Int(5)))
	use := b.Name("n")
	b.Module("m", b.Func("f", args, b.Return(use)))

	wantInt(t, inferOne(t, newEngine(), use), 5)
}

func TestMethodSelfOutsideCall(t *testing.T) {
	b := nodes.NewBuilder()
	args := b.Args(b.Param("self"))
	use := b.Name("self")
	cls := b.Class("A", nil, b.Func("m", args, b.Return(use)))
	b.Module("m", cls)

	inst, ok := inferOne(t, newEngine(), use).(*Instance)
	if !ok || inst.Class != cls {
		t.Fatalf("self = %v, want an instance of the enclosing class", inst)
	}
}
