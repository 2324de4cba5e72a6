package infer

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pylint-dev/astroid/brain"
	"github.com/pylint-dev/astroid/config"
	"github.com/pylint-dev/astroid/mro"
	"github.com/pylint-dev/astroid/nodes"
	"github.com/pylint-dev/astroid/scope"
)

// ModuleLookup resolves dotted module paths to loaded module trees.
// The module manager implements it; tests may use a static map.
type ModuleLookup interface {
	LookupModule(path string) (*nodes.Module, bool)
}

// Stats counts engine activity for one or more requests. The counters
// make caching and termination observable: repeating a request against
// the same context must raise CacheHits, not Dispatched.
type Stats struct {
	Dispatched   int // nodes handled by per-kind rules or tips
	CacheHits    int
	CycleBreaks  int
	DepthLimited int
	TipHits      int
}

// Engine drives inference over finalized trees. One engine serves many
// requests; all cross-request state lives in the MRO cache, which is
// valid until the trees change.
type Engine struct {
	registry *brain.Registry
	limits   config.Limits
	mro      *mro.Resolver
	modules  ModuleLookup
	stats    Stats
}

// NewEngine creates an engine. A nil registry means no overrides; zero
// limits take the defaults.
func NewEngine(reg *brain.Registry, cfg config.Config) *Engine {
	if reg == nil {
		reg = brain.NewRegistry()
	}
	limits := cfg.Limits
	def := config.Default().Limits
	if limits.MaxDepth <= 0 {
		limits.MaxDepth = def.MaxDepth
	}
	if limits.MaxResults <= 0 {
		limits.MaxResults = def.MaxResults
	}
	e := &Engine{registry: reg, limits: limits}
	e.mro = mro.New(e.resolveBases)
	return e
}

// SetModules installs the import resolver. Without one, every import
// infers to Unresolved.
func (e *Engine) SetModules(ml ModuleLookup) { e.modules = ml }

// Registry returns the engine's transform registry.
func (e *Engine) Registry() *brain.Registry { return e.registry }

// Stats returns a snapshot of the activity counters.
func (e *Engine) Stats() Stats { return e.stats }

// ResetStats clears the activity counters.
func (e *Engine) ResetStats() { e.stats = Stats{} }

// Invalidate drops cached hierarchy state for cls, or everything when
// cls is nil. Callers must invalidate after replacing a tree.
func (e *Engine) Invalidate(cls *nodes.ClassDef) { e.mro.Invalidate(cls) }

// MRO returns the method resolution order of cls, resolving base
// expressions through inference.
func (e *Engine) MRO(cls *nodes.ClassDef) ([]*nodes.ClassDef, error) {
	return e.mro.Linearize(cls)
}

// Infer returns the lazy sequence of candidate values for n. The only
// errors are structural: a nil node, or a name detached from any scope.
// Consumers may stop early; results are memoized in the context only
// when a walk is consumed to completion.
func (e *Engine) Infer(n nodes.Node, ctx *Context) (iter.Seq[Value], error) {
	if n == nil {
		return nil, &InferenceError{Message: "cannot infer a nil node"}
	}
	if name, ok := n.(*nodes.Name); ok && scope.ScopeOf(name) == nil {
		return nil, &InferenceError{Node: n, Message: fmt.Sprintf("name %s outside any scope", name.Name)}
	}
	if ctx == nil {
		ctx = NewContext()
	}
	return func(yield func(Value) bool) {
		e.inferInto(n, ctx, yield)
	}, nil
}

// InferAll runs Infer and collects every candidate. It never returns an
// empty slice: a walk producing nothing reports a single Unresolved.
func (e *Engine) InferAll(n nodes.Node, ctx *Context) ([]Value, error) {
	seq, err := e.Infer(n, ctx)
	if err != nil {
		return nil, err
	}
	var out []Value
	for v := range seq {
		out = append(out, v)
	}
	if len(out) == 0 {
		out = append(out, Unresolved)
	}
	return out, nil
}

// inferAll is the internal collector: structural errors cannot occur on
// nodes reached through a finalized tree, and empty walks degrade to a
// single Unresolved.
func (e *Engine) inferAll(n nodes.Node, ctx *Context) []Value {
	if n == nil {
		return []Value{Unresolved}
	}
	var out []Value
	e.inferInto(n, ctx, func(v Value) bool {
		out = append(out, v)
		return true
	})
	if len(out) == 0 {
		out = append(out, Unresolved)
	}
	return out
}

// inferFirst returns the first candidate for n, Unresolved when the
// walk produces nothing.
func (e *Engine) inferFirst(n nodes.Node, ctx *Context) Value {
	if n == nil {
		return Unresolved
	}
	first := Unresolved
	e.inferInto(n, ctx.Clone(), func(v Value) bool {
		first = v
		return false
	})
	return first
}

// inferInto is the heart of the engine: cycle guard, depth and result
// caps, registry overrides, memoization, then per-kind dispatch. It
// reports false when the consumer stopped the walk early.
func (e *Engine) inferInto(n nodes.Node, ctx *Context, yield func(Value) bool) bool {
	if n == nil {
		return yield(Unresolved)
	}
	if vals, ok := ctx.Extra[n]; ok {
		for _, v := range vals {
			if !yield(v) {
				return false
			}
		}
		return true
	}
	key := pathKey{node: n, name: ctx.LookupName}
	if vals, ok := ctx.cached(key); ok {
		e.stats.CacheHits++
		for _, v := range vals {
			if !yield(v) {
				return false
			}
		}
		return true
	}
	if !ctx.push(key) {
		// Revisiting an active (node, name) step means the walk cycled;
		// the contribution is empty, which keeps every request finite.
		e.stats.CycleBreaks++
		return true
	}
	defer ctx.pop(key)

	if ctx.depth >= e.limits.MaxDepth {
		e.stats.DepthLimited++
		return yield(Unresolved)
	}
	ctx.depth++
	defer func() { ctx.depth-- }()

	e.stats.Dispatched++

	var collected []Value
	stopped := false
	truncated := false
	emit := func(v Value) bool {
		if len(collected) >= e.limits.MaxResults {
			truncated = true
			return false
		}
		collected = append(collected, v)
		if !yield(v) {
			stopped = true
			return false
		}
		return true
	}

	if results, ok := e.registry.Tip(n); ok {
		e.stats.TipHits++
		for _, r := range results {
			v, _ := r.(Value)
			if v == nil {
				v = Unresolved
			}
			if !emit(v) {
				break
			}
		}
	} else {
		e.dispatch(n, ctx, emit)
	}

	if !stopped && !truncated {
		ctx.memoize(key, collected)
	}
	return !stopped
}

func (e *Engine) dispatch(n nodes.Node, ctx *Context, emit func(Value) bool) {
	switch n := n.(type) {
	case *nodes.Const, *nodes.List, *nodes.Tuple, *nodes.Set, *nodes.Dict,
		*nodes.Lambda, *nodes.FunctionDef, *nodes.ClassDef, *nodes.Module,
		*nodes.Slice, *nodes.Starred, *nodes.Comprehension:
		emit(n)
	case *nodes.Name:
		e.inferName(n, ctx, emit)
	case *nodes.AssignName:
		e.inferAssigned(n, ctx, emit)
	case *nodes.Param:
		e.inferParam(n, ctx, emit)
	case *nodes.Import:
		e.inferImport(n, ctx, emit)
	case *nodes.ImportFrom:
		e.inferImportFrom(n, ctx, emit)
	case *nodes.BinOp:
		e.inferBinOp(n, ctx, emit)
	case *nodes.UnaryOp:
		e.inferUnaryOp(n, ctx, emit)
	case *nodes.BoolOp:
		// The runtime value is one of the operands; which one depends on
		// truthiness, so the candidates are the union in operand order.
		for _, v := range n.Values {
			if !e.inferInto(v, ctx.Clone(), emit) {
				return
			}
		}
	case *nodes.Compare:
		e.inferCompare(n, ctx, emit)
	case *nodes.Call:
		e.inferCall(n, ctx, emit)
	case *nodes.Attribute:
		e.inferAttribute(n, ctx, emit)
	case *nodes.Subscript:
		e.inferSubscript(n, ctx, emit)
	case *nodes.IfExp:
		// Branch order is fixed: body candidates before orelse.
		if e.inferInto(n.Body, ctx.Clone(), emit) {
			e.inferInto(n.Orelse, ctx.Clone(), emit)
		}
	case *nodes.ExprStmt:
		e.inferInto(n.Value, ctx, emit)
	default:
		emit(Unresolved)
	}
}

// ===== Names and bindings =====

func (e *Engine) inferName(n *nodes.Name, ctx *Context, emit func(Value) bool) {
	bindings := scope.LookupName(n)
	if len(bindings) == 0 {
		emit(Unresolved)
		return
	}
	produced := false
	for _, b := range bindings {
		sub := ctx.Clone()
		sub.LookupName = n.Name
		ok := e.inferInto(b, sub, func(v Value) bool {
			produced = true
			return emit(v)
		})
		if !ok {
			return
		}
	}
	if !produced {
		// Every binding's walk cycled back here: the name has no
		// determinable value, as in x = x.
		emit(Unresolved)
	}
}

// inferAssigned recovers the value of a binding name from the statement
// that binds it.
func (e *Engine) inferAssigned(n *nodes.AssignName, ctx *Context, emit func(Value) bool) {
	switch p := n.Parent().(type) {
	case *nodes.Assign:
		e.inferInto(p.Value, ctx, emit)
	case *nodes.Tuple:
		e.inferUnpacked(n, p, ctx, emit)
	case *nodes.For:
		if p.Target == nodes.Node(n) {
			e.inferElements(p.Iter, ctx, emit)
			return
		}
		emit(Unresolved)
	case *nodes.Comprehension:
		if cl := clauseOf(p, n); cl != nil {
			e.inferElements(cl.Iter, ctx, emit)
			return
		}
		emit(Unresolved)
	case *nodes.ExceptHandler:
		// The caught exception's type is dynamic.
		emit(Unresolved)
	default:
		emit(Unresolved)
	}
}

func clauseOf(comp *nodes.Comprehension, n nodes.Node) *nodes.CompClause {
	for _, cl := range comp.Clauses {
		if cl.Target == n {
			return cl
		}
	}
	return nil
}

// inferUnpacked handles a name inside a tuple assignment target.
func (e *Engine) inferUnpacked(n *nodes.AssignName, tup *nodes.Tuple, ctx *Context, emit func(Value) bool) {
	idx := -1
	for i, elt := range tup.Elts {
		if elt == nodes.Node(n) {
			idx = i
			break
		}
	}
	if idx < 0 {
		emit(Unresolved)
		return
	}
	switch gp := tup.Parent().(type) {
	case *nodes.Assign:
		for _, v := range e.inferAll(gp.Value, ctx.Clone()) {
			if !e.emitUnpackedAt(v, idx, ctx, emit) {
				return
			}
		}
	case *nodes.For:
		// for a, b in pairs: each element of the iterable unpacks
		// across the target tuple.
		for _, cv := range e.inferAll(gp.Iter, ctx.Clone()) {
			elts := sequenceElts(cv)
			if elts == nil {
				if !emit(Unresolved) {
					return
				}
				continue
			}
			for _, elt := range elts {
				for _, ev := range e.inferAll(elt, ctx.Clone()) {
					if !e.emitUnpackedAt(ev, idx, ctx, emit) {
						return
					}
				}
			}
		}
	default:
		emit(Unresolved)
	}
}

func (e *Engine) emitUnpackedAt(v Value, idx int, ctx *Context, emit func(Value) bool) bool {
	elts := sequenceElts(v)
	if elts == nil || idx >= len(elts) {
		return emit(Unresolved)
	}
	return e.inferInto(elts[idx], ctx.Clone(), emit)
}

func sequenceElts(v Value) []nodes.Node {
	switch seq := v.(type) {
	case *nodes.List:
		return seq.Elts
	case *nodes.Tuple:
		return seq.Elts
	case *nodes.Set:
		return seq.Elts
	}
	return nil
}

// inferElements yields the element values of an iterable expression.
func (e *Engine) inferElements(iterExpr nodes.Node, ctx *Context, emit func(Value) bool) {
	for _, v := range e.inferAll(iterExpr, ctx.Clone()) {
		elts := sequenceElts(v)
		if elts == nil {
			if !emit(Unresolved) {
				return
			}
			continue
		}
		for _, elt := range elts {
			if !e.inferInto(elt, ctx.Clone(), emit) {
				return
			}
		}
	}
}

// ===== Parameters =====

func (e *Engine) inferParam(n *nodes.Param, ctx *Context, emit func(Value) bool) {
	args, _ := n.Parent().(*nodes.Arguments)
	if args == nil {
		emit(Unresolved)
		return
	}
	var fn *nodes.FunctionDef
	switch owner := args.Parent().(type) {
	case *nodes.FunctionDef:
		fn = owner
	case *nodes.Lambda:
	default:
		emit(Unresolved)
		return
	}
	if ctx.Call != nil && ctx.Call.site != nil {
		vals, err := ctx.Call.site.InferArgument(e, fn, args, n.Name, ctx)
		if err != nil {
			emit(Unresolved)
			return
		}
		for _, v := range vals {
			if !emit(v) {
				return
			}
		}
		return
	}
	// Outside call analysis the receiver parameter still has a known
	// shape.
	if fn != nil && len(args.Params) > 0 && args.Params[0] == n {
		if cls, ok := fn.Parent().(*nodes.ClassDef); ok {
			switch fn.Type() {
			case nodes.Method:
				emit(&Instance{Class: cls})
				return
			case nodes.ClassMethod:
				emit(cls)
				return
			}
		}
	}
	if n.Default != nil {
		e.inferInto(n.Default, ctx.Clone(), emit)
		return
	}
	emit(Unresolved)
}

// ===== Imports =====

func (e *Engine) lookupModule(path string) *nodes.Module {
	if e.modules == nil {
		return nil
	}
	m, ok := e.modules.LookupModule(path)
	if !ok {
		return nil
	}
	return m
}

func (e *Engine) inferImport(n *nodes.Import, ctx *Context, emit func(Value) bool) {
	name := ctx.LookupName
	matched := false
	for _, alias := range n.Names {
		if name != "" && alias.BoundName() != name {
			continue
		}
		matched = true
		path := alias.Path
		if alias.AsName == "" {
			// import a.b binds a to module a.
			if i := strings.IndexByte(path, '.'); i >= 0 {
				path = path[:i]
			}
		}
		var v Value = Unresolved
		if m := e.lookupModule(path); m != nil {
			v = m
		}
		if !emit(v) {
			return
		}
		if name != "" {
			return
		}
	}
	if !matched {
		emit(Unresolved)
	}
}

func (e *Engine) inferImportFrom(n *nodes.ImportFrom, ctx *Context, emit func(Value) bool) {
	name := ctx.LookupName
	m := e.lookupModule(n.Module)
	matched := false
	for _, alias := range n.Names {
		if name != "" && alias.BoundName() != name {
			continue
		}
		matched = true
		if m == nil {
			if !emit(Unresolved) {
				return
			}
		} else if bindings := m.LocalsOf(alias.Path); len(bindings) == 0 {
			if !emit(Unresolved) {
				return
			}
		} else {
			for _, b := range bindings {
				sub := ctx.Clone()
				sub.LookupName = alias.Path
				if !e.inferInto(b, sub, emit) {
					return
				}
			}
		}
		if name != "" {
			return
		}
	}
	if !matched {
		emit(Unresolved)
	}
}

// ===== Calls =====

func (e *Engine) inferCall(call *nodes.Call, ctx *Context, emit func(Value) bool) {
	cc := &CallContext{Args: call.Args, Keywords: call.Keywords}
	cc.site = e.newCallSite(cc, ctx)
	for _, callee := range e.inferAll(call.Func, ctx.Clone()) {
		switch c := callee.(type) {
		case *nodes.ClassDef:
			if !e.emitInstance(c, cc, emit) {
				return
			}
		case *nodes.FunctionDef:
			if !e.inferCallResult(c, c.Args, cc, nil, ctx, emit) {
				return
			}
		case *BoundMethod:
			if !e.inferCallResult(c.Func, c.Func.Args, cc, c.Receiver, ctx, emit) {
				return
			}
		case *nodes.Lambda:
			if !e.inferLambdaCall(c, cc, ctx, emit) {
				return
			}
		default:
			if !emit(Unresolved) {
				return
			}
		}
	}
}

// emitInstance models calling a class: the result is an instance, after
// the arguments validate against the initializer if the class has one.
func (e *Engine) emitInstance(cls *nodes.ClassDef, cc *CallContext, emit func(Value) bool) bool {
	if init := e.findMethod(cls, "__init__"); init != nil {
		if err := cc.site.Bind(init, init.Args, true); err != nil {
			return emit(Unresolved)
		}
	}
	return emit(&Instance{Class: cls})
}

// inferCallResult binds the call site against the callable and yields
// the inferred values of its return statements. A body with no return
// yields None.
func (e *Engine) inferCallResult(fn *nodes.FunctionDef, args *nodes.Arguments, cc *CallContext, bound Value, ctx *Context, emit func(Value) bool) bool {
	if err := cc.site.Bind(fn, args, bound != nil); err != nil {
		return emit(Unresolved)
	}
	sub := ctx.Clone()
	sub.Call = cc
	sub.Bound = bound
	sub.LookupName = ""
	returns := collectReturns(fn.Body)
	if len(returns) == 0 {
		return emit(noneConst())
	}
	for _, ret := range returns {
		if ret.Value == nil {
			if !emit(noneConst()) {
				return false
			}
			continue
		}
		if !e.inferInto(ret.Value, sub, emit) {
			return false
		}
	}
	return true
}

func (e *Engine) inferLambdaCall(l *nodes.Lambda, cc *CallContext, ctx *Context, emit func(Value) bool) bool {
	if err := cc.site.Bind(nil, l.Args, false); err != nil {
		return emit(Unresolved)
	}
	sub := ctx.Clone()
	sub.Call = cc
	sub.Bound = nil
	sub.LookupName = ""
	return e.inferInto(l.Body, sub, emit)
}

// collectReturns gathers the return statements of a body, not crossing
// into nested frames.
func collectReturns(body []nodes.Node) []*nodes.Return {
	var out []*nodes.Return
	var visit func(n nodes.Node)
	visit = func(n nodes.Node) {
		switch n := n.(type) {
		case *nodes.FunctionDef, *nodes.Lambda, *nodes.ClassDef, *nodes.Comprehension:
			return
		case *nodes.Return:
			out = append(out, n)
			return
		}
		for _, c := range nodes.Children(n) {
			visit(c)
		}
	}
	for _, st := range body {
		visit(st)
	}
	return out
}

// ===== Attributes =====

func (e *Engine) inferAttribute(attr *nodes.Attribute, ctx *Context, emit func(Value) bool) {
	for _, recv := range e.inferAll(attr.Expr, ctx.Clone()) {
		switch r := recv.(type) {
		case *Instance:
			if !e.inferClassAttr(r.Class, attr.Name, recv, ctx, emit) {
				return
			}
		case *nodes.ClassDef:
			if !e.inferClassAttr(r, attr.Name, nil, ctx, emit) {
				return
			}
		case *nodes.Module:
			bindings := r.LocalsOf(attr.Name)
			if len(bindings) == 0 {
				if !emit(Unresolved) {
					return
				}
				continue
			}
			for _, b := range bindings {
				sub := ctx.Clone()
				sub.LookupName = attr.Name
				if !e.inferInto(b, sub, emit) {
					return
				}
			}
		default:
			if !emit(Unresolved) {
				return
			}
		}
	}
}

// inferClassAttr resolves an attribute through the class hierarchy. The
// first class in the resolution order owning the attribute wins, the
// same rule the runtime applies. receiver is nil for access through the
// class itself.
func (e *Engine) inferClassAttr(cls *nodes.ClassDef, name string, receiver Value, ctx *Context, emit func(Value) bool) bool {
	linear, err := e.mro.Linearize(cls)
	if err != nil {
		return emit(Unresolved)
	}
	for _, c := range linear {
		bindings := c.LocalsOf(name)
		if len(bindings) == 0 {
			continue
		}
		for _, b := range bindings {
			if fn, ok := b.(*nodes.FunctionDef); ok {
				if !emit(bindFunction(fn, cls, receiver)) {
					return false
				}
				continue
			}
			sub := ctx.Clone()
			sub.LookupName = name
			if !e.inferInto(b, sub, emit) {
				return false
			}
		}
		return true
	}
	return emit(Unresolved)
}

// bindFunction applies descriptor binding: methods bind the instance,
// classmethods bind the accessed class, staticmethods bind nothing.
func bindFunction(fn *nodes.FunctionDef, cls *nodes.ClassDef, receiver Value) Value {
	switch fn.Type() {
	case nodes.StaticMethod:
		return fn
	case nodes.ClassMethod:
		return &BoundMethod{Func: fn, Receiver: cls}
	case nodes.Method:
		if receiver != nil {
			return &BoundMethod{Func: fn, Receiver: receiver}
		}
	}
	return fn
}

// findMethod locates the first function bound to name along the class
// hierarchy. An unresolvable hierarchy falls back to the class itself.
func (e *Engine) findMethod(cls *nodes.ClassDef, name string) *nodes.FunctionDef {
	if name == "" {
		return nil
	}
	linear, err := e.mro.Linearize(cls)
	if err != nil {
		linear = []*nodes.ClassDef{cls}
	}
	for _, c := range linear {
		for _, b := range c.LocalsOf(name) {
			if fn, ok := b.(*nodes.FunctionDef); ok {
				return fn
			}
		}
	}
	return nil
}

// ===== Subscripts =====

func (e *Engine) inferSubscript(sub *nodes.Subscript, ctx *Context, emit func(Value) bool) {
	idx := e.inferFirst(sub.Index, ctx)
	for _, v := range e.inferAll(sub.Value, ctx.Clone()) {
		switch container := v.(type) {
		case *nodes.List:
			if !e.emitIndexed(container.Elts, idx, ctx, emit) {
				return
			}
		case *nodes.Tuple:
			if !e.emitIndexed(container.Elts, idx, ctx, emit) {
				return
			}
		case *nodes.Const:
			if container.ConstKind == nodes.ConstStr {
				if !emitStrIndex(container.Str(), idx, emit) {
					return
				}
			} else if !emit(Unresolved) {
				return
			}
		case *nodes.Dict:
			key, ok := idx.(*nodes.Const)
			if !ok {
				if !emit(Unresolved) {
					return
				}
				continue
			}
			item, found := container.Item(key)
			if !found {
				if !emit(Unresolved) {
					return
				}
				continue
			}
			if !e.inferInto(item, ctx.Clone(), emit) {
				return
			}
		case *Instance:
			if getitem := e.findMethod(container.Class, "__getitem__"); getitem != nil {
				icc := &CallContext{Args: []nodes.Node{sub.Index}}
				icc.site = e.newCallSite(icc, ctx)
				if !e.inferCallResult(getitem, getitem.Args, icc, container, ctx, emit) {
					return
				}
			} else if !emit(Unresolved) {
				return
			}
		default:
			if !emit(Unresolved) {
				return
			}
		}
	}
}

func (e *Engine) emitIndexed(elts []nodes.Node, idx Value, ctx *Context, emit func(Value) bool) bool {
	c, ok := idx.(*nodes.Const)
	if !ok || c.ConstKind != nodes.ConstInt {
		return emit(Unresolved)
	}
	i := c.Int()
	if i < 0 {
		i += int64(len(elts))
	}
	if i < 0 || i >= int64(len(elts)) {
		return emit(Unresolved)
	}
	return e.inferInto(elts[int(i)], ctx.Clone(), emit)
}

func emitStrIndex(s string, idx Value, emit func(Value) bool) bool {
	c, ok := idx.(*nodes.Const)
	if !ok || c.ConstKind != nodes.ConstInt {
		return emit(Unresolved)
	}
	i := c.Int()
	if i < 0 {
		i += int64(len(s))
	}
	if i < 0 || i >= int64(len(s)) {
		return emit(Unresolved)
	}
	return emit(strConst(string(s[i])))
}

// ===== Operators =====

func (e *Engine) inferBinOp(b *nodes.BinOp, ctx *Context, emit func(Value) bool) {
	lefts := e.inferAll(b.Left, ctx.Clone())
	rights := e.inferAll(b.Right, ctx.Clone())
	for _, lv := range lefts {
		for _, rv := range rights {
			if IsUnresolved(lv) || IsUnresolved(rv) {
				emit(Unresolved)
				return
			}
			if !e.emitBinOpPair(b, lv, rv, ctx, emit) {
				return
			}
		}
	}
}

func (e *Engine) emitBinOpPair(b *nodes.BinOp, lv, rv Value, ctx *Context, emit func(Value) bool) bool {
	lc, lok := lv.(*nodes.Const)
	rc, rok := rv.(*nodes.Const)
	if lok && rok {
		if folded, ok := foldBinary(b.Op, lc, rc); ok {
			return emit(folded)
		}
		return emit(Unresolved)
	}
	if v, ok := foldSequence(b.Op, lv, rv); ok {
		return emit(v)
	}
	if inst, ok := lv.(*Instance); ok {
		if fn := e.findMethod(inst.Class, b.Op.Method()); fn != nil {
			cc := &CallContext{Args: []nodes.Node{b.Right}}
			cc.site = e.newCallSite(cc, ctx)
			return e.inferCallResult(fn, fn.Args, cc, inst, ctx, emit)
		}
	}
	if inst, ok := rv.(*Instance); ok {
		if m := b.Op.ReflectedMethod(); m != "" {
			if fn := e.findMethod(inst.Class, m); fn != nil {
				cc := &CallContext{Args: []nodes.Node{b.Left}}
				cc.site = e.newCallSite(cc, ctx)
				return e.inferCallResult(fn, fn.Args, cc, inst, ctx, emit)
			}
		}
	}
	return emit(Unresolved)
}

const maxRepeatedElts = 256

// foldSequence handles list and tuple concatenation and repetition.
func foldSequence(op nodes.Operator, lv, rv Value) (Value, bool) {
	switch op {
	case nodes.OpAdd:
		if l, ok := lv.(*nodes.List); ok {
			if r, ok := rv.(*nodes.List); ok {
				out := &nodes.List{}
				out.Elts = append(append([]nodes.Node{}, l.Elts...), r.Elts...)
				return out, true
			}
		}
		if l, ok := lv.(*nodes.Tuple); ok {
			if r, ok := rv.(*nodes.Tuple); ok {
				out := &nodes.Tuple{}
				out.Elts = append(append([]nodes.Node{}, l.Elts...), r.Elts...)
				return out, true
			}
		}
	case nodes.OpMul:
		if c, ok := rv.(*nodes.Const); ok && c.ConstKind == nodes.ConstInt {
			return repeatSequence(lv, c.Int())
		}
		if c, ok := lv.(*nodes.Const); ok && c.ConstKind == nodes.ConstInt {
			return repeatSequence(rv, c.Int())
		}
	}
	return nil, false
}

func repeatSequence(v Value, count int64) (Value, bool) {
	elts := sequenceElts(v)
	if elts == nil {
		return nil, false
	}
	if _, isSet := v.(*nodes.Set); isSet {
		return nil, false
	}
	if count < 0 {
		count = 0
	}
	if int64(len(elts))*count > maxRepeatedElts {
		return nil, false
	}
	var out []nodes.Node
	for i := int64(0); i < count; i++ {
		out = append(out, elts...)
	}
	if _, isTuple := v.(*nodes.Tuple); isTuple {
		return &nodes.Tuple{Elts: out}, true
	}
	return &nodes.List{Elts: out}, true
}

func (e *Engine) inferUnaryOp(u *nodes.UnaryOp, ctx *Context, emit func(Value) bool) {
	for _, v := range e.inferAll(u.Operand, ctx.Clone()) {
		if IsUnresolved(v) {
			emit(Unresolved)
			return
		}
		if c, ok := v.(*nodes.Const); ok {
			if folded, ok := foldUnary(u.Op, c); ok {
				if !emit(folded) {
					return
				}
			} else if !emit(Unresolved) {
				return
			}
			continue
		}
		if inst, ok := v.(*Instance); ok {
			if fn := e.findMethod(inst.Class, u.Op.Method()); fn != nil {
				cc := &CallContext{}
				cc.site = e.newCallSite(cc, ctx)
				if !e.inferCallResult(fn, fn.Args, cc, inst, ctx, emit) {
					return
				}
				continue
			}
		}
		if !emit(Unresolved) {
			return
		}
	}
}

func (e *Engine) inferCompare(cmp *nodes.Compare, ctx *Context, emit func(Value) bool) {
	exprs := make([]nodes.Node, 0, len(cmp.Comparators)+1)
	exprs = append(exprs, cmp.Left)
	exprs = append(exprs, cmp.Comparators...)
	operands := make([]*nodes.Const, 0, len(exprs))
	for _, expr := range exprs {
		c, ok := e.inferFirst(expr, ctx).(*nodes.Const)
		if !ok {
			emit(Unresolved)
			return
		}
		operands = append(operands, c)
	}
	result := true
	for i, op := range cmp.Ops {
		link, ok := foldCompare(op, operands[i], operands[i+1])
		if !ok {
			emit(Unresolved)
			return
		}
		if !link {
			result = false
			break
		}
	}
	emit(boolConst(result))
}

// ===== Hierarchy resolution =====

// resolveBases backs the MRO resolver: each base expression resolves to
// the first class definition inference finds for it.
func (e *Engine) resolveBases(cls *nodes.ClassDef) ([]*nodes.ClassDef, error) {
	out := make([]*nodes.ClassDef, 0, len(cls.Bases))
	for _, b := range cls.Bases {
		var found *nodes.ClassDef
		for _, v := range e.inferAll(b, NewContext()) {
			if c, ok := v.(*nodes.ClassDef); ok {
				found = c
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("base %s of %s does not resolve to a class", b, cls.Name)
		}
		out = append(out, found)
	}
	return out, nil
}
