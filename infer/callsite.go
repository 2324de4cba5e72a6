package infer

import "github.com/pylint-dev/astroid/nodes"

// CallContext records the argument expressions of the call under
// analysis, as written at the call site. The engine attaches it to the
// context before inferring a callable's body so parameter lookups can
// see their bindings.
type CallContext struct {
	Args     []nodes.Node
	Keywords []*nodes.Keyword

	site *CallSite
}

// CallSite is a call with its star and double-star arguments unpacked
// against the values inference found for them. Failed unpackings are
// recorded as flags rather than errors: the parameters they obscure
// degrade to Unresolved.
type CallSite struct {
	args       []Value
	keywords   map[string]Value
	duplicated map[string]bool
	starFailed bool
	kwFailed   bool
}

// newCallSite unpacks the call's arguments in the caller's context.
// Starred arguments expand when their value infers to a list or tuple
// literal; double-starred ones expand when their value infers to a dict
// literal with constant string keys.
func (e *Engine) newCallSite(cc *CallContext, ctx *Context) *CallSite {
	s := &CallSite{
		keywords:   make(map[string]Value),
		duplicated: make(map[string]bool),
	}
	for _, arg := range cc.Args {
		star, ok := arg.(*nodes.Starred)
		if !ok {
			s.args = append(s.args, arg)
			continue
		}
		switch seq := e.inferFirst(star.Value, ctx).(type) {
		case *nodes.Tuple:
			for _, elt := range seq.Elts {
				s.args = append(s.args, elt)
			}
		case *nodes.List:
			for _, elt := range seq.Elts {
				s.args = append(s.args, elt)
			}
		default:
			s.args = append(s.args, Unresolved)
			s.starFailed = true
		}
	}
	for _, kw := range cc.Keywords {
		if kw.Name != "" {
			s.keywords[kw.Name] = kw.Value
			continue
		}
		d, ok := e.inferFirst(kw.Value, ctx).(*nodes.Dict)
		if !ok {
			s.kwFailed = true
			continue
		}
		for i, k := range d.Keys {
			kc, ok := k.(*nodes.Const)
			if !ok || kc.ConstKind != nodes.ConstStr {
				s.kwFailed = true
				continue
			}
			name := kc.Str()
			if _, dup := s.keywords[name]; dup {
				s.duplicated[name] = true
				continue
			}
			s.keywords[name] = d.Values[i]
		}
	}
	return s
}

// HasInvalidArguments reports whether some positional arguments could
// not be unpacked, making positional binding unreliable.
func (s *CallSite) HasInvalidArguments() bool { return s.starFailed }

// HasInvalidKeywords reports whether some keyword arguments could not
// be unpacked or arrived more than once.
func (s *CallSite) HasInvalidKeywords() bool { return s.kwFailed || len(s.duplicated) > 0 }

// receiverShift is 1 when a bound receiver occupies the first declared
// parameter, displacing the call site's positional arguments.
func receiverShift(fn *nodes.FunctionDef, bound bool) int {
	if !bound || fn == nil || fn.Type() == nodes.StaticMethod {
		return 0
	}
	return 1
}

func callableName(fn *nodes.FunctionDef) string {
	if fn == nil {
		return "lambda"
	}
	return fn.Name
}

// Bind validates the call against the declared parameters: arity,
// unknown keyword names, duplicated keywords, and parameters supplied
// both positionally and by keyword. fn is nil for a lambda. A nil error
// does not guarantee every parameter has a binding in the presence of
// failed unpackings.
func (s *CallSite) Bind(fn *nodes.FunctionDef, args *nodes.Arguments, bound bool) error {
	callable := callableName(fn)
	shift := receiverShift(fn, bound)
	for name := range s.duplicated {
		return &BindError{Kind: InvalidKeywords, Callable: callable, Name: name}
	}
	if !s.starFailed {
		if args.Vararg == nil && len(s.args)+shift > len(args.Params) {
			return &BindError{Kind: InvalidArguments, Callable: callable}
		}
		for name := range s.keywords {
			idx, _ := args.Find(name)
			if idx >= 0 && idx-shift >= 0 && idx-shift < len(s.args) {
				return &BindError{Kind: InvalidArguments, Callable: callable, Name: name}
			}
		}
	}
	if !s.kwFailed {
		if args.Kwarg == nil {
			for name := range s.keywords {
				if _, p := args.Find(name); p == nil {
					return &BindError{Kind: InvalidKeywords, Callable: callable, Name: name}
				}
			}
		}
		if !s.starFailed {
			for i, p := range args.Params {
				if p.Default != nil || i < shift {
					continue
				}
				if i-shift < len(s.args) {
					continue
				}
				if _, ok := s.keywords[p.Name]; ok {
					continue
				}
				return &BindError{Kind: InvalidArguments, Callable: callable, Name: p.Name}
			}
		}
	}
	return nil
}

// InferArgument produces the values bound to the named parameter at
// this call site. Resolution order: explicit keyword, bound receiver,
// positional slot, vararg and kwarg collection, declared default.
func (s *CallSite) InferArgument(e *Engine, fn *nodes.FunctionDef, args *nodes.Arguments, name string, ctx *Context) ([]Value, error) {
	if s.duplicated[name] {
		return nil, &BindError{Kind: InvalidKeywords, Callable: callableName(fn), Name: name}
	}
	if v, ok := s.keywords[name]; ok {
		return s.resolve(e, v, ctx), nil
	}

	bound := ctx.Bound != nil
	shift := receiverShift(fn, bound)
	idx, param := args.Find(name)
	if idx >= 0 {
		if shift == 1 && idx == 0 {
			return []Value{ctx.Bound}, nil
		}
		if pos := idx - shift; pos >= 0 && pos < len(s.args) {
			if s.starFailed {
				return []Value{Unresolved}, nil
			}
			return s.resolve(e, s.args[pos], ctx), nil
		}
		if idx == 0 && !bound && fn != nil {
			switch fn.Type() {
			case nodes.Method:
				if cls, ok := fn.Parent().(*nodes.ClassDef); ok {
					return []Value{&Instance{Class: cls}}, nil
				}
			case nodes.ClassMethod:
				if cls, ok := fn.Parent().(*nodes.ClassDef); ok {
					return []Value{cls}, nil
				}
			}
		}
	}
	if args.Vararg != nil && name == args.Vararg.Name {
		return s.varargValue(args, shift), nil
	}
	if args.Kwarg != nil && name == args.Kwarg.Name {
		return s.kwargValue(args), nil
	}
	if param != nil && param.Default != nil {
		return s.resolve(e, param.Default, ctx), nil
	}
	if s.starFailed || s.kwFailed {
		return []Value{Unresolved}, nil
	}
	return nil, errNoBinding{name: name}
}

// varargValue collects the positional overflow into a synthetic tuple.
func (s *CallSite) varargValue(args *nodes.Arguments, shift int) []Value {
	if s.starFailed {
		return []Value{Unresolved}
	}
	rest := len(args.Params) - shift
	if rest < 0 {
		rest = 0
	}
	tup := &nodes.Tuple{}
	for _, v := range s.args[min(rest, len(s.args)):] {
		n, ok := v.(nodes.Node)
		if !ok {
			return []Value{Unresolved}
		}
		tup.Elts = append(tup.Elts, n)
	}
	return []Value{tup}
}

// kwargValue collects the undeclared keywords into a synthetic dict.
func (s *CallSite) kwargValue(args *nodes.Arguments) []Value {
	if s.kwFailed {
		return []Value{Unresolved}
	}
	d := &nodes.Dict{}
	for name, v := range s.keywords {
		if _, p := args.Find(name); p != nil {
			continue
		}
		n, ok := v.(nodes.Node)
		if !ok {
			return []Value{Unresolved}
		}
		d.Keys = append(d.Keys, &nodes.Const{ConstKind: nodes.ConstStr, Value: name})
		d.Values = append(d.Values, n)
	}
	return []Value{d}
}

// resolve turns one stored argument into its inferred values. Argument
// expressions evaluate in the caller's scope, so the callee's call
// state must not leak into them.
func (s *CallSite) resolve(e *Engine, v Value, ctx *Context) []Value {
	n, ok := v.(nodes.Node)
	if !ok {
		return []Value{v}
	}
	sub := ctx.Clone()
	sub.Call = nil
	sub.Bound = nil
	sub.LookupName = ""
	return e.inferAll(n, sub)
}
