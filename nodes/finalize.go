package nodes

// Finalize wires parent back references and records name bindings into
// their owning scopes. It must run once after a tree is built or
// transformed, before any lookup or inference consults the tree.
// Finalize is idempotent: it clears and rebuilds all scope locals.
func Finalize(root Node) {
	Walk(root, func(n Node) bool {
		if s, ok := n.(ScopeNode); ok {
			s.resetLocals()
		}
		return true
	})
	setParents(root)
	if s, ok := root.(ScopeNode); ok {
		collectDeclarations(s)
		for _, st := range scopeBody(s) {
			record(st, s)
		}
		return
	}
	// Detached subtree: bind into the nearest scope if one is reachable.
	if s := EnclosingScope(root); s != nil {
		record(root, s)
	}
}

func setParents(n Node) {
	for _, c := range Children(n) {
		c.SetParent(n)
		setParents(c)
	}
}

func scopeBody(s ScopeNode) []Node {
	switch s := s.(type) {
	case *Module:
		return s.Body
	case *ClassDef:
		return s.Body
	case *FunctionDef:
		return s.Body
	}
	return nil
}

// collectDeclarations marks the global and nonlocal declarations of a
// scope body. Declarations apply to the whole scope regardless of
// textual order, so they must be known before bindings are recorded.
func collectDeclarations(s ScopeNode) {
	var scan func(stmts []Node)
	scan = func(stmts []Node) {
		for _, st := range stmts {
			switch st := st.(type) {
			case *Global:
				for _, name := range st.Names {
					s.markGlobal(name)
				}
			case *Nonlocal:
				for _, name := range st.Names {
					s.markNonlocal(name)
				}
			case *If:
				scan(st.Body)
				scan(st.Orelse)
			case *For:
				scan(st.Body)
				scan(st.Orelse)
			case *While:
				scan(st.Body)
				scan(st.Orelse)
			case *Try:
				scan(st.Body)
				scan(st.Orelse)
				scan(st.Final)
				for _, h := range st.Handlers {
					scan(h.Body)
				}
			}
		}
	}
	scan(scopeBody(s))
}

// bindName records bind as a binding of name, honoring global and
// nonlocal redirection declared in the current scope.
func bindName(cur ScopeNode, name string, bind Node) {
	target := cur
	switch {
	case cur.DeclaresGlobal(name):
		if m := ModuleOf(cur); m != nil {
			target = m
		}
	case cur.DeclaresNonlocal(name):
		for s := EnclosingScope(cur); s != nil; s = EnclosingScope(s) {
			if fn, ok := s.(*FunctionDef); ok {
				target = fn
				break
			}
			if _, ok := s.(*Module); ok {
				break
			}
		}
	}
	target.AddLocal(name, bind)
}

// record walks the tree recording bindings, tracking the scope each
// construct belongs to. Scope attribution follows the source language:
// decorators, base classes and parameter defaults evaluate in the
// enclosing scope; a comprehension's first iterable does too.
func record(n Node, cur ScopeNode) {
	switch n := n.(type) {
	case *FunctionDef:
		bindName(cur, n.Name, n)
		for _, d := range n.Decorators {
			record(d, cur)
		}
		recordParams(n.Args, n, cur)
		collectDeclarations(n)
		for _, st := range n.Body {
			record(st, n)
		}
	case *Lambda:
		recordParams(n.Args, n, cur)
		record(n.Body, n)
	case *ClassDef:
		bindName(cur, n.Name, n)
		for _, d := range n.Decorators {
			record(d, cur)
		}
		for _, b := range n.Bases {
			record(b, cur)
		}
		for _, kw := range n.Keywords {
			record(kw.Value, cur)
		}
		collectDeclarations(n)
		for _, st := range n.Body {
			record(st, n)
		}
	case *Comprehension:
		for i, cl := range n.Clauses {
			if i == 0 {
				record(cl.Iter, cur)
			} else {
				record(cl.Iter, n)
			}
			record(cl.Target, n)
			for _, cond := range cl.Ifs {
				record(cond, n)
			}
		}
		if n.Key != nil {
			record(n.Key, n)
		}
		record(n.Element, n)
	case *AssignName:
		bindName(cur, n.Name, n)
	case *ExceptHandler:
		if n.Type != nil {
			record(n.Type, cur)
		}
		if n.Name != nil {
			bindName(cur, n.Name.Name, n.Name)
		}
		for _, st := range n.Body {
			record(st, cur)
		}
	case *Import:
		for _, alias := range n.Names {
			bindName(cur, alias.BoundName(), n)
		}
	case *ImportFrom:
		for _, alias := range n.Names {
			bindName(cur, alias.BoundName(), n)
		}
	case *Global, *Nonlocal:
		// Handled by collectDeclarations.
	default:
		for _, c := range Children(n) {
			record(c, cur)
		}
	}
}

func recordParams(args *Arguments, owner ScopeNode, enclosing ScopeNode) {
	if args == nil {
		return
	}
	for _, p := range args.Params {
		owner.AddLocal(p.Name, p)
		if p.Default != nil {
			record(p.Default, enclosing)
		}
	}
	for _, p := range args.KwOnly {
		owner.AddLocal(p.Name, p)
		if p.Default != nil {
			record(p.Default, enclosing)
		}
	}
	if args.Vararg != nil {
		owner.AddLocal(args.Vararg.Name, args.Vararg)
	}
	if args.Kwarg != nil {
		owner.AddLocal(args.Kwarg.Name, args.Kwarg)
	}
}
