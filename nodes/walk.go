package nodes

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch n := n.(type) {
	case *Module:
		add(n.Body...)
	case *ClassDef:
		add(n.Decorators...)
		add(n.Bases...)
		for _, kw := range n.Keywords {
			add(kw)
		}
		add(n.Body...)
	case *FunctionDef:
		add(n.Decorators...)
		if n.Args != nil {
			add(n.Args)
		}
		add(n.Body...)
	case *Lambda:
		if n.Args != nil {
			add(n.Args)
		}
		add(n.Body)
	case *Comprehension:
		add(n.Key, n.Element)
		for _, cl := range n.Clauses {
			add(cl.Target, cl.Iter)
			add(cl.Ifs...)
		}
	case *Arguments:
		for _, p := range n.Params {
			add(p)
		}
		for _, p := range n.KwOnly {
			add(p)
		}
		if n.Vararg != nil {
			add(n.Vararg)
		}
		if n.Kwarg != nil {
			add(n.Kwarg)
		}
	case *Param:
		add(n.Default)
	case *Assign:
		add(n.Targets...)
		add(n.Value)
	case *AssignAttr:
		add(n.Expr)
	case *If:
		add(n.Test)
		add(n.Body...)
		add(n.Orelse...)
	case *For:
		add(n.Target, n.Iter)
		add(n.Body...)
		add(n.Orelse...)
	case *While:
		add(n.Test)
		add(n.Body...)
		add(n.Orelse...)
	case *Try:
		add(n.Body...)
		for _, h := range n.Handlers {
			add(h)
		}
		add(n.Orelse...)
		add(n.Final...)
	case *ExceptHandler:
		add(n.Type)
		if n.Name != nil {
			add(n.Name)
		}
		add(n.Body...)
	case *Return:
		add(n.Value)
	case *ExprStmt:
		add(n.Value)
	case *BinOp:
		add(n.Left, n.Right)
	case *UnaryOp:
		add(n.Operand)
	case *BoolOp:
		add(n.Values...)
	case *Compare:
		add(n.Left)
		add(n.Comparators...)
	case *Call:
		add(n.Func)
		add(n.Args...)
		for _, kw := range n.Keywords {
			add(kw)
		}
	case *Keyword:
		add(n.Value)
	case *Starred:
		add(n.Value)
	case *Attribute:
		add(n.Expr)
	case *Subscript:
		add(n.Value, n.Index)
	case *Slice:
		add(n.Lower, n.Upper, n.Step)
	case *IfExp:
		add(n.Test, n.Body, n.Orelse)
	case *List:
		add(n.Elts...)
	case *Tuple:
		add(n.Elts...)
	case *Set:
		add(n.Elts...)
	case *Dict:
		for i := range n.Keys {
			add(n.Keys[i], n.Values[i])
		}
	}
	return out
}

// Walk traverses the tree rooted at n in preorder, calling f for each
// node. Traversal into a node's children is skipped when f returns
// false.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, f)
	}
}

// ModuleOf returns the module enclosing n, or nil for a detached tree.
func ModuleOf(n Node) *Module {
	for cur := n; cur != nil; cur = cur.Parent() {
		if m, ok := cur.(*Module); ok {
			return m
		}
	}
	return nil
}

// EnclosingScope returns the nearest scope node strictly above n, or n
// itself when n is a module (the module is its own scope).
func EnclosingScope(n Node) ScopeNode {
	if m, ok := n.(*Module); ok {
		return m
	}
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if s, ok := cur.(ScopeNode); ok {
			return s
		}
	}
	return nil
}

// FrameOf returns the nearest enclosing frame of n: the function,
// lambda or module whose execution creates the binding namespace.
// Unlike EnclosingScope, class and comprehension scopes are skipped.
func FrameOf(n Node) ScopeNode {
	cur := EnclosingScope(n)
	for cur != nil {
		switch cur.(type) {
		case *Module, *FunctionDef, *Lambda:
			return cur
		}
		cur = EnclosingScope(cur)
	}
	return nil
}
