package brain

import "github.com/pylint-dev/astroid/nodes"

// ApplyTransforms rewrites the tree rooted at root using the
// build-phase transform entries, children first. It returns the
// (possibly replaced) root. The caller must re-run nodes.Finalize on
// the result before inference; the module manager does this.
func (r *Registry) ApplyTransforms(root nodes.Node) nodes.Node {
	if len(r.transforms) == 0 {
		return root
	}
	return r.rewrite(root)
}

func (r *Registry) rewrite(n nodes.Node) nodes.Node {
	for _, c := range nodes.Children(n) {
		if replaced := r.rewrite(c); replaced != c {
			replaceChild(n, c, replaced)
		}
	}
	if replacement := r.Transform(n); replacement != nil {
		return replacement
	}
	return n
}

func replaceInSlice(s []nodes.Node, old, repl nodes.Node) bool {
	for i, c := range s {
		if c == old {
			s[i] = repl
			return true
		}
	}
	return false
}

// replaceChild substitutes repl for old in the parent's child slot.
// Slots with a more specific static type than Node (parameter lists,
// keyword lists, except handlers) only accept a replacement of the
// same concrete type and otherwise keep the original.
func replaceChild(parent, old, repl nodes.Node) {
	switch p := parent.(type) {
	case *nodes.Module:
		replaceInSlice(p.Body, old, repl)
	case *nodes.ClassDef:
		if !replaceInSlice(p.Bases, old, repl) && !replaceInSlice(p.Body, old, repl) {
			replaceInSlice(p.Decorators, old, repl)
		}
	case *nodes.FunctionDef:
		if !replaceInSlice(p.Body, old, repl) {
			replaceInSlice(p.Decorators, old, repl)
		}
	case *nodes.Lambda:
		if p.Body == old {
			p.Body = repl
		}
	case *nodes.Comprehension:
		if p.Element == old {
			p.Element = repl
		} else if p.Key == old {
			p.Key = repl
		} else {
			for _, cl := range p.Clauses {
				if cl.Target == old {
					cl.Target = repl
				} else if cl.Iter == old {
					cl.Iter = repl
				} else {
					replaceInSlice(cl.Ifs, old, repl)
				}
			}
		}
	case *nodes.Param:
		if p.Default == old {
			p.Default = repl
		}
	case *nodes.Assign:
		if p.Value == old {
			p.Value = repl
		} else {
			replaceInSlice(p.Targets, old, repl)
		}
	case *nodes.AssignAttr:
		if p.Expr == old {
			p.Expr = repl
		}
	case *nodes.If:
		if p.Test == old {
			p.Test = repl
		} else if !replaceInSlice(p.Body, old, repl) {
			replaceInSlice(p.Orelse, old, repl)
		}
	case *nodes.For:
		if p.Iter == old {
			p.Iter = repl
		} else if p.Target == old {
			p.Target = repl
		} else if !replaceInSlice(p.Body, old, repl) {
			replaceInSlice(p.Orelse, old, repl)
		}
	case *nodes.While:
		if p.Test == old {
			p.Test = repl
		} else if !replaceInSlice(p.Body, old, repl) {
			replaceInSlice(p.Orelse, old, repl)
		}
	case *nodes.Try:
		if !replaceInSlice(p.Body, old, repl) && !replaceInSlice(p.Orelse, old, repl) {
			replaceInSlice(p.Final, old, repl)
		}
	case *nodes.ExceptHandler:
		if p.Type == old {
			p.Type = repl
		} else {
			replaceInSlice(p.Body, old, repl)
		}
	case *nodes.Return:
		if p.Value == old {
			p.Value = repl
		}
	case *nodes.ExprStmt:
		if p.Value == old {
			p.Value = repl
		}
	case *nodes.BinOp:
		if p.Left == old {
			p.Left = repl
		} else if p.Right == old {
			p.Right = repl
		}
	case *nodes.UnaryOp:
		if p.Operand == old {
			p.Operand = repl
		}
	case *nodes.BoolOp:
		replaceInSlice(p.Values, old, repl)
	case *nodes.Compare:
		if p.Left == old {
			p.Left = repl
		} else {
			replaceInSlice(p.Comparators, old, repl)
		}
	case *nodes.Call:
		if p.Func == old {
			p.Func = repl
		} else {
			replaceInSlice(p.Args, old, repl)
		}
	case *nodes.Keyword:
		if p.Value == old {
			p.Value = repl
		}
	case *nodes.Starred:
		if p.Value == old {
			p.Value = repl
		}
	case *nodes.Attribute:
		if p.Expr == old {
			p.Expr = repl
		}
	case *nodes.Subscript:
		if p.Value == old {
			p.Value = repl
		} else if p.Index == old {
			p.Index = repl
		}
	case *nodes.Slice:
		if p.Lower == old {
			p.Lower = repl
		} else if p.Upper == old {
			p.Upper = repl
		} else if p.Step == old {
			p.Step = repl
		}
	case *nodes.IfExp:
		if p.Test == old {
			p.Test = repl
		} else if p.Body == old {
			p.Body = repl
		} else if p.Orelse == old {
			p.Orelse = repl
		}
	case *nodes.List:
		replaceInSlice(p.Elts, old, repl)
	case *nodes.Tuple:
		replaceInSlice(p.Elts, old, repl)
	case *nodes.Set:
		replaceInSlice(p.Elts, old, repl)
	case *nodes.Dict:
		if !replaceInSlice(p.Keys, old, repl) {
			replaceInSlice(p.Values, old, repl)
		}
	}
}
