package infer

import (
	"math"
	"strings"

	"github.com/pylint-dev/astroid/nodes"
)

// Constant folding over literal operands. Every fold is best-effort:
// the boolean result reports whether the operation is defined for the
// operand types, and an undefined one degrades to Unresolved at the
// call site rather than erroring.

const maxFoldedLen = 4096

func constFloat(c *nodes.Const) (float64, bool) {
	switch c.ConstKind {
	case nodes.ConstInt:
		return float64(c.Int()), true
	case nodes.ConstFloat:
		v, _ := c.Value.(float64)
		return v, true
	}
	return 0, false
}

func intConst(v int64) *nodes.Const   { return &nodes.Const{ConstKind: nodes.ConstInt, Value: v} }
func floatConst(v float64) *nodes.Const {
	return &nodes.Const{ConstKind: nodes.ConstFloat, Value: v}
}
func strConst(v string) *nodes.Const  { return &nodes.Const{ConstKind: nodes.ConstStr, Value: v} }
func boolConst(v bool) *nodes.Const   { return &nodes.Const{ConstKind: nodes.ConstBool, Value: v} }
func noneConst() *nodes.Const         { return &nodes.Const{ConstKind: nodes.ConstNone} }

// truthy reports the boolean interpretation of a constant.
func truthy(c *nodes.Const) bool {
	switch c.ConstKind {
	case nodes.ConstInt:
		return c.Int() != 0
	case nodes.ConstFloat:
		v, _ := c.Value.(float64)
		return v != 0
	case nodes.ConstStr:
		return c.Str() != ""
	case nodes.ConstBool:
		v, _ := c.Value.(bool)
		return v
	}
	return false
}

// foldBinary evaluates op over two constants.
func foldBinary(op nodes.Operator, l, r *nodes.Const) (*nodes.Const, bool) {
	if l.ConstKind == nodes.ConstStr || r.ConstKind == nodes.ConstStr {
		return foldStringBinary(op, l, r)
	}
	if l.ConstKind == nodes.ConstInt && r.ConstKind == nodes.ConstInt {
		return foldIntBinary(op, l.Int(), r.Int())
	}
	lf, lok := constFloat(l)
	rf, rok := constFloat(r)
	if !lok || !rok {
		return nil, false
	}
	return foldFloatBinary(op, lf, rf)
}

func foldIntBinary(op nodes.Operator, l, r int64) (*nodes.Const, bool) {
	switch op {
	case nodes.OpAdd:
		return intConst(l + r), true
	case nodes.OpSub:
		return intConst(l - r), true
	case nodes.OpMul:
		return intConst(l * r), true
	case nodes.OpDiv:
		if r == 0 {
			return nil, false
		}
		return floatConst(float64(l) / float64(r)), true
	case nodes.OpFloorDiv:
		if r == 0 {
			return nil, false
		}
		return intConst(floorDiv(l, r)), true
	case nodes.OpMod:
		if r == 0 {
			return nil, false
		}
		// Sign follows the divisor.
		return intConst(l - floorDiv(l, r)*r), true
	case nodes.OpPow:
		return intPow(l, r)
	case nodes.OpBitAnd:
		return intConst(l & r), true
	case nodes.OpBitOr:
		return intConst(l | r), true
	case nodes.OpBitXor:
		return intConst(l ^ r), true
	case nodes.OpShl:
		if r < 0 || r >= 64 {
			return nil, false
		}
		return intConst(l << uint(r)), true
	case nodes.OpShr:
		if r < 0 {
			return nil, false
		}
		if r >= 64 {
			r = 63
		}
		return intConst(l >> uint(r)), true
	}
	return nil, false
}

func floorDiv(l, r int64) int64 {
	q := l / r
	if (l%r != 0) && ((l < 0) != (r < 0)) {
		q--
	}
	return q
}

func intPow(base, exp int64) (*nodes.Const, bool) {
	if exp < 0 {
		if base == 0 {
			return nil, false
		}
		return floatConst(math.Pow(float64(base), float64(exp))), true
	}
	if exp > 62 {
		return nil, false
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return intConst(result), true
}

func foldFloatBinary(op nodes.Operator, l, r float64) (*nodes.Const, bool) {
	switch op {
	case nodes.OpAdd:
		return floatConst(l + r), true
	case nodes.OpSub:
		return floatConst(l - r), true
	case nodes.OpMul:
		return floatConst(l * r), true
	case nodes.OpDiv:
		if r == 0 {
			return nil, false
		}
		return floatConst(l / r), true
	case nodes.OpFloorDiv:
		if r == 0 {
			return nil, false
		}
		return floatConst(math.Floor(l / r)), true
	case nodes.OpMod:
		if r == 0 {
			return nil, false
		}
		m := math.Mod(l, r)
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return floatConst(m), true
	case nodes.OpPow:
		return floatConst(math.Pow(l, r)), true
	}
	return nil, false
}

func foldStringBinary(op nodes.Operator, l, r *nodes.Const) (*nodes.Const, bool) {
	switch op {
	case nodes.OpAdd:
		if l.ConstKind == nodes.ConstStr && r.ConstKind == nodes.ConstStr {
			if len(l.Str())+len(r.Str()) > maxFoldedLen {
				return nil, false
			}
			return strConst(l.Str() + r.Str()), true
		}
	case nodes.OpMul:
		s, n := l, r
		if s.ConstKind != nodes.ConstStr {
			s, n = r, l
		}
		if s.ConstKind != nodes.ConstStr || n.ConstKind != nodes.ConstInt {
			return nil, false
		}
		count := n.Int()
		if count < 0 {
			count = 0
		}
		if int64(len(s.Str()))*count > maxFoldedLen {
			return nil, false
		}
		return strConst(strings.Repeat(s.Str(), int(count))), true
	}
	return nil, false
}

// foldUnary evaluates a unary operator over a constant.
func foldUnary(op nodes.Operator, c *nodes.Const) (*nodes.Const, bool) {
	switch op {
	case nodes.OpNot:
		return boolConst(!truthy(c)), true
	case nodes.OpNeg:
		switch c.ConstKind {
		case nodes.ConstInt:
			return intConst(-c.Int()), true
		case nodes.ConstFloat:
			v, _ := constFloat(c)
			return floatConst(-v), true
		}
	case nodes.OpPos:
		if c.ConstKind == nodes.ConstInt || c.ConstKind == nodes.ConstFloat {
			return c, true
		}
	case nodes.OpInvert:
		if c.ConstKind == nodes.ConstInt {
			return intConst(^c.Int()), true
		}
	}
	return nil, false
}

// foldCompare evaluates one comparison link between two constants.
// Identity comparisons are only defined for the interned constants,
// None and the booleans.
func foldCompare(op nodes.Operator, l, r *nodes.Const) (bool, bool) {
	switch op {
	case nodes.OpIs, nodes.OpIsNot:
		interned := func(c *nodes.Const) bool {
			return c.ConstKind == nodes.ConstNone || c.ConstKind == nodes.ConstBool
		}
		if !interned(l) && !interned(r) {
			return false, false
		}
		same := l.ConstKind == r.ConstKind && l.Value == r.Value
		if op == nodes.OpIsNot {
			return !same, true
		}
		return same, true
	}
	if l.ConstKind == nodes.ConstNone || r.ConstKind == nodes.ConstNone {
		if op == nodes.OpEq {
			return l.ConstKind == r.ConstKind, true
		}
		if op == nodes.OpNe {
			return l.ConstKind != r.ConstKind, true
		}
		return false, false
	}
	if l.ConstKind == nodes.ConstStr && r.ConstKind == nodes.ConstStr {
		return orderedCompare(op, strings.Compare(l.Str(), r.Str()))
	}
	if l.ConstKind == nodes.ConstStr || r.ConstKind == nodes.ConstStr {
		if op == nodes.OpEq {
			return false, true
		}
		if op == nodes.OpNe {
			return true, true
		}
		return false, false
	}
	lf, lok := numericValue(l)
	rf, rok := numericValue(r)
	if !lok || !rok {
		return false, false
	}
	switch {
	case lf < rf:
		return orderedCompare(op, -1)
	case lf > rf:
		return orderedCompare(op, 1)
	}
	return orderedCompare(op, 0)
}

// numericValue widens ints, floats and bools to float64 for comparison.
func numericValue(c *nodes.Const) (float64, bool) {
	if c.ConstKind == nodes.ConstBool {
		if truthy(c) {
			return 1, true
		}
		return 0, true
	}
	return constFloat(c)
}

func orderedCompare(op nodes.Operator, cmp int) (bool, bool) {
	switch op {
	case nodes.OpEq:
		return cmp == 0, true
	case nodes.OpNe:
		return cmp != 0, true
	case nodes.OpLt:
		return cmp < 0, true
	case nodes.OpLe:
		return cmp <= 0, true
	case nodes.OpGt:
		return cmp > 0, true
	case nodes.OpGe:
		return cmp >= 0, true
	}
	return false, false
}
