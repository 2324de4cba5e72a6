package nodes

// Operator enumerates the binary, unary and comparison operators of the
// source language.
type Operator int

const (
	// Arithmetic
	OpAdd Operator = iota // +
	OpSub                 // -
	OpMul                 // *
	OpDiv                 // /
	OpFloorDiv            // //
	OpMod                 // %
	OpPow                 // **

	// Bitwise
	OpBitAnd // &
	OpBitOr  // |
	OpBitXor // ^
	OpShl    // <<
	OpShr    // >>

	// Unary
	OpNeg    // -x
	OpPos    // +x
	OpInvert // ~x
	OpNot    // not x

	// Comparison
	OpEq    // ==
	OpNe    // !=
	OpLt    // <
	OpLe    // <=
	OpGt    // >
	OpGe    // >=
	OpIs    // is
	OpIsNot // is not
	OpIn    // in
	OpNotIn // not in
)

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpNeg:
		return "-"
	case OpPos:
		return "+"
	case OpInvert:
		return "~"
	case OpNot:
		return "not "
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpIs:
		return "is"
	case OpIsNot:
		return "is not"
	case OpIn:
		return "in"
	case OpNotIn:
		return "not in"
	default:
		return "unknown"
	}
}

// Method returns the special method name a class implements to support
// the operator, or empty when the operator has no such hook.
func (op Operator) Method() string {
	switch op {
	case OpAdd:
		return "__add__"
	case OpSub:
		return "__sub__"
	case OpMul:
		return "__mul__"
	case OpDiv:
		return "__truediv__"
	case OpFloorDiv:
		return "__floordiv__"
	case OpMod:
		return "__mod__"
	case OpPow:
		return "__pow__"
	case OpBitAnd:
		return "__and__"
	case OpBitOr:
		return "__or__"
	case OpBitXor:
		return "__xor__"
	case OpShl:
		return "__lshift__"
	case OpShr:
		return "__rshift__"
	case OpNeg:
		return "__neg__"
	case OpPos:
		return "__pos__"
	case OpInvert:
		return "__invert__"
	default:
		return ""
	}
}

// ReflectedMethod returns the right-hand special method consulted when
// the left operand's method does not resolve.
func (op Operator) ReflectedMethod() string {
	switch op {
	case OpAdd:
		return "__radd__"
	case OpSub:
		return "__rsub__"
	case OpMul:
		return "__rmul__"
	case OpDiv:
		return "__rtruediv__"
	case OpFloorDiv:
		return "__rfloordiv__"
	case OpMod:
		return "__rmod__"
	case OpPow:
		return "__rpow__"
	case OpBitAnd:
		return "__rand__"
	case OpBitOr:
		return "__ror__"
	case OpBitXor:
		return "__rxor__"
	case OpShl:
		return "__rlshift__"
	case OpShr:
		return "__rrshift__"
	default:
		return ""
	}
}
