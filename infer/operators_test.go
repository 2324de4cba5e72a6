package infer

import (
	"strings"
	"testing"

	"github.com/pylint-dev/astroid/nodes"
)

func foldInt(t *testing.T, op nodes.Operator, l, r int64) *nodes.Const {
	t.Helper()
	c, ok := foldBinary(op, intConst(l), intConst(r))
	if !ok {
		t.Fatalf("fold %d %s %d: undefined", l, op, r)
	}
	return c
}

func TestFoldIntArithmetic(t *testing.T) {
	cases := []struct {
		op   nodes.Operator
		l, r int64
		want int64
	}{
		{nodes.OpAdd, 2, 3, 5},
		{nodes.OpSub, 2, 3, -1},
		{nodes.OpMul, -4, 3, -12},
		{nodes.OpFloorDiv, 7, 2, 3},
		{nodes.OpFloorDiv, -7, 2, -4},
		{nodes.OpMod, 7, 3, 1},
		{nodes.OpMod, -7, 3, 2},  // sign follows the divisor
		{nodes.OpMod, 7, -3, -2},
		{nodes.OpPow, 2, 10, 1024},
		{nodes.OpBitAnd, 6, 3, 2},
		{nodes.OpBitOr, 6, 3, 7},
		{nodes.OpBitXor, 6, 3, 5},
		{nodes.OpShl, 1, 4, 16},
		{nodes.OpShr, 16, 2, 4},
	}
	for _, tc := range cases {
		got := foldInt(t, tc.op, tc.l, tc.r)
		if got.ConstKind != nodes.ConstInt || got.Int() != tc.want {
			t.Errorf("%d %s %d = %v, want %d", tc.l, tc.op, tc.r, got, tc.want)
		}
	}
}

func TestFoldIntDivisionWidens(t *testing.T) {
	c := foldInt(t, nodes.OpDiv, 7, 2)
	if c.ConstKind != nodes.ConstFloat {
		t.Fatalf("7 / 2 = %v, want a float", c)
	}
	if v, _ := c.Value.(float64); v != 3.5 {
		t.Fatalf("7 / 2 = %v, want 3.5", v)
	}
}

func TestFoldIntUndefinedCases(t *testing.T) {
	undefined := []struct {
		op   nodes.Operator
		l, r int64
	}{
		{nodes.OpDiv, 1, 0},
		{nodes.OpFloorDiv, 1, 0},
		{nodes.OpMod, 1, 0},
		{nodes.OpPow, 0, -1},
		{nodes.OpPow, 2, 63}, // would overflow
		{nodes.OpShl, 1, 64},
		{nodes.OpShl, 1, -1},
		{nodes.OpShr, 1, -1},
	}
	for _, tc := range undefined {
		if c, ok := foldBinary(tc.op, intConst(tc.l), intConst(tc.r)); ok {
			t.Errorf("%d %s %d = %v, want undefined", tc.l, tc.op, tc.r, c)
		}
	}
}

func TestFoldNegativeExponent(t *testing.T) {
	c := foldInt(t, nodes.OpPow, 2, -1)
	if c.ConstKind != nodes.ConstFloat {
		t.Fatalf("2 ** -1 = %v, want a float", c)
	}
	if v, _ := c.Value.(float64); v != 0.5 {
		t.Fatalf("2 ** -1 = %v, want 0.5", v)
	}
}

func TestFoldFloatArithmetic(t *testing.T) {
	c, ok := foldBinary(nodes.OpAdd, floatConst(1.5), intConst(2))
	if !ok || c.ConstKind != nodes.ConstFloat {
		t.Fatalf("1.5 + 2 = %v, %v, want a float", c, ok)
	}
	if v, _ := c.Value.(float64); v != 3.5 {
		t.Fatalf("1.5 + 2 = %v, want 3.5", v)
	}

	c, ok = foldBinary(nodes.OpMod, floatConst(-7), floatConst(3))
	if !ok {
		t.Fatal("-7.0 % 3.0: undefined")
	}
	if v, _ := c.Value.(float64); v != 2 {
		t.Fatalf("-7.0 %% 3.0 = %v, want 2 (sign follows the divisor)", v)
	}

	if _, ok := foldBinary(nodes.OpDiv, floatConst(1), floatConst(0)); ok {
		t.Error("float division by zero should be undefined")
	}
}

func TestFoldStringOperations(t *testing.T) {
	c, ok := foldBinary(nodes.OpAdd, strConst("ab"), strConst("cd"))
	if !ok || c.Str() != "abcd" {
		t.Fatalf("string concat = %v, %v", c, ok)
	}

	c, ok = foldBinary(nodes.OpMul, strConst("ab"), intConst(3))
	if !ok || c.Str() != "ababab" {
		t.Fatalf("string repeat = %v, %v", c, ok)
	}
	c, ok = foldBinary(nodes.OpMul, intConst(2), strConst("x"))
	if !ok || c.Str() != "xx" {
		t.Fatalf("reversed repeat = %v, %v", c, ok)
	}
	c, ok = foldBinary(nodes.OpMul, strConst("x"), intConst(-1))
	if !ok || c.Str() != "" {
		t.Fatalf("negative repeat = %v, %v, want empty string", c, ok)
	}

	if _, ok := foldBinary(nodes.OpSub, strConst("a"), strConst("b")); ok {
		t.Error("string subtraction should be undefined")
	}
	if _, ok := foldBinary(nodes.OpAdd, strConst("a"), intConst(1)); ok {
		t.Error("mixed string and int addition should be undefined")
	}
}

func TestFoldStringLengthCap(t *testing.T) {
	long := strings.Repeat("x", maxFoldedLen)
	if _, ok := foldBinary(nodes.OpAdd, strConst(long), strConst("y")); ok {
		t.Error("oversized concat should be undefined")
	}
	if _, ok := foldBinary(nodes.OpMul, strConst(long), intConst(2)); ok {
		t.Error("oversized repeat should be undefined")
	}
}

func TestFoldUnary(t *testing.T) {
	if c, ok := foldUnary(nodes.OpNeg, intConst(3)); !ok || c.Int() != -3 {
		t.Errorf("-3 = %v, %v", c, ok)
	}
	if c, ok := foldUnary(nodes.OpInvert, intConst(0)); !ok || c.Int() != -1 {
		t.Errorf("~0 = %v, %v", c, ok)
	}
	if c, ok := foldUnary(nodes.OpPos, intConst(5)); !ok || c.Int() != 5 {
		t.Errorf("+5 = %v, %v", c, ok)
	}
	if c, ok := foldUnary(nodes.OpNot, strConst("")); !ok || c.Value != true {
		t.Errorf("not \"\" = %v, %v, want True", c, ok)
	}
	if c, ok := foldUnary(nodes.OpNot, intConst(7)); !ok || c.Value != false {
		t.Errorf("not 7 = %v, %v, want False", c, ok)
	}
	if _, ok := foldUnary(nodes.OpNeg, strConst("a")); ok {
		t.Error("negating a string should be undefined")
	}
}

func TestFoldCompareNumbers(t *testing.T) {
	cases := []struct {
		op   nodes.Operator
		l, r *nodes.Const
		want bool
	}{
		{nodes.OpLt, intConst(1), intConst(2), true},
		{nodes.OpLe, intConst(2), intConst(2), true},
		{nodes.OpGt, intConst(1), intConst(2), false},
		{nodes.OpEq, intConst(1), floatConst(1), true},
		{nodes.OpEq, boolConst(true), intConst(1), true}, // bools widen
		{nodes.OpNe, boolConst(false), intConst(0), false},
	}
	for _, tc := range cases {
		got, ok := foldCompare(tc.op, tc.l, tc.r)
		if !ok || got != tc.want {
			t.Errorf("%v %s %v = %v, %v, want %v", tc.l, tc.op, tc.r, got, ok, tc.want)
		}
	}
}

func TestFoldCompareStrings(t *testing.T) {
	if got, ok := foldCompare(nodes.OpLt, strConst("a"), strConst("b")); !ok || !got {
		t.Error(`"a" < "b" should be True`)
	}
	if got, ok := foldCompare(nodes.OpEq, strConst("a"), intConst(1)); !ok || got {
		t.Error("a string never equals a number")
	}
	if got, ok := foldCompare(nodes.OpNe, strConst("a"), intConst(1)); !ok || !got {
		t.Error("a string always differs from a number")
	}
	if _, ok := foldCompare(nodes.OpLt, strConst("a"), intConst(1)); ok {
		t.Error("ordering a string against a number should be undefined")
	}
}

func TestFoldCompareNone(t *testing.T) {
	if got, ok := foldCompare(nodes.OpEq, noneConst(), noneConst()); !ok || !got {
		t.Error("None == None should be True")
	}
	if got, ok := foldCompare(nodes.OpNe, noneConst(), intConst(1)); !ok || !got {
		t.Error("None != 1 should be True")
	}
	if _, ok := foldCompare(nodes.OpLt, noneConst(), intConst(1)); ok {
		t.Error("ordering None should be undefined")
	}
}

func TestFoldCompareIdentity(t *testing.T) {
	if got, ok := foldCompare(nodes.OpIs, noneConst(), noneConst()); !ok || !got {
		t.Error("None is None should be True")
	}
	if got, ok := foldCompare(nodes.OpIsNot, boolConst(true), boolConst(false)); !ok || !got {
		t.Error("True is not False should be True")
	}
	// Identity of uninterned values depends on the runtime, not the text.
	if _, ok := foldCompare(nodes.OpIs, intConst(1), intConst(1)); ok {
		t.Error("identity of plain ints should be undefined")
	}
}
