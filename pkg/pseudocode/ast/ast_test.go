// File: ast_test.go
// Title: Pseudocode AST Tests
// Description: Tests for node spans, operator tables, traversal, rendering
//              and the map dumper.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tests

package ast

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds the tree of
//
//	f(n):  # entry
//	    return n[0] + LIMIT
func sample() *Listing {
	n := NewVariable(2, "n")
	comment := NewComment(7, "# entry")
	eol := NewEOL(5, 15, comment, nil)

	index := NewNumberExpr(28, 29, big.NewInt(0), 10, 1)
	sub := NewSubscript(30, NewVariable(26, "n"), index)
	sum := NewBinaryExpr(NewVariableExpr(sub), OpAdd, NewLabelExpr(NewLabel(33, "LIMIT")))
	ret := NewReturnStmt(19, sum, NewEOL(38, 39, nil, nil))

	return NewListing([]*Function{NewFunction(0, "f", []*Variable{n}, []Stmt{ret}, eol)}, nil)
}

func TestSpans(t *testing.T) {
	listing := sample()
	f := listing.Functions[0]
	ret := f.Body[0].(*ReturnStmt)
	sum := ret.Value.(*BinaryExpr)

	assert.Equal(t, 0, listing.Pos())
	assert.Equal(t, 38, listing.End())
	assert.Equal(t, 38, f.End(), "a function ends with its last statement")
	assert.Equal(t, ret.Value.End(), ret.End(), "the line terminator is not part of the statement")
	assert.Equal(t, 26, sum.Pos())
	assert.Equal(t, 38, sum.End())
	assert.Equal(t, 14, f.EOL.Comment.End(), "comment span covers its text")
}

func TestNewListing_RequiresFunction(t *testing.T) {
	assert.Panics(t, func() { NewListing(nil, nil) })
}

func TestNewNumberExpr_RejectsBase(t *testing.T) {
	assert.Panics(t, func() { NewNumberExpr(0, 2, big.NewInt(7), 8, 2) })
}

func TestOperatorTables(t *testing.T) {
	assert.Equal(t, RightAssociative, AssociativityOf(OpPow))
	assert.Equal(t, LeftAssociative, AssociativityOf(OpSub))
	assert.Panics(t, func() { AssociativityOf(BinaryOp("<>")) })

	assert.Less(t, PrecedenceOf(OpLogicalOr), PrecedenceOf(OpLogicalAnd))
	assert.Less(t, PrecedenceOf(OpBitXor), PrecedenceOf(OpBitAnd))
	assert.Less(t, PrecedenceOf(OpMul), PrecedenceOf(OpPow))
	assert.Equal(t, -1, PrecedenceOf(BinaryOp("<>")))

	for _, op := range AssignmentOps {
		parsed, ok := ParseAssignmentOp(string(op))
		assert.True(t, ok, op)
		assert.Equal(t, op, parsed)
	}
	_, ok := ParseAssignmentOp("=+")
	assert.False(t, ok)
}

func TestNumberExpr_String(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		base     int
		digits   int
		expected string
	}{
		{"decimal", 42, 10, 2, "42"},
		{"leading zeros", 7, 10, 3, "007"},
		{"hex", 31, 16, 2, "0x1F"},
		{"padded hex", 255, 16, 4, "0x00FF"},
		{"binary", 5, 2, 4, "0b0101"},
		{"zero", 0, 10, 1, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNumberExpr(0, 1, big.NewInt(tt.value), tt.base, tt.digits)
			if got := n.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExpr_String(t *testing.T) {
	x := NewVariableExpr(NewVariable(0, "x"))
	call := NewFunctionCallExpr(0, 9, "max", []Expr{x, NewBooleanExpr(0, true)})
	expr := NewUnaryExpr(0, OpLogicalNot, NewParenExpr(0, 12, NewBinaryExpr(call, OpEqual, NewEmptyMapExpr(0, 2))))

	assert.Equal(t, "not (max(x, True) == {})", expr.String())
	assert.Equal(t, "-x", NewUnaryExpr(0, OpMinus, x).String())
	assert.Equal(t, "False", NewBooleanExpr(3, false).String())
	assert.Equal(t, 8, NewBooleanExpr(3, false).End())
}

func TestExpr_StringGrouping(t *testing.T) {
	v := func(name string) Expr { return NewVariableExpr(NewVariable(0, name)) }
	bin := func(lhs Expr, op BinaryOp, rhs Expr) Expr { return NewBinaryExpr(lhs, op, rhs) }
	neg := func(e Expr) Expr { return NewUnaryExpr(0, OpMinus, e) }
	not := func(e Expr) Expr { return NewUnaryExpr(0, OpLogicalNot, e) }

	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{"tighter child", bin(bin(v("a"), OpMul, v("b")), OpAdd, v("c")), "a * b + c"},
		{"looser child", bin(bin(v("a"), OpAdd, v("b")), OpMul, v("c")), "(a + b) * c"},
		{"left fold", bin(bin(v("a"), OpSub, v("b")), OpSub, v("c")), "a - b - c"},
		{"against left fold", bin(v("a"), OpSub, bin(v("b"), OpSub, v("c"))), "a - (b - c)"},
		{"right fold", bin(v("a"), OpPow, bin(v("b"), OpPow, v("c"))), "a ** b ** c"},
		{"against right fold", bin(bin(v("a"), OpPow, v("b")), OpPow, v("c")), "(a ** b) ** c"},
		{"signed exponent", bin(v("a"), OpPow, neg(v("b"))), "a ** -b"},
		{"signed base", bin(neg(v("a")), OpPow, v("b")), "(-a) ** b"},
		{"negated power", neg(bin(v("a"), OpPow, v("b"))), "-a ** b"},
		{"negated sum", neg(bin(v("a"), OpAdd, v("b"))), "-(a + b)"},
		{"not in conjunction", bin(v("a"), OpLogicalAnd, not(v("b"))), "a and not b"},
		{"not in comparison", bin(not(v("a")), OpEqual, v("b")), "(not a) == b"},
		{"not over comparison", not(bin(v("a"), OpEqual, v("b"))), "not a == b"},
		{"not over disjunction", not(bin(v("a"), OpLogicalOr, v("b"))), "not (a or b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmt.Sprint(tt.expr); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestChildren(t *testing.T) {
	f := sample().Functions[0]

	children := Children(f)
	require.Len(t, children, 3)
	assert.IsType(t, &Variable{}, children[0])
	assert.IsType(t, &EOL{}, children[1])
	assert.IsType(t, &ReturnStmt{}, children[2])

	assert.Len(t, Children(f.EOL), 1, "comment of the heading line")
	assert.Empty(t, Children(NewEOL(0, 1, nil, nil)), "nil comment is omitted")
}

func TestWalk(t *testing.T) {
	var kinds []string
	Walk(sample(), func(n Node) bool {
		if IsTrivia(n) {
			return false
		}
		kinds = append(kinds, Describe(n))
		return true
	})

	assert.Equal(t, []string{
		"Listing (1 functions)",
		"Function f(n)",
		"Variable n",
		"ReturnStmt",
		"BinaryExpr +",
		"VariableExpr n[0]",
		"Subscript n[0]",
		"Variable n",
		"NumberExpr 0",
		"LabelExpr LIMIT",
		"Label LIMIT",
	}, kinds)
}

func TestWalk_SkipsChildren(t *testing.T) {
	count := 0
	Walk(sample(), func(n Node) bool {
		count++
		_, isFunction := n.(*Function)
		return !isFunction
	})
	assert.Equal(t, 2, count)
}

func TestOutline(t *testing.T) {
	lines := Outline(sample().Functions[0], OutlineOptions{})
	require.Len(t, lines, 10)
	assert.Equal(t, KindFunction, lines[0].Kind)
	assert.Equal(t, KindStatement, lines[2].Kind)
	assert.Equal(t, KindExpression, lines[3].Kind)
	assert.Equal(t, KindVariable, lines[4].Kind)
	assert.Equal(t, KindLiteral, lines[7].Kind)
	assert.Equal(t, KindLabel, lines[8].Kind)

	assert.Equal(t,
		"Function f(n)\n"+
			"  Variable n\n"+
			"  ReturnStmt\n"+
			"    BinaryExpr +\n"+
			"      VariableExpr n[0]\n"+
			"        Subscript n[0]\n"+
			"          Variable n\n"+
			"          NumberExpr 0\n"+
			"      LabelExpr LIMIT\n"+
			"        Label LIMIT\n",
		RenderOutline(lines))
}

func TestOutline_TriviaAndOffsets(t *testing.T) {
	lines := Outline(sample().Functions[0], OutlineOptions{IncludeTrivia: true, ShowOffsets: true})

	assert.Equal(t, "Function f(n)  @0..38", lines[0].Text)
	assert.Equal(t, "EOL  @5..15", lines[2].Text)
	assert.Equal(t, "Comment # entry  @7..14", lines[3].Text)
	assert.Equal(t, KindTrivia, lines[3].Kind)
	assert.Equal(t, 2, lines[3].Depth)
}

func TestDumper(t *testing.T) {
	m := NewDumper(false).Dump(sample())

	assert.Equal(t, "Listing", m["type"])
	assert.NotContains(t, m, "leading_empty_lines")

	functions := m["functions"].([]interface{})
	require.Len(t, functions, 1)
	f := functions[0].(map[string]interface{})
	assert.Equal(t, "f", f["name"])
	assert.NotContains(t, f, "eol")

	ret := f["body"].([]interface{})[0].(map[string]interface{})
	value := ret["value"].(map[string]interface{})
	assert.Equal(t, "BinaryExpr", value["type"])
	assert.Equal(t, "+", value["op"])
	assert.Equal(t, 26, value["offset"])
	assert.Equal(t, 38, value["offset_end"])

	rhs := value["rhs"].(map[string]interface{})
	assert.Equal(t, "LIMIT", rhs["label"].(map[string]interface{})["name"])
}

func TestDumper_Trivia(t *testing.T) {
	m := NewDumper(true).Dump(sample())
	f := m["functions"].([]interface{})[0].(map[string]interface{})

	eol := f["eol"].(map[string]interface{})
	comment := eol["comment"].(map[string]interface{})
	assert.Equal(t, "# entry", comment["string"])
	assert.Equal(t, []interface{}{}, m["leading_empty_lines"])
}

func TestDumper_LargeNumber(t *testing.T) {
	value, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)
	m := NewDumper(false).Dump(NewNumberExpr(0, 30, value, 10, 30))
	assert.Equal(t, "123456789012345678901234567890", m["value"])

	small := NewDumper(false).Dump(NewNumberExpr(0, 4, big.NewInt(0x1F), 16, 2))
	assert.Equal(t, int64(31), small["value"])
	assert.Equal(t, 16, small["display_base"])
}

func TestDumper_Nil(t *testing.T) {
	var eol *EOL
	assert.Nil(t, NewDumper(true).Dump(eol))
}
