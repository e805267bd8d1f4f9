// File: parser_test.go
// Title: Parser Tests
// Description: End-to-end tests from source text to AST: operator folding,
//              literals, statement shapes, whitespace bookkeeping and spans.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tests

package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
	vclog "github.com/msto63/vc2pseudo/pkg/core/log"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/peg"
)

const sampleProgram = `# sample
main(a, b):
    total = {}
    for each item in a, b:
        total[item] += 1
    for i = 0 to 3: log(i)
    while (a > 0):
        a -= 1
    if (a == 0):
        return True
    else if (b):
        return False
    else:
        return total[a][b]

helper(): return 0x1F
`

func buildTree(t *testing.T, source string) *ast.Listing {
	t.Helper()
	listing, err := BuildTree(source)
	require.NoError(t, err)
	return listing
}

// returned parses "f(): return <expr>" and yields the returned expression
func returned(t *testing.T, expr string) ast.Expr {
	t.Helper()
	listing := buildTree(t, "f():\n    return "+expr+"\n")
	require.Len(t, listing.Functions, 1)
	ret, ok := listing.Functions[0].Body[0].(*ast.ReturnStmt)
	require.True(t, ok, "expected return statement, got %T", listing.Functions[0].Body[0])
	return ret.Value
}

func varName(t *testing.T, e ast.Expr) string {
	t.Helper()
	v, ok := e.(*ast.VariableExpr)
	require.True(t, ok, "expected variable expression, got %T", e)
	return v.Variable.RootName()
}

func TestBuildTree_LeftAssociativeFold(t *testing.T) {
	outer, ok := returned(t, "a + b - c").(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpSub, outer.Op)
	assert.Equal(t, "c", varName(t, outer.Rhs))

	inner, ok := outer.Lhs.(*ast.BinaryExpr)
	require.True(t, ok, "expected (a + b) - c")
	assert.Equal(t, ast.OpAdd, inner.Op)
	assert.Equal(t, "a", varName(t, inner.Lhs))
	assert.Equal(t, "b", varName(t, inner.Rhs))
}

func TestBuildTree_RightAssociativeFold(t *testing.T) {
	outer, ok := returned(t, "a ** b ** c").(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPow, outer.Op)
	assert.Equal(t, "a", varName(t, outer.Lhs))

	inner, ok := outer.Rhs.(*ast.BinaryExpr)
	require.True(t, ok, "expected a ** (b ** c)")
	assert.Equal(t, "b", varName(t, inner.Lhs))
	assert.Equal(t, "c", varName(t, inner.Rhs))
}

func TestBuildTree_SignedExponent(t *testing.T) {
	pow, ok := returned(t, "a ** -b").(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPow, pow.Op)
	neg, ok := pow.Rhs.(*ast.UnaryExpr)
	require.True(t, ok, "expected unary exponent, got %T", pow.Rhs)
	assert.Equal(t, ast.OpMinus, neg.Op)

	// the sign applies to the whole right-hand chain: 2 ** -(x ** 2)
	pow, ok = returned(t, "2 ** -x ** 2").(*ast.BinaryExpr)
	require.True(t, ok)
	neg, ok = pow.Rhs.(*ast.UnaryExpr)
	require.True(t, ok)
	inner, ok := neg.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPow, inner.Op)

	assert.Equal(t, "2 ** -1", fmt.Sprint(returned(t, "2 ** -1")))
}

func TestBuildTree_Precedence(t *testing.T) {
	sum, ok := returned(t, "a + b * c").(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, sum.Op)
	product, ok := sum.Rhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, product.Op)

	not, ok := returned(t, "not a == b").(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpLogicalNot, not.Op)
	cmp, ok := not.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpEqual, cmp.Op)

	neg, ok := returned(t, "-a ** b").(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMinus, neg.Op)
	_, ok = neg.Value.(*ast.BinaryExpr)
	assert.True(t, ok, "power binds tighter than unary minus")

	or, ok := returned(t, "a or b and c").(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpLogicalOr, or.Op)

	shift, ok := returned(t, "a << 1 < b").(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpLess, shift.Op)
	_, ok = shift.Lhs.(*ast.BinaryExpr)
	assert.True(t, ok)

	xor, ok := returned(t, "a | b ^ c & d").(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpBitOr, xor.Op)
	assert.Equal(t, "b ^ c & d", xor.Rhs.(*ast.BinaryExpr).String())
}

func TestBuildTree_LoneOperandIsNotWrapped(t *testing.T) {
	assert.IsType(t, &ast.VariableExpr{}, returned(t, "a"))
	assert.IsType(t, &ast.NumberExpr{}, returned(t, "1"))
	assert.IsType(t, &ast.FunctionCallExpr{}, returned(t, "f(x)"))
}

func TestBuildTree_Numbers(t *testing.T) {
	tests := []struct {
		literal string
		value   int64
		base    int
		digits  int
	}{
		{"0x0F", 15, 16, 2},
		{"0b101", 5, 2, 3},
		{"007", 7, 10, 3},
		{"0", 0, 10, 1},
		{"0XfF", 255, 16, 2},
		{"123456789", 123456789, 10, 9},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			n, ok := returned(t, tt.literal).(*ast.NumberExpr)
			require.True(t, ok)
			assert.Equal(t, tt.value, n.Value.Int64())
			assert.Equal(t, tt.base, n.DisplayBase)
			assert.Equal(t, tt.digits, n.DisplayDigits)
		})
	}

	n := returned(t, "0x0F").(*ast.NumberExpr)
	assert.Equal(t, "0x0F", n.String())
	assert.Equal(t, 4, n.End()-n.Pos())
}

func TestBuildTree_ConditionDropsParens(t *testing.T) {
	source := "f():\n    if (x + 1): return x\n    return (x + 1)\n"
	listing := buildTree(t, source)
	body := listing.Functions[0].Body

	ifStmt := body[0].(*ast.IfElseStmt)
	cond, ok := ifStmt.IfBranches[0].Condition.(*ast.BinaryExpr)
	require.True(t, ok, "condition keeps no ParenExpr, got %T", ifStmt.IfBranches[0].Condition)
	assert.Equal(t, "x + 1", source[cond.Pos():cond.End()])

	paren, ok := body[1].(*ast.ReturnStmt).Value.(*ast.ParenExpr)
	require.True(t, ok)
	assert.Equal(t, "(x + 1)", source[paren.Pos():paren.End()])
	assert.IsType(t, &ast.BinaryExpr{}, paren.Value)
}

func TestBuildTree_Statements(t *testing.T) {
	listing := buildTree(t, sampleProgram)
	require.Len(t, listing.Functions, 2)
	require.Len(t, listing.LeadingEmptyLines, 1)
	assert.Equal(t, "# sample", listing.LeadingEmptyLines[0].Comment.Text)

	main := listing.Functions[0]
	assert.Equal(t, "main", main.Name)
	require.Len(t, main.Arguments, 2)
	assert.Equal(t, "a", main.Arguments[0].Name)
	assert.Equal(t, "b", main.Arguments[1].Name)
	assert.NotNil(t, main.EOL)
	require.Len(t, main.Body, 5)

	first := main.Body[0].(*ast.AssignmentStmt)
	assert.Equal(t, ast.AssignSet, first.Op)
	assert.IsType(t, &ast.EmptyMapExpr{}, first.Value)

	forEach := main.Body[1].(*ast.ForEachStmt)
	assert.Equal(t, "item", forEach.Variable.Name)
	assert.Len(t, forEach.Values, 2)
	inc := forEach.Body[0].(*ast.AssignmentStmt)
	assert.Equal(t, ast.AssignAdd, inc.Op)
	target, ok := inc.Target.(*ast.Subscript)
	require.True(t, ok)
	assert.Equal(t, "total", target.RootName())

	forStmt := main.Body[2].(*ast.ForStmt)
	assert.Equal(t, "i", forStmt.Variable.Name)
	assert.Equal(t, "0", forStmt.StartValue.(*ast.NumberExpr).String())
	assert.Equal(t, "3", forStmt.EndValue.(*ast.NumberExpr).String())
	assert.Nil(t, forStmt.EOL, "one-liner has no heading EOL")
	assert.Equal(t, "log", forStmt.Body[0].(*ast.FunctionCallStmt).Call.Name)

	while := main.Body[3].(*ast.WhileStmt)
	assert.Equal(t, ast.OpGreater, while.Condition.(*ast.BinaryExpr).Op)
	assert.Equal(t, ast.AssignSub, while.Body[0].(*ast.AssignmentStmt).Op)

	ifElse := main.Body[4].(*ast.IfElseStmt)
	require.Len(t, ifElse.IfBranches, 2)
	require.NotNil(t, ifElse.ElseBranch)
	assert.Equal(t, "True", ifElse.IfBranches[0].Body[0].(*ast.ReturnStmt).Value.(*ast.BooleanExpr).String())
	assert.Equal(t, "b", varName(t, ifElse.IfBranches[1].Condition))
	elseValue := ifElse.ElseBranch.Body[0].(*ast.ReturnStmt).Value
	assert.Equal(t, "total[a][b]", elseValue.(*ast.VariableExpr).String())

	elseIfStart := ifElse.IfBranches[1].Pos()
	assert.Equal(t, "else if", sampleProgram[elseIfStart:elseIfStart+7])
	assert.Equal(t, "else:", sampleProgram[ifElse.ElseBranch.Pos():ifElse.ElseBranch.Pos()+5])

	helper := listing.Functions[1]
	assert.Nil(t, helper.EOL)
	assert.Empty(t, helper.Arguments)
	assert.Equal(t, "0x1F", helper.Body[0].(*ast.ReturnStmt).Value.(*ast.NumberExpr).String())
}

func TestBuildTree_NestedSubscript(t *testing.T) {
	v := returned(t, "x[1][2]").(*ast.VariableExpr)
	outer, ok := v.Variable.(*ast.Subscript)
	require.True(t, ok)
	assert.Equal(t, "2", outer.Subscript.(*ast.NumberExpr).String())
	inner, ok := outer.Variable.(*ast.Subscript)
	require.True(t, ok)
	assert.Equal(t, "x", inner.Variable.(*ast.Variable).Name)
	assert.Equal(t, inner.Pos(), outer.Pos())
}

func TestBuildTree_WhitespaceAndComments(t *testing.T) {
	source := "# header\n\nf(): # heading\n    x = 1  # set\n\n    return x\n"
	listing := buildTree(t, source)

	require.Len(t, listing.LeadingEmptyLines, 2)
	first := listing.LeadingEmptyLines[0]
	assert.Equal(t, 0, first.Pos())
	assert.Equal(t, 8, first.End())
	require.NotNil(t, first.Comment)
	assert.Equal(t, "# header", first.Comment.Text)
	second := listing.LeadingEmptyLines[1]
	assert.Equal(t, 9, second.Pos())
	assert.Equal(t, 10, second.End())
	assert.Nil(t, second.Comment)

	f := listing.Functions[0]
	require.NotNil(t, f.EOL)
	assert.Equal(t, 14, f.EOL.Pos())
	assert.Equal(t, 24, f.EOL.End())
	require.NotNil(t, f.EOL.Comment)
	assert.Equal(t, "# heading", f.EOL.Comment.Text)

	assign := f.Body[0].(*ast.AssignmentStmt)
	assert.Equal(t, "x = 1", source[assign.Pos():assign.End()])
	assert.Equal(t, 34, assign.EOL.Pos())
	assert.Equal(t, 43, assign.EOL.End())
	assert.Equal(t, "# set", assign.EOL.Comment.Text)
	require.Len(t, assign.EOL.EmptyLines, 1)
	assert.Equal(t, 42, assign.EOL.EmptyLines[0].Pos())
	assert.Equal(t, 43, assign.EOL.EmptyLines[0].End())

	ret := f.Body[1].(*ast.ReturnStmt)
	assert.Equal(t, "return x", source[ret.Pos():ret.End()])
	assert.Equal(t, 55, ret.EOL.Pos())
	assert.Equal(t, 56, ret.EOL.End())
	assert.Nil(t, ret.EOL.Comment)
}

func TestBuildTree_IndentedCommentLine(t *testing.T) {
	source := "f():\n    x = 1\n    # note\n    return x\n"
	listing := buildTree(t, source)

	eol := listing.Functions[0].Body[0].(*ast.AssignmentStmt).EOL
	require.Len(t, eol.EmptyLines, 1)
	line := eol.EmptyLines[0]
	assert.Equal(t, 15, line.Pos(), "empty line starts at its indentation")
	assert.Equal(t, 25, line.End())
	require.NotNil(t, line.Comment)
	assert.Equal(t, 19, line.Comment.Pos())
	assert.Equal(t, 25, eol.End())
}

func TestBuildTree_EndOfInputWithoutNewline(t *testing.T) {
	source := "f(): return 1"
	listing := buildTree(t, source)
	ret := listing.Functions[0].Body[0].(*ast.ReturnStmt)
	assert.Equal(t, len(source), ret.EOL.Pos())
	assert.Equal(t, len(source), ret.EOL.End())
}

// checkSpans verifies that every structural child lies within its parent
// and that derived spans match the children they are derived from
func checkSpans(t *testing.T, source string, node ast.Node) {
	t.Helper()
	for _, child := range ast.Children(node) {
		if ast.IsTrivia(child) {
			continue
		}
		assert.GreaterOrEqual(t, child.Pos(), node.Pos(), "%T %q starts before parent %T", child, source[child.Pos():child.End()], node)
		assert.LessOrEqual(t, child.End(), node.End(), "%T %q ends after parent %T", child, source[child.Pos():child.End()], node)
		checkSpans(t, source, child)
	}

	switch n := node.(type) {
	case *ast.BinaryExpr:
		assert.Equal(t, n.Lhs.Pos(), n.Pos())
		assert.Equal(t, n.Rhs.End(), n.End())
	case *ast.Subscript:
		assert.Equal(t, n.Variable.Pos(), n.Pos())
		assert.Equal(t, "]", source[n.End()-1:n.End()])
	case *ast.Function:
		assert.Equal(t, n.Body[len(n.Body)-1].End(), n.End())
	case *ast.IfElseStmt:
		assert.Equal(t, n.IfBranches[0].Pos(), n.Pos())
	case *ast.ParenExpr:
		assert.Equal(t, "(", source[n.Pos():n.Pos()+1])
		assert.Equal(t, ")", source[n.End()-1:n.End()])
	case *ast.FunctionCallExpr:
		assert.Equal(t, ")", source[n.End()-1:n.End()])
	case *ast.Variable:
		assert.Equal(t, n.Name, source[n.Pos():n.End()])
	}
}

func TestBuildTree_Spans(t *testing.T) {
	sources := []string{
		sampleProgram,
		"f(x):\n    y = -(x + 1) * f(x, 2) ** 2\n    return not y\n",
		"g(): return {  }\n",
	}
	for _, source := range sources {
		listing := buildTree(t, source)
		checkSpans(t, source, listing)
	}
}

func TestBuildTree_SyntaxError(t *testing.T) {
	_, err := BuildTree("f(:\n    return 1\n")
	require.Error(t, err)

	var perr *peg.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Line())
	assert.Equal(t, 3, perr.Column())
	assert.Contains(t, perr.Expected, `")"`)
	assert.Contains(t, perr.Expected, "identifier")
}

func TestBuildTree_SyntaxErrorNamesBoolean(t *testing.T) {
	_, err := BuildTree("f():\n    return a ** *b\n")
	var perr *peg.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Contains(t, perr.Expected, "boolean")
	assert.Contains(t, perr.Expected, "unary operator")
	for _, e := range perr.Expected {
		assert.False(t, strings.HasPrefix(e, "/"), "raw pattern in %q", perr.Explanation())
	}
}

func TestBuildTree_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"reserved word as function name", "if(): return 1\n"},
		{"reserved word as variable", "f():\n    for = 1\n"},
		{"unindented body", "f():\nreturn 1\n"},
		{"inconsistent indentation", "f():\n    x = 1\n      return x\n"},
		{"bad binary digit", "f(): return 0b102\n"},
		{"empty input", ""},
		{"assignment without value", "f():\n    x =\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTree(tt.source)
			var perr *peg.ParseError
			assert.True(t, errors.As(err, &perr), "expected syntax error, got %v", err)
		})
	}
}

func TestParser_MaxInputLength(t *testing.T) {
	p := New(Options{MaxInputLength: 4})
	_, err := p.BuildTree("f(): return 1\n")
	require.Error(t, err)
	assert.True(t, vcerrors.HasCode(err, vcerrors.CodeInputTooLarge))
}

func TestParser_Cache(t *testing.T) {
	p := New(Options{CacheSize: 4})

	first, err := p.Parse(sampleProgram)
	require.NoError(t, err)
	second, err := p.Parse(sampleProgram)
	require.NoError(t, err)
	assert.Same(t, first, second)

	raw, err := p.BuildTree(sampleProgram)
	require.NoError(t, err)
	assert.NotSame(t, first, raw, "raw and resolved trees are cached separately")

	// Parse(1) misses twice (resolved, raw), Parse(2) hits, BuildTree hits
	assert.Equal(t, CacheStats{Hits: 2, Misses: 2, Entries: 2}, p.CacheStats())

	_, err = p.Parse("f(:\n")
	require.Error(t, err)
	_, err = p.Parse("f(:\n")
	require.Error(t, err, "failures are not cached")
	assert.Equal(t, 2, p.CacheStats().Entries)

	p.ClearCache()
	assert.Zero(t, p.CacheStats().Entries)
	third, err := p.Parse(sampleProgram)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestParser_CacheTTL(t *testing.T) {
	p := New(Options{CacheSize: 4, CacheTTL: time.Millisecond})

	first, err := p.BuildTree(sampleProgram)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := p.BuildTree(sampleProgram)
	require.NoError(t, err)

	assert.NotSame(t, first, second, "expired results are rebuilt")
	assert.Equal(t, int64(0), p.CacheStats().Hits)
}

func TestParser_BuilderPanicKeepsStack(t *testing.T) {
	var buf bytes.Buffer
	logger := vclog.NewWithConfig(vclog.Config{Level: vclog.LevelError, Format: vclog.FormatJSON, Output: &buf})
	p := New(Options{Logger: logger})
	p.builder.transforms["number"] = func(interface{}) interface{} {
		panic("number rule out of step")
	}

	listing, err := p.BuildTree("f():\n    return 1\n")
	require.Error(t, err)
	assert.Nil(t, listing)
	assert.True(t, vcerrors.HasCode(err, vcerrors.CodeInternal))
	assert.Contains(t, err.Error(), "number rule out of step")

	var coded *vcerrors.Error
	require.True(t, errors.As(err, &coded))
	assert.Contains(t, coded.Details()["stack"], "buildTree")
	assert.Contains(t, buf.String(), "syntax tree builder failed")
}

func TestParser_NoCache(t *testing.T) {
	p := New(Options{})
	first, err := p.BuildTree(sampleProgram)
	require.NoError(t, err)
	second, err := p.BuildTree(sampleProgram)
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	assert.Equal(t, CacheStats{}, p.CacheStats())
}

func TestParser_ParseResolvesLabels(t *testing.T) {
	listing, err := Parse("f(x):\n    return FOO + x\n")
	require.NoError(t, err)
	sum := listing.Functions[0].Body[0].(*ast.ReturnStmt).Value.(*ast.BinaryExpr)
	assert.IsType(t, &ast.LabelExpr{}, sum.Lhs)
	assert.IsType(t, &ast.VariableExpr{}, sum.Rhs)
}

func TestParser_LogsStages(t *testing.T) {
	var buf bytes.Buffer
	logger := vclog.NewWithConfig(vclog.Config{Level: vclog.LevelDebug, Format: vclog.FormatText, Output: &buf})

	_, err := New(Options{Logger: logger}).Parse(sampleProgram)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "build tree completed")
	assert.Contains(t, buf.String(), "resolve labels completed")
	assert.Contains(t, buf.String(), "{parser}")
}

func TestParser_TraceRules(t *testing.T) {
	var buf bytes.Buffer
	logger := vclog.NewWithConfig(vclog.Config{Level: vclog.LevelTrace, Format: vclog.FormatJSON, Output: &buf})

	_, err := New(Options{Logger: logger, TraceRules: true}).BuildTree("f(): return 1\n")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"rule":"return_stmt"`)
}

func TestGrammar_CoversEveryTransform(t *testing.T) {
	g := NewGrammar()
	for rule := range NewTreeBuilder().transforms {
		_, ok := g.Rules[rule]
		assert.True(t, ok, "transform for undefined rule %q", rule)
	}
}
