// File: builder.go
// Title: AST Tree Builder
// Description: Converts the raw parse tree produced by the grammar into typed
//              AST nodes. Each grammar rule with a transform is listed in a
//              static table; the PEG engine calls Transform bottom-up as each
//              rule matches. A shape mismatch between grammar and builder is a
//              programming error and panics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tree builder

package parser

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/peg"
)

type transformFunc func(node interface{}) interface{}

// TreeBuilder turns raw parse tree nodes into AST nodes
type TreeBuilder struct {
	transforms map[string]transformFunc
}

// stmtBlock is the intermediate result of a stmt_block rule
type stmtBlock struct {
	eol  *ast.EOL // nil for one-liners
	body []ast.Stmt
}

// callArguments is the intermediate result of function_call_arguments
type callArguments struct {
	args      []ast.Expr
	offsetEnd int
}

// subscriptSuffix is one [...] following a variable name
type subscriptSuffix struct {
	index     ast.Expr
	offsetEnd int
}

// NewTreeBuilder creates a tree builder
func NewTreeBuilder() *TreeBuilder {
	b := &TreeBuilder{}
	b.transforms = map[string]transformFunc{
		"start":                   b.start,
		"any_ws":                  b.anyWS,
		"comment":                 b.comment,
		"v_space":                 b.vSpace,
		"eol":                     b.eol,
		"function":                b.function,
		"function_arguments":      b.functionArguments,
		"stmt_block":              b.stmtBlock,
		"stmt":                    b.unwrapAlt,
		"if_else_stmt":            b.ifElseStmt,
		"for_each_stmt":           b.forEachStmt,
		"for_each_list":           b.exprList,
		"for_stmt":                b.forStmt,
		"while_stmt":              b.whileStmt,
		"function_call_stmt":      b.functionCallStmt,
		"return_stmt":             b.returnStmt,
		"assignment_stmt":         b.assignmentStmt,
		"condition":               b.condition,
		"maybe_log_not_expr":      b.unaryExpr,
		"maybe_unary_expr":        b.unaryExpr,
		"maybe_paren_expr":        b.parenExpr,
		"atom":                    b.atom,
		"function_call":           b.functionCall,
		"function_call_arguments": b.functionCallArguments,
		"variable":                b.variable,
		"subscript":               b.subscript,
		"empty_map":               b.emptyMap,
		"boolean":                 b.boolean,
		"number":                  b.number,
		"identifier":              b.identifier,
	}
	for _, rule := range binaryRules {
		b.transforms[rule] = b.binaryExpr
	}
	return b
}

// Transform implements peg.Transformer. Rules without a transform pass
// their raw value through unchanged.
func (b *TreeBuilder) Transform(rule string, node interface{}) interface{} {
	if fn, ok := b.transforms[rule]; ok {
		return fn(node)
	}
	return node
}

// Raw shape accessors

func mustConcat(node interface{}, n int) []interface{} {
	c, ok := node.(*peg.Concat)
	if !ok || len(c.Items) != n {
		panic(fmt.Sprintf("parser: expected sequence of %d items, got %#v", n, node))
	}
	return c.Items
}

func mustRepeat(node interface{}) []interface{} {
	r, ok := node.(*peg.Repeat)
	if !ok {
		panic(fmt.Sprintf("parser: expected repetition, got %#v", node))
	}
	return r.Items
}

func mustAlt(node interface{}) *peg.Alt {
	a, ok := node.(*peg.Alt)
	if !ok {
		panic(fmt.Sprintf("parser: expected choice, got %#v", node))
	}
	return a
}

func mustToken(node interface{}) *peg.Regex {
	t, ok := node.(*peg.Regex)
	if !ok {
		panic(fmt.Sprintf("parser: expected token, got %#v", node))
	}
	return t
}

func badChoice(rule string, alt *peg.Alt) interface{} {
	panic(fmt.Sprintf("parser: unexpected alternative %d in %s", alt.Choice, rule))
}

func (b *TreeBuilder) unwrapAlt(node interface{}) interface{} {
	return mustAlt(node).Value
}

// Listing structure

func (b *TreeBuilder) start(node interface{}) interface{} {
	items := mustConcat(node, 3)
	var functions []*ast.Function
	for _, item := range mustRepeat(items[1]) {
		functions = append(functions, mustConcat(item, 2)[1].(*ast.Function))
	}
	return ast.NewListing(functions, items[0].([]*ast.EmptyLine))
}

// anyWS groups whitespace and comments into one EmptyLine per line. Leading
// horizontal space is remembered so that each EmptyLine spans from the
// earliest whitespace on its line.
func (b *TreeBuilder) anyWS(node interface{}) interface{} {
	lines := []*ast.EmptyLine{}
	start := -1
	for _, item := range mustRepeat(node) {
		alt := mustAlt(item)
		switch alt.Choice {
		case 0:
			c := alt.Value.(*ast.Comment)
			lines = append(lines, ast.NewEmptyLine(firstOf(start, c.Pos()), c.End(), c))
			start = -1
		case 1:
			nl := alt.Value.(*ast.EmptyLine)
			lines = append(lines, ast.NewEmptyLine(firstOf(start, nl.Pos()), nl.End(), nil))
			start = -1
		case 2:
			if start < 0 {
				start = mustToken(alt.Value).Start
			}
		default:
			badChoice("any_ws", alt)
		}
	}
	return lines
}

func firstOf(pending, offset int) int {
	if pending >= 0 {
		return pending
	}
	return offset
}

// comment drops the line terminator the comment token may have consumed
func (b *TreeBuilder) comment(node interface{}) interface{} {
	t := mustToken(node)
	return ast.NewComment(t.Start, strings.TrimRight(t.String, "\r\n"))
}

func (b *TreeBuilder) vSpace(node interface{}) interface{} {
	t := mustToken(node)
	return ast.NewEmptyLine(t.Start, t.End, nil)
}

// eol builds the terminator of a line: optional horizontal space, then a
// comment, newline or end of input, then any following blank lines
func (b *TreeBuilder) eol(node interface{}) interface{} {
	items := mustConcat(node, 3)
	trailing := items[2].([]*ast.EmptyLine)

	var comment *ast.Comment
	var start, end int
	middle := mustAlt(items[1])
	switch middle.Choice {
	case 0:
		comment = middle.Value.(*ast.Comment)
		start, end = comment.Pos(), comment.End()
	case 1:
		nl := middle.Value.(*ast.EmptyLine)
		start, end = nl.Pos(), nl.End()
	case 2:
		eof := middle.Value.(*peg.Lookahead)
		start, end = eof.Offset, eof.Offset
	default:
		badChoice("eol", middle)
	}

	if items[0] != nil {
		start = mustToken(items[0]).Start
	}
	if len(trailing) > 0 {
		end = trailing[len(trailing)-1].End()
	}
	return ast.NewEOL(start, end, comment, trailing)
}

func (b *TreeBuilder) function(node interface{}) interface{} {
	items := mustConcat(node, 5)
	name := mustToken(items[0])
	block := items[4].(*stmtBlock)
	return ast.NewFunction(name.Start, name.String, items[2].([]*ast.Variable), block.body, block.eol)
}

func (b *TreeBuilder) functionArguments(node interface{}) interface{} {
	alt := mustAlt(node)
	args := []*ast.Variable{}
	switch alt.Choice {
	case 0:
	case 1:
		items := mustConcat(alt.Value, 6)
		args = append(args, variableFromToken(items[2]))
		for _, more := range mustRepeat(items[3]) {
			args = append(args, variableFromToken(mustConcat(more, 4)[3]))
		}
	default:
		badChoice("function_arguments", alt)
	}
	return args
}

func variableFromToken(node interface{}) *ast.Variable {
	t := mustToken(node)
	return ast.NewVariable(t.Start, t.String)
}

func (b *TreeBuilder) stmtBlock(node interface{}) interface{} {
	alt := mustAlt(node)
	switch alt.Choice {
	case 0:
		items := mustConcat(alt.Value, 3)
		return &stmtBlock{body: []ast.Stmt{items[2].(ast.Stmt)}}
	case 1:
		items := mustConcat(alt.Value, 3)
		return &stmtBlock{eol: items[1].(*ast.EOL), body: stmts(mustRepeat(items[2]))}
	}
	return badChoice("stmt_block", alt)
}

func stmts(items []interface{}) []ast.Stmt {
	out := make([]ast.Stmt, len(items))
	for i, item := range items {
		out[i] = item.(ast.Stmt)
	}
	return out
}

// Statements

func (b *TreeBuilder) ifElseStmt(node interface{}) interface{} {
	items := mustConcat(node, 3)

	first := mustConcat(items[0], 5)
	block := first[4].(*stmtBlock)
	branches := []*ast.IfBranch{
		ast.NewIfBranch(mustToken(first[0]).Start, first[2].(ast.Expr), block.body, block.eol),
	}
	for _, item := range mustRepeat(items[1]) {
		elseIf := mustConcat(item, 8)
		block := elseIf[7].(*stmtBlock)
		branches = append(branches,
			ast.NewIfBranch(mustToken(elseIf[1]).Start, elseIf[5].(ast.Expr), block.body, block.eol))
	}

	var elseBranch *ast.ElseBranch
	if items[2] != nil {
		els := mustConcat(items[2], 4)
		block := els[3].(*stmtBlock)
		elseBranch = ast.NewElseBranch(mustToken(els[1]).Start, block.body, block.eol)
	}
	return ast.NewIfElseStmt(branches, elseBranch)
}

func (b *TreeBuilder) forEachStmt(node interface{}) interface{} {
	items := mustConcat(node, 11)
	block := items[10].(*stmtBlock)
	return ast.NewForEachStmt(
		mustToken(items[0]).Start,
		variableFromToken(items[4]),
		items[8].([]ast.Expr),
		block.body,
		block.eol,
	)
}

func (b *TreeBuilder) exprList(node interface{}) interface{} {
	items := mustConcat(node, 2)
	values := []ast.Expr{items[0].(ast.Expr)}
	for _, more := range mustRepeat(items[1]) {
		values = append(values, mustConcat(more, 4)[3].(ast.Expr))
	}
	return values
}

func (b *TreeBuilder) forStmt(node interface{}) interface{} {
	items := mustConcat(node, 13)
	block := items[12].(*stmtBlock)
	return ast.NewForStmt(
		mustToken(items[0]).Start,
		variableFromToken(items[2]),
		items[6].(ast.Expr),
		items[10].(ast.Expr),
		block.body,
		block.eol,
	)
}

func (b *TreeBuilder) whileStmt(node interface{}) interface{} {
	items := mustConcat(node, 5)
	block := items[4].(*stmtBlock)
	return ast.NewWhileStmt(mustToken(items[0]).Start, items[2].(ast.Expr), block.body, block.eol)
}

func (b *TreeBuilder) functionCallStmt(node interface{}) interface{} {
	items := mustConcat(node, 2)
	return ast.NewFunctionCallStmt(items[0].(*ast.FunctionCallExpr), items[1].(*ast.EOL))
}

func (b *TreeBuilder) returnStmt(node interface{}) interface{} {
	items := mustConcat(node, 4)
	return ast.NewReturnStmt(mustToken(items[0]).Start, items[2].(ast.Expr), items[3].(*ast.EOL))
}

func (b *TreeBuilder) assignmentStmt(node interface{}) interface{} {
	items := mustConcat(node, 6)
	opText := mustToken(items[2]).String
	op, ok := ast.ParseAssignmentOp(opText)
	if !ok {
		panic(fmt.Sprintf("parser: unknown assignment operator %q", opText))
	}
	return ast.NewAssignmentStmt(items[0].(ast.Assignable), op, items[4].(ast.Expr), items[5].(*ast.EOL))
}

// condition yields the bracketed expression itself; the brackets are part
// of the statement syntax rather than a ParenExpr
func (b *TreeBuilder) condition(node interface{}) interface{} {
	return mustConcat(node, 5)[2]
}

// Expressions

// binaryExpr folds a chain of operands at one precedence level into a tree
// using the level's associativity. A lone operand is returned unwrapped.
func (b *TreeBuilder) binaryExpr(node interface{}) interface{} {
	items := mustConcat(node, 2)
	rest := mustRepeat(items[1])
	if len(rest) == 0 {
		return items[0]
	}

	operands := []ast.Expr{items[0].(ast.Expr)}
	ops := make([]ast.BinaryOp, 0, len(rest))
	for _, item := range rest {
		parts := mustConcat(item, 4)
		ops = append(ops, ast.BinaryOp(mustToken(parts[1]).String))
		operands = append(operands, parts[3].(ast.Expr))
	}

	if ast.AssociativityOf(ops[0]) == ast.RightAssociative {
		acc := operands[len(operands)-1]
		for i := len(ops) - 1; i >= 0; i-- {
			acc = ast.NewBinaryExpr(operands[i], ops[i], acc)
		}
		return acc
	}
	acc := operands[0]
	for i, op := range ops {
		acc = ast.NewBinaryExpr(acc, op, operands[i+1])
	}
	return acc
}

func (b *TreeBuilder) unaryExpr(node interface{}) interface{} {
	alt := mustAlt(node)
	switch alt.Choice {
	case 0:
		items := mustConcat(alt.Value, 3)
		op := mustToken(items[0])
		return ast.NewUnaryExpr(op.Start, ast.UnaryOp(op.String), items[2].(ast.Expr))
	case 1:
		return alt.Value
	}
	return badChoice("unary expression", alt)
}

func (b *TreeBuilder) parenExpr(node interface{}) interface{} {
	alt := mustAlt(node)
	switch alt.Choice {
	case 0:
		items := mustConcat(alt.Value, 5)
		return ast.NewParenExpr(mustToken(items[0]).Start, mustToken(items[4]).End, items[2].(ast.Expr))
	case 1:
		return alt.Value
	}
	return badChoice("maybe_paren_expr", alt)
}

func (b *TreeBuilder) atom(node interface{}) interface{} {
	alt := mustAlt(node)
	if v, ok := alt.Value.(ast.Assignable); ok {
		return ast.NewVariableExpr(v)
	}
	return alt.Value
}

func (b *TreeBuilder) functionCall(node interface{}) interface{} {
	items := mustConcat(node, 3)
	name := mustToken(items[0])
	args := items[2].(*callArguments)
	return ast.NewFunctionCallExpr(name.Start, args.offsetEnd, name.String, args.args)
}

func (b *TreeBuilder) functionCallArguments(node interface{}) interface{} {
	alt := mustAlt(node)
	switch alt.Choice {
	case 0:
		items := mustConcat(alt.Value, 3)
		return &callArguments{args: []ast.Expr{}, offsetEnd: mustToken(items[2]).End}
	case 1:
		items := mustConcat(alt.Value, 6)
		args := []ast.Expr{items[2].(ast.Expr)}
		for _, more := range mustRepeat(items[3]) {
			args = append(args, mustConcat(more, 4)[3].(ast.Expr))
		}
		return &callArguments{args: args, offsetEnd: mustToken(items[5]).End}
	}
	return badChoice("function_call_arguments", alt)
}

// variable wraps the base name in one Subscript per [...] suffix, innermost
// first, so x[1][2] becomes Subscript(Subscript(x, 1), 2)
func (b *TreeBuilder) variable(node interface{}) interface{} {
	items := mustConcat(node, 2)
	var result ast.Assignable = variableFromToken(items[0])
	for _, item := range mustRepeat(items[1]) {
		suffix := item.(*subscriptSuffix)
		result = ast.NewSubscript(suffix.offsetEnd, result, suffix.index)
	}
	return result
}

func (b *TreeBuilder) subscript(node interface{}) interface{} {
	items := mustConcat(node, 5)
	return &subscriptSuffix{index: items[2].(ast.Expr), offsetEnd: mustToken(items[4]).End}
}

func (b *TreeBuilder) emptyMap(node interface{}) interface{} {
	items := mustConcat(node, 3)
	return ast.NewEmptyMapExpr(mustToken(items[0]).Start, mustToken(items[2]).End)
}

func (b *TreeBuilder) boolean(node interface{}) interface{} {
	t := mustToken(node)
	return ast.NewBooleanExpr(t.Start, t.String == "True")
}

// number keeps the literal's base and digit count (prefix excluded) so it
// can be displayed the way it was written
func (b *TreeBuilder) number(node interface{}) interface{} {
	t := mustToken(node)
	digits, base := t.String, 10
	if len(digits) > 2 {
		switch strings.ToLower(digits[:2]) {
		case "0b":
			digits, base = digits[2:], 2
		case "0x":
			digits, base = digits[2:], 16
		}
	}
	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		panic(fmt.Sprintf("parser: malformed number %q", t.String))
	}
	return ast.NewNumberExpr(t.Start, t.End, value, base, len(digits))
}

// identifier drops the reserved word lookahead and yields the name token
func (b *TreeBuilder) identifier(node interface{}) interface{} {
	return mustConcat(node, 2)[1]
}
