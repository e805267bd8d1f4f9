// File: grammar.go
// Title: Pseudocode Grammar
// Description: The PEG grammar for VC2 pseudocode listings. Rule names are
//              the contract with TreeBuilder: every rule with a transform in
//              builder.go is defined here. The binary expression levels are
//              generated from ast.BinaryPrecedence so that the grammar and the
//              associativity used when folding can never disagree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial grammar

package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/peg"
)

// ReservedWords may not be used as identifiers
var ReservedWords = []string{
	"if", "else", "for", "each", "in", "to", "while", "return",
	"and", "or", "not", "True", "False",
}

// binaryRules names the rule for each level of ast.BinaryPrecedence, in the
// same (loosest binding first) order
var binaryRules = []string{
	"maybe_log_or_expr",
	"maybe_log_and_expr",
	"maybe_cmp_expr",
	"maybe_or_expr",
	"maybe_xor_expr",
	"maybe_and_expr",
	"maybe_shift_expr",
	"maybe_arith_expr",
	"maybe_prod_expr",
	"maybe_pow_expr",
}

// operandRules names the rule each binary level uses for its operands.
// Unary levels slot in between where the operator table requires them.
var operandRules = map[string]string{
	"maybe_log_or_expr":  "maybe_log_and_expr",
	"maybe_log_and_expr": "maybe_log_not_expr",
	"maybe_cmp_expr":     "maybe_or_expr",
	"maybe_or_expr":      "maybe_xor_expr",
	"maybe_xor_expr":     "maybe_and_expr",
	"maybe_and_expr":     "maybe_shift_expr",
	"maybe_shift_expr":   "maybe_arith_expr",
	"maybe_arith_expr":   "maybe_prod_expr",
	"maybe_prod_expr":    "maybe_unary_expr",
	"maybe_pow_expr":     "maybe_paren_expr",
}

// rightOperandRules overrides the operand rule right of an operator. The
// exponent may carry a sign, as in 2 ** -1.
var rightOperandRules = map[string]string{
	"maybe_pow_expr": "maybe_unary_expr",
}

// kw matches a keyword which is not the prefix of a longer word
func kw(word string) peg.Expr {
	return peg.R(regexp.QuoteMeta(word) + `\b`)
}

// operatorPattern builds an alternation matching any of ops, in order
func operatorPattern(ops []ast.BinaryOp) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		s := string(op)
		parts[i] = regexp.QuoteMeta(s)
		if unicode.IsLetter(rune(s[0])) {
			parts[i] += `\b`
		}
	}
	return strings.Join(parts, "|")
}

// NewGrammar builds the pseudocode grammar
func NewGrammar() *peg.Grammar {
	if len(binaryRules) != len(ast.BinaryPrecedence) {
		panic("parser: binary rule names out of step with ast.BinaryPrecedence")
	}

	g := peg.NewGrammar("start")
	ws := peg.Ref("ws")

	// Listing structure
	g.Define("start", peg.Seq(peg.Ref("any_ws"), peg.Plus(peg.Seq(peg.Aligned(), peg.Ref("function"))), peg.Ref("eof")))
	g.Define("function", peg.Seq(peg.Ref("identifier"), ws, peg.Ref("function_arguments"), ws, peg.Ref("stmt_block")))
	g.Define("function_arguments", peg.Choice(
		peg.Seq(peg.L("("), ws, peg.L(")")),
		peg.Seq(peg.L("("), ws, peg.Ref("identifier"), peg.Star(peg.Seq(ws, peg.L(","), ws, peg.Ref("identifier"))), ws, peg.L(")")),
	))
	g.Define("stmt_block", peg.Choice(
		peg.Seq(peg.L(":"), ws, peg.Ref("stmt")),
		peg.Seq(peg.L(":"), peg.Ref("eol"), peg.Block(peg.Ref("stmt"))),
	))

	// Statements
	g.Define("stmt", peg.Choice(
		peg.Ref("if_else_stmt"),
		peg.Ref("for_each_stmt"),
		peg.Ref("for_stmt"),
		peg.Ref("while_stmt"),
		peg.Ref("function_call_stmt"),
		peg.Ref("return_stmt"),
		peg.Ref("assignment_stmt"),
	))
	g.Define("if_else_stmt", peg.Seq(
		peg.Seq(kw("if"), ws, peg.Ref("condition"), ws, peg.Ref("stmt_block")),
		peg.Star(peg.Seq(peg.Aligned(), kw("else"), ws, kw("if"), ws, peg.Ref("condition"), ws, peg.Ref("stmt_block"))),
		peg.Opt(peg.Seq(peg.Aligned(), kw("else"), ws, peg.Ref("stmt_block"))),
	))
	g.Define("for_each_stmt", peg.Seq(
		kw("for"), ws, kw("each"), ws, peg.Ref("identifier"), ws, kw("in"), ws, peg.Ref("for_each_list"), ws, peg.Ref("stmt_block"),
	))
	g.Define("for_each_list", peg.Seq(peg.Ref("expr"), peg.Star(peg.Seq(ws, peg.L(","), ws, peg.Ref("expr")))))
	g.Define("for_stmt", peg.Seq(
		kw("for"), ws, peg.Ref("identifier"), ws, peg.L("="), ws, peg.Ref("expr"), ws, kw("to"), ws, peg.Ref("expr"), ws, peg.Ref("stmt_block"),
	))
	g.Define("while_stmt", peg.Seq(kw("while"), ws, peg.Ref("condition"), ws, peg.Ref("stmt_block")))
	g.Define("function_call_stmt", peg.Seq(peg.Ref("function_call"), peg.Ref("eol")))
	g.Define("return_stmt", peg.Seq(kw("return"), ws, peg.Ref("expr"), peg.Ref("eol")))
	g.Define("assignment_stmt", peg.Seq(peg.Ref("variable"), ws, peg.Ref("assignment_op"), ws, peg.Ref("expr"), peg.Ref("eol")))
	g.Define("assignment_op", peg.Named("assignment operator", peg.R(`(//|\*\*|<<|>>|[-+*%&|^])?=`)))
	g.Define("condition", peg.Seq(peg.L("("), ws, peg.Ref("expr"), ws, peg.L(")")))

	// Expressions, loosest binding first
	g.Define("expr", peg.Ref(binaryRules[0]))
	for i, rule := range binaryRules {
		operand := peg.Ref(operandRules[rule])
		right := operand
		if name, ok := rightOperandRules[rule]; ok {
			right = peg.Ref(name)
		}
		op := peg.R(operatorPattern(ast.BinaryPrecedence[i].Operators))
		g.Define(rule, peg.Seq(operand, peg.Star(peg.Seq(ws, op, ws, right))))
	}
	g.Define("maybe_log_not_expr", peg.Choice(
		peg.Seq(kw("not"), ws, peg.Ref("maybe_log_not_expr")),
		peg.Ref("maybe_cmp_expr"),
	))
	g.Define("maybe_unary_expr", peg.Choice(
		peg.Seq(peg.Named("unary operator", peg.R(`[-+~]`)), ws, peg.Ref("maybe_unary_expr")),
		peg.Ref("maybe_pow_expr"),
	))
	g.Define("maybe_paren_expr", peg.Choice(
		peg.Seq(peg.L("("), ws, peg.Ref("expr"), ws, peg.L(")")),
		peg.Ref("atom"),
	))
	g.Define("atom", peg.Choice(
		peg.Ref("function_call"),
		peg.Ref("variable"),
		peg.Ref("empty_map"),
		peg.Ref("boolean"),
		peg.Ref("number"),
	))

	// Atoms
	g.Define("function_call", peg.Seq(peg.Ref("identifier"), ws, peg.Ref("function_call_arguments")))
	g.Define("function_call_arguments", peg.Choice(
		peg.Seq(peg.L("("), ws, peg.L(")")),
		peg.Seq(peg.L("("), ws, peg.Ref("expr"), peg.Star(peg.Seq(ws, peg.L(","), ws, peg.Ref("expr"))), ws, peg.L(")")),
	))
	g.Define("variable", peg.Seq(peg.Ref("identifier"), peg.Star(peg.Ref("subscript"))))
	g.Define("subscript", peg.Seq(peg.L("["), ws, peg.Ref("expr"), ws, peg.L("]")))
	g.Define("empty_map", peg.Seq(peg.L("{"), ws, peg.L("}")))
	g.Define("boolean", peg.Named("boolean", peg.R(`(True|False)\b`)))
	g.Define("number", peg.Named("number", peg.R(`(0[bB][01]+|0[xX][0-9a-fA-F]+|[0-9]+)\b`)))
	g.Define("identifier", peg.Named("identifier", peg.Seq(peg.Not(peg.Ref("reserved_word")), peg.R(`[A-Za-z_][A-Za-z0-9_]*`))))
	g.Define("reserved_word", peg.R(`(`+strings.Join(ReservedWords, "|")+`)\b`))

	// Whitespace and comments
	g.Define("comment", peg.R(`#[^\r\n]*(\r\n|\n|\r)?`))
	g.Define("v_space", peg.R(`\r\n|\n|\r`))
	g.Define("h_space", peg.R(`[ \t]+`))
	g.Define("ws", peg.R(`[ \t]*`))
	g.Define("any_ws", peg.Star(peg.Choice(peg.Ref("comment"), peg.Ref("v_space"), peg.Ref("h_space"))))
	g.Define("eol", peg.Named("end of line", peg.Seq(
		peg.Opt(peg.Ref("h_space")),
		peg.Choice(peg.Ref("comment"), peg.Ref("v_space"), peg.Ref("eof")),
		peg.Ref("any_ws"),
	)))
	g.Define("eof", peg.EOF())

	if err := g.Validate(); err != nil {
		panic("parser: " + err.Error())
	}
	return g
}
