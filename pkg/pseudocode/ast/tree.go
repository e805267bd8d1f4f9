// File: tree.go
// Title: AST Outline Rendering
// Description: Flattens a tree into an indented outline of one line per
//              node. Used for the "tree" output format and by the
//              interactive viewer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial outline rendering

package ast

import (
	"fmt"
	"strings"
)

// Kind groups node types for display purposes
type Kind int

const (
	KindTrivia Kind = iota
	KindFunction
	KindStatement
	KindExpression
	KindVariable
	KindLabel
	KindLiteral
)

// OutlineLine is one node of a flattened tree
type OutlineLine struct {
	Depth int
	Node  Node
	Kind  Kind
	Text  string
}

// OutlineOptions selects what an outline contains
type OutlineOptions struct {
	IncludeTrivia bool
	ShowOffsets   bool
}

// Outline flattens the tree rooted at node in pre-order
func Outline(node Node, opts OutlineOptions) []OutlineLine {
	var lines []OutlineLine
	var visit func(n Node, depth int)
	visit = func(n Node, depth int) {
		if !opts.IncludeTrivia && IsTrivia(n) {
			return
		}
		text := Describe(n)
		if opts.ShowOffsets {
			text = fmt.Sprintf("%s  @%d..%d", text, n.Pos(), n.End())
		}
		lines = append(lines, OutlineLine{Depth: depth, Node: n, Kind: KindOf(n), Text: text})
		for _, child := range Children(n) {
			visit(child, depth+1)
		}
	}
	visit(node, 0)
	return lines
}

// RenderOutline renders an outline as text indented by two spaces per level
func RenderOutline(lines []OutlineLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat("  ", l.Depth))
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// KindOf classifies a node
func KindOf(node Node) Kind {
	switch node.(type) {
	case *Comment, *EmptyLine, *EOL:
		return KindTrivia
	case *Listing, *Function:
		return KindFunction
	case Stmt, *IfBranch, *ElseBranch:
		return KindStatement
	case *Variable, *Subscript, *VariableExpr:
		return KindVariable
	case *Label, *LabelExpr:
		return KindLabel
	case *EmptyMapExpr, *BooleanExpr, *NumberExpr:
		return KindLiteral
	}
	return KindExpression
}

// Describe returns a one-line summary of a node without its children
func Describe(node Node) string {
	switch n := node.(type) {
	case *Listing:
		return fmt.Sprintf("Listing (%d functions)", len(n.Functions))
	case *Comment:
		return "Comment " + n.Text
	case *EmptyLine:
		return "EmptyLine"
	case *EOL:
		return "EOL"
	case *Function:
		args := make([]string, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = a.Name
		}
		return fmt.Sprintf("Function %s(%s)", n.Name, strings.Join(args, ", "))
	case *IfElseStmt:
		return "IfElseStmt"
	case *IfBranch:
		return fmt.Sprintf("IfBranch (%s)", n.Condition)
	case *ElseBranch:
		return "ElseBranch"
	case *ForEachStmt:
		return fmt.Sprintf("ForEachStmt %s", n.Variable.Name)
	case *ForStmt:
		return fmt.Sprintf("ForStmt %s = %s to %s", n.Variable.Name, n.StartValue, n.EndValue)
	case *WhileStmt:
		return fmt.Sprintf("WhileStmt (%s)", n.Condition)
	case *FunctionCallStmt:
		return "FunctionCallStmt " + n.Call.Name
	case *ReturnStmt:
		return "ReturnStmt"
	case *AssignmentStmt:
		return fmt.Sprintf("AssignmentStmt %s %s", n.Target, n.Op)
	case *Variable:
		return "Variable " + n.Name
	case *Subscript:
		return fmt.Sprintf("Subscript %s", n)
	case *Label:
		return "Label " + n.Name
	case *ParenExpr:
		return "ParenExpr"
	case *UnaryExpr:
		return fmt.Sprintf("UnaryExpr %s", n.Op)
	case *BinaryExpr:
		return fmt.Sprintf("BinaryExpr %s", n.Op)
	case *FunctionCallExpr:
		return fmt.Sprintf("FunctionCallExpr %s/%d", n.Name, len(n.Arguments))
	case *VariableExpr:
		return fmt.Sprintf("VariableExpr %s", n)
	case *LabelExpr:
		return "LabelExpr " + n.Label.Name
	case *EmptyMapExpr:
		return "EmptyMapExpr {}"
	case *BooleanExpr:
		return "BooleanExpr " + boolLiteral(n.Value)
	case *NumberExpr:
		return fmt.Sprintf("NumberExpr %s", n)
	}
	return fmt.Sprintf("%T", node)
}
