// File: visitor.go
// Title: Pseudocode AST Visitor and Traversal
// Description: Implements the visitor pattern for AST nodes, a generic
//              child enumeration used for pre-order walks, and a Dumper that
//              converts a tree into plain maps for YAML/JSON export.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial visitor, walk and dump implementation

package ast

import "fmt"

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitListing(n *Listing) interface{}
	VisitComment(n *Comment) interface{}
	VisitEmptyLine(n *EmptyLine) interface{}
	VisitEOL(n *EOL) interface{}
	VisitFunction(n *Function) interface{}

	VisitIfElseStmt(n *IfElseStmt) interface{}
	VisitIfBranch(n *IfBranch) interface{}
	VisitElseBranch(n *ElseBranch) interface{}
	VisitForEachStmt(n *ForEachStmt) interface{}
	VisitForStmt(n *ForStmt) interface{}
	VisitWhileStmt(n *WhileStmt) interface{}
	VisitFunctionCallStmt(n *FunctionCallStmt) interface{}
	VisitReturnStmt(n *ReturnStmt) interface{}
	VisitAssignmentStmt(n *AssignmentStmt) interface{}

	VisitVariable(n *Variable) interface{}
	VisitSubscript(n *Subscript) interface{}
	VisitLabel(n *Label) interface{}

	VisitParenExpr(n *ParenExpr) interface{}
	VisitUnaryExpr(n *UnaryExpr) interface{}
	VisitBinaryExpr(n *BinaryExpr) interface{}
	VisitFunctionCallExpr(n *FunctionCallExpr) interface{}
	VisitVariableExpr(n *VariableExpr) interface{}
	VisitLabelExpr(n *LabelExpr) interface{}
	VisitEmptyMapExpr(n *EmptyMapExpr) interface{}
	VisitBooleanExpr(n *BooleanExpr) interface{}
	VisitNumberExpr(n *NumberExpr) interface{}
}

func (n *Listing) Accept(v Visitor) interface{}          { return v.VisitListing(n) }
func (n *Comment) Accept(v Visitor) interface{}          { return v.VisitComment(n) }
func (n *EmptyLine) Accept(v Visitor) interface{}        { return v.VisitEmptyLine(n) }
func (n *EOL) Accept(v Visitor) interface{}              { return v.VisitEOL(n) }
func (n *Function) Accept(v Visitor) interface{}         { return v.VisitFunction(n) }
func (n *IfElseStmt) Accept(v Visitor) interface{}       { return v.VisitIfElseStmt(n) }
func (n *IfBranch) Accept(v Visitor) interface{}         { return v.VisitIfBranch(n) }
func (n *ElseBranch) Accept(v Visitor) interface{}       { return v.VisitElseBranch(n) }
func (n *ForEachStmt) Accept(v Visitor) interface{}      { return v.VisitForEachStmt(n) }
func (n *ForStmt) Accept(v Visitor) interface{}          { return v.VisitForStmt(n) }
func (n *WhileStmt) Accept(v Visitor) interface{}        { return v.VisitWhileStmt(n) }
func (n *FunctionCallStmt) Accept(v Visitor) interface{} { return v.VisitFunctionCallStmt(n) }
func (n *ReturnStmt) Accept(v Visitor) interface{}       { return v.VisitReturnStmt(n) }
func (n *AssignmentStmt) Accept(v Visitor) interface{}   { return v.VisitAssignmentStmt(n) }
func (n *Variable) Accept(v Visitor) interface{}         { return v.VisitVariable(n) }
func (n *Subscript) Accept(v Visitor) interface{}        { return v.VisitSubscript(n) }
func (n *Label) Accept(v Visitor) interface{}            { return v.VisitLabel(n) }
func (n *ParenExpr) Accept(v Visitor) interface{}        { return v.VisitParenExpr(n) }
func (n *UnaryExpr) Accept(v Visitor) interface{}        { return v.VisitUnaryExpr(n) }
func (n *BinaryExpr) Accept(v Visitor) interface{}       { return v.VisitBinaryExpr(n) }
func (n *FunctionCallExpr) Accept(v Visitor) interface{} { return v.VisitFunctionCallExpr(n) }
func (n *VariableExpr) Accept(v Visitor) interface{}     { return v.VisitVariableExpr(n) }
func (n *LabelExpr) Accept(v Visitor) interface{}        { return v.VisitLabelExpr(n) }
func (n *EmptyMapExpr) Accept(v Visitor) interface{}     { return v.VisitEmptyMapExpr(n) }
func (n *BooleanExpr) Accept(v Visitor) interface{}      { return v.VisitBooleanExpr(n) }
func (n *NumberExpr) Accept(v Visitor) interface{}       { return v.VisitNumberExpr(n) }

// Children returns the direct children of a node in source order. Nil
// optional children (comments, EOLs, else branches) are omitted.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !isNil(n) {
				out = append(out, n)
			}
		}
	}
	addStmts := func(body []Stmt) {
		for _, s := range body {
			add(s)
		}
	}
	addExprs := func(exprs []Expr) {
		for _, e := range exprs {
			add(e)
		}
	}

	switch n := node.(type) {
	case *Listing:
		for _, l := range n.LeadingEmptyLines {
			add(l)
		}
		for _, f := range n.Functions {
			add(f)
		}
	case *Comment, *Variable, *Label, *EmptyMapExpr, *BooleanExpr, *NumberExpr:
	case *EmptyLine:
		add(n.Comment)
	case *EOL:
		add(n.Comment)
		for _, l := range n.EmptyLines {
			add(l)
		}
	case *Function:
		for _, a := range n.Arguments {
			add(a)
		}
		add(n.EOL)
		addStmts(n.Body)
	case *IfElseStmt:
		for _, b := range n.IfBranches {
			add(b)
		}
		add(n.ElseBranch)
	case *IfBranch:
		add(n.Condition, n.EOL)
		addStmts(n.Body)
	case *ElseBranch:
		add(n.EOL)
		addStmts(n.Body)
	case *ForEachStmt:
		add(n.Variable)
		addExprs(n.Values)
		add(n.EOL)
		addStmts(n.Body)
	case *ForStmt:
		add(n.Variable, n.StartValue, n.EndValue, n.EOL)
		addStmts(n.Body)
	case *WhileStmt:
		add(n.Condition, n.EOL)
		addStmts(n.Body)
	case *FunctionCallStmt:
		add(n.Call, n.EOL)
	case *ReturnStmt:
		add(n.Value, n.EOL)
	case *AssignmentStmt:
		add(n.Target, n.Value, n.EOL)
	case *Subscript:
		add(n.Variable, n.Subscript)
	case *ParenExpr:
		add(n.Value)
	case *UnaryExpr:
		add(n.Value)
	case *BinaryExpr:
		add(n.Lhs, n.Rhs)
	case *FunctionCallExpr:
		addExprs(n.Arguments)
	case *VariableExpr:
		add(n.Variable)
	case *LabelExpr:
		add(n.Label)
	default:
		panic(fmt.Sprintf("ast: unknown node type %T", node))
	}
	return out
}

// isNil reports whether a node interface holds a nil pointer
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Comment:
		return v == nil
	case *EOL:
		return v == nil
	case *ElseBranch:
		return v == nil
	}
	return false
}

// Walk traverses the tree rooted at node in pre-order. If fn returns false
// the children of that node are skipped.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// IsTrivia reports whether a node is whitespace or comment bookkeeping
// rather than part of the program's structure.
func IsTrivia(node Node) bool {
	switch node.(type) {
	case *Comment, *EmptyLine, *EOL:
		return true
	}
	return false
}

// Dumper converts AST nodes into nested maps and slices suitable for
// encoding as YAML or JSON. Every map carries "type", "offset" and
// "offset_end" keys.
type Dumper struct {
	// IncludeTrivia keeps comments, EOLs and empty lines in the output
	IncludeTrivia bool
}

// NewDumper creates a new dumper
func NewDumper(includeTrivia bool) *Dumper {
	return &Dumper{IncludeTrivia: includeTrivia}
}

// Dump converts a node
func (d *Dumper) Dump(node Node) map[string]interface{} {
	if isNil(node) {
		return nil
	}
	if m, ok := node.Accept(d).(map[string]interface{}); ok {
		return m
	}
	return nil
}

func (d *Dumper) base(kind string, n Node) map[string]interface{} {
	return map[string]interface{}{
		"type":       kind,
		"offset":     n.Pos(),
		"offset_end": n.End(),
	}
}

func (d *Dumper) trivia(m map[string]interface{}, key string, n Node) {
	if d.IncludeTrivia && !isNil(n) {
		m[key] = d.Dump(n)
	}
}

func (d *Dumper) stmts(body []Stmt) []interface{} {
	out := make([]interface{}, 0, len(body))
	for _, s := range body {
		out = append(out, d.Dump(s))
	}
	return out
}

func (d *Dumper) exprs(exprs []Expr) []interface{} {
	out := make([]interface{}, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, d.Dump(e))
	}
	return out
}

func (d *Dumper) emptyLines(lines []*EmptyLine) []interface{} {
	out := make([]interface{}, 0, len(lines))
	for _, l := range lines {
		out = append(out, d.Dump(l))
	}
	return out
}

func (d *Dumper) VisitListing(n *Listing) interface{} {
	m := d.base("Listing", n)
	functions := make([]interface{}, 0, len(n.Functions))
	for _, f := range n.Functions {
		functions = append(functions, d.Dump(f))
	}
	m["functions"] = functions
	if d.IncludeTrivia {
		m["leading_empty_lines"] = d.emptyLines(n.LeadingEmptyLines)
	}
	return m
}

func (d *Dumper) VisitComment(n *Comment) interface{} {
	m := d.base("Comment", n)
	m["string"] = n.Text
	return m
}

func (d *Dumper) VisitEmptyLine(n *EmptyLine) interface{} {
	m := d.base("EmptyLine", n)
	d.trivia(m, "comment", n.Comment)
	return m
}

func (d *Dumper) VisitEOL(n *EOL) interface{} {
	m := d.base("EOL", n)
	d.trivia(m, "comment", n.Comment)
	m["empty_lines"] = d.emptyLines(n.EmptyLines)
	return m
}

func (d *Dumper) VisitFunction(n *Function) interface{} {
	m := d.base("Function", n)
	m["name"] = n.Name
	args := make([]interface{}, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		args = append(args, d.Dump(a))
	}
	m["arguments"] = args
	m["body"] = d.stmts(n.Body)
	d.trivia(m, "eol", n.EOL)
	return m
}

func (d *Dumper) VisitIfElseStmt(n *IfElseStmt) interface{} {
	m := d.base("IfElseStmt", n)
	branches := make([]interface{}, 0, len(n.IfBranches))
	for _, b := range n.IfBranches {
		branches = append(branches, d.Dump(b))
	}
	m["if_branches"] = branches
	if n.ElseBranch != nil {
		m["else_branch"] = d.Dump(n.ElseBranch)
	}
	return m
}

func (d *Dumper) VisitIfBranch(n *IfBranch) interface{} {
	m := d.base("IfBranch", n)
	m["condition"] = d.Dump(n.Condition)
	m["body"] = d.stmts(n.Body)
	d.trivia(m, "eol", n.EOL)
	return m
}

func (d *Dumper) VisitElseBranch(n *ElseBranch) interface{} {
	m := d.base("ElseBranch", n)
	m["body"] = d.stmts(n.Body)
	d.trivia(m, "eol", n.EOL)
	return m
}

func (d *Dumper) VisitForEachStmt(n *ForEachStmt) interface{} {
	m := d.base("ForEachStmt", n)
	m["variable"] = d.Dump(n.Variable)
	m["values"] = d.exprs(n.Values)
	m["body"] = d.stmts(n.Body)
	d.trivia(m, "eol", n.EOL)
	return m
}

func (d *Dumper) VisitForStmt(n *ForStmt) interface{} {
	m := d.base("ForStmt", n)
	m["variable"] = d.Dump(n.Variable)
	m["start"] = d.Dump(n.StartValue)
	m["end"] = d.Dump(n.EndValue)
	m["body"] = d.stmts(n.Body)
	d.trivia(m, "eol", n.EOL)
	return m
}

func (d *Dumper) VisitWhileStmt(n *WhileStmt) interface{} {
	m := d.base("WhileStmt", n)
	m["condition"] = d.Dump(n.Condition)
	m["body"] = d.stmts(n.Body)
	d.trivia(m, "eol", n.EOL)
	return m
}

func (d *Dumper) VisitFunctionCallStmt(n *FunctionCallStmt) interface{} {
	m := d.base("FunctionCallStmt", n)
	m["call"] = d.Dump(n.Call)
	d.trivia(m, "eol", n.EOL)
	return m
}

func (d *Dumper) VisitReturnStmt(n *ReturnStmt) interface{} {
	m := d.base("ReturnStmt", n)
	m["value"] = d.Dump(n.Value)
	d.trivia(m, "eol", n.EOL)
	return m
}

func (d *Dumper) VisitAssignmentStmt(n *AssignmentStmt) interface{} {
	m := d.base("AssignmentStmt", n)
	m["variable"] = d.Dump(n.Target)
	m["op"] = string(n.Op)
	m["value"] = d.Dump(n.Value)
	d.trivia(m, "eol", n.EOL)
	return m
}

func (d *Dumper) VisitVariable(n *Variable) interface{} {
	m := d.base("Variable", n)
	m["name"] = n.Name
	return m
}

func (d *Dumper) VisitSubscript(n *Subscript) interface{} {
	m := d.base("Subscript", n)
	m["variable"] = d.Dump(n.Variable)
	m["subscript"] = d.Dump(n.Subscript)
	return m
}

func (d *Dumper) VisitLabel(n *Label) interface{} {
	m := d.base("Label", n)
	m["name"] = n.Name
	return m
}

func (d *Dumper) VisitParenExpr(n *ParenExpr) interface{} {
	m := d.base("ParenExpr", n)
	m["value"] = d.Dump(n.Value)
	return m
}

func (d *Dumper) VisitUnaryExpr(n *UnaryExpr) interface{} {
	m := d.base("UnaryExpr", n)
	m["op"] = string(n.Op)
	m["value"] = d.Dump(n.Value)
	return m
}

func (d *Dumper) VisitBinaryExpr(n *BinaryExpr) interface{} {
	m := d.base("BinaryExpr", n)
	m["lhs"] = d.Dump(n.Lhs)
	m["op"] = string(n.Op)
	m["rhs"] = d.Dump(n.Rhs)
	return m
}

func (d *Dumper) VisitFunctionCallExpr(n *FunctionCallExpr) interface{} {
	m := d.base("FunctionCallExpr", n)
	m["name"] = n.Name
	m["arguments"] = d.exprs(n.Arguments)
	return m
}

func (d *Dumper) VisitVariableExpr(n *VariableExpr) interface{} {
	m := d.base("VariableExpr", n)
	m["variable"] = d.Dump(n.Variable)
	return m
}

func (d *Dumper) VisitLabelExpr(n *LabelExpr) interface{} {
	m := d.base("LabelExpr", n)
	m["label"] = d.Dump(n.Label)
	return m
}

func (d *Dumper) VisitEmptyMapExpr(n *EmptyMapExpr) interface{} {
	return d.base("EmptyMapExpr", n)
}

func (d *Dumper) VisitBooleanExpr(n *BooleanExpr) interface{} {
	m := d.base("BooleanExpr", n)
	m["value"] = n.Value
	return m
}

func (d *Dumper) VisitNumberExpr(n *NumberExpr) interface{} {
	m := d.base("NumberExpr", n)
	if n.Value.IsInt64() {
		m["value"] = n.Value.Int64()
	} else {
		m["value"] = n.Value.String()
	}
	m["display_base"] = n.DisplayBase
	m["display_digits"] = n.DisplayDigits
	return m
}
