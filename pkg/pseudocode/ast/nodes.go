// File: nodes.go
// Title: Pseudocode AST Node Definitions
// Description: Defines all AST node types produced from a pseudocode listing:
//              the listing itself, functions, statements, expressions and the
//              whitespace/comment trivia attached to them. Every node carries
//              a source span which is derived from its children when the node
//              is constructed.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"math/big"
)

// Span identifies the source characters belonging to a node. Offset is the
// index of the first character, OffsetEnd is one past the last.
type Span struct {
	Offset    int
	OffsetEnd int
}

// Pos returns the offset of the first character of the span
func (s Span) Pos() int { return s.Offset }

// End returns the offset one past the last character of the span
func (s Span) End() int { return s.OffsetEnd }

// Node represents the base interface for all AST nodes
type Node interface {
	Pos() int
	End() int

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}
}

// Stmt is implemented by all statement nodes
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by all expression nodes
type Expr interface {
	Node
	exprNode()
}

// Assignable is a Variable or a (possibly nested) Subscript of one
type Assignable interface {
	Node
	// RootName returns the name of the variable at the base of any
	// subscripts.
	RootName() string
	assignableNode()
}

// Listing is the root of a parsed source file
type Listing struct {
	Span
	Functions         []*Function
	LeadingEmptyLines []*EmptyLine
}

// NewListing creates a listing. At least one function is required.
func NewListing(functions []*Function, leading []*EmptyLine) *Listing {
	if len(functions) == 0 {
		panic("ast: listing requires at least one function")
	}
	return &Listing{
		Span:              Span{functions[0].Pos(), functions[len(functions)-1].End()},
		Functions:         functions,
		LeadingEmptyLines: leading,
	}
}

// Comment is an end-of-line comment including its leading '#' but
// excluding the line terminator.
type Comment struct {
	Span
	Text string
}

// NewComment creates a comment starting at offset
func NewComment(offset int, text string) *Comment {
	return &Comment{Span: Span{offset, offset + len(text)}, Text: text}
}

// EmptyLine is a blank or comment-only source line
type EmptyLine struct {
	Span
	Comment *Comment // may be nil
}

// NewEmptyLine creates an empty line node
func NewEmptyLine(offset, offsetEnd int, comment *Comment) *EmptyLine {
	return &EmptyLine{Span: Span{offset, offsetEnd}, Comment: comment}
}

// EOL terminates a statement or block heading line
type EOL struct {
	Span
	Comment    *Comment // may be nil
	EmptyLines []*EmptyLine
}

// NewEOL creates an end-of-line node
func NewEOL(offset, offsetEnd int, comment *Comment, emptyLines []*EmptyLine) *EOL {
	return &EOL{Span: Span{offset, offsetEnd}, Comment: comment, EmptyLines: emptyLines}
}

// Function is a named function definition
type Function struct {
	Span
	Name      string
	Arguments []*Variable
	Body      []Stmt
	EOL       *EOL // heading line terminator, nil for one-liners
}

// NewFunction creates a function whose span ends with its last statement
func NewFunction(offset int, name string, args []*Variable, body []Stmt, eol *EOL) *Function {
	return &Function{
		Span:      Span{offset, bodyEnd(body)},
		Name:      name,
		Arguments: args,
		Body:      body,
		EOL:       eol,
	}
}

func bodyEnd(body []Stmt) int {
	if len(body) == 0 {
		panic("ast: statement body must not be empty")
	}
	return body[len(body)-1].End()
}

// Statements

// IfElseStmt is an if statement with optional else-if and else branches
type IfElseStmt struct {
	Span
	IfBranches []*IfBranch
	ElseBranch *ElseBranch // may be nil
}

// NewIfElseStmt creates an if statement. The first branch is the 'if',
// any further branches are 'else if's.
func NewIfElseStmt(ifBranches []*IfBranch, elseBranch *ElseBranch) *IfElseStmt {
	if len(ifBranches) == 0 {
		panic("ast: if statement requires at least one branch")
	}
	end := ifBranches[len(ifBranches)-1].End()
	if elseBranch != nil {
		end = elseBranch.End()
	}
	return &IfElseStmt{
		Span:       Span{ifBranches[0].Pos(), end},
		IfBranches: ifBranches,
		ElseBranch: elseBranch,
	}
}

// IfBranch is an 'if' or 'else if' branch
type IfBranch struct {
	Span
	Condition Expr
	Body      []Stmt
	EOL       *EOL
}

// NewIfBranch creates a branch starting at its 'if' (or 'else') keyword
func NewIfBranch(offset int, condition Expr, body []Stmt, eol *EOL) *IfBranch {
	return &IfBranch{Span: Span{offset, bodyEnd(body)}, Condition: condition, Body: body, EOL: eol}
}

// ElseBranch is the final 'else' branch
type ElseBranch struct {
	Span
	Body []Stmt
	EOL  *EOL
}

// NewElseBranch creates an else branch starting at its keyword
func NewElseBranch(offset int, body []Stmt, eol *EOL) *ElseBranch {
	return &ElseBranch{Span: Span{offset, bodyEnd(body)}, Body: body, EOL: eol}
}

// ForEachStmt iterates over an explicit list of values
type ForEachStmt struct {
	Span
	Variable *Variable
	Values   []Expr
	Body     []Stmt
	EOL      *EOL
}

// NewForEachStmt creates a for-each loop
func NewForEachStmt(offset int, variable *Variable, values []Expr, body []Stmt, eol *EOL) *ForEachStmt {
	if len(values) == 0 {
		panic("ast: for each requires at least one value")
	}
	return &ForEachStmt{Span: Span{offset, bodyEnd(body)}, Variable: variable, Values: values, Body: body, EOL: eol}
}

// ForStmt is a counting loop from Start to End inclusive
type ForStmt struct {
	Span
	Variable   *Variable
	StartValue Expr
	EndValue   Expr // inclusive
	Body       []Stmt
	EOL        *EOL
}

// NewForStmt creates a counting loop
func NewForStmt(offset int, variable *Variable, start, end Expr, body []Stmt, eol *EOL) *ForStmt {
	return &ForStmt{Span: Span{offset, bodyEnd(body)}, Variable: variable, StartValue: start, EndValue: end, Body: body, EOL: eol}
}

// WhileStmt loops while Condition holds
type WhileStmt struct {
	Span
	Condition Expr
	Body      []Stmt
	EOL       *EOL
}

// NewWhileStmt creates a while loop
func NewWhileStmt(offset int, condition Expr, body []Stmt, eol *EOL) *WhileStmt {
	return &WhileStmt{Span: Span{offset, bodyEnd(body)}, Condition: condition, Body: body, EOL: eol}
}

// FunctionCallStmt is a function call used as a statement
type FunctionCallStmt struct {
	Span
	Call *FunctionCallExpr
	EOL  *EOL
}

// NewFunctionCallStmt creates a call statement spanning the call expression
func NewFunctionCallStmt(call *FunctionCallExpr, eol *EOL) *FunctionCallStmt {
	return &FunctionCallStmt{Span: call.Span, Call: call, EOL: eol}
}

// ReturnStmt returns a value from the enclosing function
type ReturnStmt struct {
	Span
	Value Expr
	EOL   *EOL
}

// NewReturnStmt creates a return statement starting at the keyword
func NewReturnStmt(offset int, value Expr, eol *EOL) *ReturnStmt {
	return &ReturnStmt{Span: Span{offset, value.End()}, Value: value, EOL: eol}
}

// AssignmentStmt assigns (or updates) a variable or subscript
type AssignmentStmt struct {
	Span
	Target Assignable
	Op     AssignmentOp
	Value  Expr
	EOL    *EOL
}

// NewAssignmentStmt creates an assignment
func NewAssignmentStmt(target Assignable, op AssignmentOp, value Expr, eol *EOL) *AssignmentStmt {
	return &AssignmentStmt{
		Span:   Span{target.Pos(), value.End()},
		Target: target,
		Op:     op,
		Value:  value,
		EOL:    eol,
	}
}

// Names

// Variable is a reference to a (local) variable
type Variable struct {
	Span
	Name string
}

// NewVariable creates a variable reference
func NewVariable(offset int, name string) *Variable {
	return &Variable{Span: Span{offset, offset + len(name)}, Name: name}
}

// RootName returns the variable name
func (v *Variable) RootName() string { return v.Name }

// Subscript indexes into a variable, e.g. x[1] or x[1][2]
type Subscript struct {
	Span
	Variable  Assignable
	Subscript Expr
}

// NewSubscript creates a subscript. offsetEnd is the end of the closing
// bracket; the start is taken from the subscripted variable.
func NewSubscript(offsetEnd int, variable Assignable, subscript Expr) *Subscript {
	return &Subscript{Span: Span{variable.Pos(), offsetEnd}, Variable: variable, Subscript: subscript}
}

// RootName returns the name of the variable being subscripted
func (s *Subscript) RootName() string { return s.Variable.RootName() }

// Label is a symbolic constant name. Labels are never assigned to.
type Label struct {
	Span
	Name string
}

// NewLabel creates a label reference
func NewLabel(offset int, name string) *Label {
	return &Label{Span: Span{offset, offset + len(name)}, Name: name}
}

// Expressions

// ParenExpr is a parenthesized expression; its span includes the brackets
type ParenExpr struct {
	Span
	Value Expr
}

// NewParenExpr creates a parenthesized expression
func NewParenExpr(offset, offsetEnd int, value Expr) *ParenExpr {
	return &ParenExpr{Span: Span{offset, offsetEnd}, Value: value}
}

// UnaryExpr applies a prefix operator
type UnaryExpr struct {
	Span
	Op    UnaryOp
	Value Expr
}

// NewUnaryExpr creates a unary expression starting at the operator
func NewUnaryExpr(offset int, op UnaryOp, value Expr) *UnaryExpr {
	return &UnaryExpr{Span: Span{offset, value.End()}, Op: op, Value: value}
}

// BinaryExpr applies an infix operator
type BinaryExpr struct {
	Span
	Lhs Expr
	Op  BinaryOp
	Rhs Expr
}

// NewBinaryExpr creates a binary expression spanning both operands
func NewBinaryExpr(lhs Expr, op BinaryOp, rhs Expr) *BinaryExpr {
	return &BinaryExpr{Span: Span{lhs.Pos(), rhs.End()}, Lhs: lhs, Op: op, Rhs: rhs}
}

// FunctionCallExpr calls a function by name
type FunctionCallExpr struct {
	Span
	Name      string
	Arguments []Expr
}

// NewFunctionCallExpr creates a call; offsetEnd is the end of the closing
// parenthesis.
func NewFunctionCallExpr(offset, offsetEnd int, name string, args []Expr) *FunctionCallExpr {
	return &FunctionCallExpr{Span: Span{offset, offsetEnd}, Name: name, Arguments: args}
}

// VariableExpr uses a variable (or subscript) as a value
type VariableExpr struct {
	Span
	Variable Assignable
}

// NewVariableExpr wraps a variable or subscript
func NewVariableExpr(variable Assignable) *VariableExpr {
	return &VariableExpr{Span: Span{variable.Pos(), variable.End()}, Variable: variable}
}

// LabelExpr uses a label as a value
type LabelExpr struct {
	Span
	Label *Label
}

// NewLabelExpr wraps a label
func NewLabelExpr(label *Label) *LabelExpr {
	return &LabelExpr{Span: label.Span, Label: label}
}

// EmptyMapExpr is the empty map literal {}
type EmptyMapExpr struct {
	Span
}

// NewEmptyMapExpr creates an empty map literal
func NewEmptyMapExpr(offset, offsetEnd int) *EmptyMapExpr {
	return &EmptyMapExpr{Span: Span{offset, offsetEnd}}
}

// BooleanExpr is a True or False literal
type BooleanExpr struct {
	Span
	Value bool
}

// NewBooleanExpr creates a boolean literal
func NewBooleanExpr(offset int, value bool) *BooleanExpr {
	return &BooleanExpr{Span: Span{offset, offset + len(boolLiteral(value))}, Value: value}
}

// NumberExpr is an integer literal. DisplayBase and DisplayDigits record how
// the literal was written (2, 10 or 16; digit count including leading zeros)
// so it can be rendered exactly as in the source.
type NumberExpr struct {
	Span
	Value         *big.Int
	DisplayBase   int
	DisplayDigits int
}

// NewNumberExpr creates a number literal
func NewNumberExpr(offset, offsetEnd int, value *big.Int, displayBase, displayDigits int) *NumberExpr {
	switch displayBase {
	case 2, 10, 16:
	default:
		panic(fmt.Sprintf("ast: unsupported display base %d", displayBase))
	}
	return &NumberExpr{
		Span:          Span{offset, offsetEnd},
		Value:         value,
		DisplayBase:   displayBase,
		DisplayDigits: displayDigits,
	}
}

// Marker methods

func (*IfElseStmt) stmtNode()       {}
func (*ForEachStmt) stmtNode()      {}
func (*ForStmt) stmtNode()          {}
func (*WhileStmt) stmtNode()        {}
func (*FunctionCallStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()       {}
func (*AssignmentStmt) stmtNode()   {}

func (*ParenExpr) exprNode()        {}
func (*UnaryExpr) exprNode()        {}
func (*BinaryExpr) exprNode()       {}
func (*FunctionCallExpr) exprNode() {}
func (*VariableExpr) exprNode()     {}
func (*LabelExpr) exprNode()        {}
func (*EmptyMapExpr) exprNode()     {}
func (*BooleanExpr) exprNode()      {}
func (*NumberExpr) exprNode()       {}

func (*Variable) assignableNode()  {}
func (*Subscript) assignableNode() {}
