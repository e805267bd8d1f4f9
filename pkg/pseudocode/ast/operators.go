// File: operators.go
// Title: Pseudocode Operator Tables
// Description: Static operator vocabulary of the pseudocode language: binary
//              operators grouped into precedence levels with a fixed
//              associativity, unary operators and assignment operators.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial operator tables

package ast

// BinaryOp is an infix operator
type BinaryOp string

// Binary operators
const (
	OpLogicalOr  BinaryOp = "or"
	OpLogicalAnd BinaryOp = "and"

	OpEqual        BinaryOp = "=="
	OpNotEqual     BinaryOp = "!="
	OpLess         BinaryOp = "<"
	OpLessEqual    BinaryOp = "<="
	OpGreater      BinaryOp = ">"
	OpGreaterEqual BinaryOp = ">="

	OpBitOr  BinaryOp = "|"
	OpBitXor BinaryOp = "^"
	OpBitAnd BinaryOp = "&"

	OpShiftLeft  BinaryOp = "<<"
	OpShiftRight BinaryOp = ">>"

	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"

	OpMul    BinaryOp = "*"
	OpIntDiv BinaryOp = "//"
	OpMod    BinaryOp = "%"

	OpPow BinaryOp = "**"
)

// UnaryOp is a prefix operator
type UnaryOp string

// Unary operators
const (
	OpPlus       UnaryOp = "+"
	OpMinus      UnaryOp = "-"
	OpBitNot     UnaryOp = "~"
	OpLogicalNot UnaryOp = "not"
)

// AssignmentOp is a plain or compound assignment operator
type AssignmentOp string

// Assignment operators
const (
	AssignSet        AssignmentOp = "="
	AssignAdd        AssignmentOp = "+="
	AssignSub        AssignmentOp = "-="
	AssignMul        AssignmentOp = "*="
	AssignIntDiv     AssignmentOp = "//="
	AssignMod        AssignmentOp = "%="
	AssignPow        AssignmentOp = "**="
	AssignBitAnd     AssignmentOp = "&="
	AssignBitOr      AssignmentOp = "|="
	AssignBitXor     AssignmentOp = "^="
	AssignShiftLeft  AssignmentOp = "<<="
	AssignShiftRight AssignmentOp = ">>="
)

// Associativity of a binary precedence level
type Associativity int

const (
	LeftAssociative Associativity = iota
	RightAssociative
)

// String returns string representation of Associativity
func (a Associativity) String() string {
	switch a {
	case LeftAssociative:
		return "left"
	case RightAssociative:
		return "right"
	default:
		return "unknown"
	}
}

// PrecedenceLevel groups binary operators which bind equally tightly
type PrecedenceLevel struct {
	Operators     []BinaryOp
	Associativity Associativity
}

// BinaryPrecedence lists the binary precedence levels from loosest to
// tightest binding. Operators listed within a level are ordered so that no
// operator is a prefix of a later one.
var BinaryPrecedence = []PrecedenceLevel{
	{[]BinaryOp{OpLogicalOr}, LeftAssociative},
	{[]BinaryOp{OpLogicalAnd}, LeftAssociative},
	{[]BinaryOp{OpEqual, OpNotEqual, OpLessEqual, OpGreaterEqual, OpLess, OpGreater}, LeftAssociative},
	{[]BinaryOp{OpBitOr}, LeftAssociative},
	{[]BinaryOp{OpBitXor}, LeftAssociative},
	{[]BinaryOp{OpBitAnd}, LeftAssociative},
	{[]BinaryOp{OpShiftLeft, OpShiftRight}, LeftAssociative},
	{[]BinaryOp{OpAdd, OpSub}, LeftAssociative},
	{[]BinaryOp{OpMul, OpIntDiv, OpMod}, LeftAssociative},
	{[]BinaryOp{OpPow}, RightAssociative},
}

// AssignmentOps lists every assignment operator, longest first
var AssignmentOps = []AssignmentOp{
	AssignIntDiv, AssignPow, AssignShiftLeft, AssignShiftRight,
	AssignAdd, AssignSub, AssignMul, AssignMod,
	AssignBitAnd, AssignBitOr, AssignBitXor,
	AssignSet,
}

var (
	binaryAssociativity = map[BinaryOp]Associativity{}
	assignmentOpsByText = map[string]AssignmentOp{}
)

func init() {
	for _, level := range BinaryPrecedence {
		for _, op := range level.Operators {
			binaryAssociativity[op] = level.Associativity
		}
	}
	for _, op := range AssignmentOps {
		assignmentOpsByText[string(op)] = op
	}
}

// AssociativityOf returns the associativity of a binary operator. It panics
// for operators not in BinaryPrecedence.
func AssociativityOf(op BinaryOp) Associativity {
	assoc, ok := binaryAssociativity[op]
	if !ok {
		panic("ast: unknown binary operator " + string(op))
	}
	return assoc
}

// PrecedenceOf returns the index of the operator's level in BinaryPrecedence
// (higher binds tighter), or -1 if unknown.
func PrecedenceOf(op BinaryOp) int {
	for i, level := range BinaryPrecedence {
		for _, candidate := range level.Operators {
			if candidate == op {
				return i
			}
		}
	}
	return -1
}

// ParseAssignmentOp maps operator text onto an AssignmentOp by exact match
func ParseAssignmentOp(text string) (AssignmentOp, bool) {
	op, ok := assignmentOpsByText[text]
	return op, ok
}
