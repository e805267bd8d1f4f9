// File: format.go
// Title: Pseudocode Expression Rendering
// Description: Renders expressions and names back into pseudocode text.
//              Number literals are rendered exactly as written using their
//              recorded display base and digit count.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial expression rendering

package ast

import (
	"fmt"
	"strings"
)

const (
	trueLiteral  = "True"
	falseLiteral = "False"
)

func boolLiteral(value bool) string {
	if value {
		return trueLiteral
	}
	return falseLiteral
}

func (v *Variable) String() string { return v.Name }

func (l *Label) String() string { return l.Name }

func (s *Subscript) String() string {
	return fmt.Sprintf("%s[%s]", s.Variable, s.Subscript)
}

func (e *ParenExpr) String() string {
	return fmt.Sprintf("(%s)", e.Value)
}

func (e *UnaryExpr) String() string {
	value := fmt.Sprint(e.Value)
	if b, ok := e.Value.(*BinaryExpr); ok {
		level := PrecedenceOf(b.Op)
		if (e.Op == OpLogicalNot && level <= PrecedenceOf(OpLogicalAnd)) || (e.Op != OpLogicalNot && b.Op != OpPow) {
			value = "(" + value + ")"
		}
	}
	if e.Op == OpLogicalNot {
		return "not " + value
	}
	return string(e.Op) + value
}

// String renders the expression, parenthesizing operands whose grouping
// would otherwise read differently
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", e.operand(e.Lhs, true), e.Op, e.operand(e.Rhs, false))
}

func (e *BinaryExpr) operand(child Expr, left bool) string {
	level := PrecedenceOf(e.Op)
	switch c := child.(type) {
	case *BinaryExpr:
		childLevel := PrecedenceOf(c.Op)
		if childLevel < level {
			return fmt.Sprintf("(%s)", c)
		}
		// same level: only the side the operator folds towards goes bare
		if childLevel == level && left != (AssociativityOf(e.Op) == LeftAssociative) {
			return fmt.Sprintf("(%s)", c)
		}
	case *UnaryExpr:
		// not binds looser than comparisons, a sign looser than a base
		if c.Op == OpLogicalNot && level > PrecedenceOf(OpLogicalAnd) {
			return fmt.Sprintf("(%s)", c)
		}
		if c.Op != OpLogicalNot && left && e.Op == OpPow {
			return fmt.Sprintf("(%s)", c)
		}
	}
	return fmt.Sprint(child)
}

func (e *FunctionCallExpr) String() string {
	args := make([]string, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		args = append(args, fmt.Sprint(arg))
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}

func (e *VariableExpr) String() string { return fmt.Sprint(e.Variable) }

func (e *LabelExpr) String() string { return e.Label.Name }

func (e *EmptyMapExpr) String() string { return "{}" }

func (e *BooleanExpr) String() string { return boolLiteral(e.Value) }

// String renders the literal with its original base and leading zeros
func (e *NumberExpr) String() string {
	var prefix, digits string
	switch e.DisplayBase {
	case 2:
		prefix, digits = "0b", e.Value.Text(2)
	case 16:
		prefix, digits = "0x", strings.ToUpper(e.Value.Text(16))
	default:
		digits = e.Value.Text(10)
	}
	if pad := e.DisplayDigits - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	return prefix + digits
}
