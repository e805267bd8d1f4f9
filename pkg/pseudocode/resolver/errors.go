// File: errors.go
// Title: Name Resolution Errors
// Description: Errors raised when a name is used both as a label and as a
//              variable. Each carries the line, column and source line of the
//              offending name and renders through diag.Format.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial error types

package resolver

import (
	"fmt"

	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/diag"
)

// ASTConstructionError is implemented by all errors found while turning a
// syntax tree into a resolved AST
type ASTConstructionError interface {
	error
	diag.Diagnostic
	astConstructionError()
}

// LabelUsedAsVariableNameError is raised when a name which has already been
// used as a label is later assigned to
type LabelUsedAsVariableNameError struct {
	diag.Location
	Variable *ast.Variable
}

// NewLabelUsedAsVariableNameError creates the error for variable, an
// assignment target in source
func NewLabelUsedAsVariableNameError(source string, variable *ast.Variable) *LabelUsedAsVariableNameError {
	return &LabelUsedAsVariableNameError{
		Location: diag.At(source, variable.Pos()),
		Variable: variable,
	}
}

// Explanation describes the conflict
func (e *LabelUsedAsVariableNameError) Explanation() string {
	return fmt.Sprintf("The name '%s' is already in use as a label name.", e.Variable.Name)
}

func (e *LabelUsedAsVariableNameError) Error() string { return diag.Format(e) }

func (*LabelUsedAsVariableNameError) astConstructionError() {}

// CannotSubscriptLabelError is raised when a label is indexed like a
// variable
type CannotSubscriptLabelError struct {
	diag.Location
	Subscript *ast.Subscript
	LabelName string
}

// NewCannotSubscriptLabelError creates the error for subscript, whose root
// name labelName is a label
func NewCannotSubscriptLabelError(source string, subscript *ast.Subscript, labelName string) *CannotSubscriptLabelError {
	return &CannotSubscriptLabelError{
		Location:  diag.At(source, subscript.Pos()),
		Subscript: subscript,
		LabelName: labelName,
	}
}

// Explanation describes the conflict
func (e *CannotSubscriptLabelError) Explanation() string {
	return fmt.Sprintf("Attempting to subscript label '%s'.", e.LabelName)
}

func (e *CannotSubscriptLabelError) Error() string { return diag.Format(e) }

func (*CannotSubscriptLabelError) astConstructionError() {}
