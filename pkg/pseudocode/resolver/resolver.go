// File: resolver.go
// Title: Label Resolution
// Description: Rewrites a freshly built AST so that names which are read but
//              never assigned within a function become labels. Assignment
//              targets, loop variables and function parameters declare
//              variables; a name read before any declaration is a label for
//              the remainder of the function. Declaring a name after it was
//              used as a label, or subscripting a label, is an error.
//              The input tree is left untouched; a new tree is returned.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial resolver

package resolver

import (
	"fmt"
	"sort"

	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
)

// Resolver holds the per-function scope state of a resolution pass
type Resolver struct {
	source    string
	variables map[string]bool
	labels    map[string]bool
}

// New creates a resolver for trees built from source. source is used for
// error positions.
func New(source string) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns a copy of listing in which undeclared names are labels.
// source must be the text listing was built from.
func Resolve(source string, listing *ast.Listing) (*ast.Listing, error) {
	return New(source).listing(listing)
}

// Labels returns, sorted, the names resolved as labels in the function
// processed last
func (r *Resolver) Labels() []string {
	out := make([]string, 0, len(r.labels))
	for name := range r.labels {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Resolver) listing(l *ast.Listing) (*ast.Listing, error) {
	functions := make([]*ast.Function, len(l.Functions))
	for i, f := range l.Functions {
		resolved, err := r.Function(f)
		if err != nil {
			return nil, err
		}
		functions[i] = resolved
	}
	return ast.NewListing(functions, l.LeadingEmptyLines), nil
}

// Function resolves one function. Scope starts afresh: only the
// function's own parameters are declared on entry.
func (r *Resolver) Function(f *ast.Function) (*ast.Function, error) {
	r.variables = make(map[string]bool)
	r.labels = make(map[string]bool)
	for _, arg := range f.Arguments {
		r.variables[arg.Name] = true
	}

	body, err := r.body(f.Body)
	if err != nil {
		return nil, err
	}
	return ast.NewFunction(f.Pos(), f.Name, f.Arguments, body, f.EOL), nil
}

// declare records v as a variable
func (r *Resolver) declare(v *ast.Variable) error {
	if r.labels[v.Name] {
		return NewLabelUsedAsVariableNameError(r.source, v)
	}
	r.variables[v.Name] = true
	return nil
}

func (r *Resolver) body(stmts []ast.Stmt) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, len(stmts))
	for i, stmt := range stmts {
		resolved, err := r.stmt(stmt)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

func (r *Resolver) stmt(stmt ast.Stmt) (ast.Stmt, error) {
	switch s := stmt.(type) {
	case *ast.IfElseStmt:
		branches := make([]*ast.IfBranch, len(s.IfBranches))
		for i, b := range s.IfBranches {
			cond, err := r.expr(b.Condition)
			if err != nil {
				return nil, err
			}
			body, err := r.body(b.Body)
			if err != nil {
				return nil, err
			}
			branches[i] = ast.NewIfBranch(b.Pos(), cond, body, b.EOL)
		}
		var elseBranch *ast.ElseBranch
		if s.ElseBranch != nil {
			body, err := r.body(s.ElseBranch.Body)
			if err != nil {
				return nil, err
			}
			elseBranch = ast.NewElseBranch(s.ElseBranch.Pos(), body, s.ElseBranch.EOL)
		}
		return ast.NewIfElseStmt(branches, elseBranch), nil

	case *ast.ForEachStmt:
		// the values are evaluated before the loop variable exists
		values, err := r.exprs(s.Values)
		if err != nil {
			return nil, err
		}
		if err := r.declare(s.Variable); err != nil {
			return nil, err
		}
		body, err := r.body(s.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewForEachStmt(s.Pos(), s.Variable, values, body, s.EOL), nil

	case *ast.ForStmt:
		start, err := r.expr(s.StartValue)
		if err != nil {
			return nil, err
		}
		end, err := r.expr(s.EndValue)
		if err != nil {
			return nil, err
		}
		if err := r.declare(s.Variable); err != nil {
			return nil, err
		}
		body, err := r.body(s.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewForStmt(s.Pos(), s.Variable, start, end, body, s.EOL), nil

	case *ast.WhileStmt:
		cond, err := r.expr(s.Condition)
		if err != nil {
			return nil, err
		}
		body, err := r.body(s.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewWhileStmt(s.Pos(), cond, body, s.EOL), nil

	case *ast.FunctionCallStmt:
		call, err := r.call(s.Call)
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionCallStmt(call, s.EOL), nil

	case *ast.ReturnStmt:
		value, err := r.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStmt(s.Pos(), value, s.EOL), nil

	case *ast.AssignmentStmt:
		// x = x + 1 reads x before assigning it
		value, err := r.expr(s.Value)
		if err != nil {
			return nil, err
		}
		target, err := r.target(s.Target)
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentStmt(target, s.Op, value, s.EOL), nil
	}
	panic(fmt.Sprintf("resolver: unexpected statement %T", stmt))
}

// target resolves an assignment target. A plain variable is declared; a
// subscript modifies an existing value and so counts as a use.
func (r *Resolver) target(t ast.Assignable) (ast.Assignable, error) {
	if v, ok := t.(*ast.Variable); ok {
		if err := r.declare(v); err != nil {
			return nil, err
		}
		return v, nil
	}
	resolved, err := r.use(t)
	if err != nil {
		return nil, err
	}
	return resolved.(ast.Assignable), nil
}

// use resolves a read of a variable or subscript. The result is the
// (rebuilt) Assignable, or a *ast.Label for an undeclared plain name.
func (r *Resolver) use(a ast.Assignable) (ast.Node, error) {
	switch v := a.(type) {
	case *ast.Variable:
		if r.variables[v.Name] {
			return v, nil
		}
		r.labels[v.Name] = true
		return ast.NewLabel(v.Pos(), v.Name), nil

	case *ast.Subscript:
		inner, err := r.use(v.Variable)
		if err != nil {
			return nil, err
		}
		if label, ok := inner.(*ast.Label); ok {
			return nil, NewCannotSubscriptLabelError(r.source, v, label.Name)
		}
		index, err := r.expr(v.Subscript)
		if err != nil {
			return nil, err
		}
		return ast.NewSubscript(v.End(), inner.(ast.Assignable), index), nil
	}
	panic(fmt.Sprintf("resolver: unexpected assignable %T", a))
}

func (r *Resolver) exprs(exprs []ast.Expr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(exprs))
	for i, e := range exprs {
		resolved, err := r.expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

func (r *Resolver) call(c *ast.FunctionCallExpr) (*ast.FunctionCallExpr, error) {
	args, err := r.exprs(c.Arguments)
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionCallExpr(c.Pos(), c.End(), c.Name, args), nil
}

func (r *Resolver) expr(expr ast.Expr) (ast.Expr, error) {
	switch e := expr.(type) {
	case *ast.VariableExpr:
		resolved, err := r.use(e.Variable)
		if err != nil {
			return nil, err
		}
		if label, ok := resolved.(*ast.Label); ok {
			return ast.NewLabelExpr(label), nil
		}
		return ast.NewVariableExpr(resolved.(ast.Assignable)), nil

	case *ast.ParenExpr:
		value, err := r.expr(e.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewParenExpr(e.Pos(), e.End(), value), nil

	case *ast.UnaryExpr:
		value, err := r.expr(e.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(e.Pos(), e.Op, value), nil

	case *ast.BinaryExpr:
		lhs, err := r.expr(e.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := r.expr(e.Rhs)
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(lhs, e.Op, rhs), nil

	case *ast.FunctionCallExpr:
		return r.call(e)

	case *ast.LabelExpr, *ast.EmptyMapExpr, *ast.BooleanExpr, *ast.NumberExpr:
		return expr, nil
	}
	panic(fmt.Sprintf("resolver: unexpected expression %T", expr))
}
