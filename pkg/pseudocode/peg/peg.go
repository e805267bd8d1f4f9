// File: peg.go
// Title: PEG Parsing Engine
// Description: A small memoizing parsing expression grammar interpreter. A
//              grammar is a set of named rules built from terminal regexes,
//              sequences, ordered choices, repetitions, lookaheads and the
//              indentation combinators Block and Aligned. Matching produces a
//              raw, untyped parse tree; each named rule's result is handed to
//              a transform function as soon as the rule matches so callers can
//              build typed trees bottom-up.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine with memoization and indentation support

package peg

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Raw parse tree node shapes

// Regex is a matched terminal
type Regex struct {
	Start  int
	End    int
	String string
}

// Lookahead is a zero-width match carrying only its position
type Lookahead struct {
	Offset int
}

// Alt records which alternative (0-based) of an ordered choice matched
type Alt struct {
	Choice int
	Value  interface{}
}

// Concat holds one result per item of a sequence
type Concat struct {
	Items []interface{}
}

// Repeat holds the results of a repetition in order
type Repeat struct {
	Items []interface{}
}

// Transformer is called with a rule name and the rule's raw result (whose
// own sub-rules have already been transformed). It returns the value that
// replaces the raw result in the enclosing tree.
type Transformer func(rule string, node interface{}) interface{}

// Expr is a parsing expression
type Expr interface {
	match(p *parser, pos int) (interface{}, int, bool)
}

// Grammar is a set of named rules with a start rule
type Grammar struct {
	Rules map[string]Expr
	Start string
}

// NewGrammar creates an empty grammar with the given start rule
func NewGrammar(start string) *Grammar {
	return &Grammar{Rules: make(map[string]Expr), Start: start}
}

// Define adds (or replaces) a rule
func (g *Grammar) Define(name string, expr Expr) {
	g.Rules[name] = expr
}

// Validate checks that every referenced rule is defined
func (g *Grammar) Validate() error {
	if _, ok := g.Rules[g.Start]; !ok {
		return fmt.Errorf("start rule %q is not defined", g.Start)
	}
	var missing []string
	seen := make(map[string]bool)
	var check func(e Expr)
	check = func(e Expr) {
		switch e := e.(type) {
		case *ruleRef:
			if _, ok := g.Rules[e.name]; !ok && !seen[e.name] {
				missing = append(missing, e.name)
			}
			seen[e.name] = true
		case *seqExpr:
			for _, item := range e.items {
				check(item)
			}
		case *choiceExpr:
			for _, alt := range e.alts {
				check(alt)
			}
		case *repeatExpr:
			check(e.item)
		case *optExpr:
			check(e.item)
		case *lookaheadExpr:
			check(e.item)
		case *namedExpr:
			check(e.item)
		case *blockExpr:
			check(e.item)
		}
	}
	names := make([]string, 0, len(g.Rules))
	for name := range g.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		check(g.Rules[name])
	}
	if len(missing) > 0 {
		return fmt.Errorf("undefined rules: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Parse matches the whole of source against the grammar's start rule. The
// start rule must consume all input (typically by ending with EOF()).
func (g *Grammar) Parse(source string, transform Transformer) (interface{}, error) {
	if transform == nil {
		transform = func(_ string, node interface{}) interface{} { return node }
	}
	p := &parser{
		grammar:   g,
		source:    source,
		transform: transform,
		memo:      make(map[memoKey]memoEntry),
		indents:   []int{0},
		farthest:  -1,
		expected:  make(map[string]bool),
	}
	value, end, ok := (&ruleRef{name: g.Start}).match(p, 0)
	if !ok {
		return nil, p.error()
	}
	if end != len(source) {
		p.fail(end, "end of input")
		return nil, p.error()
	}
	return value, nil
}

// Expressions

// R matches a regular expression anchored at the current position
func R(pattern string) Expr {
	return &regexExpr{re: regexp.MustCompile(`^(?:` + pattern + `)`), desc: "/" + pattern + "/"}
}

// L matches a literal string
func L(literal string) Expr {
	return &regexExpr{re: regexp.MustCompile(`^` + regexp.QuoteMeta(literal)), desc: fmt.Sprintf("%q", literal)}
}

// Seq matches each item in turn, producing a Concat
func Seq(items ...Expr) Expr { return &seqExpr{items: items} }

// Choice tries each alternative in order, producing an Alt for the first
// one that matches
func Choice(alts ...Expr) Expr { return &choiceExpr{alts: alts} }

// Star matches item zero or more times, producing a Repeat
func Star(item Expr) Expr { return &repeatExpr{item: item, min: 0} }

// Plus matches item one or more times, producing a Repeat
func Plus(item Expr) Expr { return &repeatExpr{item: item, min: 1} }

// Opt matches item or nothing; the result is the item's value or nil
func Opt(item Expr) Expr { return &optExpr{item: item} }

// Ref refers to a named rule
func Ref(name string) Expr { return &ruleRef{name: name} }

// Ahead succeeds without consuming input if item matches here
func Ahead(item Expr) Expr { return &lookaheadExpr{item: item, negate: false} }

// Not succeeds without consuming input if item does not match here
func Not(item Expr) Expr { return &lookaheadExpr{item: item, negate: true} }

// EOF matches the end of input, producing a Lookahead
func EOF() Expr { return eofExpr{} }

// Named reports failures of item as a single expectation described by name
func Named(name string, item Expr) Expr { return &namedExpr{name: name, item: item} }

// Block matches one or more items which all start at the same column,
// deeper than the enclosing block. Produces a Repeat.
func Block(item Expr) Expr { return &blockExpr{item: item} }

// Aligned matches, without consuming input, when the current position is at
// the column of the innermost enclosing block
func Aligned() Expr { return alignedExpr{} }

// Matching state

type memoKey struct {
	rule   string
	pos    int
	indent int
}

type memoEntry struct {
	value interface{}
	end   int
	ok    bool
}

type parser struct {
	grammar   *Grammar
	source    string
	transform Transformer
	memo      map[memoKey]memoEntry
	indents   []int

	// farthest failure bookkeeping for error reporting
	farthest int
	expected map[string]bool
	quiet    int
}

func (p *parser) fail(pos int, what string) {
	if p.quiet > 0 {
		return
	}
	if pos > p.farthest {
		p.farthest = pos
		p.expected = map[string]bool{what: true}
	} else if pos == p.farthest {
		p.expected[what] = true
	}
}

func (p *parser) error() *ParseError {
	pos := p.farthest
	if pos < 0 {
		pos = 0
	}
	expected := make([]string, 0, len(p.expected))
	for what := range p.expected {
		expected = append(expected, what)
	}
	sort.Strings(expected)
	return newParseError(p.source, pos, expected)
}

func (p *parser) indent() int { return p.indents[len(p.indents)-1] }

// column returns the 0-based column of pos
func (p *parser) column(pos int) int {
	return pos - (strings.LastIndexAny(p.source[:pos], "\r\n") + 1)
}

type regexExpr struct {
	re   *regexp.Regexp
	desc string
}

func (e *regexExpr) match(p *parser, pos int) (interface{}, int, bool) {
	loc := e.re.FindStringIndex(p.source[pos:])
	if loc == nil {
		p.fail(pos, e.desc)
		return nil, pos, false
	}
	end := pos + loc[1]
	return &Regex{Start: pos, End: end, String: p.source[pos:end]}, end, true
}

type seqExpr struct{ items []Expr }

func (e *seqExpr) match(p *parser, pos int) (interface{}, int, bool) {
	items := make([]interface{}, 0, len(e.items))
	cur := pos
	for _, item := range e.items {
		value, next, ok := item.match(p, cur)
		if !ok {
			return nil, pos, false
		}
		items = append(items, value)
		cur = next
	}
	return &Concat{Items: items}, cur, true
}

type choiceExpr struct{ alts []Expr }

func (e *choiceExpr) match(p *parser, pos int) (interface{}, int, bool) {
	for i, alt := range e.alts {
		if value, next, ok := alt.match(p, pos); ok {
			return &Alt{Choice: i, Value: value}, next, true
		}
	}
	return nil, pos, false
}

type repeatExpr struct {
	item Expr
	min  int
}

func (e *repeatExpr) match(p *parser, pos int) (interface{}, int, bool) {
	var items []interface{}
	cur := pos
	for {
		value, next, ok := e.item.match(p, cur)
		if !ok || next == cur {
			// a zero-width item would repeat forever; count it once
			if ok {
				items = append(items, value)
			}
			break
		}
		items = append(items, value)
		cur = next
	}
	if len(items) < e.min {
		return nil, pos, false
	}
	return &Repeat{Items: items}, cur, true
}

type optExpr struct{ item Expr }

func (e *optExpr) match(p *parser, pos int) (interface{}, int, bool) {
	if value, next, ok := e.item.match(p, pos); ok {
		return value, next, true
	}
	return nil, pos, true
}

type ruleRef struct{ name string }

func (e *ruleRef) match(p *parser, pos int) (interface{}, int, bool) {
	key := memoKey{rule: e.name, pos: pos, indent: p.indent()}
	if entry, ok := p.memo[key]; ok {
		return entry.value, entry.end, entry.ok
	}
	expr, ok := p.grammar.Rules[e.name]
	if !ok {
		panic(fmt.Sprintf("peg: undefined rule %q", e.name))
	}
	value, end, ok := expr.match(p, pos)
	if ok {
		value = p.transform(e.name, value)
	}
	p.memo[key] = memoEntry{value: value, end: end, ok: ok}
	return value, end, ok
}

type lookaheadExpr struct {
	item   Expr
	negate bool
}

func (e *lookaheadExpr) match(p *parser, pos int) (interface{}, int, bool) {
	if e.negate {
		p.quiet++
	}
	_, _, ok := e.item.match(p, pos)
	if e.negate {
		p.quiet--
		ok = !ok
	}
	if !ok {
		return nil, pos, false
	}
	return &Lookahead{Offset: pos}, pos, true
}

type eofExpr struct{}

func (eofExpr) match(p *parser, pos int) (interface{}, int, bool) {
	if pos != len(p.source) {
		p.fail(pos, "end of input")
		return nil, pos, false
	}
	return &Lookahead{Offset: pos}, pos, true
}

type namedExpr struct {
	name string
	item Expr
}

func (e *namedExpr) match(p *parser, pos int) (interface{}, int, bool) {
	p.quiet++
	value, next, ok := e.item.match(p, pos)
	p.quiet--
	if !ok {
		p.fail(pos, e.name)
	}
	return value, next, ok
}

type blockExpr struct{ item Expr }

func (e *blockExpr) match(p *parser, pos int) (interface{}, int, bool) {
	column := p.column(pos)
	if pos >= len(p.source) || column <= p.indent() {
		p.fail(pos, "indented block")
		return nil, pos, false
	}

	p.indents = append(p.indents, column)
	defer func() { p.indents = p.indents[:len(p.indents)-1] }()

	var items []interface{}
	cur := pos
	for cur < len(p.source) {
		if c := p.column(cur); c != column {
			if c > column {
				p.fail(cur, "consistent indentation")
			}
			break
		}
		value, next, ok := e.item.match(p, cur)
		if !ok || next == cur {
			break
		}
		items = append(items, value)
		cur = next
	}
	if len(items) == 0 {
		return nil, pos, false
	}
	return &Repeat{Items: items}, cur, true
}

type alignedExpr struct{}

func (alignedExpr) match(p *parser, pos int) (interface{}, int, bool) {
	if p.column(pos) != p.indent() {
		p.fail(pos, "aligned statement")
		return nil, pos, false
	}
	return &Lookahead{Offset: pos}, pos, true
}
