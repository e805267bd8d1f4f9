// File: parser.go
// Title: Pseudocode Parser
// Description: Entry point of the pseudocode front end. BuildTree matches the
//              grammar and builds the raw AST; Parse additionally runs label
//              resolution so that names which are never assigned become
//              labels. Syntax errors are returned as *peg.ParseError, name
//              conflicts as the resolver's error types. Results may be
//              memoized by source digest.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parser facade

package parser

import (
	"crypto/sha256"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/msto63/vc2pseudo/pkg/core/cache"
	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
	vclog "github.com/msto63/vc2pseudo/pkg/core/log"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/ast"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/peg"
	"github.com/msto63/vc2pseudo/pkg/pseudocode/resolver"
)

// Options configures a Parser
type Options struct {
	// Logger receives debug and trace output; nil means discard
	Logger *vclog.Logger

	// MaxInputLength rejects longer sources; 0 means no limit
	MaxInputLength int

	// TraceRules logs every grammar rule transform at trace level
	TraceRules bool

	// CacheSize keeps that many successful results; 0 disables caching.
	// Cached listings are shared and must not be modified.
	CacheSize int

	// CacheTTL expires cached results; 0 keeps them until evicted
	CacheTTL time.Duration
}

// CacheStats describes the result cache of a Parser
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Parser parses pseudocode listings. A Parser is safe for concurrent use.
type Parser struct {
	grammar *peg.Grammar
	builder *TreeBuilder
	logger  *vclog.Logger
	options Options
	cache   *cache.Cache[cacheKey, *ast.Listing]
}

type cacheKey struct {
	resolved bool
	digest   [sha256.Size]byte
}

var (
	grammarOnce   sync.Once
	sharedGrammar *peg.Grammar
)

func grammar() *peg.Grammar {
	grammarOnce.Do(func() { sharedGrammar = NewGrammar() })
	return sharedGrammar
}

// New creates a parser
func New(options Options) *Parser {
	logger := options.Logger
	if logger == nil {
		logger = vclog.Discard()
	}
	p := &Parser{
		grammar: grammar(),
		builder: NewTreeBuilder(),
		logger:  logger.WithName("parser"),
		options: options,
	}
	if options.CacheSize > 0 {
		p.cache = cache.New[cacheKey, *ast.Listing](cache.Config{MaxItems: options.CacheSize, TTL: options.CacheTTL})
	}
	return p
}

// Parse parses source into an AST with labels resolved
func Parse(source string) (*ast.Listing, error) {
	return New(Options{}).Parse(source)
}

// BuildTree parses source into an AST without label resolution
func BuildTree(source string) (*ast.Listing, error) {
	return New(Options{}).BuildTree(source)
}

// Parse parses source and resolves labels
func (p *Parser) Parse(source string) (*ast.Listing, error) {
	return p.cached(true, source, p.parse)
}

// BuildTree parses source into an AST in which every bare name is still a
// Variable
func (p *Parser) BuildTree(source string) (*ast.Listing, error) {
	return p.cached(false, source, p.buildTree)
}

// CacheStats reports result cache usage
func (p *Parser) CacheStats() CacheStats {
	if p.cache == nil {
		return CacheStats{}
	}
	hits, misses, _ := p.cache.Stats()
	return CacheStats{Hits: hits, Misses: misses, Entries: p.cache.Size()}
}

// ClearCache drops all cached results
func (p *Parser) ClearCache() {
	if p.cache != nil {
		p.cache.Clear()
		p.logger.Debug("result cache cleared")
	}
}

func (p *Parser) cached(resolved bool, source string, build func(string) (*ast.Listing, error)) (*ast.Listing, error) {
	if p.cache == nil {
		return build(source)
	}
	key := cacheKey{resolved: resolved, digest: sha256.Sum256([]byte(source))}
	hit := true
	listing, err := p.cache.GetOrSet(key, func() (*ast.Listing, error) {
		hit = false
		return build(source)
	})
	if err != nil {
		return nil, err
	}
	if hit {
		p.logger.Debug("cached result", vclog.Fields{"resolved": resolved, "bytes": len(source)})
	}
	return listing, nil
}

func (p *Parser) parse(source string) (*ast.Listing, error) {
	listing, err := p.BuildTree(source)
	if err != nil {
		return nil, err
	}

	timer := p.logger.StartTimer("resolve labels")
	resolved, err := resolver.Resolve(source, listing)
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}
	timer.Stop()
	return resolved, nil
}

func (p *Parser) buildTree(source string) (listing *ast.Listing, err error) {
	if p.options.MaxInputLength > 0 && len(source) > p.options.MaxInputLength {
		return nil, vcerrors.Newf("source is %d bytes, limit is %d", len(source), p.options.MaxInputLength).
			WithCode(vcerrors.CodeInputTooLarge)
	}

	// the builder panics when grammar and transforms disagree; the stack
	// travels with the error and is logged
	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			listing = nil
			err = vcerrors.Newf("building syntax tree: %v", r).
				WithCode(vcerrors.CodeInternal).
				WithDetail("stack", stack)
			p.logger.Error("syntax tree builder failed", vclog.Fields{"panic": fmt.Sprint(r), "stack": stack})
		}
	}()

	timer := p.logger.StartTimer("build tree").WithField("bytes", len(source))
	result, err := p.grammar.Parse(source, p.transform())
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}
	timer.Stop()

	listing, ok := result.(*ast.Listing)
	if !ok {
		panic(fmt.Sprintf("start rule produced %T", result))
	}
	p.logger.Debug("syntax tree built", vclog.Fields{"functions": len(listing.Functions)})
	return listing, nil
}

func (p *Parser) transform() peg.Transformer {
	if !p.options.TraceRules || !p.logger.IsLevelEnabled(vclog.LevelTrace) {
		return p.builder.Transform
	}
	return func(rule string, node interface{}) interface{} {
		out := p.builder.Transform(rule, node)
		p.logger.Trace("rule matched", vclog.Fields{"rule": rule, "result": fmt.Sprintf("%T", out)})
		return out
	}
}
