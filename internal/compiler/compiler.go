// Package compiler drives the front-end pipeline:
//
//	source text -> lexer -> parser -> type checker -> annotated tree + diagnostics
//
// Every entry point runs one independent compilation with its own
// diagnostic collector, so separate runs may proceed concurrently.
package compiler

import (
	"fmt"

	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/diagnostic"
	"github.com/MBogda/turing-machine-translator/internal/lexer"
	"github.com/MBogda/turing-machine-translator/internal/parser"
	"github.com/MBogda/turing-machine-translator/internal/typechecker"
)

// LanguageVersion is the version of the language this front end accepts.
const LanguageVersion = "1.0.0"

// Options configures a compilation run.
type Options struct {
	// Filename is recorded in every position. It may be empty.
	Filename string
	// Sink, when set, receives every diagnostic as it is reported.
	Sink diagnostic.Sink
	// MaxNestingDepth overrides parser.DefaultMaxNestingDepth when positive.
	MaxNestingDepth int
}

// Result is the outcome of a compilation run.
type Result struct {
	// Tokens is filled by Tokenize only.
	Tokens []lexer.Token
	// Program is nil when parsing aborted.
	Program     *ast.InstructionSequence
	Symbols     *typechecker.SymbolTable
	Diagnostics *diagnostic.Collector
}

// OK reports whether the run produced a program and no diagnostics.
func (r *Result) OK() bool {
	return !r.Diagnostics.HasErrors() && (r.Tokens != nil || r.Program != nil)
}

func newRun(text string, opts Options) (*Result, *lexer.Lexer) {
	diags := diagnostic.NewCollector(opts.Sink)
	return &Result{Diagnostics: diags}, lexer.NewWithFilename(text, opts.Filename, diags)
}

// Tokenize runs the lexer over text. The returned tokens exclude
// END_OF_FILE.
func Tokenize(text string, opts Options) *Result {
	result, l := newRun(text, opts)
	result.Tokens = make([]lexer.Token, 0)
	for tok := l.NextToken(); tok.Type != lexer.TokenEOF; tok = l.NextToken() {
		result.Tokens = append(result.Tokens, tok)
	}
	return result
}

// Parse lexes and parses text. The error is non-nil only when parsing
// aborted; syntax errors the parser recovered from are in Diagnostics.
func Parse(text string, opts Options) (*Result, error) {
	result, l := newRun(text, opts)
	err := parse(result, l, opts)
	return result, err
}

// Analyze runs the whole pipeline over text. The type checker runs even
// when lexing or parsing reported errors, as long as a tree was produced.
func Analyze(text string, opts Options) (*Result, error) {
	result, l := newRun(text, opts)
	if err := parse(result, l, opts); err != nil {
		return result, err
	}
	analyzer := typechecker.New(result.Diagnostics)
	analyzer.Analyze(result.Program)
	result.Symbols = analyzer.Symbols()
	return result, nil
}

func parse(result *Result, l *lexer.Lexer, opts Options) error {
	p := parser.New(l, result.Diagnostics)
	p.SetMaxNestingDepth(opts.MaxNestingDepth)

	program, err := p.Parse()
	if err != nil {
		name := opts.Filename
		if name == "" {
			name = "<input>"
		}
		return fmt.Errorf("parse %s: %w", name, err)
	}
	result.Program = program
	return nil
}
