// Package lexer implements the indentation-sensitive tokenizer of the
// Turing-machine language.
//
// The lexer is a forward-only cursor over an in-memory source. It is the sole
// producer of the NEWLINE, INDENT and DEDENT structure consumed by the
// parser: it keeps a stack of indentation prefixes (off-side rule), collapses
// blank lines and swallows comments and line continuations. Malformed input
// is reported to the diagnostic collector and skipped, so the token stream
// always runs to END_OF_FILE.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/MBogda/turing-machine-translator/internal/diagnostic"
	"github.com/MBogda/turing-machine-translator/internal/position"
)

// Lexer represents the lexical analyzer
type Lexer struct {
	input    string
	filename string
	offset   int // current byte offset in input
	line     int // current line number
	lineAt   int // byte offset where the current line starts

	indentStack []string
	pending     []Token // structural tokens waiting to be returned

	atLineStart       bool // next scan starts a physical line whose indentation must be measured
	newlineWasEmitted bool // last returned token was NEWLINE, or nothing was returned yet
	lastType          TokenType
	finished          bool

	diagnostics *diagnostic.Collector
}

// New creates a new lexer instance. Diagnostics are reported to diags; a nil
// collector gets replaced by a private one.
func New(input string, diags *diagnostic.Collector) *Lexer {
	return NewWithFilename(input, "", diags)
}

// NewWithFilename creates a new lexer instance with filename for error reporting
func NewWithFilename(input, filename string, diags *diagnostic.Collector) *Lexer {
	if diags == nil {
		diags = diagnostic.NewCollector(nil)
	}
	return &Lexer{
		input:             input,
		filename:          filename,
		line:              1,
		indentStack:       make([]string, 0),
		atLineStart:       true,
		newlineWasEmitted: true,
		lastType:          TokenNewline,
		diagnostics:       diags,
	}
}

// Diagnostics returns the collector the lexer reports to.
func (l *Lexer) Diagnostics() *diagnostic.Collector {
	return l.diagnostics
}

// Tokenize returns every token of input up to, but excluding, END_OF_FILE.
func Tokenize(input string, diags *diagnostic.Collector) []Token {
	l := New(input, diags)
	tokens := make([]Token, 0)
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// NextToken returns the next token. Once the input is exhausted it returns
// END_OF_FILE on every call.
func (l *Lexer) NextToken() Token {
	for {
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return l.emit(tok)
		}

		if l.offset >= len(l.input) {
			if l.finished {
				return Token{Type: TokenEOF, Pos: l.currentPosition()}
			}
			l.finish()
			continue
		}

		if l.atLineStart {
			l.atLineStart = false
			l.measureIndentation()
			continue
		}

		if tok, ok := l.scan(); ok {
			return l.emit(tok)
		}
	}
}

// emit records the bookkeeping of a token that is about to be returned.
func (l *Lexer) emit(tok Token) Token {
	switch tok.Type {
	case TokenNewline:
		l.newlineWasEmitted = true
	case TokenDedent, TokenEOF:
	default:
		l.newlineWasEmitted = false
	}
	l.lastType = tok.Type
	return tok
}

// finish terminates the last logical line and flushes the indentation stack.
func (l *Lexer) finish() {
	l.finished = true
	pos := l.currentPosition()
	if !l.newlineWasEmitted {
		l.pending = append(l.pending, Token{Type: TokenNewline, Pos: pos})
	}
	l.dedentTo(0, pos)
}

// dedentTo pops the indentation stack down to depth entries, queueing one
// DEDENT per popped entry.
func (l *Lexer) dedentTo(depth int, pos position.Position) {
	for len(l.indentStack) > depth {
		top := l.indentStack[len(l.indentStack)-1]
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.pending = append(l.pending, Token{Type: TokenDedent, Literal: top, Pos: pos})
	}
}

// measureIndentation applies the off-side rule to the line starting at the
// current offset. Lines holding nothing but blanks and comments are ignored.
func (l *Lexer) measureIndentation() {
	end := l.offset
	for end < len(l.input) && (l.input[end] == ' ' || l.input[end] == '\t') {
		end++
	}
	if l.onlyCommentsFollow(end) {
		return
	}

	pos := l.currentPosition()
	ws := l.input[l.offset:end]
	l.advance(end - l.offset)

	if ws == "" {
		l.dedentTo(0, l.currentPosition())
		return
	}
	if len(l.indentStack) == 0 {
		l.indentStack = append(l.indentStack, ws)
		l.pending = append(l.pending, Token{Type: TokenIndent, Literal: ws, Pos: pos})
		return
	}

	top := l.indentStack[len(l.indentStack)-1]
	switch {
	case ws == top:
	case strings.HasPrefix(ws, top):
		l.indentStack = append(l.indentStack, ws)
		l.pending = append(l.pending, Token{Type: TokenIndent, Literal: ws, Pos: pos})
	default:
		for i := len(l.indentStack) - 2; i >= 0; i-- {
			if l.indentStack[i] == ws {
				l.dedentTo(i+1, l.currentPosition())
				return
			}
		}
		l.diagnostics.Reportf(diagnostic.IndentationError, pos, "Indentation error")
	}
}

// onlyCommentsFollow reports whether the rest of the line starting at i
// contains only blanks and comments.
func (l *Lexer) onlyCommentsFollow(i int) bool {
	for {
		for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t' || l.input[i] == '\r') {
			i++
		}
		rest := l.input[i:]
		switch {
		case rest == "", rest[0] == '\n', rest[0] == '#':
			return true
		case strings.HasPrefix(rest, "/#"):
			closing := strings.Index(rest[2:], "#/")
			if closing < 0 {
				return true
			}
			i += closing + 4
		default:
			return false
		}
	}
}

// scan matches one rule at the current offset. It returns false when the
// match produced no token (blanks, comments, continuations, errors and
// collapsed newlines).
func (l *Lexer) scan() (Token, bool) {
	rest := l.input[l.offset:]
	for _, r := range rules {
		loc := r.pattern.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		lexeme := rest[:loc[1]]
		if r.typ == TokenInteger && lexeme[0] == '-' && l.lastType.endsOperand() {
			continue
		}

		pos := l.currentPosition()
		l.advance(len(lexeme))

		switch r.typ {
		case tokenBlank, tokenComment:
			return Token{}, false
		case tokenContinuation:
			return Token{}, false
		case tokenUndefined:
			if r.errMsg != "" {
				l.diagnostics.Reportf(diagnostic.UndefinedToken, pos, "%s %q", r.errMsg, lexeme)
			} else {
				l.diagnostics.Reportf(diagnostic.UndefinedToken, pos, "Undefined token %q", lexeme)
			}
			return Token{}, false
		case TokenNewline:
			l.atLineStart = true
			if l.newlineWasEmitted {
				return Token{}, false
			}
		}
		return Token{Type: r.typ, Literal: lexeme, Pos: pos}, true
	}

	// Unreachable: the last rule matches any character.
	l.advance(1)
	return Token{}, false
}

// advance consumes n bytes, keeping the line counter in step with any
// newlines inside the consumed text.
func (l *Lexer) advance(n int) {
	consumed := l.input[l.offset : l.offset+n]
	if nl := strings.LastIndexByte(consumed, '\n'); nl >= 0 {
		l.line += strings.Count(consumed, "\n")
		l.lineAt = l.offset + nl + 1
	}
	l.offset += n
}

// currentPosition returns current position in source. Columns count runes.
func (l *Lexer) currentPosition() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   utf8.RuneCountInString(l.input[l.lineAt:l.offset]) + 1,
		Offset:   l.offset,
	}
}
