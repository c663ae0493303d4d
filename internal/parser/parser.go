// Package parser implements the recursive descent parser of the
// Turing-machine language.
//
// Statements are parsed by recursive descent and expressions by precedence
// climbing. Syntax errors are reported to the diagnostic collector and
// recovered from in panic mode: the parser discards tokens until one of the
// tokens it expected shows up. Running out of input during recovery is the
// only fatal condition; Parse then returns ErrUnexpectedEOF and no tree.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/diagnostic"
	"github.com/MBogda/turing-machine-translator/internal/lexer"
	"github.com/MBogda/turing-machine-translator/internal/position"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

// DefaultMaxNestingDepth bounds the recursion of nested blocks and
// parenthesized expressions.
const DefaultMaxNestingDepth = 256

var (
	// ErrUnexpectedEOF is returned when the input ends while the parser is
	// looking for a synchronizing token.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrNestingTooDeep is returned when blocks or expressions nest deeper
	// than the configured limit.
	ErrNestingTooDeep = errors.New("nesting too deep")
)

// Parser represents the recursive descent parser
type Parser struct {
	lexer       *lexer.Lexer
	current     lexer.Token
	lastEnd     position.Position // end of the most recently consumed token
	diagnostics *diagnostic.Collector

	depth    int
	maxDepth int
}

// bailout is the panic payload used to unwind the parser on a fatal error.
type bailout struct {
	err error
}

// New creates a new parser reading from l. Diagnostics go to diags, or to
// the lexer's collector when diags is nil.
func New(l *lexer.Lexer, diags *diagnostic.Collector) *Parser {
	if diags == nil {
		diags = l.Diagnostics()
	}
	p := &Parser{
		lexer:       l,
		diagnostics: diags,
		maxDepth:    DefaultMaxNestingDepth,
	}
	p.current = l.NextToken()
	return p
}

// SetMaxNestingDepth overrides DefaultMaxNestingDepth. Values below one
// restore the default.
func (p *Parser) SetMaxNestingDepth(depth int) {
	if depth < 1 {
		depth = DefaultMaxNestingDepth
	}
	p.maxDepth = depth
}

// Parse parses the whole input. Syntax errors are reported to the
// collector; the returned error is non-nil only when parsing had to abort,
// in which case the program is nil.
func (p *Parser) Parse() (program *ast.InstructionSequence, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			program, err = nil, b.err
		}
	}()
	return p.parseProgram(), nil
}

// nextToken advances the parser to the next token
func (p *Parser) nextToken() {
	p.lastEnd = tokenEnd(p.current)
	p.current = p.lexer.NextToken()
}

func tokenEnd(tok lexer.Token) position.Position {
	end := tok.Pos
	end.Column += utf8.RuneCountInString(tok.Literal)
	end.Offset += len(tok.Literal)
	return end
}

// at checks if the current token is one of the given types
func (p *Parser) at(tokenTypes ...lexer.TokenType) bool {
	for _, tt := range tokenTypes {
		if p.current.Type == tt {
			return true
		}
	}
	return false
}

// accept consumes and returns the current token if it has one of the given
// types. Otherwise it reports the mismatch and skips ahead to the first
// token that does.
func (p *Parser) accept(tokenTypes ...lexer.TokenType) lexer.Token {
	if !p.at(tokenTypes...) {
		p.errorExpected(tokenTypes)
		p.skipTo(tokenTypes...)
	}
	tok := p.current
	p.nextToken()
	return tok
}

// errorExpected records a token mismatch at the current token
func (p *Parser) errorExpected(expected []lexer.TokenType) {
	names := make([]string, len(expected))
	for i, tt := range expected {
		names[i] = tt.String()
	}
	p.diagnostics.Reportf(diagnostic.UnexpectedToken, p.current.Pos,
		"expected token %s, got %s", strings.Join(names, " or "), p.current.Type)
}

// skipTo discards tokens until the current one has one of the given types.
// Reaching the end of input aborts the parse.
func (p *Parser) skipTo(tokenTypes ...lexer.TokenType) {
	for !p.at(tokenTypes...) {
		if p.at(lexer.TokenEOF) {
			panic(bailout{err: fmt.Errorf("%s: %w", p.current.Pos, ErrUnexpectedEOF)})
		}
		p.nextToken()
	}
}

// enter and leave bound the recursion depth.
func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.diagnostics.Reportf(diagnostic.UnexpectedToken, p.current.Pos,
			"nesting exceeds %d levels", p.maxDepth)
		panic(bailout{err: fmt.Errorf("%s: %w", p.current.Pos, ErrNestingTooDeep)})
	}
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) spanFrom(start position.Position) position.Span {
	return position.Span{Start: start, End: p.lastEnd}
}

// ===== Statements =====

var instructionStart = []lexer.TokenType{
	lexer.TokenIf,
	lexer.TokenWhile,
	lexer.TokenOutputBoolean,
	lexer.TokenOutputInteger,
	lexer.TokenOutputSymbol,
	lexer.TokenOutputTape,
	lexer.TokenOutputAny,
	lexer.TokenIdentifier,
}

var outputTypes = map[lexer.TokenType]types.Type{
	lexer.TokenOutputBoolean: types.Boolean,
	lexer.TokenOutputInteger: types.Integer,
	lexer.TokenOutputSymbol:  types.Symbol,
	lexer.TokenOutputTape:    types.Tape,
	lexer.TokenOutputAny:     types.Unset,
}

var assignOperators = map[lexer.TokenType]ast.AssignOperator{
	lexer.TokenAssign:      ast.AssignSet,
	lexer.TokenPlusAssign:  ast.AssignAdd,
	lexer.TokenMinusAssign: ast.AssignSub,
	lexer.TokenMulAssign:   ast.AssignMul,
	lexer.TokenDivAssign:   ast.AssignDiv,
	lexer.TokenModAssign:   ast.AssignMod,
}

var assignTokens = []lexer.TokenType{
	lexer.TokenAssign,
	lexer.TokenPlusAssign,
	lexer.TokenMinusAssign,
	lexer.TokenMulAssign,
	lexer.TokenDivAssign,
	lexer.TokenModAssign,
}

func (p *Parser) parseProgram() *ast.InstructionSequence {
	program := &ast.InstructionSequence{Statements: make([]ast.Statement, 0)}
	start := p.current.Pos
	for !p.at(lexer.TokenEOF) {
		program.Statements = append(program.Statements, p.parseInstruction())
	}
	program.Span = position.Span{Start: start, End: p.current.Pos}
	return program
}

func (p *Parser) parseInstruction() ast.Statement {
	if !p.at(instructionStart...) {
		p.errorExpected(instructionStart)
		p.skipTo(instructionStart...)
	}

	switch p.current.Type {
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenIdentifier:
		return p.parseAssignmentStatement()
	default:
		return p.parseOutputStatement()
	}
}

// parseBlock parses INDENT instruction+ DEDENT.
func (p *Parser) parseBlock() *ast.InstructionSequence {
	p.enter()
	defer p.leave()

	start := p.accept(lexer.TokenIndent).Pos
	block := &ast.InstructionSequence{Statements: []ast.Statement{p.parseInstruction()}}
	for !p.at(lexer.TokenDedent) {
		block.Statements = append(block.Statements, p.parseInstruction())
	}
	p.accept(lexer.TokenDedent)
	block.Span = p.spanFrom(start)
	return block
}

// parseIfStatement threads elif clauses as nested if statements in the
// else branch of the previous clause.
func (p *Parser) parseIfStatement() *ast.IfStatement {
	start := p.accept(lexer.TokenIf).Pos
	stmt := &ast.IfStatement{Condition: p.parseExpression()}
	p.accept(lexer.TokenColon)
	p.accept(lexer.TokenNewline)
	stmt.Then = p.parseBlock()

	last := stmt
	for p.at(lexer.TokenElif) {
		elifStart := p.accept(lexer.TokenElif).Pos
		elif := &ast.IfStatement{Condition: p.parseExpression()}
		p.accept(lexer.TokenColon)
		p.accept(lexer.TokenNewline)
		elif.Then = p.parseBlock()
		elif.Span = p.spanFrom(elifStart)
		last.Else = elif
		last = elif
	}

	if p.at(lexer.TokenElse) {
		p.accept(lexer.TokenElse)
		p.accept(lexer.TokenColon)
		p.accept(lexer.TokenNewline)
		last.Else = p.parseBlock()
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	start := p.accept(lexer.TokenWhile).Pos
	stmt := &ast.WhileStatement{Condition: p.parseExpression()}
	p.accept(lexer.TokenColon)
	p.accept(lexer.TokenNewline)
	stmt.Body = p.parseBlock()
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseOutputStatement() *ast.OutputStatement {
	tok := p.accept(lexer.TokenOutputBoolean, lexer.TokenOutputInteger, lexer.TokenOutputSymbol,
		lexer.TokenOutputTape, lexer.TokenOutputAny)
	stmt := &ast.OutputStatement{Declared: outputTypes[tok.Type]}
	stmt.Value = p.parseExpression()
	p.accept(lexer.TokenNewline)
	stmt.Span = p.spanFrom(tok.Pos)
	return stmt
}

// parseAssignmentStatement parses the identifier-led statements: plain,
// indexed and head assignments, and machine table definitions.
func (p *Parser) parseAssignmentStatement() ast.Statement {
	name := p.accept(lexer.TokenIdentifier)
	ident := &ast.Identifier{Span: p.spanFrom(name.Pos), Name: name.Literal}

	var target ast.Expression = ident
	switch p.current.Type {
	case lexer.TokenLBracket:
		p.accept(lexer.TokenLBracket)
		index := p.parseExpression()
		p.accept(lexer.TokenRBracket)
		target = &ast.BinaryExpression{
			Span:     p.spanFrom(name.Pos),
			Operator: ast.BinaryIndex,
			Left:     ident,
			Right:    index,
		}
	case lexer.TokenHead:
		p.accept(lexer.TokenHead)
		target = &ast.UnaryExpression{
			Span:     p.spanFrom(name.Pos),
			Operator: ast.UnaryHead,
			Operand:  ident,
		}
	case lexer.TokenColon:
		return p.parseMachineDefinition(ident)
	}

	op := p.accept(assignTokens...)
	stmt := &ast.AssignmentStatement{
		Operator: assignOperators[op.Type],
		Target:   target,
		Value:    p.parseExpression(),
	}
	p.accept(lexer.TokenNewline)
	stmt.Span = p.spanFrom(name.Pos)
	return stmt
}

func spanOf(tok lexer.Token) position.Span {
	return position.Span{Start: tok.Pos, End: tokenEnd(tok)}
}
