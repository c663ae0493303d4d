package parser

import (
	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/lexer"
	"github.com/MBogda/turing-machine-translator/internal/position"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

// Expression precedence, lowest first:
//
//	or  and  not  comparison  + -  * / %  unary -  term
//
// Binary levels associate to the left. A comparison is not chained: at most
// one comparison operator is consumed per level. Prefix `not` and `-` may
// repeat; an even count cancels out.

var comparisonOperators = map[lexer.TokenType]ast.BinaryOperator{
	lexer.TokenEq: ast.BinaryEq,
	lexer.TokenNe: ast.BinaryNe,
	lexer.TokenLt: ast.BinaryLt,
	lexer.TokenGt: ast.BinaryGt,
	lexer.TokenLe: ast.BinaryLe,
	lexer.TokenGe: ast.BinaryGe,
}

var additiveOperators = map[lexer.TokenType]ast.BinaryOperator{
	lexer.TokenPlus:  ast.BinaryAdd,
	lexer.TokenMinus: ast.BinarySub,
}

var multiplicativeOperators = map[lexer.TokenType]ast.BinaryOperator{
	lexer.TokenMul: ast.BinaryMul,
	lexer.TokenDiv: ast.BinaryDiv,
	lexer.TokenMod: ast.BinaryMod,
}

var inputTypes = map[lexer.TokenType]types.Type{
	lexer.TokenInputBoolean: types.Boolean,
	lexer.TokenInputInteger: types.Integer,
	lexer.TokenInputSymbol:  types.Symbol,
	lexer.TokenInputTape:    types.Tape,
}

var literalKinds = map[lexer.TokenType]types.Type{
	lexer.TokenTrue:    types.Boolean,
	lexer.TokenFalse:   types.Boolean,
	lexer.TokenInteger: types.Integer,
	lexer.TokenSymbol:  types.Symbol,
	lexer.TokenTape:    types.Tape,
}

var termStart = []lexer.TokenType{
	lexer.TokenIdentifier,
	lexer.TokenTrue,
	lexer.TokenFalse,
	lexer.TokenInteger,
	lexer.TokenSymbol,
	lexer.TokenTape,
	lexer.TokenLBrace,
	lexer.TokenInputBoolean,
	lexer.TokenInputInteger,
	lexer.TokenInputSymbol,
	lexer.TokenInputTape,
	lexer.TokenLParen,
}

func (p *Parser) parseExpression() ast.Expression {
	p.enter()
	defer p.leave()
	return p.parseOr()
}

func (p *Parser) binary(op ast.BinaryOperator, left, right ast.Expression) *ast.BinaryExpression {
	return &ast.BinaryExpression{
		Span:     p.spanFrom(left.GetSpan().Start),
		Operator: op,
		Left:     left,
		Right:    right,
	}
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.at(lexer.TokenOr) {
		p.accept(lexer.TokenOr)
		left = p.binary(ast.BinaryOr, left, p.parseAnd())
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for p.at(lexer.TokenAnd) {
		p.accept(lexer.TokenAnd)
		left = p.binary(ast.BinaryAnd, left, p.parseNot())
	}
	return left
}

func (p *Parser) parseNot() ast.Expression {
	return p.parsePrefix(lexer.TokenNot, ast.UnaryNot, p.parseComparison)
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	if op, ok := comparisonOperators[p.current.Type]; ok {
		p.nextToken()
		left = p.binary(op, left, p.parseAdditive())
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for {
		op, ok := additiveOperators[p.current.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = p.binary(op, left, p.parseMultiplicative())
	}
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseNegation()
	for {
		op, ok := multiplicativeOperators[p.current.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = p.binary(op, left, p.parseNegation())
	}
}

func (p *Parser) parseNegation() ast.Expression {
	return p.parsePrefix(lexer.TokenMinus, ast.UnaryMinus, p.parseTerm)
}

// parsePrefix consumes any number of tok and wraps the operand in a single
// op node when the count is odd.
func (p *Parser) parsePrefix(tok lexer.TokenType, op ast.UnaryOperator, operand func() ast.Expression) ast.Expression {
	var start position.Position
	count := 0
	for p.at(tok) {
		if count == 0 {
			start = p.current.Pos
		}
		p.nextToken()
		count++
	}

	expr := operand()
	if count%2 == 0 {
		return expr
	}
	return &ast.UnaryExpression{Span: p.spanFrom(start), Operator: op, Operand: expr}
}

// parseTerm parses an operand followed by any number of postfix operators.
func (p *Parser) parseTerm() ast.Expression {
	if !p.at(termStart...) {
		p.errorExpected(termStart)
		p.skipTo(termStart...)
	}

	var term ast.Expression
	tok := p.current
	switch {
	case tok.Type == lexer.TokenIdentifier:
		p.nextToken()
		term = &ast.Identifier{Span: p.spanFrom(tok.Pos), Name: tok.Literal}

	case literalKinds[tok.Type].IsSet():
		p.nextToken()
		term = &ast.Literal{Span: p.spanFrom(tok.Pos), Kind: literalKinds[tok.Type], Raw: tok.Literal}

	case inputTypes[tok.Type].IsSet():
		p.nextToken()
		term = &ast.InputExpression{Span: p.spanFrom(tok.Pos), Kind: inputTypes[tok.Type]}

	case tok.Type == lexer.TokenLBrace:
		term = p.parseMachineLiteral()

	default:
		p.accept(lexer.TokenLParen)
		term = p.parseExpression()
		p.accept(lexer.TokenRParen)
	}

	return p.parsePostfix(term)
}

func (p *Parser) parsePostfix(term ast.Expression) ast.Expression {
	start := term.GetSpan().Start
	for {
		switch p.current.Type {
		case lexer.TokenLBracket:
			p.accept(lexer.TokenLBracket)
			if p.at(lexer.TokenRBracket) {
				p.accept(lexer.TokenRBracket)
				term = &ast.UnaryExpression{Span: p.spanFrom(start), Operator: ast.UnaryNext, Operand: term}
				continue
			}
			index := p.parseExpression()
			p.accept(lexer.TokenRBracket)
			term = &ast.BinaryExpression{Span: p.spanFrom(start), Operator: ast.BinaryIndex, Left: term, Right: index}

		case lexer.TokenLParen:
			p.accept(lexer.TokenLParen)
			arg := p.parseExpression()
			p.accept(lexer.TokenRParen)
			term = &ast.BinaryExpression{Span: p.spanFrom(start), Operator: ast.BinaryApply, Left: term, Right: arg}

		case lexer.TokenHead:
			p.accept(lexer.TokenHead)
			term = &ast.UnaryExpression{Span: p.spanFrom(start), Operator: ast.UnaryHead, Operand: term}

		default:
			return term
		}
	}
}
