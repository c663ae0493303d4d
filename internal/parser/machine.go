package parser

import (
	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/lexer"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

var shifts = map[lexer.TokenType]types.Shift{
	lexer.TokenLt:    types.ShiftLeft,
	lexer.TokenGt:    types.ShiftRight,
	lexer.TokenMinus: types.ShiftStay,
}

// parseMachineLiteral parses `{ state 'blank' ( : instr ( ; instr )* ;? )? }`.
func (p *Parser) parseMachineLiteral() *ast.MachineLiteral {
	start := p.accept(lexer.TokenLBrace).Pos

	state := p.accept(lexer.TokenIdentifier)
	blank := p.accept(lexer.TokenSymbol)
	lit := &ast.MachineLiteral{
		InitialState: &ast.Identifier{Span: spanOf(state), Name: state.Literal},
		Blank:        &ast.Literal{Span: spanOf(blank), Kind: types.Symbol, Raw: blank.Literal},
	}

	if p.at(lexer.TokenColon) {
		tableStart := p.accept(lexer.TokenColon).Pos
		table := &ast.MachineTable{Instructions: make([]*ast.MachineInstruction, 0)}
		for !p.at(lexer.TokenRBrace) {
			table.Instructions = append(table.Instructions, p.parseMachineInstruction())
			if !p.at(lexer.TokenRBrace) {
				p.accept(lexer.TokenSemicolon)
			}
		}
		table.Span = p.spanFrom(tableStart)
		lit.Table = table
	}

	p.accept(lexer.TokenRBrace)
	lit.Span = p.spanFrom(start)
	return lit
}

// parseMachineDefinition parses the block form of a transition table,
// `name:` NEWLINE INDENT (instr NEWLINE)+ DEDENT, after the name.
func (p *Parser) parseMachineDefinition(target *ast.Identifier) *ast.MachineDefinition {
	p.accept(lexer.TokenColon)
	p.accept(lexer.TokenNewline)

	tableStart := p.accept(lexer.TokenIndent).Pos
	table := &ast.MachineTable{Instructions: make([]*ast.MachineInstruction, 0)}
	for !p.at(lexer.TokenDedent) {
		table.Instructions = append(table.Instructions, p.parseMachineInstruction())
		p.accept(lexer.TokenNewline)
	}
	p.accept(lexer.TokenDedent)
	table.Span = p.spanFrom(tableStart)

	return &ast.MachineDefinition{
		Span:   p.spanFrom(target.Span.Start),
		Target: target,
		Table:  table,
	}
}

// parseMachineInstruction parses `state 'sym' = (state|-) ('sym'|-) (<|>|-)`.
// A `-` in the right-hand state or symbol position copies the left-hand one.
func (p *Parser) parseMachineInstruction() *ast.MachineInstruction {
	stateTok := p.accept(lexer.TokenIdentifier)
	symbolTok := p.accept(lexer.TokenSymbol)
	instr := &ast.MachineInstruction{
		State:  &ast.Identifier{Span: spanOf(stateTok), Name: stateTok.Literal},
		Symbol: &ast.Literal{Span: spanOf(symbolTok), Kind: types.Symbol, Raw: symbolTok.Literal},
	}

	p.accept(lexer.TokenAssign)

	next := p.accept(lexer.TokenIdentifier, lexer.TokenMinus)
	instr.NextState = &ast.Identifier{Span: spanOf(next), Name: next.Literal}
	if next.Type == lexer.TokenMinus {
		instr.NextState.Name = instr.State.Name
	}

	write := p.accept(lexer.TokenSymbol, lexer.TokenMinus)
	instr.Write = &ast.Literal{Span: spanOf(write), Kind: types.Symbol, Raw: write.Literal}
	if write.Type == lexer.TokenMinus {
		instr.Write.Raw = instr.Symbol.Raw
	}

	shift := p.accept(lexer.TokenLt, lexer.TokenGt, lexer.TokenMinus)
	instr.Shift = shifts[shift.Type]

	instr.Span = p.spanFrom(stateTok.Pos)
	return instr
}
