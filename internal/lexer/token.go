package lexer

import (
	"fmt"

	"github.com/MBogda/turing-machine-translator/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// Token types
const (
	TokenEOF TokenType = iota
	TokenNewline
	TokenIndent
	TokenDedent

	// Literals
	TokenIdentifier
	TokenInteger
	TokenSymbol
	TokenTape

	// Keywords
	TokenTrue
	TokenFalse
	TokenAnd
	TokenOr
	TokenNot
	TokenIf
	TokenElif
	TokenElse
	TokenWhile

	// Brackets and punctuation
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenColon
	TokenSemicolon
	TokenHead

	// Assignment
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenMulAssign
	TokenDivAssign
	TokenModAssign

	// Arithmetic
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenMod

	// Comparison
	TokenEq
	TokenNe
	TokenLe
	TokenGe
	TokenLt
	TokenGt

	// Typed input
	TokenInputBoolean
	TokenInputInteger
	TokenInputSymbol
	TokenInputTape

	// Typed output
	TokenOutputBoolean
	TokenOutputInteger
	TokenOutputSymbol
	TokenOutputTape
	TokenOutputAny

	// Never returned by NextToken: they only label lexer rules.
	tokenComment
	tokenBlank
	tokenContinuation
	tokenUndefined
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

var tokenNames = map[TokenType]string{
	TokenEOF:     "END_OF_FILE",
	TokenNewline: "NEWLINE",
	TokenIndent:  "INDENT",
	TokenDedent:  "DEDENT",

	TokenIdentifier: "IDENTIFIER",
	TokenInteger:    "INTEGER_LITERAL",
	TokenSymbol:     "SYMBOL_LITERAL",
	TokenTape:       "TAPE_LITERAL",

	TokenTrue:  "TRUE",
	TokenFalse: "FALSE",
	TokenAnd:   "AND",
	TokenOr:    "OR",
	TokenNot:   "NOT",
	TokenIf:    "IF",
	TokenElif:  "ELIF",
	TokenElse:  "ELSE",
	TokenWhile: "WHILE",

	TokenLBrace:    "LEFT_BRACE",
	TokenRBrace:    "RIGHT_BRACE",
	TokenLParen:    "LEFT_BRACKET",
	TokenRParen:    "RIGHT_BRACKET",
	TokenLBracket:  "LEFT_SQUARE_BRACKET",
	TokenRBracket:  "RIGHT_SQUARE_BRACKET",
	TokenColon:     "COLON",
	TokenSemicolon: "SEMICOLON",
	TokenHead:      "HEAD",

	TokenAssign:      "ASSIGNMENT",
	TokenPlusAssign:  "ASSIGNMENT_PLUS",
	TokenMinusAssign: "ASSIGNMENT_MINUS",
	TokenMulAssign:   "ASSIGNMENT_MULTIPLY",
	TokenDivAssign:   "ASSIGNMENT_DIVIDE",
	TokenModAssign:   "ASSIGNMENT_MODULO",

	TokenPlus:  "PLUS",
	TokenMinus: "MINUS",
	TokenMul:   "MULTIPLY",
	TokenDiv:   "DIVIDE",
	TokenMod:   "MODULO",

	TokenEq: "EQUAL",
	TokenNe: "NOT_EQUAL",
	TokenLe: "LESS_OR_EQUAL",
	TokenGe: "GREATER_OR_EQUAL",
	TokenLt: "LESS",
	TokenGt: "GREATER",

	TokenInputBoolean: "INPUT_BOOLEAN",
	TokenInputInteger: "INPUT_INTEGER",
	TokenInputSymbol:  "INPUT_SYMBOL",
	TokenInputTape:    "INPUT_TAPE",

	TokenOutputBoolean: "OUTPUT_BOOLEAN",
	TokenOutputInteger: "OUTPUT_INTEGER",
	TokenOutputSymbol:  "OUTPUT_SYMBOL",
	TokenOutputTape:    "OUTPUT_TAPE",
	TokenOutputAny:     "OUTPUT_ANY",

	tokenComment:      "COMMENT",
	tokenBlank:        "BLANK",
	tokenContinuation: "LINE_CONTINUATION",
	tokenUndefined:    "UNDEFINED_TOKEN",
}

// Token represents a lexical token with position information. Literal holds
// the raw lexeme; literal tokens are decoded later by the type checker.
type Token struct {
	Type    TokenType
	Literal string
	Pos     position.Position
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Pos.Line, t.Pos.Column)
}

// endsOperand reports whether a token of this type can end an operand, in
// which case a following '-' is a binary minus rather than a literal sign.
func (tt TokenType) endsOperand() bool {
	switch tt {
	case TokenIdentifier, TokenInteger, TokenSymbol, TokenTape, TokenTrue, TokenFalse,
		TokenRParen, TokenRBracket, TokenRBrace, TokenHead,
		TokenInputBoolean, TokenInputInteger, TokenInputSymbol, TokenInputTape:
		return true
	default:
		return false
	}
}
