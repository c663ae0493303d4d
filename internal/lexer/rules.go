package lexer

import "regexp"

// rule is one entry of the priority-ordered tokenization table. At every
// offset the first rule whose pattern matches wins and consumes its match.
type rule struct {
	typ     TokenType
	pattern *regexp.Regexp
	// errMsg marks rules that match malformed input. The span is skipped and
	// reported as an undefined token.
	errMsg string
}

func newRule(typ TokenType, pattern string) rule {
	return rule{typ: typ, pattern: regexp.MustCompile(`^(?:` + pattern + `)`)}
}

func newErrorRule(pattern, msg string) rule {
	r := newRule(tokenUndefined, pattern)
	r.errMsg = msg
	return r
}

// rules is ordered: keywords precede identifiers, two-character operators
// precede their one-character prefixes, and literals precede comparisons.
var rules = []rule{
	newRule(tokenComment, `/#(?s:.*?)#/|#[^\n]*`),
	newErrorRule(`/#(?s:.*)`, "unterminated block comment"),

	newRule(TokenTrue, `true\b`),
	newRule(TokenFalse, `false\b`),
	newRule(TokenAnd, `and\b`),
	newRule(TokenOr, `or\b`),
	newRule(TokenNot, `not\b`),
	newRule(TokenIf, `if\b`),
	newRule(TokenElif, `elif\b`),
	newRule(TokenElse, `else\b`),
	newRule(TokenWhile, `while\b`),
	newRule(TokenIdentifier, `[a-zA-Z_][a-zA-Z_0-9]*`),
	newRule(TokenInteger, `-?[0-9]+`),

	newRule(TokenLBrace, `\{`),
	newRule(TokenRBrace, `\}`),
	newRule(TokenLParen, `\(`),
	newRule(TokenRParen, `\)`),
	newRule(TokenLBracket, `\[`),
	newRule(TokenRBracket, `\]`),
	newRule(TokenColon, `:`),
	newRule(TokenSemicolon, `;`),
	newRule(TokenHead, `\^`),

	newRule(TokenPlusAssign, `\+=`),
	newRule(TokenMinusAssign, `-=`),
	newRule(TokenMulAssign, `\*=`),
	newRule(TokenDivAssign, `/=`),
	newRule(TokenModAssign, `%=`),

	newRule(TokenPlus, `\+`),
	newRule(TokenMinus, `-`),
	newRule(TokenMul, `\*`),
	newRule(TokenDiv, `/`),
	newRule(TokenMod, `%`),

	newRule(TokenInputBoolean, `>b`),
	newRule(TokenInputInteger, `>i`),
	newRule(TokenInputSymbol, `>'`),
	newRule(TokenInputTape, `>"`),

	newRule(TokenOutputBoolean, `<b`),
	newRule(TokenOutputInteger, `<i`),
	newRule(TokenOutputSymbol, `<'`),
	newRule(TokenOutputTape, `<"`),
	newRule(TokenOutputAny, `<<`),

	newRule(TokenSymbol, `'(?:\\.|[^\\'\n])*'`),
	newErrorRule(`'(?:\\.|[^\\'\n])*`, "unterminated symbol literal"),
	newRule(TokenTape, `"(?:\\.|[^\\"\n])*"`),
	newErrorRule(`"(?:\\.|[^\\"\n])*`, "unterminated tape literal"),

	newRule(TokenEq, `==`),
	newRule(TokenNe, `!=`),
	newRule(TokenLe, `<=`),
	newRule(TokenGe, `>=`),
	newRule(TokenLt, `<`),
	newRule(TokenGt, `>`),
	newRule(TokenAssign, `=`),

	newRule(tokenContinuation, `\\\r?\n`),
	newRule(TokenNewline, `\r?\n`),
	newRule(tokenBlank, `[ \t\r]+`),
	newErrorRule(`(?s:.)`, ""),
}
