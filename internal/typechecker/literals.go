package typechecker

import (
	"errors"

	"github.com/MBogda/turing-machine-translator/internal/ast"
	"github.com/MBogda/turing-machine-translator/internal/diagnostic"
	"github.com/MBogda/turing-machine-translator/internal/lexer"
	"github.com/MBogda/turing-machine-translator/internal/types"
)

// literalErrors maps decoder errors to diagnostic kinds, in report order.
var literalErrors = []struct {
	err  error
	kind diagnostic.Kind
}{
	{lexer.ErrIntegerRange, diagnostic.IntegerOutOfRange},
	{lexer.ErrSymbolLength, diagnostic.SymbolLengthError},
	{lexer.ErrTapeLength, diagnostic.TapeLengthError},
	{lexer.ErrMultipleHeads, diagnostic.MultipleHeadsError},
	{lexer.ErrHeadPosition, diagnostic.HeadPositionError},
	{lexer.ErrMalformedLiteral, diagnostic.InvalidType},
}

var literalMessages = map[diagnostic.Kind]string{
	diagnostic.IntegerOutOfRange:  "integer literal %s out of range [-32768, 32767]",
	diagnostic.SymbolLengthError:  "symbol literal %s must contain exactly one symbol",
	diagnostic.TapeLengthError:    "tape literal %s must contain at least one symbol",
	diagnostic.MultipleHeadsError: "tape literal %s has more than one head marker",
	diagnostic.HeadPositionError:  "head marker in tape literal %s is not followed by a symbol",
	diagnostic.InvalidType:        "malformed literal %s",
}

// decode turns the lexeme of lit into a value. It reports every decoding
// error and returns nil when the lexeme is invalid.
func (a *Analyzer) decode(lit *ast.Literal) types.Value {
	var (
		value types.Value
		err   error
	)
	switch lit.Kind {
	case types.Boolean:
		value, err = lexer.DecodeBoolean(lit.Raw)
	case types.Integer:
		value, err = lexer.DecodeInteger(lit.Raw)
	case types.Symbol:
		value, err = lexer.DecodeSymbol(lit.Raw)
	case types.Tape:
		value, err = lexer.DecodeTape(lit.Raw)
	default:
		err = lexer.ErrMalformedLiteral
	}
	if err == nil {
		return value
	}

	for _, le := range literalErrors {
		if errors.Is(err, le.err) {
			a.diagnostics.Reportf(le.kind, lit.Span.Start, literalMessages[le.kind], lit.Raw)
		}
	}
	return nil
}
