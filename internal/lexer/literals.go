package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/MBogda/turing-machine-translator/internal/types"
)

// Literal decoding errors. The decoders are pure functions from a raw lexeme
// to a value; the type checker turns these errors into diagnostics.
var (
	ErrMalformedLiteral = errors.New("malformed literal")
	ErrIntegerRange     = errors.New("integer out of range")
	ErrSymbolLength     = errors.New("symbol literal must contain exactly one symbol")
	ErrTapeLength       = errors.New("tape literal must contain at least one symbol")
	ErrMultipleHeads    = errors.New("tape literal has more than one head marker")
	ErrHeadPosition     = errors.New("head marker must precede a tape symbol")
)

// DecodeBoolean decodes a `true`/`false` lexeme.
func DecodeBoolean(raw string) (types.BooleanValue, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: boolean %q", ErrMalformedLiteral, raw)
	}
}

// DecodeInteger decodes a decimal lexeme with an optional leading '-' and
// checks it against the signed 16-bit range.
func DecodeInteger(raw string) (types.IntegerValue, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrIntegerRange
		}
		return 0, fmt.Errorf("%w: integer %q", ErrMalformedLiteral, raw)
	}
	if v < types.MinInteger || v > types.MaxInteger {
		return 0, ErrIntegerRange
	}
	return types.IntegerValue(v), nil
}

// DecodeSymbol strips the quotes of a symbol lexeme, resolves the escapes
// \\ \n \t \' and requires exactly one resulting character.
func DecodeSymbol(raw string) (types.SymbolValue, error) {
	body, err := unquote(raw, '\'')
	if err != nil {
		return 0, err
	}
	cells, _ := unescape(body, '\'', false)
	if len(cells) != 1 {
		return 0, ErrSymbolLength
	}
	return types.SymbolValue(cells[0]), nil
}

// DecodeTape strips the quotes of a tape lexeme, resolves the escapes
// \\ \n \t \" \^ and extracts the head marker. An unescaped '^' marks the
// cell that follows it; without a marker the head is on the first cell.
//
// Every violated constraint is reported; the returned value is the best
// effort decoding and is meaningful only when the error is nil.
func DecodeTape(raw string) (types.TapeValue, error) {
	body, err := unquote(raw, '"')
	if err != nil {
		return types.TapeValue{}, err
	}
	cells, heads := unescape(body, '"', true)

	tape := types.TapeValue{Head: 0, Cells: cells}
	if len(heads) > 0 {
		tape.Head = heads[0]
	}

	var errs []error
	if len(cells) == 0 {
		errs = append(errs, ErrTapeLength)
	}
	if len(heads) > 1 {
		errs = append(errs, ErrMultipleHeads)
	}
	if len(cells) > 0 && tape.Head >= len(cells) {
		errs = append(errs, ErrHeadPosition)
	}
	if len(errs) > 0 {
		if tape.Head >= len(cells) {
			tape.Head = 0
		}
		return tape, errors.Join(errs...)
	}
	return tape, nil
}

func unquote(raw string, quote byte) (string, error) {
	if len(raw) < 2 || raw[0] != quote || raw[len(raw)-1] != quote {
		return "", fmt.Errorf("%w: %s", ErrMalformedLiteral, raw)
	}
	return raw[1 : len(raw)-1], nil
}

// unescape resolves escapes in one left-to-right pass. With headMarkers set,
// unescaped '^' characters are removed and their cell indexes returned.
// Unknown escapes are kept verbatim, backslash included.
func unescape(body string, quote rune, headMarkers bool) (cells []rune, heads []int) {
	cells = make([]rune, 0, len(body))
	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		i += size

		if r == '\\' && i < len(body) {
			next, nextSize := utf8.DecodeRuneInString(body[i:])
			i += nextSize
			switch {
			case next == '\\':
				cells = append(cells, '\\')
			case next == 'n':
				cells = append(cells, '\n')
			case next == 't':
				cells = append(cells, '\t')
			case next == quote:
				cells = append(cells, quote)
			case next == '^' && headMarkers:
				cells = append(cells, '^')
			default:
				cells = append(cells, '\\', next)
			}
			continue
		}

		if r == '^' && headMarkers {
			heads = append(heads, len(cells))
			continue
		}
		cells = append(cells, r)
	}
	return cells, heads
}
