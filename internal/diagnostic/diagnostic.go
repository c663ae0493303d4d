// Package diagnostic collects the errors reported by every compilation phase.
// A single Collector is shared by the lexer, the parser and the type checker
// of one compilation run; phase success is "no entries of that phase".
package diagnostic

import (
	"encoding/json"
	"fmt"

	"github.com/MBogda/turing-machine-translator/internal/position"
)

// Phase identifies the compilation phase that reported a diagnostic.
type Phase int

const (
	PhaseLexer Phase = iota
	PhaseParser
	PhaseSemantic
)

func (p Phase) String() string {
	switch p {
	case PhaseLexer:
		return "Lexer"
	case PhaseParser:
		return "Parser"
	case PhaseSemantic:
		return "Semantic"
	default:
		return "unknown"
	}
}

// Kind classifies a diagnostic. Every kind belongs to exactly one phase.
type Kind int

const (
	// Lexical errors
	UndefinedToken Kind = iota
	IndentationError

	// Syntax errors
	UnexpectedToken

	// Semantic errors
	IncompatibleTypes
	InvalidType
	UndeclaredVariable
	IntegerOutOfRange
	SymbolLengthError
	TapeLengthError
	MultipleHeadsError
	HeadPositionError
)

var kindNames = map[Kind]string{
	UndefinedToken:     "UndefinedToken",
	IndentationError:   "IndentationError",
	UnexpectedToken:    "UnexpectedToken",
	IncompatibleTypes:  "IncompatibleTypes",
	InvalidType:        "InvalidType",
	UndeclaredVariable: "UndeclaredVariable",
	IntegerOutOfRange:  "IntegerOutOfRange",
	SymbolLengthError:  "SymbolLengthError",
	TapeLengthError:    "TapeLengthError",
	MultipleHeadsError: "MultipleHeadsError",
	HeadPositionError:  "HeadPositionError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Phase returns the phase a kind is reported from.
func (k Kind) Phase() Phase {
	switch k {
	case UndefinedToken, IndentationError:
		return PhaseLexer
	case UnexpectedToken:
		return PhaseParser
	default:
		return PhaseSemantic
	}
}

// Diagnostic is a single recoverable compilation error.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     position.Position
}

// Phase returns the phase that produced the diagnostic.
func (d Diagnostic) Phase() Phase { return d.Kind.Phase() }

// Error implements the error interface
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s Error on %d:%d: %s", d.Phase(), d.Pos.Line, d.Pos.Column, d.Message)
}

// MarshalJSON emits the (phase, kind, message, line, column) record consumed
// by editor integrations.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		File    string `json:"file,omitempty"`
		Phase   string `json:"phase"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
		Line    int    `json:"line"`
		Column  int    `json:"column"`
	}{
		File:    d.Pos.Filename,
		Phase:   d.Phase().String(),
		Kind:    d.Kind.String(),
		Message: d.Message,
		Line:    d.Pos.Line,
		Column:  d.Pos.Column,
	})
}

// Sink receives every diagnostic as soon as it is reported.
type Sink interface {
	Report(d Diagnostic)
}

// Collector accumulates diagnostics in report order. It is owned by one
// compilation run and is not safe for concurrent use.
type Collector struct {
	diagnostics []Diagnostic
	sink        Sink
}

// NewCollector creates an empty collector. sink may be nil.
func NewCollector(sink Sink) *Collector {
	return &Collector{
		diagnostics: make([]Diagnostic, 0),
		sink:        sink,
	}
}

// Report records a diagnostic and forwards it to the sink, if any.
func (c *Collector) Report(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
	if c.sink != nil {
		c.sink.Report(d)
	}
}

// Reportf records a diagnostic built from a format string.
func (c *Collector) Reportf(kind Kind, pos position.Position, format string, args ...interface{}) {
	c.Report(Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// All returns the diagnostics in report order.
func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int {
	return len(c.diagnostics)
}

// HasErrors reports whether any phase reported a diagnostic.
func (c *Collector) HasErrors() bool {
	return len(c.diagnostics) > 0
}

// PhaseHasErrors reports whether the given phase reported a diagnostic.
func (c *Collector) PhaseHasErrors(phase Phase) bool {
	for _, d := range c.diagnostics {
		if d.Phase() == phase {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics of the given kind.
func (c *Collector) Count(kind Kind) int {
	n := 0
	for _, d := range c.diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// MarshalJSON emits the diagnostics as a JSON array.
func (c *Collector) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.diagnostics)
}
