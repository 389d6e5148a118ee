package parser

import (
	"fmt"

	"github.com/csl-lang/csl/internal/lexer"
)

// Diagnostic is a (message, region) pair the parser accumulates. Unlike
// the lexer's Diagnostic, it carries a Code distinguishing syntactic (P0xx)
// from semantic (S0xx) findings, and never aborts parsing.
type Diagnostic struct {
	Message  string
	Region   lexer.Region
	Severity lexer.Severity
	Code     string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%s: %s", d.Code, d.Region, d.Message)
}

// DiagnosticList is a collection of parser diagnostics.
type DiagnosticList []Diagnostic

func (dl DiagnosticList) Error() string {
	if len(dl) == 0 {
		return "no errors"
	}
	if len(dl) == 1 {
		return dl[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", dl[0].Error(), len(dl)-1)
}

func (dl DiagnosticList) HasErrors() bool {
	for _, d := range dl {
		if d.Severity == lexer.SeverityError {
			return true
		}
	}
	return false
}

// Syntactic error codes (class: missing/unexpected token).
const (
	CodeUnexpectedToken  = "P001"
	CodeExpectedToken    = "P002"
	CodeDuplicateBlock   = "S001"
	CodeUnionMix         = "S002"
	CodeAnnotationTarget = "S003"
	CodeDefaultMismatch  = "S004"
	CodeUnknownIdent     = "S005"
	CodeSubsetMisuse     = "S006"
	CodeMisplacedAnnot   = "S007"
)
