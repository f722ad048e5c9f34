package parser

import (
	"fmt"

	"github.com/foursquare/fsltool/token"
)

// ParseError is the parser's sole error type (spec.md §4.1: "No
// recovery; first error aborts"). Expected describes what the parser
// was looking for; Found is the token text that was actually there.
type ParseError struct {
	File     string
	Line     int
	Column   int
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: expected %s, found %s", e.File, e.Line, e.Column, e.Expected, e.Found)
}

func newParseError(pos token.Position, expected string, found token.Token) *ParseError {
	foundText := found.Text
	if foundText == "" {
		foundText = found.Kind.String()
	}
	return &ParseError{File: pos.File, Line: pos.Line, Column: pos.Column, Expected: expected, Found: foundText}
}
