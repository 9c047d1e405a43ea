package typedcsv

import (
	"errors"
	"fmt"
)

var (
	// ErrMisplacedQuote is returned when a quote follows non-whitespace content inside a field.
	ErrMisplacedQuote = errors.New("typedcsv: quote is not the first character of the field")
	// ErrTrailingCharsAfterQuote is returned when non-whitespace text follows a closing quote.
	ErrTrailingCharsAfterQuote = errors.New("typedcsv: characters after closing quote")
	// ErrUnterminatedQuotedField is returned when a line ends inside a quoted run.
	ErrUnterminatedQuotedField = errors.New("typedcsv: unterminated quoted field")
	// ErrArityMismatch is returned when a line has a different number of fields than the schema.
	ErrArityMismatch = errors.New("typedcsv: wrong number of fields")
	// ErrTypeCoercion is returned when a field cannot be parsed as its column type.
	ErrTypeCoercion = errors.New("typedcsv: field cannot be converted to column type")
	// ErrEmptyLine is returned when an empty line is passed where a row is expected.
	ErrEmptyLine = errors.New("typedcsv: empty line")
	// ErrOffsetOutOfRange is returned when the reader offset is past the last line of the source.
	ErrOffsetOutOfRange = errors.New("typedcsv: offset is beyond the end of the source")
	// ErrLineTooLong is returned when a line exceeds the reader's maximum line size.
	ErrLineTooLong = errors.New("typedcsv: line too long")
	// ErrColumnIndex is returned when a row column index is out of range.
	ErrColumnIndex = errors.New("typedcsv: column index out of range")
	// ErrColumnType is returned when a row value is read as a type it does not hold.
	ErrColumnType = errors.New("typedcsv: column holds a different type")
)

// ParseError contains location information for line parsing errors.
// Line, Field and Column are 1-based; Field and Column are zero when not applicable.
type ParseError struct {
	Line   int
	Field  int
	Column int
	Err    error
}

// Error formats the parse error message with the stored location and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Column > 0:
		return fmt.Sprintf("typedcsv: parse error on line %d, field %d, column %d: %v", e.Line, e.Field, e.Column, e.Err)
	case e.Field > 0:
		return fmt.Sprintf("typedcsv: parse error on line %d, field %d: %v", e.Line, e.Field, e.Err)
	default:
		return fmt.Sprintf("typedcsv: parse error on line %d: %v", e.Line, e.Err)
	}
}

// Unwrap returns the underlying Err so ParseError participates in errors.Is and errors.As.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ArityError reports the declared and actual field counts of a line.
type ArityError struct {
	Expected int
	Actual   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%v: expected %d, got %d", ErrArityMismatch, e.Expected, e.Actual)
}

// Is reports whether target is ErrArityMismatch.
func (e *ArityError) Is(target error) bool {
	return target == ErrArityMismatch
}

// CoercionError reports a field that could not be converted to its column type.
// Index is the 0-based column position.
type CoercionError struct {
	Index int
	Name  string
	Kind  Kind
	Raw   string
	Err   error
}

func (e *CoercionError) Error() string {
	name := e.Name
	if name == "" {
		name = fmt.Sprintf("#%d", e.Index)
	}
	if e.Err == nil {
		return fmt.Sprintf("%v: column %s (%s) value %q", ErrTypeCoercion, name, e.Kind, e.Raw)
	}
	return fmt.Sprintf("%v: column %s (%s) value %q: %v", ErrTypeCoercion, name, e.Kind, e.Raw, e.Err)
}

// Unwrap exposes both ErrTypeCoercion and the conversion cause.
func (e *CoercionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeCoercion}
	}
	return []error{ErrTypeCoercion, e.Err}
}
