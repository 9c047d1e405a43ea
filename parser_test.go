package typedcsv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T, d Delimiters) *Parser {
	t.Helper()

	schema, err := NewSchema(Col("label", KindString), Col("value", KindFloat64))
	require.NoError(t, err)
	p, err := NewParser(schema, d)
	require.NoError(t, err)
	return p
}

func TestParserParseLine(t *testing.T) {
	t.Parallel()

	p := newTestParser(t, Delimiters{})

	row, err := p.ParseLine(`"a,b",3.5`, 1)
	require.NoError(t, err)
	assert.Equal(t, "a,b", MustGet[string](row, 0))
	assert.Equal(t, 3.5, MustGet[float64](row, 1))

	row, err = p.ParseLine(`"he said ""hi""",1`, 2)
	require.NoError(t, err)
	assert.Equal(t, `he said "hi"`, MustGet[string](row, 0))
	assert.Equal(t, 1.0, MustGet[float64](row, 1))
	assert.Equal(t, 2, row.Line())
}

func TestParserParseLineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		err  error
	}{
		{name: "emptyLine", line: "", err: ErrEmptyLine},
		{name: "blankLine", line: " \t ", err: ErrEmptyLine},
		{name: "trailingChars", line: `"bad" extra,1`, err: ErrTrailingCharsAfterQuote},
		{name: "unterminated", line: `"unterminated,1`, err: ErrUnterminatedQuotedField},
		{name: "misplacedQuote", line: `a"b,1`, err: ErrMisplacedQuote},
		{name: "tooFewFields", line: "only", err: ErrArityMismatch},
		{name: "tooManyFields", line: "a,1,2", err: ErrArityMismatch},
		{name: "notANumber", line: "x,y", err: ErrTypeCoercion},
		{name: "numberWithLeftovers", line: "x,3.5.1", err: ErrTypeCoercion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := newTestParser(t, Delimiters{})
			_, err := p.ParseLine(tc.line, 12)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, 12, perr.Line)
		})
	}
}

func TestParserEmptyLineCheckedBeforeSplitting(t *testing.T) {
	t.Parallel()

	p := newTestParser(t, Delimiters{})
	_, err := p.ParseLine("", 5)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrEmptyLine, perr.Err)
	assert.Zero(t, perr.Field)
	assert.Equal(t, "typedcsv: parse error on line 5: typedcsv: empty line", err.Error())
}

func TestParserCustomDelimiters(t *testing.T) {
	t.Parallel()

	p := newTestParser(t, Delimiters{Quote: '\'', Comma: ';', Line: '/'})
	assert.Equal(t, Delimiters{Quote: '\'', Comma: ';', Line: '/'}, p.Delimiters())

	row, err := p.ParseLine("'semi; colon' ; 2.5", 1)
	require.NoError(t, err)
	assert.Equal(t, "semi; colon", MustGet[string](row, 0))
	assert.Equal(t, 2.5, MustGet[float64](row, 1))

	_, err = p.ParseLine("a,b;1", 1)
	require.NoError(t, err)
}

func TestParserTabSeparatedBlankFields(t *testing.T) {
	t.Parallel()

	schema, err := NewSchema(Col("a", KindString), Col("b", KindString))
	require.NoError(t, err)
	p, err := NewParser(schema, Delimiters{Comma: '\t'})
	require.NoError(t, err)

	row, err := p.ParseLine("\t", 1)
	require.NoError(t, err)
	assert.Equal(t, []any{"", ""}, row.Values())
}

func TestNewParserInvalid(t *testing.T) {
	t.Parallel()

	_, err := NewParser(nil, Delimiters{})
	assert.Error(t, err)

	_, err = NewParser(&Schema{}, Delimiters{})
	assert.Error(t, err)
}

func TestParseErrorMethods(t *testing.T) {
	t.Parallel()

	err := &ParseError{Line: 3, Field: 2, Column: 7, Err: ErrMisplacedQuote}
	got := err.Error()
	assert.Contains(t, got, "line 3")
	assert.Contains(t, got, "field 2")
	assert.Contains(t, got, "column 7")
	assert.ErrorIs(t, err, ErrMisplacedQuote)
	assert.ErrorIs(t, err.Unwrap(), ErrMisplacedQuote)

	fieldOnly := &ParseError{Line: 1, Field: 4, Err: ErrTypeCoercion}
	assert.Equal(t, "typedcsv: parse error on line 1, field 4: typedcsv: field cannot be converted to column type", fieldOnly.Error())

	var nilErr *ParseError
	assert.Equal(t, "", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}
