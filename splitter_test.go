package typedcsv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		delim Delimiters
		want  []string
	}{
		{
			name: "plainFields",
			line: "one,two,three",
			want: []string{"one", "two", "three"},
		},
		{
			name: "fieldsAreTrimmed",
			line: "  one , two\t,three  ",
			want: []string{"one", "two", "three"},
		},
		{
			name: "interiorWhitespaceKept",
			line: "new  york, los angeles",
			want: []string{"new  york", "los angeles"},
		},
		{
			name: "quotedComma",
			line: `"a,b",3.5`,
			want: []string{"a,b", "3.5"},
		},
		{
			name: "escapedQuote",
			line: `"he said ""hi""",1`,
			want: []string{`he said "hi"`, "1"},
		},
		{
			name: "escapedQuoteAtEndOfField",
			line: `"abc""",x`,
			want: []string{`abc"`, "x"},
		},
		{
			name: "trailingQuoteAtEndOfLine",
			line: `x,"abc"`,
			want: []string{"x", "abc"},
		},
		{
			name: "escapedQuoteThenEndOfLine",
			line: `"abc"""`,
			want: []string{`abc"`},
		},
		{
			name: "emptyQuotedField",
			line: `"",x`,
			want: []string{"", "x"},
		},
		{
			name: "emptyQuotedLine",
			line: `""`,
			want: []string{""},
		},
		{
			name: "onlyQuoteCharacter",
			line: `""""`,
			want: []string{`"`},
		},
		{
			name: "whitespaceAfterClosingQuote",
			line: `"a"   ,b`,
			want: []string{"a", "b"},
		},
		{
			name: "whitespaceBeforeOpeningQuote",
			line: `a,   "b,c"`,
			want: []string{"a", "b,c"},
		},
		{
			name: "quotedContentIsTrimmed",
			line: `"  padded  ",x`,
			want: []string{"padded", "x"},
		},
		{
			name: "emptyFields",
			line: ",,",
			want: []string{"", "", ""},
		},
		{
			name: "emptyLine",
			line: "",
			want: []string{""},
		},
		{
			name:  "customDelimiters",
			line:  "'John; Jr.';30",
			delim: Delimiters{Quote: '\'', Comma: ';'},
			want:  []string{"John; Jr.", "30"},
		},
		{
			name:  "customEscapedQuote",
			line:  "alpha,'beta''gamma',delta",
			delim: Delimiters{Quote: '\''},
			want:  []string{"alpha", "beta'gamma", "delta"},
		},
		{
			name:  "tabSeparatorKeepsEdgeFields",
			line:  "\tb\t",
			delim: Delimiters{Comma: '\t'},
			want:  []string{"", "b", ""},
		},
		{
			name: "lineSeparatorBytesPassThroughQuotes",
			line: `"a/b",c`,
			want: []string{"a/b", "c"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := SplitFields(tc.line, 1, tc.delim)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitFieldsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		err    error
		field  int
		column int
	}{
		{
			name:   "trailingCharsAfterQuote",
			line:   `"bad" extra,1`,
			err:    ErrTrailingCharsAfterQuote,
			field:  1,
			column: 7,
		},
		{
			name:   "trailingCharsInSecondField",
			line:   `a,"b"c`,
			err:    ErrTrailingCharsAfterQuote,
			field:  2,
			column: 6,
		},
		{
			name:   "unterminatedQuotedField",
			line:   `"unterminated,1`,
			err:    ErrUnterminatedQuotedField,
			field:  1,
			column: 16,
		},
		{
			name:   "unterminatedAfterEscapedQuote",
			line:   `"abc""`,
			err:    ErrUnterminatedQuotedField,
			field:  1,
			column: 7,
		},
		{
			name:   "singleQuoteCharacter",
			line:   `"`,
			err:    ErrUnterminatedQuotedField,
			field:  1,
			column: 2,
		},
		{
			name:   "misplacedQuote",
			line:   `ab"c",1`,
			err:    ErrMisplacedQuote,
			field:  1,
			column: 3,
		},
		{
			name:   "misplacedQuoteAfterSpaceInField",
			line:   `x,a "b"`,
			err:    ErrMisplacedQuote,
			field:  2,
			column: 5,
		},
		{
			name:   "columnCountsLeadingWhitespace",
			line:   `   a"b`,
			err:    ErrMisplacedQuote,
			field:  1,
			column: 5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fields, err := SplitFields(tc.line, 7, Delimiters{})
			require.Error(t, err)
			assert.Nil(t, fields)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "error %T is not *ParseError", err)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, 7, perr.Line)
			assert.Equal(t, tc.field, perr.Field)
			assert.Equal(t, tc.column, perr.Column)
		})
	}
}

func TestSplitFieldsUnquotedArity(t *testing.T) {
	t.Parallel()

	values := []string{"a", "bb", "c c", "", "42"}
	for n := 1; n <= len(values); n++ {
		line := ""
		for i := 0; i < n; i++ {
			if i > 0 {
				line += ","
			}
			line += " " + values[i] + " "
		}
		got, err := SplitFields(line, 1, Delimiters{})
		require.NoError(t, err)
		require.Len(t, got, n)
		assert.Equal(t, values[:n], got)
	}
}

func TestSplitterIsDeterministic(t *testing.T) {
	t.Parallel()

	s := NewSplitter(Delimiters{Comma: ';'})
	const line = `"a;b";"c""d"; e`

	first, err := s.Split(line, 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := s.Split(line, 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{"a;b", `c"d`, "e"}, first)
	assert.Equal(t, Delimiters{Quote: '"', Comma: ';', Line: '\n'}, s.Delimiters())
}

func TestSplitStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", statePlain.String())
	assert.Equal(t, "quoted", stateQuoted.String())
	assert.Equal(t, "unknown", splitState(9).String())
}
