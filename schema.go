package typedcsv

import (
	"errors"
	"fmt"
)

var errEmptySchema = errors.New("typedcsv: schema has no columns")

// Column declares one position of a row schema.
type Column struct {
	// Name labels the column in errors and output. It may be empty.
	Name string
	// Kind is the declared column type.
	Kind Kind
	// Layout is the time.Parse layout of KindTime columns. Empty means any common format.
	Layout string

	decode DecodeFunc
	format FormatFunc
}

// Col declares a column of a built-in kind.
func Col(name string, kind Kind) Column {
	return Column{Name: name, Kind: kind}
}

// TimeCol declares a KindTime column parsed and formatted with layout.
func TimeCol(name, layout string) Column {
	return Column{Name: name, Kind: KindTime, Layout: layout}
}

// Custom declares a column decoded by decode. A nil format renders values with fmt.Stringer or cast.
func Custom(name string, decode DecodeFunc, format FormatFunc) Column {
	return Column{Name: name, Kind: KindCustom, decode: decode, format: format}
}

// Schema is an ordered, fixed-arity list of column decoders. A Schema is
// immutable and safe for concurrent use.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema validates the columns and binds their decoders.
func NewSchema(columns ...Column) (*Schema, error) {
	if len(columns) == 0 {
		return nil, errEmptySchema
	}
	s := &Schema{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if c.Kind == KindCustom {
			if c.decode == nil {
				return nil, fmt.Errorf("typedcsv: column %d (%s): custom column without decoder", i, c.Name)
			}
		} else {
			dec, err := decoderFor(c.Kind, c.Layout)
			if err != nil {
				return nil, fmt.Errorf("typedcsv: column %d (%s): %w", i, c.Name, err)
			}
			c.decode = dec
		}
		if c.format == nil {
			c.format = formatterFor(c.Kind, c.Layout)
		}
		if c.Name != "" {
			if prev, ok := s.index[c.Name]; ok {
				return nil, fmt.Errorf("typedcsv: column %d duplicates name %q of column %d", i, c.Name, prev)
			}
			s.index[c.Name] = i
		}
		s.columns[i] = c
	}
	return s, nil
}

// Len returns the schema arity.
func (s *Schema) Len() int {
	return len(s.columns)
}

// Column returns the i-th column declaration.
func (s *Schema) Column(i int) Column {
	return s.columns[i]
}

// Names returns the column names in order; unnamed columns are reported as col_N.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("col_%d", i)
		}
	}
	return names
}

// Lookup returns the position of the named column.
func (s *Schema) Lookup(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Decode converts fields positionally into a Row. The field count must equal the
// schema arity; any conversion failure discards the whole row. lineNum is the
// 1-based line number reported in errors.
func (s *Schema) Decode(fields []string, lineNum int) (Row, error) {
	if len(fields) != len(s.columns) {
		return Row{}, &ParseError{
			Line: lineNum,
			Err:  &ArityError{Expected: len(s.columns), Actual: len(fields)},
		}
	}

	values := make([]any, len(fields))
	for i, c := range s.columns {
		v, err := c.decode(fields[i])
		if err != nil {
			return Row{}, &ParseError{
				Line:  lineNum,
				Field: i + 1,
				Err:   &CoercionError{Index: i, Name: c.Name, Kind: c.Kind, Raw: fields[i], Err: err},
			}
		}
		values[i] = v
	}
	return Row{schema: s, line: lineNum, values: values}, nil
}
