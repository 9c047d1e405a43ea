package typedcsv

import (
	"fmt"
	"strings"
)

// Row is one decoded line. Its values are fixed at construction; accessors
// return copies so a Row can be shared freely once returned.
type Row struct {
	schema *Schema
	line   int
	values []any
}

// Line returns the 1-based line number the row was decoded from.
func (r Row) Line() int {
	return r.line
}

// Len returns the number of columns.
func (r Row) Len() int {
	return len(r.values)
}

// Schema returns the schema the row was decoded with.
func (r Row) Schema() *Schema {
	return r.schema
}

// Value returns the i-th value, or nil when i is out of range.
func (r Row) Value(i int) any {
	if i < 0 || i >= len(r.values) {
		return nil
	}
	return r.values[i]
}

// Values returns a copy of all values in column order.
func (r Row) Values() []any {
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}

// ByName returns the value of the named column.
func (r Row) ByName(name string) (any, bool) {
	if r.schema == nil {
		return nil, false
	}
	i, ok := r.schema.Lookup(name)
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Strings formats every value with its column formatter.
func (r Row) Strings() ([]string, error) {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		format := formatAny
		if r.schema != nil {
			format = r.schema.columns[i].format
		}
		s, err := format(v)
		if err != nil {
			return nil, fmt.Errorf("format column %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// String joins the formatted values with single spaces.
func (r Row) String() string {
	fields, err := r.Strings()
	if err != nil {
		return fmt.Sprint(r.values...)
	}
	return strings.Join(fields, " ")
}

// Get returns the i-th value of r as T.
func Get[T any](r Row, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(r.values) {
		return zero, fmt.Errorf("%w: %d not in [0, %d)", ErrColumnIndex, i, len(r.values))
	}
	v, ok := r.values[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: column %d holds %T, not %T", ErrColumnType, i, r.values[i], zero)
	}
	return v, nil
}

// MustGet is like Get but panics on error.
func MustGet[T any](r Row, i int) T {
	v, err := Get[T](r, i)
	if err != nil {
		panic(err)
	}
	return v
}
