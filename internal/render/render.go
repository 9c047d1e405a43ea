// Package render writes decoded rows in the output formats of the command line tool.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/tidwall/sjson"

	"github.com/oleg578/typedcsv"
	"github.com/oleg578/typedcsv/internal/config"
)

var errUnknownFormat = errors.New("unknown output format")

// Renderer receives rows one at a time. Flush must be called once after the last row.
type Renderer interface {
	Render(row typedcsv.Row) error
	Flush() error
}

// New returns the renderer for format. Delimiters only affect the csv format.
func New(format string, w io.Writer, schema *typedcsv.Schema, d typedcsv.Delimiters) (Renderer, error) {
	switch format {
	case config.OutputTable:
		return newTable(w, schema), nil
	case config.OutputJSON:
		return &jsonRenderer{w: w, names: schema.Names()}, nil
	case config.OutputText:
		return &textRenderer{w: w}, nil
	case config.OutputCSV:
		return newCSV(w, schema, d)
	default:
		return nil, fmt.Errorf("%q: %w", format, errUnknownFormat)
	}
}

type tableRenderer struct {
	t *tablewriter.Table
}

func newTable(w io.Writer, schema *typedcsv.Schema) *tableRenderer {
	t := tablewriter.NewWriter(w)
	t.SetHeader(append([]string{"Line"}, schema.Names()...))
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return &tableRenderer{t: t}
}

func (r *tableRenderer) Render(row typedcsv.Row) error {
	fields, err := row.Strings()
	if err != nil {
		return fmt.Errorf("format line %d: %w", row.Line(), err)
	}
	r.t.Append(append([]string{fmt.Sprintf("%d", row.Line())}, fields...))
	return nil
}

func (r *tableRenderer) Flush() error {
	r.t.Render()
	return nil
}

// jsonRenderer writes one JSON object per row keyed by column name.
type jsonRenderer struct {
	w     io.Writer
	names []string
}

func (r *jsonRenderer) Render(row typedcsv.Row) error {
	doc := []byte("{}")
	for i, name := range r.names {
		var err error
		doc, err = sjson.SetBytes(doc, escapePath(name), jsonValue(row.Value(i)))
		if err != nil {
			return fmt.Errorf("set %q on line %d: %w", name, row.Line(), err)
		}
	}
	doc = append(doc, '\n')
	if _, err := r.w.Write(doc); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func (r *jsonRenderer) Flush() error {
	return nil
}

// jsonValue maps values without a faithful JSON form onto strings.
func jsonValue(v any) any {
	switch vv := v.(type) {
	case time.Duration:
		return vv.String()
	case float64:
		if math.IsNaN(vv) || math.IsInf(vv, 0) {
			return fmt.Sprint(vv)
		}
	case float32:
		if math.IsNaN(float64(vv)) || math.IsInf(float64(vv), 0) {
			return fmt.Sprint(vv)
		}
		return float64(vv)
	}
	return v
}

// escapePath quotes the path syntax characters of sjson so a column name is one key.
func escapePath(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 0x80 && !isWordChar(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isWordChar(c byte) bool {
	return c == '_' || c == '-' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) Render(row typedcsv.Row) error {
	if _, err := fmt.Fprintln(r.w, row.String()); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

func (r *textRenderer) Flush() error {
	return nil
}

type csvRenderer struct {
	w *typedcsv.Writer
}

func newCSV(w io.Writer, schema *typedcsv.Schema, d typedcsv.Delimiters) (*csvRenderer, error) {
	cw := typedcsv.NewWriter(w)
	cw.Delimiters = d
	if err := cw.Write(schema.Names()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &csvRenderer{w: cw}, nil
}

func (r *csvRenderer) Render(row typedcsv.Row) error {
	if err := r.w.WriteRow(row); err != nil {
		return fmt.Errorf("write line %d: %w", row.Line(), err)
	}
	return nil
}

func (r *csvRenderer) Flush() error {
	return r.w.Flush()
}
