package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/oleg578/typedcsv"
	"github.com/oleg578/typedcsv/internal/config"
)

func testRows(t *testing.T) (*typedcsv.Schema, []typedcsv.Row) {
	t.Helper()

	schema, err := typedcsv.NewSchema(
		typedcsv.Col("product", typedcsv.KindString),
		typedcsv.Col("unit.price", typedcsv.KindDecimal),
		typedcsv.Col("qty", typedcsv.KindInt),
		typedcsv.Col("lead", typedcsv.KindDuration),
		typedcsv.TimeCol("since", "2006-01-02"),
	)
	require.NoError(t, err)

	p, err := typedcsv.NewParser(schema, typedcsv.Delimiters{})
	require.NoError(t, err)
	rows, err := typedcsv.NewReader(strings.NewReader(
		"hex bolt,0.35,120,48h,2018-08-13\n"+
			"\"washer, flat\",0.05,4000,1d2h,2019-01-02\n",
	), p).ReadAll()
	require.NoError(t, err)
	return schema, rows
}

func renderAll(t *testing.T, format string, d typedcsv.Delimiters) string {
	t.Helper()

	schema, rows := testRows(t)
	var buf bytes.Buffer
	r, err := New(format, &buf, schema, d)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, r.Render(row))
	}
	require.NoError(t, r.Flush())
	return buf.String()
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	out := renderAll(t, config.OutputJSON, typedcsv.Delimiters{})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)

	first := lines[0]
	require.True(t, gjson.Valid(first))
	assert.Equal(t, "hex bolt", gjson.Get(first, "product").String())
	assert.Equal(t, "0.35", gjson.Get(first, `unit\.price`).String())
	assert.Equal(t, int64(120), gjson.Get(first, "qty").Int())
	assert.Equal(t, "48h0m0s", gjson.Get(first, "lead").String())
	assert.Equal(t, "2018-08-13T00:00:00Z", gjson.Get(first, "since").String())

	assert.Equal(t, "washer, flat", gjson.Get(lines[1], "product").String())
	assert.Equal(t, "26h0m0s", gjson.Get(lines[1], "lead").String())
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	out := renderAll(t, config.OutputText, typedcsv.Delimiters{})
	assert.Equal(t, "hex bolt 0.35 120 48h0m0s 2018-08-13\nwasher, flat 0.05 4000 26h0m0s 2019-01-02\n", out)
}

func TestRenderCSV(t *testing.T) {
	t.Parallel()

	out := renderAll(t, config.OutputCSV, typedcsv.Delimiters{Comma: ';'})
	assert.Equal(t, "product;unit.price;qty;lead;since\n"+
		"hex bolt;0.35;120;48h0m0s;2018-08-13\n"+
		"washer, flat;0.05;4000;26h0m0s;2019-01-02\n", out)
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := renderAll(t, config.OutputTable, typedcsv.Delimiters{})
	assert.Contains(t, out, "unit.price")
	assert.Contains(t, out, "washer, flat")
	assert.Contains(t, out, "4000")
	// Header, two rows and three border lines.
	assert.Equal(t, 6, strings.Count(out, "\n"))
}

func TestNewUnknownFormat(t *testing.T) {
	t.Parallel()

	schema, _ := testRows(t)
	_, err := New("xml", &bytes.Buffer{}, schema, typedcsv.Delimiters{})
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestEscapePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain_name-1", escapePath("plain_name-1"))
	assert.Equal(t, `a\.b\*c\?`, escapePath("a.b*c?"))
}
