package typedcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTestRow(t *testing.T) Row {
	t.Helper()

	schema, err := NewSchema(Col("product", KindString), Col("price", KindFloat64), Col("qty", KindInt))
	require.NoError(t, err)
	row, err := schema.Decode([]string{"hex bolt", "0.35", "120"}, 3)
	require.NoError(t, err)
	return row
}

func TestRowAccessors(t *testing.T) {
	t.Parallel()

	row := decodeTestRow(t)

	assert.Equal(t, 3, row.Line())
	assert.Equal(t, 3, row.Len())
	assert.Equal(t, "hex bolt", row.Value(0))
	assert.Nil(t, row.Value(-1))
	assert.Nil(t, row.Value(3))
	assert.Equal(t, []string{"product", "price", "qty"}, row.Schema().Names())

	v, ok := row.ByName("price")
	assert.True(t, ok)
	assert.Equal(t, 0.35, v)
	_, ok = row.ByName("colour")
	assert.False(t, ok)

	_, ok = Row{}.ByName("price")
	assert.False(t, ok)
}

func TestRowValuesIsACopy(t *testing.T) {
	t.Parallel()

	row := decodeTestRow(t)
	values := row.Values()
	values[0] = "changed"

	assert.Equal(t, "hex bolt", row.Value(0))
}

func TestRowStrings(t *testing.T) {
	t.Parallel()

	row := decodeTestRow(t)

	fields, err := row.Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"hex bolt", "0.35", "120"}, fields)
	assert.Equal(t, "hex bolt 0.35 120", row.String())
}

func TestGet(t *testing.T) {
	t.Parallel()

	row := decodeTestRow(t)

	price, err := Get[float64](row, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.35, price)

	_, err = Get[string](row, 1)
	assert.ErrorIs(t, err, ErrColumnType)

	_, err = Get[int](row, 5)
	assert.ErrorIs(t, err, ErrColumnIndex)

	assert.Panics(t, func() { MustGet[bool](row, 0) })
	assert.Equal(t, 120, MustGet[int](row, 2))
}
