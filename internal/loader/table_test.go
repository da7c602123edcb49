package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	return &Table{
		Name:    "venues.csv",
		Columns: []string{"District_ID", " neighborhood ", "size_sqm"},
		Rows: [][]string{
			{"01", "Mitte", "1200.5"},
			{"02", "Pankow", "3,5"},
			{"03", "Spandau"},
			{"04", "Neukölln", "abc"},
		},
	}
}

func TestTable_Col_CaseInsensitive(t *testing.T) {
	tbl := testTable()
	assert.Equal(t, 0, tbl.Col("district_id"))
	assert.Equal(t, 0, tbl.Col("DISTRICT_ID"))
	assert.Equal(t, 1, tbl.Col("neighborhood"), "header whitespace is ignored")
	assert.Equal(t, -1, tbl.Col("missing"))
}

func TestTable_Require(t *testing.T) {
	tbl := testTable()
	assert.NoError(t, tbl.Require("district_id", "size_sqm"))

	err := tbl.Require("district_id", "lat", "lon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "venues.csv")
	assert.Contains(t, err.Error(), "lat")
	assert.Contains(t, err.Error(), "lon")
	assert.NotContains(t, err.Error(), "district_id")
}

func TestTable_Value_ShortRow(t *testing.T) {
	tbl := testTable()
	assert.Equal(t, "Spandau", tbl.Value(2, 1))
	assert.Equal(t, "", tbl.Value(2, 2), "short rows read as blank, not panic")
	assert.Equal(t, "", tbl.Value(0, -1))
}

func TestTable_Float(t *testing.T) {
	tbl := testTable()

	v, ok := tbl.Float(0, 2)
	require.True(t, ok)
	assert.InDelta(t, 1200.5, v, 1e-9)

	v, ok = tbl.Float(1, 2)
	require.True(t, ok, "comma decimal separator is accepted")
	assert.InDelta(t, 3.5, v, 1e-9)

	_, ok = tbl.Float(2, 2)
	assert.False(t, ok, "blank cell is missing")

	_, ok = tbl.Float(3, 2)
	assert.False(t, ok, "unparsable cell degrades to missing")
}
