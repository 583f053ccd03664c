package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/maplink/internal/model"
)

var testNulls = []string{"NA", "N/A", "null", "None", "nan"}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTestFile(t, "locations.csv",
		"Property ID,Owner,Map Location\n"+
			"42,Alice,https://short.url/abc\n"+
			"43,Bob,\n"+
			"44,\"Carol, Jr.\", https://short.url/dead \n")

	tbl, err := Load(path, Options{NullValues: testNulls})
	require.NoError(t, err)

	assert.Equal(t, []string{"Property ID", "Owner", "Map Location"}, tbl.Header)
	assert.Equal(t, 0, tbl.PropertyIDCol)
	assert.Equal(t, 2, tbl.MapURLCol)
	require.Equal(t, 3, tbl.Len())

	assert.Equal(t, model.Record{
		Line:       1,
		PropertyID: "42",
		MapURL:     "https://short.url/abc",
		Status:     model.RowStatusPending,
		Cells:      []string{"42", "Alice", "https://short.url/abc"},
	}, tbl.Records[0])
	assert.False(t, tbl.Records[1].HasMapURL())
	assert.Equal(t, "https://short.url/dead", tbl.Records[2].MapURL)
	assert.Equal(t, "Carol, Jr.", tbl.Records[2].Cells[1])
}

func TestLoadCSV_NullMarkers(t *testing.T) {
	path := writeTestFile(t, "locations.csv",
		"Property ID,Map Location\n1,NA\n2,None\n3,  \n4,https://short.url/x\n")

	tbl, err := Load(path, Options{NullValues: testNulls})
	require.NoError(t, err)
	require.Equal(t, 4, tbl.Len())

	for _, rec := range tbl.Records[:3] {
		assert.False(t, rec.HasMapURL(), "row %d", rec.Line)
	}
	assert.True(t, tbl.Records[3].HasMapURL())
}

func TestLoadCSV_ByteOrderMark(t *testing.T) {
	path := writeTestFile(t, "bom.csv", "\ufeffProperty ID,Map Location\n7,https://short.url/bom\n")

	tbl, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Property ID", tbl.Header[0])
	assert.Equal(t, "7", tbl.Records[0].PropertyID)
}

func TestLoadCSV_ShortRowsPadded(t *testing.T) {
	path := writeTestFile(t, "short.csv", "Map Location,Notes,Property ID\nhttps://short.url/a\n")

	tbl, err := Load(path, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Empty(t, tbl.Records[0].PropertyID)
	assert.Len(t, tbl.Records[0].Cells, 3)
}

func TestLoadCSV_CustomColumnsTrimmedHeader(t *testing.T) {
	path := writeTestFile(t, "custom.csv", " APN , Pin \n9,https://short.url/p\n")

	tbl, err := Load(path, Options{PropertyIDColumn: "APN", MapURLColumn: "Pin"})
	require.NoError(t, err)
	assert.Equal(t, "9", tbl.Records[0].PropertyID)
	assert.Equal(t, "https://short.url/p", tbl.Records[0].MapURL)
}

func TestLoad_MissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing []string
	}{
		{"no map column", "Property ID,Owner\n1,a\n", []string{"Map Location"}},
		{"no id column", "Owner,Map Location\na,https://short.url/x\n", []string{"Property ID"}},
		{"neither", "Owner\na\n", []string{"Property ID", "Map Location"}},
		{"empty file", "", []string{"Property ID", "Map Location"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "in.csv", tt.content)

			tbl, err := Load(path, Options{})
			assert.Nil(t, tbl)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "want ConfigurationError, got %v", err)
			assert.Equal(t, tt.missing, cfgErr.Missing)
			assert.Equal(t, path, cfgErr.Path)
			assert.Contains(t, err.Error(), "missing required column")
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.False(t, errors.As(err, &cfgErr))
}

func sampleTable() *model.Table {
	return &model.Table{
		Header:        []string{"Property ID", "Map Location"},
		PropertyIDCol: 0,
		MapURLCol:     1,
		Records: []model.Record{
			{Line: 1, PropertyID: "42", MapURL: "https://short.url/abc", Latitude: "37.4219", Longitude: "-122.0840",
				Cells: []string{"42", "https://short.url/abc"}},
			{Line: 2, PropertyID: "43", Cells: []string{"43", ""}},
			{Line: 3, PropertyID: "44", MapURL: "https://short.url/dead", Cells: []string{"44", "https://short.url/dead"}},
		},
	}
}

func TestRows_AppendsCoordinateColumns(t *testing.T) {
	rows := Rows(sampleTable(), Options{})

	assert.Equal(t, [][]string{
		{"Property ID", "Map Location", "Latitude", "Longitude"},
		{"42", "https://short.url/abc", "37.4219", "-122.0840"},
		{"43", "", "", ""},
		{"44", "https://short.url/dead", "", ""},
	}, rows)
}

func TestRows_OverwritesExistingColumns(t *testing.T) {
	tbl := &model.Table{
		Header: []string{"Latitude", "Property ID", "Map Location"},
		Records: []model.Record{
			{PropertyID: "1", Latitude: "1.5", Longitude: "2.5", Cells: []string{"stale", "1", "u"}},
			{PropertyID: "2", Cells: []string{"stale", "2", ""}},
		},
	}

	rows := Rows(tbl, Options{})
	assert.Equal(t, [][]string{
		{"Latitude", "Property ID", "Map Location", "Longitude"},
		{"1.5", "1", "u", "2.5"},
		{"", "2", "", ""},
	}, rows)
}

func TestRows_LongRowKeepsExtraCells(t *testing.T) {
	path := writeTestFile(t, "long.csv",
		"Property ID,Map Location\n"+
			"42,https://short.url/a,EXTRA,MORE\n"+
			"43,https://short.url/b\n")

	tbl, err := Load(path, Options{})
	require.NoError(t, err)
	tbl.Records[0].SetCoordinates("1.5", "2.5")

	rows := Rows(tbl, Options{})
	assert.Equal(t, [][]string{
		{"Property ID", "Map Location", "", "", "Latitude", "Longitude"},
		{"42", "https://short.url/a", "EXTRA", "MORE", "1.5", "2.5"},
		{"43", "https://short.url/b", "", "", "", ""},
	}, rows)
}

func TestRows_DoesNotMutateTable(t *testing.T) {
	tbl := sampleTable()
	_ = Rows(tbl, Options{})
	assert.Equal(t, []string{"Property ID", "Map Location"}, tbl.Header)
	assert.Equal(t, []string{"42", "https://short.url/abc"}, tbl.Records[0].Cells)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinates.csv")
	require.NoError(t, Write(path, sampleTable(), Options{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Property ID,Map Location,Latitude,Longitude\n"+
			"42,https://short.url/abc,37.4219,-122.0840\n"+
			"43,,,\n"+
			"44,https://short.url/dead,,\n",
		string(data))

	tbl, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinates.xlsx")
	require.NoError(t, Write(path, sampleTable(), Options{Sheet: "Properties"}))

	tbl, err := Load(path, Options{Sheet: "Properties"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Property ID", "Map Location", "Latitude", "Longitude"}, tbl.Header)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, "42", tbl.Records[0].PropertyID)
	assert.Equal(t, "37.4219", tbl.Records[0].Cells[2])
	assert.Equal(t, "-122.0840", tbl.Records[0].Cells[3])
	assert.Equal(t, "44", tbl.Records[2].PropertyID)
}

func TestLoadXLSX_UnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, Write(path, sampleTable(), Options{}))

	_, err := Load(path, Options{Sheet: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWrite_PersistenceError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "out.csv")

	err := Write(path, sampleTable(), Options{})
	require.Error(t, err)

	var pErr *PersistenceError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, path, pErr.Path)
	assert.Contains(t, err.Error(), "table: write")
}
