package table

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/maplink/internal/model"
)

// Load reads the whole table at path and converts each row into a
// model.Record. It returns a *ConfigurationError when the property-id or
// map-URL column is absent; no partial table is ever returned.
func Load(path string, opts Options) (*model.Table, error) {
	opts = opts.withDefaults()

	var (
		rows [][]string
		err  error
	)
	if isXLSX(path) {
		rows, err = readXLSX(path, opts.Sheet)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
		rows = rows[1:]
	}

	idCol := columnIndex(header, opts.PropertyIDColumn)
	urlCol := columnIndex(header, opts.MapURLColumn)

	var missing []string
	if idCol < 0 {
		missing = append(missing, opts.PropertyIDColumn)
	}
	if urlCol < 0 {
		missing = append(missing, opts.MapURLColumn)
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Path: path, Missing: missing}
	}

	nulls := make(map[string]struct{}, len(opts.NullValues))
	for _, v := range opts.NullValues {
		nulls[v] = struct{}{}
	}

	t := &model.Table{
		Header:        header,
		Records:       make([]model.Record, 0, len(rows)),
		PropertyIDCol: idCol,
		MapURLCol:     urlCol,
	}
	for i, row := range rows {
		cells := pad(row, len(header))
		t.Records = append(t.Records, model.Record{
			Line:       i + 1,
			PropertyID: strings.TrimSpace(cells[idCol]),
			MapURL:     nullable(cells[urlCol], nulls),
			Status:     model.RowStatusPending,
			Cells:      cells,
		})
	}

	return t, nil
}

// nullable trims v and returns "" when it is one of the null markers.
func nullable(v string, nulls map[string]struct{}) string {
	v = strings.TrimSpace(v)
	if _, ok := nulls[v]; ok {
		return ""
	}
	return v
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "table: open csv")
	}
	defer f.Close() //nolint:errcheck

	// Spreadsheet exports often start with a byte order mark.
	var r io.Reader = transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "table: read csv")
	}
	return records, nil
}

func readXLSX(path, sheetName string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "table: open xlsx")
	}

	var sheet *xlsx.Sheet
	if sheetName != "" {
		s, ok := f.Sheet[sheetName]
		if !ok {
			return nil, eris.Errorf("table: sheet %q not found", sheetName)
		}
		sheet = s
	} else {
		if len(f.Sheets) == 0 {
			return nil, eris.New("table: xlsx has no sheets")
		}
		sheet = f.Sheets[0]
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		blank := true
		for j, cell := range row.Cells {
			cells[j] = cell.String()
			if strings.TrimSpace(cells[j]) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
