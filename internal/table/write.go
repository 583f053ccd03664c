package table

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/maplink/internal/model"
)

// Write serializes t to path with latitude and longitude columns added.
// Existing columns with the same names are overwritten in place; otherwise
// the two columns are appended. No index column is written. Failures are
// returned as *PersistenceError.
func Write(path string, t *model.Table, opts Options) error {
	opts = opts.withDefaults()
	rows := Rows(t, opts)

	var err error
	if isXLSX(path) {
		err = writeXLSX(path, opts.Sheet, rows)
	} else {
		err = writeCSV(path, rows)
	}
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}

// Rows renders t as output rows, header first. Rows longer than the header
// keep their extra cells under blank header names, and any appended
// coordinate columns start after the widest row.
func Rows(t *model.Table, opts Options) [][]string {
	opts = opts.withDefaults()

	width := len(t.Header)
	for i := range t.Records {
		width = max(width, len(t.Records[i].Cells))
	}
	header := make([]string, width)
	copy(header, t.Header)
	latCol := columnIndex(header, opts.LatitudeColumn)
	if latCol < 0 {
		header = append(header, opts.LatitudeColumn)
		latCol = len(header) - 1
	}
	lngCol := columnIndex(header, opts.LongitudeColumn)
	if lngCol < 0 {
		header = append(header, opts.LongitudeColumn)
		lngCol = len(header) - 1
	}

	rows := make([][]string, 0, len(t.Records)+1)
	rows = append(rows, header)
	for i := range t.Records {
		rec := &t.Records[i]
		cells := make([]string, len(header))
		copy(cells, rec.Cells)
		cells[latCol] = rec.Latitude
		cells[lngCol] = rec.Longitude
		rows = append(rows, cells)
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "table: create csv")
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return eris.Wrap(err, "table: write csv")
	}

	if err := f.Close(); err != nil {
		return eris.Wrap(err, "table: close csv")
	}
	return nil
}

func writeXLSX(path, sheetName string, rows [][]string) error {
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "table: add sheet")
	}

	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "table: save xlsx")
	}
	return nil
}
