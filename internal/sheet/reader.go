package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mkravets/dicthub/pkg/dicthub"
)

// Read loads a spreadsheet by extension: .xlsx (and .xlsm) via excelize,
// .csv via encoding/csv. sheetName selects a worksheet for Excel inputs and
// is ignored for CSV; empty means the workbook's first sheet.
//
// A missing file is a distinct, reportable condition (dicthub.ErrInputNotFound)
// so callers can abort cleanly before any output exists.
func Read(path, sheetName string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", path, dicthub.ErrInputNotFound)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	default:
		return ReadXLSX(path, sheetName)
	}
}

// ReadXLSX loads one worksheet of an Excel workbook. The first row is the
// header; every following row becomes a data Row.
func ReadXLSX(path, sheetName string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q from %s: %w", sheetName, path, err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}
	return NewTable(rows[0], rows[1:]), nil
}

// ReadCSV loads a CSV file with the same header-row convention.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Data dictionaries exported by hand are ragged more often than not.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return NewTable(records[0], records[1:]), nil
}
