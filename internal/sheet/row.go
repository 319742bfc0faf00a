// Package sheet reads tabular data dictionaries from spreadsheet files into
// a uniform row model.
//
// The model mirrors how the generators consume spreadsheets elsewhere: cells
// are either null (empty) or carry a string value, and coercing a null cell
// to text yields the literal "nan". That literal is load-bearing: previously
// ingested records contain it, and silently changing it would churn the
// catalog. See CoercedString.
package sheet

// Cell is a single spreadsheet cell. The zero value is a null cell.
type Cell struct {
	value string
	valid bool
}

// NewCell returns a non-null cell with the given value. An empty string is
// a null cell: spreadsheet readers cannot distinguish a blank cell from an
// empty one.
func NewCell(value string) Cell {
	if value == "" {
		return Cell{}
	}
	return Cell{value: value, valid: true}
}

// IsNull reports whether the cell is empty or absent.
func (c Cell) IsNull() bool { return !c.valid }

// String returns the raw cell value, empty for null cells.
func (c Cell) String() string { return c.value }

// CoercedString returns the cell value coerced to text the way the original
// pipeline did: null cells become the literal "nan". Callers that do not
// want the placeholder must check IsNull first.
func (c Cell) CoercedString() string {
	if !c.valid {
		return "nan"
	}
	return c.value
}

// Row is one line of a data dictionary: an ordered mapping from column name
// to cell. Rows are transient; builders consume them and keep nothing.
type Row struct {
	columns map[string]int
	cells   []Cell

	// Number is the 1-based data row number, used in skip notices.
	Number int
}

// Cell returns the cell for a column. An unknown column yields a null cell.
func (r Row) Cell(column string) Cell {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.cells) {
		return Cell{}
	}
	return r.cells[idx]
}

// NotNull reports whether the column exists on this row with a non-null value.
func (r Row) NotNull(column string) bool {
	return !r.Cell(column).IsNull()
}

// CoerceDefault coerces a column to text with absent-column semantics: a
// column missing from the sheet yields def, while a present-but-null cell
// still yields the "nan" placeholder.
func (r Row) CoerceDefault(column, def string) string {
	if _, ok := r.columns[column]; !ok {
		return def
	}
	return r.Cell(column).CoercedString()
}

// Table is a fully loaded sheet: the header and its data rows in input order.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header includes the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnValues returns every non-null value of a column, in row order.
// Used to collect the full set of term names before record assembly.
func (t *Table) ColumnValues(name string) []string {
	var values []string
	for _, row := range t.Rows {
		if cell := row.Cell(name); !cell.IsNull() {
			values = append(values, cell.String())
		}
	}
	return values
}

// NewTable assembles a Table from a header and raw cell rows. Data rows may
// be shorter than the header (readers trim trailing blanks); missing cells
// are null.
func NewTable(header []string, records [][]string) *Table {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	t := &Table{Columns: header}
	for i, record := range records {
		cells := make([]Cell, len(record))
		for j, v := range record {
			cells[j] = NewCell(v)
		}
		t.Rows = append(t.Rows, Row{
			columns: columns,
			cells:   cells,
			Number:  i + 1,
		})
	}
	return t
}
