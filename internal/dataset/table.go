package dataset

import "strings"

// Table is a decoded CSV file: a header row and its data rows.
type Table struct {
	Name     string
	Encoding string
	Header   []string
	Rows     [][]string
	index    map[string]int
}

func newTable(name, encoding string, header []string, rows [][]string) *Table {
	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		header[i] = col
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	return &Table{
		Name:     name,
		Encoding: encoding,
		Header:   header,
		Rows:     rows,
		index:    index,
	}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Require returns a SchemaError for the first column that is absent.
func (t *Table) Require(columns ...string) error {
	for _, col := range columns {
		if !t.Has(col) {
			return &SchemaError{Table: t.Name, Column: col, Reason: "missing required column"}
		}
	}
	return nil
}

// Raw returns the untrimmed cell, or "" for short rows and unknown columns.
func (t *Table) Raw(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Value returns the trimmed cell.
func (t *Table) Value(row []string, column string) string {
	return strings.TrimSpace(t.Raw(row, column))
}
