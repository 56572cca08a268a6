package export

import "fmt"

// Column describes one exported field.
type Column struct {
	Key   string
	Title string
	// Width is the PDF column width in millimetres; zero shares the remaining space.
	Width float64
}

// Table is tabular export content keyed by Column.Key.
type Table struct {
	Title   string
	Columns []Column
	Rows    []map[string]string
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("export requires at least one column")
	}
	return nil
}

func (t Table) record(row map[string]string) []string {
	record := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		record[i] = row[col.Key]
	}
	return record
}
