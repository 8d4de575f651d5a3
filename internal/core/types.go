// Package core provides the business logic for cleaning sales CSV data.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"fmt"
	"time"
)

// FieldType represents the expected data type for a CSV field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
)

// FieldSpec defines the cleaning rule for a single CSV column.
type FieldSpec struct {
	Name     string    // Normalized column name (lowercase, underscores)
	Type     FieldType // Expected data type
	Required bool      // Column must exist in the CSV header
}

// Kind tells which variant a Value holds.
type Kind uint8

const (
	KindMissing Kind = iota
	KindText
	KindNumber
)

// Value is a single table cell: missing, text, or a number.
// The zero Value is missing.
type Value struct {
	Kind Kind
	Text string
	Num  float64
}

// Missing returns the missing marker.
func Missing() Value { return Value{} }

// TextValue wraps s as a text cell.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// NumberValue wraps f as a numeric cell.
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// IsMissing reports whether v is the missing marker.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// String renders the cell the way it is written to CSV.
// Missing cells render as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return FormatNumber(v.Num)
	default:
		return ""
	}
}

// Table is an ordered sequence of rows with named columns.
// Every row holds exactly one Value per column.
type Table struct {
	Columns []string
	Rows    [][]Value
}

// NewTable creates an empty table with the given column labels.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// RenameColumns replaces every column label with fn(label).
func (t *Table) RenameColumns(fn func(string) string) {
	for i, c := range t.Columns {
		t.Columns[i] = fn(c)
	}
}

// MapColumn replaces every cell of the named column with fn(cell).
func (t *Table) MapColumn(name string, fn func(Value) Value) error {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return fmt.Errorf("column not found: %q", name)
	}
	for _, row := range t.Rows {
		row[idx] = fn(row[idx])
	}
	return nil
}

// Filter keeps the rows for which keep returns true, preserving their
// relative order. It returns the number of rows removed.
func (t *Table) Filter(keep func(row []Value) bool) int {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	removed := len(t.Rows) - len(kept)
	for i := len(kept); i < len(t.Rows); i++ {
		t.Rows[i] = nil
	}
	t.Rows = kept
	return removed
}

// DropReason explains why a row was excluded from the output.
type DropReason string

const (
	DropMissing  DropReason = "missing"
	DropNegative DropReason = "negative"
)

// FilterStats summarizes the row filter of one cleaning run.
type FilterStats struct {
	RowsIn  int
	RowsOut int
	Dropped map[DropReason]int
}

// Result describes a completed cleaning run.
type Result struct {
	RunID      string
	InputPath  string
	OutputPath string
	Stats      FilterStats
	Duration   time.Duration

	// Table is the cleaned table, kept so callers can archive it.
	Table *Table
}
