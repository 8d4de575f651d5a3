package core

// validation.go checks headers and filters rows before output.
//
// Validation happens at two levels:
//  1. Header validation: schema columns are present exactly once
//  2. Row validation: every numeric column must hold a number >= 0
//
// Rows failing row validation are dropped, not reported as errors.

import (
	"fmt"
	"strings"
)

// ValidateHeaders checks that every required column is present in the
// normalized header and that no schema column appears twice. Other columns
// pass through even when their labels repeat.
func ValidateHeaders(columns []string, specs []FieldSpec) error {
	inSchema := make(map[string]bool, len(specs))
	for _, spec := range specs {
		inSchema[spec.Name] = true
	}

	seen := make(map[string]bool, len(columns))
	var dups []string
	for _, c := range columns {
		if seen[c] && inSchema[c] {
			dups = append(dups, c)
		}
		seen[c] = true
	}
	if len(dups) > 0 {
		return fmt.Errorf("duplicate column after normalization: %s", strings.Join(dups, ", "))
	}

	var missing []string
	for _, spec := range specs {
		if spec.Required && !seen[spec.Name] {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required column: %s", strings.Join(missing, ", "))
	}
	return nil
}

// NumericRule is the validity rule of a numeric column:
// the cell parses as a number and that number is not negative. inf passes.
type NumericRule struct {
	Column string
}

// Coerce converts the column's cells to numbers in place. Cells that do
// not parse become missing.
func (r NumericRule) Coerce(t *Table) error {
	return t.MapColumn(r.Column, ToNumber)
}

// Check reports whether a coerced cell passes the rule, and if not, why.
func (r NumericRule) Check(v Value) (DropReason, bool) {
	if v.Kind != KindNumber {
		return DropMissing, false
	}
	if v.Num < 0 {
		return DropNegative, false
	}
	return "", true
}

// ApplyRules coerces every rule's column, then drops each row that fails any
// rule. Surviving rows keep their relative order.
//
// A row with a missing value in any rule column counts as DropMissing even if
// another column is negative.
func ApplyRules(t *Table, rules []NumericRule) (FilterStats, error) {
	stats := FilterStats{
		RowsIn:  t.Len(),
		Dropped: make(map[DropReason]int),
	}

	idx := make([]int, len(rules))
	for i, rule := range rules {
		if err := rule.Coerce(t); err != nil {
			return stats, err
		}
		idx[i], _ = t.ColumnIndex(rule.Column)
	}

	t.Filter(func(row []Value) bool {
		var reason DropReason
		for i, rule := range rules {
			r, ok := rule.Check(row[idx[i]])
			if ok {
				continue
			}
			if r == DropMissing {
				reason = DropMissing
				break
			}
			reason = r
		}
		if reason != "" {
			stats.Dropped[reason]++
			return false
		}
		return true
	})

	stats.RowsOut = t.Len()
	return stats, nil
}
