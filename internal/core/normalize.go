package core

import "strings"

// LegacyMissingText is what missing text cells became in the original output.
const LegacyMissingText = "nan"

// CleanColumnName canonicalizes a column label: surrounding whitespace is
// removed, letters are lowercased and each space becomes an underscore.
// Applying it to an already clean label is a no-op.
func CleanColumnName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, " ", "_")
}

// CleanColumnNames canonicalizes every column label of t in place.
func CleanColumnNames(t *Table) *Table {
	t.RenameColumns(CleanColumnName)
	return t
}

// TrimText converts a cell to its trimmed string form. Missing cells become
// missingText.
func TrimText(v Value, missingText string) Value {
	if v.IsMissing() {
		return TextValue(missingText)
	}
	return TextValue(strings.TrimSpace(v.String()))
}

// TrimTextColumns trims surrounding whitespace from every cell of the named
// columns. Missing cells become the empty string, or LegacyMissingText when
// legacy is set.
func TrimTextColumns(t *Table, legacy bool, columns ...string) error {
	missingText := ""
	if legacy {
		missingText = LegacyMissingText
	}
	for _, col := range columns {
		if err := t.MapColumn(col, func(v Value) Value {
			return TrimText(v, missingText)
		}); err != nil {
			return err
		}
	}
	return nil
}
