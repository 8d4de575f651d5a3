package core

import "testing"

func TestCleanColumnName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" Product Name ", "product_name"},
		{"Price", "price"},
		{"QTY", "qty"},
		{"  ProdName", "prodname"},
		{"Date Sold", "date_sold"},
		{"date_sold", "date_sold"},
		{"a  b", "a__b"},
		{"", ""},
		{"\tCategory\n", "category"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanColumnName(tt.input); got != tt.want {
				t.Errorf("CleanColumnName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanColumnName_Idempotent(t *testing.T) {
	inputs := []string{" Product Name ", "PRICE", "qty", "Date Sold ", "x y z", "  ", "Ünit Cost"}
	for _, in := range inputs {
		once := CleanColumnName(in)
		twice := CleanColumnName(once)
		if once != twice {
			t.Errorf("CleanColumnName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCleanColumnNames(t *testing.T) {
	tbl := NewTable([]string{" ProdName", "Category ", "Price", " QTY ", "Date Sold"})
	CleanColumnNames(tbl)

	want := []string{"prodname", "category", "price", "qty", "date_sold"}
	for i, c := range tbl.Columns {
		if c != want[i] {
			t.Errorf("Columns[%d] = %q, want %q", i, c, want[i])
		}
	}
}

func TestTrimTextColumns(t *testing.T) {
	newTable := func() *Table {
		tbl := NewTable([]string{"prodname", "category", "price"})
		tbl.Rows = [][]Value{
			{TextValue(" Shoes "), TextValue("Footwear "), TextValue(" 10")},
			{Missing(), TextValue("\tHats"), TextValue("3")},
		}
		return tbl
	}

	t.Run("missing becomes empty", func(t *testing.T) {
		tbl := newTable()
		if err := TrimTextColumns(tbl, false, "prodname", "category"); err != nil {
			t.Fatalf("TrimTextColumns() error = %v", err)
		}

		if got := tbl.Rows[0][0]; got != TextValue("Shoes") {
			t.Errorf("prodname = %+v, want Shoes", got)
		}
		if got := tbl.Rows[0][1]; got != TextValue("Footwear") {
			t.Errorf("category = %+v, want Footwear", got)
		}
		if got := tbl.Rows[1][0]; got != TextValue("") {
			t.Errorf("missing prodname = %+v, want empty text", got)
		}
		if got := tbl.Rows[1][1]; got != TextValue("Hats") {
			t.Errorf("category = %+v, want Hats", got)
		}
		// Untouched column keeps its whitespace
		if got := tbl.Rows[0][2]; got != TextValue(" 10") {
			t.Errorf("price = %+v, want untouched", got)
		}
	})

	t.Run("legacy missing text", func(t *testing.T) {
		tbl := newTable()
		if err := TrimTextColumns(tbl, true, "prodname"); err != nil {
			t.Fatalf("TrimTextColumns() error = %v", err)
		}
		if got := tbl.Rows[1][0]; got != TextValue(LegacyMissingText) {
			t.Errorf("missing prodname = %+v, want %q", got, LegacyMissingText)
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		tbl := newTable()
		if err := TrimTextColumns(tbl, false, "brand"); err == nil {
			t.Fatal("TrimTextColumns() expected error for unknown column")
		}
	})
}
