package core

import (
	"math"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseNumber Tests
// ----------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      float64
	}{
		// Valid: integers and decimals
		{name: "positive integer", input: "123", wantValid: true, want: 123},
		{name: "zero", input: "0", wantValid: true, want: 0},
		{name: "negative integer", input: "-5", wantValid: true, want: -5},
		{name: "explicit plus", input: "+7", wantValid: true, want: 7},
		{name: "decimal", input: "19.99", wantValid: true, want: 19.99},
		{name: "leading decimal point", input: ".5", wantValid: true, want: 0.5},
		{name: "trailing decimal point", input: "99.", wantValid: true, want: 99},
		{name: "scientific notation", input: "1.5e3", wantValid: true, want: 1500},
		{name: "negative exponent", input: "25E-1", wantValid: true, want: 2.5},

		// Valid: infinities
		{name: "infinity", input: "inf", wantValid: true, want: math.Inf(1)},
		{name: "infinity spelled out", input: "Infinity", wantValid: true, want: math.Inf(1)},
		{name: "negative infinity", input: "-INF", wantValid: true, want: math.Inf(-1)},
		{name: "overflow", input: "1e400", wantValid: true, want: math.Inf(1)},

		// Valid: surrounding whitespace is ignored
		{name: "leading space", input: " 10", wantValid: true, want: 10},
		{name: "trailing tab", input: "4\t", wantValid: true, want: 4},

		// Invalid
		{name: "empty", input: "", wantValid: false},
		{name: "whitespace only", input: "   ", wantValid: false},
		{name: "letters", input: "abc", wantValid: false},
		{name: "currency symbol", input: "$10", wantValid: false},
		{name: "thousands separator", input: "1,000", wantValid: false},
		{name: "accounting negative", input: "(5)", wantValid: false},
		{name: "hex", input: "0x10", wantValid: false},
		{name: "nan text", input: "NaN", wantValid: false},
		{name: "inf suffix", input: "10inf", wantValid: false},
		{name: "embedded space", input: "1 0", wantValid: false},
		{name: "double sign", input: "--1", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.wantValid {
				t.Fatalf("ParseNumber(%q) valid = %v, want %v", tt.input, ok, tt.wantValid)
			}
			if ok && got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want Value
	}{
		{name: "numeric text", in: TextValue(" 10"), want: NumberValue(10)},
		{name: "bad text", in: TextValue("abc"), want: Missing()},
		{name: "empty text", in: TextValue(""), want: Missing()},
		{name: "missing stays missing", in: Missing(), want: Missing()},
		{name: "number passes through", in: NumberValue(-3), want: NumberValue(-3)},
		{name: "NaN number", in: NumberValue(math.NaN()), want: Missing()},
		{name: "infinite number", in: NumberValue(math.Inf(1)), want: NumberValue(math.Inf(1))},
		{name: "infinite text", in: TextValue("inf"), want: NumberValue(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToNumber(tt.in)
			if got != tt.want {
				t.Errorf("ToNumber(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCellValue(t *testing.T) {
	missing := []string{"", "NA", "N/A", "n/a", "NaN", "nan", "-nan", "NULL", "null", "None", "#N/A", "<NA>"}
	for _, raw := range missing {
		if v := CellValue(raw); !v.IsMissing() {
			t.Errorf("CellValue(%q) = %+v, want missing", raw, v)
		}
	}

	text := []string{" ", " NA", "none", "Shoes", "0", "-"}
	for _, raw := range text {
		v := CellValue(raw)
		if v.Kind != KindText || v.Text != raw {
			t.Errorf("CellValue(%q) = %+v, want text %q", raw, v, raw)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{2.5, "2.5"},
		{0.001, "0.001"},
		{1500, "1500"},
		{1e21, "1000000000000000000000"},
		{math.Copysign(0, -1), "0"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	if got := Missing().String(); got != "" {
		t.Errorf("Missing().String() = %q, want empty", got)
	}
	if got := TextValue(" x ").String(); got != " x " {
		t.Errorf("TextValue.String() = %q, want %q", got, " x ")
	}
	if got := NumberValue(5).String(); got != "5" {
		t.Errorf("NumberValue(5).String() = %q, want %q", got, "5")
	}
}
