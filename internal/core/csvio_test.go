package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeCSV(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		wantColumns []string
		wantRows    [][]Value
	}{
		{
			name:        "simple",
			input:       []byte("ProdName,Price\nShoes,10\n"),
			wantColumns: []string{"ProdName", "Price"},
			wantRows:    [][]Value{{TextValue("Shoes"), TextValue("10")}},
		},
		{
			name:        "BOM stripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, []byte("Price\n1\n")...),
			wantColumns: []string{"Price"},
			wantRows:    [][]Value{{TextValue("1")}},
		},
		{
			name:        "invalid UTF-8 replaced",
			input:       []byte{'N', 'a', 'm', 'e', '\n', 'h', 0xFF, 'i', '\n'},
			wantColumns: []string{"Name"},
			wantRows:    [][]Value{{TextValue("h\uFFFDi")}},
		},
		{
			name:        "raw labels and whitespace kept",
			input:       []byte(" Product Name ,Qty\n Shoes ,\" 5\"\n"),
			wantColumns: []string{" Product Name ", "Qty"},
			wantRows:    [][]Value{{TextValue(" Shoes "), TextValue(" 5")}},
		},
		{
			name:        "missing tokens",
			input:       []byte("a,b,c\n,NA,x\n"),
			wantColumns: []string{"a", "b", "c"},
			wantRows:    [][]Value{{Missing(), Missing(), TextValue("x")}},
		},
		{
			name:        "short row padded",
			input:       []byte("a,b,c\n1\n"),
			wantColumns: []string{"a", "b", "c"},
			wantRows:    [][]Value{{TextValue("1"), Missing(), Missing()}},
		},
		{
			name:        "blank lines skipped",
			input:       []byte("a\n\n1\n\n2\n"),
			wantColumns: []string{"a"},
			wantRows:    [][]Value{{TextValue("1")}, {TextValue("2")}},
		},
		{
			name:        "header only",
			input:       []byte("a,b\n"),
			wantColumns: []string{"a", "b"},
			wantRows:    nil,
		},
		{
			name:        "quote inside unquoted field kept",
			input:       []byte("prodname,category,price,qty\n12\" Pizza,Food,5,1\nHat,Misc,2,1\n"),
			wantColumns: []string{"prodname", "category", "price", "qty"},
			wantRows: [][]Value{
				{TextValue("12\" Pizza"), TextValue("Food"), TextValue("5"), TextValue("1")},
				{TextValue("Hat"), TextValue("Misc"), TextValue("2"), TextValue("1")},
			},
		},
		{
			name:        "quoted comma and newline",
			input:       []byte("name,note\n\"Hat, red\",\"two\nlines\"\n"),
			wantColumns: []string{"name", "note"},
			wantRows:    [][]Value{{TextValue("Hat, red"), TextValue("two\nlines")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := DecodeCSV(bytes.NewReader(tt.input))
			if err != nil {
				t.Fatalf("DecodeCSV() error = %v", err)
			}
			if strings.Join(tbl.Columns, "|") != strings.Join(tt.wantColumns, "|") {
				t.Errorf("Columns = %q, want %q", tbl.Columns, tt.wantColumns)
			}
			if tbl.Len() != len(tt.wantRows) {
				t.Fatalf("Len() = %d, want %d", tbl.Len(), len(tt.wantRows))
			}
			for i, row := range tt.wantRows {
				for j, want := range row {
					if got := tbl.Rows[i][j]; got != want {
						t.Errorf("Rows[%d][%d] = %+v, want %+v", i, j, got, want)
					}
				}
			}
		})
	}
}

func TestDecodeCSV_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantErr  error
	}{
		{name: "empty input", input: "", wantErr: ErrEmptyFile},
		{name: "only blank lines", input: "\n\n", wantErr: ErrEmptyFile},
		{name: "too many fields", input: "a,b\n1,2\n1,2,3\n", wantLine: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCSV(strings.NewReader(tt.input))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("DecodeCSV() error = %v, want *ParseError", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapping %v", err, tt.wantErr)
			}
			if tt.wantLine != 0 && pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", pe.Line, tt.wantLine)
			}
		})
	}
}

func TestEncodeCSV(t *testing.T) {
	tbl := NewTable([]string{"prodname", "category", "price", "qty"})
	tbl.Rows = [][]Value{
		{TextValue("Shoes"), TextValue("Footwear"), NumberValue(10), NumberValue(5)},
		{TextValue("Hat, red"), TextValue(""), NumberValue(2.5), NumberValue(1)},
		{TextValue("Scarf"), Missing(), NumberValue(0), NumberValue(3)},
	}

	var buf bytes.Buffer
	if err := EncodeCSV(&buf, tbl); err != nil {
		t.Fatalf("EncodeCSV() error = %v", err)
	}

	want := "prodname,category,price,qty\n" +
		"Shoes,Footwear,10,5\n" +
		"\"Hat, red\",,2.5,1\n" +
		"Scarf,,0,3\n"
	if buf.String() != want {
		t.Errorf("EncodeCSV() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestCSVLoader_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := CSVLoader{}.Load(context.Background(), path)

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Load() error = %v, want *NotFoundError", err)
	}
	if nf.Path != path {
		t.Errorf("Path = %q, want %q", nf.Path, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should unwrap to os.ErrNotExist: %v", err)
	}
}

func TestCSVLoader_ParseErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := CSVLoader{}.Load(context.Background(), path)

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("Path = %q, want %q", pe.Path, path)
	}
}

func TestCSVWriter_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "out.csv")

	err := CSVWriter{}.Write(context.Background(), path, NewTable([]string{"a"}))

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Write() error = %v, want *IOError", err)
	}
	if ioErr.Op != "create" {
		t.Errorf("Op = %q, want create", ioErr.Op)
	}
}

func TestCSVFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")

	if err := os.WriteFile(out, []byte("stale content\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(in, []byte("a,b\nx,1\ny,\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	tbl, err := CSVLoader{}.Load(ctx, in)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := (CSVWriter{}).Write(ctx, out, tbl); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a,b\nx,1\ny,\n" {
		t.Errorf("output = %q, want overwritten copy of input", got)
	}
}
