package core

// csvio.go reads and writes Tables as comma-separated text.
//
// Input is decoded through golang.org/x/text so that a UTF-8 byte order mark
// is dropped and invalid UTF-8 sequences are replaced with U+FFFD before the
// CSV parser sees them. Windows exports routinely carry both.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewSanitizingReader strips a leading BOM and repairs invalid UTF-8.
func NewSanitizingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// DecodeCSV parses a header line followed by data rows.
//
// Raw labels and cells are kept as found; missing-value tokens load as
// missing. A quote inside an unquoted field is kept as a literal character.
// Rows shorter than the header are padded with missing cells, rows longer
// than the header are a ParseError. Blank lines are skipped.
func DecodeCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(NewSanitizingReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true // 12" Pizza keeps its quote

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: ErrEmptyFile}
	}
	if err != nil {
		return nil, csvParseError(err)
	}

	t := NewTable(header)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvParseError(err)
		}

		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(header), len(record)),
			}
		}

		row := make([]Value, len(header))
		for i, cell := range record {
			row[i] = CellValue(cell)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// csvParseError converts an encoding/csv error to a ParseError.
func csvParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}

// EncodeCSV writes a header line of column names followed by one line per
// row. No index column is written.
func EncodeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = v.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVLoader loads Tables from CSV files on disk.
type CSVLoader struct{}

// Load reads the CSV file at path.
func (CSVLoader) Load(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	t, err := DecodeCSV(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return t, nil
}

// CSVWriter writes Tables to CSV files on disk, replacing existing files.
// The parent directory must already exist.
type CSVWriter struct{}

// Write serializes t to path.
func (CSVWriter) Write(ctx context.Context, path string, t *Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	if err := EncodeCSV(f, t); err != nil {
		f.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}
