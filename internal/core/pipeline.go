package core

// pipeline.go runs a complete cleaning pass:
//
//  1. Load: read the raw table (Loader)
//  2. Normalize: canonical column names, trimmed text columns
//  3. Validate: coerce numeric columns and drop invalid rows
//  4. Write: serialize the result (Writer)
//
// Loading and writing are collaborators so the run can be exercised against
// in-memory tables, HTTP bodies, or files on disk.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/salesclean/internal/logging"
	"github.com/google/uuid"
)

// Loader reads a raw table from a location.
type Loader interface {
	Load(ctx context.Context, path string) (*Table, error)
}

// Writer stores a cleaned table at a location.
type Writer interface {
	Write(ctx context.Context, path string, t *Table) error
}

// Options controls how a table is cleaned.
type Options struct {
	// Specs lists the columns to clean. Defaults to SalesFieldSpecs.
	Specs []FieldSpec

	// LegacyMissingText renders missing text cells as "nan" instead of "".
	LegacyMissingText bool
}

func (o Options) specs() []FieldSpec {
	if len(o.Specs) == 0 {
		return SalesFieldSpecs
	}
	return o.Specs
}

// Clean normalizes and filters t in place.
//
// Column names are canonicalized first, so required columns are matched
// regardless of case and surrounding whitespace. A missing or duplicated
// required column is a ParseError. Dropped rows are counted in the returned
// stats, never reported as errors.
func Clean(t *Table, opts Options) (FilterStats, error) {
	specs := opts.specs()

	CleanColumnNames(t)

	if err := ValidateHeaders(t.Columns, specs); err != nil {
		return FilterStats{RowsIn: t.Len()}, &ParseError{Err: err}
	}

	if err := TrimTextColumns(t, opts.LegacyMissingText, textColumns(specs)...); err != nil {
		return FilterStats{RowsIn: t.Len()}, &ParseError{Err: err}
	}

	stats, err := ApplyRules(t, numericRules(specs))
	if err != nil {
		return stats, &ParseError{Err: err}
	}
	return stats, nil
}

// Cleaner runs the load, clean, write pipeline once per call to Run.
type Cleaner struct {
	loader  Loader
	writer  Writer
	notices io.Writer
	opts    Options
}

// NewCleaner creates a Cleaner. Progress notices are written to notices;
// pass io.Discard to suppress them.
func NewCleaner(loader Loader, writer Writer, notices io.Writer, opts Options) *Cleaner {
	if notices == nil {
		notices = io.Discard
	}
	return &Cleaner{
		loader:  loader,
		writer:  writer,
		notices: notices,
		opts:    opts,
	}
}

// Run loads inputPath, cleans it and writes the result to outputPath.
//
// It prints "Loading: <input>" before loading and
// "Saved cleaned file to: <output>" after a successful write.
// Any failure aborts the run; no partial result is returned.
func (c *Cleaner) Run(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	logger := logging.FromContext(ctx)

	fmt.Fprintln(c.notices, "Loading:", inputPath)

	t, err := c.loader.Load(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("table loaded", "path", inputPath, "rows", t.Len(), "columns", len(t.Columns))

	stats, err := Clean(t, c.opts)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = inputPath
		}
		return nil, err
	}
	logger.Debug("table cleaned",
		"rows_in", stats.RowsIn,
		"rows_out", stats.RowsOut,
		"dropped_missing", stats.Dropped[DropMissing],
		"dropped_negative", stats.Dropped[DropNegative],
	)

	if err := c.writer.Write(ctx, outputPath, t); err != nil {
		return nil, err
	}

	fmt.Fprintln(c.notices, "Saved cleaned file to:", outputPath)

	return &Result{
		RunID:      runID,
		InputPath:  inputPath,
		OutputPath: outputPath,
		Stats:      stats,
		Duration:   time.Since(start),
		Table:      t,
	}, nil
}
