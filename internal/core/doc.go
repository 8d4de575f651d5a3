// Package core provides the business logic for cleaning sales CSV data.
//
// This package holds all domain logic independent of any UI or transport
// layer. The batch command, the HTTP service and tests use it unchanged.
//
// # Pipeline
//
// A [Cleaner] runs one linear pass per call to [Cleaner.Run]:
//
//	cleaner := core.NewCleaner(core.CSVLoader{}, core.CSVWriter{}, os.Stdout, core.Options{})
//	result, err := cleaner.Run(ctx, core.DefaultInputPath, core.DefaultOutputPath)
//
// The [Loader] and [Writer] are collaborators; [Clean] is the pure
// transformation between them:
//
//  1. Column labels are trimmed, lowercased and have spaces replaced by "_"
//  2. The prodname and category cells are converted to trimmed strings
//  3. The price and qty cells are coerced to numbers; unparsable cells become missing
//  4. Rows with a missing or negative price or qty are dropped, order preserved
//
// The columns acted on are declared as [FieldSpec] values in [SalesFieldSpecs].
// Every numeric column is checked by the same [NumericRule].
//
// # Error Handling
//
// Fatal conditions are typed: [NotFoundError] for a missing input,
// [ParseError] for malformed CSV or a missing required column, and [IOError]
// for an unwritable output. Dropped rows are not errors.
//
// Technical errors are mapped to user-friendly messages using [MapError].
package core
