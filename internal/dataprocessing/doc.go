// Package dataprocessing loads, cleans and inspects the medical appointment
// no-show dataset.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Parser: Reads a delimited text file or an Excel workbook into a Dataset
// 2. Dataset: An ordered, in-memory table of typed cells
// 3. Processor: Cleaning transformations applied in place on a Dataset
// 4. Summarizer: Shape, per-column kinds and null counts, and a head preview
//
// # Usage
//
//	ds, err := dataprocessing.ParseFile("KaggleV2-May-2016.csv")
//	if err != nil {
//	    return err
//	}
//	ds.Deduplicate()
//	if _, err := ds.NormalizeTimestamps(domain.TimestampColumns, domain.TimestampPolicyFail); err != nil {
//	    return err
//	}
//
// # Cell Values
//
// Cells hold nil (missing), int64, float64, string or time.Time. Timestamp
// columns are loaded as text and become UTC time.Time values only after
// NormalizeTimestamps.
//
// # Error Handling
//
// Failures are returned as *errors.AppError: NOT_FOUND when the source path
// cannot be read and PARSING when its content or a field is malformed. Parsing
// errors carry line and column context.
package dataprocessing
