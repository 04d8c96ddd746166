// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides appointment fixtures (CSV and workbook
// sources written to a test's temp dir) and a slog handler that captures
// records for assertions. It must not import any package that uses it.
package shared
