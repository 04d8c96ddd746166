// Package exporter writes cleaned datasets to disk.
//
// CSVWriter streams delimited text with an optional UTF-8 BOM for Excel.
// XLSXWriter writes a single-sheet workbook with excelize. Exporter fans a
// dataset out to several targets at once:
//
//	exp := exporter.NewExporter(paths, logger)
//	err := exp.Export(ctx, ds, []exporter.Target{
//	    {Path: "cleaned_KaggleV2-May-2016.csv"},
//	    {Path: "cleaned.xlsx"},
//	})
//
// Values are rendered with dataprocessing.FormatValue so an exported file
// loads back into an identical dataset.
package exporter
