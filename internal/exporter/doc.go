// Package exporter writes the report tables of a pipeline run.
//
// Tables are built from the run result by DisqualifiedTable,
// ParticipationTable and PresentationTable. Each table is written to its
// own file in the output directory, as a workbook (XLSXWriter) or as UTF-8
// CSV with a BOM (CSVWriter). Missing numbers are written as empty cells.
//
// Example usage:
//
//	w, err := exporter.NewResultWriter(paths, logger)
//	if err != nil {
//	    return err
//	}
//	files, err := w.Write(ctx, result)
package exporter
