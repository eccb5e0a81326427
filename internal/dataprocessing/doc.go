// Package dataprocessing turns the raw presentation-evaluation survey export
// into cleaned responses and the two aggregated mark tables.
//
// # Architecture
//
// The package is organized as independent steps, each taking a slice of
// responses and returning a new one:
//
// 1. Parser: reads the 12-column workbook into domain.Response values
// 2. Normalize: drops exact duplicates and the excluded section/topic pair
// 3. Corrections: applies the ordered list of manual field patches
// 4. Validity: splits responses into valid and disqualified sets
// 5. Scores: converts evaluation text to points
// 6. Marks: participation and presentation aggregation
//
// # Usage
//
//	responses, err := dataprocessing.ParseFile("evaluations.xlsx", "")
//	if err != nil {
//	    return err
//	}
//	responses, _ = dataprocessing.DropExactDuplicates(responses)
//	responses, _ = dataprocessing.DropExcluded(responses, dataprocessing.DefaultExclusions)
//	responses, _ = dataprocessing.ApplyCorrections(responses, dataprocessing.DefaultCorrections)
//	valid, disqualified := dataprocessing.SplitByValidity(responses, dataprocessing.DoorRange{Min: 1, Max: 60})
//
// The internal/pipeline package runs these steps in order with tracing and
// run metrics.
//
// # Missing values
//
// Cells that cannot be read as numbers become domain.Missing rather than
// errors. Only an unreadable timestamp aborts parsing.
package dataprocessing
