// Package files locates the survey workbook to process.
//
// The configured input may be a workbook or a directory of exports; for a
// directory the most recently modified workbook is used and Office lock
// files are ignored.
//
// Example usage:
//
//	discovery := files.NewDiscovery(workingDir)
//	input, err := discovery.ResolveInput("exports")
package files
