// Package pipeline runs the survey cleaning steps of internal/dataprocessing
// in order and collects their outputs into a Result.
//
// Every stage gets its own span and a duration sample on the
// evalmarks_stage_duration_seconds histogram. The run context is checked
// between stages, so cancelling it stops the run before the next stage
// starts. Nothing is written to disk here; see internal/exporter.
package pipeline
