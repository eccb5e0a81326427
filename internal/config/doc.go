// Package config provides centralized configuration management for evalmarks.
// It handles loading configuration from multiple sources, validation, and
// resolution of the input and report paths for a run.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file (evalmarks.yaml, configs/evalmarks.yaml or $EVALMARKS_CONFIG_FILE)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern EVALMARKS_* for namespacing:
//
//	EVALMARKS_PATHS_INPUT_FILE=responses.xlsx
//	EVALMARKS_PATHS_OUTPUT_DIR=results
//	EVALMARKS_PATHS_FORMAT=csv
//	EVALMARKS_LOGGING_LEVEL=debug
//	EVALMARKS_MARKS_BONUS_SECTION="Section A04, 2-3 pm on Monday and Wednesday"
//	EVALMARKS_TELEMETRY_TRACING=true
//
// # Defaults
//
// With no file and no environment the run reads
// "Case Presentation Evaluation data - BUEC 420.xlsx" from the working
// directory and writes three xlsx reports into results/.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.GetPaths(cfg.Paths)
package config
