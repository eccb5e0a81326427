package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Marks     MarksConfig     `yaml:"marks" envconfig:"MARKS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PathsConfig locates the input workbook and the report directory
type PathsConfig struct {
	// InputFile is a workbook path or a directory; for a directory the newest workbook is used
	InputFile string `yaml:"input_file" envconfig:"INPUT_FILE" validate:"required"`
	Sheet     string `yaml:"sheet" envconfig:"SHEET"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	Format    string `yaml:"format" envconfig:"FORMAT" validate:"oneof=xlsx csv"`
}

// MarksConfig holds the course marking rules
type MarksConfig struct {
	BonusSection      string  `yaml:"bonus_section" envconfig:"BONUS_SECTION"`
	PointsPerResponse float64 `yaml:"points_per_response" envconfig:"POINTS_PER_RESPONSE" validate:"gt=0"`
	SectionBonus      float64 `yaml:"section_bonus" envconfig:"SECTION_BONUS" validate:"gte=0"`
	MaxPoints         float64 `yaml:"max_points" envconfig:"MAX_POINTS" validate:"gt=0"`
	DoorMin           float64 `yaml:"door_min" envconfig:"DOOR_MIN"`
	DoorMax           float64 `yaml:"door_max" envconfig:"DOOR_MAX" validate:"gtefield=DoorMin"`
}

// TelemetryConfig controls run tracing and the metrics dump
type TelemetryConfig struct {
	Tracing bool `yaml:"tracing" envconfig:"TRACING"`
	// MetricsFile, when set, receives the run metrics in Prometheus text format
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, an optional YAML file and
// EVALMARKS_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct rules
func (c *Config) Validate() error {
	// An empty format falls back to JSON
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvConfigFileName); explicit != "" {
		return explicit
	}

	locations := []string{
		"evalmarks.yaml",
		"configs/evalmarks.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			InputFile: DefaultInputFile,
			OutputDir: DefaultOutputDir,
			Format:    FormatXLSX,
		},
		Marks: MarksConfig{
			BonusSection:      DefaultBonusSection,
			PointsPerResponse: DefaultPointsPerResponse,
			SectionBonus:      DefaultSectionBonus,
			MaxPoints:         DefaultMaxPoints,
			DoorMin:           DefaultDoorMin,
			DoorMax:           DefaultDoorMax,
		},
	}
}
