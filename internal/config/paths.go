package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system locations for one run
type Paths struct {
	WorkingDir string
	InputFile  string
	OutputDir  string
	Format     string
}

// GetPaths resolves the configured paths against the working directory
func GetPaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	format := cfg.Format
	if format == "" {
		format = FormatXLSX
	}

	return &Paths{
		WorkingDir: wd,
		InputFile:  resolve(wd, cfg.InputFile),
		OutputDir:  resolve(wd, cfg.OutputDir),
		Format:     format,
	}, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// GetReportPath returns the path of a named report in the output directory
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.OutputDir, name+"."+p.Format)
}

// EnsureDirectories creates the output directory if it doesn't exist
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.OutputDir, err)
	}
	slog.Debug("Ensured directory exists", slog.String("directory", p.OutputDir))
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.String("working_dir", p.WorkingDir),
		slog.String("input", p.InputFile),
		slog.Bool("input_exists", FileExists(p.InputFile)),
		slog.String("output_dir", p.OutputDir),
		slog.String("format", p.Format))
}
