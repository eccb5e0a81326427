package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"evalmarks/internal/config"
	apperrors "evalmarks/internal/errors"
	"evalmarks/internal/infrastructure"
	"evalmarks/internal/pipeline"
)

// TableWriter writes one report table and returns the file it created
type TableWriter interface {
	WriteTable(table Table) (string, error)
}

// NewTableWriter returns the writer for the configured output format
func NewTableWriter(paths *config.Paths) (TableWriter, error) {
	switch paths.Format {
	case config.FormatXLSX, "":
		return NewXLSXWriter(paths), nil
	case config.FormatCSV:
		return NewCSVWriter(paths), nil
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("unsupported output format %q", paths.Format), nil)
	}
}

// ResultWriter writes the three reports of a pipeline run
type ResultWriter struct {
	paths     *config.Paths
	newWriter func(*config.Paths) (TableWriter, error)
	logger    *slog.Logger
}

// NewResultWriter creates a result writer for the configured output format
func NewResultWriter(paths *config.Paths, logger *slog.Logger) (*ResultWriter, error) {
	if _, err := NewTableWriter(paths); err != nil {
		return nil, err
	}
	return &ResultWriter{
		paths:     paths,
		newWriter: NewTableWriter,
		logger:    infrastructure.WithComponent(logger, "exporter"),
	}, nil
}

// Tables returns the report tables of result in output order
func Tables(result *pipeline.Result) []Table {
	return []Table{
		DisqualifiedTable(result.Disqualified),
		ParticipationTable(result.Participation),
		PresentationTable(result.Presentation),
	}
}

// Write writes every report of result and returns the file paths in report
// order. Reports are written concurrently into a staging directory inside
// the output directory and moved into place only once all of them succeed,
// so a failed run leaves no partial report set behind. The first failure
// cancels the writes not yet started.
func (w *ResultWriter) Write(ctx context.Context, result *pipeline.Result) ([]string, error) {
	if err := os.MkdirAll(w.paths.OutputDir, 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", w.paths.OutputDir)
	}
	staging, err := os.MkdirTemp(w.paths.OutputDir, ".evalmarks-")
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create staging directory", err).
			WithContext("path", w.paths.OutputDir)
	}
	defer os.RemoveAll(staging)

	staged := *w.paths
	staged.OutputDir = staging
	writer, err := w.newWriter(&staged)
	if err != nil {
		return nil, err
	}

	tables := Tables(result)
	files := make([]string, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := writer.WriteTable(table)
			if err != nil {
				return apperrors.NewStorageError(fmt.Sprintf("failed to write %s", table.Name), err).
					WithContext("path", path)
			}
			files[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, file := range files {
		target := filepath.Join(w.paths.OutputDir, filepath.Base(file))
		if err := os.Rename(file, target); err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to move %s into place", tables[i].Name), err).
				WithContext("path", target)
		}
		paths[i] = target
		w.logger.InfoContext(ctx, "Report written",
			slog.String("report", tables[i].Name),
			slog.String("path", target),
			slog.Int("rows", len(tables[i].Rows)))
	}
	return paths, nil
}
