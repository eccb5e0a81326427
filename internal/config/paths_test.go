package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	t.Run("relative paths resolve against the working directory", func(t *testing.T) {
		paths, err := GetPaths(PathsConfig{InputFile: "in.xlsx", OutputDir: "results"})
		require.NoError(t, err)

		assert.Equal(t, wd, paths.WorkingDir)
		assert.Equal(t, filepath.Join(wd, "in.xlsx"), paths.InputFile)
		assert.Equal(t, filepath.Join(wd, "results"), paths.OutputDir)
		assert.Equal(t, FormatXLSX, paths.Format, "empty format defaults to xlsx")
	})

	t.Run("absolute paths are kept", func(t *testing.T) {
		dir := t.TempDir()
		paths, err := GetPaths(PathsConfig{
			InputFile: filepath.Join(dir, "a", "..", "in.xlsx"),
			OutputDir: dir,
			Format:    FormatCSV,
		})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "in.xlsx"), paths.InputFile)
		assert.Equal(t, dir, paths.OutputDir)
	})
}

func TestPaths_GetReportPath(t *testing.T) {
	p := &Paths{OutputDir: "/tmp/out", Format: FormatCSV}
	assert.Equal(t, filepath.Join("/tmp/out", "Participation_Marks.csv"), p.GetReportPath(ReportParticipation))

	p.Format = FormatXLSX
	assert.Equal(t, filepath.Join("/tmp/out", "Presentation_Marks.xlsx"), p.GetReportPath(ReportPresentation))
}

func TestPaths_EnsureDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	p := &Paths{OutputDir: dir}

	require.NoError(t, p.EnsureDirectories())
	assert.True(t, FileExists(dir))

	// Idempotent
	require.NoError(t, p.EnsureDirectories())
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "absent.txt")))
}
