package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "evalmarks/internal/errors"
)

// touch creates name in dir with the given modification time
func touch(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.basePath)
}

func TestIsWorkbook(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"survey.xlsx", true},
		{"SURVEY.XLSX", true},
		{"macros.xlsm", true},
		{"legacy.xls", false},
		{"export.csv", false},
		{"~$survey.xlsx", false},
		{"xlsx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWorkbook(tt.name))
		})
	}
}

func TestFindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	touch(t, dir, "new.xlsx", now)
	touch(t, dir, "old.xlsx", now.Add(-2*time.Hour))
	touch(t, dir, "~$new.xlsx", now.Add(time.Hour))
	touch(t, dir, "notes.txt", now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.xlsx"), 0755))

	files, err := NewDiscovery("").FindWorkbooks(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "old.xlsx", files[0].Name)
	assert.Equal(t, "new.xlsx", files[1].Name)
	assert.Equal(t, int64(1), files[1].Size)
}

func TestFindWorkbooksRelative(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "exports"), 0755))
	touch(t, filepath.Join(base, "exports"), "a.xlsx", time.Now())

	files, err := NewDiscovery(base).FindWorkbooks("exports")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(base, "exports", "a.xlsx"), files[0].Path)
}

func TestFindWorkbooksMissingDir(t *testing.T) {
	_, err := NewDiscovery("").FindWorkbooks(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	file := touch(t, dir, "one.xlsx", now.Add(-time.Hour))
	latest := touch(t, dir, "two.xlsx", now)

	d := NewDiscovery("")

	got, err := d.ResolveInput(file)
	require.NoError(t, err)
	assert.Equal(t, file, got)

	got, err = d.ResolveInput(dir)
	require.NoError(t, err)
	assert.Equal(t, latest, got)
}

func TestResolveInputErrors(t *testing.T) {
	d := NewDiscovery("")

	_, err := d.ResolveInput(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	empty := t.TempDir()
	touch(t, empty, "~$locked.xlsx", time.Now())
	_, err = d.ResolveInput(empty)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestGetLatestFile(t *testing.T) {
	_, ok := GetLatestFile(nil)
	assert.False(t, ok)

	now := time.Now()
	latest, ok := GetLatestFile([]FileInfo{
		{Name: "a", ModTime: now.Add(-time.Minute)},
		{Name: "b", ModTime: now},
		{Name: "c", ModTime: now.Add(-time.Hour)},
	})
	assert.True(t, ok)
	assert.Equal(t, "b", latest.Name)
}
