package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "evalmarks/internal/errors"
)

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantErr   bool
	}{
		{
			name: "existing directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "nested directory is created",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "results", "2024")
			},
		},
		{
			name: "path under a file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "file")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
				return filepath.Join(file, "results")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setupFunc(t)
			err := NewFileValidator(nil).ValidateOutputDirectory(dir)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
				return
			}
			require.NoError(t, err)
			assert.DirExists(t, dir)
			assert.NoFileExists(t, filepath.Join(dir, ".write_test"))
		})
	}
}

func TestFileValidator_ValidateExcelFile(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		errType   apperrors.ErrorType
	}{
		{
			name: "valid workbook",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "survey.xlsx")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.xlsx")
			},
			errType: apperrors.ErrTypeNotFound,
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				dir := filepath.Join(t.TempDir(), "export.xlsx")
				require.NoError(t, os.Mkdir(dir, 0755))
				return dir
			},
			errType: apperrors.ErrTypeValidation,
		},
		{
			name: "wrong extension",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "survey.csv")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			errType: apperrors.ErrTypeValidation,
		},
		{
			name: "office lock file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "~$survey.xlsx")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			errType: apperrors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileValidator(nil).ValidateExcelFile(tt.setupFunc(t))

			if tt.errType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.errType), "got %v", err)
		})
	}
}
