package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "evalmarks/internal/errors"
)

// WorkbookExtensions are the spreadsheet formats the parser can open
var WorkbookExtensions = []string{".xlsx", ".xlsm"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// IsWorkbook reports whether name is a workbook the parser can read.
// Office lock files (~$name.xlsx) are not workbooks.
func IsWorkbook(name string) bool {
	if strings.HasPrefix(name, "~$") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range WorkbookExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindWorkbooks finds all workbooks in the specified directory, oldest first
func (d *Discovery) FindWorkbooks(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsWorkbook(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// ResolveInput returns path itself when it names a file, or the most recently
// modified workbook inside it when it names a directory
func (d *Discovery) ResolveInput(path string) (string, error) {
	fullPath := d.resolve(path)

	info, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		return "", apperrors.NewNotFoundError("input "+fullPath).WithContext("path", fullPath)
	}
	if err != nil {
		return "", apperrors.NewStorageError("failed to stat input", err).WithContext("path", fullPath)
	}
	if !info.IsDir() {
		return fullPath, nil
	}

	workbooks, err := d.FindWorkbooks(fullPath)
	if err != nil {
		return "", apperrors.NewStorageError("failed to list input directory", err).WithContext("path", fullPath)
	}
	latest, ok := GetLatestFile(workbooks)
	if !ok {
		return "", apperrors.NewNotFoundError("workbook in "+fullPath).WithContext("path", fullPath)
	}
	return latest.Path, nil
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
