package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	apierrors "meddash/internal/errors"
)

// ErrNotFound is returned when the data file does not exist.
var ErrNotFound = errors.New("data file not found")

// FileInfo describes the data file on disk.
type FileInfo struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Loader reads the CSV snapshot from a fixed location. It keeps no copy of
// the content; every Read goes to disk.
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a loader for the given file path.
func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		path:   filepath.Clean(path),
		logger: logger.With(slog.String("component", "file_loader")),
	}
}

// Path returns the cleaned path of the data file.
func (l *Loader) Path() string {
	return l.path
}

// Read returns the raw bytes of the data file. A missing file yields an
// error wrapping ErrNotFound.
func (l *Loader) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, l.path)
		}
		return nil, apierrors.NewStorageError("failed to read data file", err).WithContext("path", l.path)
	}

	l.logger.DebugContext(ctx, "data file read",
		slog.String("path", l.path),
		slog.Int("bytes", len(data)))

	return data, nil
}

// Stat reports size and modification time of the data file.
func (l *Loader) Stat(ctx context.Context) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}

	info, err := os.Stat(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileInfo{}, fmt.Errorf("%w: %s", ErrNotFound, l.path)
		}
		return FileInfo{}, apierrors.NewStorageError("failed to stat data file", err).WithContext("path", l.path)
	}
	if info.IsDir() {
		return FileInfo{}, apierrors.NewStorageError("data path is a directory", nil).WithContext("path", l.path)
	}

	return FileInfo{Path: l.path, Size: info.Size(), ModTime: info.ModTime()}, nil
}
