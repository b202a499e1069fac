package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/sbilibin2017/users-api/internal/logger"
)

// LocalStorage writes files to a directory served under a public URL prefix.
type LocalStorage struct {
	dir          string
	publicPrefix string
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(dir, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{dir: dir, publicPrefix: publicPrefix}, nil
}

// Dir returns the directory files are written to.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save writes content under a generated name and returns its public path, e.g. "/public/<file>".
func (s *LocalStorage) Save(ctx context.Context, originalName, contentType string, content io.Reader) (string, error) {
	name := GenerateFilename(originalName)
	target := filepath.Join(s.dir, name)

	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}

	written, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	logger.Log.Infow("file stored",
		"file", target,
		"content_type", contentType,
		"result", written,
		"error", err,
	)

	if err != nil {
		os.Remove(target)
		return "", err
	}

	return path.Join(s.publicPrefix, name), nil
}

// Delete removes a file previously returned by Save. A missing file is not an error.
func (s *LocalStorage) Delete(ctx context.Context, location string) error {
	target := filepath.Join(s.dir, path.Base(location))
	err := os.Remove(target)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}

	logger.Log.Infow("file removed",
		"file", target,
		"error", err,
	)
	return err
}
