package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/berkecan/unienroll/internal/pkg/logger"
)

// LocalStorage saves contract files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// Save writes data under the given filename and returns the stored path.
// The filename is caller-derived and meaningful, so an existing file of the
// same name is kept and the new one gets a short unique suffix.
func (ls *LocalStorage) Save(filename string, data []byte) (string, error) {
	filename = filepath.Base(filename)
	if filename == "" || filename == "." || filename == "/" {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}

	dstPath := filepath.Join(ls.basePath, filename)
	if _, err := os.Stat(dstPath); err == nil {
		ext := filepath.Ext(filename)
		stem := strings.TrimSuffix(filename, ext)
		suffix := uuid.New().String()[:8]
		filename = fmt.Sprintf("%s_%s%s", stem, suffix, ext)
		dstPath = filepath.Join(ls.basePath, filename)
	}

	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file")
		// Attempt to remove the partially written file
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("saved_as", filename).Msg("File saved successfully")
	return dstPath, nil
}

// Delete removes a stored file. Deleting a missing file is not an error.
func (ls *LocalStorage) Delete(filename string) error {
	filename = filepath.Base(filename)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid filename: %q", filename)
	}

	physicalPath := filepath.Join(ls.basePath, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}
