package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// FileManager provides high-level file operations with standardized error handling and logging
type FileManager struct {
	logger    zerolog.Logger
	reader    *FileReader
	validator *FileValidator
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	componentLogger := logger.With().Str("component", "FileManager").Logger()

	return &FileManager{
		logger:    componentLogger,
		reader:    NewFileReader(componentLogger),
		validator: NewFileValidator(componentLogger),
	}
}

// FileExists checks if a file or directory exists
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileInfo returns information about a file
func (fm *FileManager) GetFileInfo(path string) (*FileInfo, error) {
	return fm.validator.GetFileInfo(path)
}

// ReadFile reads a file with the given options
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	return fm.reader.ReadFile(path, opts)
}

// ListDirectory returns the entries of a directory, unsorted
func (fm *FileManager) ListDirectory(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError("directory", path)
		}
		return nil, WrapError(err, "failed to read directory: "+path)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		stat, err := entry.Info()
		if err != nil {
			// The entry vanished between ReadDir and Info.
			fm.logger.Debug().Err(err).Str("entry", entry.Name()).Msg("Skipping directory entry")
			continue
		}
		infos = append(infos, FileInfo{
			Path:        filepath.Join(path, entry.Name()),
			Name:        entry.Name(),
			Size:        stat.Size(),
			IsDir:       entry.IsDir(),
			ModTime:     stat.ModTime(),
			Permissions: stat.Mode(),
		})
	}
	return infos, nil
}

// ResolveWithin joins rel onto root and refuses results outside of root
func (fm *FileManager) ResolveWithin(root, rel string) (string, error) {
	cleanRoot := filepath.Clean(root)
	joined := filepath.Join(cleanRoot, filepath.FromSlash("/"+rel))
	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+string(filepath.Separator)) {
		return "", NewNotFoundError("path", rel)
	}
	return joined, nil
}
