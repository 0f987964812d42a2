package common

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// FileReader handles file reading operations
type FileReader struct {
	logger    zerolog.Logger
	validator *FileValidator
}

// NewFileReader creates a new FileReader instance
func NewFileReader(logger zerolog.Logger) *FileReader {
	componentLogger := logger.With().Str("component", "FileReader").Logger()
	return &FileReader{
		logger:    componentLogger,
		validator: NewFileValidator(componentLogger),
	}
}

// ReadFile reads a file with the given options
func (fr *FileReader) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	if _, err := fr.validator.ValidateFileForReading(path, opts); err != nil {
		return nil, err
	}

	ctx, cancel := fr.setupContextWithTimeout(opts)
	if cancel != nil {
		defer cancel()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, WrapError(err, fmt.Sprintf("failed to open file: %s", path))
	}
	defer func() {
		if err := file.Close(); err != nil {
			fr.logger.Error().Err(err).Str("path", path).Msg("Failed to close file.")
		}
	}()

	reader := fr.createBufferedReader(file, opts.BufferSize)

	return fr.performFileRead(ctx, path, reader, opts.MaxSize)
}

// setupContextWithTimeout sets up context with timeout if specified
func (fr *FileReader) setupContextWithTimeout(opts FileReadOptions) (context.Context, context.CancelFunc) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, nil
}

// createBufferedReader creates a buffered reader if buffer size is specified
func (fr *FileReader) createBufferedReader(file *os.File, bufferSize int) io.Reader {
	var reader io.Reader = file
	if bufferSize > 0 {
		reader = bufio.NewReaderSize(file, bufferSize)
	}
	return reader
}

// performFileRead reads the content and gives up when the context is done first
func (fr *FileReader) performFileRead(ctx context.Context, path string, reader io.Reader, maxSize int64) ([]byte, error) {
	done := make(chan struct{})
	var content []byte
	var readErr error

	go func() {
		defer close(done)
		if maxSize > 0 {
			reader = io.LimitReader(reader, maxSize)
		}
		content, readErr = io.ReadAll(reader)
	}()

	select {
	case <-ctx.Done():
		fr.logger.Warn().Str("path", path).Msg("File read cancelled due to context timeout")
		return nil, WrapError(ctx.Err(), "file read operation cancelled")
	case <-done:
		if readErr != nil {
			return nil, WrapError(readErr, fmt.Sprintf("failed to read file content: %s", path))
		}
	}

	return content, nil
}
