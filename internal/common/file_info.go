package common

import (
	"context"
	"io/fs"
	"time"
)

// FileInfo contains metadata about a file
type FileInfo struct {
	Path        string      // Full file path
	Name        string      // File name only
	Size        int64       // File size in bytes
	IsDir       bool        // Whether it's a directory
	ModTime     time.Time   // Last modification time
	Permissions fs.FileMode // File permissions
}

// FileReadOptions configures file reading behavior
type FileReadOptions struct {
	MaxSize    int64           // Maximum file size to read (0 = no limit)
	BufferSize int             // Buffer size for reading
	Timeout    time.Duration   // Read timeout
	Context    context.Context // Context for cancellation
}

// DefaultFileReadOptions returns default file reading options
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{
		MaxSize:    50 * 1024 * 1024, // 50MB default
		BufferSize: 64 * 1024,        // 64KB buffer
		Timeout:    30 * time.Second,
		Context:    context.Background(),
	}
}
