package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_ResolveWithin(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	root := filepath.Join(t.TempDir(), "reports")

	tests := []struct {
		name     string
		rel      string
		expected string
		wantErr  bool
	}{
		{name: "root", rel: "", expected: root},
		{name: "slash root", rel: "/", expected: root},
		{name: "nested", rel: "run_1/testresults", expected: filepath.Join(root, "run_1", "testresults")},
		{name: "leading slash", rel: "/run_1/a.log", expected: filepath.Join(root, "run_1", "a.log")},
		{name: "dot dot inside", rel: "run_1/../run_2", expected: filepath.Join(root, "run_2")},
		{name: "traversal", rel: "../../etc/passwd", wantErr: true},
		{name: "sibling with shared prefix", rel: "../reports2/a.log", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fm.ResolveWithin(root, tt.rel)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFileManager_ListDirectory(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("abc"), 0644))

	infos, err := fm.ListDirectory(dir)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	byName := map[string]FileInfo{}
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.True(t, byName["sub"].IsDir)
	assert.False(t, byName["a.txt"].IsDir)
	assert.Equal(t, int64(3), byName["a.txt"].Size)
	assert.Equal(t, filepath.Join(dir, "a.txt"), byName["a.txt"].Path)

	_, err = fm.ListDirectory(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileManager_ReadFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()
	path := filepath.Join(dir, "logger_10_debug.log")
	require.NoError(t, os.WriteFile(path, []byte("INFO - hello\n"), 0644))

	t.Run("reads content", func(t *testing.T) {
		data, err := fm.ReadFile(path, DefaultFileReadOptions())
		require.NoError(t, err)
		assert.Equal(t, "INFO - hello\n", string(data))
	})

	t.Run("too large", func(t *testing.T) {
		_, err := fm.ReadFile(path, FileReadOptions{MaxSize: 4})
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.NotErrorIs(t, err, ErrInvalidInput)

		var tooLarge *FileTooLargeError
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, int64(13), tooLarge.Size)
		assert.Equal(t, int64(4), tooLarge.Limit)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := fm.ReadFile(filepath.Join(dir, "nope.log"), FileReadOptions{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := fm.ReadFile(dir, FileReadOptions{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := fm.ReadFile(path, FileReadOptions{Context: ctx})
		// The read may win the race against the cancelled context.
		if err != nil {
			assert.ErrorIs(t, err, context.Canceled)
		}
	})
}

func TestFileManager_FileExistsAndInfo(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()
	path := filepath.Join(dir, "context.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	assert.True(t, fm.FileExists(path))
	assert.False(t, fm.FileExists(filepath.Join(dir, "missing")))

	info, err := fm.GetFileInfo(path)
	require.NoError(t, err)
	assert.Equal(t, "context.json", info.Name)
	assert.Equal(t, int64(2), info.Size)

	_, err = fm.GetFileInfo(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}
