package sidecar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContext(t *testing.T) {
	data := []byte(`{
  "directories": {"T": "/home/worktree/micropython", "R": "/home/testresults", "F": "/home/firmware"},
  "git_ref": {"T": "https://github.com/micropython/micropython@master"}
}`)

	ctx, err := ParseContext(data)
	require.NoError(t, err)

	assert.Equal(t, OrderedStrings{
		{Key: "T", Value: "/home/worktree/micropython"},
		{Key: "R", Value: "/home/testresults"},
		{Key: "F", Value: "/home/firmware"},
	}, ctx.Directories)

	ref, ok := ctx.GitRef.Get("T")
	assert.True(t, ok)
	assert.Equal(t, "https://github.com/micropython/micropython@master", ref)

	_, ok = ctx.GitRef.Get("R")
	assert.False(t, ok)
}

func TestParseContext_EmptyObjects(t *testing.T) {
	ctx, err := ParseContext([]byte(`{"directories": {}, "git_ref": {}}`))
	require.NoError(t, err)
	assert.Empty(t, ctx.Directories)
	assert.Empty(t, ctx.GitRef)
}

func TestParseContext_JSONEscapes(t *testing.T) {
	ctx, err := ParseContext([]byte(`{"directories": {"R": "\/home\/x", "T": "/home/caf\u00e9"}, "git_ref": {}}`))
	require.NoError(t, err)

	assert.Equal(t, OrderedStrings{
		{Key: "R", Value: "/home/x"},
		{Key: "T", Value: "/home/café"},
	}, ctx.Directories)
}

func TestParseContext_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty document", data: ``},
		{name: "not json", data: `{"directories": `},
		{name: "missing git_ref", data: `{"directories": {"R": "/r"}}`},
		{name: "missing directories", data: `{"git_ref": {}}`},
		{name: "null directories", data: `{"directories": null, "git_ref": {}}`},
		{name: "directories is a list", data: `{"directories": ["/r"], "git_ref": {}}`},
		{name: "nested value", data: `{"directories": {"R": {"x": 1}}, "git_ref": {}}`},
		{name: "top level array", data: `[1, 2]`},
		{name: "null value", data: `{"directories": {"R": null}, "git_ref": {}}`},
		{name: "number value", data: `{"directories": {"R": 42}, "git_ref": {}}`},
		{name: "boolean value", data: `{"directories": {"R": true}, "git_ref": {}}`},
		{name: "null git_ref value", data: `{"directories": {}, "git_ref": {"T": null}}`},
		{name: "yaml flow mapping", data: `{directories: {R: /r}, git_ref: {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContext([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
