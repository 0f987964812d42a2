package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aleister1102/reportbrowser/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: common.NewNotFoundError("file", "a.log"), expected: http.StatusNotFound},
		{name: "invalid input", err: common.NewValidationError("severity", "LOUD", "unknown"), expected: http.StatusBadRequest},
		{name: "configuration", err: common.NewConfigurationError("sidecar", "", "broken"), expected: http.StatusInternalServerError},
		{
			name:     "missing sidecar",
			err:      common.WrapConfigurationError(common.NewNotFoundError("sidecar", "context.json"), "sidecar", "cannot load"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "log above size limit",
			err:      common.WrapError(common.NewFileTooLargeError("/r/a.log", 20, 10), "cannot read"),
			expected: http.StatusInternalServerError,
		},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForError(tt.err))
		})
	}
}
