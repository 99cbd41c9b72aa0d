package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewValidationError("top n must be positive"),
			expected: "[VALIDATION] top n must be positive",
		},
		{
			name:     "with cause",
			err:      NewStorageError("failed to write csv", errors.New("disk full")),
			expected: "[STORAGE] failed to write csv: disk full",
		},
		{
			name:     "not found",
			err:      NewNotFoundError("input file data/product_sales.csv"),
			expected: "[NOT_FOUND] input file data/product_sales.csv not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fs.ErrNotExist
	err := NewParsingError("failed to open product table", cause)

	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, cause, err.Unwrap())

	wrapped := fmt.Errorf("analyze: %w", err)
	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("invalid number", nil).
		WithContext("row", 12).
		WithContext("column", "price")

	assert.Equal(t, 12, err.Context["row"])
	assert.Equal(t, "price", err.Context["column"])

	bare := &AppError{Type: ErrTypeConfig, Message: "x"}
	bare.WithContext("key", "value")
	assert.Equal(t, "value", bare.Context["key"])
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"parsing", NewParsingError("bad header", nil), ErrTypeParsing},
		{"rendering wrapped", fmt.Errorf("charts: %w", NewRenderingError("png", nil)), ErrTypeRendering},
		{"config", NewConfigError("bad yaml", nil), ErrTypeConfig},
		{"plain error", errors.New("boom"), ErrTypeInternal},
		{"nil", nil, ErrTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeOf(tt.err))
		})
	}
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("load: %w", NewParsingError("empty", ErrEmptyDataset))

	assert.True(t, IsType(err, ErrTypeParsing))
	assert.False(t, IsType(err, ErrTypeStorage))
	assert.False(t, IsType(nil, ErrTypeInternal))
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}
