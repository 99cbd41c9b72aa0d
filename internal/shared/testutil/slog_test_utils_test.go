package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.Info("loaded products", slog.Int("rows", 3))
	logger.With(slog.String("component", "charts")).Warn("slow render")

	require.Equal(t, 2, handler.Count())
	assert.True(t, handler.ContainsMessage("loaded"))
	assert.False(t, handler.ContainsMessage("missing"))
	assert.True(t, handler.ContainsAttr("rows", int64(3)))
	assert.True(t, handler.ContainsAttr("component", "charts"), "derived handlers share the store")

	warnings := handler.GetRecordsByLevel(slog.LevelWarn)
	require.Len(t, warnings, 1)
	assert.Equal(t, "slow render", warnings[0].Message)

	AssertNoErrors(t, handler)
}
