package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	path := filepath.Join(t.TempDir(), "aroundyou.log")
	Init("warn", path)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	logger := Component("test")
	logger.Info().Msg("below threshold")
	logger.Warn().Str("shop_id", "s-1").Msg("stock low")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"component":"test"`)
	assert.Contains(t, string(raw), `"message":"stock low"`)
	assert.NotContains(t, string(raw), "below threshold")
}

func TestInitFallsBackToInfo(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	Init("chatty", "")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
