package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func keep(t *testing.T) {
	lvl, logger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(lvl)
		log.Logger = logger
	})
}

func TestNewJSON(t *testing.T) {
	keep(t)
	var buf bytes.Buffer
	logger := New("debug", "production", &buf)
	logger.Debug().Str("k", "v").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["message"])
	require.Equal(t, "debug", line["level"])
	require.Equal(t, "v", line["k"])

	// 全域 logger 也換掉
	buf.Reset()
	log.Info().Msg("global")
	require.Contains(t, buf.String(), "global")
}

func TestNewLevelFallback(t *testing.T) {
	keep(t)
	var buf bytes.Buffer
	logger := New("nonsense", "production", &buf)
	logger.Debug().Msg("hidden")
	require.Empty(t, buf.String())
	logger.Info().Msg("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNewConsole(t *testing.T) {
	keep(t)
	var buf bytes.Buffer
	logger := New("info", "development", &buf)
	logger.Info().Msg("pretty")
	require.Contains(t, buf.String(), "pretty")
	require.NotContains(t, buf.String(), `"message"`)
}
