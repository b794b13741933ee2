package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("production", "warn", &buf)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	log.Info().Msg("dropped")
	log.Warn().Str("collection", "appointment").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "appointment", entry["collection"])
}

func TestSetupBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("local", "loud", &buf)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	Setup("production", "info", &buf)

	assert.Same(t, &log.Logger, FromContext(context.Background()))

	scoped := log.With().Str("request_id", "r-1").Logger()
	ctx := scoped.WithContext(context.Background())
	FromContext(ctx).Info().Msg("scoped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "r-1", entry["request_id"])
}
