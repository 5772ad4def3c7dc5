package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf)

	logger.Info().Str("stage", "aggregate").Msg("collapsed passes")
	assert.Contains(t, buf.String(), `"stage":"aggregate"`)
	assert.Contains(t, buf.String(), "collapsed passes")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
}

func TestWithLoggerRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf)

	ctx := WithLogger(context.Background(), &logger)
	got := FromContext(ctx)
	require.NotNil(t, got)

	got.Warn().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
}

func TestTestLoggerCaptures(t *testing.T) {
	tl := NewTestLogger(t)
	tl.Debug().Int("rows", 3).Msg("loaded registry")

	assert.True(t, tl.Contains("loaded registry"))
	assert.True(t, tl.Contains(`"rows":3`))
}

func TestSetDefault(t *testing.T) {
	old := *Default()
	t.Cleanup(func() { SetDefault(old) })

	buf := &bytes.Buffer{}
	SetDefault(zerolog.New(buf))
	Info().Msg("rebound")
	assert.Contains(t, buf.String(), "rebound")
}
