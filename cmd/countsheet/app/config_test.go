package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultInputDir, config.InputDir)
	assert.Equal(t, DefaultOutputDir, config.OutputDir)
	assert.Equal(t, DefaultSitesFile, config.SitesFile)
	assert.Empty(t, config.AliasFile)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "debug")
	assert.True(t, config.Verbose)
	assert.False(t, config.Quiet)
	assert.True(t, config.NoColor)
	assert.Equal(t, "debug", config.LogLevel)

	// A blank flag leaves the configured level alone.
	config.UpdateFromFlags(false, true, false, "")
	assert.Equal(t, "debug", config.LogLevel)
}
