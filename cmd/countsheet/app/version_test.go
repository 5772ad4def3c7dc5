package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	application, err := New("1.2.3", "abc123", "2026-01-01")
	require.NoError(t, err)

	cmd := application.NewVersionCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "countsheet 1.2.3")
	assert.Contains(t, out.String(), "abc123")
}
