package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
presets:
  - name: waltz
    tempo: 140
    voices:
      - dsl: "C [E Eb] G"
        octave: 3
        channel: 0
  - name: ballad
    subdivision: 8
    ticks_per_quarter: 480
    voices:
      - dsl: "C - G -"
        octave: 2
        channel: 1
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndFind(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	lib, err := Load(path)
	require.NoError(t, err)
	require.Len(t, lib.Presets, 2)

	waltz, ok := lib.Find("waltz")
	require.True(t, ok)
	require.Equal(t, 140, waltz.Tempo)
	require.Equal(t, 4, waltz.Subdivision)
	require.Equal(t, 96, waltz.TicksPerQuarter)
	require.Len(t, waltz.Voices, 1)
	require.Equal(t, "C [E Eb] G", waltz.Voices[0].DSL)

	ballad, ok := lib.Find("ballad")
	require.True(t, ok)
	require.Equal(t, 8, ballad.Subdivision)
	require.Equal(t, 480, ballad.TicksPerQuarter)

	_, ok = lib.Find("missing")
	require.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/presets.yaml")
	require.Error(t, err)
}


