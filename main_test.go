package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	n, ok := parseIndex("3")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = parseIndex("abc")
	assert.False(t, ok)

	_, ok = parseIndex("")
	assert.False(t, ok)
}

func TestBuildPatternDefaultProgression(t *testing.T) {
	events, ticksPerQuarter, usPerQuarter, bars, err := buildPattern("", "")
	require.NoError(t, err)
	assert.Equal(t, uint32(96), ticksPerQuarter)
	assert.Equal(t, uint32(500_000), usPerQuarter)
	assert.Equal(t, 4, bars)
	assert.NotEmpty(t, events)
}

func TestBuildPatternMissingPreset(t *testing.T) {
	_, _, _, _, err := buildPattern("/nonexistent.yaml", "waltz")
	require.Error(t, err)
}
