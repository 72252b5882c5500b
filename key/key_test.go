package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchClassAdd(t *testing.T) {
	assert.Equal(t, C, B.Add(CSharp))
	assert.Equal(t, D, C.Add(D))
	assert.Equal(t, B, GSharp.Add(DSharp))
}

func TestNorm(t *testing.T) {
	assert.Equal(t, C, Norm(12))
	assert.Equal(t, B, Norm(-1))
	assert.Equal(t, CSharp, Norm(13))
	assert.Equal(t, CSharp, Norm(-11))
}

func TestPitchClassString(t *testing.T) {
	assert.Equal(t, "C", C.String())
	assert.Equal(t, "F#", FSharp.String())
	assert.Equal(t, "B", B.String())
}

func TestPitchClassOctave(t *testing.T) {
	assert.Equal(t, C, Pitch(60).Class())
	assert.Equal(t, 4, Pitch(60).Octave())
	assert.Equal(t, 0, Pitch(12).Octave())
	assert.Equal(t, CSharp, Pitch(61).Class())
}

func TestNameToClass(t *testing.T) {
	c, ok := NameToClass("C#")
	require.True(t, ok)
	assert.Equal(t, CSharp, c)

	c, ok = NameToClass("Db")
	require.True(t, ok)
	assert.Equal(t, CSharp, c)

	_, ok = NameToClass("H")
	assert.False(t, ok)
}
