package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komp/chord"
	"komp/key"
)

func TestS6NoteOnThenOff(t *testing.T) {
	tr := New()
	tr.Apply([]byte{0x93, 0x3C, 0x40}) // Note On, ch 3, note 60, vel 64
	c, ok := tr.Cell().Get()
	require.True(t, ok)
	assert.Equal(t, chord.Chord{Quality: chord.None, Root: key.C}, c)

	tr.Apply([]byte{0x83, 0x3C, 0x40}) // Note Off, ch 3, note 60
	assert.Empty(t, tr.Sounding())
	// Cell is not rewritten: still holds the previous value.
	c2, ok2 := tr.Cell().Get()
	require.True(t, ok2)
	assert.Equal(t, c, c2)
}

func TestNoteOnVelocityZeroActsAsNoteOff(t *testing.T) {
	tr := New()
	tr.Apply([]byte{0x90, 0x3C, 0x40})
	assert.Len(t, tr.Sounding(), 1)
	tr.Apply([]byte{0x90, 0x3C, 0x00})
	assert.Empty(t, tr.Sounding())
}

func TestActiveSenseIgnored(t *testing.T) {
	tr := New()
	tr.Apply([]byte{0xFE})
	assert.Empty(t, tr.Sounding())
	_, ok := tr.Cell().Get()
	assert.False(t, ok)
}

func TestControllerIgnored(t *testing.T) {
	tr := New()
	tr.Apply([]byte{0xB0, 0x07, 0x7F})
	assert.Empty(t, tr.Sounding())
}

func TestMalformedLengthDropped(t *testing.T) {
	tr := New()
	tr.Apply([]byte{0x90, 0x3C})
	assert.Empty(t, tr.Sounding())
}

func TestIdempotentNoteOffOnAbsentNote(t *testing.T) {
	tr := New()
	tr.Apply([]byte{0x80, 0x3C, 0x40})
	assert.Empty(t, tr.Sounding())
	_, ok := tr.Cell().Get()
	assert.False(t, ok)
}

func TestRecognizesCMajorOnThreeNotes(t *testing.T) {
	tr := New()
	tr.Apply([]byte{0x90, 60, 100})
	tr.Apply([]byte{0x90, 64, 100})
	tr.Apply([]byte{0x90, 67, 100})
	c, ok := tr.Cell().Get()
	require.True(t, ok)
	assert.Equal(t, chord.Major, c.Quality)
	assert.Equal(t, key.C, c.Root)
}
