package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"komp/key"
)

func TestNotesRootPosition(t *testing.T) {
	c := Chord{Quality: Major, Root: key.C}
	notes := c.Notes(2, 0)
	assert.Equal(t, []key.Pitch{36, 40, 43}, notes)
}

func TestNotesFirstInversion(t *testing.T) {
	c := Chord{Quality: Major, Root: key.C}
	notes := c.Notes(2, 1)
	// root raised an octave: 3rd, 5th, then root+12
	assert.Equal(t, []key.Pitch{40, 43, 48}, notes)
}

func TestDetectDirectMatch(t *testing.T) {
	sounding := []key.Pitch{60, 64, 67} // C E G
	res := Detect(sounding)
	if assert.NotEmpty(t, res) {
		assert.Equal(t, Chord{Quality: Major, Root: key.C}, res[0])
	}
}

func TestDetectMinor(t *testing.T) {
	sounding := []key.Pitch{62, 65, 69} // D F A
	res := Detect(sounding)
	if assert.NotEmpty(t, res) {
		assert.Equal(t, Chord{Quality: Minor, Root: key.D}, res[0])
	}
}

func TestDetectInversionFallback(t *testing.T) {
	// First inversion of C major: E G C -> no direct match (template != any
	// catalogued quality rooted at E), falls back to rotation scan.
	sounding := []key.Pitch{64, 67, 72}
	res := Detect(sounding)
	assert.NotEmpty(t, res)
}

func TestDetectEmpty(t *testing.T) {
	assert.Nil(t, Detect(nil))
}

func TestDetectDuplicatesAndOctaves(t *testing.T) {
	sounding := []key.Pitch{60, 64, 67, 72, 76} // C E G C E, doubled across octaves
	res := Detect(sounding)
	if assert.NotEmpty(t, res) {
		assert.Equal(t, Chord{Quality: Major, Root: key.C}, res[0])
	}
}


