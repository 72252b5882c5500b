// Package encode implements komp's outbound encoder (C9): translating
// internal timed events to wire-format MIDI note-on/note-off bytes at a
// given root-key transposition, plus a mute-all helper mirroring the
// teacher's allNotesOff (player/realtime.go).
package encode

import "komp/key"

// NoteOn encodes a Note On message, transposed by root, as a 3-byte MIDI
// short message.
func NoteOn(channel, note, velocity uint8, root key.PitchClass) [3]byte {
	return [3]byte{
		0x90 | (channel & 0x0F),
		(uint8(root) + note) & 0x7F,
		velocity & 0x7F,
	}
}

// NoteOff encodes a Note Off message, transposed by root, as a 3-byte MIDI
// short message.
func NoteOff(channel, note, velocity uint8, root key.PitchClass) [3]byte {
	return [3]byte{
		0x80 | (channel & 0x0F),
		(uint8(root) + note) & 0x7F,
		velocity & 0x7F,
	}
}

// SoundingNote identifies an outbound note currently held, for MuteAll.
type SoundingNote struct {
	Channel uint8
	Note    uint8
}

// MuteAll produces a note-on at velocity 0 for every currently sounding
// outbound note, transposed by root, used when the pattern is interrupted.
// Velocity-0 note-on is the conventional MIDI idiom for silencing a note
// (running status friendly) rather than a true note-off. Grounded on the
// teacher's allNotesOff, which tracks activeNotes per channel and emits a
// silencing message for each before the transport stops.
func MuteAll(sounding []SoundingNote, root key.PitchClass) [][3]byte {
	out := make([][3]byte, 0, len(sounding))
	for _, n := range sounding {
		out = append(out, NoteOn(n.Channel, n.Note, 0, root))
	}
	return out
}
