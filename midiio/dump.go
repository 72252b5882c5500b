package midiio

import (
	"io"
	"sort"

	midi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"komp/key"
	"komp/pattern"
)

// DumpPattern renders a built pattern to a Standard MIDI File, for
// offline inspection of a preset pattern without a live MIDI device
// attached. Scoped down from the teacher's full file-export command
// (midi.GenerateFromTrack) to a single accompaniment track.
//
// Track.Add expects delta time, not absolute — events are sorted by
// absolute tick first and diffed, exactly as the teacher's generator.go
// does for its chord/bass/drum tracks.
func DumpPattern(w io.Writer, events []pattern.TimedEvent, ticksPerQuarter uint32, bpm float64, root key.PitchClass) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(uint16(ticksPerQuarter))

	var tempoTrack smf.Track
	tempoTrack.Add(0, smf.MetaTempo(bpm))
	tempoTrack.Close(0)
	if err := s.Add(tempoTrack); err != nil {
		return err
	}

	sorted := make([]pattern.TimedEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return pattern.Less(sorted[i], sorted[j]) })

	var track smf.Track
	track.Add(0, midi.ProgramChange(0, 0))
	var lastTick uint32
	for _, e := range sorted {
		delta := e.Timing - lastTick
		lastTick = e.Timing
		note := (uint8(root) + e.Note) & 0x7F
		var msg midi.Message
		if e.Kind == pattern.NoteOn {
			msg = midi.NoteOn(e.Channel, note, e.Velocity)
		} else {
			msg = midi.NoteOff(e.Channel, note)
		}
		track.Add(delta, msg)
	}
	track.Close(0)
	if err := s.Add(track); err != nil {
		return err
	}

	_, err := s.WriteTo(w)
	return err
}
