// Package pattern implements komp's pattern builder (C6): construction of a
// bar/progression of timed note-on/note-off events at a chosen
// subdivision, from either a chord or a parsed Chord-Change DSL sequence.
package pattern

import (
	"sort"

	"komp/chord"
	"komp/dsl"
	"komp/key"
)

// Kind distinguishes a NoteOn from a NoteOff timed event.
type Kind int

const (
	NoteOn Kind = iota
	NoteOff
)

// TimedEvent is a single scheduled MIDI event, measured in ticks from the
// pattern origin.
type TimedEvent struct {
	Timing   uint32
	Kind     Kind
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// Less orders events by timing, then NoteOn before NoteOff, then note
// number, matching spec.md's Timed event ordering.
func Less(a, b TimedEvent) bool {
	if a.Timing != b.Timing {
		return a.Timing < b.Timing
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Note < b.Note
}

// Sort orders a slice of events in place per Less.
func Sort(events []TimedEvent) {
	sort.Slice(events, func(i, j int) bool { return Less(events[i], events[j]) })
}

// TimeCode addresses a point in the pattern as bar/beat/tick.
type TimeCode struct {
	Bar, Beat, Tick int
}

// Ticks converts a TimeCode to an absolute tick count given the pattern's
// ticks-per-quarter resolution, assuming a 4/4 bar.
func (t TimeCode) Ticks(ticksPerQuarter int) uint32 {
	return uint32((t.Bar*4+t.Beat)*ticksPerQuarter + t.Tick)
}

// Add combines two TimeCodes component-wise.
func (t TimeCode) Add(o TimeCode) TimeCode {
	return TimeCode{Bar: t.Bar + o.Bar, Beat: t.Beat + o.Beat, Tick: t.Tick + o.Tick}
}

const (
	// Channel used for the accompaniment part, matching the original's
	// single hardcoded output channel.
	Channel uint8 = 0
	// Velocity is the fixed design-default velocity for pattern note-ons
	// (spec.md §4.6); note-offs use a fixed release velocity as the
	// original pattern.rs does.
	Velocity     uint8 = 100
	offVelocity  uint8 = 64
	// chordOctave is the pattern builder's fixed octave argument into
	// Chord.Notes, chosen per SPEC_FULL.md Open Question 1 to match the
	// original's numeric voicing register.
	chordOctave = 2
)

// createNote produces a (NoteOn, NoteOff) pair at timing/timing+length.
func createNote(timing, length uint32, channel, note, velocity uint8) (TimedEvent, TimedEvent) {
	on := TimedEvent{Timing: timing, Kind: NoteOn, Channel: channel, Note: note, Velocity: velocity}
	off := TimedEvent{Timing: timing + length, Kind: NoteOff, Channel: channel, Note: note, Velocity: offVelocity}
	return on, off
}

// createChordPart emits simultaneous note-on/note-off pairs for every note
// of c at octave/inversion chordOctave/0, starting at offsetTicks, held for
// 75% of a 1/subdivision note: 3*ticksPerQuarter/subdivision ticks (72
// ticks for a quarter note at subdivision 4 and 96 ticks per quarter).
func createChordPart(ticksPerQuarter int, offsetTicks uint32, subdivision int, c chord.Chord) []TimedEvent {
	length := uint32(3 * ticksPerQuarter / subdivision)
	notes := c.Notes(chordOctave, 0)
	events := make([]TimedEvent, 0, len(notes)*2)
	for _, n := range notes {
		on, off := createNote(offsetTicks, length, Channel, uint8(n), Velocity)
		events = append(events, on, off)
	}
	return events
}

// CreateBar produces four quarter-note hits of c across one bar.
func CreateBar(ticksPerQuarter int, bar int, c chord.Chord) []TimedEvent {
	var events []TimedEvent
	for beat := 0; beat < 4; beat++ {
		offset := TimeCode{Bar: bar, Beat: beat}.Ticks(ticksPerQuarter)
		events = append(events, createChordPart(ticksPerQuarter, offset, 4, c)...)
	}
	return events
}

// CreateBars tiles CreateBar across a chord progression, one bar per chord.
func CreateBars(ticksPerQuarter int, chords []chord.Chord) []TimedEvent {
	var events []TimedEvent
	for bar, c := range chords {
		events = append(events, CreateBar(ticksPerQuarter, bar, c)...)
	}
	Sort(events)
	return events
}

// StepsToEvents renders one DSL voice's Step sequence into timed events per
// spec.md §4.5/§4.6: a rest advances time without emitting events; a
// sounding step holds its note for nearly the full span of its duration in
// bars (3 * ticksPerQuarter plus (d-1) full bars), starting at startBar.
// octave is the voice's fixed registration (e.g. 3 for a middle voice).
func StepsToEvents(ticksPerQuarter int, startBar int, octave int, channel uint8, steps []dsl.Step) []TimedEvent {
	var events []TimedEvent
	bar := startBar
	for _, step := range steps {
		offset := TimeCode{Bar: bar}.Ticks(ticksPerQuarter)
		if step.Class != nil {
			note := uint8(int(*step.Class) + (octave+1)*key.OctaveSteps)
			length := uint32(3*ticksPerQuarter + (step.Beats-1)*4*ticksPerQuarter)
			on, off := createNote(offset, length, channel, note, Velocity)
			events = append(events, on, off)
		}
		bar += step.Beats
	}
	Sort(events)
	return events
}


