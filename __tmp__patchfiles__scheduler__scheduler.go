// Package scheduler implements komp's slice scheduler (C7), the tick-
// accurate wrap-around scheduler that emits exactly the pattern events due
// in each slice window, re-homes events across loop boundaries, advances
// the pattern origin, and computes a signed sleep budget.
package scheduler

import (
	"sort"

	"komp/chord"
	"komp/encode"
	"komp/key"
	"komp/pattern"
)

// Pattern is an immutable, looping collection of timed events.
type Pattern struct {
	Events          []pattern.TimedEvent
	LengthNs        uint64
	TicksPerQuarter uint32
	UsPerQuarter    uint32
}

// ticksToNs converts a tick count to nanoseconds at the pattern's tempo,
// multiplying in 64-bit to avoid overflow.
func (p Pattern) ticksToNs(ticks uint32) uint64 {
	return uint64(ticks) * uint64(p.UsPerQuarter) * 1000 / uint64(p.TicksPerQuarter)
}

// PacketEvent is one outbound MIDI short message tagged with an absolute
// timestamp in the output engine's nanosecond time domain.
type PacketEvent struct {
	TimestampNs uint64
	Bytes       [3]byte
}

// State is the scheduler's owned, mutable state (spec.md §3 "Scheduler
// state"). Invariants: PatternStartNs advances monotonically by whole
// Pattern.LengthNs multiples; SliceLengthNs < Pattern.LengthNs;
// DeadlineMarginNs < SliceLengthNs. State is owned solely by the scheduler
// activity after construction.
type State struct {
	Pattern          Pattern
	PatternStartNs   uint64
	SliceLengthNs    uint64
	DeadlineMarginNs uint64
}

// NewState constructs scheduler state anchored at patternStartNs.
func NewState(p Pattern, patternStartNs, sliceLengthNs, deadlineMarginNs uint64) *State {
	return &State{
		Pattern:          p,
		PatternStartNs:   patternStartNs,
		SliceLengthNs:    sliceLengthNs,
		DeadlineMarginNs: deadlineMarginNs,
	}
}

// ScheduleSlice implements the contract of spec.md §4.7: given the current
// wall-clock time and a (possibly stale) slice cursor, it returns a signed
// sleep budget and the packet buffer of events due this slice, mutating s
// in place (advancing PatternStartNs across loop boundaries) and returning
// the cursor the caller should pass in on its next call.
func (s *State) ScheduleSlice(nowNs int64, sliceCursorNs uint64, root key.PitchClass) (sleepNs int64, buffer []PacketEvent, nextCursor uint64) {
	// 1. Clamp.
	if sliceCursorNs < s.PatternStartNs {
		sliceCursorNs = s.PatternStartNs
	}
	windowStart := sliceCursorNs
	windowEnd := sliceCursorNs + s.SliceLengthNs

	// 2 & 3. Select and encode events due this slice.
	for _, e := range s.Pattern.Events {
		eventTime := s.PatternStartNs + s.Pattern.ticksToNs(e.Timing)
		for eventTime < windowStart {
			eventTime += s.Pattern.LengthNs
		}
		if eventTime < windowStart || eventTime >= windowEnd {
			continue
		}
		buffer = append(buffer, PacketEvent{
			TimestampNs: eventTime,
			Bytes:       encodeEvent(e, root),
		})
	}
	sort.Slice(buffer, func(i, j int) bool { return buffer[i].TimestampNs < buffer[j].TimestampNs })

	// 4. Advance.
	sliceCursorNs += s.SliceLengthNs
	if sliceCursorNs >= s.PatternStartNs+s.Pattern.LengthNs {
		s.PatternStartNs += s.Pattern.LengthNs
	}

	// 5. Compute sleep.
	sleepNs = int64(sliceCursorNs) - int64(s.DeadlineMarginNs) - nowNs

	return sleepNs, buffer, sliceCursorNs
}

func encodeEvent(e pattern.TimedEvent, root key.PitchClass) [3]byte {
	switch e.Kind {
	case pattern.NoteOn:
		return encode.NoteOn(e.Channel, e.Note, e.Velocity, root)
	default:
		return encode.NoteOff(e.Channel, e.Note, e.Velocity, root)
	}
}

// DefaultRoot is the fallback root used when the current-chord cell has
// never been written (spec.md §7 "no chord match").
const DefaultRoot = key.C

// RootFromChord extracts the transposition root from a recognized chord.
func RootFromChord(c chord.Chord) key.PitchClass { return c.Root }


