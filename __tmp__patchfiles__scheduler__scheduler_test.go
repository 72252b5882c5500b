package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komp/chord"
	"komp/key"
	"komp/pattern"
)

func oneBarCMajor() Pattern {
	c := chord.Chord{Quality: chord.Major, Root: key.C}
	events := pattern.CreateBar(96, 0, c)
	return Pattern{
		Events:          events,
		LengthNs:        2_000_000_000, // 4 quarters @ 500ms
		TicksPerQuarter: 96,
		UsPerQuarter:    500_000,
	}
}

// TestS4FirstSlice mirrors spec.md S4: the first 200ms slice of a one-bar
// C-major quarter-note pattern at 120 BPM contains only the note-ons for
// the first hit, at timestamp T, with a ~150ms sleep budget.
func TestS4FirstSlice(t *testing.T) {
	p := oneBarCMajor()
	s := NewState(p, 0, 200_000_000, 50_000_000)

	sleepNs, buffer, _ := s.ScheduleSlice(0, 0, key.C)

	require.Len(t, buffer, 3)
	for _, pkt := range buffer {
		assert.Equal(t, uint64(0), pkt.TimestampNs)
		assert.Equal(t, byte(0x90), pkt.Bytes[0]&0xF0)
	}
	assert.Equal(t, int64(150_000_000), sleepNs)
}

// TestS5WrapAround mirrors spec.md S5: a 2-bar pattern (C then F), with the
// slice straddling the loop boundary, surfaces the end-of-second-bar
// note-offs and the beginning-of-next-loop note-ons, and advances
// PatternStartNs by one loop length.
func TestS5WrapAround(t *testing.T) {
	cChord := chord.Chord{Quality: chord.Major, Root: key.C}
	fChord := chord.Chord{Quality: chord.Major, Root: key.F}
	events := pattern.CreateBars(96, []chord.Chord{cChord, fChord})

	p := Pattern{
		Events:          events,
		LengthNs:        4_000_000_000,
		TicksPerQuarter: 96,
		UsPerQuarter:    500_000,
	}
	s := NewState(p, 0, 250_000_000, 50_000_000)

	sleepNs, buffer, nextCursor := s.ScheduleSlice(3_800_000_000, 3_800_000_000, key.C)

	require.NotEmpty(t, buffer)
	var sawEndOffs, sawLoopOns bool
	for _, pkt := range buffer {
		switch pkt.TimestampNs {
		case 3_875_000_000:
			if pkt.Bytes[0]&0xF0 == 0x80 {
				sawEndOffs = true
			}
		case 4_000_000_000:
			if pkt.Bytes[0]&0xF0 == 0x90 {
				sawLoopOns = true
			}
		}
	}
	assert.True(t, sawEndOffs, "expected end-of-bar note-offs at +3875ms")
	assert.True(t, sawLoopOns, "expected next-loop note-ons at +4000ms")
	assert.Equal(t, uint64(4_000_000_000), s.PatternStartNs)
	assert.Equal(t, uint64(4_050_000_000), nextCursor)
	_ = sleepNs
}

// TestSchedulerCoverage is invariant 4: advancing the slice cursor across
// k whole loops emits every event exactly once per loop, with no
// duplication or omission.
func TestSchedulerCoverage(t *testing.T) {
	p := oneBarCMajor()
	s := NewState(p, 0, 200_000_000, 50_000_000)

	seen := 0
	cursor := uint64(0)
	now := int64(0)
	loops := 3
	for i := 0; i < loops*int(p.LengthNs/200_000_000); i++ {
		_, buffer, next := s.ScheduleSlice(now, cursor, key.C)
		seen += len(buffer)
		cursor = next
		now += 200_000_000
	}
	assert.Equal(t, loops*len(p.Events), seen)
}

// TestSchedulerMonotonicity is invariant 5: within one call's buffer,
// timestamps are non-decreasing and lie within the slice window.
func TestSchedulerMonotonicity(t *testing.T) {
	p := oneBarCMajor()
	s := NewState(p, 0, 600_000_000, 50_000_000)

	_, buffer, _ := s.ScheduleSlice(0, 0, key.C)
	for i := 1; i < len(buffer); i++ {
		assert.LessOrEqual(t, buffer[i-1].TimestampNs, buffer[i].TimestampNs)
	}
	for _, pkt := range buffer {
		assert.GreaterOrEqual(t, pkt.TimestampNs, uint64(0))
		assert.Less(t, pkt.TimestampNs, uint64(600_000_000))
	}
}

func TestNegativeSleepOnLateWakeup(t *testing.T) {
	p := oneBarCMajor()
	s := NewState(p, 0, 200_000_000, 50_000_000)
	sleepNs, _, _ := s.ScheduleSlice(1_000_000_000, 0, key.C)
	assert.Less(t, sleepNs, int64(0))
}


