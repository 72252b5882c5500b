package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"komp/chord"
	"komp/dsl"
	"komp/key"
)

func TestTimeCodeTicks(t *testing.T) {
	tc := TimeCode{Bar: 1, Beat: 2, Tick: 10}
	assert.Equal(t, uint32((1*4+2)*96+10), tc.Ticks(96))
}

func TestSortOrder(t *testing.T) {
	events := []TimedEvent{
		{Timing: 10, Kind: NoteOff, Note: 5},
		{Timing: 10, Kind: NoteOn, Note: 3},
		{Timing: 5, Kind: NoteOn, Note: 1},
	}
	Sort(events)
	require.Equal(t, uint32(5), events[0].Timing)
	require.Equal(t, uint32(10), events[1].Timing)
	require.Equal(t, NoteOn, events[1].Kind)
	require.Equal(t, uint32(10), events[2].Timing)
	require.Equal(t, NoteOff, events[2].Kind)
}

func TestCreateBarFourHits(t *testing.T) {
	c := chord.Chord{Quality: chord.Major, Root: key.C}
	events := CreateBar(96, 0, c)
	// 3 notes per hit, 4 hits, on+off each
	assert.Len(t, events, 3*4*2)
}

func TestCreateBarsTiling(t *testing.T) {
	chords := []chord.Chord{
		{Quality: chord.Major, Root: key.C},
		{Quality: chord.Major, Root: key.F},
	}
	events := CreateBars(96, chords)
	assert.Len(t, events, 2*3*4*2)
	for i := 1; i < len(events); i++ {
		assert.False(t, Less(events[i], events[i-1]))
	}
}

func TestStepsToEventsRestAdvancesTime(t *testing.T) {
	parts, err := dsl.Parse("[C - E]")
	require.NoError(t, err)
	events := StepsToEvents(96, 0, 3, 0, parts[0])
	// "-" (rest) contributes no events, only the two notes do.
	assert.Len(t, events, 4)
}

func TestStepsToEventsExtendedDuration(t *testing.T) {
	parts, err := dsl.Parse("[C _ _]")
	require.NoError(t, err)
	events := StepsToEvents(96, 0, 3, 0, parts[0])
	require.Len(t, events, 2)
	on, off := events[0], events[1]
	assert.Equal(t, NoteOn, on.Kind)
	assert.Equal(t, NoteOff, off.Kind)
	assert.Equal(t, uint32(3*96+(3-1)*4*96), off.Timing-on.Timing)
}
