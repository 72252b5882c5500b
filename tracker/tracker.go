// Package tracker implements komp's input tracker (C4) and the shared
// current-chord cell (C8): maintaining the set of held notes as raw MIDI
// packets arrive, re-running chord recognition on change, and publishing
// the result for the scheduler thread to read.
package tracker

import (
	"fmt"
	"sort"
	"sync"

	"komp/chord"
	"komp/key"
)

// heldNote identifies one held (channel, note) pair.
type heldNote struct {
	channel uint8
	note    uint8
}

// Tracker owns the held-notes set and the current-chord cell. The zero
// value is ready to use. Tracker is not safe for concurrent calls to
// Apply from multiple goroutines (spec.md §5: the input activity is
// single-threaded), but Sounding and Cell().Get are safe to call
// concurrently with Apply.
type Tracker struct {
	mu   sync.Mutex
	held map[heldNote]struct{}
	cell Cell

	// Logf receives a message for malformed or unrecognized packets and
	// dropped/ignored bytes; defaults to a no-op if nil.
	Logf func(format string, args ...any)
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{held: make(map[heldNote]struct{})}
}

func (t *Tracker) logf(format string, args ...any) {
	if t.Logf != nil {
		t.Logf(format, args...)
	}
}

// Apply consumes one raw MIDI packet (1 or 3 bytes) per spec.md §4.4,
// mutating the held-notes set and, if the set changed, re-running chord
// recognition and publishing the result (or None) into the current-chord
// cell. Malformed or unrecognized packets are logged and dropped.
func (t *Tracker) Apply(data []byte) {
	switch len(data) {
	case 1:
		if data[0] != 0xFE {
			t.logf("tracker: dropping unrecognized 1-byte packet %#x", data[0])
		}
		return
	case 3:
		// fall through
	default:
		t.logf("tracker: dropping packet of unexpected length %d", len(data))
		return
	}

	command := data[0] & 0xF0
	channel := data[0] & 0x0F
	note := data[1]
	velocity := data[2]

	t.mu.Lock()
	if t.held == nil {
		t.held = make(map[heldNote]struct{})
	}

	changed := false
	switch command {
	case 0x90: // Note On
		if velocity > 0 {
			changed = t.add(channel, note)
		} else {
			changed = t.remove(channel, note)
		}
	case 0x80: // Note Off
		changed = t.remove(channel, note)
	case 0xB0: // Controller — ignored
	default:
		t.mu.Unlock()
		t.logf("tracker: dropping unrecognized command %#x", command)
		return
	}

	var sounding []key.Pitch
	held := len(t.held) > 0
	if changed && held {
		sounding = t.soundingLocked()
	}
	t.mu.Unlock()

	if changed && held {
		candidates := chord.Detect(sounding)
		if len(candidates) > 0 {
			t.cell.Set(candidates[0])
		} else {
			t.cell.Set(chord.Chord{Quality: chord.None, Root: key.C})
		}
	}
	// changed && !held: the set is empty, so per spec.md §4.4 the
	// recognizer is not invoked and the cell is left untouched.
}

func (t *Tracker) add(channel, note uint8) bool {
	k := heldNote{channel, note}
	if _, ok := t.held[k]; ok {
		return false
	}
	t.held[k] = struct{}{}
	return true
}

func (t *Tracker) remove(channel, note uint8) bool {
	k := heldNote{channel, note}
	if _, ok := t.held[k]; !ok {
		return false
	}
	delete(t.held, k)
	return true
}

// soundingLocked returns the currently held notes as sorted MIDI pitch
// numbers. Callers must hold t.mu.
func (t *Tracker) soundingLocked() []key.Pitch {
	out := make([]key.Pitch, 0, len(t.held))
	for k := range t.held {
		out = append(out, key.Pitch(k.note))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Sounding returns a snapshot of the currently held notes, safe to call
// concurrently with Apply — used by the live status view to poll state
// from a separate goroutine.
func (t *Tracker) Sounding() []key.Pitch {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.soundingLocked()
}

// Cell returns the tracker's current-chord cell for the scheduler to read.
func (t *Tracker) Cell() *Cell { return &t.cell }

// String renders a held-notes set for diagnostics.
func (t *Tracker) String() string {
	return fmt.Sprintf("held=%v", t.Sounding())
}
