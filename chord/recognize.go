package chord

import (
	"sort"

	"komp/key"
)

// normalize reduces sounding pitches to a deduplicated, sorted set of pitch
// classes rotated so the lowest sounding pitch's class is treated as root
// candidate 0; normalize returns that root candidate plus the ascending
// semitone offsets from it, mirroring chord.rs's chord_template.
func normalize(sounding []key.Pitch) (key.PitchClass, []int) {
	if len(sounding) == 0 {
		return key.C, nil
	}
	sorted := make([]key.Pitch, len(sounding))
	copy(sorted, sounding)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	root := sorted[0].Class()
	seen := map[int]bool{0: true}
	offs := []int{0}
	for _, p := range sorted[1:] {
		d := int(key.Norm(int(p.Class()) - int(root)))
		if !seen[d] {
			seen[d] = true
			offs = append(offs, d)
		}
	}
	sort.Ints(offs)
	return root, offs
}

func sameTemplate(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// rotation is one inversion-rotation of a template: the rotated offsets
// plus the pitch-class shift of its root relative to the original root.
type rotation struct {
	offs      []int
	rootShift int
}

// rotations generates every inversion-rotation of offs (always moving the
// current lowest offset up an octave and renormalizing), mirroring
// chord.rs's generate_templates. It returns len(offs) rotations, the
// first being offs itself with no root shift.
func rotations(offs []int) []rotation {
	out := make([]rotation, 0, len(offs))
	cur := append([]int(nil), offs...)
	shift := 0
	for range offs {
		cp := append([]int(nil), cur...)
		sort.Ints(cp)
		out = append(out, rotation{offs: cp, rootShift: shift})

		lowest := cur[0]
		next := make([]int, len(cur)-1)
		copy(next, cur[1:])
		next = append(next, lowest+key.OctaveSteps)
		base := next[0]
		shift += base
		for i := range next {
			next[i] -= base
		}
		cur = next
	}
	return out
}

// Detect recognizes the chord(s) formed by a set of sounding MIDI pitches.
// It scans every catalogued quality in priority order for a direct match
// against the normalized template; if none matches, it falls back to
// scanning each inversion rotation against the restricted fallback
// quality list. A final disambiguation step drops a duplicate leading
// Major7b5 candidate, exactly as chord.rs's detect_chord.
func Detect(sounding []key.Pitch) []Chord {
	root, offs := normalize(sounding)
	if len(offs) == 0 {
		return nil
	}

	var res []Chord
	for _, q := range allQualities {
		if sameTemplate(template[q], offs) {
			res = append(res, Chord{Quality: q, Root: root})
		}
	}

	if len(res) == 0 {
		for _, rot := range rotations(offs) {
			rotRoot := key.Norm(int(root) + rot.rootShift)
			for _, q := range fallbackQualities {
				if sameTemplate(template[q], rot.offs) {
					res = append(res, Chord{Quality: q, Root: rotRoot})
				}
			}
		}
	}

	if len(res) >= 2 && res[0].Quality == Major7b5 && res[1].Quality == Major7b5 {
		res = res[1:]
	}

	return res
}
