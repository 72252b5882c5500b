// Package chord implements komp's chord catalogue and recognizer (C2, C3),
// carrying the quality templates and detection algorithm of the original
// komp-core chord.rs unchanged in semantics.
package chord

import (
	"sort"

	"komp/key"
)

// Quality names one of the 34 recognized chord qualities.
type Quality int

const (
	None Quality = iota
	Major
	Minor
	Aug
	Dim
	Dim7
	Sus2
	Sus4
	Five
	SevenSus4
	Major6
	Minor6
	Major6_9
	Minor6_9
	Major7
	Major7b9
	Major7_9
	Major7Plus9
	Major7Plus11
	Major7b13
	Major7_13
	Major7Aug
	Minor7
	Minor7_9
	Minor7_11
	Major7b5
	Minor7b5
	MajorMaj7
	MajorMaj7_9
	MajorMaj7Plus11
	MajorMaj7Aug
	MinorMaj7
	MinorMaj7_9
	MajorAdd9
	MinorAdd9

	numQualities
)

var qualityName = [numQualities]string{
	None:             "None",
	Major:            "Major",
	Minor:            "Minor",
	Aug:              "Aug",
	Dim:              "Dim",
	Dim7:             "Dim7",
	Sus2:             "Sus2",
	Sus4:             "Sus4",
	Five:             "Five",
	SevenSus4:        "SevenSus4",
	Major6:           "Major6",
	Minor6:           "Minor6",
	Major6_9:         "Major6_9",
	Minor6_9:         "Minor6_9",
	Major7:           "Major7",
	Major7b9:         "Major7b9",
	Major7_9:         "Major7_9",
	Major7Plus9:      "Major7Plus9",
	Major7Plus11:     "Major7Plus11",
	Major7b13:        "Major7b13",
	Major7_13:        "Major7_13",
	Major7Aug:        "Major7Aug",
	Minor7:           "Minor7",
	Minor7_9:         "Minor7_9",
	Minor7_11:        "Minor7_11",
	Major7b5:         "Major7b5",
	Minor7b5:         "Minor7b5",
	MajorMaj7:        "MajorMaj7",
	MajorMaj7_9:      "MajorMaj7_9",
	MajorMaj7Plus11:  "MajorMaj7Plus11",
	MajorMaj7Aug:     "MajorMaj7Aug",
	MinorMaj7:        "MinorMaj7",
	MinorMaj7_9:      "MinorMaj7_9",
	MajorAdd9:        "MajorAdd9",
	MinorAdd9:        "MinorAdd9",
}

func (q Quality) String() string {
	if q < 0 || q >= numQualities {
		return "Unknown"
	}
	return qualityName[q]
}

// template gives the ascending semitone offsets from the root that define
// each quality, exactly as chord.rs's Chord::template.
var template = [numQualities][]int{
	None:             {0},
	Major:            {0, 4, 7},
	Minor:            {0, 3, 7},
	Aug:              {0, 4, 8},
	Dim:              {0, 3, 6},
	Dim7:             {0, 3, 6, 9},
	Sus2:             {0, 2, 7},
	Sus4:             {0, 5, 7},
	Five:             {0, 7},
	SevenSus4:        {0, 5, 7, 10},
	Major6:           {0, 4, 7, 9},
	Minor6:           {0, 3, 7, 9},
	Major6_9:         {0, 2, 4, 7, 9},
	Minor6_9:         {0, 2, 3, 7, 9},
	Major7:           {0, 4, 7, 10},
	Major7b9:         {0, 1, 4, 7, 10},
	Major7_9:         {0, 2, 4, 7, 10},
	Major7Plus9:      {0, 3, 4, 7, 10},
	Major7Plus11:     {0, 4, 6, 7, 10},
	Major7b13:        {0, 4, 7, 8, 10},
	Major7_13:        {0, 4, 7, 9, 10},
	Major7Aug:        {0, 4, 8, 10},
	Minor7:           {0, 3, 7, 10},
	Minor7_9:         {0, 2, 3, 7, 10},
	Minor7_11:        {0, 3, 5, 7, 10},
	Major7b5:         {0, 4, 6, 10},
	Minor7b5:         {0, 3, 6, 10},
	MajorMaj7:        {0, 4, 7, 11},
	MajorMaj7_9:      {0, 2, 4, 7, 11},
	MajorMaj7Plus11:  {0, 4, 6, 7, 11},
	MajorMaj7Aug:     {0, 4, 8, 11},
	MinorMaj7:        {0, 3, 7, 11},
	MinorMaj7_9:      {0, 2, 3, 7, 11},
	MajorAdd9:        {0, 2, 4, 7},
	MinorAdd9:        {0, 2, 3, 7},
}

// allQualities lists every catalogued quality in the fixed priority order
// used for direct matching (specific-before-general, mirroring chord.rs's
// match-arm scan order).
var allQualities = []Quality{
	Major, Minor, Aug, Dim, Dim7, Sus2, Sus4, Five, SevenSus4,
	Major6, Minor6, Major6_9, Minor6_9,
	Major7, Major7_9, Major7b9, Major7Plus9, Major7Plus11, Major7b13, Major7_13, Major7Aug,
	Minor7, Minor7_9, Minor7_11,
	Major7b5, Minor7b5,
	MajorMaj7, MajorMaj7_9, MajorMaj7Plus11, MajorMaj7Aug,
	MinorMaj7, MinorMaj7_9,
	MajorAdd9, MinorAdd9,
	None,
}

// fallbackQualities is the restricted subset scanned during inversion
// fallback, excluding Aug, Dim7, Sus2, Major6, Minor6, Major6_9 exactly as
// chord.rs's detect_chord comments out those arms for the rotation pass.
var fallbackQualities = []Quality{
	Major, Minor, Dim, Sus4, Five, SevenSus4,
	Minor6_9,
	Major7, Major7_9, Major7b9, Major7Plus9, Major7Plus11, Major7b13, Major7_13, Major7Aug,
	Minor7, Minor7_9, Minor7_11,
	Major7b5, Minor7b5,
	MajorMaj7, MajorMaj7_9, MajorMaj7Plus11, MajorMaj7Aug,
	MinorMaj7, MinorMaj7_9,
	MajorAdd9, MinorAdd9,
}

// Chord is a recognized or constructed chord: a quality rooted at a pitch
// class.
type Chord struct {
	Quality Quality
	Root    key.PitchClass
}

func (c Chord) String() string {
	return c.Root.String() + " " + c.Quality.String()
}

// Notes returns the MIDI pitch numbers sounded by c in the given octave and
// inversion, lowest-first. octave is the base octave used by the caller
// (see SPEC_FULL.md Open Question 1 for the pattern-builder's choice of
// octave=2 to match the original voicing register); inversion raises the
// lowest `inversion` template tones by one octave before sorting.
func (c Chord) Notes(octave, inversion int) []key.Pitch {
	offs := template[c.Quality]
	out := make([]key.Pitch, len(offs))
	for i, o := range offs {
		invert := 0
		if i < inversion {
			invert = 1
		}
		n := int(c.Root) + o + (1+octave+invert)*key.OctaveSteps
		out[i] = key.Pitch(n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}


