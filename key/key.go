// Package key implements the pitch-class and MIDI pitch-number algebra
// (komp's C1): modular-12 key arithmetic and note-name formatting.
package key

import "fmt"

// OctaveSteps is the number of pitch classes in an octave.
const OctaveSteps = 12

// PitchClass is a value in [0,11], modular-12.
type PitchClass uint8

// The twelve named pitch classes, in ascending order from C.
const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

var className = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Add combines two pitch classes modulo 12.
func (k PitchClass) Add(other PitchClass) PitchClass {
	return PitchClass((uint8(k) + uint8(other)) % OctaveSteps)
}

// Norm reduces any integer offset into [0,11].
func Norm(n int) PitchClass {
	n %= OctaveSteps
	if n < 0 {
		n += OctaveSteps
	}
	return PitchClass(n)
}

func (k PitchClass) String() string {
	return className[uint8(k)%OctaveSteps]
}

// Pitch is a MIDI note number in [0,127]. C4 = 60.
type Pitch uint8

// Class returns the pitch class of a pitch number.
func (p Pitch) Class() PitchClass {
	return PitchClass(uint8(p) % OctaveSteps)
}

// Octave returns the octave number of a pitch number (C4 = octave 4).
func (p Pitch) Octave() int {
	return int(p)/OctaveSteps - 1
}

func (p Pitch) String() string {
	return fmt.Sprintf("%s%d", p.Class(), p.Octave())
}

// NameToClass parses a note name ("C", "C#", "Db", ...) into a pitch class.
// Unrecognized names return (C, false).
func NameToClass(name string) (PitchClass, bool) {
	c, ok := nameTable[name]
	return c, ok
}

var nameTable = map[string]PitchClass{
	"C": C, "B#": C,
	"C#": CSharp, "Db": CSharp,
	"D": D,
	"D#": DSharp, "Eb": DSharp,
	"E": E, "Fb": E,
	"F": F, "E#": F,
	"F#": FSharp, "Gb": FSharp,
	"G": G,
	"G#": GSharp, "Ab": GSharp,
	"A": A,
	"A#": ASharp, "Bb": ASharp,
	"B": B, "Cb": B,
}
