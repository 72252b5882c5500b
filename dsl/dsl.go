// Package dsl parses komp's Chord-Change DSL (C5): a small textual notation
// for parallel voices stepping through a chord change, into per-voice Step
// sequences of equal total duration.
//
// No external parser library is pulled in for this: the grammar is three
// token kinds and two delimiters, smaller than any grammar-engine
// dependency in the pack could justify (see DESIGN.md).
package dsl

import (
	"fmt"
	"strings"

	"komp/key"
)

// Step is one DSL time step for a single voice: either a note-on for Class,
// or (Class == nil) a rest, lasting Beats beats.
type Step struct {
	Class *key.PitchClass
	Beats int
}

// Parse interprets a DSL string into one Step sequence per voice (part),
// extending each part's final step so that every part's total duration
// equals the maximum total duration across all parts.
//
// Grammar:
//
//	dsl  := part (WS part)*
//	part := TOKEN | '[' WS? TOKEN (WS TOKEN)* WS? ']'
//	TOKEN := NOTENAME | '-' | '_'
func Parse(src string) ([][]Step, error) {
	tokens := tokenizeParts(src)
	parts := make([][]Step, 0, len(tokens))
	maxTotal := 0

	for _, part := range tokens {
		steps, err := interpretPart(part)
		if err != nil {
			return nil, err
		}
		total := 0
		for _, s := range steps {
			total += s.Beats
		}
		if total > maxTotal {
			maxTotal = total
		}
		parts = append(parts, steps)
	}

	for i, steps := range parts {
		total := 0
		for _, s := range steps {
			total += s.Beats
		}
		if deficit := maxTotal - total; deficit > 0 {
			if len(steps) == 0 {
				parts[i] = []Step{{Class: nil, Beats: deficit}}
			} else {
				steps[len(steps)-1].Beats += deficit
			}
		}
	}

	return parts, nil
}

// tokenizeParts splits the top-level whitespace-delimited parts, treating a
// bracketed group as one part whose body is itself whitespace-delimited
// tokens.
func tokenizeParts(src string) [][]string {
	var parts [][]string
	fields := strings.Fields(src)

	i := 0
	for i < len(fields) {
		f := fields[i]
		if strings.HasPrefix(f, "[") {
			var group []string
			f = strings.TrimPrefix(f, "[")
			for {
				closed := strings.HasSuffix(f, "]")
				if closed {
					f = strings.TrimSuffix(f, "]")
				}
				if f != "" {
					group = append(group, f)
				}
				i++
				if closed || i >= len(fields) {
					break
				}
				f = fields[i]
			}
			parts = append(parts, group)
			continue
		}
		parts = append(parts, []string{f})
		i++
	}
	return parts
}

// interpretPart turns one part's token list into a Step sequence: '_'
// extends the previous step's duration, '-' is a rest, anything else must
// be a note name.
func interpretPart(tokens []string) ([]Step, error) {
	var steps []Step
	for _, tok := range tokens {
		switch tok {
		case "_":
			if len(steps) == 0 {
				return nil, fmt.Errorf("dsl: %q extends nothing", tok)
			}
			steps[len(steps)-1].Beats++
		case "-":
			steps = append(steps, Step{Class: nil, Beats: 1})
		default:
			c, ok := key.NameToClass(tok)
			if !ok {
				return nil, fmt.Errorf("dsl: unrecognized token %q", tok)
			}
			cls := c
			steps = append(steps, Step{Class: &cls, Beats: 1})
		}
	}
	return steps, nil
}
