// Package config loads named accompaniment presets from a YAML file, so an
// operator can select a backing pattern by name instead of hardcoding one.
// Grounded closely on the teacher's parser.LoadTrack (read file, unmarshal,
// apply defaults) — this is static asset loading, not session persistence
// (spec.md's Non-goals still exclude the latter).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset describes one named accompaniment pattern: a Chord-Change DSL
// string per voice, a subdivision, and a tempo.
type Preset struct {
	Name            string   `yaml:"name"`
	Tempo           int      `yaml:"tempo"`
	Subdivision     int      `yaml:"subdivision"`
	TicksPerQuarter int      `yaml:"ticks_per_quarter"`
	Voices          []Voice  `yaml:"voices"`
}

// Voice is one DSL-driven part of a preset, with its own registration
// octave and output channel. DSL is expected to parse to exactly one
// bracketed part — wrap multi-step voices in brackets, e.g. "[C _ G -]".
type Voice struct {
	DSL     string `yaml:"dsl"`
	Octave  int    `yaml:"octave"`
	Channel uint8  `yaml:"channel"`
}

// Library is a named collection of presets, as loaded from a single file.
type Library struct {
	Presets []Preset `yaml:"presets"`
}

// Load reads and parses a preset library file, applying defaults to any
// preset missing a subdivision or ticks-per-quarter value.
func Load(filename string) (*Library, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}

	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", filename, err)
	}

	for i := range lib.Presets {
		if lib.Presets[i].Subdivision == 0 {
			lib.Presets[i].Subdivision = 4
		}
		if lib.Presets[i].TicksPerQuarter == 0 {
			lib.Presets[i].TicksPerQuarter = 96
		}
		if lib.Presets[i].Tempo == 0 {
			lib.Presets[i].Tempo = 120
		}
	}

	return &lib, nil
}

// Find looks up a preset by name.
func (l *Library) Find(name string) (Preset, bool) {
	for _, p := range l.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}


