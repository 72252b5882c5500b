package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"komp/key"
	"komp/midiio"
)

// dumpCmd implements the optional debug subcommand that renders a named
// preset pattern to a Standard MIDI File without needing a live MIDI
// device attached, scoped down from the teacher's full export command.
func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <preset-file> <preset-name> <out.mid>",
		Short: "Render a named preset pattern to a Standard MIDI File",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			presetFile, name, outPath := args[0], args[1], args[2]

			events, ticksPerQuarter, usPerQuarter, _, err := buildPattern(presetFile, name)
			if err != nil {
				return err
			}
			bpm := 60_000_000 / float64(usPerQuarter)

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("dump: creating %s: %w", outPath, err)
			}
			defer f.Close()

			if err := midiio.DumpPattern(f, events, ticksPerQuarter, bpm, key.C); err != nil {
				return fmt.Errorf("dump: writing %s: %w", outPath, err)
			}
			fmt.Printf("wrote %s\n", outPath)
			return nil
		},
	}
}
