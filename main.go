package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"golang.org/x/term"

	"komp/chord"
	"komp/config"
	"komp/display"
	"komp/dsl"
	"komp/encode"
	"komp/key"
	"komp/midiio"
	"komp/pattern"
	"komp/scheduler"
	"komp/tracker"
)

var presetPath string
var presetName string
var useTUI bool

func main() {
	root := &cobra.Command{
		Use:   "komp <source-index> <destination-index>",
		Short: "A real-time MIDI accompanist",
		Long: `komp listens for held notes on a MIDI input, recognizes the chord they
form, and plays a looping accompaniment pattern transposed to that chord's
root on a MIDI output.`,
		Args: cobra.ArbitraryArgs,
		RunE: runKomp,
	}
	root.Flags().StringVar(&presetPath, "preset-file", "", "YAML file of named accompaniment presets")
	root.Flags().StringVar(&presetName, "preset", "", "name of the preset to play (default: a built-in I-IV-V pattern)")
	root.Flags().BoolVar(&useTUI, "tui", false, "show a live status screen instead of plain log output")

	root.AddCommand(dumpCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runKomp(cmd *cobra.Command, args []string) error {
	toolName := cmd.Root().Use

	if len(args) < 1 {
		printUsage(toolName, "source-index", midiio.SourceNames())
		os.Exit(1)
	}
	sourceIndex, ok := parseIndex(args[0])
	if !ok || sourceIndex >= len(midiio.SourceNames()) {
		fmt.Printf("Wrong source index: %s\n", args[0])
		os.Exit(1)
	}

	if len(args) < 2 {
		printUsage(toolName, "destination-index", midiio.DestinationNames())
		os.Exit(1)
	}
	destIndex, ok := parseIndex(args[1])
	if !ok || destIndex >= len(midiio.DestinationNames()) {
		fmt.Printf("Wrong destination index: %s\n", args[1])
		os.Exit(1)
	}

	in, err := midiio.OpenSource(sourceIndex)
	if err != nil {
		return err
	}
	out, err := midiio.OpenDestination(destIndex)
	if err != nil {
		return err
	}
	defer midiio.Close(in, out, func(format string, a ...any) { fmt.Fprintf(os.Stderr, format+"\n", a...) })

	events, ticksPerQuarter, usPerQuarter, bars, err := buildPattern(presetPath, presetName)
	if err != nil {
		return err
	}

	tr := tracker.New()
	tr.Logf = func(format string, a ...any) { fmt.Fprintf(os.Stderr, format+"\n", a...) }

	var stopRequested atomic.Bool

	stopListening, err := midiio.Listen(in, func(data []byte, _ int32) {
		tr.Apply(data)
	})
	if err != nil {
		return err
	}
	defer stopListening()

	schedulerDone := make(chan struct{})
	defer func() { <-schedulerDone }()
	go runScheduler(out, tr, events, ticksPerQuarter, usPerQuarter, bars, &stopRequested, schedulerDone)

	// Graceful shutdown on SIGINT/SIGTERM as well as the spec's
	// single-line-on-stdin trigger.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	signalled := make(chan struct{})
	go func() {
		<-sig
		stopRequested.Store(true)
		close(signalled)
	}()

	if useTUI && !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "komp: --tui requires an interactive terminal, falling back to plain output")
		useTUI = false
	}

	if useTUI {
		poll := func() display.Snapshot {
			c, ok := tr.Cell().Get()
			return display.Snapshot{
				HeldNotes: tr.Sounding(),
				Chord:     c,
				HasChord:  ok,
				Playing:   !stopRequested.Load(),
			}
		}
		err := display.Run(poll)
		stopRequested.Store(true)
		return err
	}

	fmt.Printf("komp: listening on %q, playing on %q. Press Enter to quit.\n",
		midiio.SourceNames()[sourceIndex], midiio.DestinationNames()[destIndex])

	lineRead := make(chan struct{})
	go func() {
		bufio.NewScanner(os.Stdin).Scan()
		close(lineRead)
	}()
	select {
	case <-lineRead:
	case <-signalled:
	}
	stopRequested.Store(true)
	return nil
}

// runScheduler drives the wrap-around slice scheduler until stop is set,
// then flushes a mute-all packet for anything still sounding before
// closing done — the caller must wait on done before closing the MIDI
// output port, so this final flush isn't raced by the port shutting down.
func runScheduler(out drivers.Out, tr *tracker.Tracker, events []pattern.TimedEvent, ticksPerQuarter, usPerQuarter uint32, bars int, stop *atomic.Bool, done chan<- struct{}) {
	defer close(done)

	lengthNs := uint64(bars*4) * uint64(usPerQuarter) * 1000

	p := scheduler.Pattern{
		Events:          events,
		LengthNs:        lengthNs,
		TicksPerQuarter: ticksPerQuarter,
		UsPerQuarter:    usPerQuarter,
	}
	const sliceLengthNs = 200_000_000
	const deadlineMarginNs = 50_000_000

	s := scheduler.NewState(p, uint64(time.Now().UnixNano()), sliceLengthNs, deadlineMarginNs)
	cursor := s.PatternStartNs

	sounding := make(map[encode.SoundingNote]struct{})

	for !stop.Load() {
		root := scheduler.DefaultRoot
		if c, ok := tr.Cell().Get(); ok {
			root = scheduler.RootFromChord(c)
		}

		now := time.Now().UnixNano()
		sleepNs, buffer, next := s.ScheduleSlice(now, cursor, root)
		cursor = next

		if len(buffer) > 0 {
			trackSounding(sounding, buffer)
			if err := midiio.Flush(out, buffer); err != nil {
				fmt.Fprintf(os.Stderr, "komp: send failed: %v\n", err)
			}
		}

		if sleepNs > 0 {
			time.Sleep(time.Duration(sleepNs))
		}
	}

	// Silence anything still sounding when playback is interrupted, per
	// spec.md §4.9's mute-all helper.
	if len(sounding) > 0 {
		notes := make([]encode.SoundingNote, 0, len(sounding))
		for n := range sounding {
			notes = append(notes, n)
		}
		muted := make([]scheduler.PacketEvent, 0, len(notes))
		for _, b := range encode.MuteAll(notes, key.C) {
			muted = append(muted, scheduler.PacketEvent{Bytes: b})
		}
		if err := midiio.Flush(out, muted); err != nil {
			fmt.Fprintf(os.Stderr, "komp: mute-all send failed: %v\n", err)
		}
	}
}

// trackSounding updates the currently-sounding note set from a flushed
// packet buffer: a note-on at nonzero velocity starts a note; a note-off
// or a velocity-0 note-on ends it. Packet bytes are already transposed by
// the scheduler's root, so the tracked notes are the raw outbound wire
// notes MuteAll must silence directly (root 0, no further transposition).
func trackSounding(sounding map[encode.SoundingNote]struct{}, buffer []scheduler.PacketEvent) {
	for _, p := range buffer {
		status := p.Bytes[0] & 0xF0
		n := encode.SoundingNote{Channel: p.Bytes[0] & 0x0F, Note: p.Bytes[1]}
		switch {
		case status == 0x90 && p.Bytes[2] > 0:
			sounding[n] = struct{}{}
		default:
			delete(sounding, n)
		}
	}
}

// buildPattern loads the requested preset (or falls back to a built-in
// I-IV-V progression) and renders it to timed events via the pattern
// builder, along with the pattern's length in bars.
func buildPattern(presetPath, presetName string) (events []pattern.TimedEvent, ticksPerQuarter, usPerQuarter uint32, bars int, err error) {
	if presetPath != "" && presetName != "" {
		lib, loadErr := config.Load(presetPath)
		if loadErr != nil {
			return nil, 0, 0, 0, loadErr
		}
		p, ok := lib.Find(presetName)
		if !ok {
			return nil, 0, 0, 0, fmt.Errorf("komp: preset %q not found in %s", presetName, presetPath)
		}
		return renderPreset(p)
	}

	progression := []chord.Chord{
		{Quality: chord.Major, Root: key.C},
		{Quality: chord.Major, Root: key.F},
		{Quality: chord.Major, Root: key.G},
		{Quality: chord.Major, Root: key.C},
	}
	events = pattern.CreateBars(96, progression)
	return events, 96, 500_000, len(progression), nil
}

// renderPreset renders a preset's voices to timed events. A voice's DSL
// string may parse to multiple simultaneous top-level parts (spec.md §3's
// grammar, e.g. "C [E Eb] G"); every part is rendered on that voice's
// octave and channel. The preset's length in bars is the longest part's
// total step duration, since StepsToEvents gives each DSL beat a whole bar.
func renderPreset(p config.Preset) (events []pattern.TimedEvent, ticksPerQuarter, usPerQuarter uint32, bars int, err error) {
	usPerQuarter = uint32(60_000_000 / p.Tempo)
	for _, v := range p.Voices {
		parts, parseErr := dsl.Parse(v.DSL)
		if parseErr != nil {
			return nil, 0, 0, 0, parseErr
		}
		for _, part := range parts {
			total := 0
			for _, step := range part {
				total += step.Beats
			}
			if total > bars {
				bars = total
			}
			events = append(events, pattern.StepsToEvents(p.TicksPerQuarter, 0, v.Octave, v.Channel, part)...)
		}
	}
	pattern.Sort(events)
	return events, uint32(p.TicksPerQuarter), usPerQuarter, bars, nil
}

func parseIndex(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func printUsage(toolName, missing string, ports []string) {
	fmt.Printf("Usage: %s <source-index> <destination-index>\n\n", toolName)
	fmt.Printf("Missing or invalid %s.\n\n", missing)
	fmt.Println("Available ports:")
	for i, name := range ports {
		fmt.Printf("[%d] %s\n", i, name)
	}
}
