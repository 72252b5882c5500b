// Package midiio wires komp's domain packages to real MIDI hardware via
// gitlab.com/gomidi/midi/v2 and its drivers, the external collaborators
// spec.md §6 models as interfaces (port discovery and packet I/O; host
// time is read with time.Now in main.go).
// Grounded on the teacher's midi/generator.go (message construction) and
// other_examples/icco-genidi's cmd/virtual.go (port lifecycle, Listen
// wiring, rtmididrv driver selection).
package midiio

import (
	"fmt"

	midi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"komp/scheduler"
)

// SourceNames lists available MIDI input port names, in the enumeration
// order used for index-based CLI selection.
func SourceNames() []string {
	ports := midi.GetInPorts()
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names
}

// DestinationNames lists available MIDI output port names.
func DestinationNames() []string {
	ports := midi.GetOutPorts()
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names
}

// OpenSource opens the input port at sourceIndex.
func OpenSource(sourceIndex int) (drivers.In, error) {
	ports := midi.GetInPorts()
	if sourceIndex < 0 || sourceIndex >= len(ports) {
		return nil, fmt.Errorf("midiio: source index %d out of range (have %d sources)", sourceIndex, len(ports))
	}
	in := ports[sourceIndex]
	if err := in.Open(); err != nil {
		return nil, fmt.Errorf("midiio: opening source %d: %w", sourceIndex, err)
	}
	return in, nil
}

// OpenDestination opens the output port at destIndex.
func OpenDestination(destIndex int) (drivers.Out, error) {
	ports := midi.GetOutPorts()
	if destIndex < 0 || destIndex >= len(ports) {
		return nil, fmt.Errorf("midiio: destination index %d out of range (have %d destinations)", destIndex, len(ports))
	}
	out := ports[destIndex]
	if err := out.Open(); err != nil {
		return nil, fmt.Errorf("midiio: opening destination %d: %w", destIndex, err)
	}
	return out, nil
}

// Listen registers onPacket to be called for every raw short message
// received on in, and returns a stop function to unregister it. It mirrors
// icco-genidi's inPort.Listen(callback, drivers.ListenConfig{}) wiring.
func Listen(in drivers.In, onPacket func(data []byte, timestamp int32)) (stop func(), err error) {
	stop, err = in.Listen(onPacket, drivers.ListenConfig{})
	if err != nil {
		return nil, fmt.Errorf("midiio: listen: %w", err)
	}
	return stop, nil
}

// Flush writes a scheduler slice's packet buffer to out, in timestamp
// order, ignoring each event's absolute timestamp: the scheduler's sleep
// budget already paces slice delivery, so outbound bytes are sent
// immediately as each slice is flushed, exactly once per slice as spec.md
// §6 describes ("Buffer is flushed to the destination port once per
// slice").
func Flush(out drivers.Out, buffer []scheduler.PacketEvent) error {
	for _, pkt := range buffer {
		if err := out.Send(pkt.Bytes[:]); err != nil {
			return fmt.Errorf("midiio: send: %w", err)
		}
	}
	return nil
}

// Close closes an input and output port pair, logging but not failing on
// either error (transient I/O failure policy, spec.md §7).
func Close(in drivers.In, out drivers.Out, logf func(format string, args ...any)) {
	if in != nil {
		if err := in.Close(); err != nil && logf != nil {
			logf("midiio: closing source: %v", err)
		}
	}
	if out != nil {
		if err := out.Close(); err != nil && logf != nil {
			logf("midiio: closing destination: %v", err)
		}
	}
}
