// This file is part of GopherSPI.
//
// GopherSPI is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherSPI is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherSPI.  If not, see <https://www.gnu.org/licenses/>.

// Package recorder captures the wire activity of the emulated bus and
// writes it to disk as a WAV file, one 8-bit sample per tick. Note that
// the trace is buffered in memory in its entirety and written on End(). It
// is therefore only suitable for bounded runs.
//
// The three lines are packed into each sample the same way the original
// circuit mapped them onto its input port: bit 0 the serial clock, bit 1
// the data-in line, bit 2 the chip-select line. A WAV file is an odd home
// for logic traces but it opens in any audio editor, which is a perfectly
// good poor-man's logic viewer.
package recorder

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gopherspi/gopherspi/curated"
	"github.com/gopherspi/gopherspi/hardware/signal"
	"github.com/gopherspi/gopherspi/logger"
)

// sentinal error pattern for all errors originating in this package.
const TraceError = "trace: %v"

// nominal number of ticks per second in the written file. the emulation
// has no real-time base so the value only affects how playback tools scale
// the trace.
const TickRate = 44100

// sample bit layout, matching the input port of the original circuit.
const (
	bitSerialClock = 0x01
	bitDataIn      = 0x02
	bitChipSelect  = 0x04
)

// Bus is the destination the recorder forwards ticks to, usually the
// emulated peripheral.
type Bus interface {
	Step(signal.Lines)
}

// Trace records every tick driven through it. It sits between a waveform
// source and the Bus it would otherwise drive directly.
type Trace struct {
	bus     Bus
	samples []int
}

// NewTrace is the preferred method of initialisation for the Trace type.
func NewTrace(bus Bus) *Trace {
	return &Trace{
		bus:     bus,
		samples: make([]int, 0, 1024),
	}
}

// Step implements the Bus interface. The tick is recorded and forwarded.
func (tr *Trace) Step(lines signal.Lines) {
	var s int
	if lines.SerialClock {
		s |= bitSerialClock
	}
	if lines.DataIn {
		s |= bitDataIn
	}
	if lines.ChipSelect {
		s |= bitChipSelect
	}
	tr.samples = append(tr.samples, s)

	if tr.bus != nil {
		tr.bus.Step(lines)
	}
}

// Len returns the number of ticks recorded so far.
func (tr *Trace) Len() int {
	return len(tr.samples)
}

// End writes the recorded trace to the named file.
func (tr *Trace) End(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(TraceError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(TraceError, err)
		}
	}()

	enc := wav.NewEncoder(f, TickRate, 8, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  TickRate,
		},
		Data:           tr.samples,
		SourceBitDepth: 8,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(TraceError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(TraceError, err)
	}

	logger.Logf("recorder", "%d ticks written to %s", len(tr.samples), filename)

	return nil
}
