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

// Package controller generates the tick-level waveform of an SPI
// controller driving the emulated peripheral. It exists so that the rest
// of the project (the RUN mode, the debugger's TX command, the capture
// replayer and the tests) has a single, correct way of wiggling the three
// input lines.
//
// The waveform is SPI mode 0: clock rests low, data is presented while the
// clock is low and the peripheral captures it on the rising edge. Bits go
// out most significant first.
package controller

import (
	"github.com/gopherspi/gopherspi/hardware/registers"
	"github.com/gopherspi/gopherspi/hardware/signal"
)

// Bus is the receiving end of the generated waveform. Implemented by
// hardware.Periph and by anything else that wants to watch the wire, the
// recorder for instance.
type Bus interface {
	Step(signal.Lines)
}

// MinTicksPerHalf is the smallest usable half-period of the serial clock,
// in ticks. Below this the peripheral's synchroniser latency means a
// captured bit would be sampled before the controller had presented it.
const MinTicksPerHalf = 2

// DefaultTicksPerHalf is a comfortable half-period for tests and tools.
// The original bench clocked far slower still.
const DefaultTicksPerHalf = 4

// Word packs a write flag, register address and payload byte into the
// 16-bit wire format.
func Word(write bool, addr registers.Address, value uint8) uint16 {
	w := uint16(addr&0x7f)<<8 | uint16(value)
	if write {
		w |= 0x8000
	}
	return w
}

// Driver drives transactions onto a Bus one tick at a time.
type Driver struct {
	bus Bus

	// TicksPerHalf is the number of ticks the clock line spends in each
	// half of its period. Values below MinTicksPerHalf are raised to it.
	TicksPerHalf int

	// idle ticks driven after chip-select is released, giving the
	// synchroniser time to observe the end of the transaction
	leadOut int
}

// NewDriver is the preferred method of initialisation for the Driver type.
func NewDriver(bus Bus) *Driver {
	return &Driver{
		bus:          bus,
		TicksPerHalf: DefaultTicksPerHalf,
		leadOut:      DefaultTicksPerHalf,
	}
}

func (drv *Driver) half() int {
	if drv.TicksPerHalf < MinTicksPerHalf {
		return MinTicksPerHalf
	}
	return drv.TicksPerHalf
}

func (drv *Driver) hold(lines signal.Lines, ticks int) {
	for i := 0; i < ticks; i++ {
		drv.bus.Step(lines)
	}
}

// Idle drives the bus for the given number of ticks with no transaction
// open.
func (drv *Driver) Idle(ticks int) {
	drv.hold(signal.Idle(), ticks)
}

// Transact drives one complete 16-bit transaction: assert chip-select,
// clock out the word MSB first, release chip-select. The driver always
// finishes with enough idle ticks for the peripheral to have committed the
// transaction.
func (drv *Driver) Transact(word uint16) {
	bits := make([]bool, 16)
	for i := range bits {
		bits[i] = word&(0x8000>>i) != 0
	}
	drv.TransactBits(bits)
}

// TransactBits drives a transaction of an arbitrary number of bits. Used
// for well formed transactions by Transact() and directly by tests that
// need a malformed, short transaction.
func (drv *Driver) TransactBits(bits []bool) {
	h := drv.half()

	// the synchroniser must have seen the inactive level of chip-select
	// before an assertion of the line registers as the start of a
	// transaction. a freshly reset synchroniser has not. the lead-in costs
	// nothing when the bus was already idle
	drv.hold(signal.Idle(), h)

	// assert chip-select with the clock at rest
	drv.hold(signal.Lines{ChipSelect: false}, h)

	for _, b := range bits {
		drv.hold(signal.Lines{ChipSelect: false, SerialClock: false, DataIn: b}, h)
		drv.hold(signal.Lines{ChipSelect: false, SerialClock: true, DataIn: b}, h)
	}

	// release chip-select and let the peripheral notice
	drv.hold(signal.Idle(), drv.leadOut+h)
}

// Write drives a complete write transaction for the given register.
func (drv *Driver) Write(addr registers.Address, value uint8) {
	drv.Transact(Word(true, addr, value))
}
