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

package hardware

import (
	"github.com/gopherspi/gopherspi/hardware/cdc"
	"github.com/gopherspi/gopherspi/hardware/registers"
	"github.com/gopherspi/gopherspi/hardware/signal"
	"github.com/gopherspi/gopherspi/hardware/spi"
)

// Periph is the main container for the emulated components of the
// peripheral: the input synchroniser, the SPI decoder and the register
// file.
type Periph struct {
	Sync *cdc.Synchronizer
	SPI  *spi.SPI
	Regs *registers.File

	// number of ticks since creation or the last reset
	ticks uint64
}

// NewPeriph creates and connects the emulated components. The returned
// peripheral is in its power-on state, which is the same as its post-reset
// state.
func NewPeriph() *Periph {
	p := &Periph{
		Sync: cdc.NewSynchronizer(),
		Regs: registers.NewFile(),
	}
	p.SPI = spi.NewSPI(p.Sync, p.Regs)
	return p
}

// Reset emulates the assertion of the active-low reset line. Everything is
// forced back to zero unconditionally: synchroniser histories, the
// transaction tracker and every register. An in-progress transaction is
// abandoned with no register write.
func (p *Periph) Reset() {
	p.Sync.Reset()
	p.SPI.Reset()
	p.Regs.Reset()
	p.ticks = 0
}

// Step the peripheral forward one tick with the raw line levels for that
// tick.
//
// The decoder runs before the synchroniser shifts in the new samples. This
// is what gives every stage its view of the previous tick's state, the way
// every flip-flop in the original circuit latches its input
// simultaneously. Reordering the two calls would shorten the pipeline by
// one tick and misalign bit capture against the clock edge.
func (p *Periph) Step(lines signal.Lines) {
	p.SPI.Step()
	p.Sync.Step(lines)
	p.ticks++
}

// StepIdle advances the peripheral the given number of ticks with the bus
// in its idle state.
func (p *Periph) StepIdle(ticks int) {
	for i := 0; i < ticks; i++ {
		p.Step(signal.Idle())
	}
}

// Ticks returns the number of ticks since creation or the last reset.
func (p *Periph) Ticks() uint64 {
	return p.ticks
}

// Registers returns a copy of the register file in its current state.
// External readers must use this snapshot rather than reaching into the
// file itself.
func (p *Periph) Registers() registers.File {
	return p.Regs.Snapshot()
}
