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

package spi_test

import (
	"testing"

	"github.com/gopherspi/gopherspi/hardware/cdc"
	"github.com/gopherspi/gopherspi/hardware/registers"
	"github.com/gopherspi/gopherspi/hardware/signal"
	"github.com/gopherspi/gopherspi/hardware/spi"
	"github.com/gopherspi/gopherspi/test"
)

// harness steps the decoder and synchroniser in the order the hardware
// package does.
type harness struct {
	sync *cdc.Synchronizer
	regs *registers.File
	dec  *spi.SPI
}

func newHarness() *harness {
	h := &harness{
		sync: cdc.NewSynchronizer(),
		regs: registers.NewFile(),
	}
	h.dec = spi.NewSPI(h.sync, h.regs)
	return h
}

func (h *harness) step(lines signal.Lines) {
	h.dec.Step()
	h.sync.Step(lines)
}

// clock drives one bit onto the open transaction, two steps per clock
// half.
func (h *harness) clock(b bool) {
	low := signal.Lines{ChipSelect: false, SerialClock: false, DataIn: b}
	high := signal.Lines{ChipSelect: false, SerialClock: true, DataIn: b}
	h.step(low)
	h.step(low)
	h.step(high)
	h.step(high)
}

func (h *harness) open() {
	h.step(signal.Idle())
	h.step(signal.Idle())
	h.step(signal.Lines{ChipSelect: false})
	h.step(signal.Lines{ChipSelect: false})
}

func (h *harness) close() {
	h.step(signal.Idle())
	h.step(signal.Idle())
	h.step(signal.Idle())
}

func TestStateProgression(t *testing.T) {
	h := newHarness()

	test.ExpectEquality(t, h.dec.State(), spi.StateIdle)

	h.open()
	test.ExpectEquality(t, h.dec.State(), spi.StateReceiving)

	word := uint16(0x8155)
	for i := 0; i < 16; i++ {
		h.clock(word&(0x8000>>i) != 0)
	}
	test.ExpectEquality(t, h.dec.State(), spi.StateFull)
	test.ExpectEquality(t, h.dec.BitCount(), 16)
	test.ExpectEquality(t, h.dec.Accumulator(), word)

	h.close()
	test.ExpectEquality(t, h.dec.State(), spi.StateIdle)
	test.ExpectEquality(t, h.regs.Read(registers.OutHigh), 0x55)

	c, ok := h.dec.LastCommit()
	test.DemandEquality(t, ok, true)
	test.ExpectEquality(t, c.Outcome, spi.OutcomeWrite)
}

func TestCommitHandler(t *testing.T) {
	h := newHarness()

	var commits []spi.Commit
	h.dec.SetCommitHandler(func(c spi.Commit) {
		commits = append(commits, c)
	})

	// an empty transaction. chip-select asserted and released without a
	// single clock
	h.open()
	h.close()

	test.DemandEquality(t, len(commits), 1)
	test.ExpectEquality(t, commits[0].Outcome, spi.OutcomeIncomplete)
	test.ExpectEquality(t, commits[0].Bits, 0)

	// a real one
	h.open()
	word := uint16(0x8001)
	for i := 0; i < 16; i++ {
		h.clock(word&(0x8000>>i) != 0)
	}
	h.close()

	test.DemandEquality(t, len(commits), 2)
	test.ExpectEquality(t, commits[1].Outcome, spi.OutcomeWrite)
	test.ExpectEquality(t, commits[1].Address, registers.OutLow)
	test.ExpectEquality(t, commits[1].Value, 0x01)
}

func TestFreshAccumulator(t *testing.T) {
	h := newHarness()

	h.open()
	h.clock(true)
	h.clock(true)
	test.ExpectEquality(t, h.dec.BitCount(), 2)

	// the next transaction starts with a clean accumulator
	h.close()
	h.open()
	test.ExpectEquality(t, h.dec.BitCount(), 0)
	test.ExpectEquality(t, h.dec.State(), spi.StateReceiving)
}

func TestDecoderReset(t *testing.T) {
	h := newHarness()

	h.open()
	h.clock(true)
	h.dec.Reset()

	test.ExpectEquality(t, h.dec.State(), spi.StateIdle)
	test.ExpectEquality(t, h.dec.BitCount(), 0)
	test.ExpectEquality(t, h.dec.Accumulator(), 0)

	_, ok := h.dec.LastCommit()
	test.ExpectEquality(t, ok, false)
}

func TestCommitString(t *testing.T) {
	c := spi.Commit{
		Outcome: spi.OutcomeWrite,
		Word:    0x822a,
		Bits:    16,
		Address: registers.PWMEnableLow,
		Value:   0x2a,
	}
	test.ExpectEquality(t, c.String(), "write: addr=0x02 (pwm_enable_low) value=0x2a")

	c = spi.Commit{
		Outcome: spi.OutcomeIncomplete,
		Bits:    7,
	}
	test.ExpectEquality(t, c.String(), "incomplete (ignored) after 7 bits")
}
