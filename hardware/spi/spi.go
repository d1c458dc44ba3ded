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

// Package spi implements the transaction tracker and register decoder of
// the peripheral. The tracker shifts one bit into a 16-bit accumulator for
// every rising edge of the synchronised serial clock while chip-select is
// held active. When chip-select is released the accumulated word is decoded
// and, if it is a well formed write command, one register in the file is
// overwritten.
//
// The word format is fixed. MSB first:
//
//	bit  15     write-enable flag
//	bits 14-8   register address
//	bits 7-0    payload byte
//
// There is no error channel back to the controller. Short transactions,
// clear write flags and reserved addresses are all discarded without
// comment on the wire but each produces a distinct Commit outcome that the
// embedding application can observe.
package spi

import (
	"fmt"

	"github.com/gopherspi/gopherspi/hardware/cdc"
	"github.com/gopherspi/gopherspi/hardware/registers"
)

// WordBits is the number of bits in a complete transaction.
const WordBits = 16

// masks and shifts for the fields of a complete word
const (
	maskWriteFlag = 0x8000
	maskAddress   = 0x7f00
	maskPayload   = 0x00ff
	shiftAddress  = 8
)

// State records the progress of the current transaction.
type State int

// List of valid State values.
const (
	StateIdle State = iota
	StateReceiving
	StateFull
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReceiving:
		return "receiving"
	case StateFull:
		return "full"
	}
	panic("unknown spi state")
}

// Outcome classifies what happened at the end of a transaction. Only the
// OutcomeWrite outcome mutates the register file. The others exist so that
// the discarded cases are visible to tests and tooling rather than being
// buried in a conditional.
type Outcome int

// List of valid Outcome values.
const (
	// a well formed write command. the addressed register has been updated
	OutcomeWrite Outcome = iota

	// the write-enable flag was clear. reserved for a future read command
	// which the hardware never implemented
	OutcomeReadCommand

	// the write-enable flag was set but the address matches no register
	OutcomeReservedAddress

	// chip-select was released before 16 bits had been captured
	OutcomeIncomplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWrite:
		return "write"
	case OutcomeReadCommand:
		return "read command (ignored)"
	case OutcomeReservedAddress:
		return "reserved address (ignored)"
	case OutcomeIncomplete:
		return "incomplete (ignored)"
	}
	panic("unknown spi outcome")
}

// Commit describes the end of one transaction. Address and Value are only
// meaningful when the full 16 bits arrived.
type Commit struct {
	Outcome Outcome
	Word    uint16
	Bits    int
	Address registers.Address
	Value   uint8
}

func (c Commit) String() string {
	if c.Outcome == OutcomeIncomplete {
		return fmt.Sprintf("%s after %d bits", c.Outcome, c.Bits)
	}
	return fmt.Sprintf("%s: addr=0x%02x (%s) value=0x%02x", c.Outcome, uint8(c.Address), c.Address, c.Value)
}

// CommitHandler is called at the end of every transaction, including the
// discarded ones.
type CommitHandler func(Commit)

// SPI is the protocol decoder. It reads the settled line state from the
// synchroniser and is the only writer of the register file.
type SPI struct {
	sync *cdc.Synchronizer
	regs *registers.File

	state State
	bits  int
	word  uint16

	handler CommitHandler

	// most recent commit. valid once committed is true
	last      Commit
	committed bool
}

// NewSPI is the preferred method of initialisation for the SPI type.
func NewSPI(sync *cdc.Synchronizer, regs *registers.File) *SPI {
	return &SPI{
		sync: sync,
		regs: regs,
	}
}

// SetCommitHandler attaches a function to be called at the end of every
// transaction. A nil handler detaches.
func (s *SPI) SetCommitHandler(handler CommitHandler) {
	s.handler = handler
}

// Reset the tracker to the idle state. The register file is not touched;
// the peripheral reset in the hardware package covers that.
func (s *SPI) Reset() {
	s.state = StateIdle
	s.bits = 0
	s.word = 0
	s.last = Commit{}
	s.committed = false
}

// State returns the current transaction state.
func (s *SPI) State() State {
	return s.state
}

// BitCount returns the number of bits captured so far in the current
// transaction.
func (s *SPI) BitCount() int {
	return s.bits
}

// Accumulator returns the current content of the 16-bit shift register.
func (s *SPI) Accumulator() uint16 {
	return s.word
}

// LastCommit returns the most recent transaction result. The second return
// value is false if no transaction has ended since the last reset.
func (s *SPI) LastCommit() (Commit, bool) {
	return s.last, s.committed
}

// Step the decoder forward one tick. Must be called before the
// synchroniser shifts in the tick's raw samples: everything here works from
// the settled values of the previous tick, which is what keeps the decoder
// exactly one tick behind the wire.
func (s *SPI) Step() {
	// an observed assertion of chip-select re-arms capture even if a
	// transaction appeared to be open already
	if s.sync.ChipSelectFall() {
		s.state = StateReceiving
		s.bits = 0
		s.word = 0
		return
	}

	if s.sync.ChipSelectRise() {
		if s.state != StateIdle {
			s.commit()
		}
		s.state = StateIdle
		s.bits = 0
		return
	}

	// bits are only captured in the receiving state. once the accumulator
	// is full any further clock edges are inert
	if s.state == StateReceiving && s.sync.ClockRise() {
		s.word <<= 1
		if s.sync.DataBit() {
			s.word |= 0x01
		}
		s.bits++
		if s.bits == WordBits {
			s.state = StateFull
		}
	}
}

// commit decodes the accumulated word and applies it to the register file.
// called once per transaction, on the tick the release of chip-select is
// observed.
func (s *SPI) commit() {
	c := Commit{
		Word: s.word,
		Bits: s.bits,
	}

	switch {
	case s.state != StateFull:
		c.Outcome = OutcomeIncomplete

	case s.word&maskWriteFlag == 0:
		c.Outcome = OutcomeReadCommand
		c.Address = registers.Address((s.word & maskAddress) >> shiftAddress)
		c.Value = uint8(s.word & maskPayload)

	default:
		c.Address = registers.Address((s.word & maskAddress) >> shiftAddress)
		c.Value = uint8(s.word & maskPayload)
		if s.regs.Write(c.Address, c.Value) {
			c.Outcome = OutcomeWrite
		} else {
			c.Outcome = OutcomeReservedAddress
		}
	}

	s.last = c
	s.committed = true

	if s.handler != nil {
		s.handler(c)
	}
}

func (s *SPI) String() string {
	return fmt.Sprintf("%s: bits=%d word=0x%04x", s.state, s.bits, s.word)
}
