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

// Package cdc implements the synchroniser stage of the peripheral. The
// three input lines are driven by an external controller and can change at
// any moment relative to the peripheral's own clock. Sampling each line
// through a two-stage history and only ever acting on the stored stages
// means a half-changed or glitched sample can never reach the protocol
// logic.
//
// The price of the history is latency. An edge on a line is observable one
// tick after the raw sample that carries it and downstream logic is
// arranged around that delay. The delay must not be shortened: the decoder
// in the spi package pairs clock edges with the data-in history which is
// offset to match.
package cdc

import "github.com/gopherspi/gopherspi/hardware/signal"

// stage indices for the line histories. stage 0 is the most recent sample,
// stage 1 is the settled sample that downstream logic should trust.
const (
	newest = 0
	oldest = 1
)

// Synchronizer imports the raw input lines into the peripheral's timing
// domain. One Step() per tick. All fields begin at zero and are returned to
// zero by Reset().
type Synchronizer struct {
	ncs  [2]bool
	sclk [2]bool
	sdi  [2]bool

	// the data-in sample from the tick before sdi[oldest]. a clock edge is
	// detected one tick after the clock sample that caused it, so the data
	// value that was on the wire at the moment of the edge is one tick
	// further back than the settled sample. see DataBit()
	sdiHistory bool
}

// NewSynchronizer is the preferred method of initialisation for the
// Synchronizer type.
func NewSynchronizer() *Synchronizer {
	return &Synchronizer{}
}

// Reset the synchroniser histories to their zeroed state.
func (s *Synchronizer) Reset() {
	s.ncs = [2]bool{}
	s.sclk = [2]bool{}
	s.sdi = [2]bool{}
	s.sdiHistory = false
}

// Step shifts the current level of each raw line into its history. Always
// succeeds, no side effects beyond the internal state.
func (s *Synchronizer) Step(lines signal.Lines) {
	s.ncs[oldest] = s.ncs[newest]
	s.ncs[newest] = lines.ChipSelect

	s.sclk[oldest] = s.sclk[newest]
	s.sclk[newest] = lines.SerialClock

	s.sdiHistory = s.sdi[oldest]
	s.sdi[oldest] = s.sdi[newest]
	s.sdi[newest] = lines.DataIn
}

// ChipSelectFall returns true on the one tick where the synchronised
// chip-select line is seen going to its active (low) level. This is the
// beginning of a transaction.
func (s *Synchronizer) ChipSelectFall() bool {
	return !s.ncs[newest] && s.ncs[oldest]
}

// ChipSelectRise returns true on the one tick where the synchronised
// chip-select line is seen returning to its inactive (high) level. This is
// the end of a transaction.
func (s *Synchronizer) ChipSelectRise() bool {
	return s.ncs[newest] && !s.ncs[oldest]
}

// ChipSelectActive returns the settled level of the chip-select line,
// true meaning the peripheral is currently addressed.
func (s *Synchronizer) ChipSelectActive() bool {
	return !s.ncs[oldest]
}

// ClockRise returns true on the one tick where a rising edge of the
// synchronised serial clock is seen. One bit should be captured for every
// tick this returns true while a transaction is open.
func (s *Synchronizer) ClockRise() bool {
	return s.sclk[newest] && !s.sclk[oldest]
}

// DataBit returns the value that was on the data-in line at the moment of
// the most recently detected clock edge. The extra tick of history
// compensates for the latency of edge detection.
func (s *Synchronizer) DataBit() bool {
	return s.sdiHistory
}

func (s *Synchronizer) String() string {
	b := func(v bool) byte {
		if v {
			return '1'
		}
		return '0'
	}
	return string([]byte{
		'n', 'c', 's', '=', b(s.ncs[newest]), b(s.ncs[oldest]), ' ',
		's', 'c', 'l', 'k', '=', b(s.sclk[newest]), b(s.sclk[oldest]), ' ',
		's', 'd', 'i', '=', b(s.sdi[newest]), b(s.sdi[oldest]), b(s.sdiHistory),
	})
}
