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

// Package signal defines the raw electrical boundary of the emulated
// peripheral. The three lines are driven by an external controller and are
// asynchronous to the peripheral's own clock. They are sampled exactly once
// per tick.
package signal

import "strings"

// Lines is the level of each input line at one instant. The fields record
// physical levels, not logical meaning. In particular ChipSelect is the
// level of the nCS pin and the pin is active-low: a transaction is open
// while ChipSelect is false.
type Lines struct {
	ChipSelect  bool
	SerialClock bool
	DataIn      bool
}

// Idle returns the state of the bus when no controller is driving it.
// Chip-select is pulled high (inactive), the clock rests low (SPI mode 0)
// and the data line is low.
func Idle() Lines {
	return Lines{ChipSelect: true}
}

// Selected returns true if the chip-select line is at its active level.
func (l Lines) Selected() bool {
	return !l.ChipSelect
}

func (l Lines) String() string {
	s := strings.Builder{}
	if l.ChipSelect {
		s.WriteString("ncs=1")
	} else {
		s.WriteString("ncs=0")
	}
	if l.SerialClock {
		s.WriteString(" sclk=1")
	} else {
		s.WriteString(" sclk=0")
	}
	if l.DataIn {
		s.WriteString(" sdi=1")
	} else {
		s.WriteString(" sdi=0")
	}
	return s.String()
}
