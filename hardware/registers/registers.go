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

// Package registers implements the output register file of the peripheral.
// Five independent 8-bit registers, each addressable by the values in
// addresses.go. The file is written only by the spi package and only at a
// transaction boundary. From the peripheral's point of view the registers
// are write-only storage; what the circuitry downstream of the pins does
// with the values is not modelled.
package registers

import (
	"fmt"
	"strings"
)

// File is the register file. The zero value is ready to use with every
// register at zero, the same state Reset() returns to.
type File struct {
	regs [NumRegisters]uint8
}

// NewFile is the preferred method of initialisation for the File type.
func NewFile() *File {
	return &File{}
}

// Reset every register to zero.
func (f *File) Reset() {
	f.regs = [NumRegisters]uint8{}
}

// Write the value to the register with the given address. Returns false if
// the address does not select any register, in which case the file is
// unchanged.
func (f *File) Write(addr Address, value uint8) bool {
	if int(addr) >= NumRegisters {
		return false
	}
	f.regs[addr] = value
	return true
}

// Read the current value of the register with the given address. Reserved
// addresses read as zero. Reading is for the benefit of the embedding
// application; the emulated bus has no way of reading a register back.
func (f *File) Read(addr Address) uint8 {
	if int(addr) >= NumRegisters {
		return 0
	}
	return f.regs[addr]
}

// Snapshot returns a copy of the register file in its current state. The
// copy is eventually-consistent with the transaction stream: a value is
// visible sometime after the chip-select line returns to inactive at the
// end of a full transaction.
func (f *File) Snapshot() File {
	return *f
}

func (f *File) String() string {
	s := strings.Builder{}
	for _, a := range AddressList {
		s.WriteString(fmt.Sprintf("%02x %-15s 0x%02x\n", uint8(a), a.String(), f.regs[a]))
	}
	return s.String()
}
