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

// Package hardware is the base package for the peripheral emulation. It
// and its sub-packages contain everything required for a headless
// emulation.
//
// The Periph type is the root of the emulation and ties together the
// three stages of the emulated SPI target: the input synchroniser (cdc
// package), the transaction tracker and register decoder (spi package)
// and the output register file (registers package).
//
// The peripheral is a write-only SPI target. A transaction is sixteen
// bits, most significant bit first, framed by the active-low chip-select
// line. The top bit of the word is a write-enable flag, the next seven
// bits address one of five 8-bit registers and the final eight bits are
// the value to store. Transactions that are too short, have the write
// flag clear or address a reserved register are discarded silently, as
// the original circuit does.
//
// The emulation advances one tick at a time through the Periph.Step()
// function, with the caller supplying the raw level of the three input
// lines for each tick. The input lines are asynchronous to the tick; the
// synchroniser stage deals with that, at the cost of a fixed observation
// latency that the rest of the pipeline is built around.
package hardware
