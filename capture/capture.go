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

// Package capture replays Saleae Logic 2 digital captures through the
// emulated peripheral. A capture is the set of per-channel binary export
// files produced by the Logic software, one file each for the chip-select,
// serial-clock and data-in channels.
//
// The capture is scanned into transactions first and each transaction is
// then re-synthesised as a tick-level waveform through the controller
// package. Replaying the original sample stream directly would mean
// inventing a mapping from capture time to emulation ticks; scan and
// re-synthesise keeps the bit content and transaction framing, which is
// everything the peripheral can observe anyway.
package capture

import (
	"os"

	"github.com/soypat/saleae"
	"github.com/soypat/saleae/analyzers"

	"github.com/gopherspi/gopherspi/controller"
	"github.com/gopherspi/gopherspi/curated"
	"github.com/gopherspi/gopherspi/logger"
)

// sentinal error pattern for all errors originating in this package.
const CaptureError = "capture: %v"

// Transaction is one chip-select window from the capture.
type Transaction struct {
	// the data bits clocked during the window, most significant first.
	// length is a multiple of eight: the scanner works at byte
	// granularity, trailing bits short of a byte are lost
	Bits []bool

	// seconds from the start of the capture, as recorded by the analyser
	Start float64
}

// Word returns the transaction content as a 16-bit word. The second return
// value is false if the transaction does not hold exactly sixteen bits.
func (tx Transaction) Word() (uint16, bool) {
	if len(tx.Bits) != 16 {
		return 0, false
	}
	var w uint16
	for _, b := range tx.Bits {
		w <<= 1
		if b {
			w |= 0x01
		}
	}
	return w, true
}

// Load the capture files and scan them into transactions. The three
// arguments name the binary export file for each channel.
func Load(csFile, clkFile, dataFile string) ([]Transaction, error) {
	cs, err := openDigital(csFile)
	if err != nil {
		return nil, err
	}
	clk, err := openDigital(clkFile)
	if err != nil {
		return nil, err
	}
	data, err := openDigital(dataFile)
	if err != nil {
		return nil, err
	}

	// the peripheral is write-only so the data channel serves as both
	// sides of the scanner's bus
	sc := analyzers.SPI{}
	txs, err := sc.Scan(clk, cs, data, data)
	if err != nil {
		return nil, curated.Errorf(CaptureError, err)
	}

	trans := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		t := Transaction{
			Bits:  make([]bool, 0, len(tx.SDO)*8),
			Start: tx.StartTime(),
		}
		for _, b := range tx.SDO {
			for i := 7; i >= 0; i-- {
				t.Bits = append(t.Bits, b&(1<<i) != 0)
			}
		}
		trans = append(trans, t)
	}

	logger.Logf("capture", "%d transactions scanned", len(trans))

	return trans, nil
}

func openDigital(filename string) (*saleae.DigitalFile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(CaptureError, err)
	}
	defer f.Close()

	df, err := saleae.ReadDigitalFile(f)
	if err != nil {
		return nil, curated.Errorf(CaptureError, err)
	}
	return df, nil
}

// Replay drives every transaction through the Driver in capture order. Bit
// counts other than sixteen are driven as they are; the peripheral
// discards them the same way the original circuit would have.
func Replay(txs []Transaction, drv *controller.Driver) {
	for _, tx := range txs {
		drv.TransactBits(tx.Bits)
	}
}
