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

package capture_test

import (
	"testing"

	"github.com/gopherspi/gopherspi/capture"
	"github.com/gopherspi/gopherspi/controller"
	"github.com/gopherspi/gopherspi/hardware"
	"github.com/gopherspi/gopherspi/hardware/registers"
	"github.com/gopherspi/gopherspi/test"
)

func bitsFromWord(word uint16) []bool {
	bits := make([]bool, 16)
	for i := range bits {
		bits[i] = word&(0x8000>>i) != 0
	}
	return bits
}

func TestTransactionWord(t *testing.T) {
	tx := capture.Transaction{Bits: bitsFromWord(0x822a)}
	w, ok := tx.Word()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, w, uint16(0x822a))

	// a transaction of any other length has no word to give
	tx = capture.Transaction{Bits: bitsFromWord(0x822a)[:8]}
	_, ok = tx.Word()
	test.ExpectEquality(t, ok, false)

	tx = capture.Transaction{}
	_, ok = tx.Word()
	test.ExpectEquality(t, ok, false)
}

func TestReplay(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	txs := []capture.Transaction{
		{Bits: bitsFromWord(controller.Word(true, registers.OutLow, 0x12))},
		{Bits: bitsFromWord(controller.Word(true, registers.OutHigh, 0x34))},

		// a runt transaction in the middle of the capture must not
		// disturb the others
		{Bits: bitsFromWord(0xffff)[:5]},

		{Bits: bitsFromWord(controller.Word(true, registers.PWMDutyCycle, 0x56))},
	}

	capture.Replay(txs, drv)

	test.ExpectEquality(t, per.Regs.Read(registers.OutLow), 0x12)
	test.ExpectEquality(t, per.Regs.Read(registers.OutHigh), 0x34)
	test.ExpectEquality(t, per.Regs.Read(registers.PWMDutyCycle), 0x56)
}
