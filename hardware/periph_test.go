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

package hardware_test

import (
	"testing"

	"github.com/gopherspi/gopherspi/controller"
	"github.com/gopherspi/gopherspi/hardware"
	"github.com/gopherspi/gopherspi/hardware/registers"
	"github.com/gopherspi/gopherspi/hardware/signal"
	"github.com/gopherspi/gopherspi/hardware/spi"
	"github.com/gopherspi/gopherspi/test"
)

func TestPowerOnState(t *testing.T) {
	per := hardware.NewPeriph()

	test.ExpectEquality(t, per.SPI.State(), spi.StateIdle)
	test.ExpectEquality(t, per.Ticks(), 0)

	for _, a := range registers.AddressList {
		test.ExpectEquality(t, per.Regs.Read(a), 0)
	}

	_, ok := per.SPI.LastCommit()
	test.ExpectEquality(t, ok, false)
}

func TestWriteTransaction(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	drv.Write(registers.PWMEnableLow, 0x2a)

	test.ExpectEquality(t, per.Regs.Read(registers.PWMEnableLow), 0x2a)

	// only the addressed register changes
	test.ExpectEquality(t, per.Regs.Read(registers.OutLow), 0x00)
	test.ExpectEquality(t, per.Regs.Read(registers.OutHigh), 0x00)
	test.ExpectEquality(t, per.Regs.Read(registers.PWMEnableHigh), 0x00)
	test.ExpectEquality(t, per.Regs.Read(registers.PWMDutyCycle), 0x00)

	c, ok := per.SPI.LastCommit()
	test.DemandEquality(t, ok, true)
	test.ExpectEquality(t, c.Outcome, spi.OutcomeWrite)
	test.ExpectEquality(t, c.Word, uint16(0x822a))
	test.ExpectEquality(t, c.Address, registers.PWMEnableLow)
	test.ExpectEquality(t, c.Value, 0x2a)
}

func TestWriteFlagClear(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	drv.Write(registers.PWMDutyCycle, 0x77)
	drv.Transact(controller.Word(false, registers.PWMDutyCycle, 0x55))

	// the second transaction carried no write flag so the register keeps
	// its earlier value
	test.ExpectEquality(t, per.Regs.Read(registers.PWMDutyCycle), 0x77)

	c, ok := per.SPI.LastCommit()
	test.DemandEquality(t, ok, true)
	test.ExpectEquality(t, c.Outcome, spi.OutcomeReadCommand)
}

func TestReservedAddress(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	drv.Transact(controller.Word(true, 0x7f, 0x99))

	for _, a := range registers.AddressList {
		test.ExpectEquality(t, per.Regs.Read(a), 0)
	}

	c, ok := per.SPI.LastCommit()
	test.DemandEquality(t, ok, true)
	test.ExpectEquality(t, c.Outcome, spi.OutcomeReservedAddress)
	test.ExpectEquality(t, c.Address, registers.Address(0x7f))
}

func TestShortTransaction(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	// ten strobes of all ones. would set every bit of a register if it
	// were wrongly committed
	bits := make([]bool, 10)
	for i := range bits {
		bits[i] = true
	}
	drv.TransactBits(bits)

	for _, a := range registers.AddressList {
		test.ExpectEquality(t, per.Regs.Read(a), 0)
	}

	c, ok := per.SPI.LastCommit()
	test.DemandEquality(t, ok, true)
	test.ExpectEquality(t, c.Outcome, spi.OutcomeIncomplete)
	test.ExpectEquality(t, c.Bits, 10)
}

func TestBitOrder(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	// hand-built bit sequence, MSB first: write flag, address 0x02,
	// payload 0x03. an LSB-first decoder would land on a different
	// register with a different value
	bits := []bool{
		true, false, false, false, false, false, true, false,
		false, false, false, false, false, false, true, true,
	}
	drv.TransactBits(bits)

	test.ExpectEquality(t, per.Regs.Read(registers.PWMEnableLow), 0x03)
	test.ExpectEquality(t, per.Regs.Read(registers.OutLow), 0x00)

	// the reverse probe: all address bits set decodes as 0x7f, which maps
	// to nothing. a reversed field order would have decoded a valid
	// address instead
	drv.Transact(0xff81)
	c, ok := per.SPI.LastCommit()
	test.DemandEquality(t, ok, true)
	test.ExpectEquality(t, c.Outcome, spi.OutcomeReservedAddress)
	test.ExpectEquality(t, c.Address, registers.Address(0x7f))
}

func TestBackToBackTransactions(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	for i, a := range registers.AddressList {
		drv.Write(a, uint8(0x10+i))
	}

	for i, a := range registers.AddressList {
		test.ExpectEquality(t, per.Regs.Read(a), uint8(0x10+i))
	}
}

func TestOverrunTransaction(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	// a valid write word followed by four extra strobes. the accumulator
	// saturates at sixteen bits so the extra strobes must be inert
	word := controller.Word(true, registers.OutHigh, 0xc3)
	bits := make([]bool, 20)
	for i := 0; i < 16; i++ {
		bits[i] = word&(0x8000>>i) != 0
	}
	bits[16] = true
	bits[18] = true
	drv.TransactBits(bits)

	test.ExpectEquality(t, per.Regs.Read(registers.OutHigh), 0xc3)

	c, ok := per.SPI.LastCommit()
	test.DemandEquality(t, ok, true)
	test.ExpectEquality(t, c.Outcome, spi.OutcomeWrite)
	test.ExpectEquality(t, c.Word, word)
}

func TestOverwrite(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	drv.Write(registers.OutLow, 0xff)
	drv.Write(registers.OutLow, 0x0f)

	test.ExpectEquality(t, per.Regs.Read(registers.OutLow), 0x0f)
}

func TestResetMidTransaction(t *testing.T) {
	per := hardware.NewPeriph()

	// open a transaction by hand and clock in a few bits
	per.StepIdle(2)
	for i := 0; i < 4; i++ {
		per.Step(signal.Lines{ChipSelect: false, SerialClock: false, DataIn: true})
		per.Step(signal.Lines{ChipSelect: false, SerialClock: true, DataIn: true})
	}
	test.ExpectEquality(t, per.SPI.State(), spi.StateReceiving)

	per.Reset()

	test.ExpectEquality(t, per.SPI.State(), spi.StateIdle)
	test.ExpectEquality(t, per.SPI.BitCount(), 0)
	test.ExpectEquality(t, per.Ticks(), 0)

	// the abandoned transaction must not have produced a commit
	_, ok := per.SPI.LastCommit()
	test.ExpectEquality(t, ok, false)

	// and the peripheral is immediately usable again
	drv := controller.NewDriver(per)
	drv.Write(registers.OutLow, 0xaa)
	test.ExpectEquality(t, per.Regs.Read(registers.OutLow), 0xaa)
}

func TestResetClearsRegisters(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	for i, a := range registers.AddressList {
		drv.Write(a, uint8(0xf0+i))
	}

	per.Reset()

	for _, a := range registers.AddressList {
		test.ExpectEquality(t, per.Regs.Read(a), 0)
	}
}

func TestSlowClock(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	// the peripheral doesn't care how slowly the controller clocks
	drv.TicksPerHalf = 25
	drv.Write(registers.OutHigh, 0x5a)

	test.ExpectEquality(t, per.Regs.Read(registers.OutHigh), 0x5a)
}

func TestFastestClock(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	// requested half-periods below the minimum are raised to it
	drv.TicksPerHalf = 1
	drv.Write(registers.PWMEnableHigh, 0x81)

	test.ExpectEquality(t, per.Regs.Read(registers.PWMEnableHigh), 0x81)
}

func TestTickCount(t *testing.T) {
	per := hardware.NewPeriph()
	per.StepIdle(100)
	test.ExpectEquality(t, per.Ticks(), 100)
}

func TestSnapshot(t *testing.T) {
	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)

	drv.Write(registers.OutLow, 0x11)
	snap := per.Registers()

	drv.Write(registers.OutLow, 0x22)

	// the snapshot is detached from the live file
	test.ExpectEquality(t, snap.Read(registers.OutLow), 0x11)
	test.ExpectEquality(t, per.Regs.Read(registers.OutLow), 0x22)
}
