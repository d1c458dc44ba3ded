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

package cdc_test

import (
	"testing"

	"github.com/gopherspi/gopherspi/hardware/cdc"
	"github.com/gopherspi/gopherspi/hardware/signal"
	"github.com/gopherspi/gopherspi/test"
)

func TestChipSelectEdges(t *testing.T) {
	sync := cdc.NewSynchronizer()

	// settle at the idle level
	sync.Step(signal.Idle())
	sync.Step(signal.Idle())
	test.ExpectEquality(t, sync.ChipSelectFall(), false)
	test.ExpectEquality(t, sync.ChipSelectActive(), false)

	// assert chip-select. the fall is observable exactly one step later
	sync.Step(signal.Lines{ChipSelect: false})
	test.ExpectEquality(t, sync.ChipSelectFall(), true)
	test.ExpectEquality(t, sync.ChipSelectRise(), false)

	// the edge is a single-step event
	sync.Step(signal.Lines{ChipSelect: false})
	test.ExpectEquality(t, sync.ChipSelectFall(), false)
	test.ExpectEquality(t, sync.ChipSelectActive(), true)

	// release
	sync.Step(signal.Idle())
	test.ExpectEquality(t, sync.ChipSelectRise(), true)
	sync.Step(signal.Idle())
	test.ExpectEquality(t, sync.ChipSelectRise(), false)
	test.ExpectEquality(t, sync.ChipSelectActive(), false)
}

func TestClockEdges(t *testing.T) {
	sync := cdc.NewSynchronizer()
	low := signal.Lines{ChipSelect: false, SerialClock: false}
	high := signal.Lines{ChipSelect: false, SerialClock: true}

	sync.Step(low)
	sync.Step(low)
	test.ExpectEquality(t, sync.ClockRise(), false)

	sync.Step(high)
	test.ExpectEquality(t, sync.ClockRise(), true)

	sync.Step(high)
	test.ExpectEquality(t, sync.ClockRise(), false)

	// a falling edge is not a rising edge
	sync.Step(low)
	test.ExpectEquality(t, sync.ClockRise(), false)
}

func TestDataHistory(t *testing.T) {
	sync := cdc.NewSynchronizer()

	// DataBit lags the raw samples by three steps: two for the
	// synchronising stages and one more to line up with edge detection
	seq := []bool{true, false, true, true, false, false, true}
	for i, b := range seq {
		sync.Step(signal.Lines{DataIn: b})
		if i >= 2 {
			test.ExpectEquality(t, sync.DataBit(), seq[i-2])
		}
	}
}

func TestReset(t *testing.T) {
	sync := cdc.NewSynchronizer()

	sync.Step(signal.Idle())
	sync.Step(signal.Lines{ChipSelect: false, SerialClock: true, DataIn: true})

	sync.Reset()

	// after a reset the histories hold all zeroes, the same as power-on.
	// chip-select reads as active because the history of an active-low
	// line is zero; the protocol layer only acts on observed edges so
	// this is harmless
	test.ExpectEquality(t, sync.ChipSelectFall(), false)
	test.ExpectEquality(t, sync.ChipSelectRise(), false)
	test.ExpectEquality(t, sync.ClockRise(), false)
	test.ExpectEquality(t, sync.DataBit(), false)
}
