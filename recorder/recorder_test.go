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

package recorder_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopherspi/gopherspi/controller"
	"github.com/gopherspi/gopherspi/hardware"
	"github.com/gopherspi/gopherspi/hardware/registers"
	"github.com/gopherspi/gopherspi/hardware/signal"
	"github.com/gopherspi/gopherspi/recorder"
	"github.com/gopherspi/gopherspi/test"
)

func TestForwarding(t *testing.T) {
	per := hardware.NewPeriph()
	trc := recorder.NewTrace(per)
	drv := controller.NewDriver(trc)

	drv.Write(registers.OutLow, 0x42)

	// the transaction passed through the trace untouched
	test.ExpectEquality(t, per.Regs.Read(registers.OutLow), 0x42)

	// and every tick of it was recorded
	test.ExpectEquality(t, trc.Len(), int(per.Ticks()))
}

func TestNilBus(t *testing.T) {
	trc := recorder.NewTrace(nil)
	trc.Step(signal.Idle())
	trc.Step(signal.Idle())
	test.ExpectEquality(t, trc.Len(), 2)
}

func TestEnd(t *testing.T) {
	trc := recorder.NewTrace(nil)
	for i := 0; i < 100; i++ {
		trc.Step(signal.Idle())
	}

	filename := filepath.Join(t.TempDir(), "trace.wav")
	err := trc.End(filename)
	test.ExpectSuccess(t, err)

	// enough to know the file exists and holds more than a header
	fi, err := os.Stat(filename)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fi.Size() > 44, true)
}
