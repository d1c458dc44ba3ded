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

// Package performance measures the raw tick rate of the emulated
// peripheral. The peripheral is driven flat out with a continuous stream
// of write transactions for a fixed duration and the achieved
// ticks-per-second figure is reported. CPU and memory profiles can be
// taken over the same run.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/gopherspi/gopherspi/controller"
	"github.com/gopherspi/gopherspi/curated"
	"github.com/gopherspi/gopherspi/hardware"
	"github.com/gopherspi/gopherspi/hardware/registers"
)

// sentinal error pattern for all errors originating in this package.
const PerformanceError = "performance: %v"

// number of transactions between checks of the elapsed time. checking the
// clock is expensive relative to a transaction.
const checkInterval = 1000

// Check drives the peripheral for the given duration and writes a summary
// to output.
func Check(output io.Writer, profile Profile, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	per := hardware.NewPeriph()
	drv := controller.NewDriver(per)
	drv.TicksPerHalf = controller.MinTicksPerHalf

	writes := 0

	runner := func() error {
		start := time.Now()
		end := start.Add(dur)

		for {
			for i := 0; i < checkInterval; i++ {
				// cycle through the registers with a varying payload so
				// the decode path sees changing data
				drv.Write(registers.AddressList[writes%registers.NumRegisters], uint8(writes))
				writes++
			}
			if time.Now().After(end) {
				break // for loop
			}
		}

		elapsed := time.Since(start)
		ticks := per.Ticks()

		fmt.Fprintf(output, "%d ticks in %v (%.2f million ticks/sec, %d transactions)\n",
			ticks, elapsed.Round(time.Millisecond),
			float64(ticks)/elapsed.Seconds()/1e6, writes)

		return nil
	}

	err = RunProfiler(profile, runner)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	return nil
}
