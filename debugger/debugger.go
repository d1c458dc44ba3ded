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

// Package debugger is the interactive command line interface to the
// emulated peripheral. The user can step the emulation tick by tick with
// full control of the raw line levels, run complete transactions through
// the controller package, and inspect every piece of internal state on
// the way.
package debugger

import (
	"fmt"

	"github.com/gopherspi/gopherspi/controller"
	"github.com/gopherspi/gopherspi/curated"
	"github.com/gopherspi/gopherspi/debugger/terminal"
	"github.com/gopherspi/gopherspi/hardware"
	"github.com/gopherspi/gopherspi/hardware/signal"
	"github.com/gopherspi/gopherspi/hardware/spi"
	"github.com/gopherspi/gopherspi/logger"
)

// sentinal error pattern for all errors originating in this package.
const DebuggerError = "debugger: %v"

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	per *hardware.Periph
	drv *controller.Driver

	scr    terminal.Terminal
	events *terminal.ReadEvents

	// the line levels applied on the next STEP command. the debugger
	// holds them steady between commands, the way a real controller
	// holds its pins
	lines signal.Lines

	running bool
}

// NewDebugger creates everything required for a debugging session. The
// events argument carries the operating system signal channel prepared by
// the caller; it may be nil in which case interrupts are not caught.
func NewDebugger(scr terminal.Terminal, events *terminal.ReadEvents) (*Debugger, error) {
	dbg := &Debugger{
		per:    hardware.NewPeriph(),
		scr:    scr,
		events: events,
		lines:  signal.Idle(),
	}
	dbg.drv = controller.NewDriver(dbg.per)

	if dbg.events == nil {
		dbg.events = &terminal.ReadEvents{}
	}

	// commits are echoed to the terminal as they happen
	dbg.per.SPI.SetCommitHandler(func(c spi.Commit) {
		dbg.printStyle(terminal.StyleFeedback, "commit: %s", c.String())
		logger.Logf("spi", "%s", c.String())
	})

	if err := scr.Initialise(); err != nil {
		return nil, curated.Errorf(DebuggerError, err)
	}

	return dbg, nil
}

func (dbg *Debugger) printStyle(style terminal.Style, s string, a ...interface{}) {
	dbg.scr.TermPrintLine(style, fmt.Sprintf(s, a...))
}

// Start the main debugging loop. Returns when the user quits.
func (dbg *Debugger) Start() error {
	defer dbg.scr.CleanUp()

	dbg.printStyle(terminal.StyleHelp, "type HELP for list of commands")

	dbg.running = true
	for dbg.running {
		prompt := terminal.Prompt{
			Content: fmt.Sprintf("%d %s", dbg.per.Ticks(), dbg.per.SPI.State()),
		}

		input, err := dbg.scr.TermRead(prompt, dbg.events)
		if err != nil {
			if curated.Is(err, terminal.UserInterrupt) {
				return nil
			}
			return curated.Errorf(DebuggerError, err)
		}

		if err := dbg.parseCommand(input); err != nil {
			dbg.printStyle(terminal.StyleError, "%v", err)
		}
	}

	return nil
}
