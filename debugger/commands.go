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

package debugger

import (
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/gopherspi/gopherspi/curated"
	"github.com/gopherspi/gopherspi/debugger/terminal"
	"github.com/gopherspi/gopherspi/hardware/registers"
	"github.com/gopherspi/gopherspi/hardware/signal"
	"github.com/gopherspi/gopherspi/logger"
)

const helpText = `HELP                 this help
QUIT                 end the debugging session
RESET                assert the reset line, zeroing all state
STEP [n]             advance the emulation n ticks (default 1) with the
                     current line levels
LINES [ncs sclk sdi] show or set the raw line levels (each 0 or 1)
TX <addr> <value>    run a complete write transaction (hex arguments)
TX WORD <word>       run a complete transaction of the raw 16-bit word
REGISTERS            show the register file
SPI                  show the transaction tracker and synchroniser state
LAST                 show the most recent transaction commit
LOG [CLEAR]          show (or clear) the application log
DUMP [file]          write the peripheral state graph in dot format
                     (default periph.dot)`

// default filename for the DUMP command.
const dumpFile = "periph.dot"

func (dbg *Debugger) parseCommand(input string) error {
	toks := strings.Fields(strings.ToUpper(input))
	if len(toks) == 0 {
		return nil
	}

	arg := func(i int) string {
		// the original casing doesn't matter for any command argument,
		// hex numbers parse either way
		if i < len(toks) {
			return toks[i]
		}
		return ""
	}

	switch toks[0] {
	case "HELP":
		dbg.printStyle(terminal.StyleHelp, "%s", helpText)

	case "QUIT", "Q":
		dbg.running = false

	case "RESET":
		dbg.per.Reset()
		dbg.lines = signal.Idle()
		dbg.printStyle(terminal.StyleFeedback, "peripheral reset")

	case "STEP":
		n := 1
		if arg(1) != "" {
			var err error
			n, err = strconv.Atoi(arg(1))
			if err != nil || n < 1 {
				return curated.Errorf("step: not a valid tick count: %s", arg(1))
			}
		}
		for i := 0; i < n; i++ {
			dbg.per.Step(dbg.lines)
		}
		dbg.printStyle(terminal.StyleInstrument, "%s", dbg.per.SPI.String())

	case "LINES":
		if len(toks) == 1 {
			dbg.printStyle(terminal.StyleInstrument, "%s", dbg.lines.String())
			return nil
		}
		if len(toks) != 4 {
			return curated.Errorf("lines: three levels required (ncs sclk sdi)")
		}
		for i, f := range []*bool{&dbg.lines.ChipSelect, &dbg.lines.SerialClock, &dbg.lines.DataIn} {
			switch toks[i+1] {
			case "0":
				*f = false
			case "1":
				*f = true
			default:
				return curated.Errorf("lines: not a valid level: %s", toks[i+1])
			}
		}
		dbg.printStyle(terminal.StyleInstrument, "%s", dbg.lines.String())

	case "TX":
		return dbg.transact(toks[1:])

	case "REGISTERS", "REG":
		dbg.printStyle(terminal.StyleInstrument, "%s", strings.TrimSuffix(dbg.per.Regs.String(), "\n"))

	case "SPI":
		dbg.printStyle(terminal.StyleInstrument, "%s", dbg.per.SPI.String())
		dbg.printStyle(terminal.StyleInstrument, "sync: %s", dbg.per.Sync.String())

	case "LAST":
		if c, ok := dbg.per.SPI.LastCommit(); ok {
			dbg.printStyle(terminal.StyleFeedback, "%s", c.String())
		} else {
			dbg.printStyle(terminal.StyleFeedback, "no transaction has completed")
		}

	case "LOG":
		if arg(1) == "CLEAR" {
			logger.Clear()
			return nil
		}
		w := &styleWriter{dbg: dbg}
		if !logger.Write(w) {
			dbg.printStyle(terminal.StyleFeedback, "log is empty")
		}

	case "DUMP":
		fn := dumpFile
		if len(toks) > 1 {
			// casing matters for filenames. recover it from the raw input
			fn = strings.Fields(input)[1]
		}
		f, err := os.Create(fn)
		if err != nil {
			return curated.Errorf(DebuggerError, err)
		}
		defer f.Close()
		memviz.Map(f, dbg.per)
		dbg.printStyle(terminal.StyleFeedback, "state graph written to %s", fn)

	default:
		return curated.Errorf("unknown command: %s", toks[0])
	}

	return nil
}

// transact handles the argument forms of the TX command.
func (dbg *Debugger) transact(toks []string) error {
	switch len(toks) {
	case 2:
		if toks[0] == "WORD" {
			word, err := strconv.ParseUint(toks[1], 16, 16)
			if err != nil {
				return curated.Errorf("tx: not a valid word: %s", toks[1])
			}
			dbg.drv.Transact(uint16(word))
			return nil
		}

		addr, err := strconv.ParseUint(toks[0], 16, 8)
		if err != nil || addr > 0x7f {
			return curated.Errorf("tx: not a valid address: %s", toks[0])
		}
		value, err := strconv.ParseUint(toks[1], 16, 8)
		if err != nil {
			return curated.Errorf("tx: not a valid value: %s", toks[1])
		}
		dbg.drv.Write(registers.Address(addr), uint8(value))
		return nil

	default:
		return curated.Errorf("tx: arguments required (addr value; or WORD word)")
	}
}

// styleWriter routes writes to the terminal with the log style.
type styleWriter struct {
	dbg *Debugger
}

func (w *styleWriter) Write(p []byte) (int, error) {
	w.dbg.printStyle(terminal.StyleLog, "%s", strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
