// This file is part of GopherSPI.
//
// GopherSPI is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherSPI is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherSPI. If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gopherspi/gopherspi/capture"
	"github.com/gopherspi/gopherspi/controller"
	"github.com/gopherspi/gopherspi/curated"
	"github.com/gopherspi/gopherspi/debugger"
	"github.com/gopherspi/gopherspi/debugger/terminal"
	"github.com/gopherspi/gopherspi/debugger/terminal/colorterm"
	"github.com/gopherspi/gopherspi/debugger/terminal/plainterm"
	"github.com/gopherspi/gopherspi/hardware"
	"github.com/gopherspi/gopherspi/hardware/registers"
	"github.com/gopherspi/gopherspi/hardware/spi"
	"github.com/gopherspi/gopherspi/logger"
	"github.com/gopherspi/gopherspi/modalflag"
	"github.com/gopherspi/gopherspi/performance"
	"github.com/gopherspi/gopherspi/recorder"
	"github.com/gopherspi/gopherspi/statsview"
	"github.com/gopherspi/gopherspi/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "REPLAY", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %s\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "DEBUG":
		err = debug(md)
	case "REPLAY":
		err = replay(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* %s\n", err)
		os.Exit(20)
	}
}

// parseWord interprets a command line transaction argument. two forms are
// accepted: "addr=value" with both fields in hex, which is packed into a
// write command; and a raw four-digit hex word, which is sent as-is.
func parseWord(arg string) (uint16, error) {
	if idx := strings.Index(arg, "="); idx != -1 {
		addr, err := strconv.ParseUint(arg[:idx], 16, 8)
		if err != nil || addr > 0x7f {
			return 0, curated.Errorf("invalid address in transaction %q", arg)
		}
		value, err := strconv.ParseUint(arg[idx+1:], 16, 8)
		if err != nil {
			return 0, curated.Errorf("invalid value in transaction %q", arg)
		}
		return controller.Word(true, registers.Address(addr), uint8(value)), nil
	}

	word, err := strconv.ParseUint(arg, 16, 16)
	if err != nil {
		return 0, curated.Errorf("invalid transaction word %q", arg)
	}
	return uint16(word), nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo the log to stderr")
	trace := md.AddString("trace", "", "record line activity to the named WAV file")
	ticks := md.AddInt("ticks", controller.DefaultTicksPerHalf, "system ticks per clock half-period")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr)
	}

	if len(md.RemainingArgs()) == 0 {
		return curated.Errorf("no transactions specified (addr=value pairs or raw hex words)")
	}

	per := hardware.NewPeriph()
	per.SPI.SetCommitHandler(func(c spi.Commit) {
		fmt.Println(c.String())
	})

	var bus controller.Bus = per
	var trc *recorder.Trace
	if *trace != "" {
		trc = recorder.NewTrace(per)
		bus = trc
	}

	drv := controller.NewDriver(bus)
	drv.TicksPerHalf = *ticks

	for _, arg := range md.RemainingArgs() {
		word, err := parseWord(arg)
		if err != nil {
			return err
		}
		drv.Transact(word)
	}

	if trc != nil {
		err = trc.End(*trace)
		if err != nil {
			return err
		}
	}

	fmt.Print(per.Regs.String())

	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo the log to stderr")
	termType := md.AddString("term", "COLOR", "terminal style (COLOR, PLAIN)")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr)
	}

	var scr terminal.Terminal
	switch strings.ToUpper(*termType) {
	case "COLOR":
		scr = &colorterm.ColorTerminal{}
	case "PLAIN":
		scr = &plainterm.PlainTerminal{}
	default:
		return curated.Errorf("unknown terminal style %q", *termType)
	}

	events := &terminal.ReadEvents{
		Signal: make(chan os.Signal, 1),
		SignalHandler: func(sig os.Signal) error {
			return curated.Errorf(terminal.UserInterrupt)
		},
	}
	signal.Notify(events.Signal, os.Interrupt)
	defer signal.Stop(events.Signal)

	dbg, err := debugger.NewDebugger(scr, events)
	if err != nil {
		return err
	}

	return dbg.Start()
}

func replay(md *modalflag.Modes) error {
	md.NewMode()

	csFile := md.AddString("cs", "digital_0.bin", "chip select capture file")
	clkFile := md.AddString("clk", "digital_2.bin", "serial clock capture file")
	dataFile := md.AddString("data", "digital_1.bin", "data line capture file")
	ticks := md.AddInt("ticks", controller.DefaultTicksPerHalf, "system ticks per clock half-period")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	txs, err := capture.Load(*csFile, *clkFile, *dataFile)
	if err != nil {
		return err
	}

	per := hardware.NewPeriph()
	per.SPI.SetCommitHandler(func(c spi.Commit) {
		fmt.Println(c.String())
	})

	drv := controller.NewDriver(per)
	drv.TicksPerHalf = *ticks

	capture.Replay(txs, drv)

	fmt.Print(per.Regs.String())

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration (note: there is a small overhead over this value)")
	profile := md.AddString("profile", "none", "run with profiling (CPU, MEM, ALL, NONE)")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return curated.Errorf("statsview not available in this build")
		}
		statsview.Launch(md.Output)
	}

	prf, err := parseProfile(*profile)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prf, *duration)
}

func parseProfile(s string) (performance.Profile, error) {
	switch strings.ToUpper(s) {
	case "NONE":
		return performance.ProfileNone, nil
	case "CPU":
		return performance.ProfileCPU, nil
	case "MEM":
		return performance.ProfileMem, nil
	case "ALL":
		return performance.ProfileAll, nil
	}
	return performance.ProfileNone, curated.Errorf("unknown profile type %q", s)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	rev := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	ver, revision, _ := version.Version()
	fmt.Fprintln(md.Output, ver)
	if *rev {
		fmt.Fprintln(md.Output, revision)
	}

	return nil
}
