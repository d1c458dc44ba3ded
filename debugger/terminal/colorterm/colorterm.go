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

// Package colorterm implements the Terminal interface for the debugger.
// It provides a coloured, equipped terminal experience: the terminal is
// placed in cbreak mode and simple line editing is supported.
package colorterm

import (
	"os"

	"github.com/gopherspi/gopherspi/curated"
	"github.com/gopherspi/gopherspi/debugger/terminal"
	"github.com/gopherspi/gopherspi/debugger/terminal/colorterm/easyterm"
	"github.com/gopherspi/gopherspi/debugger/terminal/colorterm/easyterm/ansi"
)

// ColorTerminal implements the terminal.Terminal interface.
type ColorTerminal struct {
	easyterm.Terminal

	silenced bool
}

// Initialise perfoms any setting up required for the terminal.
func (ct *ColorTerminal) Initialise() error {
	return ct.Terminal.Initialise(os.Stdin, os.Stdout)
}

// CleanUp perfoms any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.Print(ansi.NormalPen)
	ct.Terminal.CleanUp()
}

// IsInteractive implements the terminal.Input interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

// Silence implements the terminal.Terminal interface.
func (ct *ColorTerminal) Silence(silenced bool) {
	ct.silenced = silenced
}

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	// user input is echoed as it is typed. nothing more to do
	if style == terminal.StyleEcho {
		return
	}

	switch style {
	case terminal.StyleHelp:
		ct.Print(ansi.DimPen)
	case terminal.StyleFeedback:
		ct.Print(ansi.NormalPen)
	case terminal.StyleInstrument:
		ct.Print(ansi.YellowPen)
	case terminal.StyleLog:
		ct.Print(ansi.CyanPen)
	case terminal.StyleError:
		ct.Print(ansi.RedPen)
		ct.Print("* ")
	}

	ct.Print(s)
	ct.Print(ansi.NormalPen)
	ct.Print("\n")
}

// TermRead implements the terminal.Input interface. Input is read a byte
// at a time with the terminal in cbreak mode, giving us control over
// echoing and editing.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt, events *terminal.ReadEvents) (string, error) {
	if ct.silenced {
		return "", nil
	}

	ct.CBreakMode()
	defer ct.CanonicalMode()

	ct.Print(ansi.BoldPen)
	ct.Print(prompt.String())
	ct.Print(ansi.NormalPen)

	input := make([]byte, 0, 255)

	for {
		// a signal may have arrived while we were waiting
		select {
		case sig := <-events.Signal:
			ct.Print("\n")
			if events.SignalHandler != nil {
				return "", events.SignalHandler(sig)
			}
			return "", curated.Errorf(terminal.UserInterrupt)
		default:
		}

		b, err := ct.ReadByte()
		if err != nil {
			return "", err
		}

		switch b {
		case 0x03: // ctrl-c
			ct.Print("\n")
			return "", curated.Errorf(terminal.UserInterrupt)

		case '\n', '\r':
			ct.Print("\n")
			return string(input), nil

		case 0x08, 0x7f: // backspace / delete
			if len(input) > 0 {
				input = input[:len(input)-1]
				ct.Print("\b \b")
			}

		case 0x1b: // swallow escape sequences. two further bytes for the
			// common cursor keys
			_, _ = ct.ReadByte()
			_, _ = ct.ReadByte()

		default:
			if b >= 32 && b < 127 {
				input = append(input, b)
				ct.Print("%c", b)
			}
		}
	}
}
