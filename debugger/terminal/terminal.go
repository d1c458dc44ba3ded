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

// Package terminal defines the operations required by the command line
// interface of the debugger. Implementations are in the plainterm and
// colorterm sub-packages.
package terminal

import "os"

// sentinal error pattern returned by TermRead() if an interrupt is caught
// whilst waiting for input.
const UserInterrupt = "user interrupt"

// Prompt specifies the prompt text shown when the terminal is waiting for
// input.
type Prompt struct {
	Content string
}

// String returns the prompt with standard decoration, good for terminals
// with no graphical capabilities at all.
func (p Prompt) String() string {
	return "[ " + p.Content + " ] >> "
}

// Style is used to identify the category of text being sent to the
// terminal output, allowing implementations to present each category
// differently.
type Style int

// List of terminal styles.
const (
	// input from the user being echoed back
	StyleEcho Style = iota

	// help information
	StyleHelp

	// information from the debugger about the command just run
	StyleFeedback

	// hardware state: registers, tracker state, line levels
	StyleInstrument

	// log entries
	StyleLog

	// error messages. shown even when the terminal is silenced
	StyleError
)

// ReadEvents is the collection of channels that may feed into a
// TermRead() call. Implementations that can monitor the channels while
// waiting for input should do so.
type ReadEvents struct {
	// interrupt signals from the operating system
	Signal chan os.Signal

	// handler to be run when a signal arrives. the returned error is
	// returned in turn by TermRead()
	SignalHandler func(os.Signal) error
}

// Input defines the operations required by an interface that allows
// input.
type Input interface {
	// TermRead returns one line of user input, without the line
	// terminator.
	TermRead(prompt Prompt, events *ReadEvents) (string, error)

	// IsInteractive should return true for implementations that expect a
	// user at a keyboard.
	IsInteractive() bool
}

// Output defines the operations required by an interface that allows
// output.
type Output interface {
	TermPrintLine(Style, string)
}

// Terminal defines the operations required by the debugger's command line
// interface.
type Terminal interface {
	Input
	Output

	// Initialise the terminal. not all implementations need to do
	// anything
	Initialise() error

	// Restore the terminal to its original state, if possible. for
	// example, returning the terminal to canonical mode
	CleanUp()

	// Silence all input and output except error messages
	Silence(silenced bool)
}
