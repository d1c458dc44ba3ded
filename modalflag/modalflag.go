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

// Package modalflag is a wrapper for the flag package in the standard
// library. It adds the idea of program modes: the first non-flag argument
// can select a sub-mode, and each mode can then define its own flags. Mode
// comparison is case insensitive and the first mode in the registered list
// is the default when the user names none.
//
// Idiomatic usage:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DEBUG")
//
//	r, err := md.Parse()
//	// handle ParseHelp and ParseError
//
//	switch md.Mode() {
//	...
//	}
//
// After a mode has been selected, call NewMode(), add the mode's flags and
// Parse() again.
package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Modes provides parsing of command line arguments divided into program
// modes. The Output field should be set before calling Parse() or help
// messages will go nowhere.
type Modes struct {
	Output io.Writer

	// the underlying flagset. recreated by every call to NewMode()
	flags *flag.FlagSet

	// the full argument list and how far into it successive Parse() calls
	// have consumed
	args    []string
	argsIdx int

	// sub-modes valid for the next call to Parse(). the first entry is the
	// default
	subModes []string

	// modes selected by successive calls to Parse()
	path []string

	additionalHelp string
}

// NewArgs begins parsing of the argument list, usually os.Args[1:].
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode indicates that further flags and sub-modes belong to the mode
// most recently selected by Parse().
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.additionalHelp = ""
}

// AddSubModes registers the valid sub-modes for the next call to Parse().
// The first in the list is the default.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AdditionalHelp adds explanatory text to the help output of the next call
// to Parse().
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by "/".
func (md *Modes) Path() string {
	return strings.Join(md.path, "/")
}

// String implements the Stringer interface.
func (md *Modes) String() string {
	return md.Path()
}

// RemainingArgs returns the arguments left over after Parse(): those that
// are neither flags nor a listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument that isn't a flag or a listed
// sub-mode.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing. check Mode() if sub-modes
	// were registered
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// Parse the current layer of arguments.
func (md *Modes) Parse() (ParseResult, error) {
	buf := &strings.Builder{}
	md.flags.SetOutput(buf)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			md.writeHelp(buf.String())
			return ParseHelp, nil
		}
		return ParseError, err
	}

	if len(md.subModes) > 0 {
		// the default sub-mode unless the first argument names another
		mode := md.subModes[0]

		arg := strings.ToUpper(md.flags.Arg(0))
		for _, m := range md.subModes {
			if m == arg {
				mode = arg
				md.argsIdx++
				break // for loop
			}
		}

		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

func (md *Modes) writeHelp(flagHelp string) {
	if md.Output == nil {
		return
	}

	if md.Path() != "" {
		fmt.Fprintf(md.Output, "Usage of %s mode:\n", md.Path())
	} else {
		fmt.Fprintf(md.Output, "Usage:\n")
	}

	// the flag package writes its own "Usage:" banner. strip it and keep
	// the flag summaries
	lines := strings.Split(flagHelp, "\n")
	if len(lines) > 1 {
		fmt.Fprintf(md.Output, "%s\n", strings.Join(lines[1:], "\n"))
	}

	if len(md.subModes) > 0 {
		fmt.Fprintf(md.Output, "  sub-modes: %s (default: %s)\n",
			strings.Join(md.subModes, ", "), md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.additionalHelp)
	}
}

// AddBool flag for the next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for the next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddUint flag for the next call to Parse().
func (md *Modes) AddUint(name string, value uint, usage string) *uint {
	return md.flags.Uint(name, value, usage)
}

// AddString flag for the next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}
