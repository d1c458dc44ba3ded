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

// Package ansi defines the ANSI control sequences used by the colorterm
// package.
package ansi

import "fmt"

// CSI sequences for the pens used by the terminal. NormalPen returns the
// terminal to its default rendering.
var (
	NormalPen  = csi("0")
	BoldPen    = csi("1")
	DimPen     = csi("2")
	RedPen     = csi("31;1")
	GreenPen   = csi("32")
	YellowPen  = csi("33")
	BluePen    = csi("34;1")
	MagentaPen = csi("35")
	CyanPen    = csi("36")
)

// ClearLine erases the current line without moving the cursor.
var ClearLine = fmt.Sprintf("%c[2K", 27)

// CursorStore and CursorRestore save and recall the cursor position.
var (
	CursorStore   = fmt.Sprintf("%c7", 27)
	CursorRestore = fmt.Sprintf("%c8", 27)
)

// CursorMove returns the sequence moving the cursor n columns, negative
// values moving left.
func CursorMove(n int) string {
	if n < 0 {
		return fmt.Sprintf("%c[%dD", 27, -n)
	}
	return fmt.Sprintf("%c[%dC", 27, n)
}

func csi(attr string) string {
	return fmt.Sprintf("%c[%sm", 27, attr)
}
