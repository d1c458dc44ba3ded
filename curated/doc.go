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

// Package curated is a helper package for the plain Go language error
// type. Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, like Errorf() in the fmt
// package, but the pattern string is also the identity of the error. The
// Is() function checks an error against a pattern:
//
//	e := curated.Errorf("capture: %v", err)
//
//	if curated.Is(e, "capture: %v") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks for the pattern anywhere in the
// error chain, rather than only at its head. IsAny() answers whether the
// error is curated at all, which in practice distinguishes errors the
// program 'expects' from those it does not.
//
// The Error() function normalises the message chain so that adjacent
// duplicate parts are removed. A function wrapping an error with the same
// prefix that is already at the head of the chain does not grow the
// message. Chains are composed of parts separated by the sub-string ": "
// as suggested on p239 of "The Go Programming Language" (Donovan,
// Kernighan).
//
// Sentinel patterns should be stored as const strings, suitably named and
// commented, in the package that creates them.
package curated
