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

// Package test contains helper functions to remove common boilerplate and
// to make testing easier.
//
// The ExpectEquality() function compares like-typed values for equality,
// failing the test on inequality. DemandEquality() is the same comparison
// but failure is a testing fatality, for when later parts of the test
// cannot sensibly run after a failure.
//
// The ExpectSuccess() and ExpectFailure() functions test a value for a
// success or failure condition suitable for its type. For the error type,
// nil is a success. For the bool type, true is a success. The nil type is
// considered a success, which is the only useful interpretation given how
// Go errors work.
//
// The CompareWriter type implements io.Writer and should be used to
// capture output for comparison with expected strings.
package test
