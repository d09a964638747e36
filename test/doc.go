// This file is part of Legolas.
//
// Legolas is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Legolas is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Legolas.  If not, see <https://www.gnu.org/licenses/>.

// Package test contains helper functions that remove common testing
// boilerplate.
//
// The ExpectedFailure() and ExpectedSuccess() functions test for failure and
// success under generic conditions. The supported types are listed in the
// function documentation.
//
// How the "Expected" functions handle nil deserves a note because it is not
// obvious. Nil is considered a success, so it causes ExpectedFailure() to
// fail and ExpectedSuccess() to succeed. That is the only sensible reading
// when the value under test is an error return (nil meaning no error).
//
// The Equate() function compares like-typed values for equality. Some types
// (eg. uint16, uint32) can be compared against an int literal for
// convenience. See the Equate() documentation.
//
// The Writer type implements io.Writer and captures output for later
// comparison with Writer.Compare().
package test
