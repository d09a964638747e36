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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Like the Errorf()
// function in the fmt package it takes a formatting pattern and placeholder
// values, and returns an error.
//
// The Is() function checks whether an error was created by Errorf() with a
// specific pattern. The pattern string is what differentiates one curated
// error from another, so packages that raise errors other packages need to
// recognise should store the pattern as a named const. For example:
//
//	if curated.Is(err, hexfile.Conflict) {
//		// tolerable, depending on policy
//	}
//
// The Has() function is similar but checks for the pattern anywhere in the
// error chain, not just at the outermost wrapping:
//
//	err := curated.Errorf("hex merge: %v", curated.Errorf(hexfile.Conflict, addr, old, new))
//
//	curated.Has(err, hexfile.Conflict)    // true
//	curated.Is(err, hexfile.Conflict)     // false. the conflict is wrapped
//
// IsAny() answers whether the error is curated at all. An uncurated error is
// one from outside the project, or one that no caller is expected to react
// to beyond reporting it.
//
// The Error() implementation normalises the message chain by removing
// duplicate adjacent parts. Wrapping an error with the same prefix at every
// level of the call stack therefore costs nothing at the point the message
// is finally printed:
//
//	"hex file: hex file: no end of file record" is printed as
//	"hex file: no end of file record"
package curated
