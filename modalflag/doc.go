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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Whereas with flag.FlagSet you call Parse() with the
// array of strings as the only argument, with modalflag you first call
// NewArgs() with the arguments and then Parse() with no arguments:
//
//	md := Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() functions. For example, handling
// exactly one argument:
//
//	switch len(md.RemainingArgs()) {
//	case 0:
//		return fmt.Errorf("argument required")
//	case 1:
//		Process(md.GetArg(0))
//	default:
//		return fmt.Errorf("too many arguments")
//	}
//
// Adding flags is similar to the flag package. Each Add function returns a
// pointer to a variable of the specified type, set by Parse() according to
// what the user has requested:
//
//	verbose := md.AddBool("verbose", false, "print additional log messages")
//
// In addition to the standard flag types, AddAddress() adds a flag that
// accepts decimal or 0x-prefixed hexadecimal numbers and records whether it
// was supplied at all. This is useful for flags whose defaults cannot be
// expressed as a constant (an address defaulting to "the lowest used address
// in the file", for instance).
//
// The important difference between the standard flag package and this one is
// the handling of "modes". A mode is a special command line argument that
// puts the program into a different mode of operation, in the manner of the
// go command (build, doc, test, etc.). Each mode can have a different set of
// flags and expected arguments.
//
// Sub-modes are declared with the AddSubModes() function and checked for
// after the flags during Parse(). Comparisons are case insensitive:
//
//	md.AddSubModes("elfquery", "hexmerge", "hexpad")
//	_, _ = md.Parse()
//	switch md.Mode() {
//	case "ELFQUERY":
//		...
//	}
//
// Once a mode has been selected, NewMode() begins a new layer of parsing:
// declare the mode's flags and call Parse() again. The remaining arguments
// (minus the mode selector) are processed and further sub-modes, if any,
// are recognised. Mode layers chain as deep as required; Path() returns the
// series of modes encountered so far.
package modalflag
