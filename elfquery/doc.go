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

// Package elfquery opens an ELF file and projects its section headers and
// symbol tables into an in-memory SQL database, so the file can be explored
// with ordinary SQL rather than a fixed set of report formats.
//
// Open() builds two tables. the 'sections' table has one row per section
// header, in file order. the 'symbols' table has one row per entry of every
// symbol table in the file, including the null entry at index zero, so row
// numbers line up with the symbol indices used elsewhere in the file.
// WriteColumns() documents both schemas.
//
// Dynamic symbols carry a Version column. the decoration matches what GNU
// readelf prints: "@@version" for the default definition of a symbol,
// "@version" for a hidden definition and "@version (index)" for a version
// required from another file. files using the Solaris versioning scheme, or
// no versioning at all, leave the column empty.
//
// Queries run through Run(), either one at a time or from the interactive
// Session loop. two scalar functions are registered with the database
// engine in addition to the SQLite builtins:
//
//	TO_HEX(value, width)  render an integer as zero padded hex
//	FROM_HEX(text)        parse a hex string to an integer
//
// the Session loop reads queries from a terminal.Terminal with the prompt
// "SQL> ". the meta commands QUIT, EXIT, COLUMNS, EXAMPLES and HELP are
// handled by the loop itself, anything else goes to the database engine.
// query errors are printed and the loop continues.
package elfquery
