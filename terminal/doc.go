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

// Package terminal defines the operations required for user interaction
// during an interactive query session.
//
// The Terminal interface is the union of the Input and Output interfaces
// plus some housekeeping functions. Two implementations are provided in the
// sub-packages: colorterm, a raw-mode ANSI terminal with line editing,
// history and tab completion; and plainterm, a fallback that works over any
// file-like input and output.
//
// Output is sent with a Style, which terminals map to whatever decoration
// they support. Input is read through TermRead(), which fills a caller
// supplied buffer and includes the line-ending newline in its character
// count.
package terminal
