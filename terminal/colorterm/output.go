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

package colorterm

import (
	"github.com/adafruit/legolas/terminal"
	"github.com/adafruit/legolas/terminal/colorterm/easyterm/ansi"
)

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	// the terminal echoes as the user types so a second echo of the
	// completed line is unwanted
	if style == terminal.StyleEcho {
		return
	}

	// input continues on from the prompt. every other style begins at the
	// start of the line
	if style != terminal.StyleInput {
		ct.EasyTerm.TermPrint("\r")
	}

	switch style {
	case terminal.StyleHelp:
		ct.EasyTerm.TermPrint(ansi.DimPens["white"])
	case terminal.StyleFeedback:
		ct.EasyTerm.TermPrint(ansi.DimPens["white"])
	case terminal.StylePrompt:
		ct.EasyTerm.TermPrint(ansi.PenStyles["bold"])
	case terminal.StyleError:
		ct.EasyTerm.TermPrint(ansi.Pens["red"])
		ct.EasyTerm.TermPrint("* ")
	}

	ct.EasyTerm.TermPrint("%s", s)
	ct.EasyTerm.TermPrint(ansi.NormalPen)

	// add a newline if print style is anything other than the prompt or the
	// input line
	if !style.IsPrompt() {
		ct.EasyTerm.TermPrint("\n")
	}
}
