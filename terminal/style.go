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

package terminal

// Style is used to identify the category of text being sent to the
// TermPrintLine() function. Terminal implementations are free to interpret
// the style however is appropriate, including ignoring it.
type Style int

// List of terminal styles.
const (
	// input the user is currently typing. used during line editing, never
	// for completed lines.
	StyleInput Style = iota

	// the normalised echo of a completed input line. terminals that have
	// already displayed the user's typing should ignore this style.
	StyleEcho

	// help text for the interactive session.
	StyleHelp

	// information about the effect of a command.
	StyleFeedback

	// the result of a query.
	StyleResult

	// the input prompt.
	StylePrompt

	// error messages. implementations should display these even when
	// silenced.
	StyleError
)

// IsPrompt returns true if the style is one that is printed in-line with
// user input, meaning that no newline should be appended.
func (sty Style) IsPrompt() bool {
	return sty == StylePrompt || sty == StyleInput
}
