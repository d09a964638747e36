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
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/adafruit/legolas/curated"
	"github.com/adafruit/legolas/terminal"
	"github.com/adafruit/legolas/terminal/colorterm/easyterm"
	"github.com/adafruit/legolas/terminal/colorterm/easyterm/ansi"
)

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(input []byte, prompt terminal.Prompt, events *terminal.ReadEvents) (int, error) {
	if ct.silenced {
		return 0, nil
	}

	ct.RawMode()
	defer ct.CanonicalMode()

	// er is used to store encoded runes (length of 4 should be enough)
	er := make([]byte, 4)

	n := 0
	cursor := 0
	history := len(ct.commandHistory)

	// buffInput is used to store the latest input when we scroll through
	// history - we don't want to lose what has been typed in case the user
	// wants to resume where they left off
	buffInput := make([]byte, cap(input))
	buffN := 0

	// the method for cursor placement is as follows:
	//	1. for each iteration in the loop
	//		2. store current cursor position
	//		3. clear the current line
	//		4. output the prompt
	//		5. output the input buffer
	//		6. restore the cursor position
	//
	// for this to work we need to place the cursor in its initial position
	// before we begin the loop
	ct.EasyTerm.TermPrint("\r%s", ansi.CursorMove(len(prompt.String())))

	for {
		ct.EasyTerm.TermPrint(ansi.CursorStore)
		ct.TermPrintLine(prompt.Style, fmt.Sprintf("%s%s", ansi.ClearLine, prompt.String()))
		ct.TermPrintLine(terminal.StyleInput, string(input[:n]))
		ct.EasyTerm.TermPrint(ansi.CursorRestore)

		// get the next rune. if an events structure has been supplied then
		// we monitor the interrupt channel at the same time
		var rr readRune
		if events != nil {
			select {
			case rr = <-ct.reader:
			case <-events.IntEvents:
				ct.EasyTerm.TermPrint("\n")
				return n + 1, curated.Errorf(terminal.UserInterrupt)
			}
		} else {
			rr = <-ct.reader
		}

		if rr.err != nil {
			return n, rr.err
		}

		switch rr.r {
		case easyterm.KeyTab:
			if ct.tabCompletion != nil {
				s := ct.tabCompletion.Complete(string(input[:cursor]))

				// the difference in the length of the new input and the old
				// input
				d := len(s) - cursor

				// append everything after the cursor to the new string and
				// copy into input array
				s += string(input[cursor:n])
				copy(input, []byte(s))

				// advance cursor to the end of the completed word
				ct.EasyTerm.TermPrint(ansi.CursorMove(d))
				cursor += d

				// note new used-length of input array
				n += d
			}

		case easyterm.KeyInterrupt:
			// CTRL-C
			ct.EasyTerm.TermPrint("\n")
			return n + 1, curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeyEndOfTransmission:
			// CTRL-D on an empty line ends the session
			if n == 0 {
				ct.EasyTerm.TermPrint("\n")
				return 0, io.EOF
			}

		case easyterm.KeySuspend:
			// CTRL-Z. restore the terminal to canonical mode for the
			// duration of the suspension
			ct.CanonicalMode()
			easyterm.SuspendProcess()
			ct.RawMode()

		case easyterm.KeyCarriageReturn:
			// CARRIAGE RETURN

			// check to see if input is the same as the last history entry
			newEntry := false
			if n > 0 {
				newEntry = true
				if len(ct.commandHistory) > 0 {
					lastHistoryEntry := ct.commandHistory[len(ct.commandHistory)-1].input
					if len(lastHistoryEntry) == n {
						newEntry = false
						for i := 0; i < n; i++ {
							if input[i] != lastHistoryEntry[i] {
								newEntry = true
								break
							}
						}
					}
				}
			}

			// if input is not the same as the last history entry then append
			// a new entry to the history list
			if newEntry {
				nh := make([]byte, n)
				copy(nh, input[:n])
				ct.commandHistory = append(ct.commandHistory, command{input: nh})
			}

			ct.EasyTerm.TermPrint("\n")
			return n + 1, nil

		case easyterm.KeyEsc:
			// ESCAPE SEQUENCE BEGIN
			rr = <-ct.reader
			if rr.err != nil {
				return n, rr.err
			}
			switch rr.r {
			case easyterm.EscCursor:
				// CURSOR KEY
				rr = <-ct.reader
				if rr.err != nil {
					return n, rr.err
				}

				switch rr.r {
				case easyterm.CursorUp:
					// move up through command history
					if len(ct.commandHistory) > 0 {
						// if we're at the end of the command history then
						// store the current input in buffInput for possible
						// later editing
						if history == len(ct.commandHistory) {
							copy(buffInput, input[:n])
							buffN = n
						}

						if history > 0 {
							history--
							copy(input, ct.commandHistory[history].input)
							n = len(ct.commandHistory[history].input)
							ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
							cursor = n
						}
					}
				case easyterm.CursorDown:
					// move down through command history
					if len(ct.commandHistory) > 0 {
						if history < len(ct.commandHistory)-1 {
							history++
							copy(input, ct.commandHistory[history].input)
							n = len(ct.commandHistory[history].input)
							ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
							cursor = n
						} else if history == len(ct.commandHistory)-1 {
							history++
							copy(input, buffInput)
							n = buffN
							ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
							cursor = n
						}
					}
				case easyterm.CursorForward:
					// move forward through current command input
					if cursor < n {
						ct.EasyTerm.TermPrint(ansi.CursorForwardOne)
						cursor++
					}
				case easyterm.CursorBackward:
					// move backward through current command input
					if cursor > 0 {
						ct.EasyTerm.TermPrint(ansi.CursorBackwardOne)
						cursor--
					}

				case easyterm.EscHome:
					// HOME
					ct.EasyTerm.TermPrint(ansi.CursorMove(-cursor))
					cursor = 0

				case easyterm.EscEnd:
					// END
					ct.EasyTerm.TermPrint(ansi.CursorMove(n - cursor))
					cursor = n

				case easyterm.EscDelete:
					// DELETE
					if cursor < n {
						copy(input[cursor:], input[cursor+1:])
						n--
						history = len(ct.commandHistory)
					}

					// eat the tilde that completes the escape sequence
					<-ct.reader
				}
			}

		case easyterm.KeyBackspace, easyterm.KeyDelete:
			// BACKSPACE. some terminals send DEL for the backspace key
			if cursor > 0 {
				copy(input[cursor-1:], input[cursor:])
				ct.EasyTerm.TermPrint(ansi.CursorBackwardOne)
				cursor--
				n--
				history = len(ct.commandHistory)
			}

		default:
			if unicode.IsPrint(rr.r) {
				ct.EasyTerm.TermPrint("%c", rr.r)
				m := utf8.EncodeRune(er, rr.r)
				copy(input[cursor+m:], input[cursor:])
				copy(input[cursor:], er[:m])
				cursor++
				n += m
				history = len(ct.commandHistory)
			}
		}
	}
}
