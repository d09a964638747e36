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

// Package plainterm implements the Terminal interface for the interactive
// query session. It's as simple as simple can be and offers no special
// features.
package plainterm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adafruit/legolas/curated"
	"github.com/adafruit/legolas/terminal"
	"golang.org/x/term"
)

// PlainTerminal is the most basic terminal interface. It keeps the terminal
// in whatever mode it started, probably cooked mode. As such, it offers only
// rudimentary editing facility and little control over output.
type PlainTerminal struct {
	input      *bufio.Reader
	output     io.Writer
	realInput  bool
	realOutput bool
	silenced   bool
}

// Initialise performs any setting up required for the terminal.
func (pt *PlainTerminal) Initialise() error {
	pt.input = bufio.NewReader(os.Stdin)
	pt.output = os.Stdout
	pt.realInput = term.IsTerminal(int(os.Stdin.Fd()))
	pt.realOutput = term.IsTerminal(int(os.Stdout.Fd()))
	return nil
}

// CleanUp performs any cleaning up required for the terminal.
func (pt *PlainTerminal) CleanUp() {
}

// RegisterTabCompletion adds an implementation of TabCompletion to the
// terminal. the plain terminal does not support tab completion.
func (pt *PlainTerminal) RegisterTabCompletion(terminal.TabCompletion) {
}

// Silence implements the terminal.Terminal interface.
func (pt *PlainTerminal) Silence(silenced bool) {
	pt.silenced = silenced
}

// TermPrintLine implements the terminal.Output interface.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	if pt.silenced && style != terminal.StyleError {
		return
	}

	// the input line is already visible in cooked mode and the terminal
	// does not need to repeat it
	if style == terminal.StyleEcho || style == terminal.StyleInput {
		return
	}

	switch style {
	case terminal.StyleError:
		s = fmt.Sprintf("* %s", s)
	}

	pt.output.Write([]byte(s))

	if !style.IsPrompt() {
		pt.output.Write([]byte("\n"))
	}
}

// TermRead implements the terminal.Input interface.
func (pt *PlainTerminal) TermRead(buffer []byte, prompt terminal.Prompt, events *terminal.ReadEvents) (int, error) {
	if pt.silenced {
		return 0, nil
	}

	// insert prompt into the output stream. there is no need for a prompt
	// when input is being piped from elsewhere
	if pt.realInput {
		pt.output.Write([]byte(prompt.String()))
	}

	s, err := pt.input.ReadString('\n')
	if err != nil {
		// a line that terminates at EOF without a newline is still a line
		if err != io.EOF || s == "" {
			return 0, err
		}
	}

	// the count returned to the caller always includes a line terminator
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	n := copy(buffer, s)

	// while we were waiting for input we may have received an interrupt
	// event
	if events != nil {
		select {
		case <-events.IntEvents:
			return 0, curated.Errorf(terminal.UserInterrupt)
		default:
		}
	}

	return n, nil
}

// TermReadCheck implements the terminal.Input interface.
func (pt *PlainTerminal) TermReadCheck() bool {
	return false
}

// IsInteractive implements the terminal.Input interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return pt.realInput && pt.realOutput
}
