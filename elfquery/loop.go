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

package elfquery

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/adafruit/legolas/curated"
	"github.com/adafruit/legolas/terminal"
)

var sqlPrompt = terminal.Prompt{
	Content: "SQL>",
	Style:   terminal.StylePrompt,
}

const sessionHelp = `Meta commands:
  QUIT/EXIT  end the session
  COLUMNS    list the columns available to query
  EXAMPLES   show example queries
  HELP       show this help

Anything else is run as a query against the 'sections' and 'symbols' tables.`

// Session is an interactive query loop: read a line from the terminal, run
// it as a query, print the result. a small set of meta commands is handled
// before the query engine sees the line.
type Session struct {
	qry    *Query
	term   terminal.Terminal
	events *terminal.ReadEvents
}

// NewSession is the preferred method of initialisation for the Session
// type. the terminal must be initialised already. the session registers its
// own tab completion with the terminal and reacts to ctrl-c by ending the
// loop.
func NewSession(qry *Query, term terminal.Terminal) *Session {
	s := &Session{
		qry:  qry,
		term: term,
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	s.events = &terminal.ReadEvents{
		IntEvents: intChan,
	}

	term.RegisterTabCompletion(NewTabCompletion())

	return s
}

// Run loops until the user quits the session. filename appears in the
// introduction line and is informational only.
func (s *Session) Run(filename string) error {
	s.term.TermPrintLine(terminal.StyleHelp,
		fmt.Sprintf("Interactive query mode for %s. Enter query at prompt, HELP for command list, or QUIT to exit program.", filename))

	buffer := make([]byte, 4096)

	for {
		n, err := s.term.TermRead(buffer, sqlPrompt, s.events)
		if err != nil {
			// ctrl-c and ctrl-d end the session the same way QUIT does
			if curated.Is(err, terminal.UserInterrupt) || curated.Is(err, terminal.UserAbort) || err == io.EOF {
				return nil
			}
			return err
		}

		if n <= 0 {
			continue
		}

		// the last byte of the buffer is the newline that ended the read
		input := strings.TrimSpace(string(buffer[:n-1]))
		if input == "" {
			continue
		}

		switch strings.ToUpper(input) {
		case "QUIT", "EXIT":
			return nil

		case "COLUMNS":
			cols := strings.Builder{}
			WriteColumns(&cols)
			s.print(terminal.StyleHelp, cols.String())

		case "EXAMPLES":
			s.print(terminal.StyleHelp, Examples)

		case "HELP":
			s.print(terminal.StyleHelp, sessionHelp)

		default:
			res, err := s.qry.Run(input)
			if err != nil {
				// a failed query does not end the session
				s.term.TermPrintLine(terminal.StyleError, err.Error())
				continue
			}

			out := strings.Builder{}
			if err := res.Write(&out, FormatFriendly); err != nil {
				return err
			}
			s.print(terminal.StyleResult, out.String())
		}
	}
}

// print sends a multi-line string to the terminal one line at a time.
func (s *Session) print(style terminal.Style, text string) {
	for _, l := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		s.term.TermPrintLine(style, l)
	}
}
