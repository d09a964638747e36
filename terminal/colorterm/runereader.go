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
	"bufio"
	"io"
)

// the results of a single read by a runeReader instance.
type readRune struct {
	r   rune
	n   int
	err error
}

// runeReader is how TermRead() receives input. reading happens in a
// separate goroutine so that TermRead() can select on the channel alongside
// any event channels it has been asked to monitor.
type runeReader chan readRune

func initRuneReader(input io.Reader) runeReader {
	reader := bufio.NewReader(input)
	ch := make(chan readRune)

	go func() {
		for {
			var rr readRune
			rr.r, rr.n, rr.err = reader.ReadRune()
			ch <- rr
		}
	}()

	return ch
}
