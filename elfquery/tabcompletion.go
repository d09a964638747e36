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
	"strings"
)

// the subset of the query language worth completing at the prompt, plus the
// two functions registered by this package.
var sqlKeywords = []string{
	"SELECT", "FROM", "WHERE", "ORDER", "BY", "GROUP", "HAVING",
	"ASC", "DESC", "LIMIT", "AND", "OR", "NOT", "IN", "LIKE",
	"BETWEEN", "IS", "NULL", "AS", "DISTINCT", "COUNT",
	"TO_HEX", "FROM_HEX",
}

// TabCompletion implements the terminal.TabCompletion interface for the
// interactive query session. candidate words are SQL keywords, the two
// table names and every column name. repeated completion of the same input
// cycles through the matching candidates.
type TabCompletion struct {
	vocabulary []string

	options        []string
	lastOption     int
	lastCompletion string
}

// NewTabCompletion is the preferred method of initialisation for the
// TabCompletion type.
func NewTabCompletion() *TabCompletion {
	tc := &TabCompletion{}

	seen := make(map[string]bool)
	add := func(words ...string) {
		for _, w := range words {
			key := strings.ToLower(w)
			if !seen[key] {
				seen[key] = true
				tc.vocabulary = append(tc.vocabulary, w)
			}
		}
	}

	add(sqlKeywords...)
	add("sections", "symbols")
	for _, c := range sectionCols {
		add(c[0])
	}
	for _, c := range symbolCols {
		add(c[0])
	}

	return tc
}

// Complete replaces the last word of the input with the first candidate it
// is a prefix of, plus a trailing space. calling Complete again with the
// returned string steps to the next candidate, wrapping around at the end.
func (tc *TabCompletion) Complete(input string) string {
	if input == tc.lastCompletion && len(tc.options) > 0 {
		tc.lastOption++
		if tc.lastOption >= len(tc.options) {
			tc.lastOption = 0
		}

		tokens := strings.Fields(input)
		tokens[len(tokens)-1] = tc.options[tc.lastOption]
		tc.lastCompletion = strings.Join(tokens, " ") + " "
		return tc.lastCompletion
	}

	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return input
	}

	prefix := strings.ToLower(tokens[len(tokens)-1])

	tc.options = tc.options[:0]
	for _, w := range tc.vocabulary {
		if strings.HasPrefix(strings.ToLower(w), prefix) {
			tc.options = append(tc.options, w)
		}
	}
	if len(tc.options) == 0 {
		tc.lastCompletion = ""
		return input
	}

	tc.lastOption = 0
	tokens[len(tokens)-1] = tc.options[0]
	tc.lastCompletion = strings.Join(tokens, " ") + " "
	return tc.lastCompletion
}

// Reset forgets the current completion session.
func (tc *TabCompletion) Reset() {
	tc.options = nil
	tc.lastOption = 0
	tc.lastCompletion = ""
}
