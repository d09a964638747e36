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
	"database/sql"
	"fmt"
	"io"
	"strings"
)

// column names and SQL types for the sections table. the order is also the
// order of values in the projection INSERT.
var sectionCols = [][2]string{
	{"Number", "INTEGER PRIMARY KEY"},
	{"Name", "TEXT"},
	{"Type", "TEXT"},
	{"Flags", "TEXT"},
	{"Address", "INTEGER"},
	{"Offset", "INTEGER"},
	{"Size", "INTEGER"},
	{"Link", "INTEGER"},
	{"Info", "INTEGER"},
	{"Alignment", "INTEGER"},
	{"EntrySize", "INTEGER"},
}

// column names and SQL types for the symbols table. a symbol is identified
// by the symbol table it appears in and its index in that table, so those
// two columns together are the primary key (see createTables()).
var symbolCols = [][2]string{
	{"Section", "TEXT"},
	{"Number", "INTEGER"},
	{"Value", "TEXT"},
	{"Size", "INTEGER"},
	{"Type", "TEXT"},
	{"Binding", "TEXT"},
	{"Visibility", "TEXT"},
	{"SectionIndex", "TEXT"},
	{"Name", "TEXT"},
	{"Version", "TEXT"},
	{"RelatedSection", "TEXT"},
}

func columnList(cols [][2]string) string {
	s := strings.Builder{}
	for i, c := range cols {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(c[0])
		s.WriteString(" ")
		s.WriteString(c[1])
	}
	return s.String()
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(fmt.Sprintf("CREATE TABLE sections (%s)", columnList(sectionCols)))
	if err != nil {
		return err
	}

	_, err = db.Exec(fmt.Sprintf("CREATE TABLE symbols (%s, PRIMARY KEY (Section, Number))", columnList(symbolCols)))
	if err != nil {
		return err
	}

	return nil
}

// WriteColumns writes the list of queryable columns for both tables,
// including the key to the letters used in the Flags column.
func WriteColumns(w io.Writer) {
	fmt.Fprintln(w, "Table 'sections' has the following columns:")
	for _, c := range sectionCols {
		fmt.Fprintf(w, "- %s\n", c[0])
	}
	fmt.Fprintln(w, "Key to Flags column values:")
	fmt.Fprintln(w, "W (write), A (alloc), X (execute), M (merge), S (strings), l (large)")
	fmt.Fprintln(w, "I (info), L (link order), G (group), T (TLS), E (exclude), x (unknown)")
	fmt.Fprintln(w, "O (extra OS processing required), o (OS specific), p (processor specific)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table 'symbols' has the following columns:")
	for _, c := range symbolCols {
		fmt.Fprintf(w, "- %s\n", c[0])
	}
}

// Examples is a short tour of the query language, suitable for printing in
// response to the EXAMPLES command of the interactive session.
const Examples = `The following are example queries:

To list every symbol in order:

  SELECT * FROM symbols ORDER BY Number ASC

Note that a TO_HEX function is available which can convert a column to a
zero-padded hexadecimal string of the specified width for easier reading.
For example to show the address of each section in hex:

  SELECT Name, TO_HEX(Address, 8) FROM sections ORDER BY Number ASC

To select the name of each symbol related to the '.bss' section:

  SELECT Name FROM symbols WHERE RelatedSection = '.bss'

To do the same query but also restrict it to symbols with size > 256 bytes:

  SELECT Name FROM symbols WHERE RelatedSection = '.bss' AND Size > 256

There is also a FROM_HEX function that can be used to filter against hex
values easily. For example to select all symbols with value between 0xFF and
0xFFFF:

  SELECT Name, Value FROM symbols WHERE FROM_HEX(Value) > FROM_HEX('FF') AND FROM_HEX(Value) < FROM_HEX('FFFF')

To select all symbol data for symbols that are of type 'FUNC' or 'OBJECT':

  SELECT * FROM symbols WHERE Type IN ('FUNC', 'OBJECT')

To select the name and size of the 5 largest symbols:

  SELECT Name, Size FROM symbols ORDER BY Size DESC LIMIT 5

To list all variables in RAM ('.bss' section) sorted by size:

  SELECT Value, Size, Name FROM symbols WHERE RelatedSection = '.bss' AND Size > 0 ORDER BY Size ASC

You can even do more advanced queries like counting how many unique Type
values exist:

  SELECT Type, COUNT(*) AS Count FROM symbols GROUP BY Type ORDER BY Count DESC

Any query supported by SQLite is possible!`
