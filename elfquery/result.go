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
	"strings"

	"github.com/adafruit/legolas/curated"
	"github.com/olekukonko/tablewriter"
)

// sentinal error returned by ParseFormat()
const UnknownFormat = "unknown output format (%s)"

// Format selects how query results are rendered by Result.Write().
type Format int

// list of valid Format values. FormatFriendly is the default.
const (
	FormatFriendly Format = iota
	FormatCSV
	FormatTSV
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	}
	return "friendly"
}

// ParseFormat converts the name of an output format, as it appears on the
// command line, to a Format value.
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(format) {
	case "friendly":
		return FormatFriendly, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	}
	return FormatFriendly, curated.Errorf(UnknownFormat, format)
}

// Result is the collected output of one query: the column names and every
// row rendered to strings. SQL NULL appears as the empty string.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Write renders the result in the given format. the friendly format is an
// aligned table with column headers and a row count; csv and tsv are one
// line per row with cells trimmed of whitespace and no header.
func (res *Result) Write(w io.Writer, format Format) error {
	switch format {
	case FormatCSV:
		return res.writeSeparated(w, ",")
	case FormatTSV:
		return res.writeSeparated(w, "\t")
	}
	return res.writeTable(w)
}

func (res *Result) writeSeparated(w io.Writer, sep string) error {
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.TrimSpace(c)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, sep)); err != nil {
			return err
		}
	}
	return nil
}

func (res *Result) writeTable(w io.Writer) error {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader(res.Columns)

	// column names are already in their queryable form. letting the table
	// writer upper-case or wrap them would misrepresent the schema
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAutoWrapText(false)

	tbl.AppendBulk(res.Rows)
	tbl.Render()

	_, err := fmt.Fprintf(w, "\nQuery returned %d rows.\n", len(res.Rows))
	return err
}
