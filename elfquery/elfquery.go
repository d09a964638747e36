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
	"debug/elf"

	"github.com/adafruit/legolas/curated"
	"github.com/adafruit/legolas/logger"
)

// sentinal error returned when an ELF file cannot be opened or projected
const LoadError = "elf query: %v"

// sentinal error returned by Run() for queries the database rejects
const QueryError = "query: %v"

// Query is an ELF file projected into an in-memory SQL database, ready for
// querying. instances are created with Open() and must be closed after use.
//
// Query is not safe for concurrent use.
type Query struct {
	db *sql.DB
}

// Open reads the named ELF file and projects its section headers and symbol
// tables into the 'sections' and 'symbols' tables of a fresh in-memory
// database.
func Open(filename string) (*Query, error) {
	ef, err := elf.Open(filename)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	defer ef.Close()

	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	// the projected tables live inside the single connection. the pool
	// must never open a second connection or queries would see an empty
	// database
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, curated.Errorf(LoadError, err)
	}

	if err := project(db, ef); err != nil {
		db.Close()
		return nil, curated.Errorf(LoadError, err)
	}

	logger.Logf("elf", "loaded %s", filename)

	return &Query{db: db}, nil
}

// Close releases the database.
func (qry *Query) Close() error {
	return qry.db.Close()
}

// Run executes a single query and collects every result row. any statement
// the database engine accepts is allowed, including the TO_HEX() and
// FROM_HEX() functions registered by this package.
func (qry *Query) Run(query string) (*Result, error) {
	logger.Logf("sql", "%s", query)

	rows, err := qry.db.Query(query)
	if err != nil {
		return nil, curated.Errorf(QueryError, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, curated.Errorf(QueryError, err)
	}

	res := &Result{Columns: columns}

	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		scan := make([]interface{}, len(columns))
		for i := range cells {
			scan[i] = &cells[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, curated.Errorf(QueryError, err)
		}

		// SQL NULL renders as the empty string
		row := make([]string, len(columns))
		for i := range cells {
			if cells[i].Valid {
				row[i] = cells[i].String
			}
		}
		res.Rows = append(res.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, curated.Errorf(QueryError, err)
	}

	return res, nil
}
