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
	"strconv"
	"strings"

	"github.com/adafruit/legolas/curated"
	"github.com/mattn/go-sqlite3"
)

// sentinal error returned by the FROM_HEX() query function
const BadHexValue = "not a hexadecimal value (%s)"

// driverName is how the sqlite3 driver with the query functions attached is
// known to the database/sql package. registration happens once at package
// initialisation.
const driverName = "sqlite3_elfquery"

func init() {
	sql.Register(driverName,
		&sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				if err := conn.RegisterFunc("to_hex", ToHex, true); err != nil {
					return err
				}
				return conn.RegisterFunc("from_hex", FromHex, true)
			},
		})
}

// ToHex renders value as an upper-case hexadecimal string, zero padded to at
// least width digits. it backs the TO_HEX() function available to queries.
func ToHex(value int64, width int) string {
	if width < 0 {
		width = 0
	}
	return fmt.Sprintf("%0*X", width, value)
}

// FromHex converts a hexadecimal string to the number it represents. an
// optional 0x prefix is allowed. it backs the FROM_HEX() function available
// to queries.
func FromHex(value string) (int64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(value), "0x")
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, curated.Errorf(BadHexValue, value)
	}
	return v, nil
}
