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

package modalflag

import (
	"fmt"
	"strconv"
)

// Address is the value of a flag that takes a memory address or an address
// offset. Addresses are written in plain decimal or in hexadecimal with the
// 0x prefix. A minus sign is accepted so that flags which expect offsets can
// receive negative values.
//
// Unlike the numeric flag types in the flag package, an Address knows
// whether it was supplied on the command line at all. Callers that need a
// computed default (eg. "the lowest used address in the file") check the
// Supplied field instead of relying on a sentinal value.
type Address struct {
	Value    int64
	Supplied bool
}

// Set implements the flag.Value interface.
func (ad *Address) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid address (%s)", s)
	}
	ad.Value = v
	ad.Supplied = true
	return nil
}

// String implements the flag.Value interface.
func (ad *Address) String() string {
	if !ad.Supplied {
		return ""
	}
	if ad.Value < 0 {
		return fmt.Sprintf("-0x%X", -ad.Value)
	}
	return fmt.Sprintf("0x%X", ad.Value)
}

// AddAddress flag for next call to Parse().
func (md *Modes) AddAddress(name string, usage string) *Address {
	ad := &Address{}
	md.flags.Var(ad, name, usage)
	return ad
}
