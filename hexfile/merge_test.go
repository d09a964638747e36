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

package hexfile_test

import (
	"testing"

	"github.com/adafruit/legolas/curated"
	"github.com/adafruit/legolas/hexfile"
	"github.com/adafruit/legolas/test"
)

func TestMergeDisjoint(t *testing.T) {
	a := hexfile.NewImage()
	a.Set(0x100, 0x01)
	a.Set(0x101, 0x02)

	b := hexfile.NewImage()
	b.Set(0x200, 0x03)

	err := a.Merge(b, hexfile.OverlapError)
	test.ExpectedSuccess(t, err)
	test.Equate(t, a.Size(), 3)

	v, ok := a.Get(0x200)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 0x03)
}

func TestMergeEqualValues(t *testing.T) {
	// the same value at the same address is not a conflict
	a := hexfile.NewImage()
	a.Set(0x100, 0x01)

	b := hexfile.NewImage()
	b.Set(0x100, 0x01)
	b.Set(0x101, 0x02)

	err := a.Merge(b, hexfile.OverlapError)
	test.ExpectedSuccess(t, err)
	test.Equate(t, a.Size(), 2)
}

func TestMergeConflict(t *testing.T) {
	a := hexfile.NewImage()
	a.Set(0x100, 0x01)
	a.Set(0x102, 0x05)

	b := hexfile.NewImage()
	b.Set(0x102, 0x06)
	b.Set(0x100, 0x99)

	// the lowest conflicting address is the one reported
	err := a.Merge(b, hexfile.OverlapError)
	if test.ExpectedFailure(t, err) {
		test.ExpectedSuccess(t, curated.Is(err, hexfile.Conflict))
		test.Equate(t, err.Error(), "overlap at address 00000100: 01 replaced by 99")
	}
}

func TestMergeIgnore(t *testing.T) {
	a := hexfile.NewImage()
	a.Set(0x100, 0x01)
	a.Set(0x101, 0x02)

	b := hexfile.NewImage()
	b.Set(0x101, 0x22)
	b.Set(0x102, 0x33)

	// the incoming image wins at every conflicting address
	err := a.Merge(b, hexfile.OverlapIgnore)
	test.ExpectedSuccess(t, err)
	test.Equate(t, a.Size(), 3)

	v, _ := a.Get(0x100)
	test.Equate(t, v, 0x01)
	v, _ = a.Get(0x101)
	test.Equate(t, v, 0x22)
	v, _ = a.Get(0x102)
	test.Equate(t, v, 0x33)
}

func TestMergeStartAddress(t *testing.T) {
	// start address is adopted from the incoming image
	a := hexfile.NewImage()
	b := hexfile.NewImage()
	b.SetStartAddress(0x08000000)

	err := a.Merge(b, hexfile.OverlapError)
	test.ExpectedSuccess(t, err)

	start, ok := a.StartAddress()
	test.ExpectedSuccess(t, ok)
	test.Equate(t, start, 0x08000000)

	// the same start address is not a conflict
	err = a.Merge(b, hexfile.OverlapError)
	test.ExpectedSuccess(t, err)

	// a different start address is a conflict under the error policy
	c := hexfile.NewImage()
	c.SetStartAddress(0x20000000)

	err = a.Merge(c, hexfile.OverlapError)
	if test.ExpectedFailure(t, err) {
		test.ExpectedSuccess(t, curated.Is(err, hexfile.StartAddressConflict))
		test.Equate(t, err.Error(), "conflicting start addresses: 08000000 and 20000000")
	}

	// under the ignore policy the incoming start address wins
	err = a.Merge(c, hexfile.OverlapIgnore)
	test.ExpectedSuccess(t, err)

	start, ok = a.StartAddress()
	test.ExpectedSuccess(t, ok)
	test.Equate(t, start, 0x20000000)
}

func TestParseOverlap(t *testing.T) {
	p, err := hexfile.ParseOverlap("error")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, p == hexfile.OverlapError)

	// policy names are not case sensitive
	p, err = hexfile.ParseOverlap("IGNORE")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, p == hexfile.OverlapIgnore)

	// replace is internal and cannot be named by the user
	_, err = hexfile.ParseOverlap("replace")
	test.ExpectedFailure(t, err)

	_, err = hexfile.ParseOverlap("banana")
	if test.ExpectedFailure(t, err) {
		test.ExpectedSuccess(t, curated.Is(err, hexfile.UnknownOverlap))
	}
}
