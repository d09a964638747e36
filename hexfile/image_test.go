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

	"github.com/adafruit/legolas/hexfile"
	"github.com/adafruit/legolas/test"
)

func TestImageBasics(t *testing.T) {
	img := hexfile.NewImage()
	test.Equate(t, img.Size(), 0)

	_, ok := img.MinAddr()
	test.ExpectedFailure(t, ok)
	_, ok = img.MaxAddr()
	test.ExpectedFailure(t, ok)
	_, ok = img.Get(0x100)
	test.ExpectedFailure(t, ok)

	img.Set(0x200, 0xaa)
	img.Set(0x100, 0xbb)
	img.Set(0x300, 0xcc)

	// setting an address twice does not add to the size
	img.Set(0x100, 0xdd)
	test.Equate(t, img.Size(), 3)

	v, ok := img.Get(0x100)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 0xdd)

	min, ok := img.MinAddr()
	test.ExpectedSuccess(t, ok)
	test.Equate(t, min, 0x100)

	max, ok := img.MaxAddr()
	test.ExpectedSuccess(t, ok)
	test.Equate(t, max, 0x300)

	addresses := img.Addresses()
	test.Equate(t, len(addresses), 3)
	test.Equate(t, addresses[0], 0x100)
	test.Equate(t, addresses[1], 0x200)
	test.Equate(t, addresses[2], 0x300)
}

func TestImageStartAddress(t *testing.T) {
	img := hexfile.NewImage()

	_, ok := img.StartAddress()
	test.ExpectedFailure(t, ok)

	img.SetStartAddress(0x08000000)

	start, ok := img.StartAddress()
	test.ExpectedSuccess(t, ok)
	test.Equate(t, start, 0x08000000)
}
