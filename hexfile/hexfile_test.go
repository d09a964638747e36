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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adafruit/legolas/curated"
	"github.com/adafruit/legolas/hexfile"
	"github.com/adafruit/legolas/test"
)

// four bytes at 0x0010 and a start address record.
const testImage = ":0400100001020304E2\n" +
	":0400000508000100EE\n" +
	":00000001FF\n"

func TestRead(t *testing.T) {
	img, err := hexfile.Read(strings.NewReader(testImage))
	test.ExpectedSuccess(t, err)
	test.Equate(t, img.Size(), 4)

	v, ok := img.Get(0x10)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 0x01)
	v, _ = img.Get(0x13)
	test.Equate(t, v, 0x04)

	start, ok := img.StartAddress()
	test.ExpectedSuccess(t, ok)
	test.Equate(t, start, 0x08000100)
}

func TestReadErrors(t *testing.T) {
	// no end of file record
	_, err := hexfile.Read(strings.NewReader(":0400100001020304E2\n"))
	if test.ExpectedFailure(t, err) {
		test.ExpectedSuccess(t, curated.Is(err, hexfile.FileError))
	}

	// bad checksum
	_, err = hexfile.Read(strings.NewReader(":04001000010203040F\n:00000001FF\n"))
	if test.ExpectedFailure(t, err) {
		test.ExpectedSuccess(t, curated.Is(err, hexfile.FileError))
	}
}

func TestRoundTrip(t *testing.T) {
	img := hexfile.NewImage()

	// two separated runs, one of them crossing a 64K boundary so that
	// encoding requires an extended address record
	for i := uint32(0); i < 40; i++ {
		img.Set(0xfff0+i, uint8(i))
	}
	img.Set(0x100, 0x55)
	img.SetStartAddress(0x0800fff0)

	b := &bytes.Buffer{}
	err := hexfile.Write(img, b)
	test.ExpectedSuccess(t, err)

	dec, err := hexfile.Read(b)
	test.ExpectedSuccess(t, err)
	test.Equate(t, dec.Size(), img.Size())

	for _, a := range img.Addresses() {
		want, _ := img.Get(a)
		got, ok := dec.Get(a)
		test.ExpectedSuccess(t, ok)
		test.Equate(t, got, int(want))
	}

	start, ok := dec.StartAddress()
	test.ExpectedSuccess(t, ok)
	test.Equate(t, start, 0x0800fff0)
}

func TestMergeFiles(t *testing.T) {
	dir := t.TempDir()

	a := filepath.Join(dir, "a.hex")
	if err := os.WriteFile(a, []byte(":020010000102EB\n:00000001FF\n"), 0644); err != nil {
		t.Fatal(err)
	}

	b := filepath.Join(dir, "b.hex")
	if err := os.WriteFile(b, []byte(":020012000304E5\n:00000001FF\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := filepath.Join(dir, "conflict.hex")
	if err := os.WriteFile(c, []byte(":01001000FFF0\n:00000001FF\n"), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := hexfile.MergeFiles([]string{a, b}, hexfile.OverlapError)
	test.ExpectedSuccess(t, err)
	test.Equate(t, img.Size(), 4)

	// a single file is a valid merge. the result is simply that file
	img, err = hexfile.MergeFiles([]string{a}, hexfile.OverlapError)
	test.ExpectedSuccess(t, err)
	test.Equate(t, img.Size(), 2)

	// a conflicting merge identifies the file at fault
	_, err = hexfile.MergeFiles([]string{a, c}, hexfile.OverlapError)
	if test.ExpectedFailure(t, err) {
		test.ExpectedSuccess(t, curated.Has(err, hexfile.Conflict))
		if !strings.Contains(err.Error(), "conflict.hex") {
			t.Errorf("conflict error does not name the file (%s)", err.Error())
		}
	}

	// the ignore policy resolves the same merge
	img, err = hexfile.MergeFiles([]string{a, c}, hexfile.OverlapIgnore)
	test.ExpectedSuccess(t, err)

	v, _ := img.Get(0x10)
	test.Equate(t, v, 0xff)

	// missing file
	_, err = hexfile.MergeFiles([]string{filepath.Join(dir, "missing.hex")}, hexfile.OverlapError)
	test.ExpectedFailure(t, err)
}

func TestSave(t *testing.T) {
	img, err := hexfile.Read(strings.NewReader(testImage))
	test.ExpectedSuccess(t, err)

	fn := filepath.Join(t.TempDir(), "out.hex")
	err = hexfile.Save(img, fn)
	test.ExpectedSuccess(t, err)

	dec, err := hexfile.Load(fn)
	test.ExpectedSuccess(t, err)
	test.Equate(t, dec.Size(), 4)

	start, ok := dec.StartAddress()
	test.ExpectedSuccess(t, ok)
	test.Equate(t, start, 0x08000100)
}
