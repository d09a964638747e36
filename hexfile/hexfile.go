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

package hexfile

import (
	"io"
	"os"

	"github.com/adafruit/legolas/curated"
	"github.com/adafruit/legolas/logger"
	"github.com/marcinbor85/gohex"
)

// Sentinal error pattern for hex file decoding and encoding.
const FileError = "hex file: %v"

// number of data bytes per record on output. the same as the width used by
// the common objcopy and srec_cat tools.
const recordLength = 16

// Read decodes an Intel HEX stream into an image.
func Read(r io.Reader) (*Image, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, curated.Errorf(FileError, err)
	}

	img := NewImage()
	for _, segment := range mem.GetDataSegments() {
		for i, b := range segment.Data {
			img.Set(segment.Address+uint32(i), b)
		}
	}
	if start, ok := mem.GetStartAddress(); ok {
		img.SetStartAddress(start)
	}

	return img, nil
}

// Load reads the named Intel HEX file into an image.
func Load(filename string) (*Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	defer f.Close()

	img, err := Read(f)
	if err != nil {
		return nil, curated.Errorf("%s: %v", filename, err)
	}

	logger.Logf("hex", "loaded %s (%d bytes)", filename, img.Size())

	return img, nil
}

// Write encodes the image as Intel HEX. a start address record is written
// whenever the image carries a start address.
func Write(img *Image, w io.Writer) error {
	mem := gohex.NewMemory()

	if start, ok := img.StartAddress(); ok {
		mem.SetStartAddress(start)
	}

	// gather used addresses into runs of consecutive addresses. the runs
	// are disjoint and ascending so AddBinary cannot fail
	addresses := img.Addresses()
	for i := 0; i < len(addresses); {
		j := i + 1
		for j < len(addresses) && addresses[j] == addresses[j-1]+1 {
			j++
		}

		run := make([]byte, 0, j-i)
		for _, a := range addresses[i:j] {
			v, _ := img.Get(a)
			run = append(run, v)
		}
		mem.AddBinary(addresses[i], run)

		i = j
	}

	if err := mem.DumpIntelHex(w, recordLength); err != nil {
		return curated.Errorf(FileError, err)
	}

	return nil
}

// Save writes the image to the named file.
func Save(img *Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(FileError, err)
	}
	defer f.Close()

	if err := Write(img, f); err != nil {
		return err
	}

	logger.Logf("hex", "wrote %s (%d bytes)", filename, img.Size())

	return nil
}

// MergeFiles loads each named file in turn and folds it into a single
// image, first file first. a merge conflict is wrapped with the name of
// the file that caused it.
func MergeFiles(filenames []string, policy Overlap) (*Image, error) {
	img := NewImage()

	for _, fn := range filenames {
		other, err := Load(fn)
		if err != nil {
			return nil, err
		}
		if err := img.Merge(other, policy); err != nil {
			return nil, curated.Errorf("%s: %v", fn, err)
		}
	}

	return img, nil
}
