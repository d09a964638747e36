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
	"github.com/adafruit/legolas/curated"
)

// Sentinal error patterns returned by the Pad function.
const (
	EmptyImage     = "hex file is empty: explicit start and end addresses required"
	NegativeBounds = "start and end addresses must be positive"
	BoundsOrder    = "end address must not be before start address"
)

// DefaultPadValue is the value used to fill unused addresses when the user
// has not asked for anything else.
const DefaultPadValue = 0xff

// Pad returns a new image with every address between the start and end
// bounds (inclusive) defined. addresses used by the input image keep their
// value, every other address in the range is set to padValue. the input
// image's start address propagates to the result.
//
// a nil bound means the bound was not given. in absolute mode, missing
// bounds default to the limits of the image's used range. in relative
// mode the bounds are signed offsets from those limits, defaulting to
// zero. defaulting against an empty image is impossible and returns the
// EmptyImage error.
func Pad(img *Image, start *int64, end *int64, padValue uint8, relative bool) (*Image, error) {
	var s, e int64

	if relative {
		min, ok := img.MinAddr()
		if !ok {
			return nil, curated.Errorf(EmptyImage)
		}
		max, _ := img.MaxAddr()

		// bounds are offsets from the used range. negative offsets are
		// allowed, shrinking the range rather than growing it
		s = int64(min)
		e = int64(max)
		if start != nil {
			s += *start
		}
		if end != nil {
			e += *end
		}
	} else {
		if start == nil || end == nil {
			min, ok := img.MinAddr()
			if !ok {
				return nil, curated.Errorf(EmptyImage)
			}
			max, _ := img.MaxAddr()
			s = int64(min)
			e = int64(max)
		}
		if start != nil {
			s = *start
		}
		if end != nil {
			e = *end
		}
	}

	if s < 0 || e < 0 {
		return nil, curated.Errorf(NegativeBounds)
	}
	if e < s {
		return nil, curated.Errorf(BoundsOrder)
	}

	padded := NewImage()
	for a := s; a <= e; a++ {
		padded.Set(uint32(a), padValue)
	}

	// merging with the replace policy cannot fail but the error is passed
	// on regardless
	if err := padded.Merge(img, OverlapReplace); err != nil {
		return nil, err
	}

	return padded, nil
}
