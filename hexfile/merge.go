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
	"strings"

	"github.com/adafruit/legolas/curated"
)

// Sentinal error patterns returned by the merge functions.
const (
	Conflict             = "overlap at address %08X: %02X replaced by %02X"
	StartAddressConflict = "conflicting start addresses: %08X and %08X"
	UnknownOverlap       = "unknown overlap policy (%s)"
)

// Overlap is the policy that decides what happens when a merge writes to an
// address that is already used by the image.
type Overlap int

// List of overlap policies.
const (
	// OverlapError fails the merge at the first (lowest) address where the
	// incoming value differs from the one already held. writing an equal
	// value is not a conflict.
	OverlapError Overlap = iota

	// OverlapIgnore resolves every conflict in favour of the incoming
	// value.
	OverlapIgnore

	// OverlapReplace is the same data rule as OverlapIgnore. it exists so
	// that internal callers, the padding routine for example, can say what
	// they mean.
	OverlapReplace
)

func (p Overlap) String() string {
	switch p {
	case OverlapError:
		return "error"
	case OverlapIgnore:
		return "ignore"
	case OverlapReplace:
		return "replace"
	}
	return "unknown"
}

// ParseOverlap converts an overlap policy name, as given on the command
// line, to an Overlap value. only the error and ignore policies can be
// named by the user.
func ParseOverlap(s string) (Overlap, error) {
	switch strings.ToLower(s) {
	case "error":
		return OverlapError, nil
	case "ignore":
		return OverlapIgnore, nil
	}
	return OverlapError, curated.Errorf(UnknownOverlap, s)
}

// Merge folds the other image into this one, visiting addresses in
// ascending order. on error the image may hold a partial merge and should
// be discarded.
//
// the other image's start address is adopted if this image has none. under
// the OverlapError policy a differing start address is a conflict,
// otherwise the incoming start address wins.
func (img *Image) Merge(other *Image, policy Overlap) error {
	for _, addr := range other.Addresses() {
		v, _ := other.Get(addr)

		if policy == OverlapError {
			if old, ok := img.Get(addr); ok && old != v {
				return curated.Errorf(Conflict, addr, old, v)
			}
		}

		img.Set(addr, v)
	}

	if start, ok := other.StartAddress(); ok {
		if old, okOld := img.StartAddress(); okOld && old != start && policy == OverlapError {
			return curated.Errorf(StartAddressConflict, old, start)
		}
		img.SetStartAddress(start)
	}

	return nil
}
