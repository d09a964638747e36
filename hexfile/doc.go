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

// Package hexfile handles firmware images stored in the Intel HEX format.
//
// The Image type is a sparse map of 32bit addresses to byte values, along
// with the optional program start address that the format can convey. An
// image knows nothing about records, checksums or addressing modes. Those
// details live inside the underlying gohex package and images are what the
// rest of the program works with.
//
// Images are combined with the Merge() function. What happens when the
// same address is used by both images is decided by the Overlap policy:
// OverlapError refuses the merge at the first address where the two images
// disagree, while OverlapIgnore lets the incoming image win. Merging is
// the basis of both the hexmerge and hexpad program modes. In the latter
// case the input image is merged over a freshly filled range, which is how
// existing data survives padding.
//
// Functions that decode or encode the format itself wrap any underlying
// failure with the FileError pattern. The other error patterns in this
// package are matchable with curated.Is() in the usual way, for example:
//
//	img, err := hexfile.MergeFiles(files, hexfile.OverlapError)
//	if curated.Has(err, hexfile.Conflict) {
//		...
//	}
package hexfile
