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
	"sort"
)

// Image is the sparse byte image conveyed by an Intel HEX file. Addresses
// that have never been set are simply absent, they do not hold a default
// value.
type Image struct {
	data map[uint32]uint8

	startAddress    uint32
	hasStartAddress bool
}

// NewImage is the preferred method of initialisation for the Image type.
func NewImage() *Image {
	return &Image{
		data: make(map[uint32]uint8),
	}
}

// Set the value at the address.
func (img *Image) Set(addr uint32, value uint8) {
	img.data[addr] = value
}

// Get the value at the address. the second return value is false if the
// address is not used by the image.
func (img *Image) Get(addr uint32) (uint8, bool) {
	v, ok := img.data[addr]
	return v, ok
}

// Size returns the number of used addresses.
func (img *Image) Size() int {
	return len(img.data)
}

// MinAddr returns the lowest used address. the second return value is false
// if the image is empty.
func (img *Image) MinAddr() (uint32, bool) {
	if len(img.data) == 0 {
		return 0, false
	}

	var min uint32 = ^uint32(0)
	for a := range img.data {
		if a < min {
			min = a
		}
	}
	return min, true
}

// MaxAddr returns the highest used address. the second return value is false
// if the image is empty.
func (img *Image) MaxAddr() (uint32, bool) {
	if len(img.data) == 0 {
		return 0, false
	}

	var max uint32
	for a := range img.data {
		if a > max {
			max = a
		}
	}
	return max, true
}

// Addresses returns every used address in ascending order.
func (img *Image) Addresses() []uint32 {
	addresses := make([]uint32, 0, len(img.data))
	for a := range img.data {
		addresses = append(addresses, a)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return addresses[i] < addresses[j]
	})
	return addresses
}

// SetStartAddress records the program start address for the image.
func (img *Image) SetStartAddress(addr uint32) {
	img.startAddress = addr
	img.hasStartAddress = true
}

// StartAddress returns the program start address. the second return value
// is false if no start address has been recorded.
func (img *Image) StartAddress() (uint32, bool) {
	return img.startAddress, img.hasStartAddress
}
