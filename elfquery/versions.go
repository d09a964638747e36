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
	"debug/elf"
	"encoding/binary"
	"fmt"

	"github.com/adafruit/legolas/curated"
)

// sentinal error returned when the version tables of an ELF file cannot be
// decoded
const VersionError = "symbol versions: %v"

// how symbol versions are encoded in the file. the two schemes share the
// same tables but only the GNU scheme uses the hidden bit of the versym
// entries and only the GNU scheme decorates symbol names.
type versionScheme int

const (
	schemeNone versionScheme = iota
	schemeGNU
	schemeSolaris
)

func (s versionScheme) String() string {
	switch s {
	case schemeGNU:
		return "GNU"
	case schemeSolaris:
		return "Solaris"
	}
	return "none"
}

const (
	// special versym values. entries with these values carry no named
	// version
	verNdxLocal  uint16 = 0
	verNdxGlobal uint16 = 1

	// under the GNU scheme the top bit of a versym entry marks the symbol
	// as hidden. the remaining bits are the version index
	versymHidden uint16 = 0x8000
	versymIndex  uint16 = 0x7fff
)

// a version requirement from another file. built from the vernaux entries
// of the SHT_GNU_VERNEED section.
type versionNeed struct {
	name string
	file string
}

// versionInfo is the decoded version tables of one ELF file. the zero value
// (plus initialised maps) describes a file without symbol versioning.
type versionInfo struct {
	scheme versionScheme

	// version index of every dynamic symbol, parallel to the dynamic
	// symbol table
	versym []uint16

	// version definitions by vd_ndx. defCount is the number of
	// definitions the section header declares (sh_info), which bounds the
	// indices that may refer to a definition
	defs     map[uint16]string
	defCount uint32

	// version requirements by vna_other
	needs map[uint16]versionNeed
}

// resolution of a single symbol's version, as used by suffix()
type symbolVersion struct {
	name   string
	file   string
	hidden bool
	index  uint16
}

// classifyVersions decodes the version tables of the ELF file and decides
// which versioning scheme the file uses: GNU if the dynamic section carries
// a DT_VERSYM tag, Solaris if version tables exist without one, none
// otherwise.
func classifyVersions(ef *elf.File) (*versionInfo, error) {
	vi := &versionInfo{
		defs:  make(map[uint16]string),
		needs: make(map[uint16]versionNeed),
	}

	var versym, verdef, verneed *elf.Section
	for _, sec := range ef.Sections {
		switch sec.Type {
		case elf.SHT_GNU_VERSYM:
			versym = sec
		case elf.SHT_GNU_VERDEF:
			verdef = sec
		case elf.SHT_GNU_VERNEED:
			verneed = sec
		}
	}

	if versym != nil {
		data, err := versym.Data()
		if err != nil {
			return nil, curated.Errorf(VersionError, err)
		}
		vi.versym = make([]uint16, len(data)/2)
		for i := range vi.versym {
			vi.versym[i] = ef.ByteOrder.Uint16(data[i*2:])
		}
	}

	if verdef != nil {
		data, err := verdef.Data()
		if err != nil {
			return nil, curated.Errorf(VersionError, err)
		}
		strs, err := stringTable(ef, verdef.Link)
		if err != nil {
			return nil, curated.Errorf(VersionError, err)
		}
		vi.defCount = verdef.Info
		if err := vi.parseDefs(ef.ByteOrder, data, strs); err != nil {
			return nil, curated.Errorf(VersionError, err)
		}
	}

	if verneed != nil {
		data, err := verneed.Data()
		if err != nil {
			return nil, curated.Errorf(VersionError, err)
		}
		strs, err := stringTable(ef, verneed.Link)
		if err != nil {
			return nil, curated.Errorf(VersionError, err)
		}
		if err := vi.parseNeeds(ef.ByteOrder, data, strs); err != nil {
			return nil, curated.Errorf(VersionError, err)
		}
	}

	gnu, err := hasDynamicTag(ef, elf.DT_VERSYM)
	if err != nil {
		return nil, curated.Errorf(VersionError, err)
	}
	if gnu {
		vi.scheme = schemeGNU
	} else if verdef != nil || verneed != nil {
		vi.scheme = schemeSolaris
	}

	return vi, nil
}

// parseDefs walks the verdef chain, recording the first auxiliary name of
// every definition. the walk is bounds checked and a chain that runs longer
// than the section can hold whole records is treated as cyclic.
func (vi *versionInfo) parseDefs(bo binary.ByteOrder, data []byte, strs []byte) error {
	const verdefSize = 20
	const verdauxSize = 8

	if len(data) == 0 {
		return nil
	}

	limit := len(data)/verdefSize + 1

	offset := 0
	for i := 0; ; i++ {
		if i >= limit {
			return fmt.Errorf("verdef chain does not terminate")
		}
		if offset < 0 || offset+verdefSize > len(data) {
			return fmt.Errorf("verdef record at %#x is out of bounds", offset)
		}

		ndx := bo.Uint16(data[offset+4:])
		cnt := bo.Uint16(data[offset+6:])
		aux := bo.Uint32(data[offset+12:])
		next := bo.Uint32(data[offset+16:])

		// only the first auxiliary entry names the definition. any
		// further entries name the versions it inherits from, which
		// symbol resolution does not need
		if cnt > 0 {
			auxOffset := offset + int(aux)
			if auxOffset < 0 || auxOffset+verdauxSize > len(data) {
				return fmt.Errorf("verdaux record at %#x is out of bounds", auxOffset)
			}
			name := bo.Uint32(data[auxOffset:])
			vi.defs[ndx] = getString(strs, int(name))
		}

		if next == 0 {
			break
		}
		offset += int(next)
	}

	return nil
}

// parseNeeds walks the verneed chain and the vernaux chain of every entry,
// recording the name and source file of every required version. the outer
// walk is bounds checked like parseDefs; the inner walk is bounded by the
// aux count the verneed entry declares.
func (vi *versionInfo) parseNeeds(bo binary.ByteOrder, data []byte, strs []byte) error {
	const verneedSize = 16
	const vernauxSize = 16

	if len(data) == 0 {
		return nil
	}

	limit := len(data)/verneedSize + 1

	offset := 0
	for i := 0; ; i++ {
		if i >= limit {
			return fmt.Errorf("verneed chain does not terminate")
		}
		if offset < 0 || offset+verneedSize > len(data) {
			return fmt.Errorf("verneed record at %#x is out of bounds", offset)
		}

		cnt := bo.Uint16(data[offset+2:])
		file := bo.Uint32(data[offset+4:])
		aux := bo.Uint32(data[offset+8:])
		next := bo.Uint32(data[offset+12:])

		fileName := getString(strs, int(file))

		auxOffset := offset + int(aux)
		for j := 0; j < int(cnt); j++ {
			if auxOffset < 0 || auxOffset+vernauxSize > len(data) {
				return fmt.Errorf("vernaux record at %#x is out of bounds", auxOffset)
			}

			other := bo.Uint16(data[auxOffset+6:])
			name := bo.Uint32(data[auxOffset+8:])
			auxNext := bo.Uint32(data[auxOffset+12:])

			vi.needs[other] = versionNeed{
				name: getString(strs, int(name)),
				file: fileName,
			}

			if auxNext == 0 {
				break
			}
			auxOffset += int(auxNext)
		}

		if next == 0 {
			break
		}
		offset += int(next)
	}

	return nil
}

// hasDynamicTag returns true if the SHT_DYNAMIC section contains an entry
// with the given tag.
func hasDynamicTag(ef *elf.File, tag elf.DynTag) (bool, error) {
	dyn := ef.SectionByType(elf.SHT_DYNAMIC)
	if dyn == nil {
		return false, nil
	}

	data, err := dyn.Data()
	if err != nil {
		return false, err
	}

	bo := ef.ByteOrder
	switch ef.Class {
	case elf.ELFCLASS32:
		for len(data) >= 8 {
			t := elf.DynTag(bo.Uint32(data))
			if t == elf.DT_NULL {
				break
			}
			if t == tag {
				return true, nil
			}
			data = data[8:]
		}
	case elf.ELFCLASS64:
		for len(data) >= 16 {
			t := elf.DynTag(bo.Uint64(data))
			if t == elf.DT_NULL {
				break
			}
			if t == tag {
				return true, nil
			}
			data = data[16:]
		}
	}

	return false, nil
}

// lookup resolves the named version of symbol n of the dynamic symbol
// table. the boolean return value is false when the symbol has no named
// version: the symbol is outside the versym array, its version index is one
// of the special LOCAL/GLOBAL values, or the index matches neither a
// definition nor a requirement.
func (vi *versionInfo) lookup(n int) (symbolVersion, bool) {
	if n < 0 || n >= len(vi.versym) {
		return symbolVersion{}, false
	}

	index := vi.versym[n]
	if index == verNdxLocal || index == verNdxGlobal {
		return symbolVersion{}, false
	}

	var ver symbolVersion
	if vi.scheme == schemeGNU && index&versymHidden != 0 {
		ver.hidden = true
		index &= versymIndex
	}
	ver.index = index

	if uint32(index) <= vi.defCount {
		if name, ok := vi.defs[index]; ok {
			ver.name = name
			return ver, true
		}
	}

	if need, ok := vi.needs[index]; ok {
		ver.name = need.name
		ver.file = need.file
		return ver, true
	}

	return symbolVersion{}, false
}

// suffix returns the version decoration for symbol n of the dynamic symbol
// table: "@@version" for the default definition of a versioned symbol,
// "@version" for a hidden definition and "@version (index)" for a version
// required from another file. a symbol without a named version, or whose
// version name repeats the symbol name, has no decoration.
func (vi *versionInfo) suffix(n int, symbolName string) string {
	ver, ok := vi.lookup(n)
	if !ok {
		return ""
	}

	if ver.name == "" || ver.name == symbolName {
		return ""
	}

	if ver.file != "" {
		return fmt.Sprintf("@%s (%d)", ver.name, ver.index)
	}
	if ver.hidden {
		return fmt.Sprintf("@%s", ver.name)
	}
	return fmt.Sprintf("@@%s", ver.name)
}
