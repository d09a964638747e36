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
	"strconv"
	"strings"
)

// the tables show enumerated values without their SHT_/STT_ style
// prefixes. SHT_PROGBITS is just PROGBITS, and so on.

func describeSectionType(t elf.SectionType) string {
	return strings.TrimPrefix(t.String(), "SHT_")
}

func describeSymbolType(t elf.SymType) string {
	return strings.TrimPrefix(t.String(), "STT_")
}

func describeSymbolBinding(b elf.SymBind) string {
	return strings.TrimPrefix(b.String(), "STB_")
}

func describeSymbolVisibility(v elf.SymVis) string {
	return strings.TrimPrefix(v.String(), "STV_")
}

// section flag letters in the order used by the readelf tool. the key
// printed by WriteColumns() explains each letter.
var sectionFlagLetters = []struct {
	flag   elf.SectionFlag
	letter string
}{
	{elf.SHF_WRITE, "W"},
	{elf.SHF_ALLOC, "A"},
	{elf.SHF_EXECINSTR, "X"},
	{elf.SHF_MERGE, "M"},
	{elf.SHF_STRINGS, "S"},
	{elf.SHF_INFO_LINK, "I"},
	{elf.SHF_LINK_ORDER, "L"},
	{elf.SHF_OS_NONCONFORMING, "O"},
	{elf.SHF_GROUP, "G"},
	{elf.SHF_TLS, "T"},
}

// shfExclude marks a section to be excluded from final linking. the stdlib
// does not name it, most likely because it lives inside the processor
// specific mask.
const shfExclude elf.SectionFlag = 0x80000000

func describeSectionFlags(f elf.SectionFlag) string {
	s := strings.Builder{}

	for _, fl := range sectionFlagLetters {
		if f&fl.flag != 0 {
			s.WriteString(fl.letter)
		}
	}

	if f&elf.SHF_MASKOS != 0 {
		s.WriteString("o")
	}

	// the exclude flag is one of the processor specific bits. when it is
	// set the generic processor specific letter is suppressed
	if f&shfExclude != 0 {
		s.WriteString("E")
	} else if f&elf.SHF_MASKPROC != 0 {
		s.WriteString("p")
	}

	return s.String()
}

// describeSectionIndex renders the st_shndx field of a symbol. reserved
// indices that have a conventional name use it, anything else is a decimal
// section number.
func describeSectionIndex(ndx elf.SectionIndex) string {
	switch ndx {
	case elf.SHN_UNDEF:
		return "UND"
	case elf.SHN_ABS:
		return "ABS"
	case elf.SHN_COMMON:
		return "COM"
	}
	return strconv.Itoa(int(ndx))
}
