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
	"testing"

	"github.com/adafruit/legolas/test"
)

func TestDescribeEnums(t *testing.T) {
	test.Equate(t, describeSectionType(elf.SHT_NULL), "NULL")
	test.Equate(t, describeSectionType(elf.SHT_PROGBITS), "PROGBITS")
	test.Equate(t, describeSectionType(elf.SHT_GNU_VERSYM), "GNU_VERSYM")

	test.Equate(t, describeSymbolType(elf.STT_NOTYPE), "NOTYPE")
	test.Equate(t, describeSymbolType(elf.STT_FUNC), "FUNC")
	test.Equate(t, describeSymbolBinding(elf.STB_LOCAL), "LOCAL")
	test.Equate(t, describeSymbolBinding(elf.STB_GLOBAL), "GLOBAL")
	test.Equate(t, describeSymbolVisibility(elf.STV_DEFAULT), "DEFAULT")
	test.Equate(t, describeSymbolVisibility(elf.STV_HIDDEN), "HIDDEN")
}

func TestDescribeSectionFlags(t *testing.T) {
	test.Equate(t, describeSectionFlags(0), "")
	test.Equate(t, describeSectionFlags(elf.SHF_WRITE|elf.SHF_ALLOC), "WA")
	test.Equate(t, describeSectionFlags(elf.SHF_ALLOC|elf.SHF_EXECINSTR), "AX")
	test.Equate(t, describeSectionFlags(elf.SHF_MERGE|elf.SHF_STRINGS), "MS")

	// letters appear in a fixed order, whatever the combination
	test.Equate(t, describeSectionFlags(elf.SHF_TLS|elf.SHF_GROUP|elf.SHF_WRITE), "WGT")

	// the mask ranges collapse to a single letter
	test.Equate(t, describeSectionFlags(0x00100000), "o")
	test.Equate(t, describeSectionFlags(0x10000000), "p")

	// the exclude bit is inside the processor mask and suppresses the
	// generic processor letter
	test.Equate(t, describeSectionFlags(shfExclude), "E")
	test.Equate(t, describeSectionFlags(shfExclude|0x10000000), "E")
	test.Equate(t, describeSectionFlags(elf.SHF_ALLOC|shfExclude), "AE")
}

func TestDescribeSectionIndex(t *testing.T) {
	test.Equate(t, describeSectionIndex(elf.SHN_UNDEF), "UND")
	test.Equate(t, describeSectionIndex(elf.SHN_ABS), "ABS")
	test.Equate(t, describeSectionIndex(elf.SHN_COMMON), "COM")
	test.Equate(t, describeSectionIndex(elf.SectionIndex(1)), "1")
	test.Equate(t, describeSectionIndex(elf.SectionIndex(12)), "12")
}
