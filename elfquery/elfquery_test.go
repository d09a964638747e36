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

package elfquery_test

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/adafruit/legolas/curated"
	"github.com/adafruit/legolas/elfquery"
	"github.com/adafruit/legolas/test"
)

func cmpRow(t *testing.T, row []string, expected ...string) {
	t.Helper()
	if len(row) != len(expected) {
		t.Fatalf("row has %d cells (wanted %d): %v", len(row), len(expected), row)
	}
	for i := range row {
		test.Equate(t, row[i], expected[i])
	}
}

func writeELF(t *testing.T, name string, image []byte) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, image, 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

// buildTestELF assembles a minimal 64bit ELF image: a text section, a
// symbol table with three named symbols (plus the null entry) and the two
// string tables, then writes it to a temporary file.
func buildTestELF(t *testing.T) string {
	t.Helper()

	buf := &bytes.Buffer{}
	w := func(v interface{}) {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}

	w(elf.Header64{
		Ident:     [16]byte{0x7f, 'E', 'L', 'F', 2, 1, 1},
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_AARCH64),
		Version:   1,
		Entry:     0x8000,
		Shoff:     224,
		Ehsize:    64,
		Phentsize: 56,
		Shentsize: 64,
		Shnum:     5,
		Shstrndx:  4,
	})

	// .text at offset 64
	w([8]byte{0x1f, 0x20, 0x03, 0xd5, 0x1f, 0x20, 0x03, 0xd5})

	// .symtab at offset 72. local symbols first, as required by the
	// sh_info convention
	w(elf.Sym64{})
	w(elf.Sym64{Name: 6, Info: 0x01, Other: 2, Shndx: 0xfff1, Value: 0x20000000, Size: 64})
	w(elf.Sym64{Name: 1, Info: 0x12, Shndx: 1, Value: 0x8000, Size: 4})
	w(elf.Sym64{Name: 13, Info: 0x10})

	// .strtab at offset 168: main=1, buffer=6, counter=13
	buf.WriteString("\x00main\x00buffer\x00counter\x00")

	// .shstrtab at offset 189: .text=1, .symtab=7, .strtab=15, .shstrtab=23
	buf.WriteString("\x00.text\x00.symtab\x00.strtab\x00.shstrtab\x00")

	// section headers, 8-byte aligned
	buf.Write(make([]byte, 2))
	w(elf.Section64{})
	w(elf.Section64{Name: 1, Type: uint32(elf.SHT_PROGBITS),
		Flags: uint64(elf.SHF_ALLOC | elf.SHF_EXECINSTR),
		Addr:  0x8000, Off: 64, Size: 8, Addralign: 4})
	w(elf.Section64{Name: 7, Type: uint32(elf.SHT_SYMTAB),
		Off: 72, Size: 96, Link: 3, Info: 2, Addralign: 8, Entsize: 24})
	w(elf.Section64{Name: 15, Type: uint32(elf.SHT_STRTAB),
		Off: 168, Size: 21, Addralign: 1})
	w(elf.Section64{Name: 23, Type: uint32(elf.SHT_STRTAB),
		Off: 189, Size: 33, Addralign: 1})

	return writeELF(t, "test.elf", buf.Bytes())
}

// buildVersionedELF assembles a 64bit ELF image with a dynamic symbol table
// and the three version sections: two version definitions (the base version
// at index 1 and LIBTEST_1.0 at index 2) and one version requirement (index
// 3, DEP_2.0 from libdep.so.1). with the gnu argument the dynamic section
// carries a DT_VERSYM tag, without it the file looks like Solaris
// versioning.
func buildVersionedELF(t *testing.T, gnu bool) string {
	t.Helper()

	buf := &bytes.Buffer{}
	w := func(v interface{}) {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}

	w(elf.Header64{
		Ident:     [16]byte{0x7f, 'E', 'L', 'F', 2, 1, 1},
		Type:      uint16(elf.ET_DYN),
		Machine:   uint16(elf.EM_AARCH64),
		Version:   1,
		Shoff:     400,
		Ehsize:    64,
		Phentsize: 56,
		Shentsize: 64,
		Shnum:     8,
		Shstrndx:  7,
	})

	// .dynsym at offset 64: null entry, an undefined import and an
	// exported definition
	w(elf.Sym64{})
	w(elf.Sym64{Name: 1, Info: 0x12})
	w(elf.Sym64{Name: 5, Info: 0x12, Shndx: 0xfff1, Value: 0x1000, Size: 16})

	// .dynstr at offset 136: foo=1, bar=5, LIBTEST_1.0=9, libdep.so.1=21,
	// DEP_2.0=33, libtest.so.1=41
	buf.WriteString("\x00foo\x00bar\x00LIBTEST_1.0\x00libdep.so.1\x00DEP_2.0\x00libtest.so.1\x00")

	// .gnu.version at offset 190: the import requires index 3, the
	// definition carries index 2
	w([]uint16{0, 3, 2})

	// .gnu.version_d at offset 196. the first definition is the base
	// version, naming the file itself
	verdef := make([]byte, 56)
	binary.LittleEndian.PutUint16(verdef[0:], 1)   // vd_version
	binary.LittleEndian.PutUint16(verdef[2:], 1)   // vd_flags: base
	binary.LittleEndian.PutUint16(verdef[4:], 1)   // vd_ndx
	binary.LittleEndian.PutUint16(verdef[6:], 1)   // vd_cnt
	binary.LittleEndian.PutUint32(verdef[12:], 20) // vd_aux
	binary.LittleEndian.PutUint32(verdef[16:], 28) // vd_next
	binary.LittleEndian.PutUint32(verdef[20:], 41) // vda_name

	binary.LittleEndian.PutUint16(verdef[28:], 1)  // vd_version
	binary.LittleEndian.PutUint16(verdef[32:], 2)  // vd_ndx
	binary.LittleEndian.PutUint16(verdef[34:], 1)  // vd_cnt
	binary.LittleEndian.PutUint32(verdef[40:], 20) // vd_aux
	binary.LittleEndian.PutUint32(verdef[48:], 9)  // vda_name
	buf.Write(verdef)

	// .gnu.version_r at offset 252
	verneed := make([]byte, 32)
	binary.LittleEndian.PutUint16(verneed[0:], 1)   // vn_version
	binary.LittleEndian.PutUint16(verneed[2:], 1)   // vn_cnt
	binary.LittleEndian.PutUint32(verneed[4:], 21)  // vn_file
	binary.LittleEndian.PutUint32(verneed[8:], 16)  // vn_aux
	binary.LittleEndian.PutUint16(verneed[22:], 3)  // vna_other
	binary.LittleEndian.PutUint32(verneed[24:], 33) // vna_name
	buf.Write(verneed)

	// .dynamic at offset 288, 8-byte aligned
	buf.Write(make([]byte, 4))
	if gnu {
		w(elf.Dyn64{Tag: int64(elf.DT_VERSYM)})
	} else {
		w(elf.Dyn64{Tag: int64(elf.DT_SONAME), Val: 41})
	}
	w(elf.Dyn64{Tag: int64(elf.DT_NULL)})

	// .shstrtab at offset 320: .dynsym=1, .dynstr=9, .gnu.version=17,
	// .gnu.version_d=30, .gnu.version_r=45, .dynamic=60, .shstrtab=69
	buf.WriteString("\x00.dynsym\x00.dynstr\x00.gnu.version\x00.gnu.version_d\x00.gnu.version_r\x00.dynamic\x00.shstrtab\x00")

	// section headers, 8-byte aligned
	buf.Write(make([]byte, 1))
	w(elf.Section64{})
	w(elf.Section64{Name: 1, Type: uint32(elf.SHT_DYNSYM),
		Flags: uint64(elf.SHF_ALLOC),
		Off:   64, Size: 72, Link: 2, Info: 1, Addralign: 8, Entsize: 24})
	w(elf.Section64{Name: 9, Type: uint32(elf.SHT_STRTAB),
		Flags: uint64(elf.SHF_ALLOC),
		Off:   136, Size: 54, Addralign: 1})
	w(elf.Section64{Name: 17, Type: uint32(elf.SHT_GNU_VERSYM),
		Flags: uint64(elf.SHF_ALLOC),
		Off:   190, Size: 6, Link: 1, Addralign: 2, Entsize: 2})
	w(elf.Section64{Name: 30, Type: uint32(elf.SHT_GNU_VERDEF),
		Flags: uint64(elf.SHF_ALLOC),
		Off:   196, Size: 56, Link: 2, Info: 2, Addralign: 4})
	w(elf.Section64{Name: 45, Type: uint32(elf.SHT_GNU_VERNEED),
		Flags: uint64(elf.SHF_ALLOC),
		Off:   252, Size: 32, Link: 2, Info: 1, Addralign: 4})
	w(elf.Section64{Name: 60, Type: uint32(elf.SHT_DYNAMIC),
		Flags: uint64(elf.SHF_WRITE | elf.SHF_ALLOC),
		Off:   288, Size: 32, Link: 2, Addralign: 8, Entsize: 16})
	w(elf.Section64{Name: 69, Type: uint32(elf.SHT_STRTAB),
		Off: 320, Size: 79, Addralign: 1})

	return writeELF(t, "versioned.elf", buf.Bytes())
}

func TestProjection(t *testing.T) {
	qry, err := elfquery.Open(buildTestELF(t))
	if err != nil {
		t.Fatal(err)
	}
	defer qry.Close()

	res, err := qry.Run("SELECT Number, Name, Type, Flags, Address, Size FROM sections ORDER BY Number")
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(res.Columns), 6)
	test.Equate(t, res.Columns[0], "Number")
	test.Equate(t, len(res.Rows), 5)

	cmpRow(t, res.Rows[0], "0", "", "NULL", "", "0", "0")
	cmpRow(t, res.Rows[1], "1", ".text", "PROGBITS", "AX", "32768", "8")
	cmpRow(t, res.Rows[2], "2", ".symtab", "SYMTAB", "", "0", "96")
	cmpRow(t, res.Rows[3], "3", ".strtab", "STRTAB", "", "0", "21")
	cmpRow(t, res.Rows[4], "4", ".shstrtab", "STRTAB", "", "0", "33")

	res, err = qry.Run("SELECT Section, Number, Value, Size, Type, Binding, Visibility, SectionIndex, Name, Version, RelatedSection FROM symbols ORDER BY Number")
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(res.Rows), 4)

	// the null entry is retained so row numbers match symbol indices.
	// NULL renders as the empty string
	cmpRow(t, res.Rows[0], ".symtab", "0", "0000000000000000", "0", "NOTYPE", "LOCAL", "DEFAULT", "UND", "", "", "")
	cmpRow(t, res.Rows[1], ".symtab", "1", "0000000020000000", "64", "OBJECT", "LOCAL", "HIDDEN", "ABS", "buffer", "", "")
	cmpRow(t, res.Rows[2], ".symtab", "2", "0000000000008000", "4", "FUNC", "GLOBAL", "DEFAULT", "1", "main", "", ".text")
	cmpRow(t, res.Rows[3], ".symtab", "3", "0000000000000000", "0", "NOTYPE", "GLOBAL", "DEFAULT", "UND", "counter", "", "")
}

func TestQueryFunctions(t *testing.T) {
	qry, err := elfquery.Open(buildTestELF(t))
	if err != nil {
		t.Fatal(err)
	}
	defer qry.Close()

	res, err := qry.Run("SELECT TO_HEX(Size, 4) FROM symbols WHERE Name = 'main'")
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(res.Rows), 1)
	test.Equate(t, res.Rows[0][0], "0004")

	res, err = qry.Run("SELECT Name FROM symbols WHERE FROM_HEX(Value) = 32768")
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(res.Rows), 1)
	test.Equate(t, res.Rows[0][0], "main")

	// a FROM_HEX failure is an ordinary query error
	_, err = qry.Run("SELECT FROM_HEX('wibble')")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, elfquery.QueryError))
}

func TestQueryErrors(t *testing.T) {
	qry, err := elfquery.Open(buildTestELF(t))
	if err != nil {
		t.Fatal(err)
	}
	defer qry.Close()

	_, err = qry.Run("SELECT * FROM spoons")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, elfquery.QueryError))

	_, err = qry.Run("NOT EVEN SQL")
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, elfquery.QueryError))
}

func TestOpenErrors(t *testing.T) {
	_, err := elfquery.Open(filepath.Join(t.TempDir(), "missing.elf"))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, elfquery.LoadError))

	filename := writeELF(t, "not.elf", []byte("not an elf file at all"))
	_, err = elfquery.Open(filename)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, elfquery.LoadError))
}

func TestVersionedProjection(t *testing.T) {
	qry, err := elfquery.Open(buildVersionedELF(t, true))
	if err != nil {
		t.Fatal(err)
	}
	defer qry.Close()

	res, err := qry.Run("SELECT Name, Version, SectionIndex FROM symbols ORDER BY Number")
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(res.Rows), 3)

	cmpRow(t, res.Rows[0], "", "", "UND")
	cmpRow(t, res.Rows[1], "foo", "@DEP_2.0 (3)", "UND")
	cmpRow(t, res.Rows[2], "bar", "@@LIBTEST_1.0", "ABS")

	// version sections project like any other section
	res, err = qry.Run("SELECT Name, Type FROM sections WHERE Number IN (3, 4, 5) ORDER BY Number")
	test.ExpectedSuccess(t, err)
	cmpRow(t, res.Rows[0], ".gnu.version", "GNU_VERSYM")
	cmpRow(t, res.Rows[1], ".gnu.version_d", "GNU_VERDEF")
	cmpRow(t, res.Rows[2], ".gnu.version_r", "GNU_VERNEED")
}

func TestSolarisVersioning(t *testing.T) {
	qry, err := elfquery.Open(buildVersionedELF(t, false))
	if err != nil {
		t.Fatal(err)
	}
	defer qry.Close()

	// without the GNU scheme no symbol is decorated
	res, err := qry.Run("SELECT Name, Version FROM symbols WHERE Name <> '' ORDER BY Number")
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(res.Rows), 2)
	cmpRow(t, res.Rows[0], "foo", "")
	cmpRow(t, res.Rows[1], "bar", "")
}
