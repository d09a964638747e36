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
	"bytes"
	"database/sql"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/adafruit/legolas/logger"
)

// stringTable returns the content of the section at the given index. symbol
// and version sections name their string table in the sh_link field.
func stringTable(ef *elf.File, link uint32) ([]byte, error) {
	if int(link) >= len(ef.Sections) {
		return nil, fmt.Errorf("string table section %d is out of range", link)
	}
	return ef.Sections[link].Data()
}

// getString reads a null terminated string from a string table. an offset
// outside the table reads as the empty string.
func getString(strs []byte, offset int) string {
	if offset < 0 || offset >= len(strs) {
		return ""
	}
	end := offset
	for end < len(strs) && strs[end] != 0 {
		end++
	}
	return string(strs[offset:end])
}

// project loads the section headers and symbol tables of the ELF file into
// the database. projection happens once, everything after that is queries.
func project(db *sql.DB, ef *elf.File) error {
	vi, err := classifyVersions(ef)
	if err != nil {
		return err
	}
	if vi.scheme != schemeNone {
		logger.Logf("elf", "symbol versioning scheme: %s", vi.scheme)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := projectSections(tx, ef); err != nil {
		return err
	}

	numSymbols, err := projectSymbols(tx, ef, vi)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Logf("elf", "projected %d sections and %d symbols", len(ef.Sections), numSymbols)

	return nil
}

// projectSections inserts one row per section header, in file order and
// including the null section at index zero.
func projectSections(tx *sql.Tx, ef *elf.File) error {
	stmt, err := tx.Prepare("INSERT INTO sections VALUES (?,?,?,?,?,?,?,?,?,?,?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, sec := range ef.Sections {
		_, err := stmt.Exec(i,
			sec.Name,
			describeSectionType(sec.Type),
			describeSectionFlags(sec.Flags),
			int64(sec.Addr),
			int64(sec.Offset),
			int64(sec.FileSize),
			sec.Link,
			sec.Info,
			int64(sec.Addralign),
			int64(sec.Entsize))
		if err != nil {
			return err
		}
	}

	return nil
}

// projectSymbols inserts one row per entry of every symbol table in the
// file. entries are decoded from the raw section data rather than through
// (*elf.File).Symbols() because the latter drops the null entry at index
// zero and the row numbering must match the indices used by relocations and
// the versym table.
func projectSymbols(tx *sql.Tx, ef *elf.File, vi *versionInfo) (int, error) {
	stmt, err := tx.Prepare("INSERT INTO symbols VALUES (?,?,?,?,?,?,?,?,?,?,?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	valueWidth := 8
	if ef.Class == elf.ELFCLASS64 {
		valueWidth = 16
	}

	total := 0

	for _, sec := range ef.Sections {
		if sec.Type != elf.SHT_SYMTAB && sec.Type != elf.SHT_DYNSYM {
			continue
		}
		if sec.Entsize == 0 {
			continue
		}

		data, err := sec.Data()
		if err != nil {
			return 0, err
		}
		strs, err := stringTable(ef, sec.Link)
		if err != nil {
			return 0, err
		}

		// version decoration applies to the dynamic symbol table under
		// the GNU scheme only
		versioned := sec.Type == elf.SHT_DYNSYM && vi.scheme == schemeGNU

		rd := bytes.NewReader(data)
		for n := 0; ; n++ {
			var sym elf.Sym64

			if ef.Class == elf.ELFCLASS64 {
				err = binary.Read(rd, ef.ByteOrder, &sym)
			} else {
				var sym32 elf.Sym32
				err = binary.Read(rd, ef.ByteOrder, &sym32)
				sym = elf.Sym64{
					Name:  sym32.Name,
					Info:  sym32.Info,
					Other: sym32.Other,
					Shndx: sym32.Shndx,
					Value: uint64(sym32.Value),
					Size:  uint64(sym32.Size),
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return 0, err
			}

			name := getString(strs, int(sym.Name))

			version := ""
			if versioned {
				version = vi.suffix(n, name)
			}

			shndx := elf.SectionIndex(sym.Shndx)

			// RelatedSection is NULL unless the symbol refers to an
			// ordinary section of this file
			var related interface{}
			if shndx > 0 && shndx < elf.SHN_LORESERVE && int(shndx) < len(ef.Sections) {
				related = ef.Sections[shndx].Name
			}

			_, err = stmt.Exec(sec.Name,
				n,
				fmt.Sprintf("%0*X", valueWidth, sym.Value),
				int64(sym.Size),
				describeSymbolType(elf.ST_TYPE(sym.Info)),
				describeSymbolBinding(elf.ST_BIND(sym.Info)),
				describeSymbolVisibility(elf.ST_VISIBILITY(sym.Other)),
				describeSectionIndex(shndx),
				name,
				version,
				related)
			if err != nil {
				return 0, err
			}

			total++
		}
	}

	return total, nil
}
