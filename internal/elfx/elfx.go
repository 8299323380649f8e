// Package elfx reads ARM64 function bodies and their symbols out of ELF
// executables and shared objects.
package elfx

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

var (
	ErrNotELF       = errors.New("elfx: not an ELF file")
	ErrNotARM64     = errors.New("elfx: not ARM64 (EM_AARCH64)")
	ErrNotLoadable  = errors.New("elfx: not an executable or shared object")
	ErrNot64Bit     = errors.New("elfx: not 64-bit ELF")
	ErrNoSymbol     = errors.New("elfx: symbol not found")
	ErrNoSegment    = errors.New("elfx: no PT_LOAD segment covers address")
	ErrSymbolNoSize = errors.New("elfx: symbol has zero size")
)

// File is an opened ARM64 ELF image.
type File struct {
	ELF  *elf.File
	raw  *os.File
	size int64
}

// Func is a sized function symbol.
type Func struct {
	Name string
	Addr uint64
	Size uint64
}

// Open opens an ELF file and validates it is a 64-bit ARM64 executable or
// shared object.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("elfx: open: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("elfx: stat: %w", err)
	}

	ef, err := elf.NewFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNotELF, err)
	}

	var bad error
	switch {
	case ef.Class != elf.ELFCLASS64:
		bad = ErrNot64Bit
	case ef.Machine != elf.EM_AARCH64:
		bad = ErrNotARM64
	case ef.Type != elf.ET_DYN && ef.Type != elf.ET_EXEC:
		bad = ErrNotLoadable
	}
	if bad != nil {
		ef.Close()
		f.Close()
		return nil, bad
	}

	return &File{ELF: ef, raw: f, size: info.Size()}, nil
}

// Close releases resources.
func (f *File) Close() error {
	f.ELF.Close()
	return f.raw.Close()
}

// symbols returns the static symbols followed by the dynamic ones. A missing
// table is not an error.
func (f *File) symbols() ([]elf.Symbol, error) {
	var out []elf.Symbol
	for _, read := range []func() ([]elf.Symbol, error){f.ELF.Symbols, f.ELF.DynamicSymbols} {
		syms, err := read()
		if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
			return nil, fmt.Errorf("elfx: symbols: %w", err)
		}
		out = append(out, syms...)
	}
	return out, nil
}

// Funcs returns the sized function symbols sorted by address. A name found
// in both symbol tables is reported once.
func (f *File) Funcs() ([]Func, error) {
	syms, err := f.symbols()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []Func
	for _, s := range syms {
		if elf.ST_TYPE(s.Info) != elf.STT_FUNC || s.Size == 0 || s.Name == "" || seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, Func{Name: s.Name, Addr: s.Value, Size: s.Size})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Addr != out[j].Addr {
			return out[i].Addr < out[j].Addr
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Func looks up a function symbol by exact name.
func (f *File) Func(name string) (Func, error) {
	funcs, err := f.Funcs()
	if err != nil {
		return Func{}, err
	}
	for _, fn := range funcs {
		if fn.Name == name {
			return fn, nil
		}
	}
	return Func{}, fmt.Errorf("%w: %s", ErrNoSymbol, name)
}

// Names maps function addresses to symbol names.
func (f *File) Names() (map[uint64]string, error) {
	funcs, err := f.Funcs()
	if err != nil {
		return nil, err
	}
	names := make(map[uint64]string, len(funcs))
	for _, fn := range funcs {
		if _, ok := names[fn.Addr]; !ok {
			names[fn.Addr] = fn.Name
		}
	}
	return names, nil
}

// VAToFileOffset converts a virtual address to a file offset using PT_LOAD segments.
func (f *File) VAToFileOffset(va uint64) (uint64, error) {
	for _, p := range f.ELF.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		if va >= p.Vaddr && va < p.Vaddr+p.Filesz {
			offset := va - p.Vaddr + p.Off
			if offset >= uint64(f.size) {
				return 0, fmt.Errorf("elfx: VA 0x%x maps to offset 0x%x beyond file size 0x%x", va, offset, f.size)
			}
			return offset, nil
		}
	}
	return 0, fmt.Errorf("%w: VA 0x%x", ErrNoSegment, va)
}

// ReadBytesAtVA reads up to n bytes starting at the given virtual address.
func (f *File) ReadBytesAtVA(va uint64, n int) ([]byte, error) {
	off, err := f.VAToFileOffset(va)
	if err != nil {
		return nil, err
	}
	// Clamp to file size.
	if avail := f.size - int64(off); int64(n) > avail {
		n = int(avail)
	}
	buf := make([]byte, n)
	if _, err := f.raw.ReadAt(buf, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("elfx: read at 0x%x: %w", off, err)
	}
	return buf, nil
}

// Code returns the machine code of fn.
func (f *File) Code(fn Func) ([]byte, error) {
	if fn.Size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNoSize, fn.Name)
	}
	data, err := f.ReadBytesAtVA(fn.Addr, int(fn.Size))
	if err != nil {
		return nil, fmt.Errorf("elfx: %s: %w", fn.Name, err)
	}
	if uint64(len(data)) < fn.Size {
		return nil, fmt.Errorf("elfx: %s: truncated at %d of %d bytes", fn.Name, len(data), fn.Size)
	}
	return data, nil
}
