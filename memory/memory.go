// Package memory implements the flat, bounds-checked virtual address space
// shared by the CPU and the emulator's object loader.
//
// MAX_MEMORY (2^32) is never allocated eagerly. Storage is a sparse map of
// 4 KiB pages, allocated on first write (or first loaded byte); an
// unallocated page reads back as all zero. Observable semantics for any
// valid address are identical to an eager 4 GiB byte array.
package memory

import (
	"fmt"
	"io"

	"github.com/ezrec/mipspp/translate"
)

var f = translate.From

const (
	// MaxMemory is the logical size of the address space.
	MaxMemory = int64(1) << 32

	// TextOffset is the base address of the text (code) segment.
	TextOffset = 0x00400000
	// DataOffset is the base address of the data segment. It grows up.
	DataOffset = 0x10000000
	// StackTop is the highest valid stack address. The stack grows down.
	StackTop = 0x7FFFFFFF

	pageSize = 4096
	pageMask = pageSize - 1
)

// ErrOutOfBounds is returned when an access falls outside [0, MaxMemory).
type ErrOutOfBounds uint64

func (e ErrOutOfBounds) Error() string {
	return f("address %#x out of bounds", uint64(e))
}

// Memory is a sparse, page-backed byte array.
type Memory struct {
	pages map[uint32][pageSize]byte
}

// New creates a zero-initialized Memory.
func New() *Memory {
	return &Memory{pages: make(map[uint32][pageSize]byte)}
}

func pageOf(addr uint32) uint32 {
	return addr / pageSize
}

func inBounds(addr uint64, size uint64) bool {
	if addr >= uint64(MaxMemory) {
		return false
	}
	return addr+size-1 < uint64(MaxMemory)
}

// ReadByte returns the byte at address.
func (m *Memory) ReadByte(address uint32) (byte, error) {
	if !inBounds(uint64(address), 1) {
		return 0, ErrOutOfBounds(address)
	}
	page, ok := m.pages[pageOf(address)]
	if !ok {
		return 0, nil
	}
	return page[address&pageMask], nil
}

// WriteByte writes value at address.
func (m *Memory) WriteByte(value byte, address uint32) error {
	if !inBounds(uint64(address), 1) {
		return ErrOutOfBounds(address)
	}
	idx := pageOf(address)
	page := m.pages[idx]
	page[address&pageMask] = value
	m.pages[idx] = page
	return nil
}

// ReadHalfword returns the big-endian 16-bit value at address.
func (m *Memory) ReadHalfword(address uint32) (uint16, error) {
	if !inBounds(uint64(address), 2) {
		return 0, ErrOutOfBounds(address)
	}
	hi, _ := m.ReadByte(address)
	lo, _ := m.ReadByte(address + 1)
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteHalfword writes the big-endian 16-bit value at address.
func (m *Memory) WriteHalfword(value uint16, address uint32) error {
	if !inBounds(uint64(address), 2) {
		return ErrOutOfBounds(address)
	}
	if err := m.WriteByte(byte(value>>8), address); err != nil {
		return err
	}
	return m.WriteByte(byte(value), address+1)
}

// ReadWord returns the big-endian 32-bit value at address.
func (m *Memory) ReadWord(address uint32) (uint32, error) {
	if !inBounds(uint64(address), 4) {
		return 0, ErrOutOfBounds(address)
	}
	b0, _ := m.ReadByte(address)
	b1, _ := m.ReadByte(address + 1)
	b2, _ := m.ReadByte(address + 2)
	b3, _ := m.ReadByte(address + 3)
	return uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3), nil
}

// WriteWord writes the big-endian 32-bit value at address.
func (m *Memory) WriteWord(value uint32, address uint32) error {
	if !inBounds(uint64(address), 4) {
		return ErrOutOfBounds(address)
	}
	if err := m.WriteByte(byte(value>>24), address); err != nil {
		return err
	}
	if err := m.WriteByte(byte(value>>16), address+1); err != nil {
		return err
	}
	if err := m.WriteByte(byte(value>>8), address+2); err != nil {
		return err
	}
	return m.WriteByte(byte(value), address+3)
}

// ReadString returns the bytes at address up to (not including) the first
// zero byte. Capped at 4096 bytes to guard against a missing terminator.
func (m *Memory) ReadString(address uint32) string {
	const cap = 4096
	var out []byte
	for n := 0; n < cap; n++ {
		b, err := m.ReadByte(address + uint32(n))
		if err != nil || b == 0 {
			break
		}
		out = append(out, b)
	}
	return string(out)
}

// LoadBytes copies data into memory starting at base, allocating pages as
// needed. Used by the object loader to populate the text and data
// segments.
func (m *Memory) LoadBytes(base uint32, data []byte) error {
	for n, b := range data {
		if err := m.WriteByte(b, base+uint32(n)); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes the first 200 bytes to stream in hex+ASCII, 16 bytes per line.
func (m *Memory) Dump(stream io.Writer) error {
	return m.DumpOffset(stream, 0, 200)
}

// DumpOffset writes [start, end) to stream in hex+ASCII, 16 bytes per line.
func (m *Memory) DumpOffset(stream io.Writer, start, end uint32) error {
	for addr := start; addr < end; addr += 16 {
		lineEnd := addr + 16
		if lineEnd > end {
			lineEnd = end
		}
		row := make([]byte, 0, 16)
		for a := addr; a < lineEnd; a++ {
			b, err := m.ReadByte(a)
			if err != nil {
				return err
			}
			row = append(row, b)
		}
		if _, err := fmt.Fprintf(stream, "%08x  ", addr); err != nil {
			return err
		}
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(stream, "%02x ", row[i])
			} else {
				fmt.Fprint(stream, "   ")
			}
		}
		fmt.Fprint(stream, " ")
		for _, b := range row {
			if b >= 0x20 && b < 0x7F {
				fmt.Fprintf(stream, "%c", b)
			} else {
				fmt.Fprint(stream, ".")
			}
		}
		fmt.Fprintln(stream)
	}
	return nil
}
