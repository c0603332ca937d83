// Package objfile reads and writes the MIPS++ object file format: an 8-byte
// file header followed by one 12-byte section header per segment and their
// raw payload bytes.
//
// The header and section header fields are little-endian, matching the
// layout the reference assembler produces when it writes its in-memory
// struct straight to disk on a little-endian host. Instruction and data
// payload bytes stay big-endian, matching the codec package.
package objfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/ezrec/mipspp/memory"
	"github.com/ezrec/mipspp/translate"
)

var f = translate.From

const (
	// Version is the only object file version this package understands.
	Version = 1

	headerSize        = 8
	sectionHeaderSize = 12

	// SegmentText identifies the text (code) section.
	SegmentText = 0
	// SegmentData identifies the data section.
	SegmentData = 1
)

var magic = [4]byte{'M', 'I', 'P', 'S'}

// Section is one loadable region of the object file.
type Section struct {
	Segment byte
	Offset  uint32
	Size    uint32
	Data    []byte
}

// Object is a fully parsed, or about-to-be-written, MIPS++ object file.
type Object struct {
	Sections []Section
}

// ErrBadMagic indicates the file does not start with the "MIPS" magic.
type ErrBadMagic struct{}

func (ErrBadMagic) Error() string { return f("not a MIPS object file") }

// ErrBadVersion indicates an object file version this package cannot read.
type ErrBadVersion struct{ Version byte }

func (e ErrBadVersion) Error() string {
	return f("unsupported MIPS object version %d", e.Version)
}

// AddText appends a text-segment section at the given load offset.
func (o *Object) AddText(offset uint32, data []byte) {
	o.Sections = append(o.Sections, Section{Segment: SegmentText, Offset: offset, Size: uint32(len(data)), Data: data})
}

// AddData appends a data-segment section at the given load offset.
func (o *Object) AddData(offset uint32, data []byte) {
	o.Sections = append(o.Sections, Section{Segment: SegmentData, Offset: offset, Size: uint32(len(data)), Data: data})
}

// Save serializes the object to filename.
func (o *Object) Save(filename string) error {
	var buf bytes.Buffer

	header := make([]byte, headerSize)
	copy(header[0:4], magic[:])
	header[4] = 0 // endianness: 0 = little endian (section header fields only)
	header[5] = Version
	header[6] = byte(len(o.Sections))
	header[7] = 0
	buf.Write(header)

	for _, s := range o.Sections {
		sh := make([]byte, sectionHeaderSize)
		sh[0] = s.Segment
		binary.LittleEndian.PutUint32(sh[4:8], s.Offset)
		binary.LittleEndian.PutUint32(sh[8:12], s.Size)
		buf.Write(sh)
	}

	for _, s := range o.Sections {
		buf.Write(s.Data)
	}

	return os.WriteFile(filename, buf.Bytes(), 0o644)
}

// Load parses filename into an Object.
func Load(filename string) (*Object, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse parses raw object file bytes into an Object.
func Parse(raw []byte) (*Object, error) {
	if len(raw) < headerSize {
		return nil, ErrBadMagic{}
	}
	if !bytes.Equal(raw[0:4], magic[:]) {
		return nil, ErrBadMagic{}
	}
	version := raw[5]
	if version != Version {
		return nil, ErrBadVersion{Version: version}
	}
	shnum := int(raw[6])

	obj := &Object{}
	cursor := headerSize
	type pending struct {
		segment byte
		offset  uint32
		size    uint32
	}
	var sections []pending
	for i := 0; i < shnum; i++ {
		if cursor+sectionHeaderSize > len(raw) {
			return nil, fmt.Errorf("%s", f("truncated section header %d", i))
		}
		sh := raw[cursor : cursor+sectionHeaderSize]
		sections = append(sections, pending{
			segment: sh[0],
			offset:  binary.LittleEndian.Uint32(sh[4:8]),
			size:    binary.LittleEndian.Uint32(sh[8:12]),
		})
		cursor += sectionHeaderSize
	}

	for _, s := range sections {
		if cursor+int(s.size) > len(raw) {
			return nil, fmt.Errorf("%s", f("truncated section payload"))
		}
		data := raw[cursor : cursor+int(s.size)]
		cursor += int(s.size)
		obj.Sections = append(obj.Sections, Section{Segment: s.segment, Offset: s.offset, Size: s.size, Data: data})
	}

	return obj, nil
}

// LoadInto loads every section of the object into mem at its segment's
// base address plus its recorded offset. This is the hook the reference
// implementation left unimplemented; here it actually populates memory so
// PrepareAndHold can run a program straight from disk.
func (o *Object) LoadInto(mem *memory.Memory) error {
	for _, s := range o.Sections {
		var base uint32
		switch s.Segment {
		case SegmentText:
			base = memory.TextOffset
		case SegmentData:
			base = memory.DataOffset
		default:
			continue
		}
		if err := mem.LoadBytes(base+s.Offset, s.Data); err != nil {
			return err
		}
	}
	return nil
}
