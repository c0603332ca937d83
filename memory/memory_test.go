package memory

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteReadWrite(t *testing.T) {
	assert := assert.New(t)
	m := New()

	assert.NoError(m.WriteByte(0xAB, 0x1000))
	v, err := m.ReadByte(0x1000)
	assert.NoError(err)
	assert.Equal(byte(0xAB), v)
}

func TestUnallocatedPageReadsZero(t *testing.T) {
	assert := assert.New(t)
	m := New()

	v, err := m.ReadByte(DataOffset + 5000)
	assert.NoError(err)
	assert.Equal(byte(0), v)
}

func TestWordBigEndian(t *testing.T) {
	assert := assert.New(t)
	m := New()

	assert.NoError(m.WriteWord(0x01020304, 0x2000))

	b0, _ := m.ReadByte(0x2000)
	b1, _ := m.ReadByte(0x2001)
	b2, _ := m.ReadByte(0x2002)
	b3, _ := m.ReadByte(0x2003)
	assert.Equal([]byte{0x01, 0x02, 0x03, 0x04}, []byte{b0, b1, b2, b3})

	v, err := m.ReadWord(0x2000)
	assert.NoError(err)
	assert.Equal(uint32(0x01020304), v)
}

func TestHalfwordBigEndian(t *testing.T) {
	assert := assert.New(t)
	m := New()

	assert.NoError(m.WriteHalfword(0xABCD, 0x3000))
	v, err := m.ReadHalfword(0x3000)
	assert.NoError(err)
	assert.Equal(uint16(0xABCD), v)
}

func TestOutOfBounds(t *testing.T) {
	assert := assert.New(t)
	m := New()

	_, err := m.ReadByte(0xFFFFFFFF)
	assert.NoError(err)

	_, err = m.ReadWord(0xFFFFFFFE)
	assert.Error(err)
}

func TestReadStringStopsAtNul(t *testing.T) {
	assert := assert.New(t)
	m := New()

	for n, b := range []byte("hi\x00garbage") {
		m.WriteByte(b, TextOffset+uint32(n))
	}

	assert.Equal("hi", m.ReadString(TextOffset))
}

func TestLoadBytesAcrossPageBoundary(t *testing.T) {
	assert := assert.New(t)
	m := New()

	data := make([]byte, 8192)
	for i := range data {
		data[i] = byte(i)
	}
	assert.NoError(m.LoadBytes(TextOffset, data))

	for _, addr := range []uint32{0, 4095, 4096, 8191} {
		b, err := m.ReadByte(TextOffset + addr)
		assert.NoError(err)
		assert.Equal(byte(addr), b)
	}
}

func TestDumpFormat(t *testing.T) {
	assert := assert.New(t)
	m := New()

	for n, b := range []byte("Hello, World!") {
		m.WriteByte(b, uint32(n))
	}

	var buf bytes.Buffer
	assert.NoError(m.DumpOffset(&buf, 0, 16))

	out := buf.String()
	assert.Contains(out, "48 65 6c 6c 6f")
	assert.Contains(out, "Hello")
}
