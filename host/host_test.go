package host

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadInt(t *testing.T) {
	assert := assert.New(t)

	h := New(strings.NewReader("42 99"), &bytes.Buffer{})
	v, err := h.ReadInt()
	assert.NoError(err)
	assert.Equal(int32(42), v)

	v, err = h.ReadInt()
	assert.NoError(err)
	assert.Equal(int32(99), v)
}

func TestWriteStringAndByte(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	h := New(strings.NewReader(""), &out)

	assert.NoError(h.WriteString("hello"))
	assert.NoError(h.WriteByte('!'))
	assert.Equal("hello!", out.String())
}

func TestReadByte(t *testing.T) {
	assert := assert.New(t)

	h := New(strings.NewReader("A"), &bytes.Buffer{})
	b, err := h.ReadByte()
	assert.NoError(err)
	assert.Equal(byte('A'), b)
}
