package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name                          string
		op, rs, rt, rd, shamt, funct uint8
	}{
		{"add", 0x00, 1, 2, 3, 0, 0x20},
		{"max_fields", 0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x3F},
		{"zero", 0x00, 0, 0, 0, 0, 0},
	}

	for _, tt := range table {
		w := CreateR(tt.op, tt.rs, tt.rt, tt.rd, tt.shamt, tt.funct)
		assert.Equal(tt.op, Opcode(w), tt.name)
		assert.Equal(tt.rs, Rs(w), tt.name)
		assert.Equal(tt.rt, Rt(w), tt.name)
		assert.Equal(tt.rd, Rd(w), tt.name)
		assert.Equal(tt.shamt, Shamt(w), tt.name)
		assert.Equal(tt.funct, Funct(w), tt.name)
	}
}

func TestIRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name       string
		op, rs, rt uint8
		imm        uint16
	}{
		{"addi", 0x08, 10, 11, 42},
		{"negative_imm", 0x08, 10, 11, uint16(0xFFFF)},
		{"max_fields", 0x3F, 0x1F, 0x1F, 0xFFFF},
	}

	for _, tt := range table {
		w := CreateI(tt.op, tt.rs, tt.rt, tt.imm)
		assert.Equal(tt.op, Opcode(w), tt.name)
		assert.Equal(tt.rs, Rs(w), tt.name)
		assert.Equal(tt.rt, Rt(w), tt.name)
		assert.Equal(tt.imm, Immediate(w), tt.name)
	}
}

func TestJRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		op     uint8
		target uint32
	}{
		{"j", 0x02, 0x1000},
		{"jal", 0x03, 0x3FFFFFF},
	}

	for _, tt := range table {
		w := CreateJ(tt.op, tt.target)
		assert.Equal(tt.op, Opcode(w), tt.name)
		assert.Equal(tt.target, Address(w), tt.name)
	}
}

func TestEncodingStability(t *testing.T) {
	assert := assert.New(t)

	// add $t1, $t2, $t3 => rd=$t1=9, rs=$t2=10, rt=$t3=11
	w := CreateR(RType, 10, 11, 9, 0, 0x20)
	assert.Equal(uint8(0x00), Opcode(w))
	assert.Equal(uint8(9), Rd(w))
	assert.Equal(uint8(10), Rs(w))
	assert.Equal(uint8(11), Rt(w))
	assert.Equal(uint8(0x20), Funct(w))
}

func TestTypeClassifiers(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsRType(0x00))
	assert.False(IsRType(0x02))
	assert.True(IsJType(0x02))
	assert.True(IsJType(0x03))
	assert.False(IsJType(0x00))
	assert.False(IsJType(0x23))
}
