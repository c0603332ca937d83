package mips

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mipspp/codec"
)

func writeSource(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.asm")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestAssembleRType(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "add $t1, $t2, $t3\n")

	a := &Assembler{}
	bin, err := a.Assemble(path)
	assert.NoError(err)
	assert.Len(bin, 4)

	word := uint32(bin[0])<<24 | uint32(bin[1])<<16 | uint32(bin[2])<<8 | uint32(bin[3])
	assert.Equal(uint8(0x00), codec.Opcode(word))
	assert.Equal(uint8(9), codec.Rd(word))
	assert.Equal(uint8(10), codec.Rs(word))
	assert.Equal(uint8(11), codec.Rt(word))
	assert.Equal(uint8(0x20), codec.Funct(word))
}

func TestAssembleIgnoresCommentsAndBlankLines(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "# a comment\n\nadd $t0, $t1, $t2\n")

	a := &Assembler{}
	bin, err := a.Assemble(path)
	assert.NoError(err)
	assert.Len(bin, 4)
}

func TestFirstPassCollectsLabelsAsLineNumbers(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "start:\nadd $t0, $t1, $t2\nloop:\nj 0\n")

	a := &Assembler{}
	assert.NoError(a.LoadFile(path))
	a.FirstPass()

	assert.Len(a.Labels, 2)
	assert.Equal(Symbol{Name: "start", Address: 0}, a.Labels[0])
	assert.Equal(Symbol{Name: "loop", Address: 2}, a.Labels[1])
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "bogus $t0, $t1, $t2\n")

	a := &Assembler{}
	_, err := a.Assemble(path)
	assert.Error(err)
	var syn *ErrSyntax
	assert.ErrorAs(err, &syn)
}

func TestAssembleWrongArgCount(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "add $t0, $t1\n")

	a := &Assembler{}
	_, err := a.Assemble(path)
	assert.Error(err)
}

func TestAssembleImmediateOutOfRange(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "addi $t0, $t1, 99999\n")

	a := &Assembler{}
	_, err := a.Assemble(path)
	assert.Error(err)
}

func TestAssembleJType(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "j 12\n")

	a := &Assembler{}
	bin, err := a.Assemble(path)
	assert.NoError(err)

	word := uint32(bin[0])<<24 | uint32(bin[1])<<16 | uint32(bin[2])<<8 | uint32(bin[3])
	assert.Equal(uint8(codec.OpJ), codec.Opcode(word))
	assert.Equal(uint32(12), codec.Address(word))
}

func TestAssembleSyscallUsesSyscallOpcode(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "syscall\n")

	a := &Assembler{}
	bin, err := a.Assemble(path)
	assert.NoError(err)
	assert.Len(bin, 4)

	word := uint32(bin[0])<<24 | uint32(bin[1])<<16 | uint32(bin[2])<<8 | uint32(bin[3])
	assert.Equal(uint8(codec.OpSyscall), codec.Opcode(word))
}

func TestParseRegisterBroadenedNames(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]uint8{
		"$zero": 0, "$sp": 29, "$ra": 31, "$t1": 9, "$9": 9,
	}
	for token, want := range cases {
		got, err := ParseRegister(token)
		assert.NoError(err, token)
		assert.Equal(want, got, token)
	}

	_, err := ParseRegister("t1")
	assert.Error(err)
}
