package mips

import (
	"strconv"
	"strings"

	"github.com/ezrec/mipspp/translate"
)

// RegisterNames maps every conventional MIPS symbolic register name to its
// index. The reference assembler only recognizes "$tN"; this table is
// broadened (see DESIGN.md, OQ-4) to accept the full standard name set plus
// bare numeric registers, since a complete toolchain should not reject
// "$sp" or "$a0" in otherwise valid source.
var RegisterNames = buildRegisterNames()

func buildRegisterNames() map[string]uint8 {
	names := map[string]uint8{
		"zero": 0, "at": 1,
		"v0": 2, "v1": 3,
		"a0": 4, "a1": 5, "a2": 6, "a3": 7,
		"t0": 8, "t1": 9, "t2": 10, "t3": 11, "t4": 12, "t5": 13, "t6": 14, "t7": 15,
		"s0": 16, "s1": 17, "s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
		"t8": 24, "t9": 25,
		"k0": 26, "k1": 27,
		"gp": 28, "sp": 29, "fp": 30, "ra": 31,
	}
	return names
}

var f = translate.From

// ErrInvalidRegister indicates a token that does not name a register.
type ErrInvalidRegister string

func (e ErrInvalidRegister) Error() string {
	return f("invalid register '%s'", string(e))
}

// ParseRegister resolves a register token ("$t1", "$sp", "$9") to its index.
func ParseRegister(token string) (uint8, error) {
	if !strings.HasPrefix(token, "$") {
		return 0, ErrInvalidRegister(token)
	}
	name := token[1:]

	if idx, ok := RegisterNames[name]; ok {
		return idx, nil
	}

	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n <= 31 {
		return uint8(n), nil
	}

	return 0, ErrInvalidRegister(token)
}

// Registers is the CPU's general-purpose register file plus HI/LO/PC.
//
// Register 0 is hard-wired to zero: Set silently discards writes to it, and
// Get always returns 0 for it. The reference implementation never enforces
// this (see DESIGN.md, OQ-2); a conforming toolchain must.
type Registers struct {
	gpr    [32]uint32
	PC     uint32
	HI, LO uint32
}

// Get returns the value of register r.
func (regs *Registers) Get(r uint8) uint32 {
	return regs.gpr[r&0x1F]
}

// Set stores value into register r, except register 0 which stays zero.
func (regs *Registers) Set(r uint8, value uint32) {
	if r&0x1F == 0 {
		return
	}
	regs.gpr[r&0x1F] = value
}

// Reset clears every register, HI, LO and the program counter.
func (regs *Registers) Reset() {
	*regs = Registers{}
}
