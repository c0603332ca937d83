package mips

import "github.com/ezrec/mipspp/codec"

// RFunct maps R-type mnemonics to their funct field. CPU.executeR only
// implements add/sub/and/or (see DESIGN.md); syscall is encoded under
// codec.OpSyscall instead and runs as a syscall. The rest assemble to a
// valid word but fault at runtime with ErrInvalidFunct, matching the
// reference implementation's own execute_r.
var RFunct = map[string]uint8{
	"add": 0x20, "addu": 0x21, "and": 0x24, "break": 0x0D,
	"div": 0x1A, "divu": 0x1B, "jalr": 0x09, "jr": 0x08,
	"mfhi": 0x10, "mflo": 0x12, "mthi": 0x11, "mtlo": 0x13,
	"mult": 0x18, "multu": 0x19, "nor": 0x27, "or": 0x25,
	"sll": 0x00, "sllv": 0x04, "slt": 0x2A, "sltu": 0x2B,
	"sra": 0x03, "srav": 0x07, "srl": 0x02, "srlv": 0x06,
	"sub": 0x22, "subu": 0x23, "syscall": 0x0C, "xor": 0x26,
}

// IOpcode maps I-type mnemonics to their opcode field. Note "xori" maps to
// 0x0E, which CPU.executeI interprets as a bitwise NOR, not XOR — a
// preserved naming/semantic mismatch from the reference implementation.
var IOpcode = map[string]uint8{
	"addi": 0x08, "addiu": 0x09, "andi": 0x0C, "beq": 0x04,
	"bgez": 0x01, "bgezal": 0x01, "bgtz": 0x07, "blez": 0x06,
	"bltz": 0x01, "bltzal": 0x01, "bne": 0x05, "lb": 0x20,
	"lbu": 0x24, "lh": 0x21, "lhu": 0x25, "lui": 0x0F,
	"lw": 0x23, "lwc1": 0x31, "ori": 0x0D, "sb": 0x28,
	"sh": 0x29, "slti": 0x0A, "sltiu": 0x0B, "sw": 0x2B,
	"swc1": 0x39, "xori": 0x0E,
}

// JOpcode maps J-type mnemonics to their opcode field.
var JOpcode = map[string]uint8{
	"j": codec.OpJ, "jal": codec.OpJal,
}

// IsRMnemonic reports whether name names an R-type instruction.
func IsRMnemonic(name string) bool {
	_, ok := RFunct[name]
	return ok
}

// IsIMnemonic reports whether name names an I-type instruction.
func IsIMnemonic(name string) bool {
	_, ok := IOpcode[name]
	return ok
}

// IsJMnemonic reports whether name names a J-type instruction.
func IsJMnemonic(name string) bool {
	_, ok := JOpcode[name]
	return ok
}
