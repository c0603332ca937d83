package mips

import (
	"strconv"

	"github.com/ezrec/mipspp/codec"
	"github.com/ezrec/mipspp/memory"
)

// SyscallHost is the external collaborator a CPU talks to for syscall I/O.
// The emulator package binds it to a Host reading/writing stdio, or any
// other io.Reader/io.Writer pair.
type SyscallHost interface {
	ReadInt() (int32, error)
	ReadByte() (byte, error)
	WriteString(s string) error
	WriteByte(b byte) error
}

// CPU is a fetch-decode-execute engine over a Memory and a register file.
type CPU struct {
	Regs Registers
	Mem  *memory.Memory
	Host SyscallHost
}

// NewCPU creates a CPU bound to mem and host, with a freshly reset
// register file (all zero, pc=0).
func NewCPU(mem *memory.Memory, host SyscallHost) *CPU {
	cpu := &CPU{Mem: mem, Host: host}
	cpu.Reset()
	return cpu
}

// Reset clears the register file: all registers, including pc, go to zero.
func (c *CPU) Reset() {
	c.Regs.Reset()
}

// Step performs a single fetch-decode-execute cycle.
func (c *CPU) Step() error {
	instr, err := c.fetch()
	if err != nil {
		return &ErrRuntime{PC: c.Regs.PC, Err: err}
	}

	opcode := codec.Opcode(instr)
	if err := c.execute(instr, opcode); err != nil {
		return &ErrRuntime{PC: c.Regs.PC, Err: err}
	}
	return nil
}

func (c *CPU) fetch() (uint32, error) {
	instr, err := c.Mem.ReadWord(c.Regs.PC)
	if err != nil {
		return 0, err
	}
	c.Regs.PC += 4
	return instr, nil
}

// execute dispatches by opcode. R-type (0x00) and syscall (0x0C, per the
// documented deviation that conflates it with an R-type funct) each own
// one opcode value, as do the two J-type mnemonics (0x02/0x03); every
// remaining opcode is I-type. IOpcode also gives andi 0x0C, so an assembled
// andi runs as a syscall. Because these sets never overlap, a single
// switch resolves the instruction unambiguously — unlike the reference
// implementation, which calls execute_i and execute_j unconditionally in
// sequence and would fault on every successfully-executed I-type
// instruction (see DESIGN.md, OQ-5).
func (c *CPU) execute(instr uint32, opcode uint8) error {
	switch {
	case codec.IsRType(opcode):
		return c.executeR(instr)
	case opcode == codec.OpSyscall:
		return c.executeSyscall()
	case codec.IsJType(opcode):
		return c.executeJ(instr)
	default:
		return c.executeI(instr, opcode)
	}
}

func (c *CPU) executeR(instr uint32) error {
	rs := codec.Rs(instr)
	rt := codec.Rt(instr)
	rd := codec.Rd(instr)
	funct := codec.Funct(instr)

	switch funct {
	case 0x20: // add
		c.Regs.Set(rd, c.Regs.Get(rs)+c.Regs.Get(rt))
	case 0x22: // sub
		c.Regs.Set(rd, c.Regs.Get(rs)-c.Regs.Get(rt))
	case 0x24: // and
		c.Regs.Set(rd, c.Regs.Get(rs)&c.Regs.Get(rt))
	case 0x25: // or
		c.Regs.Set(rd, c.Regs.Get(rs)|c.Regs.Get(rt))
	default:
		return ErrInvalidFunct(funct)
	}
	return nil
}

func (c *CPU) executeJ(instr uint32) error {
	address := codec.Address(instr)

	switch codec.Opcode(instr) {
	case codec.OpJ:
		c.Regs.PC = address
	case codec.OpJal:
		c.Regs.Set(31, c.Regs.PC)
		c.Regs.PC = address
	}
	return nil
}

func (c *CPU) executeI(instr uint32, opcode uint8) error {
	rs := codec.Rs(instr)
	rt := codec.Rt(instr)
	imm := codec.Immediate(instr)
	signedImm := uint32(int32(int16(imm)))

	switch opcode {
	case 0x08: // addi
		c.Regs.Set(rt, c.Regs.Get(rs)+signedImm)
	case 0x09: // addiu
		c.Regs.Set(rt, c.Regs.Get(rs)+signedImm)
	case 0x23: // lw
		v, err := c.Mem.ReadWord(c.Regs.Get(rs) + signedImm)
		if err != nil {
			return err
		}
		c.Regs.Set(rt, v)
	case 0x2B: // sw — preserved deviation: the reference implementation's
		// call site passes (rs+imm) as the value and rt as the address,
		// the reverse of the canonical value/address roles.
		return c.Mem.WriteWord(c.Regs.Get(rs)+signedImm, c.Regs.Get(rt))
	case 0x0F: // lui
		c.Regs.Set(rt, uint32(imm)<<16)
	case 0x0D: // ori
		c.Regs.Set(rt, c.Regs.Get(rs)|uint32(imm))
	case 0x0E: // xori assembles here, but this opcode executes as NOR
		c.Regs.Set(rt, ^(c.Regs.Get(rs) | uint32(imm)))
	case 0x0A: // slti
		if int32(c.Regs.Get(rs)) < int32(signedImm) {
			c.Regs.Set(rt, 1)
		} else {
			c.Regs.Set(rt, 0)
		}
	case 0x04: // beq
		if c.Regs.Get(rs) == c.Regs.Get(rt) {
			c.Regs.PC += signedImm << 2
		}
	case 0x05: // bne
		if c.Regs.Get(rs) != c.Regs.Get(rt) {
			c.Regs.PC += signedImm << 2
		}
	case 0x07: // bgtz
		if int32(c.Regs.Get(rs)) > 0 {
			c.Regs.PC += signedImm << 2
		}
	default:
		return ErrInvalidOpcode(opcode)
	}
	return nil
}

// Syscall codes, read from $v0 ($2).
const (
	SyscallPrintInt    = 1
	SyscallPrintString = 4
	SyscallReadInt     = 5
	SyscallReadString  = 8
	SyscallSbrk        = 9
	SyscallExit        = 10
	SyscallPrintChar   = 11
	SyscallReadChar    = 12
)

func (c *CPU) executeSyscall() error {
	code := c.Regs.Get(2) // $v0

	switch code {
	case SyscallPrintInt:
		return c.Host.WriteString(strconv.FormatInt(int64(int32(c.Regs.Get(4))), 10))
	case SyscallPrintString:
		return c.Host.WriteString(c.Mem.ReadString(c.Regs.Get(4)))
	case SyscallReadInt:
		v, err := c.Host.ReadInt()
		if err != nil {
			return err
		}
		c.Regs.Set(2, uint32(v))
	case SyscallReadString:
		// Unimplemented in the reference emulator; preserved as a no-op.
	case SyscallSbrk:
		// Unimplemented in the reference emulator; preserved as a no-op.
	case SyscallExit:
		return &ErrExit{Code: c.Regs.Get(4)}
	case SyscallPrintChar:
		return c.Host.WriteByte(byte(c.Regs.Get(4)))
	case SyscallReadChar:
		// Unimplemented in the reference emulator; preserved as a no-op.
	default:
		return ErrInvalidSyscall(code)
	}
	return nil
}
