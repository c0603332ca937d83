package mips

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/mipspp/codec"
)

const (
	minImmediate = -32768
	maxImmediate = 32767
)

// Symbol is a label collected during the assembler's first pass. Address
// is the SOURCE LINE NUMBER the label appeared on, not a byte offset — the
// reference assembler never resolves labels against the second pass's byte
// stream, and jumps/branches must be written with literal numeric targets.
// This toolchain preserves that behavior rather than "fixing" it (see
// DESIGN.md, OQ-1).
type Symbol struct {
	Name    string
	Address int
}

// Assembler turns MIPS++ assembly source into a big-endian instruction
// stream, in two passes: the first collects labels, the second tokenizes,
// validates and encodes every instruction line.
type Assembler struct {
	Lines  []string
	Labels []Symbol
	Binary []byte
}

// LoadFile reads filename's lines into the assembler.
func (a *Assembler) LoadFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		a.Lines = append(a.Lines, scanner.Text())
	}
	return scanner.Err()
}

func isComment(line string) bool {
	return strings.Contains(line, "#")
}

func isLabel(line string) bool {
	return strings.Contains(line, ":")
}

// FirstPass collects every label and the source line it appears on.
func (a *Assembler) FirstPass() {
	a.Labels = a.Labels[:0]
	for i, raw := range a.Lines {
		line := strings.TrimSpace(raw)
		if line == "" || isComment(line) {
			continue
		}
		if isLabel(line) {
			name := line[:strings.Index(line, ":")]
			a.Labels = append(a.Labels, Symbol{Name: name, Address: i})
		}
	}
}

func tokenize(line string) []string {
	fields := strings.SplitN(line, " ", 2)
	var tokens []string
	tokens = append(tokens, strings.TrimSpace(fields[0]))
	if len(fields) == 2 {
		for _, part := range strings.Split(fields[1], ",") {
			tokens = append(tokens, strings.TrimSpace(part))
		}
	}
	return tokens
}

func appendWord(bin []byte, w uint32) []byte {
	return append(bin, byte(w>>24), byte(w>>16), byte(w>>8), byte(w))
}

// SecondPass tokenizes, validates and encodes every non-empty,
// non-comment, non-label line into Binary.
func (a *Assembler) SecondPass() error {
	a.Binary = a.Binary[:0]

	for i, raw := range a.Lines {
		line := strings.TrimSpace(raw)
		if line == "" || isComment(line) || isLabel(line) {
			continue
		}

		tokens := tokenize(line)
		mnemonic := tokens[0]

		var word uint32
		var err error

		switch {
		case IsRMnemonic(mnemonic):
			word, err = assembleR(mnemonic, tokens)
		case IsIMnemonic(mnemonic):
			word, err = assembleI(mnemonic, tokens)
		case IsJMnemonic(mnemonic):
			word, err = assembleJ(mnemonic, tokens)
		default:
			err = &ErrSyntax{LineNo: i, Line: line, Err: ErrUnknownMnemonic(mnemonic)}
		}
		if err != nil {
			if _, ok := err.(*ErrSyntax); ok {
				return err
			}
			return &ErrSyntax{LineNo: i, Line: line, Err: err}
		}

		a.Binary = appendWord(a.Binary, word)
	}

	return nil
}

// ErrUnknownMnemonic indicates a token that names no known instruction.
type ErrUnknownMnemonic string

func (e ErrUnknownMnemonic) Error() string {
	return f("unknown mnemonic '%s'", string(e))
}

func assembleR(mnemonic string, tokens []string) (uint32, error) {
	// syscall takes no register operands and is encoded with OpSyscall as
	// the opcode field (not RType/0x00 with funct 0x0C), matching how
	// CPU.execute dispatches it — see DESIGN.md, OQ-7.
	if mnemonic == "syscall" {
		if len(tokens) != 1 {
			return 0, &ErrArgCount{Mnemonic: mnemonic, Want: 1, Got: len(tokens)}
		}
		return codec.CreateR(codec.OpSyscall, 0, 0, 0, 0, RFunct[mnemonic]), nil
	}

	if len(tokens) != 4 {
		return 0, &ErrArgCount{Mnemonic: mnemonic, Want: 4, Got: len(tokens)}
	}
	rd, err := ParseRegister(tokens[1])
	if err != nil {
		return 0, err
	}
	rs, err := ParseRegister(tokens[2])
	if err != nil {
		return 0, err
	}
	rt, err := ParseRegister(tokens[3])
	if err != nil {
		return 0, err
	}
	funct := RFunct[mnemonic]
	return codec.CreateR(codec.RType, rs, rt, rd, 0, funct), nil
}

func assembleI(mnemonic string, tokens []string) (uint32, error) {
	if len(tokens) != 4 {
		return 0, &ErrArgCount{Mnemonic: mnemonic, Want: 4, Got: len(tokens)}
	}
	rt, err := ParseRegister(tokens[1])
	if err != nil {
		return 0, err
	}
	rs, err := ParseRegister(tokens[2])
	if err != nil {
		return 0, err
	}
	imm, err := parseImmediate(tokens[3])
	if err != nil {
		return 0, err
	}
	opcode := IOpcode[mnemonic]
	return codec.CreateI(opcode, rs, rt, uint16(imm)), nil
}

func assembleJ(mnemonic string, tokens []string) (uint32, error) {
	if len(tokens) != 2 {
		return 0, &ErrArgCount{Mnemonic: mnemonic, Want: 2, Got: len(tokens)}
	}
	addr, err := strconv.ParseUint(tokens[1], 10, 32)
	if err != nil {
		return 0, ErrInvalidAddress(tokens[1])
	}
	opcode := JOpcode[mnemonic]
	return codec.CreateJ(opcode, uint32(addr)), nil
}

// ErrInvalidAddress indicates a J-type target that isn't a plain decimal
// literal. Labels are never resolved to jump targets (see OQ-1).
type ErrInvalidAddress string

func (e ErrInvalidAddress) Error() string {
	return f("invalid jump address '%s'", string(e))
}

// ErrInvalidImmediate indicates an out-of-range or malformed immediate.
type ErrInvalidImmediate string

func (e ErrInvalidImmediate) Error() string {
	return f("invalid immediate '%s'", string(e))
}

func parseImmediate(token string) (int32, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, ErrInvalidImmediate(token)
	}
	if v < minImmediate || v > maxImmediate {
		return 0, ErrInvalidImmediate(token)
	}
	return int32(v), nil
}

// Assemble loads, first-passes and second-passes filename, returning the
// assembled big-endian instruction stream.
func (a *Assembler) Assemble(filename string) ([]byte, error) {
	if err := a.LoadFile(filename); err != nil {
		return nil, err
	}
	a.FirstPass()
	if err := a.SecondPass(); err != nil {
		return nil, err
	}
	return a.Binary, nil
}
