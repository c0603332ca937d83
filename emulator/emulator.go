// Package emulator binds a CPU, its Memory and a Host together and drives
// the fetch-decode-execute loop, the way the teacher's Emulator binds a
// Cpu, a Program and a set of IO channels.
package emulator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/xid"

	"github.com/ezrec/mipspp/host"
	"github.com/ezrec/mipspp/memory"
	"github.com/ezrec/mipspp/mips"
	"github.com/ezrec/mipspp/objfile"
)

// Emulator is a MIPS++ program loaded into a CPU, ready to run or debug.
type Emulator struct {
	RunID xid.ID

	CPU    *mips.CPU
	Memory *memory.Memory
	Host   *host.Host
}

// New creates an Emulator wired to a fresh Memory and the given Host.
func New(in *host.Host) *Emulator {
	mem := memory.New()
	return &Emulator{
		RunID:  xid.New(),
		CPU:    mips.NewCPU(mem, in),
		Memory: mem,
		Host:   in,
	}
}

// PrepareAndHold loads the object file at filename into memory, resets the
// CPU and points pc at the text segment. Unlike the reference
// implementation — whose prepare_and_hold only resets the CPU and leaves
// the load a no-op — this actually populates memory via objfile.LoadInto
// so Run has a program to execute.
func (e *Emulator) PrepareAndHold(filename string) error {
	obj, err := objfile.Load(filename)
	if err != nil {
		return err
	}
	if err := obj.LoadInto(e.Memory); err != nil {
		return err
	}
	e.CPU.Reset()
	e.CPU.Regs.PC = memory.TextOffset
	return nil
}

// Step performs one fetch-decode-execute cycle.
func (e *Emulator) Step() error {
	return e.CPU.Step()
}

// Run steps the CPU until an exit syscall or a fault. A fault is reported
// via a non-nil error; a clean exit syscall is not an error.
func (e *Emulator) Run() error {
	for {
		err := e.Step()
		if err == nil {
			continue
		}

		var exitErr *mips.ErrExit
		if errors.As(err, &exitErr) {
			return nil
		}
		return err
	}
}

// State renders the CPU's registers (and, if showMemory, the first bytes
// of memory) as a pair of tables, in the teacher's go-pretty style.
func (e *Emulator) State(showMemory bool) string {
	var out strings.Builder

	fmt.Fprintf(&out, "run %s\n", e.RunID.String())

	regTable := table.NewWriter()
	regTable.SetTitle("Registers")
	regTable.AppendHeader(table.Row{"PC", "HI", "LO"})
	regTable.AppendRow(table.Row{
		fmt.Sprintf("%#08x", e.CPU.Regs.PC),
		fmt.Sprintf("%#08x", e.CPU.Regs.HI),
		fmt.Sprintf("%#08x", e.CPU.Regs.LO),
	})
	out.WriteString(regTable.Render())
	out.WriteString("\n")

	gprTable := table.NewWriter()
	gprTable.SetTitle("General purpose registers")
	gprTable.AppendHeader(table.Row{"$0-7", "$8-15", "$16-23", "$24-31"})
	for row := 0; row < 8; row++ {
		var cells table.Row
		for col := 0; col < 4; col++ {
			r := uint8(col*8 + row)
			cells = append(cells, fmt.Sprintf("$%-2d %#08x", r, e.CPU.Regs.Get(r)))
		}
		gprTable.AppendRow(cells)
	}
	out.WriteString(gprTable.Render())

	if showMemory {
		out.WriteString("\n\nMemory:\n")
		e.Memory.Dump(&out)
	}

	return out.String()
}
