// Package debugger provides a Starlark-scripted shell over a running
// emulator, the way the teacher's assembler repurposes go.starlark.net for
// compile-time $(...) expression evaluation. Here the same engine drives
// interactive inspection and control instead: scripts see the register
// file, memory and a step() builtin as globals.
package debugger

import (
	"fmt"
	"io"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mipspp/emulator"
)

// Debugger runs Starlark scripts against a live Emulator.
type Debugger struct {
	Emulator *emulator.Emulator
	Output   io.Writer
}

// New creates a Debugger bound to emu, writing script print() output to
// out.
func New(emu *emulator.Emulator, out io.Writer) *Debugger {
	return &Debugger{Emulator: emu, Output: out}
}

// Eval runs a single Starlark script against the emulator's current state,
// exposing "regs" (a list of the 32 general registers), "pc", "hi", "lo",
// "mem_word(addr)" and "step()" as globals.
func (d *Debugger) Eval(name, script string) error {
	thread := &starlark.Thread{
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(d.Output, msg)
		},
	}

	regs := starlark.NewList(nil)
	for i := uint8(0); i < 32; i++ {
		regs.Append(starlark.MakeUint64(uint64(d.Emulator.CPU.Regs.Get(i))))
	}

	globals := starlark.StringDict{
		"regs": regs,
		"pc":   starlark.MakeUint64(uint64(d.Emulator.CPU.Regs.PC)),
		"hi":   starlark.MakeUint64(uint64(d.Emulator.CPU.Regs.HI)),
		"lo":   starlark.MakeUint64(uint64(d.Emulator.CPU.Regs.LO)),
		"mem_word": starlark.NewBuiltin("mem_word", func(
			thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
		) (starlark.Value, error) {
			var addr int
			if err := starlark.UnpackArgs("mem_word", args, kwargs, "addr", &addr); err != nil {
				return nil, err
			}
			v, err := d.Emulator.Memory.ReadWord(uint32(addr))
			if err != nil {
				return nil, err
			}
			return starlark.MakeUint64(uint64(v)), nil
		}),
		"step": starlark.NewBuiltin("step", func(
			thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
		) (starlark.Value, error) {
			if err := d.Emulator.Step(); err != nil {
				return nil, err
			}
			return starlark.None, nil
		}),
		"state": starlark.NewBuiltin("state", func(
			thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple,
		) (starlark.Value, error) {
			return starlark.String(d.Emulator.State(false)), nil
		}),
	}

	opts := syntax.FileOptions{}
	_, err := starlark.ExecFileOptions(&opts, thread, name, script, globals)
	return err
}
