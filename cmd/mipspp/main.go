package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ezrec/mipspp/debugger"
	"github.com/ezrec/mipspp/emulator"
	"github.com/ezrec/mipspp/host"
	"github.com/ezrec/mipspp/mips"
	"github.com/ezrec/mipspp/objfile"
	"github.com/ezrec/mipspp/translate"
)

const version = "0.1.0"

func usage() {
	fmt.Println(translate.From("Usage: mipspp [options] <filename> ..."))
	fmt.Println(translate.From("Options:"))
	fmt.Println(translate.From("  -h, --help\t\t\tPrints this help message"))
	fmt.Println(translate.From("  -c, --compile\t\t\tCompiles the given file"))
	fmt.Println(translate.From("  -r, --run\t\t\tRuns the given file"))
	fmt.Println(translate.From("  -d, --debug\t\t\tDebugs the given file"))
	fmt.Println(translate.From("  -v, --version\t\t\tPrints the version"))
	fmt.Println()
	fmt.Println(translate.From("Examples:"))
	fmt.Println(translate.From("  Assembling a file:"))
	fmt.Println(translate.From("    mipspp -c <filename> <output>"))
	fmt.Println()
	fmt.Println(translate.From("  Running a MIPS executable:"))
	fmt.Println(translate.From("    mipspp -r <filename>"))
	fmt.Println()
	fmt.Println(translate.From("  Debugging a MIPS executable:"))
	fmt.Println(translate.From("    mipspp -d <filename>"))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 0
	}

	fs := flag.NewFlagSet("mipspp", flag.ContinueOnError)
	help := fs.Bool("h", false, "")
	helpLong := fs.Bool("help", false, "")
	ver := fs.Bool("v", false, "")
	verLong := fs.Bool("version", false, "")
	compile := fs.Bool("c", false, "")
	compileLong := fs.Bool("compile", false, "")
	runFlag := fs.Bool("r", false, "")
	runLong := fs.Bool("run", false, "")
	debug := fs.Bool("d", false, "")
	debugLong := fs.Bool("debug", false, "")
	fs.Usage = usage

	if err := fs.Parse(args); err != nil {
		return 1
	}

	switch {
	case *help || *helpLong:
		usage()
		return 0
	case *ver || *verLong:
		fmt.Println(translate.From("MIPS++ version %s", version))
		return 0
	case *runFlag || *runLong:
		return cmdRun(fs.Args())
	case *debug || *debugLong:
		return cmdDebug(fs.Args())
	case *compile || *compileLong:
		return cmdCompile(fs.Args())
	default:
		fmt.Println(translate.From("Error: Invalid option"))
		return 1
	}
}

func cmdRun(rest []string) int {
	if len(rest) < 1 {
		fmt.Println(translate.From("Error: No file specified"))
		return 1
	}

	emu := emulator.New(host.New(os.Stdin, os.Stdout))
	if err := emu.PrepareAndHold(rest[0]); err != nil {
		return reportErr(err)
	}
	if err := emu.Run(); err != nil {
		return reportErr(err)
	}
	return 0
}

func cmdDebug(rest []string) int {
	if len(rest) < 1 {
		fmt.Println(translate.From("Error: No file specified"))
		return 1
	}

	emu := emulator.New(host.New(os.Stdin, os.Stdout))
	if err := emu.PrepareAndHold(rest[0]); err != nil {
		return reportErr(err)
	}

	dbg := debugger.New(emu, os.Stdout)
	script := "print(state())\n"
	if err := dbg.Eval("debug", script); err != nil {
		return reportErr(err)
	}
	return 0
}

func cmdCompile(rest []string) int {
	if len(rest) < 2 {
		fmt.Println(translate.From("Error: No file specified"))
		return 1
	}

	a := &mips.Assembler{}
	bin, err := a.Assemble(rest[0])
	if err != nil {
		return reportErr(err)
	}

	obj := &objfile.Object{}
	obj.AddText(0, bin)
	if err := obj.Save(rest[1]); err != nil {
		return reportErr(err)
	}
	return 0
}

func reportErr(err error) int {
	var syn *mips.ErrSyntax
	var rt *mips.ErrRuntime
	switch {
	case errors.As(err, &syn):
		fmt.Println(translate.From("Syntax error: %v", err))
	case errors.As(err, &rt):
		fmt.Println(translate.From("Runtime error: %v", err))
	default:
		fmt.Println(translate.From("Error: %v", err))
	}
	return 1
}
