// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

// loadProgram reads an LS-8 binary text program.
func loadProgram(path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open program")
	}
	defer inf.Close()

	prog, err = cpu.Load(inf)
	if err != nil {
		return nil, errors.Wrapf(err, "%v", path)
	}

	return
}

// compileProgram assembles an LS-8 assembly source.
func compileProgram(emu *emulator.Emulator, path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open source")
	}
	defer inf.Close()

	prog, err = emu.Assembler().Parse(inf)
	if err != nil {
		return nil, errors.Wrapf(err, "%v", path)
	}

	return
}

func main() {
	var compile string
	var save bool
	var output string
	var trace bool
	var color bool
	var strict bool
	var defines bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.BoolVar(&save, "s", false, "Save compiled binary listing, do not execute")
	flag.StringVar(&output, "o", "-", "Binary listing output")
	flag.BoolVar(&trace, "t", false, "Trace every instruction to stderr")
	flag.BoolVar(&color, "color", term.IsTerminal(int(os.Stderr.Fd())), "Highlight register changes in the trace")
	flag.BoolVar(&strict, "strict", false, "Unknown opcodes are fatal")
	flag.BoolVar(&defines, "D", false, "List the assembler predefines, and exit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if defines {
		all := maps.Collect(emu.Defines())
		for _, key := range slices.Sorted(maps.Keys(all)) {
			fmt.Printf("%v = %v\n", key, all[key])
		}
		return
	}

	var prog *cpu.Program
	var err error

	switch {
	case len(compile) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}
		prog, err = compileProgram(emu, compile)
	case flag.NArg() == 1:
		prog, err = loadProgram(flag.Arg(0))
	default:
		log.Fatalf("usage: %v [options] (-c file.asm | file.ls8)", os.Args[0])
	}
	if err != nil {
		log.Fatal(err)
	}

	if save {
		ouf := os.Stdout
		if output != "-" {
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}
		err = prog.WriteListing(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	emu.Program = prog
	emu.Strict = strict
	emu.Tape.Output = os.Stdout
	if trace {
		emu.Trace = os.Stderr
		emu.Color = color
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		if verbose {
			log.Print(emu.Cpu.String())
		}
		log.Fatal(err)
	}
}
