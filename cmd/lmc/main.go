package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/trincot/lmc/cpu"
	"github.com/trincot/lmc/emulator"
	"github.com/trincot/lmc/io"
)

func main() {
	var compile string
	var policy string
	var listing bool
	var input string
	var output string
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".lmc file to assemble")
	flag.StringVar(&policy, "p", "", "policy script (.star) selecting a machine variant")
	flag.BoolVar(&listing, "d", false, "Print the disassembled listing, do not execute")
	flag.StringVar(&input, "i", "-", "Numeric input stream")
	flag.StringVar(&output, "o", "-", "Output stream")
	flag.IntVar(&limit, "l", 0, "Step limit (0 = unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}
	if len(compile) == 0 {
		log.Fatalf("%v: no source file given (-c)", os.Args[0])
	}

	source, err := os.ReadFile(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if len(policy) != 0 {
		script, err := os.ReadFile(policy)
		if err != nil {
			log.Fatalf("%v: %v", policy, err)
		}
		emu.Cpu.Policy, err = cpu.PolicyFromScript(policy, script)
		if err != nil {
			log.Fatalf("%v: %v", policy, err)
		}
	}

	if err = emu.Load(string(source)); err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if listing {
		for _, line := range emu.Listing() {
			fmt.Println(line)
		}
		return
	}

	tape := &io.Tape{}

	if input == "-" {
		tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		tape.Input = inf
	}

	if output == "-" {
		tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		tape.Output = ouf
	}

	emu.Cpu.In = tape
	emu.Cpu.Out = tape

	if _, err = emu.Run(limit); err != nil {
		log.Fatal(err)
	}
	if tape.Err != nil {
		log.Fatal(tape.Err)
	}
	if emu.Cpu.State == cpu.STATE_STALLED {
		log.Fatalf("%v: out of input", compile)
	}
}
