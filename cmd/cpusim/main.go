// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ezrec/cpusim/alu"
	"github.com/ezrec/cpusim/config"
	"github.com/ezrec/cpusim/cpu"
	"github.com/ezrec/cpusim/emulator"
	"github.com/ezrec/cpusim/memory"
)

// parseRange parses a "start:end" byte range.
func parseRange(text string) (start, end uint32, err error) {
	first, last, ok := strings.Cut(text, ":")
	if !ok {
		err = fmt.Errorf("%v: expected start:end", text)
		return
	}

	value, err := strconv.ParseUint(first, 0, 32)
	if err != nil {
		return
	}
	start = uint32(value)

	value, err = strconv.ParseUint(last, 0, 32)
	if err != nil {
		return
	}
	end = uint32(value)

	return
}

// dumpRow returns the dump row size that fits the terminal width.
func dumpRow(format memory.Format) uint32 {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return memory.ROW_SIZE
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		return memory.ROW_SIZE
	}

	// "0x00000000:" prefix, then " XXXXXXXX" or " cccc" per word.
	column := 9
	if format == memory.FORMAT_ASCII {
		column = 5
	}

	words := (width - 11) / column
	if words < 1 {
		words = 1
	}

	return uint32(words) * memory.WORD_SIZE
}

func main() {
	var machine string
	var binary string
	var steps int
	var unsigned bool
	var verbose bool
	var dump string
	var ascii bool
	var listing bool

	flag.StringVar(&machine, "c", "", ".star machine description to run")
	flag.StringVar(&binary, "b", "", "Raw little-endian program binary to run")
	flag.IntVar(&steps, "n", -1, "Step ceiling (0 for none)")
	flag.BoolVar(&unsigned, "u", false, "Unsigned comparison mode")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&dump, "d", "", "Memory range start:end to dump after the run")
	flag.BoolVar(&ascii, "a", false, "Dump memory as ASCII")
	flag.BoolVar(&listing, "l", false, "Print the program listing before running")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if (len(machine) == 0) == (len(binary) == 0) {
		log.Fatalf("%v: exactly one of -c or -b is required", os.Args[0])
	}

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	mach := &config.Machine{
		Config:    cpu.DefaultConfig(),
		Registers: map[int]int32{},
	}
	mach.Config.MaxSteps = emulator.MAX_STEPS

	if len(machine) != 0 {
		var err error
		mach, err = config.Load(machine, nil)
		if err != nil {
			log.Fatalf("%v: %v", machine, err)
		}
	} else {
		data, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		mach.Program, err = cpu.ParseBinary(mach.Config.CodeBase, data)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	}

	if steps >= 0 {
		mach.Config.MaxSteps = steps
	}
	if unsigned {
		mach.Config.Mode = alu.MODE_UNSIGNED
	}
	mach.Verbose = mach.Verbose || verbose

	if listing {
		fmt.Print(mach.Program.Listing())
	}

	emu, err := mach.Emulator()
	if err != nil {
		log.Fatal(err)
	}

	runErr := emu.Run()

	fmt.Print(emu.Cpu.String())

	if len(dump) != 0 {
		start, end, err := parseRange(dump)
		if err != nil {
			log.Fatalf("-d: %v", err)
		}

		format := memory.FORMAT_HEX
		if ascii {
			format = memory.FORMAT_ASCII
		}

		text, err := emu.DumpRows(start, end, format, dumpRow(format))
		if err != nil {
			log.Fatalf("-d: %v", err)
		}
		fmt.Print(text)
	}

	if runErr != nil {
		log.Fatal(runErr)
	}
}
