package bfvm

import (
	"os"
	"strings"
	"time"

	bf "nickandperla.net/bfvm/brainfuck"
)

// COMMANDS is the full instruction character set. Everything else in a
// source file is a comment.
const COMMANDS = ".,[]<>+-"

// Clean strips every non-command character from source, preserving the
// relative order of what remains.
func Clean(source string) string {
	var program strings.Builder
	for _, r := range source {
		if strings.ContainsRune(COMMANDS, r) {
			program.WriteRune(r)
		}
	}
	return program.String()
}

// RunStats is a snapshot of what a finished (or faulted) run did. The
// history layer persists these; embedders can just inspect them.
type RunStats struct {
	InstructionCount uint
	OverflowCount    uint
	UnderflowCount   uint
	FinalCellCount   uint
	Duration         time.Duration
}

// RunProgram cleans source, loads it into a fresh machine wired to the given
// collaborators, and drives it to completion. Stats are returned even when
// the run faulted, alongside the fatal error.
func RunProgram(source string, config *bf.MachineConfig, read func() (byte, error), write func(byte) error) (*RunStats, error) {
	machine := bf.NewMachine(config)
	machine.ReadChar = read
	machine.WriteChar = write

	if ok, err := machine.LoadProgram(bf.OPS(Clean(source)).ToOPs()); !ok {
		return nil, err
	}

	started := time.Now()
	ok, err := machine.Run()

	stats := &RunStats{
		InstructionCount: machine.InstructionCount,
		OverflowCount:    machine.Memory.OverflowCount,
		UnderflowCount:   machine.Memory.UnderflowCount,
		FinalCellCount:   uint(len(machine.Memory.Cells)),
		Duration:         time.Since(started),
	}

	if !ok {
		return stats, err
	}

	return stats, nil
}

// Run executes source against the process stdin/stdout with raw-terminal
// reads when stdin is a tty. This is the whole-program entry point the CLI
// uses.
func Run(source string) error {
	terminal := NewTerminal(os.Stdin)
	defer terminal.Restore()

	_, err := RunProgram(source, nil, terminal.ReadChar, func(b byte) error {
		_, err := os.Stdout.Write([]byte{b})
		return err
	})
	return err
}
