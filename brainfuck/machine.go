package brainfuck

import (
	"fmt"
)

var ErrMaxInstructionExecutionCountReached error = fmt.Errorf("Instruction execution count limit reached")

type MachineConfig struct {
	// CellCount is the initial length of the data tape. Zero means
	// DEFAULT_CELL_COUNT.
	CellCount uint `toml:"cell_count"`
	// MaxInstructionExecutionCount bounds the number of executed
	// instructions. Zero means unlimited; a diverging program then runs
	// forever, which is the conventional contract for this instruction set.
	MaxInstructionExecutionCount uint `toml:"max_instruction_execution_count"`
}

// Machine wires a Tape and a Memory together with the two I/O collaborators.
// Single-threaded; the only suspension points are the blocking ReadChar and
// WriteChar calls.
type Machine struct {
	Tape             *Tape
	Memory           *Memory
	Config           *MachineConfig
	InstructionCount uint

	// ReadChar blocks until one raw byte is available. WriteChar emits one
	// byte. An error from either is fatal to the run.
	ReadChar  func() (byte, error)
	WriteChar func(byte) error
}

func NewMachine(mc *MachineConfig) *Machine {
	if mc == nil {
		mc = &MachineConfig{}
	}
	return &Machine{
		Memory: NewMemory(mc.CellCount),
		Config: mc,
	}
}

func (m *Machine) Reset() {
	if m.Tape != nil {
		m.Tape.Reset()
	}
	m.Memory.Reset()
	m.InstructionCount = 0
}

// LoadProgram builds the brace map for instructions and mounts them on the
// machine. Structural errors (unmatched brackets) surface here, before
// anything executes.
func (m *Machine) LoadProgram(instructions []OP) (bool, error) {
	tape, err := NewTape(instructions)
	if err != nil {
		return false, err
	}
	m.Tape = tape
	m.InstructionCount = 0
	return true, nil
}

// LoadMemory seeds the leading cells of the data tape. Useful for embedders
// and tests that want a machine mid-state without running setup programs.
func (m *Machine) LoadMemory(input []uint8) (bool, error) {
	if len(input) > len(m.Memory.Cells) {
		return false, fmt.Errorf("Failed to load memory. Input length [%d] is greater than memory capacity [%d]", len(input), len(m.Memory.Cells))
	}

	for i, val := range input {
		m.Memory.Cells[i] = val
	}
	return true, nil
}

func (m *Machine) ReadMemory(count uint) (bool, []uint8, error) {
	if count > uint(len(m.Memory.Cells)) {
		return false, []uint8{}, fmt.Errorf("Failed to read memory. Read count [%d] is greater than memory capacity [%d]", count, len(m.Memory.Cells))
	}

	return true, m.Memory.Cells[0:count], nil
}

// Run drives the dispatch loop until the tape is exhausted or a fatal error
// occurs. Arithmetic wraps never halt the loop; pointer underflow, I/O
// failure and the optional step budget do.
func (m *Machine) Run() (bool, error) {
	if m.Tape == nil {
		return false, fmt.Errorf("No program loaded")
	}

	if len(m.Tape.Instructions) == 0 {
		return true, nil
	}

	var exception error

	halt := false
	for !halt {
		_, op, err := m.Tape.GetCurrentInstruction()
		if err != nil {
			return false, err
		}
		if ok, err := op.Execute(m); !ok {
			halt = true
			exception = err
		}
		m.InstructionCount = m.InstructionCount + 1
		if !halt && m.Config.MaxInstructionExecutionCount > 0 && m.InstructionCount >= m.Config.MaxInstructionExecutionCount {
			halt = true
			exception = ErrMaxInstructionExecutionCountReached
		}
	}

	if exception != nil {
		return false, exception
	}

	return true, nil
}
