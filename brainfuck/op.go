package brainfuck

import (
	"fmt"
)

// The OPs for Brainfuck. The canonical eight single-character commands plus
// NO_OP, which stands in for any byte that isn't a command. Programs are
// expected to arrive pre-filtered, so NO_OP is mostly a defensive path.

type OP string
type OPS string

const (
	OP_POINTER_LEFT  = OP("<")
	OP_POINTER_RIGHT = OP(">")
	OP_INC           = OP("+")
	OP_DEC           = OP("-")
	OP_WRITE         = OP(".")
	OP_READ          = OP(",")
	OP_WHILE         = OP("[")
	OP_WHILE_END     = OP("]")
	NO_OP            = OP("#")
)

var OP_SET [9]OP = [...]OP{
	OP_POINTER_LEFT,
	OP_POINTER_RIGHT,
	OP_INC,
	OP_DEC,
	OP_WRITE,
	OP_READ,
	OP_WHILE,
	OP_WHILE_END,
	NO_OP,
}

func (o OPS) ToOPs() []OP {
	ops := []OP{}
	for _, r := range o {
		ops = append(ops, OP(r))
	}
	return ops
}

// Execute runs a single OP against the machine's tape and memory. The
// returned bool is false when the tape has been exhausted (normal halt); a
// non-nil error is a fatal runtime fault and execution must stop.
func (o OP) Execute(m *Machine) (bool, error) {
	tape := m.Tape
	memory := m.Memory

	switch o {
	case OP_INC:
		memory.Increment()
	case OP_DEC:
		memory.Decrement()
	case OP_POINTER_LEFT:
		if ok, err := memory.MovePointerLeft(); !ok {
			return false, fmt.Errorf("OP_POINTER_LEFT at tape index [%d] failed to move memory pointer left. %v", tape.InstructionPointer, err)
		}
	case OP_POINTER_RIGHT:
		memory.MovePointerRight()
	case OP_WRITE:
		if m.WriteChar == nil {
			return false, fmt.Errorf("OP_WRITE at tape index [%d] failed. No WriteChar collaborator configured", tape.InstructionPointer)
		}
		if err := m.WriteChar(memory.GetCurrentCell()); err != nil {
			return false, fmt.Errorf("OP_WRITE at tape index [%d] failed to emit byte. %v", tape.InstructionPointer, err)
		}
	case OP_READ:
		if m.ReadChar == nil {
			return false, fmt.Errorf("OP_READ at tape index [%d] failed. No ReadChar collaborator configured", tape.InstructionPointer)
		}
		if b, err := m.ReadChar(); err != nil {
			return false, fmt.Errorf("OP_READ at tape index [%d] failed to read byte. %v", tape.InstructionPointer, err)
		} else {
			memory.SetCurrentCell(b)
		}
	case OP_WHILE:
		if memory.GetCurrentCell() == 0 {
			if ok, err := tape.JumpToPartner(); !ok {
				return false, fmt.Errorf("OP_WHILE at tape index [%d] failed to jump to matching OP_WHILE_END. %v", tape.InstructionPointer, err)
			}
		}
	case OP_WHILE_END:
		if memory.GetCurrentCell() != 0 {
			if ok, err := tape.JumpToPartner(); !ok {
				return false, fmt.Errorf("OP_WHILE_END at tape index [%d] failed to jump to matching OP_WHILE. %v", tape.InstructionPointer, err)
			}
		}
	default:
		// Not a command. Treated as a comment byte.
	}

	// The universal advance. Jumps above land on the partner bracket and
	// execution resumes at partner+1, never at the partner itself.
	if !tape.Advance() {
		return false, nil
	}

	return true, nil
}
