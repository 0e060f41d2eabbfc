package brainfuck

import (
	"fmt"
)

// Tape is the instruction stream plus the single piece of control state the
// interpreter carries: the instruction pointer. Bracket pairings are
// precomputed into Braces at construction so loop jumps are O(1).
type Tape struct {
	Instructions       []OP
	InstructionPointer int
	Braces             BraceMap
}

func NewTape(instructions []OP) (*Tape, error) {
	braces, err := NewBraceMap(instructions)
	if err != nil {
		return nil, err
	}
	return &Tape{
		Instructions:       instructions,
		InstructionPointer: 0,
		Braces:             braces,
	}, nil
}

func (t *Tape) Reset() {
	t.InstructionPointer = 0
}

// Advance moves to the next instruction. Returns false when no instruction
// remains, which is the normal halt condition.
func (t *Tape) Advance() bool {
	if t.InBounds(t.InstructionPointer + 1) {
		t.InstructionPointer = t.InstructionPointer + 1
		return true
	}
	return false
}

func (t *Tape) GetCurrentInstruction() (bool, OP, error) {
	if !t.InBounds(t.InstructionPointer) {
		return false, NO_OP, fmt.Errorf("InstructionPointer [%d] out of bounds (Instruction length: [%d])", t.InstructionPointer, len(t.Instructions))
	}
	return true, t.Instructions[t.InstructionPointer], nil
}

func (t *Tape) InBounds(new_val int) bool {
	return new_val >= 0 && new_val <= len(t.Instructions)-1
}

// JumpToPartner moves the instruction pointer onto the bracket paired with
// the current one. The caller still advances afterward, so execution resumes
// just past the partner.
func (t *Tape) JumpToPartner() (bool, error) {
	partner, found := t.Braces.Partner(t.InstructionPointer)
	if !found {
		return false, fmt.Errorf("InstructionPointer [%d] has no brace pairing (Instruction length: [%d])", t.InstructionPointer, len(t.Instructions))
	}
	t.InstructionPointer = partner
	return true, nil
}
