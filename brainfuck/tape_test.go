package brainfuck

import (
	"testing"
)

func TestNewTape(t *testing.T) {
	tape, err := NewTape(OPS("[-]").ToOPs())
	if err != nil {
		t.Fatalf("Unexpected failure calling NewTape: %v", err)
	}
	if tape == nil {
		t.Fatalf("NewTape returned nil")
	}
}

func TestNewTapeRejectsUnmatchedBrackets(t *testing.T) {
	if _, err := NewTape(OPS("[-").ToOPs()); err == nil {
		t.Errorf("Unexpected success calling NewTape with an unmatched OP_WHILE")
	}
}

func TestTapeAdvance(t *testing.T) {
	tape, _ := NewTape(OPS("[-]").ToOPs())

	if !tape.Advance() {
		t.Errorf("Advance failed with instructions remaining")
	}

	if tape.InstructionPointer != 1 {
		t.Errorf("Advance apparently didn't increment the InstructionPointer [%d]", tape.InstructionPointer)
	}

	tape.InstructionPointer = 2

	if tape.Advance() {
		t.Errorf("Advance succeeded past the last instruction")
	}
}

func TestGetCurrentInstruction(t *testing.T) {
	tape, _ := NewTape(OPS("[-]").ToOPs())

	if ok, op, err := tape.GetCurrentInstruction(); !ok {
		t.Errorf("GetCurrentInstruction returned !ok with OP |%v| and err |%v|", op, err)
	} else if op != OP_WHILE {
		t.Errorf("GetCurrentInstruction returned unexpected OP |%v|, expected OP |[|", op)
	}

	tape.InstructionPointer = 10

	if ok, op, err := tape.GetCurrentInstruction(); ok {
		t.Errorf("GetCurrentInstruction returned ok with OP |%v| and err |%v| but expected 'out of bounds'", op, err)
	} else if err == nil {
		t.Errorf("GetCurrentInstruction returned !ok with an undefined err but expected 'out of bounds'")
	}
}

func TestJumpToPartner(t *testing.T) {
	tape, _ := NewTape(OPS("[->+<]").ToOPs())

	if ok, err := tape.JumpToPartner(); !ok {
		t.Fatalf("Unexpected failure calling Tape.JumpToPartner(): %v", err)
	}

	if tape.InstructionPointer != 5 {
		t.Errorf("InstructionPointer [%d] after jump from [0], expected [5]", tape.InstructionPointer)
	}

	if ok, err := tape.JumpToPartner(); !ok {
		t.Fatalf("Unexpected failure jumping back: %v", err)
	}

	if tape.InstructionPointer != 0 {
		t.Errorf("InstructionPointer [%d] after jumping back, expected [0]", tape.InstructionPointer)
	}

	tape.InstructionPointer = 1

	if ok, err := tape.JumpToPartner(); ok {
		t.Errorf("Unexpected success jumping from a non-bracket position")
	} else if err.Error() != "InstructionPointer [1] has no brace pairing (Instruction length: [6])" {
		t.Errorf("Error string doesn't match: %v", err)
	}
}

func TestTapeReset(t *testing.T) {
	tape, _ := NewTape(OPS("+-").ToOPs())
	tape.Advance()
	tape.Reset()

	if tape.InstructionPointer != 0 {
		t.Errorf("InstructionPointer [%d] after Reset, expected [0]", tape.InstructionPointer)
	}
}
