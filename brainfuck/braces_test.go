package brainfuck

import (
	"testing"
)

func TestNewBraceMap(t *testing.T) {
	braces, err := NewBraceMap(OPS("[[][]]").ToOPs())
	if err != nil {
		t.Fatalf("Unexpected failure building brace map: %v", err)
	}

	expected := map[int]int{0: 5, 5: 0, 1: 2, 2: 1, 3: 4, 4: 3}
	if len(braces) != len(expected) {
		t.Errorf("Brace map has [%d] entries, expected [%d]", len(braces), len(expected))
	}

	for k, v := range expected {
		if braces[k] != v {
			t.Errorf("Brace map pairs [%d] with [%d], expected [%d]", k, braces[k], v)
		}
	}
}

func TestBraceMapIsInvolution(t *testing.T) {
	braces, err := NewBraceMap(OPS("+[>[-]<[[]]]").ToOPs())
	if err != nil {
		t.Fatalf("Unexpected failure building brace map: %v", err)
	}

	for k := range braces {
		if braces[braces[k]] != k {
			t.Errorf("Brace map is not an involution at [%d]: partner [%d] pairs back to [%d]", k, braces[k], braces[braces[k]])
		}
	}
}

func TestBraceMapIgnoresNonBrackets(t *testing.T) {
	braces, err := NewBraceMap(OPS("+-<>.,").ToOPs())
	if err != nil {
		t.Fatalf("Unexpected failure building brace map: %v", err)
	}

	if len(braces) != 0 {
		t.Errorf("Brace map has [%d] entries for a bracketless program, expected [0]", len(braces))
	}
}

func TestUnmatchedWhileEnd(t *testing.T) {
	if _, err := NewBraceMap(OPS("+]").ToOPs()); err == nil {
		t.Errorf("Unexpected success building brace map with an unmatched OP_WHILE_END")
	} else if err.Error() != "Unmatched OP_WHILE_END at instruction [1]" {
		t.Errorf("Error string doesn't match: %v", err)
	}
}

func TestUnmatchedWhile(t *testing.T) {
	if _, err := NewBraceMap(OPS("[[]").ToOPs()); err == nil {
		t.Errorf("Unexpected success building brace map with an unmatched OP_WHILE")
	} else if err.Error() != "Unmatched OP_WHILE at instruction [0]" {
		t.Errorf("Error string doesn't match: %v", err)
	}
}

func TestPartner(t *testing.T) {
	braces, err := NewBraceMap(OPS("[-]").ToOPs())
	if err != nil {
		t.Fatalf("Unexpected failure building brace map: %v", err)
	}

	if partner, found := braces.Partner(0); !found || partner != 2 {
		t.Errorf("Partner(0) gave [%d, %v], expected [2, true]", partner, found)
	}

	if _, found := braces.Partner(1); found {
		t.Errorf("Partner(1) found a pairing for a non-bracket position")
	}
}
