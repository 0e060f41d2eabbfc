package brainfuck

import (
	"fmt"
)

const BRACE_STACK_CAP = 10

// BraceMap pairs every OP_WHILE position with its matching OP_WHILE_END
// position, in both directions. Built once before execution; read-only
// afterward. For every key k, m[m[k]] == k.
type BraceMap map[int]int

// NewBraceMap scans the instruction sequence with a stack of pending
// OP_WHILE positions. Unmatched brackets in either direction are structural
// errors and nothing may execute.
func NewBraceMap(instructions []OP) (BraceMap, error) {
	stack := make([]int, 0, BRACE_STACK_CAP)
	braces := BraceMap{}

	for position, op := range instructions {
		switch op {
		case OP_WHILE:
			stack = append(stack, position)
		case OP_WHILE_END:
			if len(stack) == 0 {
				return nil, fmt.Errorf("Unmatched OP_WHILE_END at instruction [%d]", position)
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			braces[start] = position
			braces[position] = start
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("Unmatched OP_WHILE at instruction [%d]", stack[0])
	}

	return braces, nil
}

// Partner returns the position paired with index, if index holds a bracket.
func (b BraceMap) Partner(index int) (int, bool) {
	partner, found := b[index]
	return partner, found
}
