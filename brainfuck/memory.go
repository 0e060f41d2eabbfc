package brainfuck

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DEFAULT_CELL_COUNT is the initial size of the data tape. The tape grows to
// the right on demand, one cell at a time, so this is a floor, not a ceiling.
const DEFAULT_CELL_COUNT = 30000

var ErrPointerUnderflow error = fmt.Errorf("Failed to move memory pointer [0] left. Tape origin reached")

// Memory is the data tape: an ordered run of uint8 cells addressed by a
// single pointer. Cell values always sit in [0, 255]; increments and
// decrements wrap modulo 256 and are recorded as non-fatal diagnostics.
// The tape never shrinks.
type Memory struct {
	Cells          []uint8
	MemoryPointer  uint
	OverflowCount  uint
	UnderflowCount uint
}

func NewMemory(cell_count uint) *Memory {
	if cell_count == 0 {
		cell_count = DEFAULT_CELL_COUNT
	}
	return &Memory{
		Cells:         make([]uint8, cell_count),
		MemoryPointer: 0,
	}
}

// Reset rezeroes every cell and rewinds the pointer. The tape keeps whatever
// length it grew to.
func (m *Memory) Reset() {
	for i := 0; i < len(m.Cells); i++ {
		m.Cells[i] = 0
	}
	m.MemoryPointer = 0
	m.OverflowCount = 0
	m.UnderflowCount = 0
}

func (m *Memory) GetCurrentCell() uint8 {
	return m.Cells[m.MemoryPointer]
}

func (m *Memory) SetCurrentCell(value uint8) {
	m.Cells[m.MemoryPointer] = value
}

// Increment adds one to the current cell, wrapping 255 back to 0. A wrap is
// counted and logged but never stops execution.
func (m *Memory) Increment() {
	if m.Cells[m.MemoryPointer] == 255 {
		m.OverflowCount++
		logrus.WithFields(logrus.Fields{
			"cell":      m.MemoryPointer,
			"overflows": m.OverflowCount,
		}).Warn("Cell overflow. Value wrapped to 0")
		m.Cells[m.MemoryPointer] = 0
		return
	}
	m.Cells[m.MemoryPointer]++
}

// Decrement subtracts one from the current cell, wrapping 0 back to 255.
func (m *Memory) Decrement() {
	if m.Cells[m.MemoryPointer] == 0 {
		m.UnderflowCount++
		logrus.WithFields(logrus.Fields{
			"cell":       m.MemoryPointer,
			"underflows": m.UnderflowCount,
		}).Warn("Cell underflow. Value wrapped to 255")
		m.Cells[m.MemoryPointer] = 255
		return
	}
	m.Cells[m.MemoryPointer]--
}

// MovePointerLeft fails at the tape origin. Pointer underflow is the one
// fatal memory fault; callers must halt the run.
func (m *Memory) MovePointerLeft() (bool, error) {
	if m.MemoryPointer == 0 {
		return false, ErrPointerUnderflow
	}
	m.MemoryPointer = m.MemoryPointer - 1
	return true, nil
}

// MovePointerRight grows the tape by exactly one zero cell when the pointer
// walks off the current end.
func (m *Memory) MovePointerRight() {
	m.MemoryPointer = m.MemoryPointer + 1
	if m.MemoryPointer == uint(len(m.Cells)) {
		m.Cells = append(m.Cells, 0)
	}
}
