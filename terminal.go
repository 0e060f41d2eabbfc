package bfvm

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal satisfies the interpreter's raw single-character input contract:
// one byte per read, no line buffering, no echo. When the input file isn't a
// terminal (piped input, tests) reads fall through unmodified.
type Terminal struct {
	input *os.File

	canAttr unix.Termios
	rawAttr unix.Termios

	// rawCapable is false when input doesn't support termios attributes,
	// e.g. a pipe or a regular file.
	rawCapable bool
}

func NewTerminal(input *os.File) *Terminal {
	t := &Terminal{input: input}

	if err := termios.Tcgetattr(input.Fd(), &t.canAttr); err == nil {
		t.rawCapable = true
		t.rawAttr = t.canAttr
		termios.Cfmakeraw(&t.rawAttr)
	}

	return t
}

// ReadChar blocks until one raw byte is available. The terminal sits in raw
// mode only for the duration of the read and is restored before returning.
func (t *Terminal) ReadChar() (byte, error) {
	if t.rawCapable {
		if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.rawAttr); err != nil {
			return 0, fmt.Errorf("Failed to put terminal into raw mode: %v", err)
		}
		defer termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
	}

	buf := make([]byte, 1)
	n, err := t.input.Read(buf)
	if err != nil {
		return 0, err
	}
	if n != 1 {
		return 0, fmt.Errorf("Read [%d] bytes from input, expected [1]", n)
	}

	return buf[0], nil
}

// Restore puts the terminal back into its original mode. Safe to call on a
// non-terminal input.
func (t *Terminal) Restore() {
	if t.rawCapable {
		termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
	}
}
