package internal

import (
	"bufio"
	"io"
	"os"
)

// Console is where builtin calls do their I/O. Tests substitute buffers to
// capture output and feed input.
type Console struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  *bufio.Reader
}

// StdConsole wires the console to the process streams.
func StdConsole() *Console {
	return &Console{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  bufio.NewReader(os.Stdin),
	}
}
