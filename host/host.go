// Package host adapts an io.Reader/io.Writer pair into the byte- and
// integer-oriented I/O operations a CPU's syscalls need, the way the
// teacher's io.Tape adapts a stream to bit-level channel operations.
package host

import (
	"bufio"
	"fmt"
	"io"
)

// Host is the concrete SyscallHost a CPU talks to for stdio syscalls.
type Host struct {
	Input  *bufio.Reader
	Output io.Writer
}

// New wraps in and out as a Host.
func New(in io.Reader, out io.Writer) *Host {
	return &Host{Input: bufio.NewReader(in), Output: out}
}

// ReadInt reads a whitespace-delimited decimal integer from Input.
func (h *Host) ReadInt() (int32, error) {
	var v int32
	_, err := fmt.Fscan(h.Input, &v)
	return v, err
}

// ReadByte reads a single raw byte from Input.
func (h *Host) ReadByte() (byte, error) {
	return h.Input.ReadByte()
}

// WriteString writes s to Output verbatim.
func (h *Host) WriteString(s string) error {
	_, err := io.WriteString(h.Output, s)
	return err
}

// WriteByte writes a single raw byte to Output.
func (h *Host) WriteByte(b byte) error {
	_, err := h.Output.Write([]byte{b})
	return err
}
