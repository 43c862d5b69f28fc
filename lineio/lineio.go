// Package lineio reads command lines from a terminal or a socket.
package lineio

import (
	"bufio"
	"io"
)

// MaxLine is the longest line returned. Bytes past it are discarded up to
// the end of the line.
const MaxLine = 255

const (
	backspace = '\b'
	del       = 0x7f
)

type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its line terminator. Carriage
// returns are dropped and a backspace removes the previous byte, if any.
// io.EOF is returned only when the input ends before any byte of a line.
func (l *Reader) ReadLine() (string, error) {
	line := make([]byte, 0, 64)
	read := false

	for {
		c, err := l.r.ReadByte()
		if err == io.EOF && read {
			return string(line), nil
		}
		if err != nil {
			return string(line), err
		}
		read = true

		switch c {
		case '\n':
			return string(line), nil
		case '\r':
		case backspace, del:
			if len(line) > 0 {
				line = line[:len(line)-1]
			}
		default:
			if len(line) < MaxLine {
				line = append(line, c)
			}
		}
	}
}
