package lineio

import (
	"io"
	"strings"
	"testing"

	. "github.com/fulldump/biff"
)

func readAll(input string) []string {
	r := NewReader(strings.NewReader(input))
	lines := []string{}
	for {
		line, err := r.ReadLine()
		if err != nil {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestReadLine(t *testing.T) {
	AssertEqual(readAll("a\nbc\n\nd"), []string{"a", "bc", "", "d"})
}

func TestReadLine_CRLF(t *testing.T) {
	AssertEqual(readAll("save\r\nf.db\r\n"), []string{"save", "f.db"})
}

func TestReadLine_Backspace(t *testing.T) {
	AssertEqual(readAll("Alx\bice\n"), []string{"Alice"})
	AssertEqual(readAll("\b\bok\n"), []string{"ok"})
	AssertEqual(readAll("ab\x7f\x7f\x7fc\n"), []string{"c"})
}

func TestReadLine_TooLong(t *testing.T) {
	long := strings.Repeat("x", MaxLine+20)
	lines := readAll(long + "\nnext\n")
	AssertEqual(len(lines), 2)
	AssertEqual(len(lines[0]), MaxLine)
	AssertEqual(lines[1], "next")
}

func TestReadLine_EOF(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.ReadLine()
	AssertEqual(err, io.EOF)
}
