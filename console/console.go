// Package console runs the line oriented command loop over any pair of
// line source and output sink: a terminal or an accepted connection.
package console

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/fulldump/peopledb/lineio"
	"github.com/fulldump/peopledb/session"
)

const Menu = "List of available commands:\n" +
	"a: Append\n" +
	"i: Insert\n" +
	"r: Replace\n" +
	"p: Print\n" +
	"l: Load\n" +
	"s: Save\n" +
	"n: New\n" +
	"w: Write\n" +
	"j: Export\n" +
	"f: Find\n" +
	"q: Quit\n" +
	"Enter command: "

type Console struct {
	sess  *session.Session
	lines *lineio.Reader
	log   *zap.Logger
}

func New(sess *session.Session, in io.Reader, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{
		sess:  sess,
		lines: lineio.NewReader(in),
		log:   log,
	}
}

// Run serves commands until quit or the end of the input. Both end the
// session normally and return nil. A failed write to the output ends the
// session with that error.
func (c *Console) Run() error {
	for {
		c.sess.Printf("%s", Menu)
		if err := c.sess.Err(); err != nil {
			return err
		}

		line, err := c.lines.ReadLine()
		if err != nil {
			return ended(err)
		}

		command, ok := Command(line)
		if !ok {
			continue
		}
		if command == 'q' {
			c.log.Debug("command", zap.String("name", "quit"))
			return nil
		}

		err = c.dispatch(command)
		if err != nil {
			return ended(err)
		}
		if err := c.sess.Err(); err != nil {
			return err
		}
	}
}

// Command returns the lower cased first non blank character of line.
func Command(line string) (rune, bool) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if line == "" {
		return 0, false
	}
	return unicode.ToLower([]rune(line)[0]), true
}

func (c *Console) dispatch(command rune) error {
	c.log.Debug("command", zap.String("name", string(command)))

	switch command {
	case 'a':
		c.sess.Append()

	case 'i':
		if c.empty() {
			return nil
		}
		name, choice, err := c.readRecord()
		if err != nil {
			return err
		}
		c.sess.Insert(name, choice)

	case 'r':
		if c.empty() {
			return nil
		}
		line, err := c.prompt("Enter ID: ")
		if err != nil {
			return err
		}
		id := atoi(line)
		if !c.sess.Search(id) {
			c.sess.Printf("Invalid ID number.\n")
			return nil
		}
		name, choice, err := c.readRecord()
		if err != nil {
			return err
		}
		c.sess.Replace(id, name, choice)

	case 'p':
		c.sess.PrintAll()

	case 'l':
		return c.withFilename(c.sess.Load)

	case 's':
		return c.withFilename(c.sess.Save)

	case 'w':
		return c.withFilename(c.sess.Write)

	case 'j':
		return c.withFilename(c.sess.Export)

	case 'n':
		c.sess.New()

	case 'f':
		query, err := c.prompt("Enter query: ")
		if err != nil {
			return err
		}
		if query == "" {
			c.sess.Printf("Nothing entered as input.\n")
			return nil
		}
		c.sess.Find(query)
	}

	return nil
}

// readRecord prompts for a name and, when one is given, a status choice.
// An empty name yields choice 0 and is rejected by the store.
func (c *Console) readRecord() (string, int, error) {
	name, err := c.prompt("Enter name: ")
	if err != nil {
		return "", 0, err
	}
	if name == "" {
		return "", 0, nil
	}

	c.sess.StatusOptions()
	status, err := c.prompt("Enter status: ")
	if err != nil {
		return "", 0, err
	}
	return name, atoi(status), nil
}

func (c *Console) withFilename(f func(name string) error) error {
	name, err := c.prompt("Enter filename: ")
	if err != nil {
		return err
	}
	if name == "" {
		c.sess.Printf("Nothing entered as input.\n")
		return nil
	}
	f(name)
	return nil
}

func (c *Console) empty() bool {
	if c.sess.Store().Capacity() == 0 {
		c.sess.Printf("No database entries.\n")
		return true
	}
	return false
}

func (c *Console) prompt(text string) (string, error) {
	c.sess.Printf("%s", text)
	if err := c.sess.Err(); err != nil {
		return "", err
	}
	return c.lines.ReadLine()
}

// atoi parses a decimal number, -1 when line holds none.
func atoi(line string) int {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1
	}
	return n
}

func ended(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
