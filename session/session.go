// Package session implements the record commands shared by every front
// end. A Session writes its replies to a single output sink and never
// assumes a transport.
package session

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/fulldump/peopledb/database"
	"github.com/fulldump/peopledb/store"
)

// NameGap is added to the longest name to get the name column width.
const NameGap = 10

type Session struct {
	db   *database.Database
	out  io.Writer
	log  *zap.Logger
	werr error
}

func New(db *database.Database, out io.Writer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		db:  db,
		out: out,
		log: log,
	}
}

func (s *Session) Store() *store.Store {
	return s.db.Store
}

// Printf writes to the session sink. Once a write fails the sink is
// considered gone: the error is kept and later output is dropped.
func (s *Session) Printf(format string, a ...interface{}) {
	if s.werr != nil {
		return
	}
	_, err := fmt.Fprintf(s.out, format, a...)
	if err != nil {
		s.werr = fmt.Errorf("write: %w", err)
		s.log.Warn("output failed", zap.Error(err))
	}
}

// Err returns the first error writing to the sink, if any.
func (s *Session) Err() error {
	return s.werr
}

func (s *Session) Append() error {
	err := s.db.Store.GrowPage()
	if err != nil {
		s.warn("append", err)
		s.Printf("db: %s!\n", s.db.Store.ErrMessage())
		return err
	}
	s.Printf("Appended %d more entries to database.\n", store.PageSize)
	return nil
}

func (s *Session) Search(id int) bool {
	return s.db.Store.Search(id) >= 0
}

// FormatOne renders record id as one "id name status" line padded to the
// given name column width.
func (s *Session) FormatOne(id, width int) string {
	r, ok := s.db.Store.Lookup(id)
	if !ok {
		return "ID not found in database.\n"
	}
	return fmt.Sprintf("%-15d %-*s %-15s\n", r.ID, width, r.Name, r.Status)
}

func (s *Session) PrintOne(id, width int) {
	s.Printf("%s", s.FormatOne(id, width))
}

// Width is the name column width fitting every row of the table.
func (s *Session) Width() int {
	return s.db.Store.Longest() + NameGap
}

func (s *Session) PrintHeader(width int) {
	s.Printf("%-15s %-*s %-15s\n", "ID", width, "NAME", "STATUS")
}

// PrintAll prints every allocated slot in id order.
func (s *Session) PrintAll() {
	if s.db.Store.Capacity() == 0 {
		s.Printf("No database entries.\n")
		return
	}

	width := s.Width()
	s.PrintHeader(width)
	for id := 0; id < s.db.Store.Capacity(); id++ {
		s.PrintOne(id, width)
	}
}

// StatusOptions lists the label choices accepted by Replace.
func (s *Session) StatusOptions() {
	labels := s.db.Store.Labels()
	s.Printf("Status options available:\n")
	for i, label := range labels {
		s.Printf("%d) %s\n", i+1, label)
	}
}

// Replace updates record id and moves the cursor past it on success.
func (s *Session) Replace(id int, name string, choice int) error {
	err := s.db.Store.Replace(id, name, choice)
	if err != nil {
		s.warn("replace", err)
		s.Printf("%s\n", s.db.Store.ErrMessage())
		return err
	}

	s.Printf("You replaced ID number %d!\n", id)
	s.db.Store.SetCursor(id + 1)
	return nil
}

// Insert replaces the record under the cursor, id 0 when none is set.
func (s *Session) Insert(name string, choice int) error {
	return s.Replace(s.Cursor(), name, choice)
}

func (s *Session) New() {
	s.db.New()
	s.Printf("New database created!\n")
}

func (s *Session) SetCursor(id int) {
	s.db.Store.SetCursor(id)
}

func (s *Session) Cursor() int {
	id, _ := s.db.Store.Cursor()
	return id
}

func (s *Session) Load(name string) error {
	s.Printf("Loading file: %s\n", name)
	err := s.db.Load(name)
	s.Printf("db: %s!\n", s.db.Store.ErrMessage())
	return err
}

func (s *Session) Save(name string) error {
	s.Printf("Saving file: %s\n", name)
	err := s.db.Save(name)
	s.Printf("db: %s!\n", s.db.Store.ErrMessage())
	return err
}

// Write renders the HTML report.
func (s *Session) Write(name string) error {
	s.Printf("Saving file: %s\n", name)
	err := s.db.WriteHTML(name)
	s.Printf("db: %s!\n", s.db.Store.ErrMessage())
	return err
}

func (s *Session) Export(name string) error {
	s.Printf("Exporting file: %s\n", name)
	err := s.db.Export(name)
	s.Printf("db: %s!\n", s.db.Store.ErrMessage())
	return err
}

func (s *Session) warn(op string, err error) {
	s.log.Warn(op+" failed",
		zap.Stringer("code", s.db.Store.ErrCode()),
		zap.Error(err),
	)
}
