// Package store holds the in-memory person table: a slab of fixed-size
// records that grows one page at a time, the three status labels, the
// navigation cursor and the outcome of the last operation.
package store

import "fmt"

const (
	// PageSize is the number of records allocated by one growth step.
	PageSize = 32

	DefaultMaxPages = 1024
)

// DefaultLabels are the status labels of a freshly initialised Store.
var DefaultLabels = [3]string{"ALIVE", "MISSING", "DEAD"}

// Store is not safe for concurrent use. One session owns it at a time.
type Store struct {
	records  []Record
	count    int
	labels   [3]string
	cursor   int
	err      *Error
	maxPages int
	names    *nameIndex
}

// New returns an empty Store limited to maxPages pages. A non positive
// maxPages means DefaultMaxPages.
func New(maxPages int) *Store {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	s := &Store{
		maxPages: maxPages,
		names:    newNameIndex(),
	}
	s.Init()
	return s
}

// Init resets the Store to the empty state with default labels.
func (s *Store) Init() {
	s.records = nil
	s.count = 0
	s.labels = DefaultLabels
	s.cursor = -1
	s.err = errOK
	s.names.rebuild(nil)
}

// Free releases the slab and leaves the Store as Init does.
func (s *Store) Free() {
	s.Init()
}

// Capacity is the number of allocated slots, always Count()*PageSize.
func (s *Store) Capacity() int {
	return len(s.records)
}

// Count is the number of allocated pages.
func (s *Store) Count() int {
	return s.count
}

func (s *Store) MaxPages() int {
	return s.maxPages
}

func (s *Store) Labels() [3]string {
	return s.labels
}

// SetLabels replaces the status labels, capping each to StatusSize-1 bytes.
func (s *Store) SetLabels(labels [3]string) {
	for i, l := range labels {
		s.labels[i] = Bound(l, StatusSize)
	}
}

// GrowPage appends PageSize empty records with ids continuing from the
// current capacity. The new slab is built aside and only committed once it
// is complete.
func (s *Store) GrowPage() error {
	s.clear()

	if s.count+1 > s.maxPages {
		return s.Fail(OutOfMemory, "Append failed", nil)
	}

	base := s.count * PageSize
	grown := make([]Record, base+PageSize)
	copy(grown, s.records)
	for i := base; i < len(grown); i++ {
		grown[i] = Record{ID: i}
	}

	s.records = grown
	s.count++
	return nil
}

// Lookup returns the record at id when 0 <= id < Capacity().
func (s *Store) Lookup(id int) (Record, bool) {
	if id < 0 || id >= len(s.records) {
		return Record{}, false
	}
	return s.records[id], true
}

// Search returns id when it names an allocated slot, otherwise -1.
func (s *Store) Search(id int) int {
	if _, ok := s.Lookup(id); !ok {
		return -1
	}
	return id
}

// Replace sets the name of record id and then its status from the 1-based
// label choice. An invalid choice is reported after the name has already
// been committed.
func (s *Store) Replace(id int, name string, choice int) error {
	s.clear()

	if id < 0 || id >= len(s.records) {
		return s.Fail(InvalidInput, "Invalid ID number.", nil)
	}
	if name == "" {
		return s.Fail(InvalidInput, "You need to enter something.", nil)
	}

	r := &s.records[id]
	s.names.remove(*r)
	r.Name = Bound(name, NameSize)
	s.names.add(*r)

	if choice < 1 || choice > len(s.labels) {
		return s.Fail(InvalidInput, "Not an option.", nil)
	}
	r.Status = Bound(s.labels[choice-1], StatusSize)

	return nil
}

// Allocate discards the current table and replaces it with pages empty
// pages, adopting labels. It is the destructive step of a load and checks
// the ceiling before touching anything.
func (s *Store) Allocate(pages int, labels [3]string) error {
	if pages < 0 || pages > s.maxPages {
		return s.Fail(OutOfMemory, "Load failed (out of memory)", nil)
	}

	records := make([]Record, pages*PageSize)
	for i := range records {
		records[i] = Record{ID: i}
	}

	s.Init()
	s.records = records
	s.count = pages
	s.SetLabels(labels)
	return nil
}

// Restore fills slot id with name and status as read from storage. The id
// of the slot is kept, so records stay dense whatever the source says.
func (s *Store) Restore(id int, name, status string) {
	if id < 0 || id >= len(s.records) {
		return
	}
	r := &s.records[id]
	s.names.remove(*r)
	r.Name = Bound(name, NameSize)
	r.Status = Bound(status, StatusSize)
	s.names.add(*r)
}

// TransformNames rewrites every non-empty name with f.
func (s *Store) TransformNames(f func(string) string) {
	for i := range s.records {
		if s.records[i].Empty() {
			continue
		}
		s.records[i].Name = Bound(f(s.records[i].Name), NameSize)
	}
	s.names.rebuild(s.records)
}

// FindByName returns the ids of records whose name is exactly name.
func (s *Store) FindByName(name string) []int {
	return s.names.find(name)
}

// Longest is the length of the longest name in the table.
func (s *Store) Longest() int {
	longest := 0
	for _, r := range s.records {
		if len(r.Name) > longest {
			longest = len(r.Name)
		}
	}
	return longest
}

// SetCursor moves the cursor to id. Out of range ids are ignored.
func (s *Store) SetCursor(id int) {
	if id >= 0 && id < len(s.records) {
		s.cursor = id
	}
}

// Cursor returns the current id and whether it has been set.
func (s *Store) Cursor() (int, bool) {
	if s.cursor < 0 || s.cursor >= len(s.records) {
		return 0, false
	}
	return s.cursor, true
}

// LastError is the outcome of the most recent operation. Its code is OK on
// success.
func (s *Store) LastError() *Error {
	return s.err
}

func (s *Store) ErrCode() Code {
	return s.err.Code
}

func (s *Store) ErrMessage() string {
	return s.err.Message
}

// Fail records the outcome on the Store and returns it.
func (s *Store) Fail(code Code, message string, cause error) error {
	s.err = &Error{Code: code, Message: message, Cause: cause}
	return s.err
}

// Succeed clears the last error.
func (s *Store) Succeed() {
	s.clear()
}

func (s *Store) clear() {
	s.err = errOK
}

func (s *Store) String() string {
	return fmt.Sprintf("store{pages: %d, capacity: %d}", s.count, len(s.records))
}
