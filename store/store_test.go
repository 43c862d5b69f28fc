package store

import (
	"errors"
	"strings"
	"testing"

	. "github.com/fulldump/biff"
)

func TestNew_Empty(t *testing.T) {
	s := New(0)

	AssertEqual(s.Capacity(), 0)
	AssertEqual(s.Count(), 0)
	AssertEqual(s.Labels(), DefaultLabels)
	AssertEqual(s.ErrCode(), OK)
	AssertEqual(s.ErrMessage(), "OK")
	AssertEqual(s.MaxPages(), DefaultMaxPages)

	_, ok := s.Cursor()
	AssertFalse(ok)
}

func TestGrowPage_CapacityInvariant(t *testing.T) {
	s := New(0)

	for i := 1; i <= 5; i++ {
		err := s.GrowPage()
		AssertNil(err)
		AssertEqual(s.Count(), i)
		AssertEqual(s.Capacity(), s.Count()*PageSize)
	}

	for id := 0; id < s.Capacity(); id++ {
		r, ok := s.Lookup(id)
		AssertTrue(ok)
		AssertEqual(r.ID, id)
		AssertEqual(r.Name, "")
		AssertEqual(r.Status, "")
	}
}

func TestGrowPage_OutOfMemoryLeavesStoreUnchanged(t *testing.T) {
	s := New(2)
	AssertNil(s.GrowPage())
	AssertNil(s.Replace(3, "Alice", 1))
	AssertNil(s.GrowPage())

	err := s.GrowPage()
	AssertNotNil(err)

	e := &Error{}
	AssertTrue(errors.As(err, &e))
	AssertEqual(e.Code, OutOfMemory)
	AssertEqual(s.ErrCode(), OutOfMemory)
	AssertEqual(s.ErrMessage(), "Append failed")

	AssertEqual(s.Count(), 2)
	AssertEqual(s.Capacity(), 2*PageSize)
	r, _ := s.Lookup(3)
	AssertEqual(r.Name, "Alice")
}

func TestGrowPage_ClearsPreviousError(t *testing.T) {
	s := New(0)
	s.Replace(0, "x", 1) // no slots yet
	AssertEqual(s.ErrCode(), InvalidInput)

	AssertNil(s.GrowPage())
	AssertEqual(s.ErrCode(), OK)
}

func TestLookup_OutOfRange(t *testing.T) {
	s := New(0)

	_, ok := s.Lookup(0)
	AssertFalse(ok)

	s.GrowPage()
	_, ok = s.Lookup(PageSize)
	AssertFalse(ok)
	_, ok = s.Lookup(-1)
	AssertFalse(ok)
	_, ok = s.Lookup(PageSize - 1)
	AssertTrue(ok)

	AssertEqual(s.Search(PageSize), -1)
	AssertEqual(s.Search(7), 7)
}

func TestReplace(t *testing.T) {
	s := New(0)
	s.GrowPage()

	AssertNil(s.Replace(5, "Alice", 1))
	r, _ := s.Lookup(5)
	AssertEqual(r.Name, "Alice")
	AssertEqual(r.Status, "ALIVE")

	AssertNil(s.Replace(5, "Alice", 3))
	r, _ = s.Lookup(5)
	AssertEqual(r.Status, "DEAD")
}

func TestReplace_EmptyNameRejected(t *testing.T) {
	s := New(0)
	s.GrowPage()
	s.Replace(2, "Bob", 2)

	err := s.Replace(2, "", 1)
	AssertNotNil(err)
	AssertEqual(s.ErrCode(), InvalidInput)

	r, _ := s.Lookup(2)
	AssertEqual(r.Name, "Bob")
	AssertEqual(r.Status, "MISSING")
}

func TestReplace_InvalidChoiceKeepsName(t *testing.T) {
	s := New(0)
	s.GrowPage()
	s.Replace(4, "Old", 2)

	err := s.Replace(4, "X", 9)
	AssertNotNil(err)
	AssertEqual(s.ErrCode(), InvalidInput)
	AssertEqual(s.ErrMessage(), "Not an option.")

	r, _ := s.Lookup(4)
	AssertEqual(r.Name, "X")
	AssertEqual(r.Status, "MISSING")
}

func TestReplace_OutOfRange(t *testing.T) {
	s := New(0)
	s.GrowPage()

	err := s.Replace(PageSize, "Nobody", 1)
	AssertNotNil(err)
	AssertEqual(s.ErrCode(), InvalidInput)
}

func TestReplace_TruncatesName(t *testing.T) {
	s := New(0)
	s.GrowPage()

	s.Replace(0, strings.Repeat("a", 100), 1)
	r, _ := s.Lookup(0)
	AssertEqual(len(r.Name), NameSize-1)
}

func TestBound_KeepsRunesWhole(t *testing.T) {
	name := strings.Repeat("a", 62) + "é"
	AssertEqual(Bound(name, NameSize), strings.Repeat("a", 62))
	AssertEqual(Bound("añ", 4), "añ")
	AssertEqual(Bound("aañ", 4), "aa")
	AssertEqual(Bound("", NameSize), "")
}

func TestSetLabels_Truncates(t *testing.T) {
	s := New(0)
	s.SetLabels([3]string{"VERY-LONG-STATUS-LABEL", "B", "C"})
	AssertEqual(s.Labels()[0], "VERY-LONG-STATU")
}

func TestCursor(t *testing.T) {
	s := New(0)

	s.SetCursor(0) // empty table, ignored
	_, ok := s.Cursor()
	AssertFalse(ok)

	s.GrowPage()
	s.SetCursor(10)
	id, ok := s.Cursor()
	AssertTrue(ok)
	AssertEqual(id, 10)

	s.SetCursor(PageSize)
	id, _ = s.Cursor()
	AssertEqual(id, 10)

	s.SetCursor(-3)
	id, _ = s.Cursor()
	AssertEqual(id, 10)
}

func TestFree(t *testing.T) {
	s := New(0)
	s.GrowPage()
	s.Replace(1, "Carol", 1)
	s.SetLabels([3]string{"A", "B", "C"})

	s.Free()

	AssertEqual(s.Capacity(), 0)
	AssertEqual(s.Count(), 0)
	AssertEqual(s.Labels(), DefaultLabels)
	AssertEqual(len(s.FindByName("Carol")), 0)
}

func TestAllocate(t *testing.T) {
	s := New(4)
	s.GrowPage()
	s.Replace(0, "Gone", 1)

	err := s.Allocate(3, [3]string{"UP", "LOST", "DOWN"})
	AssertNil(err)
	AssertEqual(s.Count(), 3)
	AssertEqual(s.Capacity(), 3*PageSize)
	AssertEqual(s.Labels(), [3]string{"UP", "LOST", "DOWN"})

	r, _ := s.Lookup(0)
	AssertEqual(r.Name, "")
	r, _ = s.Lookup(95)
	AssertEqual(r.ID, 95)
}

func TestAllocate_PastCeiling(t *testing.T) {
	s := New(2)
	s.GrowPage()
	s.Replace(0, "Kept", 1)

	err := s.Allocate(3, DefaultLabels)
	AssertNotNil(err)
	AssertEqual(s.ErrCode(), OutOfMemory)

	r, _ := s.Lookup(0)
	AssertEqual(r.Name, "Kept")
}

func TestFindByName(t *testing.T) {
	s := New(0)
	s.GrowPage()
	s.Replace(3, "Dave", 1)
	s.Replace(7, "Dave", 2)
	s.Replace(9, "Eve", 3)

	AssertEqual(s.FindByName("Dave"), []int{3, 7})
	AssertEqual(s.FindByName("Eve"), []int{9})
	AssertEqual(s.FindByName("Zed"), []int{})

	s.Replace(3, "Frank", 1)
	AssertEqual(s.FindByName("Dave"), []int{7})
	AssertEqual(s.FindByName("Frank"), []int{3})
}

func TestTransformNames(t *testing.T) {
	s := New(0)
	s.GrowPage()
	s.Replace(1, "abc", 1)

	s.TransformNames(strings.ToUpper)

	r, _ := s.Lookup(1)
	AssertEqual(r.Name, "ABC")
	r, _ = s.Lookup(0)
	AssertEqual(r.Name, "")
	AssertEqual(s.FindByName("ABC"), []int{1})
	AssertEqual(s.FindByName("abc"), []int{})
}

func TestLongest(t *testing.T) {
	s := New(0)
	AssertEqual(s.Longest(), 0)

	s.GrowPage()
	s.Replace(0, "Al", 1)
	s.Replace(31, "Bartholomew", 1)
	AssertEqual(s.Longest(), len("Bartholomew"))
}

func TestScan(t *testing.T) {
	s := New(0)
	s.GrowPage()
	s.Replace(2, "Gina", 1)
	s.Replace(20, "Hank", 2)

	n := 0
	rows := s.Scan()
	for rows.Next() {
		AssertEqual(rows.Read().ID, n)
		n++
	}
	AssertEqual(n, PageSize)

	names := []string{}
	rows = s.Scan().NonEmpty()
	for rows.Next() {
		names = append(names, rows.Read().Name)
	}
	AssertEqual(names, []string{"Gina", "Hank"})
}
