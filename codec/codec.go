// Package codec reads and writes the binary table format.
//
// Layout, in order and without padding:
//
//	capacity      platform-width unsigned integer, host byte order
//	page_count    platform-width unsigned integer, host byte order
//	status_1..3   3 x 16 bytes, NUL padded
//	records       page_count*PageSize x (4 byte id, 64 byte name, 16 byte status)
//
// Integers follow the host, so files are not portable across hosts with a
// different word size or byte order. Record fields have fixed widths.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strconv"

	"github.com/fulldump/peopledb/cipher"
	"github.com/fulldump/peopledb/store"
)

const (
	// WordSize is the width of the capacity and page_count fields.
	WordSize = strconv.IntSize / 8

	IDSize     = 4
	RecordSize = IDSize + store.NameSize + store.StatusSize
	HeaderSize = 2*WordSize + 3*store.StatusSize
)

var order = binary.NativeEndian

var errShortWrite = errors.New("short write")

// Encode writes s to w. Names are passed through c right before the record
// table is written and back again once the write returns, whatever its
// outcome, so s is plaintext when Encode returns.
func Encode(w io.Writer, s *store.Store, c cipher.Func) error {
	s.Succeed()

	if err := writeFull(w, putWord(uint64(s.Capacity()))); err != nil {
		return s.Fail(store.ShortIO, "Save failed (database size)", err)
	}
	if err := writeFull(w, putWord(uint64(s.Count()))); err != nil {
		return s.Fail(store.ShortIO, "Save failed (database count)", err)
	}
	if s.Capacity() != s.Count()*store.PageSize {
		return s.Fail(store.SizeMismatch, "Save failed (database size mismatch)", nil)
	}

	labels := s.Labels()
	for i, label := range labels {
		if err := writeFull(w, putString(label, store.StatusSize)); err != nil {
			return s.Fail(store.ShortIO, "Save failed (database stat"+strconv.Itoa(i+1)+")", err)
		}
	}

	cipher.Apply(s, c)
	defer cipher.Apply(s, c)

	table := make([]byte, 0, s.Capacity()*RecordSize)
	rows := s.Scan()
	for rows.Next() {
		table = appendRecord(table, rows.Read())
	}

	if err := writeFull(w, table); err != nil {
		return s.Fail(store.ShortIO, "Save failed (unaligned database)", err)
	}

	return nil
}

// Decode reads a table from r into s. The whole header is validated before
// s is discarded, so a bad header leaves s as it was. A short record table
// is reported, but the records read so far stay in s.
func Decode(r io.Reader, s *store.Store, c cipher.Func) error {
	s.Succeed()

	capacity, err := readWord(r)
	if err != nil {
		return s.Fail(store.ShortIO, "Load failed (database size)", err)
	}
	count, err := readWord(r)
	if err != nil {
		return s.Fail(store.ShortIO, "Load failed (database count)", err)
	}
	if count > uint64(s.MaxPages()) {
		return s.Fail(store.OutOfMemory, "Load failed (out of memory)", nil)
	}
	if capacity != count*store.PageSize {
		return s.Fail(store.SizeMismatch, "Load failed (database size mismatch)", nil)
	}

	labels := [3]string{}
	for i := range labels {
		buf := make([]byte, store.StatusSize)
		if _, err := io.ReadFull(r, buf); err != nil {
			return s.Fail(store.ShortIO, "Load failed (database stat"+strconv.Itoa(i+1)+")", err)
		}
		labels[i] = getString(buf)
	}

	if err := s.Allocate(int(count), labels); err != nil {
		return err
	}

	// one page at a time, no buffer is sized from the header
	var readErr error
	page := make([]byte, store.PageSize*RecordSize)
	for p := 0; p < int(count) && readErr == nil; p++ {
		var n int
		n, readErr = io.ReadFull(r, page)
		for i := 0; i < n/RecordSize; i++ {
			name, status := decodeRecord(page[i*RecordSize : (i+1)*RecordSize])
			s.Restore(p*store.PageSize+i, name, status)
		}
	}
	cipher.Apply(s, c)

	if readErr != nil {
		return s.Fail(store.ShortIO, "Load failed (unaligned database)", readErr)
	}

	return nil
}

func writeFull(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return errShortWrite
	}
	return nil
}

func putWord(v uint64) []byte {
	b := make([]byte, WordSize)
	if WordSize == 8 {
		order.PutUint64(b, v)
	} else {
		order.PutUint32(b, uint32(v))
	}
	return b
}

func readWord(r io.Reader) (uint64, error) {
	b := make([]byte, WordSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return 0, err
	}
	if WordSize == 8 {
		return order.Uint64(b), nil
	}
	return uint64(order.Uint32(b)), nil
}

// putString copies s into a NUL padded field of size bytes. At least one
// terminator is always present.
func putString(s string, size int) []byte {
	b := make([]byte, size)
	copy(b, store.Bound(s, size))
	return b
}

func getString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func appendRecord(dst []byte, r store.Record) []byte {
	id := make([]byte, IDSize)
	order.PutUint32(id, uint32(int32(r.ID)))
	dst = append(dst, id...)
	dst = append(dst, putString(r.Name, store.NameSize)...)
	dst = append(dst, putString(r.Status, store.StatusSize)...)
	return dst
}

func decodeRecord(b []byte) (name, status string) {
	name = getString(b[IDSize : IDSize+store.NameSize])
	status = getString(b[IDSize+store.NameSize : RecordSize])
	return
}
