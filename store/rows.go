package store

// Rows iterates every allocated slot in id order, empty ones included.
type Rows struct {
	s       *Store
	index   int
	current Record

	skipEmpty bool
}

func (s *Store) Scan() *Rows {
	return &Rows{
		s:     s,
		index: -1,
	}
}

// NonEmpty restricts the iteration to slots holding a name.
func (r *Rows) NonEmpty() *Rows {
	r.skipEmpty = true
	return r
}

// Next advances to the next slot and returns false at the end of the table.
func (r *Rows) Next() bool {
	for {
		r.index++
		if r.index >= len(r.s.records) {
			return false
		}
		if r.skipEmpty && r.s.records[r.index].Empty() {
			continue
		}
		r.current = r.s.records[r.index]
		return true
	}
}

// Read returns the slot the iterator stands on.
func (r *Rows) Read() Record {
	return r.current
}
