package store

import (
	"github.com/google/btree"
)

type nameKey struct {
	Name string
	ID   int
}

// nameIndex keeps (name, id) pairs ordered so equal names are adjacent.
type nameIndex struct {
	Btree *btree.BTreeG[nameKey]
}

func newNameIndex() *nameIndex {
	return &nameIndex{
		Btree: btree.NewG(32, func(a, b nameKey) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		}),
	}
}

func (x *nameIndex) add(r Record) {
	if r.Empty() {
		return
	}
	x.Btree.ReplaceOrInsert(nameKey{Name: r.Name, ID: r.ID})
}

func (x *nameIndex) remove(r Record) {
	if r.Empty() {
		return
	}
	x.Btree.Delete(nameKey{Name: r.Name, ID: r.ID})
}

func (x *nameIndex) find(name string) []int {
	ids := []int{}
	x.Btree.AscendGreaterOrEqual(nameKey{Name: name, ID: -1}, func(k nameKey) bool {
		if k.Name != name {
			return false
		}
		ids = append(ids, k.ID)
		return true
	})
	return ids
}

func (x *nameIndex) rebuild(records []Record) {
	x.Btree.Clear(false)
	for _, r := range records {
		x.add(r)
	}
}
