package database

import (
	"os"
	"testing"
)

func Environment(t *testing.T, f func(db *Database, dir string)) {
	dir := t.TempDir()
	db := NewDatabase(&Config{Dir: dir, Cipher: true}, nil)
	defer db.Close()

	f(db, dir)
}

func readFile(t *testing.T, filename string) []byte {
	b, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
