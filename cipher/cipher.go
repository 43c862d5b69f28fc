// Package cipher implements the name obfuscation applied around persistence.
package cipher

import "github.com/fulldump/peopledb/store"

// Func maps a name to its transformed form. Every Func in this package is an
// involution, so the same value encrypts and decrypts.
type Func func(string) string

// Rot13 rotates ASCII letters by 13 places, preserving case. Other bytes
// are left as they are.
func Rot13(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'm', c >= 'A' && c <= 'M':
			b[i] = c + 13
		case c >= 'n' && c <= 'z', c >= 'N' && c <= 'Z':
			b[i] = c - 13
		}
	}
	return string(b)
}

// None leaves names untouched.
func None(s string) string {
	return s
}

// Select returns Rot13 when enabled and None otherwise.
func Select(enabled bool) Func {
	if enabled {
		return Rot13
	}
	return None
}

// Apply runs f over every non-empty name in s.
func Apply(s *store.Store, f Func) {
	if f == nil {
		return
	}
	s.TransformNames(f)
}
