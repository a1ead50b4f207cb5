// Package intern provides the string interner consumed by the macro engine
// as an external collaborator (see SPEC_FULL.md §6). It mirrors the
// identifier-table role lacc's str_init/str_register play in
// original_source/src/preprocessor/macro.c, but as a value-oriented Go type:
// a Symbol is a small, comparable handle that can be copied and compared with
// == instead of a raw byte slice.
package intern

import (
	"github.com/cespare/xxhash/v2"
)

// Symbol is an opaque, cheap-to-copy handle for an interned byte sequence.
// Two Symbols from the same Table compare equal with == iff their underlying
// bytes are equal.
type Symbol struct {
	table *Table
	id    uint32
}

// IsZero reports whether s is the zero value (never produced by Intern).
func (s Symbol) IsZero() bool {
	return s.table == nil
}

// Table is a map-backed interner. Lookups hash the candidate bytes with
// xxhash and probe a bucket chain in a fixed array of 1024 buckets, rather
// than relying on Go's built-in string-keyed map hashing everywhere strings
// are compared. (The macro table in pkg/macro, by contrast, is a plain Go
// map keyed by Symbol.)
type Table struct {
	buckets [][]entry
	strs    []string
}

type entry struct {
	hash uint64
	id   uint32
}

const defaultBuckets = 1024

// New creates an empty interner.
func New() *Table {
	return &Table{buckets: make([][]entry, defaultBuckets)}
}

// Intern returns the Symbol for b, registering it if this is the first time
// these bytes have been seen.
func (t *Table) Intern(b []byte) Symbol {
	h := xxhash.Sum64(b)
	idx := h % uint64(len(t.buckets))
	for _, e := range t.buckets[idx] {
		if e.hash == h && t.strs[e.id] == string(b) {
			return Symbol{table: t, id: e.id}
		}
	}

	id := uint32(len(t.strs))
	t.strs = append(t.strs, string(b))
	t.buckets[idx] = append(t.buckets[idx], entry{hash: h, id: id})
	return Symbol{table: t, id: id}
}

// InternString is a convenience wrapper around Intern for an already
// materialized Go string.
func (t *Table) InternString(s string) Symbol {
	return t.Intern([]byte(s))
}

// Short interns a compile-time-known literal, mirroring lacc's
// SHORT_STRING_INIT used for built-in names like "__FILE__"/"__LINE__".
func (t *Table) Short(literal string) Symbol {
	return t.InternString(literal)
}

// Raw returns the byte sequence a Symbol was interned from.
func (t *Table) Raw(s Symbol) []byte {
	if s.table != t {
		panic("intern: symbol from a different table")
	}
	return []byte(t.strs[s.id])
}

// String is a convenience accessor returning the raw bytes as a string.
func (t *Table) String(s Symbol) string {
	if s.table != t {
		panic("intern: symbol from a different table")
	}
	return t.strs[s.id]
}

// Equal reports whether two symbols name the same byte sequence. Symbols
// minted from the same Table compare equal with plain ==; Equal also
// tolerates symbols from different tables by falling back to a byte
// comparison, which only matters in tests that build macros by hand against
// independent interners.
func Equal(a, b Symbol) bool {
	if a.table == b.table {
		return a.id == b.id
	}
	if a.table == nil || b.table == nil {
		return false
	}
	return a.table.strs[a.id] == b.table.strs[b.id]
}
