package macro

import (
	"strconv"

	"github.com/gocpp/macroexpand/pkg/intern"
	"github.com/gocpp/macroexpand/pkg/pptoken"
)

// Table is the macro table (SPEC_FULL.md component B): an interned-name to
// Macro map with insert/remove/lookup and redefinition checking, grounded
// on lacc's hash_table of struct macro (original_source/.../macro.c:
// define/undef/definition). A Go map already gives O(1) average lookup, so
// unlike the C original there is no explicit bucket array — the 1024 hint
// passed to make() below is purely a sizing hint for the allocator, kept to
// document the parity with the original's HASH_TABLE_BUCKETS constant.
type Table struct {
	entries map[intern.Symbol]*Macro

	interner *intern.Table
	pos      PositionSource
	pool     *pptoken.Pool
	diag     Diagnostics

	fileSym intern.Symbol
	lineSym intern.Symbol
}

const tableSizeHint = 1024

// NewTable creates an empty macro table wired to its collaborators.
func NewTable(interner *intern.Table, pos PositionSource, pool *pptoken.Pool, diag Diagnostics) *Table {
	return &Table{
		entries:  make(map[intern.Symbol]*Macro, tableSizeHint),
		interner: interner,
		pos:      pos,
		pool:     pool,
		diag:     diag,
		fileSym:  interner.Short("__FILE__"),
		lineSym:  interner.Short("__LINE__"),
	}
}

// Define inserts m. A replacement that begins or ends with `##` (data model
// invariant 2) is a fatal diagnostic. If a macro with m.Name already exists
// and is not Equal to m (data model invariant 4), Define reports a fatal
// redefinition diagnostic. If an equal definition already exists,
// m.Replacement is returned to the pool and the existing entry is kept,
// matching lacc's "new_macro_added" short-circuit in define().
func (t *Table) Define(m Macro) {
	if n := m.Replacement.Len(); n > 0 &&
		(m.Replacement.At(0).Kind == pptoken.TOKEN_PASTE || m.Replacement.At(n-1).Kind == pptoken.TOKEN_PASTE) {
		t.diag.Fatalf("'##' cannot appear at either end of macro '%s'", t.interner.String(m.Name))
		return
	}
	if existing, ok := t.entries[m.Name]; ok {
		if !Equal(t.interner, existing, &m) {
			t.diag.Fatalf("redefinition of macro '%s' with different substitution",
				t.interner.String(m.Name))
			return
		}
		t.pool.Release(m.Replacement)
		return
	}

	m.Stringify = hasStringifyReplacement(m.Replacement)
	m.IsFile = intern.Equal(m.Name, t.fileSym)
	m.IsLine = intern.Equal(m.Name, t.lineSym)
	cp := m
	t.entries[m.Name] = &cp
}

// hasStringifyReplacement reports whether replacement contains `#`
// immediately followed by PARAM (the cached Stringify flag).
func hasStringifyReplacement(replacement *pptoken.Sequence) bool {
	n := replacement.Len()
	for i := 0; i+1 < n; i++ {
		if replacement.At(i).Kind == pptoken.HASH && replacement.At(i+1).Kind == pptoken.PARAM {
			return true
		}
	}
	return false
}

// Undef removes any entry named name; a no-op if absent.
func (t *Table) Undef(name intern.Symbol) {
	if m, ok := t.entries[name]; ok {
		t.pool.Release(m.Replacement)
		delete(t.entries, name)
	}
}

// IsDefined reports whether name currently has a definition.
func (t *Table) IsDefined(name intern.Symbol) bool {
	_, ok := t.entries[name]
	return ok
}

// Lookup returns the entry named name, or nil if absent. If the entry is
// __FILE__/__LINE__, slot 0 of its replacement is rewritten in place before
// returning, per SPEC_FULL.md §4.B — this mutation is intentional and
// visible to the next expander pass.
func (t *Table) Lookup(name intern.Symbol) *Macro {
	m, ok := t.entries[name]
	if !ok {
		return nil
	}
	if m.IsFile {
		m.Replacement.Set(0, pptoken.Token{
			Kind: pptoken.STRING,
			Text: t.interner.InternString(`"` + t.pos.CurrentFile() + `"`),
		})
	} else if m.IsLine {
		m.Replacement.Set(0, pptoken.Token{
			Kind: pptoken.NUMBER,
			Text: t.interner.InternString(strconv.Itoa(t.pos.CurrentLine())),
		})
	}
	return m
}

// Teardown destroys all entries and returns their replacements to the pool.
func (t *Table) Teardown() {
	for _, m := range t.entries {
		t.pool.Release(m.Replacement)
	}
	t.entries = make(map[intern.Symbol]*Macro, tableSizeHint)
}
