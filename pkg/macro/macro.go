// Package macro implements the macro expansion engine described in
// SPEC_FULL.md: the macro table, argument reader, paste engine,
// stringifier, and the recursive expander that drives them, plus built-in
// macro registration. It is grounded directly on
// original_source/src/preprocessor/macro.c (the lacc implementation the
// distilled spec was written from) rather than on the teacher's own
// pkg/cpp/expand.go, whose hideset-as-map representation disagrees with the
// distilled spec's recursion-guard invariants (see SPEC_FULL.md's REDESIGN
// FLAGS section).
package macro

import (
	"github.com/gocpp/macroexpand/pkg/intern"
	"github.com/gocpp/macroexpand/pkg/pptoken"
)

// Kind distinguishes an object-like macro (invoked by name alone) from a
// function-like macro (must be followed immediately by '(').
type Kind int

const (
	ObjectLike Kind = iota
	FunctionLike
)

// Macro is a single macro definition: a name bound to a replacement token
// sequence, optionally parameterised. See SPEC_FULL.md §3 for the
// invariants this type must uphold.
type Macro struct {
	Name        intern.Symbol
	Kind        Kind
	Params      int  // parameter arity; 0 when Kind == ObjectLike
	Variadic    bool // trailing ... parameter consumes __VA_ARGS__
	Replacement *pptoken.Sequence

	// Stringify caches whether Replacement contains `#` immediately
	// followed by PARAM, computed once at successful Define.
	Stringify bool

	// IsFile/IsLine mark the two magic macros, whose Replacement slot 0 is
	// rewritten on every Lookup (SPEC_FULL.md §4.B).
	IsFile bool
	IsLine bool
}

// Equal reports whether two macros are interchangeable per the data
// model's invariant 4: same Kind, Params, Name, and replacement tokenwise.
// A Define of an existing name that is not Equal to the incoming
// definition is a redefinition error.
func Equal(t *intern.Table, a, b *Macro) bool {
	if a.Kind != b.Kind || a.Params != b.Params || a.Variadic != b.Variadic {
		return false
	}
	if !intern.Equal(a.Name, b.Name) {
		return false
	}
	if a.Replacement.Len() != b.Replacement.Len() {
		return false
	}
	for i := 0; i < a.Replacement.Len(); i++ {
		if !tokenEqual(t, a.Replacement.At(i), b.Replacement.At(i)) {
			return false
		}
	}
	return true
}

// tokenEqual implements the distilled spec's token comparison/identity
// rule: kind must match, and PARAM compares by index, NUMBER by printed
// form, everything else by interned text.
func tokenEqual(t *intern.Table, a, b pptoken.Token) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case pptoken.PARAM:
		return a.Param == b.Param
	case pptoken.NEWLINE, pptoken.EMPTY_ARG, pptoken.TOKEN_PASTE, pptoken.HASH, pptoken.END, pptoken.PLACEHOLDER:
		return true
	default:
		return intern.Equal(a.Text, b.Text)
	}
}
