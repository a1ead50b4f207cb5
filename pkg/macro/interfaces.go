package macro

import "github.com/gocpp/macroexpand/pkg/pptoken"

// Tokenizer is the lexer external collaborator (SPEC_FULL.md §6): given a
// byte buffer, produce one token and the count of bytes it consumed. The
// paste engine (paste.go) uses it to re-lex the concatenation of two token
// spellings; ParseReplacement (parse.go) and registerSimple (builtin.go)
// use it to lex literal bodies. pkg/pplex.TokenizeOne implements
// this via a function value rather than a named type, since the engine
// never needs more than a single method.
type Tokenizer func(text string) (pptoken.Token, int)

// PositionSource is the file-position external collaborator consulted only
// by magic-macro lookup.
type PositionSource interface {
	CurrentFile() string
	CurrentLine() int
}

// Diagnostics is the fatal diagnostic sink external collaborator. Fatalf
// must never return.
type Diagnostics interface {
	Fatalf(format string, args ...any)
}
