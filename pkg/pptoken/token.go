// Package pptoken defines the preprocessing token and the pool-managed
// token sequence the macro engine (pkg/macro) splices and re-splices during
// expansion. It is the Go home of the data model described in SPEC_FULL.md
// §3, adapted from the Token/TokenType pair in the teacher's
// pkg/cpp/lexer.go and extended with the PARAM/EMPTY_ARG/TOKEN_PASTE kinds
// the distilled spec's data model requires and the teacher's own lexer
// never needed (it pastes and stringifies by re-lexing raw text instead of
// carrying first-class sentinel tokens).
package pptoken

import "github.com/gocpp/macroexpand/pkg/intern"

// Kind tags the variant a Token carries, mirroring the distilled spec's
// enumerated token kinds. Punctuators share the single PUNCT kind and carry
// their spelling in Text, instead of growing the Kind enum per punctuator
// the way lacc's `token` enum reuses ASCII codes directly.
type Kind int

const (
	END Kind = iota
	IDENTIFIER
	NUMBER
	STRING
	CHAR_CONST
	PUNCT
	PARAM        // PARAM carries a zero-based parameter index in Param.
	EMPTY_ARG    // sentinel: argument was syntactically present but empty
	NEWLINE
	TOKEN_PASTE  // ##
	HASH         // # used as the stringify operator inside a replacement list
	PLACEHOLDER  // transient marker produced mid-paste, never escapes expand_paste
)

func (k Kind) String() string {
	switch k {
	case END:
		return "END"
	case IDENTIFIER:
		return "IDENTIFIER"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case CHAR_CONST:
		return "CHAR_CONST"
	case PUNCT:
		return "PUNCT"
	case PARAM:
		return "PARAM"
	case EMPTY_ARG:
		return "EMPTY_ARG"
	case NEWLINE:
		return "NEWLINE"
	case TOKEN_PASTE:
		return "TOKEN_PASTE"
	case HASH:
		return "HASH"
	case PLACEHOLDER:
		return "PLACEHOLDER"
	default:
		return "UNKNOWN"
	}
}

// NumType tags the representation a NUMBER token's value is held in, enough
// to satisfy the data model's "numeric value plus a numeric type tag"
// without pulling in a full C type system (out of scope, pkg/ctypes in the
// teacher's compiler backend belongs to a later pipeline stage this
// expansion never builds).
type NumType int

const (
	NumInt NumType = iota
	NumUnsigned
	NumFloat
)

// Token is a tagged preprocessing token.
type Token struct {
	Kind Kind

	// Text holds the interned spelling for IDENTIFIER, STRING, CHAR_CONST,
	// PUNCT (single- or multi-character spelling) and NUMBER (original
	// printed form) tokens.
	Text intern.Symbol

	// Param holds the zero-based parameter index for PARAM tokens.
	Param int

	// NumType is the numeric type tag of a NUMBER token; unused otherwise.
	// pkg/pplex does not set it, so lexed NUMBER tokens carry NumInt.
	NumType NumType

	// LeadingSpace is the non-negative count of spaces preceding this token
	// on its source line, per the data model's leading_whitespace field. It
	// drives both stringification's whitespace-collapse rule and the
	// expander's whitespace-preservation contract (SPEC_FULL.md §4.F).
	LeadingSpace int
}

// Punct builds a PUNCT token from its literal spelling.
func Punct(t *intern.Table, spelling string) Token {
	return Token{Kind: PUNCT, Text: t.InternString(spelling)}
}

// IsPunct reports whether tok is a PUNCT token with the given spelling.
func (tok Token) IsPunct(t *intern.Table, spelling string) bool {
	return tok.Kind == PUNCT && t.String(tok.Text) == spelling
}

// Spelling renders tok back to source text using t to resolve interned
// text. NUMBER/PARAM tokens that carry no Text symbol must be formatted by
// the caller (pkg/macro does this for PARAM during substitution and never
// needs to print a bare PARAM token otherwise).
func (tok Token) Spelling(t *intern.Table) string {
	switch tok.Kind {
	case NEWLINE:
		return "\n"
	case HASH:
		return "#"
	case TOKEN_PASTE:
		return "##"
	case EMPTY_ARG, PLACEHOLDER:
		return ""
	default:
		return t.String(tok.Text)
	}
}
