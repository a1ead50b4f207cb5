package macro

import (
	"strings"

	"github.com/gocpp/macroexpand/pkg/pptoken"
)

// stringify converts seq into a single STRING token, implementing the `#`
// operator per SPEC_FULL.md §4.E / the GCC documentation lacc's own
// stringify() (original_source/.../macro.c) quotes in its comment: all
// leading and trailing whitespace is ignored, and any run of whitespace in
// the middle collapses to a single space.
func (e *Engine) stringify(seq *pptoken.Sequence) pptoken.Token {
	toks := seq.Slice()

	if len(toks) == 0 || toks[0].Kind == pptoken.EMPTY_ARG {
		return pptoken.Token{Kind: pptoken.STRING, Text: e.interner.InternString(`""`)}
	}

	if len(toks) == 1 {
		tok := toks[0]
		text := escapeForString(tok.Spelling(e.interner))
		return pptoken.Token{Kind: pptoken.STRING, Text: e.interner.InternString(`"` + text + `"`)}
	}

	var sb strings.Builder
	for i, tok := range toks {
		if tok.Kind == pptoken.NEWLINE {
			break
		}
		if i > 0 && tok.LeadingSpace > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(escapeForString(tok.Spelling(e.interner)))
	}

	return pptoken.Token{Kind: pptoken.STRING, Text: e.interner.InternString(`"` + sb.String() + `"`)}
}

// escapeForString backslash-escapes `"` and `\` inside the spelling of a
// STRING or CHAR_CONST token being folded into an outer string literal, per
// the C standard's stringification rule.
func escapeForString(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
