package macro

import "github.com/gocpp/macroexpand/pkg/pptoken"

// ParseReplacement lexes body into a replacement token sequence, rewriting
// any IDENTIFIER token whose spelling names a parameter into a PARAM token
// carrying that parameter's index. This is the seam the directive layer's
// command-line -D handling (pkg/directive) and the tests use to turn
// literal text into the PARAM-bearing replacement lists the data model
// requires (SPEC_FULL.md §3); #define lines go through BuildReplacement
// instead, and builtin.go lexes its bodies in registerSimple. Grounded on
// lacc's own parse() helper for built-ins
// (original_source/.../macro.c) generalized to take a real parameter name
// table instead of only a bare `@` placeholder.
//
// params maps a parameter name to its index. If variadicName is non-empty,
// an identifier spelled variadicName (conventionally "__VA_ARGS__") maps to
// the index one past the last fixed parameter.
func (e *Engine) ParseReplacement(body string, params map[string]int, variadicName string, variadicIndex int) *pptoken.Sequence {
	seq := e.pool.Acquire()
	for len(body) > 0 {
		tok, consumed := e.tokenize(body)
		if consumed == 0 || tok.Kind == pptoken.END {
			break
		}
		body = body[consumed:]

		if tok.Kind == pptoken.IDENTIFIER {
			name := e.interner.String(tok.Text)
			if variadicName != "" && name == variadicName {
				tok = pptoken.Token{Kind: pptoken.PARAM, Param: variadicIndex, LeadingSpace: tok.LeadingSpace}
			} else if idx, ok := params[name]; ok {
				tok = pptoken.Token{Kind: pptoken.PARAM, Param: idx, LeadingSpace: tok.LeadingSpace}
			}
		}
		if tok.Kind == pptoken.NEWLINE {
			continue
		}
		seq.Append(tok)
	}
	return seq
}

// ParseArgTokens lexes a bare token sequence (e.g. test input, or a line of
// source the directive layer has decided is not a directive) with no
// parameter substitution.
func (e *Engine) ParseArgTokens(src string) *pptoken.Sequence {
	return e.ParseReplacement(src, nil, "", 0)
}
