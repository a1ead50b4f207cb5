package macro

import (
	"github.com/gocpp/macroexpand/pkg/intern"
	"github.com/gocpp/macroexpand/pkg/pptoken"
)

// BuildReplacement rewrites body into a PARAM-bearing replacement list: any
// IDENTIFIER token spelled like one of params becomes a PARAM token
// carrying that parameter's index, and (if variadic) an identifier spelled
// variadicName becomes a PARAM token one slot past the last fixed
// parameter. It is the token-already-lexed sibling of ParseReplacement
// (parse.go): the directive layer (pkg/directive) tokenizes a #define line
// with the same lexer the rest of a translation unit uses and must not
// re-lex its own body text, whereas ParseReplacement exists for callers
// (tests, command-line -D definitions) that only have a literal string in
// hand.
func (e *Engine) BuildReplacement(body *pptoken.Sequence, params []intern.Symbol, variadicName intern.Symbol, variadic bool) *pptoken.Sequence {
	index := make(map[intern.Symbol]int, len(params))
	for i, p := range params {
		index[p] = i
	}
	variadicIndex := len(params)

	out := e.pool.Acquire()
	n := body.Len()
	for i := 0; i < n; i++ {
		t := body.At(i)
		if t.Kind == pptoken.IDENTIFIER {
			if variadic && intern.Equal(t.Text, variadicName) {
				t = pptoken.Token{Kind: pptoken.PARAM, Param: variadicIndex, LeadingSpace: t.LeadingSpace}
			} else if idx, ok := index[t.Text]; ok {
				t = pptoken.Token{Kind: pptoken.PARAM, Param: idx, LeadingSpace: t.LeadingSpace}
			}
		}
		out.Append(t)
	}
	return out
}
