package macro

import "github.com/gocpp/macroexpand/pkg/pptoken"

// expandPaste resolves every TOKEN_PASTE in seq with a single left-to-right
// pass, mutating seq in place. Ported from lacc's expand_paste_operators
// (original_source/.../macro.c), including the EMPTY_ARG collapse rules
// required by SPEC_FULL.md §4.D.
func (e *Engine) expandPaste(seq *pptoken.Sequence) {
	toks := seq.Slice()
	n := len(toks)
	if n == 0 {
		return
	}
	if toks[0].Kind == pptoken.TOKEN_PASTE {
		e.diag.Fatalf("## cannot appear at start of replacement list")
		return
	}
	if toks[n-1].Kind == pptoken.TOKEN_PASTE {
		e.diag.Fatalf("## cannot appear at end of replacement list")
		return
	}

	out := make([]pptoken.Token, 0, n)
	i := 0
	for i < n {
		if i+1 < n && toks[i+1].Kind == pptoken.TOKEN_PASTE {
			left := toks[i]
			right := toks[i+2]
			pasted, ok := e.paste(left, right)
			if !ok {
				out = append(out, pptoken.Token{Kind: pptoken.PLACEHOLDER})
				// A collapsed pair is an empty left operand for a chained paste.
				pasted = []pptoken.Token{{Kind: pptoken.EMPTY_ARG}}
			} else {
				out = append(out, pasted...)
			}
			i += 3
			// Chained pastes: a##b##c parses as ((a##b)##c); feed the
			// freshly pasted token(s) back in as the new left-hand side.
			for i < n && toks[i].Kind == pptoken.TOKEN_PASTE {
				if len(pasted) != 1 {
					e.diag.Fatalf("invalid token resulting from pasting")
					return
				}
				rightNext := toks[i+1]
				var pastedNext []pptoken.Token
				pastedNext, ok = e.paste(pasted[0], rightNext)
				if !ok {
					out[len(out)-1] = pptoken.Token{Kind: pptoken.PLACEHOLDER}
					pastedNext = []pptoken.Token{{Kind: pptoken.EMPTY_ARG}}
				} else {
					out = out[:len(out)-len(pasted)]
					out = append(out, pastedNext...)
				}
				pasted = pastedNext
				i += 2
			}
			continue
		}
		out = append(out, toks[i])
		i++
	}

	// Strip EMPTY_ARG and PLACEHOLDER tokens not involved in a paste.
	filtered := out[:0]
	for _, tok := range out {
		if tok.Kind != pptoken.EMPTY_ARG && tok.Kind != pptoken.PLACEHOLDER {
			filtered = append(filtered, tok)
		}
	}
	seq.FromSlice(filtered)
}

// paste concatenates the textual forms of left and right and re-lexes the
// result. Returns ok == false when both sides are EMPTY_ARG (the pasted
// pair collapses to nothing).
func (e *Engine) paste(left, right pptoken.Token) ([]pptoken.Token, bool) {
	if left.Kind == pptoken.EMPTY_ARG && right.Kind == pptoken.EMPTY_ARG {
		return nil, false
	}
	if left.Kind == pptoken.EMPTY_ARG {
		return []pptoken.Token{right}, true
	}
	if right.Kind == pptoken.EMPTY_ARG {
		return []pptoken.Token{left}, true
	}

	text := left.Spelling(e.interner) + right.Spelling(e.interner)
	tok, consumed := e.tokenize(text)
	if consumed != len(text) || tok.Kind == pptoken.END {
		e.diag.Fatalf("invalid token resulting from pasting '%s' and '%s'",
			left.Spelling(e.interner), right.Spelling(e.interner))
		return nil, false
	}
	tok.LeadingSpace = left.LeadingSpace
	return []pptoken.Token{tok}, true
}
