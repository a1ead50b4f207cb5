package macro

import (
	"github.com/gocpp/macroexpand/pkg/pptoken"
)

// readArg consumes tokens from toks[cursor:] until, at nesting depth zero,
// it finds ',' or ')'. Returns the collected argument and the index of the
// terminating token. Ported from lacc's read_arg
// (original_source/.../macro.c).
func (e *Engine) readArg(toks *pptoken.Sequence, cursor int) (*pptoken.Sequence, int) {
	nesting := 0
	arg := e.pool.Acquire()

	for {
		tok := toks.At(cursor)
		if nesting == 0 && tok.IsPunct(e.interner, ",") {
			break
		}
		if nesting == 0 && tok.IsPunct(e.interner, ")") {
			break
		}
		if tok.Kind == pptoken.NEWLINE {
			e.diag.Fatalf("unexpected end of input in expansion")
			return arg, cursor
		}
		if tok.IsPunct(e.interner, "(") {
			nesting++
		} else if tok.IsPunct(e.interner, ")") {
			nesting--
			if nesting < 0 {
				e.diag.Fatalf("negative nesting depth in expansion")
				return arg, cursor
			}
		}
		arg.Append(tok)
		cursor++
	}

	if arg.Len() == 0 {
		arg.Append(pptoken.Token{Kind: pptoken.EMPTY_ARG})
	}
	return arg, cursor
}

// skipExpect consumes the punctuator spelled want at cursor, fatally
// diagnosing a missing delimiter if it is not there. Ported from lacc's
// skip().
func (e *Engine) skipExpect(toks *pptoken.Sequence, cursor int, want string) int {
	tok := toks.At(cursor)
	if !tok.IsPunct(e.interner, want) {
		e.diag.Fatalf("expected '%s', but got '%s'", want, pplexSpell(e, tok))
		return cursor
	}
	return cursor + 1
}

// readArgs parses the argument list for a macro invocation. For ObjectLike
// macros it returns nil and leaves the cursor untouched. For FunctionLike
// macros it requires '(', reads macro.Params arguments separated by ',',
// then requires ')'. Argument count is validated by validateArgCount.
func (e *Engine) readArgs(def *Macro, toks *pptoken.Sequence, cursor int) ([]*pptoken.Sequence, int) {
	if def.Kind != FunctionLike {
		return nil, cursor
	}

	cursor = e.skipExpect(toks, cursor, "(")

	var args []*pptoken.Sequence
	fixedParams := def.Params
	if def.Variadic && fixedParams > 0 {
		fixedParams--
	}

	// Read fixed parameters.
	for i := 0; i < fixedParams; i++ {
		var arg *pptoken.Sequence
		arg, cursor = e.readArg(toks, cursor)
		args = append(args, arg)
		if i < fixedParams-1 || def.Variadic {
			cursor = e.skipExpect(toks, cursor, ",")
		}
	}

	if def.Variadic {
		// Everything up to the closing paren, commas included, becomes a
		// single __VA_ARGS__ argument.
		varArg := e.pool.Acquire()
		nesting := 0
		for {
			tok := toks.At(cursor)
			if nesting == 0 && tok.IsPunct(e.interner, ")") {
				break
			}
			if tok.Kind == pptoken.NEWLINE {
				e.diag.Fatalf("unexpected end of input in expansion")
				break
			}
			if tok.IsPunct(e.interner, "(") {
				nesting++
			} else if tok.IsPunct(e.interner, ")") {
				nesting--
			}
			varArg.Append(tok)
			cursor++
		}
		if varArg.Len() == 0 {
			varArg.Append(pptoken.Token{Kind: pptoken.EMPTY_ARG})
		}
		args = append(args, varArg)
	}

	cursor = e.skipExpect(toks, cursor, ")")
	e.validateArgCount(def, args)
	return args, cursor
}

func (e *Engine) validateArgCount(def *Macro, args []*pptoken.Sequence) {
	expected := def.Params
	if def.Variadic {
		if len(args) < expected {
			e.diag.Fatalf("macro '%s' requires at least %d arguments, got %d",
				e.interner.String(def.Name), expected, len(args))
		}
		return
	}
	if len(args) != expected {
		e.diag.Fatalf("macro '%s' requires %d arguments, got %d",
			e.interner.String(def.Name), expected, len(args))
	}
}

func pplexSpell(e *Engine, tok pptoken.Token) string {
	return tok.Spelling(e.interner)
}
