package macro

import "github.com/gocpp/macroexpand/pkg/pptoken"

// Standard names the C version a Table's built-ins are registered for,
// mirroring lacc's context.standard (original_source/include/lacc/context.h).
type Standard int

const (
	C89 Standard = iota
	C99
	C11
)

// RegisterBuiltins installs the predefined macros every translation unit
// starts with, ported from lacc's register_builtin_definitions() /
// register_macro() / parse(). __FILE__ and __LINE__ are registered with a
// placeholder "0" replacement token exactly as the original does; Table
// rewrites it on every Lookup once IsFile/IsLine are set by Define.
func (e *Engine) RegisterBuiltins(std Standard) {
	e.registerSimple("__STDC__", "1")
	e.registerSimple("__STDC_HOSTED__", "1")
	e.registerSimple("__x86_64__", "1")
	e.registerSimple("__inline", "")
	e.registerSimple("__FILE__", "0")
	e.registerSimple("__LINE__", "0")

	switch std {
	case C89:
		e.registerSimple("__STDC_VERSION__", "199409L")
		e.registerSimple("__STRICT_ANSI__", "")
	case C99, C11:
		e.registerSimple("__STDC_VERSION__", "199901L")
	}
}

// registerSimple defines an object-like macro from a parsed literal body,
// the Go equivalent of lacc's register_macro(key, value)/parse(value). The
// `@` marker lacc's parse() recognizes as a PARAM placeholder is supported
// for parity, though none of the current built-ins use it.
func (e *Engine) registerSimple(name, body string) {
	repl := e.pool.Acquire()
	for len(body) > 0 {
		if body[0] == '@' {
			repl.Append(pptoken.Token{Kind: pptoken.PARAM, Param: 0})
			body = body[1:]
			continue
		}
		tok, consumed := e.tokenize(body)
		if consumed == 0 || tok.Kind == pptoken.END {
			break
		}
		repl.Append(tok)
		body = body[consumed:]
	}
	e.Table.Define(Macro{
		Name:        e.interner.InternString(name),
		Kind:        ObjectLike,
		Replacement: repl,
	})
}
