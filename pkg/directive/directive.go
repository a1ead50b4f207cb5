// Package directive implements the preprocessor's line-oriented directive
// layer: recognizing and dispatching `#define`, `#undef`, the `#if` family,
// `#include`, `#pragma`, `#error` and `#line`, and driving pkg/macro.Engine
// through its public interfaces rather than reaching into engine internals.
// It is the Go home of the concern the teacher's pkg/cpp/preprocess.go and
// pkg/cpp/conditional.go cover, adapted from token-by-rune directive
// tracking in []cpp.Token to the pptoken.Sequence the engine already deals
// in everywhere else.
package directive

import (
	"fmt"

	"github.com/gocpp/macroexpand/pkg/intern"
	"github.com/gocpp/macroexpand/pkg/pplex"
	"github.com/gocpp/macroexpand/pkg/pptoken"
)

// Kind distinguishes the directive a line names, mirroring the DIR_*
// constants implied by the dispatch switch in the teacher's
// pkg/cpp/preprocess.go processDirective.
type Kind int

const (
	Unknown Kind = iota
	If
	Ifdef
	Ifndef
	Elif
	Else
	Endif
	Define
	Undef
	Include
	Line
	Error
	Warning
	Pragma
	Empty
)

// Directive is a parsed `#...` line, with Expr/Body carrying whatever
// trailing tokens the Kind requires interpreting further (a constant
// expression for If/Elif, a macro body for Define, a header name for
// Include).
type Directive struct {
	Kind           Kind
	Identifier     intern.Symbol
	Expr           *pptoken.Sequence
	IsFunctionLike bool
	Params         []intern.Symbol
	Variadic       bool
	VarName        intern.Symbol
	Body           *pptoken.Sequence
	HeaderName string
	HeaderKind HeaderKind
	Message    string
}

// HeaderKind distinguishes <file> from "file" includes.
type HeaderKind int

const (
	HeaderQuoted HeaderKind = iota
	HeaderAngled
)

var directiveNames = map[string]Kind{
	"if":      If,
	"ifdef":   Ifdef,
	"ifndef":  Ifndef,
	"elif":    Elif,
	"else":    Else,
	"endif":   Endif,
	"define":  Define,
	"undef":   Undef,
	"include": Include,
	"line":    Line,
	"error":   Error,
	"warning": Warning,
	"pragma":  Pragma,
}

// Parse interprets the tokens following a leading `#` on a source line
// (the `#` itself already consumed). pool is used to build Expr/Body
// sequences for the caller to eventually hand to macro.Engine.Expand; the
// caller is responsible for releasing them.
func Parse(interner *intern.Table, pool *pptoken.Pool, line *pptoken.Sequence) (*Directive, error) {
	if line.Len() == 0 {
		return &Directive{Kind: Empty}, nil
	}

	head := line.At(0)
	if head.Kind != pptoken.IDENTIFIER {
		return nil, fmt.Errorf("expected a directive name, got %q", head.Spelling(interner))
	}
	name := interner.String(head.Text)
	kind, ok := directiveNames[name]
	if !ok {
		return nil, fmt.Errorf("unknown preprocessing directive #%s", name)
	}

	d := &Directive{Kind: kind}
	rest := pool.Acquire()
	defer pool.Release(rest)
	for i := 1; i < line.Len(); i++ {
		rest.Append(line.At(i))
	}

	switch kind {
	case Ifdef, Ifndef, Undef:
		if rest.Len() == 0 || rest.At(0).Kind != pptoken.IDENTIFIER {
			return nil, fmt.Errorf("#%s requires an identifier", name)
		}
		d.Identifier = rest.At(0).Text

	case If, Elif:
		d.Expr = copySeq(pool, rest)

	case Define:
		if err := parseDefine(interner, pool, rest, d); err != nil {
			return nil, err
		}

	case Include:
		if err := parseInclude(interner, rest, d); err != nil {
			return nil, err
		}

	case Error, Warning:
		d.Message = spell(interner, rest)

	case Pragma:
		d.Message = spell(interner, rest)

	case Line:
		d.Message = spell(interner, rest)
	}

	return d, nil
}

func copySeq(pool *pptoken.Pool, src *pptoken.Sequence) *pptoken.Sequence {
	out := pool.Acquire()
	for i := 0; i < src.Len(); i++ {
		out.Append(src.At(i))
	}
	return out
}

func spell(interner *intern.Table, seq *pptoken.Sequence) string {
	toks := make([]pptoken.Token, seq.Len())
	for i := range toks {
		toks[i] = seq.At(i)
	}
	return pplex.Spell(interner, toks)
}

// parseDefine splits a `#define NAME[(params)] body` line into its name,
// optional parameter list (function-like only if `(` immediately follows
// NAME with no intervening space — the C rule the teacher's lexer
// preserves via LeadingSpace), and replacement body tokens.
func parseDefine(interner *intern.Table, pool *pptoken.Pool, rest *pptoken.Sequence, d *Directive) error {
	if rest.Len() == 0 || rest.At(0).Kind != pptoken.IDENTIFIER {
		return fmt.Errorf("#define requires a macro name")
	}
	d.Identifier = rest.At(0).Text
	i := 1

	if i < rest.Len() && rest.At(i).IsPunct(interner, "(") && rest.At(i).LeadingSpace == 0 {
		d.IsFunctionLike = true
		i++
		for i < rest.Len() && !rest.At(i).IsPunct(interner, ")") {
			tok := rest.At(i)
			switch {
			case tok.IsPunct(interner, "..."):
				d.Variadic = true
				d.VarName = interner.Short("__VA_ARGS__")
				i++
			case tok.Kind == pptoken.IDENTIFIER:
				d.Params = append(d.Params, tok.Text)
				i++
			case tok.IsPunct(interner, ","):
				i++
			default:
				return fmt.Errorf("unexpected token in macro parameter list: %q", tok.Spelling(interner))
			}
		}
		if i >= rest.Len() {
			return fmt.Errorf("unterminated macro parameter list")
		}
		i++ // consume ')'
		d.Body = pool.Acquire()
		for ; i < rest.Len(); i++ {
			d.Body.Append(rest.At(i))
		}
	} else {
		d.Body = pool.Acquire()
		for ; i < rest.Len(); i++ {
			d.Body.Append(rest.At(i))
		}
	}
	return nil
}

func parseInclude(interner *intern.Table, rest *pptoken.Sequence, d *Directive) error {
	if rest.Len() == 0 {
		return fmt.Errorf("#include expects \"FILENAME\" or <FILENAME>")
	}
	first := rest.At(0)
	switch first.Kind {
	case pptoken.STRING:
		text := interner.String(first.Text)
		if len(text) < 2 {
			return fmt.Errorf("malformed #include header name")
		}
		d.HeaderName = text[1 : len(text)-1]
		d.HeaderKind = HeaderQuoted
		return nil
	case pptoken.PUNCT:
		if interner.String(first.Text) != "<" {
			break
		}
		var name string
		i := 1
		for ; i < rest.Len(); i++ {
			tok := rest.At(i)
			if tok.IsPunct(interner, ">") {
				d.HeaderName = name
				d.HeaderKind = HeaderAngled
				return nil
			}
			name += tok.Spelling(interner)
		}
	}
	return fmt.Errorf("malformed #include directive")
}
