package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gocpp/macroexpand/pkg/directive"
	"github.com/gocpp/macroexpand/pkg/intern"
	"github.com/gocpp/macroexpand/pkg/pplex"
	"github.com/gocpp/macroexpand/pkg/pptoken"
)

func newDefineCmd(out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "define <name[(params)] body>",
		Short: "Print the parsed form of a single macro definition",
		Long: `define parses one macro definition the way a #define line would be
parsed, without expanding anything, and prints its name, kind, parameter
list, and replacement body — useful for checking how '#' and '##' in a
macro body will be interpreted before running it through "expand".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefine(args[0], out, errOut)
		},
	}
	return cmd
}

func runDefine(definition string, out, errOut io.Writer) error {
	interner := intern.New()
	pool := pptoken.NewPool()

	line := pool.Acquire()
	defer pool.Release(line)
	lex := pplex.New(interner, definition, "<define>")
	for {
		tok := lex.NextToken()
		if tok.Kind == pptoken.END || tok.Kind == pptoken.NEWLINE {
			break
		}
		line.Append(tok)
	}

	// Parse expects the directive name as the first token (the leading
	// '#' is never part of the line it receives), so splice one on.
	directiveLine := pool.Acquire()
	defer pool.Release(directiveLine)
	directiveLine.Append(pptoken.Token{Kind: pptoken.IDENTIFIER, Text: interner.Short("define")})
	for i := 0; i < line.Len(); i++ {
		directiveLine.Append(line.At(i))
	}

	dir, err := directive.Parse(interner, pool, directiveLine)
	if err != nil {
		fmt.Fprintf(errOut, "cpp-expand: %v\n", err)
		return err
	}
	defer func() {
		if dir.Body != nil {
			pool.Release(dir.Body)
		}
	}()

	kind := "object-like"
	if dir.IsFunctionLike {
		kind = "function-like"
	}

	fmt.Fprintf(out, "name:      %s\n", interner.String(dir.Identifier))
	fmt.Fprintf(out, "kind:      %s\n", kind)
	if dir.IsFunctionLike {
		params := make([]string, len(dir.Params))
		for i, p := range dir.Params {
			params[i] = interner.String(p)
		}
		fmt.Fprintf(out, "params:    [%s]\n", strings.Join(params, ", "))
		fmt.Fprintf(out, "variadic:  %v\n", dir.Variadic)
	}
	fmt.Fprintf(out, "body:      %s\n", spellTokens(interner, dir.Body))
	fmt.Fprintf(out, "stringify: %v\n", hasStringify(dir.Body, dir.Params, dir.VarName, dir.Variadic))
	return nil
}

func spellTokens(interner *intern.Table, seq *pptoken.Sequence) string {
	if seq == nil {
		return ""
	}
	toks := make([]pptoken.Token, seq.Len())
	for i := range toks {
		toks[i] = seq.At(i)
	}
	return pplex.Spell(interner, toks)
}

// hasStringify reports whether body contains `#` immediately followed by
// a parameter name. dir.Body has not been rewritten into PARAM tokens
// (define only parses — it never defines the macro in a live engine), so
// this checks identifier spellings against params/variadicName directly
// instead of reusing pkg/macro's PARAM-token-based check.
func hasStringify(body *pptoken.Sequence, params []intern.Symbol, variadicName intern.Symbol, variadic bool) bool {
	if body == nil {
		return false
	}
	isParam := func(sym intern.Symbol) bool {
		if variadic && intern.Equal(sym, variadicName) {
			return true
		}
		for _, p := range params {
			if intern.Equal(sym, p) {
				return true
			}
		}
		return false
	}
	n := body.Len()
	for i := 0; i+1 < n; i++ {
		next := body.At(i + 1)
		if body.At(i).Kind == pptoken.HASH && next.Kind == pptoken.IDENTIFIER && isParam(next.Text) {
			return true
		}
	}
	return false
}
