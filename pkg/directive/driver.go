package directive

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocpp/macroexpand/pkg/diag"
	"github.com/gocpp/macroexpand/pkg/intern"
	"github.com/gocpp/macroexpand/pkg/macro"
	"github.com/gocpp/macroexpand/pkg/pplex"
	"github.com/gocpp/macroexpand/pkg/posource"
	"github.com/gocpp/macroexpand/pkg/pptoken"
)

// Options configures a Driver, the Go equivalent of the teacher's
// pkg/cpp/preprocess.go PreprocessorOptions.
type Options struct {
	// Defines holds command-line `-D` definitions, each either "NAME" or
	// "NAME=VALUE".
	Defines []string
	// Undefines holds command-line `-U` names.
	Undefines []string
	IncludePaths []string
	SystemPaths  []string
	Standard     macro.Standard
}

// Driver is the top-level preprocessing loop: it tokenizes a source file
// line by line, recognizes directive lines, dispatches them to the macro
// engine, the conditional tracker, and the include resolver, and expands
// and emits ordinary source lines. Adapted from the teacher's
// pkg/cpp/preprocess.go Preprocessor.
type Driver struct {
	Engine   *macro.Engine
	Cond     *Conditional
	Includes *IncludeResolver
	Pos      *posource.Stack
	Diag     *diag.Sink

	includeGuards map[string]intern.Symbol
}

// NewDriver builds a Driver over a fresh translation unit rooted at
// filename, applying opts' command-line defines/undefines and search
// paths before any source is read.
func NewDriver(filename string, opts Options) *Driver {
	interner := intern.New()
	pos := posource.New(filename)
	sink := diag.New(os.Stderr)
	tokenize := func(text string) (pptoken.Token, int) {
		return pplex.TokenizeOne(interner, text)
	}
	engine := macro.NewEngine(interner, pos, sink, tokenize)
	engine.RegisterBuiltins(opts.Standard)

	resolver := NewIncludeResolver()
	for _, p := range opts.IncludePaths {
		resolver.AddUserPath(p)
	}
	for _, p := range opts.SystemPaths {
		resolver.AddSystemPath(p)
	}

	d := &Driver{
		Engine:        engine,
		Cond:          NewConditional(engine),
		Includes:      resolver,
		Pos:           pos,
		Diag:          sink,
		includeGuards: make(map[string]intern.Symbol),
	}
	d.applyCmdline(opts.Defines, opts.Undefines)
	return d
}

func (d *Driver) applyCmdline(defines, undefines []string) {
	for _, def := range defines {
		name, body, hasBody := strings.Cut(def, "=")
		if !hasBody {
			body = "1"
		}
		repl := d.Engine.ParseReplacement(body, nil, "", 0)
		d.Engine.Table.Define(macro.Macro{
			Name:        d.Engine.Interner().InternString(name),
			Kind:        macro.ObjectLike,
			Replacement: repl,
		})
	}
	for _, name := range undefines {
		d.Engine.Table.Undef(d.Engine.Interner().InternString(name))
	}
}

// PreprocessFile reads and preprocesses filename, returning the expanded
// source text.
func (d *Driver) PreprocessFile(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := d.Includes.Push(filename); err != nil {
		return "", err
	}
	defer d.Includes.Pop()
	return d.PreprocessString(string(content), filename)
}

// PreprocessString preprocesses source, reporting positions against
// filename.
func (d *Driver) PreprocessString(source, filename string) (string, error) {
	interner := d.Engine.Interner()
	lex := pplex.New(interner, source, filename)
	pool := d.Engine.Pool()

	var out strings.Builder
	line := pool.Acquire()
	lineNo := 1

	flush := func() error {
		defer func() { line = pool.Acquire() }()
		d.Pos.SetLine(lineNo)
		text, err := d.processLine(line, filename)
		pool.Release(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", filename, lineNo, err)
		}
		out.WriteString(text)
		return nil
	}

	for {
		tok := lex.NextToken()
		if tok.Kind == pptoken.END {
			if line.Len() > 0 {
				if err := flush(); err != nil {
					return "", err
				}
			}
			break
		}
		if tok.Kind == pptoken.NEWLINE {
			if err := flush(); err != nil {
				return "", err
			}
			lineNo++
			continue
		}
		line.Append(tok)
	}

	if err := d.Cond.CheckBalanced(); err != nil {
		return "", fmt.Errorf("%s: %w", filename, err)
	}
	return out.String(), nil
}

// processLine handles one logical source line, already split at its
// terminating newline: directives are dispatched, ordinary lines are
// expanded (only when the current conditional nesting is active).
func (d *Driver) processLine(line *pptoken.Sequence, filename string) (string, error) {
	if line.Len() == 0 {
		return "", nil
	}
	if line.At(0).Kind == pptoken.HASH {
		body := d.Engine.Pool().Acquire()
		defer d.Engine.Pool().Release(body)
		for i := 1; i < line.Len(); i++ {
			body.Append(line.At(i))
		}
		return d.processDirective(body, filename)
	}

	if !d.Cond.IsActive() {
		return "", nil
	}
	d.Engine.Expand(line)
	return pplex.Spell(d.Engine.Interner(), line.Slice()) + "\n", nil
}

func (d *Driver) processDirective(body *pptoken.Sequence, filename string) (string, error) {
	interner := d.Engine.Interner()
	pool := d.Engine.Pool()

	dir, err := Parse(interner, pool, body)
	if err != nil {
		if !d.Cond.IsActive() {
			return "", nil
		}
		return "", err
	}

	switch dir.Kind {
	case If:
		err := d.Cond.ProcessIf(dir.Expr)
		pool.Release(dir.Expr)
		return "", err
	case Ifdef:
		d.Cond.ProcessIfdef(dir.Identifier)
		return "", nil
	case Ifndef:
		d.Cond.ProcessIfndef(dir.Identifier)
		return "", nil
	case Elif:
		err := d.Cond.ProcessElif(dir.Expr)
		pool.Release(dir.Expr)
		return "", err
	case Else:
		return "", d.Cond.ProcessElse()
	case Endif:
		return "", d.Cond.ProcessEndif()
	}

	if !d.Cond.IsActive() {
		if dir.Body != nil {
			pool.Release(dir.Body)
		}
		return "", nil
	}

	switch dir.Kind {
	case Include:
		return d.processInclude(dir, filename)
	case Define:
		d.defineMacro(dir)
		return "", nil
	case Undef:
		d.Engine.Table.Undef(dir.Identifier)
		return "", nil
	case Line:
		return "", nil
	case Error:
		return "", fmt.Errorf("#error %s", dir.Message)
	case Warning:
		d.Diag.Warnf("%s", dir.Message)
		return "", nil
	case Pragma:
		return d.processPragma(dir, filename)
	case Empty:
		return "", nil
	default:
		return "", fmt.Errorf("unhandled directive")
	}
}

func (d *Driver) defineMacro(dir *Directive) {
	pool := d.Engine.Pool()
	defer pool.Release(dir.Body)

	kind := macro.ObjectLike
	params := dir.Params
	arity := 0
	if dir.IsFunctionLike {
		kind = macro.FunctionLike
		arity = len(params)
		if dir.Variadic {
			arity++
		}
	}

	repl := d.Engine.BuildReplacement(dir.Body, params, dir.VarName, dir.Variadic)
	d.Engine.Table.Define(macro.Macro{
		Name:        dir.Identifier,
		Kind:        kind,
		Params:      arity,
		Variadic:    dir.Variadic,
		Replacement: repl,
	})
}

func (d *Driver) processInclude(dir *Directive, currentFile string) (string, error) {
	d.Includes.SetCurrentFile(currentFile)
	kind := HeaderQuoted
	if dir.HeaderKind == HeaderAngled {
		kind = HeaderAngled
	}
	path, err := d.Includes.Resolve(dir.HeaderName, kind)
	if err != nil {
		return "", fmt.Errorf("#include %q: %w", dir.HeaderName, err)
	}
	if d.Includes.AlreadyIncluded(path) {
		return "", nil
	}
	if guard, ok := d.includeGuards[path]; ok && d.Engine.Table.IsDefined(guard) {
		return "", nil
	}
	if d.Includes.Depth() >= maxIncludeDepth {
		return "", fmt.Errorf("#include nested too deeply")
	}

	if err := d.Includes.Push(path); err != nil {
		return "", err
	}
	defer d.Includes.Pop()

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if guard := detectIncludeGuard(d.Engine.Interner(), string(content), path); !guard.IsZero() {
		d.includeGuards[path] = guard
	}

	d.Pos.Push(path)
	defer d.Pos.Pop()

	result, err := d.PreprocessString(string(content), path)
	if err != nil {
		return "", fmt.Errorf("in %s: %w", path, err)
	}
	return result, nil
}

func (d *Driver) processPragma(dir *Directive, filename string) (string, error) {
	if strings.TrimSpace(dir.Message) == "once" {
		d.Includes.MarkPragmaOnce(filename)
		return "", nil
	}
	return "#pragma " + dir.Message + "\n", nil
}

// detectIncludeGuard recognizes the `#ifndef GUARD` / `#define GUARD`
// pattern at the start of content, letting repeat #includes of the same
// header short-circuit even files that never add `#pragma once`. Ported
// from the teacher's pkg/cpp/preprocess.go detectIncludeGuard.
func detectIncludeGuard(interner *intern.Table, content, filename string) intern.Symbol {
	var zero intern.Symbol
	lex := pplex.New(interner, content, filename)
	var toks []pptoken.Token
	for len(toks) <= 10 {
		tok := lex.NextToken()
		if tok.Kind == pptoken.END {
			break
		}
		if tok.Kind == pptoken.NEWLINE {
			continue
		}
		toks = append(toks, tok)
	}
	if len(toks) < 6 {
		return zero
	}
	ifndefSym := interner.Short("ifndef")
	defineSym := interner.Short("define")
	if toks[0].Kind != pptoken.HASH || toks[1].Kind != pptoken.IDENTIFIER || !intern.Equal(toks[1].Text, ifndefSym) {
		return zero
	}
	if toks[2].Kind != pptoken.IDENTIFIER {
		return zero
	}
	guard := toks[2].Text
	if toks[3].Kind == pptoken.HASH && toks[4].Kind == pptoken.IDENTIFIER && intern.Equal(toks[4].Text, defineSym) &&
		toks[5].Kind == pptoken.IDENTIFIER && intern.Equal(toks[5].Text, guard) {
		return guard
	}
	return zero
}
