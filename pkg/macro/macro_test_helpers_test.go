package macro

import (
	"fmt"
	"testing"

	"github.com/gocpp/macroexpand/pkg/intern"
	"github.com/gocpp/macroexpand/pkg/pplex"
	"github.com/gocpp/macroexpand/pkg/pptoken"
)

// fatalSignal is panicked by the test diagnostics sink in place of
// terminating the process, letting tests assert a fatal diagnostic fired
// via recover() without killing the test binary.
type fatalSignal struct{ msg string }

type testDiag struct{}

func (d *testDiag) Fatalf(format string, args ...any) {
	panic(fatalSignal{msg: fmt.Sprintf(format, args...)})
}

type fixedPos struct {
	file string
	line int
}

func (p fixedPos) CurrentFile() string { return p.file }
func (p fixedPos) CurrentLine() int    { return p.line }

func newTestEngine() (*Engine, *intern.Table) {
	table := intern.New()
	pos := fixedPos{file: "test.c", line: 7}
	d := &testDiag{}
	tokenize := func(text string) (pptoken.Token, int) {
		return pplex.TokenizeOne(table, text)
	}
	e := NewEngine(table, pos, d, tokenize)
	e.RegisterBuiltins(C99)
	return e, table
}

// assertFatal runs fn and reports a test failure unless it panics with a
// fatalSignal.
func assertFatal(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a fatal diagnostic, got none")
		}
		if _, ok := r.(fatalSignal); !ok {
			panic(r)
		}
	}()
	fn()
}
