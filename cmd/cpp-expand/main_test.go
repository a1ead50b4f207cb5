package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func resetFlags() {
	includePaths = nil
	systemPaths = nil
	defineFlags = nil
	undefFlags = nil
	stdFlag = ""
	projectFlag = ""
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	for _, name := range []string{"expand", "define"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a %q subcommand", name)
		}
	}
}

func TestExpandCmd_DefineAndExpand(t *testing.T) {
	resetFlags()
	defer resetFlags()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "test.c")
	src := `#define SQUARE(x) ((x)*(x))
int y = SQUARE(5);
`
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"expand", srcPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}
	if !strings.Contains(out.String(), "(( 5)*( 5))") {
		t.Errorf("expected expansion in output, got: %s", out.String())
	}
}

func TestExpandCmd_CommandLineDefine(t *testing.T) {
	resetFlags()
	defer resetFlags()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "test.c")
	if err := os.WriteFile(srcPath, []byte("int x = FOO;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"expand", "-D", "FOO=99", srcPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}
	if !strings.Contains(out.String(), "int x = 99;") {
		t.Errorf("expected FOO to expand to 99, got: %s", out.String())
	}
}

func TestExpandCmd_MissingFile(t *testing.T) {
	resetFlags()
	defer resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"expand", filepath.Join(t.TempDir(), "does-not-exist.c")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestDefineCmd_FunctionLike(t *testing.T) {
	resetFlags()
	defer resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"define", "MAX(a, b) ((a)>(b)?(a):(b))"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}

	got := out.String()
	for _, want := range []string{"name:      MAX", "kind:      function-like", "params:    [a, b]"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output, got:\n%s", want, got)
		}
	}
}

func TestDefineCmd_ObjectLike(t *testing.T) {
	resetFlags()
	defer resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"define", "VERSION 42"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}

	got := out.String()
	for _, want := range []string{"name:      VERSION", "kind:      object-like", "body:      42"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output, got:\n%s", want, got)
		}
	}
}

func TestDefineCmd_DetectsStringify(t *testing.T) {
	resetFlags()
	defer resetFlags()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"define", `STR(x) #x`})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, errOut.String())
	}
	if !strings.Contains(out.String(), "stringify: true") {
		t.Errorf("expected stringify: true, got:\n%s", out.String())
	}
}
