package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocpp/macroexpand/pkg/macro"
)

func TestStandardFromName(t *testing.T) {
	tests := []struct {
		name string
		want macro.Standard
	}{
		{"c89", macro.C89},
		{"ansi", macro.C89},
		{"c99", macro.C99},
		{"", macro.C99},
		{"bogus", macro.C99},
		{"c11", macro.C11},
		{"c17", macro.C11},
	}
	for _, tt := range tests {
		if got := StandardFromName(tt.name); got != tt.want {
			t.Errorf("StandardFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoadProject_MissingFileIsNotAnError(t *testing.T) {
	p, err := LoadProject(filepath.Join(t.TempDir(), "cpp.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Std != "" || len(p.Include) != 0 {
		t.Errorf("expected a zero-value Project, got %+v", p)
	}
}

func TestLoadProject_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cpp.toml")
	content := `std = "c11"
include = ["include", "vendor/include"]
defines = ["DEBUG", "VERSION=2"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Std != "c11" {
		t.Errorf("Std = %q, want c11", p.Std)
	}
	if len(p.Include) != 2 || p.Include[0] != "include" {
		t.Errorf("Include = %v", p.Include)
	}
	if len(p.Defines) != 2 || p.Defines[1] != "VERSION=2" {
		t.Errorf("Defines = %v", p.Defines)
	}
}

func TestResolve_CLIAppendsToProject(t *testing.T) {
	proj := &Project{
		Std:     "c89",
		Include: []string{"proj-inc"},
		Defines: []string{"PROJ=1"},
	}
	opts := Resolve(proj, "c11", []string{"cli-inc"}, nil, []string{"CLI=2"}, nil)

	if opts.Standard != macro.C11 {
		t.Errorf("expected the CLI --std to override the project file, got %v", opts.Standard)
	}
	if len(opts.IncludePaths) != 2 || opts.IncludePaths[0] != "proj-inc" || opts.IncludePaths[1] != "cli-inc" {
		t.Errorf("IncludePaths = %v, want [proj-inc cli-inc]", opts.IncludePaths)
	}
	if len(opts.Defines) != 2 || opts.Defines[0] != "PROJ=1" || opts.Defines[1] != "CLI=2" {
		t.Errorf("Defines = %v, want [PROJ=1 CLI=2]", opts.Defines)
	}
}

func TestFindProjectFile(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src", "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "cpp.toml"), []byte("std = \"c99\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found := FindProjectFile(sub)
	want := filepath.Join(root, "cpp.toml")
	if found != want {
		t.Errorf("FindProjectFile(%q) = %q, want %q", sub, found, want)
	}
}

func TestFindProjectFile_NoneFound(t *testing.T) {
	dir := t.TempDir()
	if found := FindProjectFile(dir); found != "" {
		t.Errorf("expected no cpp.toml to be found, got %q", found)
	}
}
