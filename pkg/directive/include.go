package directive

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// maxIncludeDepth bounds #include nesting, ported from the teacher's
// pkg/cpp/include.go MaxIncludeDepth.
const maxIncludeDepth = 200

// IncludeResolver resolves `#include` header names to file paths and
// tracks the include stack for circular-include detection and
// `#pragma once`, adapted from the teacher's pkg/cpp/include.go
// IncludeResolver (renamed UserPaths/SystemPaths accessors, same
// resolution order: current directory, then -I paths, then system paths).
type IncludeResolver struct {
	UserPaths      []string
	SystemPaths    []string
	CurrentDir     string
	stack          []string
	pragmaOnce     map[string]bool
	systemDetected bool
}

// NewIncludeResolver creates an include resolver with no search paths.
func NewIncludeResolver() *IncludeResolver {
	return &IncludeResolver{pragmaOnce: make(map[string]bool)}
}

func (r *IncludeResolver) AddUserPath(path string)   { r.UserPaths = append(r.UserPaths, path) }
func (r *IncludeResolver) AddSystemPath(path string) { r.SystemPaths = append(r.SystemPaths, path) }

// SetCurrentFile records the directory of the file currently being
// processed, used to resolve quoted includes relative to it.
func (r *IncludeResolver) SetCurrentFile(filename string) {
	r.CurrentDir = filepath.Dir(filename)
}

// detectSystemPaths lazily probes the host C compiler for its default
// search paths, ported from the teacher's DetectSystemPaths/
// queryCompilerIncludePaths/getDefaultSystemPaths.
func (r *IncludeResolver) detectSystemPaths() {
	if r.systemDetected {
		return
	}
	r.systemDetected = true
	if paths := queryCompilerIncludePaths(); len(paths) > 0 {
		r.SystemPaths = append(r.SystemPaths, paths...)
		return
	}
	r.SystemPaths = append(r.SystemPaths, defaultSystemPaths()...)
}

// Resolve finds the absolute path of a header, searching the current
// directory (quoted form only), then user paths, then system paths.
func (r *IncludeResolver) Resolve(filename string, kind HeaderKind) (string, error) {
	r.detectSystemPaths()

	var search []string
	if kind == HeaderQuoted && r.CurrentDir != "" {
		search = append(search, r.CurrentDir)
	}
	search = append(search, r.UserPaths...)
	search = append(search, r.SystemPaths...)

	for _, dir := range search {
		full := filepath.Join(dir, filename)
		if _, err := os.Stat(full); err == nil {
			if abs, err := filepath.Abs(full); err == nil {
				return abs, nil
			}
			return full, nil
		}
	}
	return "", &NotFoundError{Filename: filename, Kind: kind}
}

// Push marks path as being included, returning a CircularError if it is
// already on the stack.
func (r *IncludeResolver) Push(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, f := range r.stack {
		if f == abs {
			return &CircularError{Path: abs, Stack: append([]string(nil), r.stack...)}
		}
	}
	r.stack = append(r.stack, abs)
	return nil
}

// Pop removes the most recently pushed file.
func (r *IncludeResolver) Pop() {
	if len(r.stack) > 0 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Depth reports the current include nesting depth.
func (r *IncludeResolver) Depth() int { return len(r.stack) }

// MarkPragmaOnce records that path declared `#pragma once`.
func (r *IncludeResolver) MarkPragmaOnce(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	r.pragmaOnce[abs] = true
}

// AlreadyIncluded reports whether path was already included under
// `#pragma once`.
func (r *IncludeResolver) AlreadyIncluded(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return r.pragmaOnce[abs]
}

// NotFoundError indicates a header could not be resolved.
type NotFoundError struct {
	Filename string
	Kind     HeaderKind
}

func (e *NotFoundError) Error() string {
	kind := "quoted"
	if e.Kind == HeaderAngled {
		kind = "angled"
	}
	return "include file not found: " + e.Filename + " (" + kind + ")"
}

// CircularError indicates a file includes itself, directly or through a
// chain of other includes.
type CircularError struct {
	Path  string
	Stack []string
}

func (e *CircularError) Error() string {
	var sb strings.Builder
	sb.WriteString("circular include detected: ")
	sb.WriteString(e.Path)
	for _, f := range e.Stack {
		sb.WriteString("\n  ")
		sb.WriteString(filepath.Base(f))
	}
	return sb.String()
}

func queryCompilerIncludePaths() []string {
	for _, compiler := range []string{"cc", "gcc", "clang"} {
		path, err := exec.LookPath(compiler)
		if err != nil {
			continue
		}
		if paths := queryCompiler(path); len(paths) > 0 {
			return paths
		}
	}
	return nil
}

func queryCompiler(compiler string) []string {
	cmd := exec.Command(compiler, "-v", "-E", "-x", "c", "-")
	cmd.Stdin = strings.NewReader("")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	_ = cmd.Run()
	return parseCompilerOutput(stderr.String())
}

func parseCompilerOutput(output string) []string {
	var paths []string
	inList := false
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "search starts here:"):
			inList = true
		case strings.Contains(line, "End of search list"):
			inList = false
		case inList:
			path := strings.TrimSpace(line)
			if strings.HasSuffix(path, " (framework directory)") {
				continue
			}
			if path != "" && dirExists(path) {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func defaultSystemPaths() []string {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			"/Library/Developer/CommandLineTools/SDKs/MacOSX.sdk/usr/include",
			"/usr/local/include",
		}
	default:
		candidates = []string{"/usr/include", "/usr/local/include"}
	}
	var paths []string
	for _, p := range candidates {
		if dirExists(p) {
			paths = append(paths, p)
		}
	}
	if runtime.GOOS == "linux" {
		paths = append(paths, gccIncludePaths()...)
	}
	return paths
}

func gccIncludePaths() []string {
	const base = "/usr/lib/gcc"
	if !dirExists(base) {
		return nil
	}
	var paths []string
	_ = filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && info.Name() == "include" {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}
