// Package config resolves a translation unit's preprocessing settings
// from the CLI flags in cmd/cpp-expand plus an optional cpp.toml project
// file, in the style of the teacher's lookbusy1344-style config loader:
// a CLI --std overrides the file's std, list settings from both sources are
// combined, and a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gocpp/macroexpand/pkg/directive"
	"github.com/gocpp/macroexpand/pkg/macro"
)

// Project is the shape of a cpp.toml project file: default search paths
// and defines shared across every file preprocessed in a directory,
// without having to repeat them on every invocation's command line.
type Project struct {
	Std      string   `toml:"std"`
	Include  []string `toml:"include"`
	System   []string `toml:"system"`
	Defines  []string `toml:"defines"`
	Undefine []string `toml:"undefine"`
}

// LoadProject reads path as a cpp.toml file. A missing file returns a
// zero-value Project and no error, matching the CLI's "toml is optional"
// contract.
func LoadProject(path string) (*Project, error) {
	var p Project
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &p, nil
	}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &p, nil
}

// FindProjectFile walks up from dir looking for a cpp.toml, the way a
// project-root config file is conventionally discovered. It returns "" if
// none is found before reaching the filesystem root.
func FindProjectFile(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, "cpp.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// StandardFromName parses a --std flag value ("c89", "c99", "c11") into a
// macro.Standard, defaulting to C99 for an empty or unrecognized name.
func StandardFromName(name string) macro.Standard {
	switch name {
	case "c89", "c90", "ansi":
		return macro.C89
	case "c11", "c17":
		return macro.C11
	default:
		return macro.C99
	}
}

// Resolve merges a Project (if any) with CLI-supplied flags into the
// directive.Options the driver needs. A non-empty CLI std replaces the
// project's std. Include paths, system paths, defines and undefines are not
// replaced: the project's entries come first and the CLI's are appended
// after them.
func Resolve(proj *Project, std string, includes, system, defines, undefines []string) directive.Options {
	opts := directive.Options{}

	opts.IncludePaths = append(opts.IncludePaths, proj.Include...)
	opts.IncludePaths = append(opts.IncludePaths, includes...)
	opts.SystemPaths = append(opts.SystemPaths, proj.System...)
	opts.SystemPaths = append(opts.SystemPaths, system...)
	opts.Defines = append(opts.Defines, proj.Defines...)
	opts.Defines = append(opts.Defines, defines...)
	opts.Undefines = append(opts.Undefines, proj.Undefine...)
	opts.Undefines = append(opts.Undefines, undefines...)

	if std == "" {
		std = proj.Std
	}
	opts.Standard = StandardFromName(std)

	return opts
}
