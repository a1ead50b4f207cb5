package main

import (
	"io"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Shared preprocessing flags, following the teacher's cmd/ralph-cc/main.go
// package-level-flag-variable style.
var (
	includePaths []string
	systemPaths  []string
	defineFlags  []string
	undefFlags   []string
	stdFlag      string
	projectFlag  string
)

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cpp-expand",
		Short:         "cpp-expand drives a standalone C macro-expansion engine",
		Long:          `cpp-expand preprocesses C source through an independent macro-expansion engine: #define/#undef, the #if family, #include resolution, and the full object-like and function-like macro substitution algorithm (stringification, token-pasting, recursion guarding).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringArrayVarP(&includePaths, "include", "I", nil, "Add directory to include search path")
	rootCmd.PersistentFlags().StringArrayVar(&systemPaths, "isystem", nil, "Add directory to system include search path")
	rootCmd.PersistentFlags().StringArrayVarP(&defineFlags, "define", "D", nil, "Define macro (NAME or NAME=VALUE)")
	rootCmd.PersistentFlags().StringArrayVarP(&undefFlags, "undefine", "U", nil, "Undefine macro")
	rootCmd.PersistentFlags().StringVar(&stdFlag, "std", "", "C standard (c89, c99, c11); defaults to c99")
	rootCmd.PersistentFlags().StringVar(&projectFlag, "project", "", "Path to a cpp.toml project file (auto-discovered if unset)")

	rootCmd.AddCommand(newExpandCmd(out, errOut))
	rootCmd.AddCommand(newDefineCmd(out, errOut))

	return rootCmd
}
