package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gocpp/macroexpand/internal/config"
	"github.com/gocpp/macroexpand/pkg/directive"
)

func newExpandCmd(out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand <file>",
		Short: "Preprocess a C source file and print the expanded result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(args[0], out, errOut)
		},
	}
	return cmd
}

func runExpand(filename string, out, errOut io.Writer) error {
	proj, err := loadProject(filename)
	if err != nil {
		fmt.Fprintf(errOut, "cpp-expand: %v\n", err)
		return err
	}

	opts := config.Resolve(proj, stdFlag, includePaths, systemPaths, defineFlags, undefFlags)
	d := directive.NewDriver(filename, opts)
	d.Includes.SetCurrentFile(filename)

	result, err := d.PreprocessFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "cpp-expand: %v\n", err)
		return err
	}

	fmt.Fprint(out, result)
	return nil
}

func loadProject(filename string) (*config.Project, error) {
	path := projectFlag
	if path == "" {
		path = config.FindProjectFile(filepath.Dir(filename))
	}
	if path == "" {
		return &config.Project{}, nil
	}
	return config.LoadProject(path)
}
