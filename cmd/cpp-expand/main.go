// Command cpp-expand drives the macro engine in pkg/macro and the
// directive layer in pkg/directive from the command line: "expand"
// preprocesses a whole file, and "define" prints the parsed form of a
// single macro definition for debugging `#`/`##` behavior in isolation.
package main

import (
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
