// Command selbench runs instrumented sorting and selection engines and
// benchmarks them over generated inputs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/selbench/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
