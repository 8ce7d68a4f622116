// main is the entry point of the clio CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/clio/cmd"
)

func main() {
	err := cmd.Execute()
	cmd.Shutdown()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warn stopping profiler: %v\n", stopErr)
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
