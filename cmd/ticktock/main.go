// Command ticktock replays tick/tock scenarios and inspects bound result
// tables.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ticktock/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
