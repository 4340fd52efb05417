// Command hybridbfs loads an el64 edge list, builds a heavy/light
// adjacency graph, and runs one or more direction-optimizing BFS trials
// against it.
package main

import (
	"fmt"
	"os"

	"github.com/paperwasp/hybridbfs/cmd/hybridbfs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
