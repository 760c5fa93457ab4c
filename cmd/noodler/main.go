// Command noodler drives the noodlification engine from the shell: solve
// runs an equation file end-to-end and emits the resulting AFA, inspect
// reports segmentation/registry statistics for one equation file without
// noodlifying it. Grounded on cmd/labyrinth/main.go's shape (read input,
// run the pipeline, print a final summary) generalized into a cobra
// command tree with viper-backed configuration.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"noodler/internal/cli"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "noodler: failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cli.NewRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}
