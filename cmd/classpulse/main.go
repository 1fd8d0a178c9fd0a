// Classpulse turns recorded session artifacts (VTT captions, chat logs) into
// a merged, categorized and relevancy-scored engagement timeline.
package main

import (
	"fmt"
	"os"

	"github.com/classpulse/classpulse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
