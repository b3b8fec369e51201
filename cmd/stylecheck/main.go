package main

import (
	"fmt"
	"os"

	"github.com/gcbaptista/go-style-checker/internal/cli"
)

func main() {
	if err := cli.NewStylecheckCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "stylecheck: Error: %v\n", err)
		os.Exit(1)
	}
}
