package main

import (
	"fmt"
	"os"

	"github.com/de-tools/price-atlas/pkg/terminal"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		OutputDir: ".",
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
