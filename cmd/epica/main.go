package main

import (
	"fmt"
	"os"

	"epi-ca/internal/cli"
)

func main() {
	if err := cli.BuildCLI().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "epica: %v\n", err)
		os.Exit(1)
	}
}
