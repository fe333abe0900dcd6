package main

import (
	"fmt"
	"os"

	"github.com/qnl/chipsmith/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chipsmith:", err)
		os.Exit(1)
	}
}
