package main

import (
	"fmt"
	"os"

	"github.com/tsawler/pdf2html/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pdf2html:", err)
		os.Exit(1)
	}
}
