package main

import (
	"os"

	"github.com/dcptools/cinecanvas/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
