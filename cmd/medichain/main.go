package main

import (
	"os"

	"github.com/medichain-labs/medichain-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
