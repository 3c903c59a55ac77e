package main

import (
	"os"

	"github.com/iwvelando/fuel-blend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
