package main

import (
	"os"

	"github.com/mgpai22/subsync/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
