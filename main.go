package main

import (
	"os"

	"github.com/minqi/vocadrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
