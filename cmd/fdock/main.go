package main

import (
	"os"

	"folderdock/internal/fdockcli"
)

func main() {
	if err := fdockcli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
