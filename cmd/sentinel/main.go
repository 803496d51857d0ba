package main

import (
	"os"

	"IssuanceSentinel/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logging.For("main").Errorf("%v", err)
		os.Exit(1)
	}
}
