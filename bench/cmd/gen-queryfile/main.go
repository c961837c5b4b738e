package main

import (
	"os"

	"github.com/kocubinski/minirel-bench/bench"
)

func main() {
	if err := bench.GenerateCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
