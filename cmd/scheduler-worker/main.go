package main

import (
	"os"

	"github.com/highlightagent/highlight-agent/schedulerworker"
)

func main() {
	if err := schedulerworker.Run(); err != nil {
		os.Exit(1)
	}
}
