package main

import (
	"os"

	"github.com/highlightagent/highlight-agent/alertservice"
)

func main() {
	if err := alertservice.Run(); err != nil {
		os.Exit(1)
	}
}
