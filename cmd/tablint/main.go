package main

import (
	"errors"
	"os"

	"github.com/tablint-io/tablint/cmd/tablint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrIssuesFound) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
