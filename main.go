package main

import (
	"os"

	"github.com/advisorlane/advisor-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
