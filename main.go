package main

import (
	"os"

	"github.com/mezotravel/backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
