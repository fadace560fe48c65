package main

import (
	"os"

	"associates/cmd/paapi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
