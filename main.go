package main

import (
	"os"

	"github.com/gastrade/ugs-auction/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
