package main

import (
	"os"

	"github.com/skypix/srcmeas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
