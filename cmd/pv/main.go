package main

import (
	"os"

	"github.com/voicepizza/pv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
