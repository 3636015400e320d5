package main

import (
	"os"

	"avweather/cmd/avweather/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
