package main

import (
	"os"

	"github.com/luckystreak96/pizzatopia-mirror/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
