package main

import (
	"os"

	"github.com/akajammythakkar/hiring-framework-adk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
