package main

import (
	"fmt"
	"os"

	"github.com/penwyp/go-claude-usage/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if commands.IsLayoutError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
