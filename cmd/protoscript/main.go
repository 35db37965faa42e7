package main

import (
	"fmt"
	"os"

	"github.com/ppyne/protoscript/cmd/protoscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
