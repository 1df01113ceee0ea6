package main

import (
	"os"

	"github.com/theapemachine/wicker-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
