// cmd/numguess/main.go
//
// Entry point for the numguess CLI; all commands live in ./commands.

package main

import (
	"os"

	"github.com/robalobadob/numguess/cmd/numguess/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
