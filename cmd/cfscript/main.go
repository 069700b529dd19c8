package main

import (
	"fmt"
	"os"

	"github.com/cfs-lang/cfscript/cmd/cfscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
