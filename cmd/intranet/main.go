package main

import (
	"intranet/cmd/intranet/cmds"
	"os"
)

func main() {
	if err := cmds.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
