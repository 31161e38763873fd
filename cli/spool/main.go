package main

import (
	"os"

	spoolcmder "github.com/agentlogco/spool/cmd/spool"
)

func main() {
	cmd := spoolcmder.NewSpoolCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
