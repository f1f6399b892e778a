package main

import (
	"os"

	"github.com/xoseperez/platformio/internal/cli"
	"github.com/xoseperez/platformio/internal/version"
)

func main() {
	cmd := cli.NewRootCmd(version.Version)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
