package main

import (
	"os"

	"github.com/Dicklesworthstone/agentsense/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
