package main

import (
	"os"

	"groups/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
