package main

import (
	"os"

	"github.com/w31r4/ptree/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
