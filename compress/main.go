package main

import (
	"os"

	"github.com/fumin/ppm/cmd"
)

func main() {
	os.Exit(cmd.Run(cmd.RootCommand(), os.Args[1:], true))
}
