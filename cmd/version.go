package cmd

import (
	"fmt"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

// Version is set at build time with -ldflags "-X github.com/fumin/ppm/cmd.Version=..."
var Version = "devel"

func ppmVersion(cmd *commander.Command, args []string) error {
	fmt.Printf("compress version: %s\n", Version)
	return nil
}

func makeCmdVersion() *commander.Command {
	return &commander.Command{
		Run:       ppmVersion,
		UsageLine: "version",
		Short:     "display version",
		Long: `
Shows compress version.

ex:
  $ compress version
`,
		Flag: *flag.NewFlagSet("compress-version", flag.ExitOnError),
	}
}
