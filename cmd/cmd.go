// Package cmd implements console commands
package cmd

import (
	"os"

	"github.com/fumin/ppm/utils"
	"github.com/smira/commander"
	"github.com/smira/flag"
)

// RootCommand creates root command in command tree
func RootCommand() *commander.Command {
	cmd := &commander.Command{
		UsageLine: os.Args[0],
		Short:     "arithmetic coding compressor",
		Long: `
compress encodes a file with an integer arithmetic coder, driven either
by a static model built from a first pass over the input or by an
adaptive context model that escapes from the longest matching context
down to a uniform table.

The output is the raw coded bit stream, padded with zeros to a whole
number of bytes. It carries no header.`,
		Flag: *flag.NewFlagSet("compress", flag.ExitOnError),
		Subcommands: []*commander.Command{
			makeCmdStatic(),
			makeCmdContext(),
			makeCmdConfig(),
			makeCmdVersion(),
		},
	}

	defaults := utils.Config
	cmd.Flag.String("config", "", "location of configuration file (default locations are ~/.ppm.conf, /etc/ppm.conf)")
	cmd.Flag.Int("len", int(defaults.WordLength), "register width in bits, between 3 and 32")
	cmd.Flag.String("mode", defaults.Mode, "symbol mode: b (bits) or B (bytes)")
	cmd.Flag.Int("order", defaults.MaxContextOrder, "maximum context order of the context model")
	cmd.Flag.String("log-level", defaults.LogLevel, "log level: debug, info, warning, error")
	cmd.Flag.String("log-format", defaults.LogFormat, "log format: default or json")
	cmd.Flag.Bool("progress", defaults.ShowProgress, "show progress bar when running on a terminal")

	return cmd
}
