package cmd

import (
	"io"
	"os"

	"github.com/fumin/ppm"
	"github.com/smira/commander"
	"github.com/smira/flag"
)

func compressStatic(cmd *commander.Command, args []string) error {
	if len(args) != 2 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	return compressFile("static", args[0], args[1], func(w io.Writer, src *os.File, opts ppm.Options) (ppm.Stats, error) {
		return ppm.CompressStatic(w, src, opts)
	})
}

func makeCmdStatic() *commander.Command {
	return &commander.Command{
		Run:       compressStatic,
		UsageLine: "static <src> <out>",
		Short:     "compress with a static two-pass model",
		Long: `
Command static reads <src> twice: the first pass counts every symbol,
scaling the counts down if they exceed the capacity of the registers,
the second pass codes each symbol with the resulting fixed table.

ex:
  $ compress static -len=16 -mode=B gettysburg.txt gettys.static
`,
		Flag: *flag.NewFlagSet("compress-static", flag.ExitOnError),
	}
}
