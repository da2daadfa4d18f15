package cmd

import (
	"io"
	"os"

	"github.com/fumin/ppm"
	"github.com/smira/commander"
	"github.com/smira/flag"
)

func compressContext(cmd *commander.Command, args []string) error {
	if len(args) != 2 {
		cmd.Usage()
		return commander.ErrCommandError
	}

	return compressFile("context", args[0], args[1], func(w io.Writer, src *os.File, opts ppm.Options) (ppm.Stats, error) {
		return ppm.CompressContext(w, src, opts)
	})
}

func makeCmdContext() *commander.Command {
	return &commander.Command{
		Run:       compressContext,
		UsageLine: "context <src> <out>",
		Short:     "compress with an adaptive context model",
		Long: `
Command context codes each symbol of <src> under the longest preceding
context, of at most -order symbols, that has seen it before. Contexts
that have not escape to shorter ones, down to a uniform table over the
whole alphabet. Every context learns the symbols coded after it.

ex:
  $ compress context -len=16 -mode=B -order=2 gettysburg.txt gettys.ppm
`,
		Flag: *flag.NewFlagSet("compress-context", flag.ExitOnError),
	}
}
