package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fumin/ppm"
	"github.com/rs/zerolog/log"
)

type compressFunc func(w io.Writer, src *os.File, opts ppm.Options) (ppm.Stats, error)

// compressFile codes the file named src into the file named dst, removing dst if anything fails.
func compressFile(model, src, dst string, compress compressFunc) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open source: %s", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("unable to stat source: %s", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create output: %s", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("unable to close output: %s", cerr)
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	opts := options()
	log.Debug().Str("model", model).Uint("len", opts.WordLength).Stringer("mode", opts.Mode).
		Int("order", opts.Order).Str("src", src).Str("dst", dst).Msg("compressing")

	context.progress.InitBar(info.Size(), true)
	bw := bufio.NewWriter(out)
	stats, err := compress(bw, in, opts)
	context.progress.ShutdownBar()
	if err != nil {
		return fmt.Errorf("unable to compress %s: %+v", src, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("unable to write output: %s", err)
	}

	event := log.Info().Str("model", model).
		Int64("symbols", stats.Symbols).
		Int64("bits", stats.Bits).
		Int("padding", stats.Padding).
		Int64("bytes", stats.Bytes())
	if model == "context" {
		event = event.Int64("escapes", stats.Escapes).Int("contexts", stats.Contexts)
	}
	if info.Size() > 0 {
		event = event.Float64("ratio", float64(stats.Bytes())/float64(info.Size()))
	}
	event.Msgf("%s -> %s", src, dst)
	return nil
}
