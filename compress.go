package ppm

import (
	"fmt"
	"io"

	"github.com/fumin/ppm/ac"
	"github.com/fumin/ppm/ac/witten"
	"github.com/fumin/ppm/acctable"
	"github.com/fumin/ppm/bitio"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// batchBits is the number of coded bits handed to the packer at a time.
const batchBits = 4096

var errKilled = fmt.Errorf("pipeline stopped")

// Options configures the compression drivers.
type Options struct {
	WordLength uint    // register width W, max total is 2^(W-2)
	Mode       ac.Mode // bit or byte symbols
	Order      int     // maximum context order, used by CompressContext only

	// Progress, if not nil, receives a copy of every input byte as it is encoded.
	Progress io.Writer
}

// DefaultOptions returns 16 bit registers, byte symbols and order 2 contexts.
func DefaultOptions() Options {
	return Options{WordLength: 16, Mode: ac.Byte, Order: 2}
}

// Stats describes a finished compression.
type Stats struct {
	Symbols  int64 // input symbols
	Bits     int64 // coded bits, flush included, padding excluded
	Padding  int   // zero bits appended to complete the last byte
	Escapes  int64 // escape codes, context model only
	Contexts int   // context tables, context model only
}

// Bytes returns the size of the output.
func (s Stats) Bytes() int64 {
	return (s.Bits + int64(s.Padding)) / 8
}

func (opts Options) source(r io.Reader) *bitio.Reader {
	if opts.Progress != nil {
		r = io.TeeReader(r, opts.Progress)
	}
	return bitio.NewReader(r, opts.Mode)
}

// CompressStatic compresses rs with a static model.
// The first pass over rs collects the symbol distribution, the second pass encodes.
func CompressStatic(w io.Writer, rs io.ReadSeeker, opts Options) (Stats, error) {
	var stats Stats
	if err := ac.CheckWordLength(opts.WordLength); err != nil {
		return stats, errors.Wrap(err, "")
	}
	dist, n, err := Distribution(rs, opts.Mode, ac.MaxTotal(opts.WordLength))
	if err != nil {
		return stats, errors.Wrap(err, "")
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return stats, errors.Wrap(err, "")
	}

	var table *acctable.Static
	if n > 0 {
		table, err = acctable.NewStatic(opts.WordLength, opts.Mode, dist)
		if err != nil {
			return stats, errors.Wrap(err, "")
		}
		log.Debug().Int64("symbols", n).Int("distinct", len(dist)).Uint64("total", table.Total()).Msg("static distribution")
	}
	ae, err := witten.NewEncoder(opts.WordLength)
	if err != nil {
		return stats, errors.Wrap(err, "")
	}

	var symbols, nbits int64
	padding, err := pipeline(w, func(emit func([]int) error) error {
		src := opts.source(rs)
		buf := make([]int, 0, 2*batchBits)
		for {
			sym, err := src.ReadSymbol()
			if err == io.EOF {
				break
			}
			if err != nil {
				return errors.Wrap(err, "")
			}
			if table == nil {
				return errors.Errorf("input grew between passes")
			}
			iv, err := table.Interval(sym)
			if err != nil {
				return errors.Wrap(err, "")
			}
			if buf, err = ae.Encode(buf, iv); err != nil {
				return errors.Wrap(err, "")
			}
			symbols++

			if len(buf) >= batchBits {
				nbits += int64(len(buf))
				if err := emit(buf); err != nil {
					return err
				}
				buf = make([]int, 0, 2*batchBits)
			}
		}
		buf, err := ae.Flush(buf)
		if err != nil {
			return errors.Wrap(err, "")
		}
		nbits += int64(len(buf))
		return emit(buf)
	})
	if err != nil {
		return stats, errors.Wrap(err, "")
	}
	stats.Symbols = symbols
	stats.Bits = nbits
	stats.Padding = padding
	return stats, nil
}

// CompressContext compresses r with the adaptive context model,
// using the last opts.Order symbols as the context of each symbol.
func CompressContext(w io.Writer, r io.Reader, opts Options) (Stats, error) {
	var stats Stats
	enc, err := NewEncoder(opts.WordLength, opts.Mode, opts.Order)
	if err != nil {
		return stats, errors.Wrap(err, "")
	}

	padding, err := pipeline(w, func(emit func([]int) error) error {
		src := opts.source(r)
		order := enc.Order()
		context := make([]byte, 0, order+1)
		buf := make([]int, 0, 2*batchBits)
		for {
			sym, err := src.ReadSymbol()
			if err == io.EOF {
				break
			}
			if err != nil {
				return errors.Wrap(err, "")
			}
			if buf, err = enc.Encode(buf, context, sym); err != nil {
				return errors.Wrap(err, "")
			}

			context = append(context, sym)
			if len(context) > order {
				context = context[1:]
			}

			if len(buf) >= batchBits {
				if err := emit(buf); err != nil {
					return err
				}
				buf = make([]int, 0, 2*batchBits)
			}
		}
		buf, err := enc.Flush(buf)
		if err != nil {
			return errors.Wrap(err, "")
		}
		return emit(buf)
	})
	if err != nil {
		return stats, errors.Wrap(err, "")
	}
	es := enc.Stats()
	stats.Symbols = es.Symbols
	stats.Bits = es.Bits
	stats.Escapes = es.Escapes
	stats.Contexts = es.Contexts
	stats.Padding = padding
	log.Debug().Int("contexts", es.Contexts).Int64("escapes", es.Escapes).Msg("context model")
	return stats, nil
}

// pipeline runs produce concurrently with a packer that writes the emitted bits to w.
// It returns the number of zero bits used to pad the last byte.
func pipeline(w io.Writer, produce func(emit func([]int) error) error) (int, error) {
	kill := make(chan struct{})
	defer close(kill)
	bits := make(chan []int, 16)
	errc := make(chan error)

	go func() {
		defer close(bits)
		err := produce(func(b []int) error {
			select {
			case <-kill:
				return errKilled
			case bits <- b:
				return nil
			}
		})
		if err != nil {
			select {
			case <-kill:
				return
			case errc <- err:
			}
		}
	}()

	var padding int
	go func() {
		err := func() error {
			bw := bitio.NewWriter(w)
			for b := range bits {
				if err := bw.WriteBits(b); err != nil {
					return err
				}
			}
			pending, err := bw.Flush()
			if pending > 0 {
				padding = 8 - pending
			}
			return err
		}()
		select {
		case <-kill:
			return
		case errc <- err:
		}
	}()

	if err := <-errc; err != nil {
		return 0, errors.Wrap(err, "")
	}
	return padding, nil
}
