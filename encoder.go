// Package ppm compresses data with integer arithmetic coding driven by either a static two-pass model
// or an adaptive context model in the manner of Prediction by Partial Matching (PPM).
//
// Below is an example of compressing Lincoln's Gettysburg address with an order 2 context model:
//    go run ./compress context -len=16 -mode=B -order=2 gettysburg.txt gettys.ppm
//
// Reference:
// J. G. Cleary and I. H. Witten, Data Compression Using Adaptive Coding and Partial String Matching,
// IEEE Transactions on Communications 32 (4): 396–402, 1984.
package ppm

import (
	"github.com/fumin/ppm/ac"
	"github.com/fumin/ppm/ac/witten"
	"github.com/fumin/ppm/acctable"
	"github.com/pkg/errors"
)

// EncoderStats counts the work done by an Encoder.
type EncoderStats struct {
	Symbols  int64 // symbols encoded
	Escapes  int64 // escape codes emitted
	Bits     int64 // bits emitted, flush included
	Contexts int   // context tables created
}

// An Encoder codes each symbol under the longest context that predicts it,
// escaping to shorter contexts and finally to a uniform table over the whole alphabet.
type Encoder struct {
	mode  ac.Mode
	order int

	ae     *witten.Encoder
	tables map[string]*acctable.ContextTable
	neg    *acctable.NegContextTable

	stats EncoderStats
}

// NewEncoder returns an encoder with registers of wordLen bits that uses contexts of up to order symbols.
func NewEncoder(wordLen uint, mode ac.Mode, order int) (*Encoder, error) {
	if order < 0 {
		return nil, errors.Errorf("negative context order %d", order)
	}
	ae, err := witten.NewEncoder(wordLen)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	neg, err := acctable.NewNegContextTable(wordLen, mode)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	// Fail now rather than on the first new context if adaptive tables cannot fit the alphabet.
	if _, err := acctable.NewAdaptive(wordLen, mode, nil); err != nil {
		return nil, errors.Wrap(err, "")
	}

	e := &Encoder{
		mode:   mode,
		order:  order,
		ae:     ae,
		tables: make(map[string]*acctable.ContextTable),
		neg:    neg,
	}
	return e, nil
}

// Order returns the maximum context order.
func (e *Encoder) Order() int {
	return e.order
}

// Stats returns the counters accumulated so far.
func (e *Encoder) Stats() EncoderStats {
	s := e.stats
	s.Contexts = len(e.tables)
	return s
}

// Encode appends the code of sym following context to dst.
// context holds the most recent symbols, oldest first, and may not be longer than the maximum order.
func (e *Encoder) Encode(dst []int, context []byte, sym byte) ([]int, error) {
	if e.ae.Flushed() {
		return dst, errors.Wrap(ac.ErrFlushed, "")
	}
	if len(context) > e.order {
		return dst, errors.Wrapf(ac.ErrContextTooLong, "%d > %d", len(context), e.order)
	}
	if !e.mode.Contains(sym) {
		return dst, errors.Wrapf(ac.ErrUnknownSymbol, "%d in mode %v", sym, e.mode)
	}

	start := len(dst)
	defer func() { e.stats.Bits += int64(len(dst) - start) }()
	e.stats.Symbols++

	for {
		key := string(context)
		table, ok := e.tables[key]
		if ok {
			iv, err := table.Interval(sym)
			if err != nil {
				return dst, errors.Wrap(err, "")
			}
			dst, err = e.ae.Encode(dst, iv)
			if err != nil {
				return dst, errors.Wrap(err, "")
			}
			if !iv.Esc {
				return dst, nil
			}
			e.stats.Escapes++
		} else {
			// The next time this context occurs, sym is already known here.
			table, err := acctable.NewContextTable(e.ae.WordLength(), e.mode, sym)
			if err != nil {
				return dst, errors.Wrap(err, "")
			}
			e.tables[key] = table
		}

		if len(context) == 0 {
			break
		}
		context = context[1:]
	}

	iv, err := e.neg.Interval(sym)
	if err != nil {
		return dst, errors.Wrap(err, "")
	}
	dst, err = e.ae.Encode(dst, iv)
	if err != nil {
		return dst, errors.Wrap(err, "")
	}
	return dst, nil
}

// Flush appends the final bits of the stream to dst. It must be called exactly once, after the last symbol.
func (e *Encoder) Flush(dst []int) ([]int, error) {
	start := len(dst)
	dst, err := e.ae.Flush(dst)
	if err != nil {
		return dst, errors.Wrap(err, "")
	}
	e.stats.Bits += int64(len(dst) - start)
	return dst, nil
}
