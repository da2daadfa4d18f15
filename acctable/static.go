// Package acctable provides accumulator tables, which map symbols to cumulative frequency ranges
// for the arithmetic encoder, and the context tables built on them.
package acctable

import (
	"github.com/fumin/ppm/ac"
	"github.com/pkg/errors"
)

type symRange struct {
	left  uint64
	right uint64
}

// Static is an immutable accumulator table.
// Ranges are assigned in byte order so that a decoder rebuilds the same table from the same counts.
type Static struct {
	ranges [256]symRange
	total  uint64
}

// NewStatic builds a table from symbol counts.
func NewStatic(wordLen uint, mode ac.Mode, counts map[byte]uint64) (*Static, error) {
	if err := ac.CheckWordLength(wordLen); err != nil {
		return nil, errors.Wrap(err, "")
	}

	var ordered [256]uint64
	for s, c := range counts {
		if !mode.Contains(s) {
			return nil, errors.Wrapf(ac.ErrUnknownSymbol, "%d in mode %v", s, mode)
		}
		if c == 0 {
			return nil, errors.Wrapf(ac.ErrEmptyTable, "zero count for %d", s)
		}
		ordered[s] = c
	}
	if len(counts) == 0 {
		return nil, errors.Wrap(ac.ErrEmptyTable, "")
	}

	t := &Static{}
	for s, c := range ordered {
		if c == 0 {
			continue
		}
		left := t.total
		t.total += c
		t.ranges[s] = symRange{left: left, right: t.total}
	}
	if max := ac.MaxTotal(wordLen); t.total > max {
		return nil, errors.Wrapf(ac.ErrTotalOverflow, "%d > %d", t.total, max)
	}
	return t, nil
}

// Total returns the sum of all counts.
func (t *Static) Total() uint64 {
	return t.total
}

// Interval returns the precomputed range of sym.
func (t *Static) Interval(sym byte) (ac.Interval, error) {
	r := t.ranges[sym]
	if r.left == r.right {
		return ac.Interval{}, errors.Wrapf(ac.ErrUnknownSymbol, "%d", sym)
	}
	return ac.Interval{Left: r.left, Right: r.right, Total: t.total}, nil
}
