package acctable

import (
	"github.com/fumin/ppm/ac"
	"github.com/pkg/errors"
)

// escCount is the frequency of the escape pseudo-symbol.
// It is never incremented, and halving keeps it at 1.
const escCount = 1

// Adaptive is an accumulator table that learns symbol frequencies as it is queried.
// Unseen symbols are coded as an escape, which always occupies the last unit of the range.
type Adaptive struct {
	mode ac.Mode

	// counts is indexed by symbol; zero means unseen.
	counts [256]uint64
	esc    uint64
	total  uint64

	maxTotal uint64
}

// NewAdaptive returns a table holding the seed counts plus the escape pseudo-symbol.
// The word length must leave room for the whole alphabet plus escape and one more unit,
// otherwise halving, which floors every count at 1, cannot always restore the bound.
func NewAdaptive(wordLen uint, mode ac.Mode, seed map[byte]uint64) (*Adaptive, error) {
	if err := ac.CheckWordLength(wordLen); err != nil {
		return nil, errors.Wrap(err, "")
	}
	t := &Adaptive{mode: mode, esc: escCount, maxTotal: ac.MaxTotal(wordLen)}
	if need := uint64(mode.Size()) + escCount + 1; t.maxTotal < need {
		return nil, errors.Wrapf(ac.ErrWordLength, "%d bits hold totals up to %d, mode %v needs %d", wordLen, t.maxTotal, mode, need)
	}

	t.total = t.esc
	for s, c := range seed {
		if !mode.Contains(s) {
			return nil, errors.Wrapf(ac.ErrUnknownSymbol, "%d in mode %v", s, mode)
		}
		t.counts[s] = c
		t.total += c
	}
	if t.total > t.maxTotal {
		return nil, errors.Wrapf(ac.ErrTotalOverflow, "seed total %d > %d", t.total, t.maxTotal)
	}
	return t, nil
}

// Total returns the sum of all counts including escape.
func (t *Adaptive) Total() uint64 {
	return t.total
}

// Count returns the count of sym, zero if it is unseen.
func (t *Adaptive) Count(sym byte) uint64 {
	return t.counts[sym]
}

// Interval returns the range of sym under the current statistics, then counts sym.
// An unseen symbol yields the escape range with Esc set and is learned with count 1.
func (t *Adaptive) Interval(sym byte) (ac.Interval, error) {
	if !t.mode.Contains(sym) {
		return ac.Interval{}, errors.Wrapf(ac.ErrUnknownSymbol, "%d in mode %v", sym, t.mode)
	}

	if t.counts[sym] == 0 {
		iv := ac.Interval{Left: t.total - t.esc, Right: t.total, Total: t.total, Esc: true}
		t.increment(sym)
		return iv, nil
	}

	var acc uint64
	for s := 0; s < int(sym); s++ {
		acc += t.counts[s]
	}
	iv := ac.Interval{Left: acc, Right: acc + t.counts[sym], Total: t.total}
	t.increment(sym)
	return iv, nil
}

// increment counts sym once and halves all counts if the total went past the maximum.
func (t *Adaptive) increment(sym byte) {
	t.counts[sym]++
	t.total++
	if t.total <= t.maxTotal {
		return
	}

	t.total = 0
	for s, c := range t.counts {
		if c == 0 {
			continue
		}
		if c >>= 1; c == 0 {
			c = 1
		}
		t.counts[s] = c
		t.total += c
	}
	if t.esc >>= 1; t.esc == 0 {
		t.esc = 1
	}
	t.total += t.esc
}
