package acctable

import (
	"github.com/fumin/ppm/ac"
	"github.com/pkg/errors"
)

// Check interface
var (
	_ ac.Table = (*NegContextTable)(nil)
	_ ac.Table = (*ContextTable)(nil)
	_ ac.Table = (*Static)(nil)
	_ ac.Table = (*Adaptive)(nil)
)

// A NegContextTable is the context independent fallback of the context chain.
// It gives every symbol of the alphabet a count of 1 and never escapes.
type NegContextTable struct {
	acc *Static
}

// NewNegContextTable returns a uniform table over the alphabet of mode.
func NewNegContextTable(wordLen uint, mode ac.Mode) (*NegContextTable, error) {
	counts := make(map[byte]uint64, mode.Size())
	for s := 0; s < mode.Size(); s++ {
		counts[byte(s)] = 1
	}
	acc, err := NewStatic(wordLen, mode, counts)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return &NegContextTable{acc: acc}, nil
}

func (t *NegContextTable) Interval(sym byte) (ac.Interval, error) {
	return t.acc.Interval(sym)
}

// A ContextTable models the symbols that follow one particular context.
type ContextTable struct {
	acc *Adaptive
}

// NewContextTable returns an adaptive table that already knows first with a count of 1.
func NewContextTable(wordLen uint, mode ac.Mode, first byte) (*ContextTable, error) {
	acc, err := NewAdaptive(wordLen, mode, map[byte]uint64{first: 1})
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return &ContextTable{acc: acc}, nil
}

func (t *ContextTable) Interval(sym byte) (ac.Interval, error) {
	return t.acc.Interval(sym)
}

// Total returns the current total frequency of the table.
func (t *ContextTable) Total() uint64 {
	return t.acc.Total()
}
