// Package ac defines the contract between probability tables and the arithmetic coder.
// See its subpackages for particular finite precision realizations of the algorithm.
package ac

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInterval is returned when an Interval is malformed or its total exceeds MaxTotal.
	ErrInvalidInterval = fmt.Errorf("invalid update interval")
	// ErrTotalOverflow is returned when a table's cumulative total exceeds MaxTotal.
	ErrTotalOverflow = fmt.Errorf("total frequency exceeds maximum")
	// ErrUnknownSymbol is returned when a symbol outside a table or alphabet is queried.
	ErrUnknownSymbol = fmt.Errorf("unknown symbol")
	// ErrContextTooLong is returned when a context is longer than the configured maximum order.
	ErrContextTooLong = fmt.Errorf("context exceeds maximum order")
	// ErrFlushed is returned when an encoder is used after it has been flushed.
	ErrFlushed = fmt.Errorf("encoder already flushed")
	// ErrWordLength is returned for an unsupported register width.
	ErrWordLength = fmt.Errorf("unsupported word length")
	// ErrEmptyTable is returned when a static table would have no probability mass.
	ErrEmptyTable = fmt.Errorf("empty frequency table")
)

// MaxWordLength is the widest supported register.
// Interval narrowing multiplies a width of up to 2^W by a bound of up to 2^(W-2), which must fit in 64 bits.
const MaxWordLength = 32

// An Interval is the cumulative frequency range [Left, Right) of a symbol out of Total.
// Esc marks an escape event: the symbol is not modeled by the table that produced the Interval.
type Interval struct {
	Left  uint64
	Right uint64
	Total uint64
	Esc   bool
}

func (iv Interval) String() string {
	s := fmt.Sprintf("[%d, %d)/%d", iv.Left, iv.Right, iv.Total)
	if iv.Esc {
		s += " esc"
	}
	return s
}

// A Table produces the update interval of a symbol.
// Adaptive tables update their statistics as a side effect.
type Table interface {
	Interval(sym byte) (Interval, error)
}

// CheckWordLength reports whether w is a usable register width.
func CheckWordLength(w uint) error {
	if w <= 2 || w > MaxWordLength {
		return errors.Wrapf(ErrWordLength, "%d not in (2, %d]", w, MaxWordLength)
	}
	return nil
}

// MaxTotal returns 2^(w-2), the largest total a table may use with registers of width w.
// Two bits of headroom keep the narrowed interval from collapsing.
func MaxTotal(w uint) uint64 {
	return uint64(1) << (w - 2)
}

// Mode selects the symbol alphabet.
type Mode int

const (
	// Bit encodes one bit per symbol, the alphabet is {0, 1}.
	Bit Mode = iota
	// Byte encodes one byte per symbol, the alphabet is all 256 byte values.
	Byte
)

// Size returns the number of symbols in the alphabet.
func (m Mode) Size() int {
	if m == Bit {
		return 2
	}
	return 256
}

// Contains reports whether sym belongs to the alphabet.
func (m Mode) Contains(sym byte) bool {
	return int(sym) < m.Size()
}

func (m Mode) String() string {
	if m == Bit {
		return "b"
	}
	return "B"
}

// ParseMode parses "b"/"bit" and "B"/"byte".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "b":
		return Bit, nil
	case "B":
		return Byte, nil
	}
	switch strings.ToLower(s) {
	case "bit":
		return Bit, nil
	case "byte":
		return Byte, nil
	}
	return 0, errors.Errorf("unknown mode %q", s)
}
