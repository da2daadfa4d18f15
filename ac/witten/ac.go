// Package witten implements the arithmetic coding algorithm described in
// Witten, Ian H.; Neal, Radford M.; Cleary, John G. (June 1987). "Arithmetic Coding for Data Compression". Communications of the ACM 30 (6): 520–540.
//
// The coding interval is kept in a pair of W bit registers and renormalized with the E1, E2 and E3 rules,
// so that an unbounded message is coded without unbounded precision arithmetic.
package witten

import (
	"fmt"

	"github.com/fumin/ppm/ac"
	"github.com/pkg/errors"
)

// An Encoder carries the state required to encode one output stream.
type Encoder struct {
	low  Register
	high Register

	// fbits is the number of bits deferred by E3 rescales.
	fbits uint64

	maxTotal uint64
	flushed  bool
}

// NewEncoder returns an encoder whose registers are wordLen bits wide.
func NewEncoder(wordLen uint) (*Encoder, error) {
	if err := ac.CheckWordLength(wordLen); err != nil {
		return nil, errors.Wrap(err, "")
	}
	e := &Encoder{
		low:      NewRegister(wordLen, false),
		high:     NewRegister(wordLen, true),
		maxTotal: ac.MaxTotal(wordLen),
	}
	return e, nil
}

// WordLength returns the register width.
func (e *Encoder) WordLength() uint {
	return e.low.width
}

// Bounds returns the current low and high register values.
func (e *Encoder) Bounds() (low, high uint64) {
	return e.low.v, e.high.v
}

// Flushed reports whether Flush has been called.
func (e *Encoder) Flushed() bool {
	return e.flushed
}

// Pending returns the number of bits deferred by E3 rescales.
func (e *Encoder) Pending() uint64 {
	return e.fbits
}

func (e *Encoder) bitPlusFollow(dst []int, bit int) []int {
	negbit := 0
	if bit == 0 {
		negbit = 1
	}

	dst = append(dst, bit)
	for e.fbits > 0 {
		dst = append(dst, negbit)
		e.fbits -= 1
	}
	return dst
}

// Encode narrows the coding interval to iv and appends the bits released by renormalization to dst.
// The returned slice may contain no new bits when the interval is still wide.
func (e *Encoder) Encode(dst []int, iv ac.Interval) ([]int, error) {
	if e.flushed {
		return dst, errors.Wrap(ac.ErrFlushed, "")
	}
	if iv.Left >= iv.Right || iv.Right > iv.Total || iv.Total > e.maxTotal {
		return dst, errors.Wrapf(ac.ErrInvalidInterval, "%v, max total %d", iv, e.maxTotal)
	}

	// narrow range
	lo := e.low.v
	arange := (e.high.v - lo) + 1
	newLow := lo + arange*iv.Left/iv.Total
	newHigh := lo + arange*iv.Right/iv.Total - 1
	if newLow < lo || newLow > newHigh || newHigh > e.high.v {
		panic(fmt.Sprintf("witten: interval %v escapes [%d, %d]", iv, lo, e.high.v))
	}
	e.low.Set(newLow)
	e.high.Set(newHigh)

	for {
		m := Decide(&e.low, &e.high)
		switch m {
		case E1:
			dst = e.bitPlusFollow(dst, 0)
		case E2:
			dst = e.bitPlusFollow(dst, 1)
		case E3:
			e.fbits += 1
		default:
			return dst, nil
		}

		e.low.Rescale(m)
		e.high.Rescale(m)
	}
}

// Flush appends the bits that identify the final interval: the first bit of the low register,
// the deferred E3 bits, then the remaining bits of the low register.
// Flush must be called exactly once, after the last symbol.
func (e *Encoder) Flush(dst []int) ([]int, error) {
	if e.flushed {
		return dst, errors.Wrap(ac.ErrFlushed, "")
	}
	e.flushed = true

	dst = e.bitPlusFollow(dst, e.low.Bit(0))
	for i := uint(1); i < e.low.width; i++ {
		dst = append(dst, e.low.Bit(i))
	}
	return dst, nil
}
