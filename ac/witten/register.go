package witten

import (
	"fmt"
)

// A Method is a renormalization rule.
type Method int

const (
	// None means the interval is wide enough and no rescale applies.
	None Method = iota
	// E1 applies when the interval lies in the lower half.
	E1
	// E2 applies when the interval lies in the upper half.
	E2
	// E3 applies when the interval straddles the midpoint inside the middle half (underflow).
	E3
)

func (m Method) String() string {
	switch m {
	case E1:
		return "E1"
	case E2:
		return "E2"
	case E3:
		return "E3"
	default:
		return "none"
	}
}

// A Register holds one bound of the coding interval as a fixed width unsigned integer.
// The high register shifts in ones on rescale, the low register shifts in zeros.
type Register struct {
	width uint
	high  bool
	v     uint64
}

// NewRegister returns a register of the given width.
// A high register starts at 2^width - 1, a low register at 0.
func NewRegister(width uint, high bool) Register {
	r := Register{width: width, high: high}
	if high {
		r.v = r.top()
	}
	return r
}

func (r *Register) top() uint64 {
	return (uint64(1) << r.width) - 1
}

// Value returns the current value.
func (r *Register) Value() uint64 {
	return r.v
}

// Half returns 2^(width-1).
func (r *Register) Half() uint64 {
	return uint64(1) << (r.width - 1)
}

// Quarter returns 2^(width-2).
func (r *Register) Quarter() uint64 {
	return uint64(1) << (r.width - 2)
}

// Set assigns v, which must be less than 2^width.
func (r *Register) Set(v uint64) {
	if v > r.top() {
		panic(fmt.Sprintf("witten: value %d overflows %d bit register", v, r.width))
	}
	r.v = v
}

// Rescale doubles the register under method m, shifting in the polarity bit.
func (r *Register) Rescale(m Method) {
	switch m {
	case E1:
	case E2:
		r.v -= r.Half()
	case E3:
		r.v -= r.Quarter()
	default:
		panic(fmt.Sprintf("witten: rescale with %v", m))
	}

	r.v <<= 1
	if r.high {
		r.v++
	}
	if r.v > r.top() {
		panic(fmt.Sprintf("witten: rescale %v overflows %d bit register", m, r.width))
	}
}

// Bit returns bit i of the register counting from the most significant bit, i.e. Bit(0) is the top bit.
func (r *Register) Bit(i uint) int {
	return int((r.v >> (r.width - 1 - i)) & 1)
}

func (r Register) String() string {
	return fmt.Sprintf("%0*b (%d)", int(r.width), r.v, r.v)
}

// Decide returns the rescale method that applies to the interval [low, high].
func Decide(low, high *Register) Method {
	if low.high || !high.high || low.width != high.width {
		panic("witten: Decide needs a low and a high register of equal width")
	}
	if low.v > high.v {
		panic(fmt.Sprintf("witten: crossed interval low %d high %d", low.v, high.v))
	}

	half := low.Half()
	qtr := low.Quarter()
	switch {
	case high.v < half:
		return E1
	case low.v >= half:
		return E2
	case low.v >= qtr && high.v < half+qtr:
		return E3
	default:
		return None
	}
}
