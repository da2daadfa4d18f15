package witten

import (
	"github.com/fumin/ppm/ac"
)

// decoder is the inverse of Encoder, kept in tests to prove that the emitted bits identify the message.
type decoder struct {
	width uint
	low   uint64
	high  uint64
	value uint64

	src []int
	pos int
}

func newDecoder(width uint, src []int) *decoder {
	d := &decoder{width: width, high: (uint64(1) << width) - 1, src: src}
	for i := uint(0); i < width; i++ {
		d.value = 2*d.value + d.next()
	}
	return d
}

func (d *decoder) next() uint64 {
	if d.pos >= len(d.src) {
		return 0
	}
	b := d.src[d.pos]
	d.pos++
	return uint64(b)
}

// target returns the cumulative frequency the current value points at.
func (d *decoder) target(total uint64) uint64 {
	arange := (d.high - d.low) + 1
	return ((d.value-d.low+1)*total - 1) / arange
}

func (d *decoder) update(iv ac.Interval) {
	half := uint64(1) << (d.width - 1)
	firstQtr := half / 2
	thirdQtr := half + firstQtr

	arange := (d.high - d.low) + 1
	d.high = d.low + arange*iv.Right/iv.Total - 1
	d.low = d.low + arange*iv.Left/iv.Total

	for {
		if d.high < half {
			// do nothing
		} else if d.low >= half {
			d.value -= half
			d.low -= half
			d.high -= half
		} else if d.low >= firstQtr && d.high < thirdQtr {
			d.value -= firstQtr
			d.low -= firstQtr
			d.high -= firstQtr
		} else {
			break
		}

		d.low = 2 * d.low
		d.high = 2*d.high + 1
		d.value = 2*d.value + d.next()
	}
}

// decode recovers n symbols given a read-only table over the symbols 0..alphabet-1.
func decode(width uint, src []int, table ac.Table, alphabet, n int) ([]byte, error) {
	d := newDecoder(width, src)
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		var found bool
		for s := 0; s < alphabet; s++ {
			iv, err := table.Interval(byte(s))
			if err != nil {
				continue
			}
			t := d.target(iv.Total)
			if iv.Left <= t && t < iv.Right {
				out = append(out, byte(s))
				d.update(iv)
				found = true
				break
			}
		}
		if !found {
			return out, errNoSymbol
		}
	}
	return out, nil
}
