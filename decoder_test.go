package ppm

import (
	"github.com/fumin/ppm/ac"
	"github.com/pkg/errors"
)

// arithDecoder inverts witten.Encoder over a slice of bits.
type arithDecoder struct {
	width uint
	low   uint64
	high  uint64
	value uint64

	src []int
	pos int
}

func newArithDecoder(width uint, src []int) *arithDecoder {
	d := &arithDecoder{width: width, high: (uint64(1) << width) - 1, src: src}
	for i := uint(0); i < width; i++ {
		d.value = 2*d.value + d.next()
	}
	return d
}

func (d *arithDecoder) next() uint64 {
	if d.pos >= len(d.src) {
		return 0
	}
	b := d.src[d.pos]
	d.pos++
	return uint64(b)
}

func (d *arithDecoder) target(total uint64) uint64 {
	arange := (d.high - d.low) + 1
	return ((d.value-d.low+1)*total - 1) / arange
}

func (d *arithDecoder) update(left, right, total uint64) {
	half := uint64(1) << (d.width - 1)
	firstQtr := half / 2
	thirdQtr := half + firstQtr

	arange := (d.high - d.low) + 1
	d.high = d.low + arange*right/total - 1
	d.low = d.low + arange*left/total

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

// mirrorTable keeps the decoder's copy of one context's statistics.
// The escape always holds the last unit of the range.
type mirrorTable struct {
	counts   [256]uint64
	total    uint64
	maxTotal uint64
}

func newMirrorTable(maxTotal uint64, first byte) *mirrorTable {
	t := &mirrorTable{total: 2, maxTotal: maxTotal}
	t.counts[first] = 1
	return t
}

// find returns the symbol whose range holds target, or ok false for the escape.
func (t *mirrorTable) find(target uint64) (sym byte, left, right uint64, ok bool) {
	var acc uint64
	for s, c := range t.counts {
		if c == 0 {
			continue
		}
		if target < acc+c {
			return byte(s), acc, acc + c, true
		}
		acc += c
	}
	return 0, acc, acc + 1, false
}

func (t *mirrorTable) learn(sym byte) {
	t.counts[sym]++
	t.total++
	if t.total <= t.maxTotal {
		return
	}
	t.total = 1
	for s, c := range t.counts {
		if c == 0 {
			continue
		}
		c /= 2
		if c == 0 {
			c = 1
		}
		t.counts[s] = c
		t.total += c
	}
}

var errBadStream = errors.New("bit stream decodes to no symbol")

// decodeContext recovers n symbols coded by an Encoder fed the sliding window of the last order symbols.
func decodeContext(wordLen uint, mode ac.Mode, order int, src []int, n int) ([]byte, error) {
	d := newArithDecoder(wordLen, src)
	maxTotal := ac.MaxTotal(wordLen)
	size := uint64(mode.Size())
	tables := make(map[string]*mirrorTable)

	out := make([]byte, 0, n)
	var window []byte
	for i := 0; i < n; i++ {
		var escaped []*mirrorTable
		var missing []string
		var hit *mirrorTable
		var sym byte

		context := window
		for {
			key := string(context)
			if t, ok := tables[key]; ok {
				s, left, right, found := t.find(d.target(t.total))
				d.update(left, right, t.total)
				if found {
					hit, sym = t, s
					break
				}
				escaped = append(escaped, t)
			} else {
				missing = append(missing, key)
			}
			if len(context) == 0 {
				break
			}
			context = context[1:]
		}

		if hit == nil {
			s := d.target(size)
			if s >= size {
				return out, errors.Wrapf(errBadStream, "symbol %d", i)
			}
			d.update(s, s+1, size)
			sym = byte(s)
		} else {
			hit.learn(sym)
		}
		for _, t := range escaped {
			t.learn(sym)
		}
		for _, key := range missing {
			tables[key] = newMirrorTable(maxTotal, sym)
		}

		out = append(out, sym)
		window = append(window, sym)
		if len(window) > order {
			window = window[1:]
		}
	}
	return out, nil
}
