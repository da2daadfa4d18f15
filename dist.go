package ppm

import (
	"io"
	"math/bits"

	"github.com/fumin/ppm/ac"
	"github.com/fumin/ppm/bitio"
	"github.com/pkg/errors"
)

// Distribution counts the symbols of r.
// If the counts sum to more than maxTotal they are scaled down proportionally, keeping every seen symbol at a count of at least 1.
// It also returns the number of symbols read.
func Distribution(r io.Reader, mode ac.Mode, maxTotal uint64) (map[byte]uint64, int64, error) {
	dist := make(map[byte]uint64)
	var n int64
	src := bitio.NewReader(r, mode)
	for {
		sym, err := src.ReadSymbol()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, n, errors.Wrap(err, "")
		}
		dist[sym]++
		n++
	}

	if uint64(len(dist)) > maxTotal {
		return nil, n, errors.Wrapf(ac.ErrTotalOverflow, "%d distinct symbols > %d", len(dist), maxTotal)
	}
	total := uint64(n)
	if total <= maxTotal {
		return dist, n, nil
	}

	var sum uint64
	for s, c := range dist {
		hi, lo := bits.Mul64(c, maxTotal)
		c, _ = bits.Div64(hi, lo, total)
		if c == 0 {
			c = 1
		}
		dist[s] = c
		sum += c
	}
	// Rounding up the rare symbols can still overshoot.
	for sum > maxTotal {
		sum = 0
		for s, c := range dist {
			if c >>= 1; c == 0 {
				c = 1
			}
			dist[s] = c
			sum += c
		}
	}
	return dist, n, nil
}
