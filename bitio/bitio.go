// Package bitio reads symbols from byte streams and packs coded bits into bytes.
package bitio

import (
	"bufio"
	"io"

	"github.com/fumin/ppm/ac"
	"github.com/pkg/errors"
)

// A Reader yields one symbol at a time: a single bit, most significant first, in bit mode, or a whole byte in byte mode.
type Reader struct {
	r    *bufio.Reader
	mode ac.Mode

	cur   byte
	nbits uint
}

// NewReader returns a Reader of the symbols of r.
func NewReader(r io.Reader, mode ac.Mode) *Reader {
	return &Reader{r: bufio.NewReader(r), mode: mode}
}

// ReadSymbol returns the next symbol, or io.EOF when r is exhausted.
func (r *Reader) ReadSymbol() (byte, error) {
	if r.mode == ac.Byte {
		return r.r.ReadByte()
	}

	if r.nbits == 0 {
		b, err := r.r.ReadByte()
		if err != nil {
			return 0, err
		}
		r.cur = b
		r.nbits = 8
	}
	r.nbits--
	return (r.cur >> r.nbits) & 1, nil
}

// A Writer packs bits MSB-first into bytes.
type Writer struct {
	w     *bufio.Writer
	acc   byte
	nbits uint

	written int64
}

// NewWriter returns a Writer that writes packed bytes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteBit appends a bit, which must be 0 or 1.
func (w *Writer) WriteBit(bit int) error {
	if bit != 0 && bit != 1 {
		return errors.Errorf("wrong bit %d", bit)
	}
	w.acc = w.acc<<1 | byte(bit)
	w.nbits++
	w.written++

	if w.nbits == 8 {
		if err := w.w.WriteByte(w.acc); err != nil {
			return errors.Wrap(err, "")
		}
		w.acc = 0
		w.nbits = 0
	}
	return nil
}

// WriteBits appends every bit of bits.
func (w *Writer) WriteBits(bits []int) error {
	for _, b := range bits {
		if err := w.WriteBit(b); err != nil {
			return err
		}
	}
	return nil
}

// Written returns the number of bits written so far, padding excluded.
func (w *Writer) Written() int64 {
	return w.written
}

// Flush pads the last partial byte with zeros, writes everything buffered,
// and returns how many bits of the last byte were pending.
func (w *Writer) Flush() (int, error) {
	pending := int(w.nbits)
	if w.nbits > 0 {
		if err := w.w.WriteByte(w.acc << (8 - w.nbits)); err != nil {
			return pending, errors.Wrap(err, "")
		}
		w.acc = 0
		w.nbits = 0
	}
	if err := w.w.Flush(); err != nil {
		return pending, errors.Wrap(err, "")
	}
	return pending, nil
}
