package civ5save

import (
	"bytes"
	"encoding/binary"
)

// Civ 5 metadata is historically packed below byte boundaries, so the codec
// reads through a bit-addressed cursor instead of a byte one. Integers are
// little-endian; within a byte, bits are consumed most significant first.
// Both are fixed properties of the format, not options.

type bitReader struct {
	data []byte
	pos  int // bit position
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// byteOffset is the byte containing the cursor, used for error reporting.
func (r *bitReader) byteOffset() int {
	return r.pos / 8
}

func (r *bitReader) seekByte(off int) {
	r.pos = off * 8
}

func (r *bitReader) seekBit(pos int) {
	r.pos = pos
}

func (r *bitReader) remainingBits() int {
	return len(r.data)*8 - r.pos
}

// readBits reads n bits (n <= 64) and returns them as an unsigned integer
// with the first bit read in the most significant position.
func (r *bitReader) readBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, formatErrf(r.byteOffset(), "bit read of width %d", n)
	}
	if r.remainingBits() < n {
		return 0, formatErrf(r.byteOffset(), "truncated: need %d bits, have %d", n, r.remainingBits())
	}
	var v uint64
	for i := 0; i < n; i++ {
		b := r.data[r.pos/8]
		bit := (b >> (7 - uint(r.pos%8))) & 1
		v = v<<1 | uint64(bit)
		r.pos++
	}
	return v, nil
}

// readBytes reads n bytes starting at the current bit position. When the
// cursor is byte-aligned this is a plain copy.
func (r *bitReader) readBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, formatErrf(r.byteOffset(), "byte read of length %d", n)
	}
	if r.remainingBits() < n*8 {
		return nil, formatErrf(r.byteOffset(), "truncated: need %d bytes", n)
	}
	if r.pos%8 == 0 {
		off := r.pos / 8
		r.pos += n * 8
		return r.data[off : off+n : off+n], nil
	}
	out := make([]byte, n)
	for i := range out {
		b, err := r.readBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(b)
	}
	return out, nil
}

func (r *bitReader) readUint32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *bitReader) readInt32() (int32, error) {
	v, err := r.readUint32()
	return int32(v), err
}

// readString reads a 4-byte little-endian length followed by that many bytes.
func (r *bitReader) readString() (string, error) {
	at := r.byteOffset()
	n, err := r.readInt32()
	if err != nil {
		return "", err
	}
	if n < 0 || int64(n)*8 > int64(r.remainingBits()) {
		return "", formatErrf(at, "string length %d out of range", n)
	}
	b, err := r.readBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// findAligned returns the byte offsets of every byte-aligned occurrence of
// pattern in the whole buffer, independent of the cursor.
func (r *bitReader) findAligned(pattern []byte) []int {
	var offs []int
	for from := 0; ; {
		i := bytes.Index(r.data[from:], pattern)
		if i < 0 {
			return offs
		}
		offs = append(offs, from+i)
		from += i + 1
	}
}
