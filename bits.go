package huffman

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// BitWriter is implemented by anything that accepts bits, most significant
// bit first.  *bitio.Writer and *BitString both satisfy it.
type BitWriter interface {
	// WriteBits writes the n lowest bits of r.
	WriteBits(r uint64, n uint8) error
}

// BitReader is implemented by anything that produces bits, most significant
// bit first.  *bitio.Reader satisfies it.
type BitReader interface {
	// ReadBits reads n bits and returns them in the lowest bits of u.
	ReadBits(n uint8) (u uint64, err error)
}

// BitString represents a packed sequence of bits.  Within each byte, bits
// are addressed most significant first.
//
// Invariants:
//   - 0 <= size <= len(packed)*8
//   - the bits of packed past size are zero
//
type BitString struct {
	packed []byte
	size   int
}

// MakeBitString constructs a BitString holding the first size bits of
// packed.  The slice is copied.
func MakeBitString(packed []byte, size int) BitString {
	assert.Assertf(size >= 0 && size <= len(packed)*8, "size %d out of range for %d bytes", size, len(packed))
	bs := BitString{packed: make([]byte, (size+7)/8), size: size}
	copy(bs.packed, packed)
	if rem := size % 8; rem != 0 {
		bs.packed[len(bs.packed)-1] &^= byte(0xff) >> rem
	}
	return bs
}

// ParseBitString parses a string of '0' and '1' characters.
func ParseBitString(s string) (BitString, error) {
	var bs BitString
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bs.AppendBit(0)
		case '1':
			bs.AppendBit(1)
		default:
			return BitString{}, fmt.Errorf("invalid bit %q at index %d", s[i], i)
		}
	}
	return bs, nil
}

// Len returns the number of bits.
func (bs BitString) Len() int {
	return bs.size
}

// Bit returns the i'th bit, either 0 or 1.
func (bs BitString) Bit(i int) byte {
	assert.Assertf(i >= 0 && i < bs.size, "bit index %d out of range [0, %d)", i, bs.size)
	return (bs.packed[i/8] >> (7 - uint(i%8))) & 1
}

// Bytes returns the packed representation.  The unused low bits of the
// final byte are zero.  The caller must not modify the result.
func (bs BitString) Bytes() []byte {
	return bs.packed
}

// Slice returns a copy of the bits in [from, to).
func (bs BitString) Slice(from, to int) BitString {
	assert.Assertf(from >= 0 && from <= to && to <= bs.size, "slice [%d:%d] out of range for %d bits", from, to, bs.size)
	var out BitString
	out.packed = make([]byte, 0, (to-from+7)/8)
	for i := from; i < to; i++ {
		out.AppendBit(bs.Bit(i))
	}
	return out
}

// AppendBit appends a single bit, which must be 0 or 1.
func (bs *BitString) AppendBit(bit byte) {
	assert.Assertf(bit <= 1, "bit %d is not 0 or 1", bit)
	if bs.size%8 == 0 {
		bs.packed = append(bs.packed, 0)
	}
	bs.packed[bs.size/8] |= bit << (7 - uint(bs.size%8))
	bs.size++
}

// Append appends every bit of other.
func (bs *BitString) Append(other BitString) {
	if bs.size%8 == 0 {
		bs.packed = append(bs.packed, other.packed...)
		bs.size += other.size
		return
	}
	for i := 0; i < other.size; i++ {
		bs.AppendBit(other.Bit(i))
	}
}

// WriteBits appends the n lowest bits of r.  It never fails.
func (bs *BitString) WriteBits(r uint64, n uint8) error {
	for i := n; i > 0; i-- {
		bs.AppendBit(byte(r>>(i-1)) & 1)
	}
	return nil
}

// WriteBitsTo writes every bit to w.
func (bs BitString) WriteBitsTo(w BitWriter) error {
	full := bs.size / 8
	for i := 0; i < full; i++ {
		if err := w.WriteBits(uint64(bs.packed[i]), 8); err != nil {
			return err
		}
	}
	if rem := uint8(bs.size % 8); rem != 0 {
		return w.WriteBits(uint64(bs.packed[full]>>(8-rem)), rem)
	}
	return nil
}

// Reader returns a BitReader positioned at the first bit.  Reading past the
// last bit fails with io.ErrUnexpectedEOF.
func (bs BitString) Reader() BitReader {
	return &bitStringReader{bs: bs}
}

// Equal returns true iff both BitStrings hold the same bits.
func (bs BitString) Equal(other BitString) bool {
	if bs.size != other.size {
		return false
	}
	for i := range bs.packed {
		if bs.packed[i] != other.packed[i] {
			return false
		}
	}
	return true
}

// String returns the quoted '0'/'1' representation of this BitString.
func (bs BitString) String() string {
	var buf strings.Builder
	buf.Grow(bs.size)
	for i := 0; i < bs.size; i++ {
		buf.WriteByte('0' + bs.Bit(i))
	}
	return strconv.Quote(buf.String())
}

// clone returns a copy of bs that shares no memory with it.
func (bs BitString) clone() BitString {
	if bs.packed == nil {
		return BitString{}
	}
	return BitString{packed: slices.Clone(bs.packed), size: bs.size}
}

// appended returns a copy of bs with one more bit.  bs is not modified.
func (bs BitString) appended(bit byte) BitString {
	out := BitString{packed: make([]byte, len(bs.packed), len(bs.packed)+1), size: bs.size}
	copy(out.packed, bs.packed)
	out.AppendBit(bit)
	return out
}

var _ fmt.Stringer = BitString{}
var _ BitWriter = (*BitString)(nil)

type bitStringReader struct {
	bs  BitString
	pos int
}

func (r *bitStringReader) ReadBits(n uint8) (uint64, error) {
	if r.pos+int(n) > r.bs.size {
		r.pos = r.bs.size
		return 0, io.ErrUnexpectedEOF
	}
	var u uint64
	for i := uint8(0); i < n; i++ {
		u = (u << 1) | uint64(r.bs.Bit(r.pos))
		r.pos++
	}
	return u, nil
}

// countingReader tracks how many bits have been successfully read.
type countingReader struct {
	r BitReader
	n int
}

func (cr *countingReader) ReadBits(n uint8) (uint64, error) {
	u, err := cr.r.ReadBits(n)
	if err == nil {
		cr.n += int(n)
	}
	return u, err
}
