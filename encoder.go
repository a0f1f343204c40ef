package huffman

import (
	"bytes"
	"fmt"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// The alignment marker begins every frame, right after the zero padding.
// Its first bit is 1, so the padding is easy to skip.
const (
	markerBits = 24
	marker     = 0xb1baff
)

// Encode concatenates the code of each symbol, in order.
func Encode[K comparable](symbols []K, codes *CodeTable[K]) (BitString, error) {
	var out BitString
	for i, symbol := range symbols {
		code, found := codes.codes[symbol]
		if !found {
			return BitString{}, fmt.Errorf("%w: %v at index %d", ErrUnknownSymbol, symbol, i)
		}
		out.Append(code)
	}
	return out, nil
}

// Pack assembles a frame from a frequency table and an encoded payload:
// the alignment marker, the table as serialized by codec, then the
// payload.  Zero bits are prepended until the frame fills a whole number
// of bytes.
func Pack[K comparable](codec TableCodec[K], table *FrequencyTable[K], payload BitString) ([]byte, error) {
	tableBits, err := codec.TableSize(table)
	if err != nil {
		return nil, err
	}
	total := markerBits + tableBits + payload.Len()
	pad := (8 - total%8) % 8

	var buf bytes.Buffer
	buf.Grow((total + pad) / 8)
	w := bitio.NewWriter(&buf)
	if pad != 0 {
		if err := w.WriteBits(0, uint8(pad)); err != nil {
			return nil, err
		}
	}
	if err := w.WriteBits(marker, markerBits); err != nil {
		return nil, err
	}
	if err := codec.WriteTable(w, table); err != nil {
		return nil, err
	}
	if err := payload.WriteBitsTo(w); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	assert.Assertf(buf.Len()*8 == total+pad, "packed %d bytes, expected %d bits", buf.Len(), total+pad)
	log.Debugf("packed frame: %d padding bits, %d table bits, %d payload bits, %d bytes", pad, tableBits, payload.Len(), buf.Len())
	return buf.Bytes(), nil
}

// Compress runs the whole encoding pipeline over symbols and returns the
// packed frame.
func Compress[K comparable](codec TableCodec[K], symbols []K) ([]byte, error) {
	table, err := Analyze(symbols)
	if err != nil {
		return nil, err
	}
	root, err := BuildTree(table)
	if err != nil {
		return nil, err
	}
	payload, err := Encode(symbols, GenerateCodes[K](root))
	if err != nil {
		return nil, err
	}
	return Pack(codec, table, payload)
}

// CompressText compresses s one UTF-8 character at a time, using
// ByteSequenceCodec for the table.
func CompressText(s string) ([]byte, error) {
	keys, err := SplitText(s)
	if err != nil {
		return nil, err
	}
	return Compress[string](ByteSequenceCodec{}, keys)
}

// CompressBytes compresses data one byte at a time, using NumericCodec for
// the table.
func CompressBytes(data []byte) ([]byte, error) {
	return Compress[Symbol](NumericCodec{}, BytesToSymbols(data))
}
