package huffman

import (
	"fmt"
	"math"

	"github.com/chronos-tachyon/assert"
)

// TableCodec serializes a FrequencyTable into a frame and parses it back.
type TableCodec[K comparable] interface {
	// TableSize returns the exact number of bits WriteTable would write
	// for this table.  It fails with ErrUnencodableKey if any key cannot
	// be represented.
	TableSize(table *FrequencyTable[K]) (int, error)

	// WriteTable serializes the table, entries in iteration order.
	WriteTable(w BitWriter, table *FrequencyTable[K]) error

	// ReadTable parses a table and returns it along with the number of
	// bits consumed.
	ReadTable(r BitReader) (*FrequencyTable[K], int, error)
}

const (
	numericCountBits = 32
	numericWidthBits = 6
	numericMaxWidth  = 1<<numericWidthBits - 1

	byteSeqFreqBits     = 32
	byteSeqSentinel     = 0x3e // 111110
	byteSeqBadPrefix    = 0x3f // 111111
	byteSeqSentinelBits = 6
)

// NumericCodec serializes tables keyed by Symbol:
//
//     [entry count: 32][freq width F: 6][key width K: 6]
//     then, per entry: [key: K][freq: F]
//
// F and K are the bit lengths of the largest frequency and the largest key.
//
type NumericCodec struct{}

func (NumericCodec) widths(table *FrequencyTable[Symbol]) (freqWidth uint8, keyWidth uint8, err error) {
	if uint64(table.Len()) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: %d entries exceed the entry count field", ErrUnencodableKey, table.Len())
	}
	var maxKey Symbol
	for _, key := range table.keys {
		if key < 0 {
			return 0, 0, fmt.Errorf("%w: negative symbol %d", ErrUnencodableKey, key)
		}
		if key > maxKey {
			maxKey = key
		}
	}
	return bitWidth(table.MaxFrequency()), bitWidth(uint32(maxKey)), nil
}

func (c NumericCodec) TableSize(table *FrequencyTable[Symbol]) (int, error) {
	freqWidth, keyWidth, err := c.widths(table)
	if err != nil {
		return 0, err
	}
	header := numericCountBits + 2*numericWidthBits
	return header + table.Len()*int(freqWidth+keyWidth), nil
}

func (c NumericCodec) WriteTable(w BitWriter, table *FrequencyTable[Symbol]) error {
	freqWidth, keyWidth, err := c.widths(table)
	if err != nil {
		return err
	}
	assert.Assertf(freqWidth <= numericMaxWidth && keyWidth <= numericMaxWidth, "widths %d/%d overflow the width fields", freqWidth, keyWidth)

	if err := w.WriteBits(uint64(table.Len()), numericCountBits); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(freqWidth), numericWidthBits); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(keyWidth), numericWidthBits); err != nil {
		return err
	}
	for _, key := range table.keys {
		freq, _ := table.Frequency(key)
		if err := w.WriteBits(uint64(key), keyWidth); err != nil {
			return err
		}
		if err := w.WriteBits(uint64(freq), freqWidth); err != nil {
			return err
		}
	}
	return nil
}

func (NumericCodec) ReadTable(r BitReader) (*FrequencyTable[Symbol], int, error) {
	cr := &countingReader{r: r}
	read := func(n uint8, what string) (uint64, error) {
		u, err := cr.ReadBits(n)
		if err != nil {
			return 0, fmt.Errorf("%w: reading %s at bit %d: %v", ErrIncompleteTable, what, cr.n, err)
		}
		return u, nil
	}

	count, err := read(numericCountBits, "entry count")
	if err != nil {
		return nil, cr.n, err
	}
	freqWidth, err := read(numericWidthBits, "frequency width")
	if err != nil {
		return nil, cr.n, err
	}
	keyWidth, err := read(numericWidthBits, "key width")
	if err != nil {
		return nil, cr.n, err
	}

	table := NewFrequencyTable[Symbol]()
	for i := uint64(0); i < count; i++ {
		key, err := read(uint8(keyWidth), "key")
		if err != nil {
			return nil, cr.n, err
		}
		freq, err := read(uint8(freqWidth), "frequency")
		if err != nil {
			return nil, cr.n, err
		}
		if key > uint64(MaxSymbol) {
			return nil, cr.n, fmt.Errorf("%w: key %d exceeds MaxSymbol", ErrCorruptStream, key)
		}
		if freq == 0 || freq > math.MaxUint32 {
			return nil, cr.n, fmt.Errorf("%w: invalid frequency %d for key %d", ErrCorruptStream, freq, key)
		}
		if err := table.Add(Symbol(key), uint32(freq)); err != nil {
			return nil, cr.n, err
		}
	}
	return table, cr.n, nil
}

var _ TableCodec[Symbol] = NumericCodec{}

// ByteSequenceCodec serializes tables keyed by short byte sequences:
//
//     per entry: [key bytes][freq: 32]
//     then: [sentinel: 111110]
//
// A key announces its own length through the leading one bits of its first
// byte, exactly as a UTF-8 character does: zero or one leading ones mean a
// 1-byte key, and two to four leading ones mean a key of that many bytes.
// Every valid UTF-8 character is therefore a valid key.  The sentinel has
// five leading ones, which no key can begin with.
//
type ByteSequenceCodec struct{}

func (ByteSequenceCodec) TableSize(table *FrequencyTable[string]) (int, error) {
	size := byteSeqSentinelBits
	for _, key := range table.keys {
		if !validTextKey(key) {
			return 0, fmt.Errorf("%w: %q is not a self-delimiting key", ErrUnencodableKey, key)
		}
		size += 8*len(key) + byteSeqFreqBits
	}
	return size, nil
}

func (c ByteSequenceCodec) WriteTable(w BitWriter, table *FrequencyTable[string]) error {
	if _, err := c.TableSize(table); err != nil {
		return err
	}
	for _, key := range table.keys {
		freq, _ := table.Frequency(key)
		for i := 0; i < len(key); i++ {
			if err := w.WriteBits(uint64(key[i]), 8); err != nil {
				return err
			}
		}
		if err := w.WriteBits(uint64(freq), byteSeqFreqBits); err != nil {
			return err
		}
	}
	return w.WriteBits(byteSeqSentinel, byteSeqSentinelBits)
}

func (ByteSequenceCodec) ReadTable(r BitReader) (*FrequencyTable[string], int, error) {
	cr := &countingReader{r: r}
	read := func(n uint8, what string) (uint64, error) {
		u, err := cr.ReadBits(n)
		if err != nil {
			return 0, fmt.Errorf("%w: reading %s at bit %d: %v", ErrIncompleteTable, what, cr.n, err)
		}
		return u, nil
	}

	table := NewFrequencyTable[string]()
	for {
		prefix, err := read(byteSeqSentinelBits, "key")
		if err != nil {
			return nil, cr.n, err
		}
		switch prefix {
		case byteSeqSentinel:
			return table, cr.n, nil
		case byteSeqBadPrefix:
			return nil, cr.n, fmt.Errorf("%w: invalid key prefix at bit %d", ErrCorruptStream, cr.n-byteSeqSentinelBits)
		}

		rest, err := read(8-byteSeqSentinelBits, "key")
		if err != nil {
			return nil, cr.n, err
		}
		first := byte(prefix<<(8-byteSeqSentinelBits) | rest)
		key := make([]byte, textKeyLen(first))
		key[0] = first
		for i := 1; i < len(key); i++ {
			b, err := read(8, "key")
			if err != nil {
				return nil, cr.n, err
			}
			key[i] = byte(b)
		}

		freq, err := read(byteSeqFreqBits, "frequency")
		if err != nil {
			return nil, cr.n, err
		}
		if freq == 0 {
			return nil, cr.n, fmt.Errorf("%w: zero frequency for key %q", ErrCorruptStream, key)
		}
		if err := table.Add(string(key), uint32(freq)); err != nil {
			return nil, cr.n, err
		}
	}
}

var _ TableCodec[string] = ByteSequenceCodec{}
