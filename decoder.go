package huffman

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// Unpack parses the header of a frame: it skips the zero padding, checks
// the alignment marker, and parses the frequency table with codec.  It
// returns the table and the bit offset within data at which the payload
// begins.  The payload runs to the end of data.
func Unpack[K comparable](codec TableCodec[K], data []byte) (*FrequencyTable[K], int, error) {
	totalBits := 8 * len(data)
	r := bitio.NewReader(bytes.NewReader(data))

	pos := 0
	for {
		if pos >= totalBits {
			return nil, 0, fmt.Errorf("%w: no alignment marker", ErrCorruptStream)
		}
		bit, err := r.ReadBool()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrCorruptStream, err)
		}
		pos++
		if bit {
			break
		}
	}

	const restBits = markerBits - 1
	rest, err := r.ReadBits(restBits)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: truncated alignment marker: %v", ErrCorruptStream, err)
	}
	if rest != marker&(1<<restBits-1) {
		return nil, 0, fmt.Errorf("%w: bad alignment marker %#06x", ErrCorruptStream, 1<<restBits|rest)
	}
	pos += restBits

	table, n, err := codec.ReadTable(r)
	if err != nil {
		return nil, 0, err
	}
	if table.Len() == 0 {
		return nil, 0, fmt.Errorf("%w: empty frequency table", ErrCorruptStream)
	}
	pos += n

	log.Debugf("unpacked frame: %d table entries, payload at bit %d of %d", table.Len(), pos, totalBits)
	return table, pos, nil
}

// Decode walks the payload through the tree, starting at the root and
// taking the left child on 0 and the right child on 1.  Each leaf reached
// emits its symbol and restarts the walk at the root.
//
// Every bit of payload is consumed.  If the last bit does not complete a
// code, Decode fails with ErrCorruptStream.  A tree of a single leaf
// decodes each 0 bit as one symbol and rejects 1 bits.
//
func Decode[K comparable](payload BitString, root Node[K]) ([]K, error) {
	numBits := payload.Len()

	if leaf, ok := root.(*Leaf[K]); ok {
		out := make([]K, 0, numBits)
		for i := 0; i < numBits; i++ {
			if payload.Bit(i) != 0 {
				return nil, fmt.Errorf("%w: bit %d does not match the single code \"0\"", ErrCorruptStream, i)
			}
			out = append(out, leaf.Symbol)
		}
		return out, nil
	}

	var out []K
	node := root
	codeStart := 0
	for i := 0; i < numBits; i++ {
		in := node.(*Internal[K])
		if payload.Bit(i) == 0 {
			node = in.Left
		} else {
			node = in.Right
		}
		if leaf, ok := node.(*Leaf[K]); ok {
			out = append(out, leaf.Symbol)
			node = root
			codeStart = i + 1
		}
	}
	if codeStart != numBits {
		return nil, fmt.Errorf("%w: payload ends inside the code starting at bit %d", ErrCorruptStream, codeStart)
	}
	return out, nil
}

// Decompress runs the whole decoding pipeline over a packed frame.  The
// number of decoded symbols must match the total of the frame's table.
func Decompress[K comparable](codec TableCodec[K], data []byte) ([]K, error) {
	table, offset, err := Unpack(codec, data)
	if err != nil {
		return nil, err
	}
	root, err := BuildTree(table)
	if err != nil {
		return nil, err
	}
	payload := MakeBitString(data, 8*len(data)).Slice(offset, 8*len(data))
	out, err := Decode[K](payload, root)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != table.Total() {
		return nil, fmt.Errorf("%w: decoded %d symbols, table counts %d", ErrCorruptStream, len(out), table.Total())
	}
	return out, nil
}

// DecompressText is the inverse of CompressText.
func DecompressText(data []byte) (string, error) {
	keys, err := Decompress[string](ByteSequenceCodec{}, data)
	if err != nil {
		return "", err
	}
	return JoinText(keys), nil
}

// DecompressBytes is the inverse of CompressBytes.
func DecompressBytes(data []byte) ([]byte, error) {
	symbols, err := Decompress[Symbol](NumericCodec{}, data)
	if err != nil {
		return nil, err
	}
	return SymbolsToBytes(symbols)
}
