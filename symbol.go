package huffman

import (
	"fmt"
	"math"
	mathbits "math/bits"
	"strings"
	"unicode/utf8"
)

// Symbol represents a symbol in an arbitrary numeric alphabet.  Negative
// symbols are not valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxInt32)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// BytesToSymbols converts each byte of data into its own Symbol.
func BytesToSymbols(data []byte) []Symbol {
	out := make([]Symbol, len(data))
	for i, b := range data {
		out[i] = Symbol(b)
	}
	return out
}

// SymbolsToBytes is the inverse of BytesToSymbols.  It fails if any symbol
// does not fit in a byte.
func SymbolsToBytes(symbols []Symbol) ([]byte, error) {
	out := make([]byte, len(symbols))
	for i, symbol := range symbols {
		if symbol < 0 || symbol > math.MaxUint8 {
			return nil, fmt.Errorf("symbol %d at index %d is not a byte", symbol, i)
		}
		out[i] = byte(symbol)
	}
	return out, nil
}

// SplitText splits s into one key per UTF-8 character.  Every key produced
// is encodable by ByteSequenceCodec.
func SplitText(s string) ([]string, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrUnencodableKey)
	}
	out := make([]string, 0, utf8.RuneCountInString(s))
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		out = append(out, s[i:i+size])
		i += size
	}
	return out, nil
}

// JoinText is the inverse of SplitText.
func JoinText(keys []string) string {
	return strings.Join(keys, "")
}

// textKeyLen returns the length in bytes of a text key, as announced by the
// leading one bits of its first byte.  It returns 0 if first cannot begin a
// key.
func textKeyLen(first byte) int {
	switch ones := mathbits.LeadingZeros8(^first); ones {
	case 0, 1:
		return 1
	case 2, 3, 4:
		return ones
	default:
		return 0
	}
}

func validTextKey(key string) bool {
	return len(key) != 0 && textKeyLen(key[0]) == len(key)
}
