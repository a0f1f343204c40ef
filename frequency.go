package huffman

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"slices"
)

// FrequencyTable maps each distinct symbol to its number of occurrences.
// Iteration order is the order in which keys were first added, which
// determines how ties are broken when building a tree.
type FrequencyTable[K comparable] struct {
	keys   []K
	counts map[K]uint32
}

// NewFrequencyTable returns an empty FrequencyTable.
func NewFrequencyTable[K comparable]() *FrequencyTable[K] {
	return &FrequencyTable[K]{counts: make(map[K]uint32)}
}

// Analyze counts the occurrences of each distinct symbol.
func Analyze[K comparable](symbols []K) (*FrequencyTable[K], error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyInput
	}
	t := NewFrequencyTable[K]()
	for _, symbol := range symbols {
		if err := t.increment(symbol, 1); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add inserts a new key with the given frequency, which must be positive.
// It fails with ErrDuplicateKey if key is already present.
func (t *FrequencyTable[K]) Add(key K, freq uint32) error {
	if freq == 0 {
		return fmt.Errorf("frequency of %v must be positive", key)
	}
	if _, found := t.counts[key]; found {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}
	t.keys = append(t.keys, key)
	t.counts[key] = freq
	return nil
}

// Merge adds every count of other into t.  Keys new to t are appended in
// other's order.  Tables built from consecutive partitions of an input
// merge into the table of the whole input.
func (t *FrequencyTable[K]) Merge(other *FrequencyTable[K]) error {
	for _, key := range other.keys {
		if err := t.increment(key, other.counts[key]); err != nil {
			return err
		}
	}
	return nil
}

func (t *FrequencyTable[K]) increment(key K, delta uint32) error {
	count, found := t.counts[key]
	if !found {
		t.keys = append(t.keys, key)
	}
	if count > math.MaxUint32-delta {
		return fmt.Errorf("frequency of %v exceeds %d", key, uint32(math.MaxUint32))
	}
	t.counts[key] = count + delta
	return nil
}

// Len returns the number of distinct keys.
func (t *FrequencyTable[K]) Len() int {
	return len(t.keys)
}

// Keys returns the keys in first-seen order.
func (t *FrequencyTable[K]) Keys() []K {
	return slices.Clone(t.keys)
}

// Frequency returns the count for key, or false if key is absent.
func (t *FrequencyTable[K]) Frequency(key K) (uint32, bool) {
	count, found := t.counts[key]
	return count, found
}

// Total returns the sum of all counts.
func (t *FrequencyTable[K]) Total() uint64 {
	var sum uint64
	for _, count := range t.counts {
		sum += uint64(count)
	}
	return sum
}

// MaxFrequency returns the largest count in the table.
func (t *FrequencyTable[K]) MaxFrequency() uint32 {
	var largest uint32
	for _, count := range t.counts {
		if count > largest {
			largest = count
		}
	}
	return largest
}

// Equal returns true iff both tables hold the same key/frequency pairs,
// regardless of order.
func (t *FrequencyTable[K]) Equal(other *FrequencyTable[K]) bool {
	if len(t.counts) != len(other.counts) {
		return false
	}
	for key, count := range t.counts {
		if otherCount, found := other.counts[key]; !found || otherCount != count {
			return false
		}
	}
	return true
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer, in iteration order.
func (t *FrequencyTable[K]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for _, key := range t.keys {
		fmt.Fprintf(&buf, "\t%#v: %d\n", key, t.counts[key])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
