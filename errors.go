package huffman

import (
	"errors"
)

var (
	// ErrEmptyInput is returned when there are no symbols to encode.
	ErrEmptyInput = errors.New("huffman: empty input")

	// ErrIncompleteTable is returned when a serialized frequency table
	// runs past the end of the available bits.
	ErrIncompleteTable = errors.New("huffman: incomplete frequency table")

	// ErrDuplicateKey is returned when the same symbol appears twice in a
	// frequency table.
	ErrDuplicateKey = errors.New("huffman: duplicate key in frequency table")

	// ErrCorruptStream is returned when a frame is malformed, including
	// when the payload bits do not trace a valid path through the tree.
	ErrCorruptStream = errors.New("huffman: corrupt stream")

	// ErrUnencodableKey is returned when a symbol cannot be represented
	// by the chosen frequency table layout.
	ErrUnencodableKey = errors.New("huffman: key cannot be encoded")

	// ErrUnknownSymbol is returned when a symbol has no code.
	ErrUnknownSymbol = errors.New("huffman: symbol has no code")
)
