// Package huffman implements a self-contained Huffman-coded frame format.
// A frame carries the frequency table of its input, so the decoder can
// rebuild the exact same tree without any side channel.
//
// Frame layout (most significant bit first within each byte):
//
//     [zero padding to a byte boundary]
//     [alignment marker: 24 bits, 0xB1BAFF]
//     [serialized frequency table]
//     [payload: the concatenated code of every input symbol]
//
// Two frequency table layouts exist.  NumericCodec serializes tables keyed
// by Symbol with fixed-width fields; ByteSequenceCodec serializes tables keyed by
// short byte sequences (UTF-8 characters) with self-delimiting keys and a
// trailing sentinel.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
