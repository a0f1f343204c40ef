package huffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// Node is a node of a Huffman tree.  It is either a *Leaf or an *Internal;
// no other implementations exist.
type Node[K comparable] interface {
	// Frequency returns the total frequency of the leaves under this node.
	Frequency() uint64

	isNode()
}

// Leaf is a Node that holds a single symbol.
type Leaf[K comparable] struct {
	Symbol K
	Freq   uint64
}

// Internal is a Node with exactly two children.  Its frequency is the sum
// of its children's frequencies.
type Internal[K comparable] struct {
	Left  Node[K]
	Right Node[K]
	Freq  uint64
}

func (leaf *Leaf[K]) Frequency() uint64 { return leaf.Freq }

func (in *Internal[K]) Frequency() uint64 { return in.Freq }

func (*Leaf[K]) isNode()     {}
func (*Internal[K]) isNode() {}

var _ Node[Symbol] = (*Leaf[Symbol])(nil)
var _ Node[Symbol] = (*Internal[Symbol])(nil)

func newInternal[K comparable](left, right Node[K]) *Internal[K] {
	freq := left.Frequency() + right.Frequency()
	assert.Assertf(freq >= left.Frequency(), "frequency overflow merging %d and %d", left.Frequency(), right.Frequency())
	return &Internal[K]{Left: left, Right: right, Freq: freq}
}

// BuildTree builds the Huffman tree for the given table.
//
// Nodes are merged two at a time, lowest frequency first.  Among nodes of
// equal frequency, the one inserted most recently is taken first; leaves
// count as inserted in table order, and each merged node is inserted after
// all existing nodes.  The first node taken becomes the left child.  The
// same table therefore always produces the same tree.
//
// A table with a single key produces a lone *Leaf.
//
func BuildTree[K comparable](table *FrequencyTable[K]) (Node[K], error) {
	numKeys := table.Len()
	if numKeys == 0 {
		return nil, ErrEmptyInput
	}

	// Step 1: build a minheap of leaves.

	h := nodeHeap[K]{list: make([]nodeAndSeq[K], 0, numKeys)}
	for _, key := range table.keys {
		freq, _ := table.Frequency(key)
		h.list = append(h.list, nodeAndSeq[K]{&Leaf[K]{Symbol: key, Freq: uint64(freq)}, h.next})
		h.next++
	}
	h.Init()

	// Step 2: pop two nodes, combine them, push the combination back.

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndSeq[K])
		b := heap.Pop(&h).(nodeAndSeq[K])
		heap.Push(&h, nodeAndSeq[K]{newInternal[K](a.node, b.node), h.next})
		h.next++
	}

	assert.Assertf(h.Len() == 1, "expected exactly 1 node, got %d", h.Len())
	root := heap.Pop(&h).(nodeAndSeq[K]).node
	log.Debugf("built tree for %d keys, total frequency %d", numKeys, root.Frequency())
	return root, nil
}

// type nodeAndSeq + type nodeHeap {{{

type nodeAndSeq[K comparable] struct {
	node Node[K]
	seq  uint64
}

type nodeHeap[K comparable] struct {
	list []nodeAndSeq[K]
	next uint64
}

func (h *nodeHeap[K]) Init() {
	heap.Init(h)
}

func (h *nodeHeap[K]) Len() int {
	return len(h.list)
}

func (h *nodeHeap[K]) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap[K]) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	af, bf := a.node.Frequency(), b.node.Frequency()
	if af != bf {
		return af < bf
	}
	return a.seq > b.seq
}

func (h *nodeHeap[K]) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndSeq[K]))
}

func (h *nodeHeap[K]) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nodeAndSeq[K]{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap[Symbol])(nil)

// }}}
