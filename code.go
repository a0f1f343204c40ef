package huffman

import (
	"bytes"
	"fmt"
	"io"
	"slices"
)

// CodeTable maps each symbol of a tree to its prefix-free code.
type CodeTable[K comparable] struct {
	keys  []K
	codes map[K]BitString
}

// GenerateCodes walks the tree and assigns each leaf its path from the
// root: 0 for each left branch, 1 for each right branch.  A tree consisting
// of a single leaf assigns that leaf the code "0".
func GenerateCodes[K comparable](root Node[K]) *CodeTable[K] {
	ct := &CodeTable[K]{codes: make(map[K]BitString)}

	record := func(leaf *Leaf[K], code BitString) {
		ct.keys = append(ct.keys, leaf.Symbol)
		ct.codes[leaf.Symbol] = code
	}

	if leaf, ok := root.(*Leaf[K]); ok {
		var code BitString
		code.AppendBit(0)
		record(leaf, code)
		return ct
	}

	// Trees can be as deep as the alphabet is large, so walk with an
	// explicit stack instead of recursion.

	type stackItem struct {
		node Node[K]
		code BitString
	}

	stack := []stackItem{{node: root}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack[len(stack)-1] = stackItem{}
		stack = stack[:len(stack)-1]

		switch node := top.node.(type) {
		case *Leaf[K]:
			record(node, top.code)
		case *Internal[K]:
			stack = append(stack,
				stackItem{node.Left, top.code.appended(0)},
				stackItem{node.Right, top.code.appended(1)})
		}
	}
	return ct
}

// Code returns a copy of the code for key, or false if key is not in the
// table.
func (ct *CodeTable[K]) Code(key K) (BitString, bool) {
	code, found := ct.codes[key]
	return code.clone(), found
}

// Len returns the number of codes.
func (ct *CodeTable[K]) Len() int {
	return len(ct.keys)
}

// Keys returns the keys in the order they were reached by the tree walk.
func (ct *CodeTable[K]) Keys() []K {
	return slices.Clone(ct.keys)
}

// MinSize is the bit length of the shortest code.
func (ct *CodeTable[K]) MinSize() int {
	shortest := -1
	for _, code := range ct.codes {
		if shortest < 0 || code.Len() < shortest {
			shortest = code.Len()
		}
	}
	return shortest
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable[K]) MaxSize() int {
	longest := 0
	for _, code := range ct.codes {
		if code.Len() > longest {
			longest = code.Len()
		}
	}
	return longest
}

// Dump writes a programmer-readable debugging dump of the code table to
// the given writer.
func (ct *CodeTable[K]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.MaxSize())
	for _, key := range ct.keys {
		fmt.Fprintf(&buf, "\tCode(%#v) = %s\n", key, ct.codes[key])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
