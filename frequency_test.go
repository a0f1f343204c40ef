package huffman

import (
	"errors"
	"strings"
	"testing"
)

func TestAnalyze(t *testing.T) {
	symbols, err := SplitText("abracadabra")
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}
	table, err := Analyze(symbols)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"FrequencyTable{\n",
		"\t\"a\": 5\n",
		"\t\"b\": 2\n",
		"\t\"r\": 2\n",
		"\t\"c\": 1\n",
		"\t\"d\": 1\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = table.Dump(&buf)
	actualDump := buf.String()
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	if actual := table.Total(); actual != uint64(len(symbols)) {
		t.Errorf("expected total %d, got %d", len(symbols), actual)
	}
	if actual := table.MaxFrequency(); actual != 5 {
		t.Errorf("expected max frequency 5, got %d", actual)
	}
}

func TestAnalyze_Counts(t *testing.T) {
	symbols := BytesToSymbols([]byte("the quick brown fox jumps over the lazy dog"))
	table, err := Analyze(symbols)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	expect := make(map[Symbol]uint32)
	for _, symbol := range symbols {
		expect[symbol]++
	}
	if table.Len() != len(expect) {
		t.Errorf("expected %d keys, got %d", len(expect), table.Len())
	}
	for symbol, count := range expect {
		if actual, found := table.Frequency(symbol); !found || actual != count {
			t.Errorf("symbol %d: expected %d, got %d (found=%v)", symbol, count, actual, found)
		}
	}
	if actual := table.Total(); actual != uint64(len(symbols)) {
		t.Errorf("expected total %d, got %d", len(symbols), actual)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze[Symbol](nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestFrequencyTable_Add(t *testing.T) {
	table := NewFrequencyTable[Symbol]()
	if err := table.Add(7, 3); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := table.Add(7, 1); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	if err := table.Add(8, 0); err == nil {
		t.Errorf("Add accepted a zero frequency")
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 key, got %d", table.Len())
	}
}

func TestFrequencyTable_Merge(t *testing.T) {
	input := BytesToSymbols([]byte("mississippi river"))

	whole, err := Analyze(input)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	merged := NewFrequencyTable[Symbol]()
	for _, part := range [][]Symbol{input[:5], input[5:11], input[11:]} {
		partial, err := Analyze(part)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		if err := merged.Merge(partial); err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
	}

	if !merged.Equal(whole) {
		t.Errorf("merged table differs from whole table")
	}
	for i, key := range whole.Keys() {
		if merged.Keys()[i] != key {
			t.Errorf("key %d: expected %d, got %d", i, key, merged.Keys()[i])
		}
	}
}

func TestFrequencyTable_Equal(t *testing.T) {
	a := NewFrequencyTable[string]()
	b := NewFrequencyTable[string]()
	_ = a.Add("x", 1)
	_ = a.Add("y", 2)
	_ = b.Add("y", 2)
	_ = b.Add("x", 1)
	if !a.Equal(b) {
		t.Errorf("tables with the same pairs in different order should be equal")
	}
	_ = b.Add("z", 1)
	if a.Equal(b) {
		t.Errorf("tables of different sizes should not be equal")
	}
}
