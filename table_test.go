package huffman

import (
	"errors"
	"math/rand"
	"testing"
)

func makeNumericTable(t *testing.T) *FrequencyTable[Symbol] {
	t.Helper()
	table := NewFrequencyTable[Symbol]()
	for _, pair := range [][2]uint32{{10, 2}, {20, 5}, {30, 1}} {
		if err := table.Add(Symbol(pair[0]), pair[1]); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return table
}

func TestNumericCodec_WriteTable(t *testing.T) {
	table := makeNumericTable(t)

	expect := mustParseBits(t, ""+
		"00000000000000000000000000000011"+ // 3 entries
		"000011"+ // frequency width 3
		"000101"+ // key width 5
		"01010"+"010"+
		"10100"+"101"+
		"11110"+"001")

	size, err := NumericCodec{}.TableSize(table)
	if err != nil {
		t.Fatalf("TableSize failed: %v", err)
	}
	if size != expect.Len() {
		t.Errorf("expected TableSize %d, got %d", expect.Len(), size)
	}

	var actual BitString
	if err := (NumericCodec{}).WriteTable(&actual, table); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	if !expect.Equal(actual) {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}

	parsed, n, err := NumericCodec{}.ReadTable(actual.Reader())
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if n != expect.Len() {
		t.Errorf("expected %d bits consumed, got %d", expect.Len(), n)
	}
	if !parsed.Equal(table) {
		t.Errorf("parsed table differs from the original")
	}
}

func TestNumericCodec_ZeroKey(t *testing.T) {
	table := NewFrequencyTable[Symbol]()
	_ = table.Add(0, 1)

	var bs BitString
	if err := (NumericCodec{}).WriteTable(&bs, table); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	// A key of 0 still gets a 1-bit field.
	if expect := 32 + 6 + 6 + 1 + 1; bs.Len() != expect {
		t.Errorf("expected %d bits, got %d", expect, bs.Len())
	}
}

func TestNumericCodec_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	for iteration := 0; iteration < iterations; iteration++ {
		table := NewFrequencyTable[Symbol]()
		n := 1 + rng.Intn(100)
		for i := 0; i < n; i++ {
			key := Symbol(rng.Int31())
			if _, found := table.Frequency(key); found {
				continue
			}
			_ = table.Add(key, 1+rng.Uint32()%0xfffffffe)
		}

		var bs BitString
		if err := (NumericCodec{}).WriteTable(&bs, table); err != nil {
			t.Fatalf("iteration %d: WriteTable failed: %v", iteration, err)
		}
		parsed, consumed, err := NumericCodec{}.ReadTable(bs.Reader())
		if err != nil {
			t.Fatalf("iteration %d: ReadTable failed: %v", iteration, err)
		}
		if consumed != bs.Len() {
			t.Errorf("iteration %d: consumed %d of %d bits", iteration, consumed, bs.Len())
		}
		if !parsed.Equal(table) {
			t.Errorf("iteration %d: parsed table differs from the original", iteration)
		}
	}
}

func TestNumericCodec_Errors(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect error
	}

	header := "00000000000000000000000000000010" + "000011" + "000101"

	testData := [...]testRow{
		{name: "truncated-header", input: "0000000000", expect: ErrIncompleteTable},
		{name: "truncated-body", input: header + "01010010" + "1010", expect: ErrIncompleteTable},
		{name: "duplicate", input: header + "01010010" + "01010101", expect: ErrDuplicateKey},
		{name: "zero-frequency", input: header + "01010000", expect: ErrCorruptStream},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, _, err := NumericCodec{}.ReadTable(mustParseBits(t, row.input).Reader())
			if !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
		})
	}

	table := NewFrequencyTable[Symbol]()
	_ = table.Add(-3, 1)
	if _, err := (NumericCodec{}).TableSize(table); !errors.Is(err, ErrUnencodableKey) {
		t.Errorf("expected ErrUnencodableKey for a negative symbol, got %v", err)
	}
}

func TestByteSequenceCodec_WriteTable(t *testing.T) {
	table := NewFrequencyTable[string]()
	_ = table.Add("a", 3)
	_ = table.Add("é", 1)

	expect := mustParseBits(t, ""+
		"01100001"+"00000000000000000000000000000011"+
		"11000011"+"10101001"+"00000000000000000000000000000001"+
		"111110")

	size, err := ByteSequenceCodec{}.TableSize(table)
	if err != nil {
		t.Fatalf("TableSize failed: %v", err)
	}
	if size != expect.Len() {
		t.Errorf("expected TableSize %d, got %d", expect.Len(), size)
	}

	var actual BitString
	if err := (ByteSequenceCodec{}).WriteTable(&actual, table); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	if !expect.Equal(actual) {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}

	// Trailing bits after the sentinel belong to the payload.
	actual.Append(mustParseBits(t, "1101"))
	parsed, n, err := ByteSequenceCodec{}.ReadTable(actual.Reader())
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if n != expect.Len() {
		t.Errorf("expected %d bits consumed, got %d", expect.Len(), n)
	}
	if !parsed.Equal(table) {
		t.Errorf("parsed table differs from the original")
	}
}

func TestByteSequenceCodec_RoundTrip(t *testing.T) {
	keys, err := SplitText("Grüße, 世界! 🙂 \x7f\x00")
	if err != nil {
		t.Fatalf("SplitText failed: %v", err)
	}
	table, err := Analyze(keys)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var bs BitString
	if err := (ByteSequenceCodec{}).WriteTable(&bs, table); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	parsed, n, err := ByteSequenceCodec{}.ReadTable(bs.Reader())
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if n != bs.Len() {
		t.Errorf("consumed %d of %d bits", n, bs.Len())
	}
	if !parsed.Equal(table) {
		t.Errorf("parsed table differs from the original")
	}
	for i, key := range table.Keys() {
		if parsed.Keys()[i] != key {
			t.Errorf("key %d: expected %q, got %q", i, key, parsed.Keys()[i])
		}
	}
}

func TestByteSequenceCodec_Errors(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect error
	}

	one := "00000000000000000000000000000001"

	testData := [...]testRow{
		{name: "no-sentinel", input: "01100001" + one, expect: ErrIncompleteTable},
		{name: "truncated-key", input: "11100010" + "10000010", expect: ErrIncompleteTable},
		{name: "truncated-frequency", input: "01100001" + "0000", expect: ErrIncompleteTable},
		{name: "duplicate", input: "01100001" + one + "01100001" + one + "111110", expect: ErrDuplicateKey},
		{name: "bad-prefix", input: "11111100" + one + "111110", expect: ErrCorruptStream},
		{name: "zero-frequency", input: "01100001" + "00000000000000000000000000000000" + "111110", expect: ErrCorruptStream},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, _, err := ByteSequenceCodec{}.ReadTable(mustParseBits(t, row.input).Reader())
			if !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
		})
	}
}

func TestByteSequenceCodec_UnencodableKey(t *testing.T) {
	for _, key := range []string{"", "ab", "\xc3", "\xf8\x80\x80\x80\x80"} {
		table := NewFrequencyTable[string]()
		_ = table.Add(key, 1)
		if _, err := (ByteSequenceCodec{}).TableSize(table); !errors.Is(err, ErrUnencodableKey) {
			t.Errorf("key %q: expected ErrUnencodableKey, got %v", key, err)
		}
		var bs BitString
		if err := (ByteSequenceCodec{}).WriteTable(&bs, table); !errors.Is(err, ErrUnencodableKey) {
			t.Errorf("key %q: expected ErrUnencodableKey from WriteTable, got %v", key, err)
		}
	}
}
