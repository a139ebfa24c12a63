package bitset

import "testing"

func TestBitSetHas(t *testing.T) {
	bitset := NewBitSetMem(16)
	bitset.Insert(2)
	bitset.Insert(3)
	bitset.Insert(7)
	if ok, _ := bitset.Has(3); !ok {
		t.Fatalf("should be true at index 3, got %v", ok)
	}
	if ok, _ := bitset.Has(4); ok {
		t.Fatalf("should be false at index 4, got %v", ok)
	}
}

func TestBitSetRemove(t *testing.T) {
	bitset := NewBitSetMem(16)
	bitset.Insert(5)
	bitset.Remove(5)
	if ok, _ := bitset.Has(5); ok {
		t.Fatalf("should be false at index 5 after removal, got %v", ok)
	}
}

func TestBitSetBitCount(t *testing.T) {
	bitset := NewBitSetMem(128)
	for _, i := range []uint{0, 1, 64, 127} {
		bitset.Insert(i)
	}
	setBits, _ := bitset.BitCount()
	if setBits != 4 {
		t.Fatalf("count of set bits should be 4, got %v", setBits)
	}
	bitset.Remove(64)
	setBits, _ = bitset.BitCount()
	if setBits != 3 {
		t.Fatalf("count of set bits should be 3, got %v", setBits)
	}
}

func TestBitSetEqual(t *testing.T) {
	aBitset := NewBitSetMem(8)
	aBitset.Insert(0)
	aBitset.Insert(1)
	bBitset := NewBitSetMem(8)
	bBitset.Insert(0)
	bBitset.Insert(1)
	if !aBitset.Equals(bBitset) {
		t.Fatal("aBitset and bBitset should be equal")
	}
	bBitset.Remove(1)
	if aBitset.Equals(bBitset) {
		t.Fatal("aBitset and bBitset shouldn't be equal")
	}
}
