package bitset

import (
	"github.com/bits-and-blooms/bitset"
)

type BitSetMem struct {
	set  *bitset.BitSet
	size uint
}

func NewBitSetMem(size uint) *BitSetMem {
	return &BitSetMem{bitset.New(size), size}
}

func (bitSet *BitSetMem) Size() uint {
	return bitSet.size
}

func (bitSet *BitSetMem) Has(index uint) (bool, error) {
	return bitSet.set.Test(index), nil
}

func (bitSet *BitSetMem) Insert(index uint) (bool, error) {
	bitSet.set.Set(index)
	return true, nil
}

func (bitSet *BitSetMem) Remove(index uint) (bool, error) {
	bitSet.set.Clear(index)
	return true, nil
}

func (bitSet *BitSetMem) BitCount() (uint, error) {
	return bitSet.set.Count(), nil
}

func (bitSet *BitSetMem) Equals(other *BitSetMem) bool {
	return bitSet.size == other.size && bitSet.set.Equal(other.set)
}
