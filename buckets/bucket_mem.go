package buckets

import (
	"fmt"

	"github.com/kwertop/gocuckoo/bitset"
)

// BucketMem keeps the buckets in a contiguous slice. Its methods never
// return an error for in-range indexes.
type BucketMem struct {
	buckets []Bucket
	*AbstractStore
}

func NewBucketMem(size uint64) *BucketMem {
	return &BucketMem{
		buckets:       make([]Bucket, size),
		AbstractStore: &AbstractStore{size, bitset.NewBitSetMem(uint(size * BucketSize))},
	}
}

func (store *BucketMem) At(index uint32) (Bucket, error) {
	if err := store.check(index); err != nil {
		return Bucket{}, err
	}
	return store.buckets[index], nil
}

func (store *BucketMem) Add(index uint32, fingerPrint byte) (bool, error) {
	if err := store.check(index); err != nil {
		return false, err
	}
	if fingerPrint == EmptySlot {
		return false, nil
	}
	slot := store.buckets[index].NextSlot()
	if slot < 0 {
		return false, nil
	}
	store.buckets[index][slot] = fingerPrint
	store.occupancy.Insert(uint(store.slotIndex(index, uint(slot))))
	return true, nil
}

func (store *BucketMem) Swap(index uint32, slot uint, fingerPrint byte) (byte, error) {
	if err := store.check(index); err != nil {
		return EmptySlot, err
	}
	if slot >= BucketSize {
		return EmptySlot, fmt.Errorf("gocuckoo: slot %d out of range", slot)
	}
	prev := store.buckets[index][slot]
	store.buckets[index][slot] = fingerPrint
	bit := uint(store.slotIndex(index, slot))
	if fingerPrint == EmptySlot {
		store.occupancy.Remove(bit)
	} else {
		store.occupancy.Insert(bit)
	}
	return prev, nil
}

func (store *BucketMem) Remove(index uint32, fingerPrint byte) (bool, error) {
	if err := store.check(index); err != nil {
		return false, err
	}
	slot := store.buckets[index].IndexOf(fingerPrint)
	if slot < 0 || fingerPrint == EmptySlot {
		return false, nil
	}
	store.buckets[index][slot] = EmptySlot
	store.occupancy.Remove(uint(store.slotIndex(index, uint(slot))))
	return true, nil
}

func (store *BucketMem) Equals(other *BucketMem) bool {
	if store.size != other.size {
		return false
	}
	for i := range store.buckets {
		if store.buckets[i] != other.buckets[i] {
			return false
		}
	}
	return true
}
