package buckets

import (
	"fmt"

	"github.com/kwertop/gocuckoo/bitset"
)

// Store is the bucket array of a cuckoo filter. Indexes are bucket indexes,
// slots are positions inside a bucket.
type Store interface {
	Size() uint64
	At(index uint32) (Bucket, error)
	// Add writes fingerPrint into the first empty slot of the bucket and
	// reports whether there was one.
	Add(index uint32, fingerPrint byte) (bool, error)
	// Swap writes fingerPrint into the given slot and returns the previous value.
	Swap(index uint32, slot uint, fingerPrint byte) (byte, error)
	// Remove empties the first slot holding fingerPrint.
	Remove(index uint32, fingerPrint byte) (bool, error)
	// Occupied counts the non-empty slots across all buckets.
	Occupied() (uint64, error)
}

// AbstractStore holds what every store shares: the bucket count and a
// bitset with one bit per slot, set while the slot holds a fingerprint.
type AbstractStore struct {
	size      uint64
	occupancy bitset.IBitSet
}

func (store *AbstractStore) Size() uint64 {
	return store.size
}

func (store *AbstractStore) slotIndex(index uint32, slot uint) uint64 {
	return uint64(index)*BucketSize + uint64(slot)
}

func (store *AbstractStore) check(index uint32) error {
	if uint64(index) >= store.size {
		return fmt.Errorf("gocuckoo: bucket index %d out of range for %d buckets", index, store.size)
	}
	return nil
}

func (store *AbstractStore) Occupied() (uint64, error) {
	count, err := store.occupancy.BitCount()
	if err != nil {
		return 0, err
	}
	return uint64(count), nil
}
