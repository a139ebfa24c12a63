package buckets

import "github.com/kwertop/gocuckoo"

const BucketSize = gocuckoo.BucketSize

// EmptySlot marks an unused slot; fingerprints are never zero.
const EmptySlot byte = 0

// Bucket holds BucketSize one-byte fingerprints.
type Bucket [BucketSize]byte

// NextSlot returns the first empty slot, or -1 when the bucket is full.
func (bucket Bucket) NextSlot() int {
	return bucket.IndexOf(EmptySlot)
}

func (bucket Bucket) IsFree() bool {
	return bucket.NextSlot() > -1
}

func (bucket Bucket) Lookup(fingerPrint byte) bool {
	return bucket.IndexOf(fingerPrint) > -1
}

// Length counts the occupied slots.
func (bucket Bucket) Length() int {
	n := 0
	for _, val := range bucket {
		if val != EmptySlot {
			n++
		}
	}
	return n
}

func (bucket Bucket) IndexOf(fingerPrint byte) int {
	for index, val := range bucket {
		if val == fingerPrint {
			return index
		}
	}
	return -1
}
