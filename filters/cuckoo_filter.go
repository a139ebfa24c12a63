package filters

import (
	"github.com/kwertop/gocuckoo/buckets"
)

// CuckooFilter is an in-memory cuckoo filter holding one-byte fingerprints in
// buckets of four. It never yields false negatives, including after an
// insert has failed with ErrOutOfSpace.
//
// A CuckooFilter is not safe for concurrent use. Insert and Delete need
// exclusive access; with a stateless hasher (all hashers in package hash
// are) concurrent Lookups on an otherwise idle filter are safe.
type CuckooFilter struct {
	buckets *buckets.BucketMem
	*AbstractCuckooFilter
}

// NewCuckooFilter creates a filter sized for maxItems. It fails with
// ErrCapacityExceedsItemLimit when maxItems exceeds ItemLimit.
func NewCuckooFilter(maxItems uint64, opts ...Option) (*CuckooFilter, error) {
	var mem *buckets.BucketMem
	baseFilter, err := makeAbstractCuckooFilter(maxItems, func(length uint64, _ *config) (buckets.Store, error) {
		mem = buckets.NewBucketMem(length)
		return mem, nil
	}, opts)
	if err != nil {
		return nil, err
	}
	return &CuckooFilter{mem, baseFilter}, nil
}

// MustNewCuckooFilter is like NewCuckooFilter but panics when the capacity
// check fails.
func MustNewCuckooFilter(maxItems uint64, opts ...Option) *CuckooFilter {
	filter, err := NewCuckooFilter(maxItems, opts...)
	if err != nil {
		panic(err)
	}
	return filter
}

// Insert adds data. ErrOutOfSpace means the filter is full: either the
// overflow slot was already taken and nothing was stored, or data was stored
// and some other fingerprint now sits in the overflow slot.
func (cuckooFilter *CuckooFilter) Insert(data []byte) error {
	return cuckooFilter.insert(data)
}

// InsertUnique adds data unless Lookup already reports it, in which case it
// returns ErrItemAlreadyExists.
func (cuckooFilter *CuckooFilter) InsertUnique(data []byte) error {
	return cuckooFilter.insertUnique(data)
}

func (cuckooFilter *CuckooFilter) Lookup(data []byte) bool {
	ok, _ := cuckooFilter.lookup(data)
	return ok
}

// Delete removes one fingerprint matching data from the overflow slot or a
// candidate bucket. Colliding items share fingerprints, so this can remove
// another item's entry; that item then reads as absent.
func (cuckooFilter *CuckooFilter) Delete(data []byte) error {
	return cuckooFilter.remove(data)
}

func (cuckooFilter *CuckooFilter) InsertString(s string) error {
	return cuckooFilter.Insert([]byte(s))
}

func (cuckooFilter *CuckooFilter) LookupString(s string) bool {
	return cuckooFilter.Lookup([]byte(s))
}

func (cuckooFilter *CuckooFilter) DeleteString(s string) error {
	return cuckooFilter.Delete([]byte(s))
}

// Count is the number of stored fingerprints, overflow slot included.
func (cuckooFilter *CuckooFilter) Count() uint64 {
	n, _ := cuckooFilter.count()
	return n
}

func (cuckooFilter *CuckooFilter) LoadFactor() float64 {
	f, _ := cuckooFilter.loadFactor()
	return f
}

func (aFilter *CuckooFilter) Equals(bFilter *CuckooFilter) bool {
	return aFilter.victim == bFilter.victim && aFilter.buckets.Equals(bFilter.buckets)
}
