package filters

import (
	"fmt"

	"github.com/kwertop/gocuckoo"
	"github.com/kwertop/gocuckoo/buckets"
	"github.com/kwertop/gocuckoo/hash"
	"go.uber.org/zap"
)

// altMultiplier spreads a fingerprint across the bucket index bits.
const altMultiplier uint32 = 0x5bd1e995

// victim is the overflow slot: the one fingerprint left homeless when an
// eviction chain ran out of budget.
type victim struct {
	index       uint32
	fingerPrint byte
	used        bool
}

type positions struct {
	fingerPrint byte
	first       uint32
	second      uint32
}

type insertState int

const (
	statePlacing insertState = iota
	stateEvicting
	stateOverflowed
)

// AbstractCuckooFilter implements addressing, the eviction chain and the
// overflow slot over any bucket store.
type AbstractCuckooFilter struct {
	store   buckets.Store
	length  uint64
	mask    uint32
	retries uint64
	hasher  hash.Hasher
	logger  *zap.Logger
	victim  victim
}

func makeAbstractCuckooFilter(maxItems uint64, newStore func(length uint64, c *config) (buckets.Store, error), opts []Option) (*AbstractCuckooFilter, error) {
	length, err := gocuckoo.CalculateBucketCount(maxItems)
	if err != nil {
		return nil, err
	}
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	store, err := newStore(length, c)
	if err != nil {
		return nil, err
	}
	return &AbstractCuckooFilter{
		store:   store,
		length:  length,
		mask:    uint32(length - 1),
		retries: c.retries,
		hasher:  c.hasher,
		logger:  c.logger,
	}, nil
}

// Length is the number of buckets, always a power of two.
func (cuckooFilter *AbstractCuckooFilter) Length() uint64 {
	return cuckooFilter.length
}

func (cuckooFilter *AbstractCuckooFilter) BucketSize() uint64 {
	return gocuckoo.BucketSize
}

func (cuckooFilter *AbstractCuckooFilter) Retries() uint64 {
	return cuckooFilter.retries
}

// EstimateSize approximates the bytes held by the bucket store.
func (cuckooFilter *AbstractCuckooFilter) EstimateSize() uint64 {
	return cuckooFilter.length * gocuckoo.BucketSize
}

// IsFull reports whether the overflow slot is taken. This happens once an
// eviction chain exhausts its budget, usually well before every slot is used.
func (cuckooFilter *AbstractCuckooFilter) IsFull() bool {
	return cuckooFilter.victim.used
}

func (cuckooFilter *AbstractCuckooFilter) getPositions(data []byte) positions {
	return cuckooFilter.positionsFromDigest(cuckooFilter.hasher.Sum64(data))
}

// positionsFromDigest takes the fingerprint from the high half of the digest
// and the first bucket from the low half.
func (cuckooFilter *AbstractCuckooFilter) positionsFromDigest(digest uint64) positions {
	fingerPrint := byte(digest >> 32)
	if fingerPrint == buckets.EmptySlot {
		fingerPrint++
	}
	first := uint32(digest) & cuckooFilter.mask
	return positions{
		fingerPrint: fingerPrint,
		first:       first,
		second:      cuckooFilter.altIndex(first, fingerPrint),
	}
}

// altIndex maps either candidate bucket of fingerPrint to the other one.
func (cuckooFilter *AbstractCuckooFilter) altIndex(index uint32, fingerPrint byte) uint32 {
	return (index ^ uint32(fingerPrint)*altMultiplier) & cuckooFilter.mask
}

func (cuckooFilter *AbstractCuckooFilter) victimMatches(pos positions) bool {
	v := cuckooFilter.victim
	return v.used && v.fingerPrint == pos.fingerPrint && (v.index == pos.first || v.index == pos.second)
}

func (cuckooFilter *AbstractCuckooFilter) insert(data []byte) error {
	if cuckooFilter.victim.used {
		return fmt.Errorf("gocuckoo: overflow slot is occupied: %w", gocuckoo.ErrOutOfSpace)
	}
	pos := cuckooFilter.getPositions(data)
	state := statePlacing
	target := pos.first
	carried := pos.fingerPrint
	kicks := uint64(0)
	for {
		switch state {
		case statePlacing:
			for _, index := range [2]uint32{pos.first, pos.second} {
				ok, err := cuckooFilter.store.Add(index, pos.fingerPrint)
				if err != nil {
					return err
				}
				if ok {
					return nil
				}
			}
			if pos.fingerPrint%2 == 1 {
				target = pos.second
			}
			cuckooFilter.logger.Debug("both candidate buckets full, starting eviction chain",
				zap.Uint32("bucket", target), zap.Uint8("fingerprint", carried))
			state = stateEvicting
		case stateEvicting:
			if kicks >= cuckooFilter.retries {
				state = stateOverflowed
				continue
			}
			if kicks > 0 {
				ok, err := cuckooFilter.store.Add(target, carried)
				if err != nil {
					return cuckooFilter.abandonChain(target, carried, err)
				}
				if ok {
					return nil
				}
			}
			evicted, err := cuckooFilter.store.Swap(target, uint(target%gocuckoo.BucketSize), carried)
			if err != nil {
				return cuckooFilter.abandonChain(target, carried, err)
			}
			carried = evicted
			target = cuckooFilter.altIndex(target, carried)
			kicks++
		case stateOverflowed:
			cuckooFilter.victim = victim{index: target, fingerPrint: carried, used: true}
			cuckooFilter.logger.Warn("eviction budget exhausted, filter is full",
				zap.Uint64("kicks", kicks), zap.Uint32("bucket", target), zap.Uint8("fingerprint", carried))
			return fmt.Errorf("gocuckoo: no slot found after %d evictions: %w", kicks, gocuckoo.ErrOutOfSpace)
		}
	}
}

// abandonChain parks the carried fingerprint in the overflow slot when the
// store fails mid chain, so nothing already inserted becomes unfindable.
func (cuckooFilter *AbstractCuckooFilter) abandonChain(target uint32, carried byte, err error) error {
	if !cuckooFilter.victim.used {
		cuckooFilter.victim = victim{index: target, fingerPrint: carried, used: true}
	}
	cuckooFilter.logger.Error("bucket store failed during eviction chain",
		zap.Uint32("bucket", target), zap.Uint8("fingerprint", carried), zap.Error(err))
	return err
}

func (cuckooFilter *AbstractCuckooFilter) insertUnique(data []byte) error {
	ok, err := cuckooFilter.lookup(data)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("gocuckoo: %w", gocuckoo.ErrItemAlreadyExists)
	}
	return cuckooFilter.insert(data)
}

func (cuckooFilter *AbstractCuckooFilter) lookup(data []byte) (bool, error) {
	pos := cuckooFilter.getPositions(data)
	if cuckooFilter.victimMatches(pos) {
		return true, nil
	}
	for _, index := range [2]uint32{pos.first, pos.second} {
		bucket, err := cuckooFilter.store.At(index)
		if err != nil {
			return false, err
		}
		if bucket.Lookup(pos.fingerPrint) {
			return true, nil
		}
	}
	return false, nil
}

// remove deletes by fingerprint. A different item sharing the fingerprint
// and candidate buckets is indistinguishable and may be the one removed.
func (cuckooFilter *AbstractCuckooFilter) remove(data []byte) error {
	pos := cuckooFilter.getPositions(data)
	if cuckooFilter.victimMatches(pos) {
		cuckooFilter.victim = victim{}
		cuckooFilter.logger.Debug("overflow slot cleared", zap.Uint8("fingerprint", pos.fingerPrint))
		return nil
	}
	for _, index := range [2]uint32{pos.first, pos.second} {
		ok, err := cuckooFilter.store.Remove(index, pos.fingerPrint)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("gocuckoo: fingerprint %d not found in buckets %d or %d: %w",
		pos.fingerPrint, pos.first, pos.second, gocuckoo.ErrItemDoesNotExist)
}

func (cuckooFilter *AbstractCuckooFilter) count() (uint64, error) {
	occupied, err := cuckooFilter.store.Occupied()
	if err != nil {
		return 0, err
	}
	if cuckooFilter.victim.used {
		occupied++
	}
	return occupied, nil
}

func (cuckooFilter *AbstractCuckooFilter) loadFactor() (float64, error) {
	n, err := cuckooFilter.count()
	if err != nil {
		return 0, err
	}
	return float64(n) / float64(cuckooFilter.length*gocuckoo.BucketSize), nil
}
