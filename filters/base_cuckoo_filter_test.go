package filters

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/kwertop/gocuckoo"
)

func TestBucketReversibility(t *testing.T) {
	filter := MustNewCuckooFilter(1 << 12)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		pos := filter.positionsFromDigest(rng.Uint64())
		if pos.fingerPrint == 0 {
			t.Fatal("fingerprint 0 is reserved for empty slots")
		}
		if pos.first >= uint32(filter.Length()) || pos.second >= uint32(filter.Length()) {
			t.Fatalf("bucket index out of range: %+v", pos)
		}
		if filter.altIndex(pos.first, pos.fingerPrint) != pos.second {
			t.Fatalf("alternate of first bucket should be second bucket: %+v", pos)
		}
		if filter.altIndex(pos.second, pos.fingerPrint) != pos.first {
			t.Fatalf("alternate of second bucket should be first bucket: %+v", pos)
		}
	}
}

func TestFingerPrintDerivation(t *testing.T) {
	filter := MustNewCuckooFilter(128)
	pos := filter.positionsFromDigest(0)
	if pos.fingerPrint != 1 || pos.first != 0 {
		t.Errorf("zero digest should give fingerprint 1 in bucket 0, instead found %+v", pos)
	}
	pos = filter.positionsFromDigest(0x0000_0100_0000_0000)
	if pos.fingerPrint != 1 {
		t.Errorf("fingerprint uses only the low byte of the high half, instead found %v", pos.fingerPrint)
	}
	pos = filter.positionsFromDigest(0x0000_00ab_0000_0045)
	if pos.fingerPrint != 0xab {
		t.Errorf("fingerprint should be 0xab, instead found %v", pos.fingerPrint)
	}
	if pos.first != 0x45&31 {
		t.Errorf("first bucket should be the low bits masked to 32 buckets, instead found %v", pos.first)
	}
	fp := uint32(0xab)
	want := (pos.first ^ fp*altMultiplier) & 31
	if pos.second != want {
		t.Errorf("second bucket should be %v, instead found %v", want, pos.second)
	}
}

func TestCapacityBoundary(t *testing.T) {
	length, err := gocuckoo.CalculateBucketCount(gocuckoo.ItemLimit)
	if err != nil {
		t.Fatalf("item limit should be accepted, got %v", err)
	}
	if length != 1<<32 {
		t.Errorf("item limit should need 2^32 buckets, instead found %v", length)
	}
	_, err = NewCuckooFilter(gocuckoo.ItemLimit + 1)
	if !errors.Is(err, gocuckoo.ErrCapacityExceedsItemLimit) {
		t.Errorf("one item past the limit should fail with ErrCapacityExceedsItemLimit, got %v", err)
	}
}

func TestMustNewPanicsPastLimit(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustNewCuckooFilter should panic past the item limit")
		}
	}()
	MustNewCuckooFilter(gocuckoo.ItemLimit + 1)
}

func TestBucketCountRounding(t *testing.T) {
	cases := map[uint64]uint64{0: 1, 3: 1, 4: 1, 8: 2, 100: 32, 128: 32, 129: 32, 132: 64}
	for maxItems, want := range cases {
		filter, err := NewCuckooFilter(maxItems)
		if err != nil {
			t.Fatalf("unexpected error for %d items: %v", maxItems, err)
		}
		if filter.Length() != want {
			t.Errorf("%d items should give %d buckets, instead found %v", maxItems, want, filter.Length())
		}
		if filter.EstimateSize() != want*4 {
			t.Errorf("size estimate for %d items should be %d, instead found %v", maxItems, want*4, filter.EstimateSize())
		}
	}
}
