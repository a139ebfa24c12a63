package gocuckoo

import (
	"fmt"
	"math/rand"
	"time"
	"unsafe"
)

const (
	// BucketSize is the number of fingerprint slots per bucket.
	BucketSize = 4
	// MaxEvictions bounds the length of a single eviction chain.
	MaxEvictions = 500
	// ItemLimit is the largest capacity a filter accepts: 2^32 buckets of
	// BucketSize slots, the full uint32 bucket index space.
	ItemLimit uint64 = (1 << 32) * BucketSize
)

var src = rand.NewSource(time.Now().UnixNano())

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

// NextPowerOfTwo returns the smallest power of two >= n. Zero maps to 1.
func NextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// CalculateBucketCount plans the bucket store for maxItems: maxItems/BucketSize
// rounded up to a power of two. It fails when maxItems exceeds ItemLimit.
func CalculateBucketCount(maxItems uint64) (uint64, error) {
	if maxItems > ItemLimit {
		return 0, fmt.Errorf("gocuckoo: requested %d items, more than %d is not supported: %w",
			maxItems, ItemLimit, ErrCapacityExceedsItemLimit)
	}
	return NextPowerOfTwo(maxItems / BucketSize), nil
}

func GenerateRandomString(n int) string {
	b := make([]byte, n)
	// A src.Int63() generates 63 random bits, enough for letterIdxMax characters!
	for i, cache, remain := n-1, src.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = src.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return *(*string)(unsafe.Pointer(&b))
}
