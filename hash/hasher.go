// Package hash provides the digest functions used to address cuckoo filter
// buckets. Every Hasher is stateless: each call builds its own accumulator,
// so a shared Hasher never needs resetting between items.
package hash

import (
	"github.com/cespare/xxhash/v2"
	metro "github.com/dgryski/go-metro"
	"github.com/zeebo/xxh3"
)

// Hasher reduces an item to a 64-bit digest.
type Hasher interface {
	Sum64(data []byte) uint64
}

// HasherFunc adapts a plain function to Hasher.
type HasherFunc func(data []byte) uint64

func (f HasherFunc) Sum64(data []byte) uint64 {
	return f(data)
}

const metroSeed = 0

var (
	// Murmur3 is the default digest: the low 64 bits of MurmurHash3 x86_128.
	Murmur3 Hasher = HasherFunc(Sum64)

	XXHash Hasher = HasherFunc(xxhash.Sum64)

	XXH3 Hasher = HasherFunc(xxh3.Hash)

	Metro Hasher = HasherFunc(func(data []byte) uint64 {
		return metro.Hash64(data, metroSeed)
	})

	// DJB2 and SDBM are weak string hashes kept for experimentation only.
	DJB2 Hasher = HasherFunc(djb2)
	SDBM Hasher = HasherFunc(sdbm)
)

func djb2(data []byte) uint64 {
	h := uint64(5381)
	for _, c := range data {
		h = h<<5 + h + uint64(c)
	}
	return h
}

func sdbm(data []byte) uint64 {
	var h uint64
	for _, c := range data {
		h = uint64(c) + h<<6 + h<<16 - h
	}
	return h
}
