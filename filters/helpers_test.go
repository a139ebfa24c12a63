package filters

import (
	"encoding/binary"

	"github.com/kwertop/gocuckoo/hash"
)

// digestHasher treats the first eight bytes of an item as its digest, which
// lets tests pick fingerprints and buckets directly.
var digestHasher = hash.HasherFunc(func(data []byte) uint64 {
	return binary.BigEndian.Uint64(data)
})

func digestKey(tag uint32, fingerPrint byte, first uint32) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(tag)<<40|uint64(fingerPrint)<<32|uint64(first))
	return key
}
