package hash

import (
	"encoding/binary"
	stdhash "hash"
	"math/bits"
)

const (
	c1_32 = 0x239b961b
	c2_32 = 0xab0e9789
	c3_32 = 0x38b34ae5
	c4_32 = 0xa1e38b93

	blockSize = 16
)

var _ stdhash.Hash64 = (*Digest)(nil)

// Digest is an incremental MurmurHash3 x86_128. Input may arrive in any
// number of Write calls; the trailing partial block is held back until the
// digest is summed. Summing does not modify the digest.
type Digest struct {
	seed           uint32
	h1, h2, h3, h4 uint32
	tail           [blockSize]byte
	ntail          int
	length         uint64
}

func New() *Digest {
	return NewWithSeed(0)
}

func NewWithSeed(seed uint32) *Digest {
	d := &Digest{seed: seed}
	d.Reset()
	return d
}

// Reset returns the lanes to the seed and drops buffered input.
func (d *Digest) Reset() {
	d.h1, d.h2, d.h3, d.h4 = d.seed, d.seed, d.seed, d.seed
	d.ntail = 0
	d.length = 0
}

func (d *Digest) Size() int { return 8 }

func (d *Digest) BlockSize() int { return blockSize }

func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)
	d.length += uint64(n)

	if d.ntail > 0 {
		c := copy(d.tail[d.ntail:], p)
		d.ntail += c
		p = p[c:]
		if d.ntail < blockSize {
			return n, nil
		}
		d.bmix(d.tail[:])
		d.ntail = 0
	}

	nblocks := len(p) / blockSize
	for i := 0; i < nblocks; i++ {
		d.bmix(p[i*blockSize : (i+1)*blockSize])
	}
	d.ntail = copy(d.tail[:], p[nblocks*blockSize:])
	return n, nil
}

func (d *Digest) bmix(block []byte) {
	h1, h2, h3, h4 := d.h1, d.h2, d.h3, d.h4

	k1 := binary.LittleEndian.Uint32(block[0:4])
	k2 := binary.LittleEndian.Uint32(block[4:8])
	k3 := binary.LittleEndian.Uint32(block[8:12])
	k4 := binary.LittleEndian.Uint32(block[12:16])

	k1 *= c1_32
	k1 = bits.RotateLeft32(k1, 15)
	k1 *= c2_32
	h1 ^= k1

	h1 = bits.RotateLeft32(h1, 19)
	h1 += h2
	h1 = h1*5 + 0x561ccd1b

	k2 *= c2_32
	k2 = bits.RotateLeft32(k2, 16)
	k2 *= c3_32
	h2 ^= k2

	h2 = bits.RotateLeft32(h2, 17)
	h2 += h3
	h2 = h2*5 + 0x0bcaa747

	k3 *= c3_32
	k3 = bits.RotateLeft32(k3, 17)
	k3 *= c4_32
	h3 ^= k3

	h3 = bits.RotateLeft32(h3, 15)
	h3 += h4
	h3 = h3*5 + 0x96cd1c35

	k4 *= c4_32
	k4 = bits.RotateLeft32(k4, 18)
	k4 *= c1_32
	h4 ^= k4

	h4 = bits.RotateLeft32(h4, 13)
	h4 += h1
	h4 = h4*5 + 0x32ac3b17

	d.h1, d.h2, d.h3, d.h4 = h1, h2, h3, h4
}

// Sum128 finalizes a copy of the state and returns the four 32-bit lanes,
// h1 being the least significant.
func (d *Digest) Sum128() (h1, h2, h3, h4 uint32) {
	h1, h2, h3, h4 = d.h1, d.h2, d.h3, d.h4
	tail := d.tail[:d.ntail]

	var k1, k2, k3, k4 uint32
	switch len(tail) {
	case 15:
		k4 ^= uint32(tail[14]) << 16
		fallthrough
	case 14:
		k4 ^= uint32(tail[13]) << 8
		fallthrough
	case 13:
		k4 ^= uint32(tail[12])
		k4 *= c4_32
		k4 = bits.RotateLeft32(k4, 18)
		k4 *= c1_32
		h4 ^= k4
		fallthrough
	case 12:
		k3 ^= uint32(tail[11]) << 24
		fallthrough
	case 11:
		k3 ^= uint32(tail[10]) << 16
		fallthrough
	case 10:
		k3 ^= uint32(tail[9]) << 8
		fallthrough
	case 9:
		k3 ^= uint32(tail[8])
		k3 *= c3_32
		k3 = bits.RotateLeft32(k3, 17)
		k3 *= c4_32
		h3 ^= k3
		fallthrough
	case 8:
		k2 ^= uint32(tail[7]) << 24
		fallthrough
	case 7:
		k2 ^= uint32(tail[6]) << 16
		fallthrough
	case 6:
		k2 ^= uint32(tail[5]) << 8
		fallthrough
	case 5:
		k2 ^= uint32(tail[4])
		k2 *= c2_32
		k2 = bits.RotateLeft32(k2, 16)
		k2 *= c3_32
		h2 ^= k2
		fallthrough
	case 4:
		k1 ^= uint32(tail[3]) << 24
		fallthrough
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= c1_32
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= c2_32
		h1 ^= k1
	}

	dlen := uint32(d.length)
	h1 ^= dlen
	h2 ^= dlen
	h3 ^= dlen
	h4 ^= dlen

	h1 += h2
	h1 += h3
	h1 += h4
	h2 += h1
	h3 += h1
	h4 += h1

	h1 = fmix32(h1)
	h2 = fmix32(h2)
	h3 = fmix32(h3)
	h4 = fmix32(h4)

	h1 += h2
	h1 += h3
	h1 += h4
	h2 += h1
	h3 += h1
	h4 += h1

	return h1, h2, h3, h4
}

// Sum64 returns the low 64 bits of the 128-bit result.
func (d *Digest) Sum64() uint64 {
	h1, h2, _, _ := d.Sum128()
	return uint64(h2)<<32 | uint64(h1)
}

// Sum appends the big-endian Sum64 to b.
func (d *Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, d.Sum64())
}

func fmix32(k uint32) uint32 {
	k ^= k >> 16
	k *= 0x85ebca6b
	k ^= k >> 13
	k *= 0xc2b2ae35
	k ^= k >> 16
	return k
}

// Sum64 hashes data with a fresh zero-seeded digest.
func Sum64(data []byte) uint64 {
	return Sum64WithSeed(data, 0)
}

func Sum64WithSeed(data []byte, seed uint32) uint64 {
	d := NewWithSeed(seed)
	d.Write(data)
	return d.Sum64()
}

// Sum128 returns the full 128-bit hash of data as two 64-bit halves,
// lo holding lanes h1 and h2.
func Sum128(data []byte) (lo, hi uint64) {
	d := New()
	d.Write(data)
	h1, h2, h3, h4 := d.Sum128()
	return uint64(h2)<<32 | uint64(h1), uint64(h4)<<32 | uint64(h3)
}
