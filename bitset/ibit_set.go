package bitset

// IBitSet tracks which fingerprint slots of a bucket store are occupied.
type IBitSet interface {
	Size() uint
	Has(index uint) (bool, error)
	Insert(index uint) (bool, error)
	Remove(index uint) (bool, error)
	BitCount() (uint, error)
}

var (
	_ IBitSet = (*BitSetMem)(nil)
	_ IBitSet = (*BitSetRedis)(nil)
)
