package filters

import (
	"github.com/kwertop/gocuckoo"
	"github.com/kwertop/gocuckoo/buckets"
)

// CuckooFilterRedis runs the same algorithm as CuckooFilter with the bucket
// array kept in Redis. The overflow slot stays in process, so a single
// CuckooFilterRedis value must own its keys.
type CuckooFilterRedis struct {
	key string
	*AbstractCuckooFilter
}

func NewCuckooFilterRedis(maxItems uint64, opts ...Option) (*CuckooFilterRedis, error) {
	var key string
	baseFilter, err := makeAbstractCuckooFilter(maxItems, func(length uint64, c *config) (buckets.Store, error) {
		key = c.key
		if key == "" {
			key = gocuckoo.GenerateRandomString(16)
		}
		return buckets.NewBucketRedis(key, length)
	}, opts)
	if err != nil {
		return nil, err
	}
	return &CuckooFilterRedis{key, baseFilter}, nil
}

func (filter *CuckooFilterRedis) Key() string {
	return filter.key
}

func (filter *CuckooFilterRedis) Insert(data []byte) error {
	return filter.insert(data)
}

func (filter *CuckooFilterRedis) InsertUnique(data []byte) error {
	return filter.insertUnique(data)
}

func (filter *CuckooFilterRedis) Lookup(data []byte) (bool, error) {
	return filter.lookup(data)
}

func (filter *CuckooFilterRedis) Delete(data []byte) error {
	return filter.remove(data)
}

func (filter *CuckooFilterRedis) InsertString(s string) error {
	return filter.Insert([]byte(s))
}

func (filter *CuckooFilterRedis) LookupString(s string) (bool, error) {
	return filter.Lookup([]byte(s))
}

func (filter *CuckooFilterRedis) DeleteString(s string) error {
	return filter.Delete([]byte(s))
}

func (filter *CuckooFilterRedis) Count() (uint64, error) {
	return filter.count()
}

func (filter *CuckooFilterRedis) LoadFactor() (float64, error) {
	return filter.loadFactor()
}
