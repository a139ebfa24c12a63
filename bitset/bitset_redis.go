package bitset

import (
	"context"
	"fmt"

	"github.com/kwertop/gocuckoo"
	"github.com/redis/go-redis/v9"
)

// BitSetRedis keeps the bits in a Redis string addressed by SETBIT/GETBIT.
type BitSetRedis struct {
	size uint
	key  string
}

func NewBitSetRedis(size uint, key string) (*BitSetRedis, error) {
	bitSet := &BitSetRedis{size, key}
	ctx := context.Background()
	err := gocuckoo.GetRedisClient().Del(ctx, key).Err()
	if err != nil {
		return nil, fmt.Errorf("gocuckoo: error while creating bitset %s: %v", key, err)
	}
	if size > 0 {
		// touching the last bit allocates the whole zeroed string up front
		err = gocuckoo.GetRedisClient().SetBit(ctx, key, int64(size-1), 0).Err()
		if err != nil {
			return nil, fmt.Errorf("gocuckoo: error while creating bitset %s: %v", key, err)
		}
	}
	return bitSet, nil
}

func (bitSet *BitSetRedis) Size() uint {
	return bitSet.size
}

func (bitSet *BitSetRedis) Key() string {
	return bitSet.key
}

func (bitSet *BitSetRedis) Has(index uint) (bool, error) {
	val, err := gocuckoo.GetRedisClient().GetBit(context.Background(), bitSet.key, int64(index)).Result()
	if err != nil {
		return false, fmt.Errorf("gocuckoo: error while reading bit %d of %s: %v", index, bitSet.key, err)
	}
	return val != 0, nil
}

func (bitSet *BitSetRedis) Insert(index uint) (bool, error) {
	return bitSet.set(index, 1)
}

func (bitSet *BitSetRedis) Remove(index uint) (bool, error) {
	return bitSet.set(index, 0)
}

func (bitSet *BitSetRedis) set(index uint, value int) (bool, error) {
	if index >= bitSet.size {
		return false, fmt.Errorf("gocuckoo: bit index %d out of range for bitset of size %d", index, bitSet.size)
	}
	err := gocuckoo.GetRedisClient().SetBit(context.Background(), bitSet.key, int64(index), value).Err()
	if err != nil {
		return false, fmt.Errorf("gocuckoo: error while writing bit %d of %s: %v", index, bitSet.key, err)
	}
	return true, nil
}

func (bitSet *BitSetRedis) BitCount() (uint, error) {
	bitRange := &redis.BitCount{Start: 0, End: -1}
	val, err := gocuckoo.GetRedisClient().BitCount(context.Background(), bitSet.key, bitRange).Result()
	if err != nil {
		return 0, fmt.Errorf("gocuckoo: error while counting bits of %s: %v", bitSet.key, err)
	}
	return uint(val), nil
}
