package buckets

import (
	"context"
	"fmt"

	"github.com/kwertop/gocuckoo"
	"github.com/kwertop/gocuckoo/bitset"
	"github.com/redis/go-redis/v9"
)

// MaxRedisBuckets is the largest bucket array that fits in one Redis string (512 MiB).
const MaxRedisBuckets = (512 << 20) / BucketSize

var addFingerPrint = redis.NewScript(`
	local key = KEYS[1]
	local occupancy = KEYS[2]
	local offset = tonumber(ARGV[1])
	local fp = tonumber(ARGV[2])
	local bucket = redis.call("GETRANGE", key, offset, offset + 3)
	for i = 1, 4 do
		local b = string.byte(bucket, i)
		if b == nil or b == 0 then
			redis.call("SETRANGE", key, offset + i - 1, string.char(fp))
			redis.call("SETBIT", occupancy, offset + i - 1, 1)
			return i - 1
		end
	end
	return -1
`)

var swapFingerPrint = redis.NewScript(`
	local key = KEYS[1]
	local occupancy = KEYS[2]
	local offset = tonumber(ARGV[1])
	local fp = tonumber(ARGV[2])
	local old = string.byte(redis.call("GETRANGE", key, offset, offset), 1)
	redis.call("SETRANGE", key, offset, string.char(fp))
	if fp == 0 then
		redis.call("SETBIT", occupancy, offset, 0)
	else
		redis.call("SETBIT", occupancy, offset, 1)
	end
	if old == nil then
		return 0
	end
	return old
`)

var removeFingerPrint = redis.NewScript(`
	local key = KEYS[1]
	local occupancy = KEYS[2]
	local offset = tonumber(ARGV[1])
	local fp = tonumber(ARGV[2])
	local bucket = redis.call("GETRANGE", key, offset, offset + 3)
	for i = 1, #bucket do
		if string.byte(bucket, i) == fp then
			redis.call("SETRANGE", key, offset + i - 1, string.char(0))
			redis.call("SETBIT", occupancy, offset + i - 1, 0)
			return 1
		end
	end
	return 0
`)

// BucketRedis keeps the buckets in one Redis string, BucketSize bytes per
// bucket, plus an occupancy bitmap with one bit per slot.
type BucketRedis struct {
	key          string
	occupancyKey string
	*AbstractStore
}

func NewBucketRedis(key string, size uint64) (*BucketRedis, error) {
	if size == 0 {
		return nil, fmt.Errorf("gocuckoo: bucket store needs at least one bucket")
	}
	if size > MaxRedisBuckets {
		return nil, fmt.Errorf("gocuckoo: %d buckets exceed the redis limit of %d: %w",
			size, MaxRedisBuckets, gocuckoo.ErrCapacityExceedsItemLimit)
	}
	bucketsKey := "cuckoo_" + key + "_buckets"
	ctx := context.Background()
	err := gocuckoo.GetRedisClient().Del(ctx, bucketsKey).Err()
	if err != nil {
		return nil, fmt.Errorf("gocuckoo: error while init buckets in redis, error: %v", err)
	}
	err = gocuckoo.GetRedisClient().SetRange(ctx, bucketsKey, int64(size*BucketSize-1), "\x00").Err()
	if err != nil {
		return nil, fmt.Errorf("gocuckoo: error while init buckets in redis, error: %v", err)
	}
	occupancy, err := bitset.NewBitSetRedis(uint(size*BucketSize), "cuckoo_"+key+"_occupancy")
	if err != nil {
		return nil, err
	}
	return &BucketRedis{bucketsKey, occupancy.Key(), &AbstractStore{size, occupancy}}, nil
}

func (store *BucketRedis) Key() string {
	return store.key
}

func (store *BucketRedis) At(index uint32) (Bucket, error) {
	var bucket Bucket
	if err := store.check(index); err != nil {
		return bucket, err
	}
	offset := int64(store.slotIndex(index, 0))
	val, err := gocuckoo.GetRedisClient().GetRange(context.Background(), store.key, offset, offset+BucketSize-1).Result()
	if err != nil {
		return bucket, fmt.Errorf("gocuckoo: error while fetching bucket %d: %v", index, err)
	}
	copy(bucket[:], val)
	return bucket, nil
}

func (store *BucketRedis) Add(index uint32, fingerPrint byte) (bool, error) {
	if err := store.check(index); err != nil {
		return false, err
	}
	if fingerPrint == EmptySlot {
		return false, nil
	}
	slot, err := store.run(addFingerPrint, index, 0, fingerPrint)
	if err != nil {
		return false, fmt.Errorf("gocuckoo: error while adding fingerprint %d to bucket %d: %v", fingerPrint, index, err)
	}
	return slot >= 0, nil
}

func (store *BucketRedis) Swap(index uint32, slot uint, fingerPrint byte) (byte, error) {
	if err := store.check(index); err != nil {
		return EmptySlot, err
	}
	if slot >= BucketSize {
		return EmptySlot, fmt.Errorf("gocuckoo: slot %d out of range", slot)
	}
	prev, err := store.run(swapFingerPrint, index, slot, fingerPrint)
	if err != nil {
		return EmptySlot, fmt.Errorf("gocuckoo: error while swapping slot %d of bucket %d: %v", slot, index, err)
	}
	return byte(prev), nil
}

func (store *BucketRedis) Remove(index uint32, fingerPrint byte) (bool, error) {
	if err := store.check(index); err != nil {
		return false, err
	}
	if fingerPrint == EmptySlot {
		return false, nil
	}
	removed, err := store.run(removeFingerPrint, index, 0, fingerPrint)
	if err != nil {
		return false, fmt.Errorf("gocuckoo: error while removing fingerprint %d from bucket %d: %v", fingerPrint, index, err)
	}
	return removed == 1, nil
}

func (store *BucketRedis) run(script *redis.Script, index uint32, slot uint, fingerPrint byte) (int64, error) {
	return script.Run(
		context.Background(),
		gocuckoo.GetRedisClient(),
		[]string{store.key, store.occupancyKey},
		store.slotIndex(index, slot),
		int(fingerPrint),
	).Int64()
}
