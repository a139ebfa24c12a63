package filters

import (
	"github.com/kwertop/gocuckoo"
	"github.com/kwertop/gocuckoo/hash"
	"go.uber.org/zap"
)

type config struct {
	hasher  hash.Hasher
	logger  *zap.Logger
	retries uint64
	key     string
}

// Option configures a cuckoo filter at construction.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		hasher:  hash.Murmur3,
		logger:  zap.NewNop(),
		retries: gocuckoo.MaxEvictions,
	}
}

// WithHasher replaces the Murmur3 digest. The hasher must be stateless.
func WithHasher(hasher hash.Hasher) Option {
	return func(c *config) {
		if hasher != nil {
			c.hasher = hasher
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetries overrides the eviction budget of MaxEvictions kicks.
func WithRetries(retries uint64) Option {
	return func(c *config) {
		c.retries = retries
	}
}

// WithKey names the Redis keys of a Redis backed filter. A random key is
// generated when unset.
func WithKey(key string) Option {
	return func(c *config) {
		c.key = key
	}
}
