package gocuckoo

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var once sync.Once
var redisClient *redis.Client

type RedisConnOptions struct {
	DB                int
	Network           string
	Address           string
	Username          string
	Password          string
	ConnectionTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	PoolSize          int
	TLSConfig         *tls.Config
}

// GetRedisClient returns the process wide client, nil until MakeRedisClient ran.
func GetRedisClient() *redis.Client {
	return redisClient
}

// MakeRedisClient creates the process wide client. Only the first call has effect.
func MakeRedisClient(options RedisConnOptions) {
	once.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			DB:           options.DB,
			Network:      options.Network,
			Addr:         options.Address,
			Username:     options.Username,
			Password:     options.Password,
			DialTimeout:  options.ConnectionTimeout,
			ReadTimeout:  options.ReadTimeout,
			WriteTimeout: options.WriteTimeout,
			PoolSize:     options.PoolSize,
			TLSConfig:    options.TLSConfig,
		})
	})
}

func ParseRedisURI(uri string) (*RedisConnOptions, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("gocuckoo: could not parse redis uri: %v", err)
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("gocuckoo: unsupported uri scheme %q", u.Scheme)
	}
	options, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("gocuckoo: error while parsing redis uri: %v", err)
	}
	return makeConnOptions(options), nil
}

func makeConnOptions(options *redis.Options) *RedisConnOptions {
	return &RedisConnOptions{
		DB:                options.DB,
		Network:           options.Network,
		Address:           options.Addr,
		Username:          options.Username,
		Password:          options.Password,
		ConnectionTimeout: options.DialTimeout,
		ReadTimeout:       options.ReadTimeout,
		WriteTimeout:      options.WriteTimeout,
		PoolSize:          options.PoolSize,
		TLSConfig:         options.TLSConfig,
	}
}
