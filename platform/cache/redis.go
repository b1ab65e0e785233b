package cache

import (
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
)

// CreateRedisPool accepts either host:port or a redis:// URL.
func CreateRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		Dial: func() (redis.Conn, error) {
			if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
				return redis.DialURL(addr)
			}
			return redis.Dial("tcp", addr)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}
