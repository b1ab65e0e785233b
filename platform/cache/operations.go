package cache

import (
	"github.com/gomodule/redigo/redis"
)

func Get(key string, conn redis.Conn) ([]byte, error) {
	return redis.Bytes(conn.Do("GET", key))
}

func Del(key string, conn redis.Conn) error {
	_, err := conn.Do("DEL", key)
	return err
}

// SetEX stores value under key with a ttl in seconds.
func SetEX(key string, value interface{}, seconds int, conn redis.Conn) error {
	reply, err := redis.String(conn.Do("SET", key, value, "EX", seconds))
	if err != nil {
		return err
	}
	if reply != "OK" {
		return redis.Error("unexpected SET reply " + reply)
	}
	return nil
}

func SADD(key string, member string, conn redis.Conn) error {
	_, err := conn.Do("SADD", key, member)
	return err
}

func SREM(key string, member string, conn redis.Conn) error {
	_, err := conn.Do("SREM", key, member)
	return err
}

func SMEMBERS(key string, conn redis.Conn) ([]string, error) {
	return redis.Strings(conn.Do("SMEMBERS", key))
}
