package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/platform/logging"
	"github.com/DedS3t/richman-engine/platform/rooms"
	"github.com/gomodule/redigo/redis"
	"github.com/sirupsen/logrus"
)

var ErrNoSnapshot = errors.New("no snapshot cached")

const roomIndexKey = "rooms"

func StateKey(roomID string) string { return fmt.Sprintf("room:%s:state", roomID) }

// SnapshotMirror copies every room snapshot into redis so observers can poll
// state without touching the room lock. Nothing is ever read back into a
// game.
type SnapshotMirror struct {
	pool *redis.Pool
	ttl  time.Duration
	log  *logrus.Entry
}

func NewSnapshotMirror(pool *redis.Pool, ttl time.Duration) *SnapshotMirror {
	if ttl < time.Second {
		ttl = time.Second
	}
	return &SnapshotMirror{pool: pool, ttl: ttl, log: logging.Component("cache")}
}

func (m *SnapshotMirror) RoomChanged(info rooms.RoomInfo, state models.GameState) {
	data, err := json.Marshal(state)
	if err != nil {
		m.log.WithError(err).WithField("room", info.ID).Error("encode snapshot")
		return
	}
	conn := m.pool.Get()
	defer conn.Close()
	if err := SetEX(StateKey(info.ID), data, int(m.ttl/time.Second), conn); err != nil {
		m.log.WithError(err).WithField("room", info.ID).Warn("mirror snapshot")
		return
	}
	if err := SADD(roomIndexKey, info.ID, conn); err != nil {
		m.log.WithError(err).WithField("room", info.ID).Warn("index room")
	}
}

func (m *SnapshotMirror) RoomClosed(roomID string) {
	conn := m.pool.Get()
	defer conn.Close()
	if err := Del(StateKey(roomID), conn); err != nil {
		m.log.WithError(err).WithField("room", roomID).Warn("drop snapshot")
	}
	if err := SREM(roomIndexKey, roomID, conn); err != nil {
		m.log.WithError(err).WithField("room", roomID).Warn("unindex room")
	}
}

// Load returns the last mirrored snapshot as JSON.
func (m *SnapshotMirror) Load(roomID string) ([]byte, error) {
	conn := m.pool.Get()
	defer conn.Close()
	data, err := Get(StateKey(roomID), conn)
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", roomID, err)
	}
	return data, nil
}

// RoomIDs lists the rooms that currently have a mirrored snapshot.
func (m *SnapshotMirror) RoomIDs() ([]string, error) {
	conn := m.pool.Get()
	defer conn.Close()
	ids, err := SMEMBERS(roomIndexKey, conn)
	if err != nil {
		return nil, fmt.Errorf("list mirrored rooms: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Purge drops every mirrored room. Rooms live only in process memory, so
// snapshots left by an earlier process would otherwise be served as live.
func (m *SnapshotMirror) Purge() (int, error) {
	ids, err := m.RoomIDs()
	if err != nil {
		return 0, err
	}
	conn := m.pool.Get()
	defer conn.Close()
	for _, id := range ids {
		if err := Del(StateKey(id), conn); err != nil {
			return 0, fmt.Errorf("purge snapshot %s: %w", id, err)
		}
	}
	if err := Del(roomIndexKey, conn); err != nil {
		return 0, fmt.Errorf("purge room index: %w", err)
	}
	if len(ids) > 0 {
		m.log.WithField("rooms", len(ids)).Info("purged stale snapshots")
	}
	return len(ids), nil
}
