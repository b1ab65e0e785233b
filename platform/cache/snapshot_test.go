package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/platform/rooms"
	"github.com/gomodule/redigo/redis"
)

// memStore backs memConn so a pool can be exercised without a server.
type memStore struct {
	mu   sync.Mutex
	kv   map[string][]byte
	ttl  map[string]int
	sets map[string]map[string]bool
}

func newMemStore() *memStore {
	return &memStore{kv: map[string][]byte{}, ttl: map[string]int{}, sets: map[string]map[string]bool{}}
}

type memConn struct{ s *memStore }

func (c memConn) Close() error                      { return nil }
func (c memConn) Err() error                        { return nil }
func (c memConn) Send(string, ...interface{}) error { return nil }
func (c memConn) Flush() error                      { return nil }
func (c memConn) Receive() (interface{}, error)     { return nil, nil }
func (c memConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	str := func(i int) string { return fmt.Sprint(args[i]) }
	switch strings.ToUpper(cmd) {
	case "":
		return nil, nil
	case "SET":
		switch v := args[1].(type) {
		case []byte:
			s.kv[str(0)] = v
		default:
			s.kv[str(0)] = []byte(fmt.Sprint(v))
		}
		if len(args) == 4 {
			s.ttl[str(0)] = args[3].(int)
		}
		return "OK", nil
	case "GET":
		v, ok := s.kv[str(0)]
		if !ok {
			return nil, nil
		}
		return v, nil
	case "DEL":
		delete(s.kv, str(0))
		delete(s.ttl, str(0))
		delete(s.sets, str(0))
		return int64(1), nil
	case "SADD":
		if s.sets[str(0)] == nil {
			s.sets[str(0)] = map[string]bool{}
		}
		s.sets[str(0)][str(1)] = true
		return int64(1), nil
	case "SREM":
		delete(s.sets[str(0)], str(1))
		return int64(1), nil
	case "SMEMBERS":
		var out []interface{}
		for m := range s.sets[str(0)] {
			out = append(out, []byte(m))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported command %s", cmd)
}

func memPool(s *memStore) *redis.Pool {
	return &redis.Pool{Dial: func() (redis.Conn, error) { return memConn{s}, nil }}
}

func TestStateKey(t *testing.T) {
	if got := StateKey("AbCd1234"); got != "room:AbCd1234:state" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestMirrorWritesAndDrops(t *testing.T) {
	store := newMemStore()
	m := NewSnapshotMirror(memPool(store), 90*time.Second)

	state := models.GameState{
		RoomID:  "room1",
		Phase:   models.PhasePlaying,
		Players: []models.Player{{ID: "a", Name: "Ann", Money: 15000}},
	}
	m.RoomChanged(rooms.RoomInfo{ID: "room1", Name: "One"}, state)

	if ttl := store.ttl[StateKey("room1")]; ttl != 90 {
		t.Fatalf("expected ttl 90, got %d", ttl)
	}
	data, err := m.Load("room1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var decoded models.GameState
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.RoomID != "room1" || len(decoded.Players) != 1 || decoded.Players[0].Money != 15000 {
		t.Fatalf("unexpected mirrored state %+v", decoded)
	}
	ids, err := m.RoomIDs()
	if err != nil || len(ids) != 1 || ids[0] != "room1" {
		t.Fatalf("expected [room1], got %v (%v)", ids, err)
	}

	m.RoomClosed("room1")
	if _, err := m.Load("room1"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot after close, got %v", err)
	}
	if ids, _ := m.RoomIDs(); len(ids) != 0 {
		t.Fatalf("expected empty index, got %v", ids)
	}
}

func TestMirrorClampsTTL(t *testing.T) {
	store := newMemStore()
	m := NewSnapshotMirror(memPool(store), time.Millisecond)
	m.RoomChanged(rooms.RoomInfo{ID: "r"}, models.GameState{RoomID: "r"})
	if ttl := store.ttl[StateKey("r")]; ttl != 1 {
		t.Fatalf("expected ttl clamped to 1s, got %d", ttl)
	}
}

func TestPurgeDropsLeftoverRooms(t *testing.T) {
	store := newMemStore()
	old := NewSnapshotMirror(memPool(store), time.Hour)
	old.RoomChanged(rooms.RoomInfo{ID: "r1"}, models.GameState{RoomID: "r1"})
	old.RoomChanged(rooms.RoomInfo{ID: "r2"}, models.GameState{RoomID: "r2"})

	m := NewSnapshotMirror(memPool(store), time.Hour)
	n, err := m.Purge()
	if err != nil || n != 2 {
		t.Fatalf("expected 2 purged rooms, got %d (%v)", n, err)
	}
	for _, id := range []string{"r1", "r2"} {
		if _, err := m.Load(id); !errors.Is(err, ErrNoSnapshot) {
			t.Fatalf("%s survived the purge: %v", id, err)
		}
	}
	if ids, _ := m.RoomIDs(); len(ids) != 0 {
		t.Fatalf("index not cleared: %v", ids)
	}
	if n, err := m.Purge(); err != nil || n != 0 {
		t.Fatalf("second purge should find nothing, got %d (%v)", n, err)
	}
}
