package rooms

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/pkg"
	"github.com/DedS3t/richman-engine/platform/config"
	"github.com/DedS3t/richman-engine/platform/game"
	"github.com/DedS3t/richman-engine/platform/logging"
	"github.com/sirupsen/logrus"
)

var ErrRoomNotFound = errors.New("room not found")

const codeLength = 8

// Observer is told about every state change. Calls for one room arrive in
// the order the changes happened.
type Observer interface {
	RoomChanged(room RoomInfo, state models.GameState)
	RoomClosed(roomID string)
}

type RoomInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Room struct {
	RoomInfo

	mu   sync.Mutex
	game *game.Game
}

// Registry owns every live room. Calls for one room are serialized by that
// room's mutex; different rooms never block each other.
type Registry struct {
	rules config.Rules
	log   *logrus.Entry

	mu        sync.RWMutex
	rooms     map[string]*Room
	observers []Observer

	// newRand is swapped in tests for a deterministic source.
	newRand func() game.Rand
}

func NewRegistry(rules config.Rules, observers ...Observer) *Registry {
	return &Registry{
		rules:     rules,
		log:       logging.Component("rooms"),
		rooms:     map[string]*Room{},
		observers: observers,
		newRand:   func() game.Rand { return game.NewRand(rules.Seed) },
	}
}

func (r *Registry) AddObserver(o Observer) {
	r.mu.Lock()
	r.observers = append(r.observers, o)
	r.mu.Unlock()
}

// Create opens a room with a fresh code and an empty game.
func (r *Registry) Create(name string) models.GameState {
	r.mu.Lock()
	id := pkg.RandString(codeLength)
	for r.rooms[id] != nil {
		id = pkg.RandString(codeLength)
	}
	if name == "" {
		name = "Room " + id[:4]
	}
	room := &Room{
		RoomInfo: RoomInfo{ID: id, Name: name, CreatedAt: time.Now()},
		game: game.CreateRoom(id, game.Options{
			Rules:  r.rules,
			Rand:   r.newRand(),
			Logger: logging.Room(id),
		}),
	}
	r.rooms[id] = room
	r.mu.Unlock()

	r.log.WithField("room", id).Info("room created")
	room.mu.Lock()
	defer room.mu.Unlock()
	state := room.game.GetState()
	r.notify(room.RoomInfo, state)
	return state
}

func (r *Registry) get(id string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

func (r *Registry) Exists(id string) bool {
	_, ok := r.get(id)
	return ok
}

func (r *Registry) Info(id string) (RoomInfo, error) {
	room, ok := r.get(id)
	if !ok {
		return RoomInfo{}, ErrRoomNotFound
	}
	return room.RoomInfo, nil
}

// Do runs fn against the room's game while holding the room lock, then
// publishes the resulting state to observers before releasing it.
func (r *Registry) Do(id string, fn func(g *game.Game) models.Outcome) (models.Outcome, models.GameState, error) {
	room, ok := r.get(id)
	if !ok {
		return models.Outcome{}, models.GameState{}, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	out := fn(room.game)
	state := room.game.GetState()
	r.notify(room.RoomInfo, state)
	return out, state, nil
}

func (r *Registry) Snapshot(id string) (models.GameState, error) {
	room, ok := r.get(id)
	if !ok {
		return models.GameState{}, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return room.game.GetState(), nil
}

// List returns every room ordered by id.
func (r *Registry) List() []models.RoomSummary {
	r.mu.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.RUnlock()

	out := make([]models.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		room.mu.Lock()
		s := room.game.GetState()
		room.mu.Unlock()
		out = append(out, models.RoomSummary{
			ID:          room.ID,
			Name:        room.Name,
			PlayerCount: len(s.Players),
			Phase:       s.Phase,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	_, ok := r.rooms[id]
	delete(r.rooms, id)
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()
	if !ok {
		return
	}
	r.log.WithField("room", id).Info("room removed")
	for _, o := range observers {
		o.RoomClosed(id)
	}
}

func (r *Registry) notify(info RoomInfo, state models.GameState) {
	r.mu.RLock()
	observers := append([]Observer(nil), r.observers...)
	r.mu.RUnlock()
	for _, o := range observers {
		o.RoomChanged(info, state)
	}
}
