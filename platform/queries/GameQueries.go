package queries

import (
	"sort"
	"sync"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/platform/logging"
	"github.com/DedS3t/richman-engine/platform/rooms"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/sirupsen/logrus"
)

// CreateSchema creates the directory tables if they are missing.
func CreateSchema(db *pg.DB) error {
	for _, model := range []interface{}{
		(*models.Room)(nil),
		(*models.RoomPlayer)(nil),
		(*models.User)(nil),
	} {
		err := db.Model(model).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return err
		}
	}
	return nil
}

// Directory records which rooms exist and who sits in them. It is written
// from room notifications and never read back into a game, so a failed
// write is logged and dropped.
type Directory struct {
	db  *pg.DB
	log *logrus.Entry

	mu    sync.Mutex
	seats map[string]map[string]string // room -> player id -> name
}

func NewDirectory(db *pg.DB) *Directory {
	return &Directory{
		db:    db,
		log:   logging.Component("directory"),
		seats: map[string]map[string]string{},
	}
}

func (d *Directory) RoomChanged(info rooms.RoomInfo, state models.GameState) {
	room := &models.Room{
		Id:        info.ID,
		Name:      info.Name,
		Status:    string(state.Phase),
		CreatedAt: info.CreatedAt,
	}
	_, err := d.db.Model(room).
		OnConflict("(id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Insert()
	if err != nil {
		d.log.WithError(err).WithField("room", info.ID).Warn("upsert room")
	}

	d.mu.Lock()
	prev := d.seats[info.ID]
	joined, left := diffPlayers(prev, state.Players)
	next := make(map[string]string, len(state.Players))
	for _, p := range state.Players {
		next[p.ID] = p.Name
	}
	d.seats[info.ID] = next
	d.mu.Unlock()

	for _, p := range joined {
		if err := CreatePlayer(models.RoomPlayer{User_id: p.ID, Room_id: info.ID, Username: p.Name, Active: true}, d.db); err != nil {
			d.log.WithError(err).WithField("room", info.ID).Warn("insert room player")
		}
	}
	for _, id := range left {
		if err := DeletePlayer(id, info.ID, d.db); err != nil {
			d.log.WithError(err).WithField("room", info.ID).Warn("delete room player")
		}
	}
}

func (d *Directory) RoomClosed(roomID string) {
	d.mu.Lock()
	delete(d.seats, roomID)
	d.mu.Unlock()
	if err := cleanUp(roomID, d.db); err != nil {
		d.log.WithError(err).WithField("room", roomID).Warn("remove room")
	}
}

// diffPlayers returns the players that are new since prev and the ids that
// are gone, both in a stable order.
func diffPlayers(prev map[string]string, players []models.Player) ([]models.Player, []string) {
	var joined []models.Player
	current := make(map[string]bool, len(players))
	for _, p := range players {
		current[p.ID] = true
		if _, ok := prev[p.ID]; !ok {
			joined = append(joined, p)
		}
	}
	var left []string
	for id := range prev {
		if !current[id] {
			left = append(left, id)
		}
	}
	sort.Strings(left)
	return joined, left
}

func CreatePlayer(player models.RoomPlayer, db *pg.DB) error {
	_, err := db.Model(&player).OnConflict("DO NOTHING").Insert()
	return err
}

func DeletePlayer(userID string, roomID string, db *pg.DB) error {
	player := new(models.RoomPlayer)
	_, err := db.Model(player).Where("user_id = ? AND room_id = ?", userID, roomID).Delete()
	return err
}

func cleanUp(roomID string, db *pg.DB) error {
	player := new(models.RoomPlayer)
	if _, err := db.Model(player).Where("room_id = ?", roomID).Delete(); err != nil {
		return err
	}
	room := new(models.Room)
	_, err := db.Model(room).Where("id = ?", roomID).Delete()
	return err
}
