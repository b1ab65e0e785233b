package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/platform/auth"
	"github.com/DedS3t/richman-engine/platform/game"
	"github.com/DedS3t/richman-engine/platform/logging"
	"github.com/DedS3t/richman-engine/platform/rooms"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotJoined     = errors.New("join a game first")
	ErrJoinRejected  = errors.New("cannot join this game")
	ErrUnknownAction = errors.New("unknown action")
	ErrBadPayload    = errors.New("malformed payload")
)

type Action string

const (
	ActionRoll     Action = "roll-dice"
	ActionBuy      Action = "request-buy"
	ActionMortgage Action = "mortgage"
	ActionRedeem   Action = "redeem"
	ActionUpgrade  Action = "upgrade"
	ActionEndTurn  Action = "end-turn"
)

var actions = []Action{ActionRoll, ActionBuy, ActionMortgage, ActionRedeem, ActionUpgrade, ActionEndTurn}

func (a Action) known() bool {
	for _, k := range actions {
		if a == k {
			return true
		}
	}
	return false
}

func (a Action) needsTile() bool {
	return a == ActionMortgage || a == ActionRedeem || a == ActionUpgrade
}

// session is what one connection has proven about itself.
type session struct {
	mu     sync.Mutex
	UserID string
	Name   string
	RoomID string
}

// Handler turns client requests into engine calls. It knows nothing about
// the transport so it can be driven directly.
type Handler struct {
	rooms  *rooms.Registry
	secret []byte
	log    *logrus.Entry
}

func NewHandler(reg *rooms.Registry, secret []byte) *Handler {
	return &Handler{rooms: reg, secret: secret, log: logging.Component("sockets")}
}

// Join verifies the caller's token and seats them in the room. A session
// seated elsewhere only gives up that seat once the new one is taken.
func (h *Handler) Join(sess *session, dto models.JoinDto) (models.Outcome, models.GameState, error) {
	id, err := auth.Parse(h.secret, dto.Token)
	if err != nil {
		return models.Outcome{}, models.GameState{}, err
	}
	name := dto.Name
	if name == "" {
		name = id.Name
	}
	if name == "" {
		name = id.UserID
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.RoomID == dto.Game_id && sess.UserID == id.UserID {
		state, err := h.rooms.Snapshot(dto.Game_id)
		return models.Outcome{Success: true, Message: name + " is already seated"}, state, err
	}

	out, state, err := h.rooms.Do(dto.Game_id, func(g *game.Game) models.Outcome {
		if !g.AddPlayer(id.UserID, name) {
			return game.Failure(ErrJoinRejected)
		}
		return models.Outcome{Success: true, Message: name + " joined"}
	})
	if err != nil || !out.Success {
		return out, state, err
	}
	h.leaveLocked(sess)
	sess.UserID, sess.Name, sess.RoomID = id.UserID, name, dto.Game_id
	h.log.WithFields(logrus.Fields{"room": dto.Game_id, "player": id.UserID}).Info("player joined")
	return out, state, nil
}

// Act runs one game action for the seated caller. raw is the JSON payload
// the client sent with the event.
func (h *Handler) Act(sess *session, action Action, raw string) (models.Outcome, error) {
	if !action.known() {
		return models.Outcome{}, ErrUnknownAction
	}
	var tile models.TileActionDto
	if action.needsTile() {
		if err := json.Unmarshal([]byte(raw), &tile); err != nil {
			return models.Outcome{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.RoomID == "" {
		return models.Outcome{}, ErrNotJoined
	}
	uid := sess.UserID
	out, _, err := h.rooms.Do(sess.RoomID, func(g *game.Game) models.Outcome {
		switch action {
		case ActionRoll:
			return g.RollDiceAndMove(uid)
		case ActionBuy:
			return g.BuyProperty(uid)
		case ActionMortgage:
			return g.MortgageProperty(uid, tile.Tile_id)
		case ActionRedeem:
			return g.RedeemProperty(uid, tile.Tile_id)
		case ActionUpgrade:
			return g.UpgradeProperty(uid, tile.Tile_id)
		case ActionEndTurn:
			// The engine ends whoever's turn it is; only that player may ask.
			if g.CurrentTurnPlayerID() != uid {
				return game.Failure(game.ErrNotYourTurn)
			}
			return g.EndTurn()
		}
		return game.Failure(ErrUnknownAction)
	})
	if errors.Is(err, rooms.ErrRoomNotFound) {
		sess.RoomID = ""
	}
	return out, err
}

// Leave removes the caller from their room. It returns the room left, if any.
func (h *Handler) Leave(sess *session) string {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return h.leaveLocked(sess)
}

func (h *Handler) leaveLocked(sess *session) string {
	roomID := sess.RoomID
	if roomID == "" {
		return ""
	}
	uid := sess.UserID
	_, _, err := h.rooms.Do(roomID, func(g *game.Game) models.Outcome {
		g.RemovePlayer(uid)
		return models.Outcome{Success: true}
	})
	if err != nil && !errors.Is(err, rooms.ErrRoomNotFound) {
		h.log.WithError(err).WithField("room", roomID).Warn("leave failed")
	}
	sess.RoomID = ""
	h.log.WithFields(logrus.Fields{"room": roomID, "player": uid}).Info("player left")
	return roomID
}
