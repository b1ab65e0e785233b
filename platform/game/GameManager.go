package game

import (
	"fmt"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/platform/board"
	"github.com/DedS3t/richman-engine/platform/config"
	"github.com/DedS3t/richman-engine/platform/logging"
	"github.com/sirupsen/logrus"
)

// MaxLevel is the highest improvement level a property can reach.
const MaxLevel = 2

// maxLandingChain bounds how many landings one move may chain through cards.
const maxLandingChain = 16

type Options struct {
	Board  *board.Board
	Rules  config.Rules
	Rand   Rand
	Logger *logrus.Entry
}

// Game is the state machine of one room. It is not safe for concurrent use;
// callers serialize every call for a given room.
type Game struct {
	board *board.Board
	rules config.Rules
	rng   Rand
	log   *logrus.Entry

	roomID    string
	players   []*models.Player
	current   string
	phase     models.Phase
	events    []string
	rolled    bool
	canBuy    bool
	completed bool
	gate      actionGate
	winner    string
	tiles     []models.TileState
}

// CreateRoom returns a game in the waiting phase. Zero options fall back to
// the standard board, default rules and a time seeded source.
func CreateRoom(roomID string, opts Options) *Game {
	if opts.Board == nil {
		opts.Board = board.Standard()
	}
	if opts.Rules.DiceSides <= 0 {
		opts.Rules = config.DefaultRules()
	}
	if opts.Rand == nil {
		opts.Rand = NewRand(opts.Rules.Seed)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Room(roomID)
	}
	g := &Game{
		board:  opts.Board,
		rules:  opts.Rules,
		rng:    opts.Rand,
		log:    opts.Logger,
		roomID: roomID,
		phase:  models.PhaseWaiting,
		tiles:  make([]models.TileState, opts.Board.Len()),
	}
	for i := range g.tiles {
		g.tiles[i].ID = i
	}
	return g
}

func (g *Game) RoomID() string { return g.roomID }

func (g *Game) Board() *board.Board { return g.board }

func (g *Game) CurrentTurnPlayerID() string { return g.current }

// AddPlayer seats a new player at the end of the turn order. The first
// player starts the game and takes the first turn.
func (g *Game) AddPlayer(id, name string) bool {
	if id == "" {
		return false
	}
	if g.phase == models.PhaseFinished {
		g.logf("%s cannot join, the game is over", name)
		return false
	}
	if g.find(id) != nil {
		g.logf("%s is already in the game", name)
		return false
	}
	g.players = append(g.players, &models.Player{ID: id, Name: name, Money: g.rules.StartMoney})
	g.logf("%s joined the game", name)
	if len(g.players) == 1 {
		g.current = id
		g.phase = models.PhasePlaying
		g.winner = ""
		g.resetTurnFlags()
		g.logf("It is %s's turn", name)
	}
	g.log.WithField("player", id).Debug("player added")
	return true
}

// RemovePlayer drops a player and their holdings. Unknown ids are ignored.
func (g *Game) RemovePlayer(id string) {
	idx := g.indexOf(id)
	if idx < 0 {
		return
	}
	name := g.players[idx].Name
	g.removeAt(idx)
	g.logf("%s left the game", name)
}

func (g *Game) removeAt(idx int) {
	p := g.players[idx]
	g.players = append(g.players[:idx], g.players[idx+1:]...)
	for i := range g.tiles {
		if g.tiles[i].OwnerID == p.ID {
			g.tiles[i] = models.TileState{ID: i}
		}
	}
	g.gate.release(p.ID)

	if len(g.players) == 0 {
		g.current = ""
		g.phase = models.PhaseWaiting
		g.winner = ""
		g.resetTurnFlags()
		return
	}
	if g.current == p.ID {
		// The successor slid into idx when p was cut out.
		next := g.players[idx%len(g.players)]
		g.current = next.ID
		g.resetTurnFlags()
		g.logf("It is %s's turn", next.Name)
	}
	g.log.WithField("player", p.ID).Debug("player removed")
}

// GetState returns a deep copy of the room state.
func (g *Game) GetState() models.GameState {
	s := models.GameState{
		RoomID:              g.roomID,
		Players:             make([]models.Player, len(g.players)),
		CurrentTurnPlayerID: g.current,
		Phase:               g.phase,
		Log:                 append([]string(nil), g.events...),
		HasRolledDice:       g.rolled,
		CanBuyProperty:      g.canBuy,
		TurnCompleted:       g.completed,
		PlayerInDebtID:      g.gate.holderID(),
		WinnerID:            g.winner,
		Tiles:               append([]models.TileState(nil), g.tiles...),
	}
	for i, p := range g.players {
		s.Players[i] = *p
	}
	return s
}

func (g *Game) find(id string) *models.Player {
	if i := g.indexOf(id); i >= 0 {
		return g.players[i]
	}
	return nil
}

func (g *Game) indexOf(id string) int {
	for i, p := range g.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (g *Game) present(p *models.Player) bool { return g.indexOf(p.ID) >= 0 }

func (g *Game) resetTurnFlags() {
	g.rolled = false
	g.canBuy = false
	g.completed = false
}

func (g *Game) logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	g.events = append(g.events, msg)
	g.log.Debug(msg)
}

// CheckInvariants reports the first broken structural rule. Tests run it
// after every operation; a non-nil result is an engine defect.
func (g *Game) CheckInvariants() error {
	seen := map[string]bool{}
	for _, p := range g.players {
		if seen[p.ID] {
			return fmt.Errorf("duplicate player %s", p.ID)
		}
		seen[p.ID] = true
		if p.Position < 0 || p.Position >= g.board.Len() {
			return fmt.Errorf("player %s at position %d outside board", p.ID, p.Position)
		}
		if p.Money < 0 && g.gate.holderID() != p.ID {
			return fmt.Errorf("player %s has %d but does not hold the debt lock", p.ID, p.Money)
		}
	}
	for _, ts := range g.tiles {
		tile := g.board.MustTile(ts.ID)
		if ts.OwnerID != "" {
			if !tile.IsProperty() {
				return fmt.Errorf("tile %d is owned but not a property", ts.ID)
			}
			if !seen[ts.OwnerID] {
				return fmt.Errorf("tile %d owned by missing player %s", ts.ID, ts.OwnerID)
			}
		}
		if ts.Level > 0 && ts.OwnerID == "" {
			return fmt.Errorf("tile %d has level %d without an owner", ts.ID, ts.Level)
		}
		if ts.Level > MaxLevel {
			return fmt.Errorf("tile %d above max level", ts.ID)
		}
		if ts.Mortgaged && ts.OwnerID == "" {
			return fmt.Errorf("tile %d mortgaged without an owner", ts.ID)
		}
	}
	if h := g.gate.holderID(); h != "" && !seen[h] {
		return fmt.Errorf("debt lock held by missing player %s", h)
	}
	if len(g.players) == 0 {
		if g.phase != models.PhaseWaiting || g.current != "" {
			return fmt.Errorf("empty room in phase %s with turn %q", g.phase, g.current)
		}
		return nil
	}
	if !seen[g.current] {
		return fmt.Errorf("current turn %q is not a player", g.current)
	}
	return nil
}
