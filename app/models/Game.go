package models

import "time"

type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// TileState is the mutable part of a tile. Level only matters for properties.
type TileState struct {
	ID        int    `json:"id"`
	OwnerID   string `json:"owner_id,omitempty"`
	Mortgaged bool   `json:"mortgaged"`
	Level     int    `json:"level"`
}

// GameState is the full record of one room. Players is ordered and that order
// is the turn order.
type GameState struct {
	RoomID              string      `json:"room_id"`
	Players             []Player    `json:"players"`
	CurrentTurnPlayerID string      `json:"current_turn_player_id"`
	Phase               Phase       `json:"game_phase"`
	Log                 []string    `json:"game_log"`
	HasRolledDice       bool        `json:"has_rolled_dice"`
	CanBuyProperty      bool        `json:"can_buy_property"`
	TurnCompleted       bool        `json:"turn_completed"`
	PlayerInDebtID      string      `json:"player_in_debt_id,omitempty"`
	WinnerID            string      `json:"winner_id,omitempty"`
	Tiles               []TileState `json:"tiles"`
}

func (s GameState) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Outcome is the result of every engine operation. Err carries the sentinel
// behind a failure and is not serialized.
type Outcome struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Payload interface{} `json:"payload,omitempty"`
	Err     error       `json:"-"`
}

type RollResult struct {
	DiceValue   int  `json:"dice_value"`
	NewPosition int  `json:"new_position"`
	Tile        Tile `json:"tile"`
}

type BuyResult struct {
	Tile Tile `json:"tile"`
}

type MortgageResult struct {
	MortgageValue int `json:"mortgage_value"`
}

type RedeemResult struct {
	RedeemAmount int `json:"redeem_amount"`
}

type UpgradeResult struct {
	NewLevel int `json:"new_level"`
	Cost     int `json:"cost"`
}

// Room is the directory row for a room. The live game never leaves memory.
type Room struct {
	Id        string `pg:",pk"`
	Name      string
	Status    string
	CreatedAt time.Time `pg:"default:now()"`
}

type RoomSummary struct {
	ID          string `json:"room_id"`
	Name        string `json:"name"`
	PlayerCount int    `json:"player_count"`
	Phase       Phase  `json:"game_phase"`
}

type RoomCreateDto struct {
	Name string `json:"name"`
}

type VerifyRoomDto struct {
	Code string `query:"code"`
}
