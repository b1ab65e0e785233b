package models

type TileKind string

const (
	TileStart       TileKind = "start"
	TileProperty    TileKind = "property"
	TileChance      TileKind = "chance"
	TileDestiny     TileKind = "destiny"
	TileJail        TileKind = "jail"
	TileGoToJail    TileKind = "go_to_jail"
	TileFreeParking TileKind = "free_parking"
	TileTax         TileKind = "tax"
)

// Tile is one square of the board. Price, Rent, Mortgage and UpgradeCost are
// only meaningful for property tiles.
type Tile struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Kind        TileKind `json:"kind"`
	Group       string   `json:"group,omitempty"`
	Price       int      `json:"price,omitempty"`
	Rent        []int    `json:"rent,omitempty"`
	Mortgage    int      `json:"mortgage,omitempty"`
	UpgradeCost int      `json:"upgrade_cost,omitempty"`
}

func (t Tile) IsProperty() bool { return t.Kind == TileProperty }

// RentAt returns the rent for an improvement level, clamped to the last entry
// of the schedule.
func (t Tile) RentAt(level int) int {
	if len(t.Rent) == 0 {
		return 0
	}
	if level >= len(t.Rent) {
		level = len(t.Rent) - 1
	}
	if level < 0 {
		level = 0
	}
	return t.Rent[level]
}

type PropertyGroup struct {
	Name    string `json:"name"`
	TileIDs []int  `json:"tile_ids"`
}

type CardAction string

const (
	CardMoneyChange  CardAction = "money"
	CardMoveTo       CardAction = "move_to"
	CardMoveForward  CardAction = "forward"
	CardMoveBackward CardAction = "backward"
)

// Card is a chance/destiny event. Payload is the money delta, the absolute
// target tile or the step count depending on Action.
type Card struct {
	Info    string     `json:"info"`
	Action  CardAction `json:"action"`
	Payload int        `json:"payload"`
	Weight  int        `json:"weight,omitempty"`
}
