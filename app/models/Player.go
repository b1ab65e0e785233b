package models

// Player is a participant inside a running game. Money may go negative while
// the player is under the debt lock.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Money       int    `json:"money"`
	Position    int    `json:"position"`
	IsInJail    bool   `json:"is_in_jail"`
	TurnsInJail int    `json:"turns_in_jail"`
}

// RoomPlayer is the directory row recording who sits in which room.
type RoomPlayer struct {
	tableName struct{} `pg:"room_players"`

	User_id  string `pg:",pk"`
	Room_id  string `pg:",pk"`
	Username string
	Active   bool `pg:",use_zero"`
}

type JoinDto struct {
	Game_id string `json:"game_id"`
	Token   string `json:"token"`
	Name    string `json:"name"`
}

type TileActionDto struct {
	Tile_id int `json:"tile_id"`
}
