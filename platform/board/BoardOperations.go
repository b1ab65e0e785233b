package board

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DedS3t/richman-engine/app/models"
)

//go:embed board.json
var boardJSON []byte

//go:embed cards.json
var cardsJSON []byte

var ErrNotFound = errors.New("not found")

// Board is the immutable tile table, group definitions and card decks.
// One Board is shared by every room, so accessors hand out copies.
type Board struct {
	tiles   []models.Tile
	groups  []models.PropertyGroup
	chance  []models.Card
	destiny []models.Card

	jail    int
	groupOf map[int]int
}

type boardFile struct {
	Tiles  []models.Tile          `json:"tiles"`
	Groups []models.PropertyGroup `json:"groups"`
}

type cardsFile struct {
	Chance  []models.Card `json:"chance"`
	Destiny []models.Card `json:"destiny"`
}

var standard *Board

func init() {
	b, err := Parse(boardJSON, cardsJSON)
	if err != nil {
		panic(fmt.Sprintf("board: embedded tables are invalid: %v", err))
	}
	standard = b
}

// Standard returns the embedded board shared by every room.
func Standard() *Board { return standard }

// Parse decodes and validates a board and its decks.
func Parse(boardData, cardData []byte) (*Board, error) {
	var bf boardFile
	if err := json.Unmarshal(boardData, &bf); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	var cf cardsFile
	if err := json.Unmarshal(cardData, &cf); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	b := &Board{
		tiles:   bf.Tiles,
		groups:  bf.Groups,
		chance:  cf.Chance,
		destiny: cf.Destiny,
		jail:    -1,
		groupOf: map[int]int{},
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) validate() error {
	if len(b.tiles) == 0 {
		return errors.New("board has no tiles")
	}
	for i, t := range b.tiles {
		if t.ID != i {
			return fmt.Errorf("tile at index %d has id %d", i, t.ID)
		}
		switch t.Kind {
		case models.TileJail:
			if b.jail >= 0 {
				return fmt.Errorf("second jail tile at %d", i)
			}
			b.jail = i
		case models.TileProperty:
			if t.Price <= 0 || len(t.Rent) == 0 {
				return fmt.Errorf("property %d needs a price and a rent schedule", i)
			}
		case models.TileStart, models.TileChance, models.TileDestiny,
			models.TileGoToJail, models.TileFreeParking, models.TileTax:
		default:
			return fmt.Errorf("tile %d has unknown kind %q", i, t.Kind)
		}
	}
	if b.jail < 0 {
		return errors.New("board has no jail tile")
	}
	for gi, g := range b.groups {
		if len(g.TileIDs) == 0 {
			return fmt.Errorf("group %q is empty", g.Name)
		}
		for _, id := range g.TileIDs {
			if id < 0 || id >= len(b.tiles) || !b.tiles[id].IsProperty() {
				return fmt.Errorf("group %q references non-property tile %d", g.Name, id)
			}
			if _, dup := b.groupOf[id]; dup {
				return fmt.Errorf("tile %d belongs to two groups", id)
			}
			b.groupOf[id] = gi
		}
	}
	for _, deck := range [][]models.Card{b.chance, b.destiny} {
		if len(deck) == 0 {
			return errors.New("card decks must not be empty")
		}
		for _, c := range deck {
			switch c.Action {
			case models.CardMoneyChange, models.CardMoveForward, models.CardMoveBackward:
			case models.CardMoveTo:
				if c.Payload < 0 || c.Payload >= len(b.tiles) {
					return fmt.Errorf("card %q targets tile %d outside the board", c.Info, c.Payload)
				}
			default:
				return fmt.Errorf("card %q has unknown action %q", c.Info, c.Action)
			}
			if c.Weight < 0 {
				return fmt.Errorf("card %q has negative weight", c.Info)
			}
		}
	}
	return nil
}

func (b *Board) Len() int { return len(b.tiles) }

func (b *Board) JailIndex() int { return b.jail }

func (b *Board) GetByPos(pos int) (models.Tile, error) {
	if pos < 0 || pos >= len(b.tiles) {
		return models.Tile{}, ErrNotFound
	}
	return cloneTile(b.tiles[pos]), nil
}

// MustTile is for indexes the engine computed itself. An out of range index
// there is a defect, not bad input.
func (b *Board) MustTile(pos int) models.Tile {
	t, err := b.GetByPos(pos)
	if err != nil {
		panic(fmt.Sprintf("board: tile index %d outside board of %d", pos, len(b.tiles)))
	}
	return t
}

// GroupOf returns the property group a tile belongs to.
func (b *Board) GroupOf(tileID int) (models.PropertyGroup, bool) {
	gi, ok := b.groupOf[tileID]
	if !ok {
		return models.PropertyGroup{}, false
	}
	g := b.groups[gi]
	return models.PropertyGroup{Name: g.Name, TileIDs: append([]int(nil), g.TileIDs...)}, true
}

// Tiles returns a copy of the tile table in board order.
func (b *Board) Tiles() []models.Tile {
	out := make([]models.Tile, len(b.tiles))
	for i, t := range b.tiles {
		out[i] = cloneTile(t)
	}
	return out
}

func cloneTile(t models.Tile) models.Tile {
	t.Rent = append([]int(nil), t.Rent...)
	return t
}

func (b *Board) Deck(kind models.TileKind) []models.Card {
	switch kind {
	case models.TileChance:
		return append([]models.Card(nil), b.chance...)
	case models.TileDestiny:
		return append([]models.Card(nil), b.destiny...)
	}
	return nil
}
