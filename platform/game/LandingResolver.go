package game

import (
	"fmt"

	"github.com/DedS3t/richman-engine/app/models"
)

// resolveLanding applies the tile under p and keeps going while a card moves
// p again. The loop stops on the first effect that does not move.
func (g *Game) resolveLanding(p *models.Player) {
	for i := 0; ; i++ {
		if i >= maxLandingChain {
			panic(fmt.Sprintf("game: landing chain for %s exceeded %d steps, check the card decks", p.ID, maxLandingChain))
		}
		steps, again := g.land(p)
		if !again || !g.present(p) {
			return
		}
		g.move(p, steps)
	}
}

// land applies one tile and returns the further displacement, if any.
func (g *Game) land(p *models.Player) (int, bool) {
	tile := g.board.MustTile(p.Position)
	switch tile.Kind {
	case models.TileProperty:
		g.collectRent(p, tile)
	case models.TileChance, models.TileDestiny:
		return g.applyCard(p, tile)
	case models.TileJail:
		g.logf("%s is just visiting %s", p.Name, tile.Name)
	case models.TileGoToJail:
		g.sendToJail(p)
	case models.TileTax:
		p.Money -= g.rules.TaxAmount
		g.logf("%s paid %d in %s", p.Name, g.rules.TaxAmount, tile.Name)
		g.checkDebt(p)
	default:
		g.logf("%s landed on %s", p.Name, tile.Name)
	}
	return 0, false
}

// collectRent charges rent whether or not the mover can afford it; the debt
// check afterwards deals with a negative balance.
func (g *Game) collectRent(p *models.Player, tile models.Tile) {
	ts := &g.tiles[tile.ID]
	switch {
	case ts.OwnerID == "":
		g.logf("%s landed on %s, which is for sale for %d", p.Name, tile.Name, tile.Price)
		return
	case ts.OwnerID == p.ID:
		g.logf("%s landed on their own %s", p.Name, tile.Name)
		return
	case ts.Mortgaged:
		g.logf("%s landed on %s, which is mortgaged, no rent due", p.Name, tile.Name)
		return
	}
	owner := g.find(ts.OwnerID)
	if owner == nil {
		panic(fmt.Sprintf("game: tile %d owned by missing player %s", tile.ID, ts.OwnerID))
	}
	rent := tile.RentAt(ts.Level)
	p.Money -= rent
	owner.Money += rent
	g.logf("%s paid %d rent to %s for %s", p.Name, rent, owner.Name, tile.Name)
	g.checkDebt(p)
}

func (g *Game) applyCard(p *models.Player, tile models.Tile) (int, bool) {
	card := g.drawCard(g.board.Deck(tile.Kind))
	g.logf("%s drew %s: %s", p.Name, tile.Name, card.Info)
	switch card.Action {
	case models.CardMoneyChange:
		p.Money += card.Payload
		g.checkDebt(p)
	case models.CardMoveTo:
		if steps := g.stepsTo(p, card.Payload); steps != 0 {
			return steps, true
		}
	case models.CardMoveForward:
		return card.Payload, card.Payload != 0
	case models.CardMoveBackward:
		return -card.Payload, card.Payload != 0
	}
	return 0, false
}

// sendToJail teleports without resolving the jail tile.
func (g *Game) sendToJail(p *models.Player) {
	p.Position = g.board.JailIndex()
	p.IsInJail = true
	p.TurnsInJail = 0
	g.logf("%s was sent to jail", p.Name)
}
