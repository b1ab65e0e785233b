package game

import (
	"fmt"

	"github.com/DedS3t/richman-engine/app/models"
)

// BuyProperty buys the unowned property the current player stands on. It is
// allowed once per landing.
func (g *Game) BuyProperty(playerID string) models.Outcome {
	p := g.find(playerID)
	if p == nil {
		return fail(ErrUnknownPlayer)
	}
	if g.phase != models.PhasePlaying {
		return fail(ErrGameNotInProgress)
	}
	if g.gate.blocks(playerID) {
		return fail(ErrDebtUnresolved)
	}
	if playerID != g.current {
		return fail(ErrNotYourTurn)
	}
	if !g.canBuy {
		return fail(ErrCannotBuy)
	}
	tile := g.board.MustTile(p.Position)
	if !tile.IsProperty() {
		return failf(ErrWrongTileKind, "%s", tile.Name)
	}
	ts := &g.tiles[tile.ID]
	if ts.OwnerID != "" {
		return failf(ErrCannotBuy, "%s is already owned", tile.Name)
	}
	if p.Money < tile.Price {
		return failf(ErrInsufficientFunds, "%s costs %d", tile.Name, tile.Price)
	}
	p.Money -= tile.Price
	ts.OwnerID = p.ID
	g.canBuy = false
	g.logf("%s bought %s for %d", p.Name, tile.Name, tile.Price)
	return ok(fmt.Sprintf("bought %s", tile.Name), models.BuyResult{Tile: tile})
}

// MortgageProperty pledges an owned property for its mortgage value. Rent
// stops until it is redeemed.
func (g *Game) MortgageProperty(playerID string, tileID int) models.Outcome {
	p, tile, ts, out, okay := g.ownedProperty(playerID, tileID)
	if !okay {
		return out
	}
	if ts.Mortgaged {
		return failf(ErrAlreadyMortgaged, "%s", tile.Name)
	}
	p.Money += tile.Mortgage
	ts.Mortgaged = true
	g.logf("%s mortgaged %s for %d", p.Name, tile.Name, tile.Mortgage)
	g.checkDebt(p)
	return ok(fmt.Sprintf("mortgaged %s", tile.Name), models.MortgageResult{MortgageValue: tile.Mortgage})
}

// RedeemProperty lifts a mortgage for the mortgage value plus 10%, rounded
// down.
func (g *Game) RedeemProperty(playerID string, tileID int) models.Outcome {
	p, tile, ts, out, okay := g.ownedProperty(playerID, tileID)
	if !okay {
		return out
	}
	if !ts.Mortgaged {
		return failf(ErrNotMortgaged, "%s", tile.Name)
	}
	cost := RedeemCost(tile.Mortgage)
	if p.Money < cost {
		return failf(ErrInsufficientFunds, "redeeming %s costs %d", tile.Name, cost)
	}
	p.Money -= cost
	ts.Mortgaged = false
	g.logf("%s redeemed %s for %d", p.Name, tile.Name, cost)
	g.checkDebt(p)
	return ok(fmt.Sprintf("redeemed %s", tile.Name), models.RedeemResult{RedeemAmount: cost})
}

// UpgradeProperty raises a property one level. The player must own the whole
// group with nothing in it mortgaged.
func (g *Game) UpgradeProperty(playerID string, tileID int) models.Outcome {
	p, tile, ts, out, okay := g.ownedProperty(playerID, tileID)
	if !okay {
		return out
	}
	if ts.Mortgaged {
		return failf(ErrAlreadyMortgaged, "%s", tile.Name)
	}
	group, found := g.board.GroupOf(tile.ID)
	if !found {
		return failf(ErrGroupNotOwned, "%s has no group", tile.Name)
	}
	for _, id := range group.TileIDs {
		member := g.tiles[id]
		if member.OwnerID != p.ID {
			return failf(ErrGroupNotOwned, "%s group", group.Name)
		}
		if member.Mortgaged {
			return failf(ErrGroupNotOwned, "%s is mortgaged", g.board.MustTile(id).Name)
		}
	}
	if ts.Level >= MaxLevel {
		return failf(ErrMaxLevel, "%s", tile.Name)
	}
	if p.Money < tile.UpgradeCost {
		return failf(ErrInsufficientFunds, "upgrading %s costs %d", tile.Name, tile.UpgradeCost)
	}
	p.Money -= tile.UpgradeCost
	ts.Level++
	g.logf("%s upgraded %s to level %d for %d", p.Name, tile.Name, ts.Level, tile.UpgradeCost)
	g.checkDebt(p)
	return ok(fmt.Sprintf("upgraded %s", tile.Name), models.UpgradeResult{NewLevel: ts.Level, Cost: tile.UpgradeCost})
}

func RedeemCost(mortgage int) int { return mortgage * 11 / 10 }

// ownedProperty runs the checks shared by mortgage, redeem and upgrade.
func (g *Game) ownedProperty(playerID string, tileID int) (*models.Player, models.Tile, *models.TileState, models.Outcome, bool) {
	p := g.find(playerID)
	if p == nil {
		return nil, models.Tile{}, nil, fail(ErrUnknownPlayer), false
	}
	if g.phase != models.PhasePlaying {
		return nil, models.Tile{}, nil, fail(ErrGameNotInProgress), false
	}
	tile, err := g.board.GetByPos(tileID)
	if err != nil {
		return nil, models.Tile{}, nil, failf(ErrInvalidTile, "%d", tileID), false
	}
	if !tile.IsProperty() {
		return nil, models.Tile{}, nil, failf(ErrWrongTileKind, "%s", tile.Name), false
	}
	ts := &g.tiles[tile.ID]
	if ts.OwnerID != p.ID {
		return nil, models.Tile{}, nil, failf(ErrNotOwned, "%s", tile.Name), false
	}
	return p, tile, ts, models.Outcome{}, true
}
