package game

import (
	"fmt"

	"github.com/DedS3t/richman-engine/app/models"
)

// RollDiceAndMove rolls for the current player, moves them and resolves the
// landing. A jailed player only moves once their stay runs out.
func (g *Game) RollDiceAndMove(playerID string) models.Outcome {
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
	if g.rolled {
		return fail(ErrAlreadyRolled)
	}

	if p.IsInJail {
		p.TurnsInJail++
		g.logf("%s spends turn %d in jail", p.Name, p.TurnsInJail)
		if p.TurnsInJail < g.rules.JailMaxTurns {
			g.rolled = true
			g.canBuy = false
			g.completed = true
			return ok(fmt.Sprintf("%s stays in jail", p.Name), models.RollResult{
				NewPosition: p.Position,
				Tile:        g.board.MustTile(p.Position),
			})
		}
		p.Money -= g.rules.JailFine
		p.IsInJail = false
		p.TurnsInJail = 0
		g.logf("%s paid a fine of %d and left jail", p.Name, g.rules.JailFine)
		g.checkDebt(p)
		if !g.present(p) {
			return ok(fmt.Sprintf("%s went bankrupt paying the jail fine", p.Name), nil)
		}
	}

	dice := g.rollDie()
	g.rolled = true
	g.logf("%s rolled %d", p.Name, dice)
	g.move(p, dice)
	g.resolveLanding(p)

	if !g.present(p) {
		return ok(fmt.Sprintf("%s rolled %d and went bankrupt", p.Name, dice), models.RollResult{
			DiceValue:   dice,
			NewPosition: p.Position,
			Tile:        g.board.MustTile(p.Position),
		})
	}
	g.canBuy = g.buyable(p)
	g.completed = g.rolled
	tile := g.board.MustTile(p.Position)
	return ok(fmt.Sprintf("%s rolled %d and moved to %s", p.Name, dice, tile.Name), models.RollResult{
		DiceValue:   dice,
		NewPosition: p.Position,
		Tile:        tile,
	})
}

// EndTurn passes the turn to the next player in seating order. Buying is
// optional; only the roll is required.
func (g *Game) EndTurn() models.Outcome {
	if len(g.players) == 0 {
		return fail(ErrNoPlayers)
	}
	if g.phase != models.PhasePlaying {
		return fail(ErrGameNotInProgress)
	}
	if g.gate.blocks(g.current) {
		return fail(ErrDebtUnresolved)
	}
	if !g.completed {
		return fail(ErrTurnNotCompleted)
	}
	next := g.advanceTurn()
	return ok(fmt.Sprintf("turn ended, %s is next", next.Name), nil)
}

// advanceTurn reads the live seating order every time so removals never
// leave a stale successor behind.
func (g *Game) advanceTurn() *models.Player {
	idx := g.indexOf(g.current)
	next := g.players[(idx+1)%len(g.players)]
	g.current = next.ID
	g.resetTurnFlags()
	g.logf("It is %s's turn", next.Name)
	return next
}

func (g *Game) buyable(p *models.Player) bool {
	tile := g.board.MustTile(p.Position)
	return tile.IsProperty() && g.tiles[tile.ID].OwnerID == ""
}
