package game

import "github.com/DedS3t/richman-engine/app/models"

// checkDebt runs after any change to p's balance. A debtor with
// unmortgaged property takes the room-wide gate; one without is bankrupt.
func (g *Game) checkDebt(p *models.Player) {
	if p.Money >= 0 {
		if g.gate.release(p.ID) {
			g.logf("%s has settled their debt", p.Name)
		}
		return
	}
	if g.hasUnmortgagedAssets(p.ID) {
		g.gate.lock(p.ID)
		g.logf("%s owes %d and must mortgage property before anyone can continue", p.Name, -p.Money)
		return
	}
	g.bankrupt(p)
}

func (g *Game) hasUnmortgagedAssets(playerID string) bool {
	for _, ts := range g.tiles {
		if ts.OwnerID == playerID && !ts.Mortgaged {
			return true
		}
	}
	return false
}

func (g *Game) bankrupt(p *models.Player) {
	idx := g.indexOf(p.ID)
	if idx < 0 {
		return
	}
	g.logf("%s is bankrupt and leaves the game", p.Name)
	g.removeAt(idx)
	if len(g.players) == 1 && g.phase == models.PhasePlaying {
		w := g.players[0]
		g.phase = models.PhaseFinished
		g.winner = w.ID
		g.resetTurnFlags()
		g.logf("%s wins the game", w.Name)
	}
}
