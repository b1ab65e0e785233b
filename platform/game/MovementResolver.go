package game

import "github.com/DedS3t/richman-engine/app/models"

// move shifts p by steps around the board. A forward move that wraps past
// the start tile pays the pass bonus once, which can settle a debt.
func (g *Game) move(p *models.Player, steps int) {
	n := g.board.Len()
	old := p.Position
	p.Position = ((old+steps)%n + n) % n
	if steps > 0 && p.Position < old {
		p.Money += g.rules.PassBonus
		g.logf("%s passed Start and collected %d", p.Name, g.rules.PassBonus)
		if p.Money >= 0 {
			g.checkDebt(p)
		}
	}
}

// stepsTo converts an absolute target into a forward step count so card
// teleports follow the same pass bonus rule as dice.
func (g *Game) stepsTo(p *models.Player, target int) int {
	n := g.board.Len()
	return ((target-p.Position)%n + n) % n
}
