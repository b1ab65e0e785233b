package game

import (
	"testing"

	"github.com/DedS3t/richman-engine/app/models"
)

// debtGame puts c in debt after landing on b's tile 4 at level 2.
func debtGame(t *testing.T, money int, cOwns ...int) *Game {
	t.Helper()
	g, rng := newTestGame(t, "c", "b")
	own(g, "b", 4)
	g.tiles[4].Level = 2
	own(g, "c", cOwns...)
	c := player(t, g, "c")
	c.Position, c.Money = 1, money
	rng.push(die(3))
	mustOK(t, g, g.RollDiceAndMove("c"))
	return g
}

func TestDebtLockIsRoomWide(t *testing.T) {
	g := debtGame(t, 100, 1)
	if g.GetState().PlayerInDebtID != "c" {
		t.Fatalf("c should be in debt")
	}
	mustFail(t, g, g.EndTurn(), ErrDebtUnresolved)
	mustFail(t, g, g.BuyProperty("c"), ErrDebtUnresolved)
	mustFail(t, g, g.RollDiceAndMove("b"), ErrDebtUnresolved)
	mustFail(t, g, g.BuyProperty("b"), ErrDebtUnresolved)

	// 100 - 1050 + 500 = -450: still owing, tile 2 left to pledge.
	own(g, "c", 2)
	mustOK(t, g, g.MortgageProperty("c", 1))
	if g.GetState().PlayerInDebtID != "c" {
		t.Fatalf("c still owes money")
	}
	mustOK(t, g, g.MortgageProperty("c", 2))
	s := g.GetState()
	if s.PlayerInDebtID != "" {
		t.Fatalf("debt should be settled, money=%d", player(t, g, "c").Money)
	}
	mustOK(t, g, g.EndTurn())
	if g.GetState().CurrentTurnPlayerID != "b" {
		t.Fatalf("turn should move on after settling")
	}
}

func TestMortgagingLastAssetWhileOwingBankrupts(t *testing.T) {
	g := debtGame(t, 100, 1)
	mustOK(t, g, g.MortgageProperty("c", 1))
	s := g.GetState()
	if _, still := s.Player("c"); still {
		t.Fatalf("c should be bankrupt after running out of assets")
	}
	if s.Tiles[1].OwnerID != "" || s.Tiles[1].Mortgaged {
		t.Fatalf("bankrupt holdings must be released: %+v", s.Tiles[1])
	}
	if s.Phase != models.PhaseFinished || s.WinnerID != "b" || s.PlayerInDebtID != "" {
		t.Fatalf("b should have won: %+v", s)
	}
	mustFail(t, g, g.RollDiceAndMove("b"), ErrGameNotInProgress)
	mustFail(t, g, g.EndTurn(), ErrGameNotInProgress)
	mustFail(t, g, g.MortgageProperty("b", 4), ErrGameNotInProgress)
	if g.AddPlayer("late", "Late") {
		t.Fatalf("joining a finished game should fail")
	}
}

func TestBankruptcyScenario(t *testing.T) {
	g, rng := newTestGame(t, "d", "e")
	d := player(t, g, "d")
	d.Position, d.Money = 7, 1700
	rng.push(die(2))
	mustOK(t, g, g.RollDiceAndMove("d"))
	s := g.GetState()
	if len(s.Players) != 1 || s.Players[0].ID != "e" {
		t.Fatalf("d should be gone: %+v", s.Players)
	}
	if s.Phase != models.PhaseFinished || s.WinnerID != "e" {
		t.Fatalf("e should win: %+v", s)
	}
}

func TestBankruptcyWithOthersLeft(t *testing.T) {
	g, rng := newTestGame(t, "d", "e", "f")
	own(g, "d", 16)
	g.tiles[16].Mortgaged = true
	d := player(t, g, "d")
	d.Position, d.Money = 7, 1700
	rng.push(die(2))
	mustOK(t, g, g.RollDiceAndMove("d"))
	s := g.GetState()
	if s.Phase != models.PhasePlaying || s.CurrentTurnPlayerID != "e" || len(s.Players) != 2 {
		t.Fatalf("game should continue with e: %+v", s)
	}
	if s.Tiles[16].OwnerID != "" {
		t.Fatalf("mortgaged holdings must be released too")
	}
}

func TestPositiveBalanceNeverLocks(t *testing.T) {
	g, _ := newTestGame(t, "a", "b")
	a := player(t, g, "a")
	g.checkDebt(a)
	if g.GetState().PlayerInDebtID != "" {
		t.Fatalf("solvent player locked the room")
	}
	a.Money = 0
	g.checkDebt(a)
	if g.GetState().PlayerInDebtID != "" {
		t.Fatalf("zero balance is not debt")
	}
}
