package game

import (
	"testing"

	"github.com/DedS3t/richman-engine/platform/board"
)

// Chance deck order: 0 +1000, 1 -500, 2 to Start, 3 to Free Parking,
// 4 forward 3, 5 back 2. Destiny: 0 +2000, 1 -1000, 2 +300, 3 to Go To
// Jail, 4 forward 2, 5 back 3.

func TestRentScenario(t *testing.T) {
	g, rng := newTestGame(t, "c", "b")
	own(g, "b", 4)
	player(t, g, "c").Position = 1
	rng.push(die(3))

	mustOK(t, g, g.RollDiceAndMove("c"))
	if c, b := player(t, g, "c"), player(t, g, "b"); c.Money != 14850 || b.Money != 15150 {
		t.Fatalf("rent not transferred: c=%d b=%d", c.Money, b.Money)
	}
	if g.GetState().CanBuyProperty {
		t.Fatalf("owned tile cannot be bought")
	}
}

func TestRentVariants(t *testing.T) {
	cases := []struct {
		name      string
		owner     string
		level     int
		mortgaged bool
		wantRent  int
	}{
		{"level one", "b", 1, false, 450},
		{"level two", "b", 2, false, 1050},
		{"mortgaged", "b", 2, true, 0},
		{"own tile", "c", 0, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, rng := newTestGame(t, "c", "b")
			own(g, tc.owner, 4)
			g.tiles[4].Level = tc.level
			g.tiles[4].Mortgaged = tc.mortgaged
			player(t, g, "c").Position = 1
			rng.push(die(3))
			mustOK(t, g, g.RollDiceAndMove("c"))
			if got := player(t, g, "c").Money; got != 15000-tc.wantRent {
				t.Fatalf("c paid %d, want %d", 15000-got, tc.wantRent)
			}
		})
	}
}

func TestRentIsUnconditional(t *testing.T) {
	g, rng := newTestGame(t, "c", "b")
	own(g, "b", 4)
	g.tiles[4].Level = 1
	own(g, "c", 1)
	c := player(t, g, "c")
	c.Position, c.Money = 1, 100
	rng.push(die(3))

	mustOK(t, g, g.RollDiceAndMove("c"))
	if c.Money != -350 || player(t, g, "b").Money != 15450 {
		t.Fatalf("rent must be paid in full: c=%d", c.Money)
	}
	if g.GetState().PlayerInDebtID != "c" {
		t.Fatalf("c should hold the debt lock")
	}
}

func TestChanceMoveToStartPaysBonus(t *testing.T) {
	g, rng := newTestGame(t, "a", "b")
	player(t, g, "a").Position = 10
	rng.push(die(3), 2)
	out := mustOK(t, g, g.RollDiceAndMove("a"))
	a := player(t, g, "a")
	if a.Position != 0 || a.Money != 17000 {
		t.Fatalf("expected start with bonus, got pos=%d money=%d", a.Position, a.Money)
	}
	if out.Payload == nil {
		t.Fatalf("missing roll payload")
	}
}

func TestChanceBackwardHasNoBonus(t *testing.T) {
	g, rng := newTestGame(t, "a", "b")
	rng.push(die(3), 5)
	mustOK(t, g, g.RollDiceAndMove("a"))
	a := player(t, g, "a")
	if a.Position != 1 || a.Money != 15000 {
		t.Fatalf("expected tile 1 without bonus, got pos=%d money=%d", a.Position, a.Money)
	}
	if !g.GetState().CanBuyProperty {
		t.Fatalf("card destination should be buyable")
	}
}

func TestChanceChainsIntoRent(t *testing.T) {
	g, rng := newTestGame(t, "a", "b")
	own(g, "b", 16)
	player(t, g, "a").Position = 10
	rng.push(die(3), 4)
	mustOK(t, g, g.RollDiceAndMove("a"))
	if a, b := player(t, g, "a"), player(t, g, "b"); a.Position != 16 || a.Money != 14700 || b.Money != 15300 {
		t.Fatalf("chained rent wrong: a=%+v b=%d", *a, b.Money)
	}
}

func TestDestinyChainsIntoJail(t *testing.T) {
	g, rng := newTestGame(t, "a", "b")
	player(t, g, "a").Position = 14
	rng.push(die(3), 3)
	out := mustOK(t, g, g.RollDiceAndMove("a"))
	a := player(t, g, "a")
	if a.Position != 5 || !a.IsInJail || a.Money != 17000 {
		t.Fatalf("expected bonus then jail, got %+v", *a)
	}
	if g.GetState().CanBuyProperty {
		t.Fatalf("jail is not for sale")
	}
	if !out.Success {
		t.Fatalf("roll failed")
	}
}

func TestDestinyMoneyLoss(t *testing.T) {
	t.Run("debt lock with assets", func(t *testing.T) {
		g, rng := newTestGame(t, "a", "b")
		own(g, "a", 1)
		a := player(t, g, "a")
		a.Position, a.Money = 5, 500
		rng.push(die(3), 1)
		mustOK(t, g, g.RollDiceAndMove("a"))
		if a.Money != -500 || g.GetState().PlayerInDebtID != "a" {
			t.Fatalf("expected debt lock, money=%d", a.Money)
		}
	})
	t.Run("bankrupt without assets", func(t *testing.T) {
		g, rng := newTestGame(t, "a", "b", "c")
		a := player(t, g, "a")
		a.Position, a.Money = 5, 500
		rng.push(die(3), 1)
		mustOK(t, g, g.RollDiceAndMove("a"))
		s := g.GetState()
		if _, still := s.Player("a"); still {
			t.Fatalf("a should be bankrupt")
		}
		if s.CurrentTurnPlayerID != "b" || s.HasRolledDice {
			t.Fatalf("turn should pass to b with fresh flags: %+v", s)
		}
	})
}

func TestLandingChainIsBounded(t *testing.T) {
	loop, err := board.Parse(
		[]byte(`{"tiles":[{"id":0,"kind":"jail"},{"id":1,"kind":"chance"},{"id":2,"kind":"start"}]}`),
		[]byte(`{"chance":[{"info":"round we go","action":"forward","payload":3}],"destiny":[{"info":"x","action":"money","payload":1}]}`),
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	g, rng := newTestGameOn(t, loop, "a")
	rng.push(die(1))
	for i := 0; i < maxLandingChain+1; i++ {
		rng.push(0)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected the landing loop to abort")
		}
	}()
	g.RollDiceAndMove("a")
}
