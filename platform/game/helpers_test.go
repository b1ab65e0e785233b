package game

import (
	"errors"
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/DedS3t/richman-engine/app/models"
	"github.com/DedS3t/richman-engine/platform/board"
	"github.com/DedS3t/richman-engine/platform/config"
	"github.com/sirupsen/logrus"
)

// scripted replays fixed values so dice and card draws are predictable.
type scripted struct {
	vals []int
}

func (s *scripted) Intn(n int) int {
	if len(s.vals) == 0 {
		panic("scripted rand exhausted")
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted value %d out of range [0,%d)", v, n))
	}
	return v
}

func (s *scripted) push(v ...int) { s.vals = append(s.vals, v...) }

// die converts a face value into the draw that produces it.
func die(face int) int { return face - 1 }

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.Out = ioutil.Discard
	return logrus.NewEntry(l)
}

func newTestGame(t *testing.T, ids ...string) (*Game, *scripted) {
	t.Helper()
	return newTestGameOn(t, board.Standard(), ids...)
}

func newTestGameOn(t *testing.T, b *board.Board, ids ...string) (*Game, *scripted) {
	t.Helper()
	rng := &scripted{}
	g := CreateRoom("room-1", Options{
		Board:  b,
		Rules:  config.DefaultRules(),
		Rand:   rng,
		Logger: quietLogger(),
	})
	for _, id := range ids {
		if !g.AddPlayer(id, "P-"+id) {
			t.Fatalf("AddPlayer(%s) failed", id)
		}
	}
	check(t, g)
	return g, rng
}

func check(t *testing.T, g *Game) {
	t.Helper()
	if err := g.CheckInvariants(); err != nil {
		t.Fatalf("invariant broken: %v", err)
	}
}

func mustOK(t *testing.T, g *Game, out models.Outcome) models.Outcome {
	t.Helper()
	if !out.Success {
		t.Fatalf("expected success, got %q", out.Message)
	}
	check(t, g)
	return out
}

func mustFail(t *testing.T, g *Game, out models.Outcome, want error) {
	t.Helper()
	if out.Success {
		t.Fatalf("expected failure %v, got success %q", want, out.Message)
	}
	if !errors.Is(out.Err, want) {
		t.Fatalf("expected %v, got %v", want, out.Err)
	}
	if out.Message == "" {
		t.Fatalf("failed outcome without a message")
	}
	check(t, g)
}

func player(t *testing.T, g *Game, id string) *models.Player {
	t.Helper()
	p := g.find(id)
	if p == nil {
		t.Fatalf("player %s not found", id)
	}
	return p
}

func own(g *Game, owner string, tileIDs ...int) {
	for _, id := range tileIDs {
		g.tiles[id].OwnerID = owner
	}
}
