package game

import (
	"math/rand"
	"time"

	"github.com/DedS3t/richman-engine/app/models"
)

// Rand is the randomness source for dice and card draws. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source; seed 0 means time based.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (g *Game) rollDie() int {
	return g.rng.Intn(g.rules.DiceSides) + 1
}

// drawCard picks with replacement. Cards without a weight count as 1, so an
// unweighted deck is drawn uniformly.
func (g *Game) drawCard(deck []models.Card) models.Card {
	total := 0
	for _, c := range deck {
		total += cardWeight(c)
	}
	r := g.rng.Intn(total)
	for _, c := range deck {
		r -= cardWeight(c)
		if r < 0 {
			return c
		}
	}
	return deck[len(deck)-1]
}

func cardWeight(c models.Card) int {
	if c.Weight <= 0 {
		return 1
	}
	return c.Weight
}
