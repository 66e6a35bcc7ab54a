package main

import (
	"ai-cardroom/server/engine"
	"math"
	"math/rand"
	"sort"
)

// Tally is one session bucket of finished games.
type Tally struct {
	Games    int
	Wins     int
	Losses   int
	Pushes   int
	NetScore int       // summed player-minus-opponent score margin
	Margins  []float64 // per-game normalized margins (bootstrap input)
}

// WinRate counts a push as half a win.
func (t *Tally) WinRate() float64 {
	if t.Games == 0 {
		return 0
	}
	return (float64(t.Wins) + 0.5*float64(t.Pushes)) / float64(t.Games)
}

func (t *Tally) MeanMargin() float64 {
	if len(t.Margins) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range t.Margins {
		sum += m
	}
	return sum / float64(len(t.Margins))
}

// SessionStats accumulates results for one sitting, overall and per game.
type SessionStats struct {
	Overall   Tally
	Blackjack Tally
	Poker     Tally
	War       Tally
}

func (s *SessionStats) gameBucket(game string) *Tally {
	switch game {
	case "blackjack":
		return &s.Blackjack
	case "poker":
		return &s.Poker
	default:
		return &s.War
	}
}

// AddResult files one finished game under its type and the overall bucket.
// margin is the game's normalized score margin from the player's side.
func (s *SessionStats) AddResult(res *engine.Result, margin float64) {
	if res == nil {
		return
	}
	for _, t := range []*Tally{&s.Overall, s.gameBucket(res.Game)} {
		t.Games++
		switch res.Outcome {
		case "win":
			t.Wins++
		case "loss":
			t.Losses++
		default:
			t.Pushes++
		}
		t.NetScore += res.PlayerScore - res.OpponentScore
		t.Margins = append(t.Margins, margin)
	}
}

// --------- CI helpers (for the session summary) ---------

// WilsonCI95 for a Bernoulli win rate using wins/pushes/total games.
func WilsonCI95(wins, pushes, total int) (low, hi float64) {
	if total <= 0 {
		return 0, 1
	}
	z := 1.96
	n := float64(total)
	p := (float64(wins) + 0.5*float64(pushes)) / n
	den := 1 + (z*z)/n
	center := p + (z*z)/(2*n)
	half := z * math.Sqrt((p*(1-p))/n+(z*z)/(4*n*n))
	return (center - half) / den, (center + half) / den
}

// BootstrapCI95 for the mean of values (e.g. normalized score margins).
func BootstrapCI95(vals []float64, B int) (low, hi float64) {
	n := len(vals)
	if n == 0 || B <= 1 {
		return 0, 0
	}
	res := make([]float64, B)
	for b := 0; b < B; b++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += vals[rand.Intn(n)]
		}
		res[b] = sum / float64(n)
	}
	sort.Float64s(res)
	l := int(0.025 * float64(B-1))
	h := int(0.975 * float64(B-1))
	return res[l], res[h]
}
