package main

import "math"

// Elo holds session ratings for the player (A) and the house profile (B).
type Elo struct {
	A, B  float64 // ratings
	K     float64 // base K
	Games int     // games processed this session
}

func NewElo(start, k float64) Elo { return Elo{A: start, B: start, K: k} }

func (e Elo) expect() (ea, eb float64) {
	ea = 1.0 / (1.0 + math.Pow(10, (e.B-e.A)/400.0))
	return ea, 1.0 - ea
}

// UpdateOutcome applies a plain win/loss/push result from the player's side.
func (e *Elo) UpdateOutcome(outcome string) (dA, dB float64) {
	var sA float64
	switch outcome {
	case "win":
		sA = 1.0
	case "loss":
		sA = 0.0
	default:
		sA = 0.5
	}
	return e.apply(sA, e.K*decay(e.Games))
}

// UpdatePoker tempers the score by the chip margin (normalized in BBs) and
// the effective K by final pot size, margin, and a slow anneal over games.
func (e *Elo) UpdatePoker(chipsWon, pot, bb int) (dA, dB float64) {
	lambdaBB := 6.0
	sA := 0.5
	if bb > 0 {
		sA = 0.5 + 0.5*math.Tanh(float64(chipsWon)/(lambdaBB*float64(bb)))
	}
	kEff := e.K * potScale(pot, bb) * marginScale(chipsWon, bb) * decay(e.Games)
	return e.apply(sA, kEff)
}

func (e *Elo) apply(sA, k float64) (dA, dB float64) {
	ea, eb := e.expect()
	sB := 1.0 - sA
	dA = k * (sA - ea)
	dB = k * (sB - eb)
	e.A += dA
	e.B += dB
	e.Games++
	return dA, dB
}

// ---- helpers ----

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func potScale(pot, bb int) float64 {
	if bb <= 0 || pot <= 0 {
		return 1.0
	}
	scale := float64(pot) / (2.0 * float64(bb)) // ~2bb baseline
	return clamp(scale, 0.5, 3.0)
}

func marginScale(chipsWon, bb int) float64 {
	if bb <= 0 {
		return 1.0
	}
	m := math.Abs(float64(chipsWon)) / float64(bb) // in BBs
	return 1.0 + 0.35*math.Tanh(m/8.0)
}

func decay(games int) float64 {
	return 1.0 / (1.0 + 0.01*float64(games)) // slow anneal over the session
}
