package policy

import (
	"math/rand"

	"ai-cardroom/server/agent"
)

// BlackjackPolicy is the scripted house line per level: easy quits drawing
// at 16, medium plays the book, hard also hits soft 17.
type BlackjackPolicy struct {
	Level Level
	rng   *rand.Rand
}

func NewBlackjackPolicy(level Level, seed int64) *BlackjackPolicy {
	if seed == 0 {
		seed = 1
	}
	return &BlackjackPolicy{Level: level, rng: rand.New(rand.NewSource(seed))}
}

// Decide picks hit or stand from the opponent side's own total.
func (b *BlackjackPolicy) Decide(o agent.BlackjackObservation) agent.ActionOut {
	var hit bool
	switch b.Level {
	case Easy:
		hit = o.YourTotal < 16
	case Hard:
		hit = o.YourTotal < 17 || (o.YourTotal == 17 && o.YourSoft)
	default:
		hit = o.YourTotal < 17
	}
	if hit {
		return agent.ActionOut{Action: "hit", Comment: b.talk("hit")}
	}
	return agent.ActionOut{Action: "stand", Comment: b.talk("stand")}
}
