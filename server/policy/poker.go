package policy

import (
	"math"
	"math/rand"

	"ai-cardroom/server/agent"
	"ai-cardroom/server/engine"
)

// Level selects how hard the scripted opponent plays.
type Level string

const (
	Easy   Level = "easy"
	Medium Level = "medium"
	Hard   Level = "hard"
)

// ParseLevel is forgiving: anything unrecognized plays medium.
func ParseLevel(s string) Level {
	switch Level(s) {
	case Easy, Medium, Hard:
		return Level(s)
	}
	return Medium
}

// PokerPolicy is an equity-driven scripted opponent. It estimates hero
// equity against a uniform random villain hand (exact enumeration on the
// river, Monte Carlo rollouts earlier) and picks an action by pot odds.
type PokerPolicy struct {
	Level Level
	rng   *rand.Rand
}

func NewPokerPolicy(level Level, seed int64) *PokerPolicy {
	if seed == 0 {
		seed = 1
	}
	return &PokerPolicy{Level: level, rng: rand.New(rand.NewSource(seed))}
}

// tuning per level: rollout count, how tight the fold line is, the equity
// needed to raise and how often the raise actually fires.
func (p *PokerPolicy) tuning() (sims int, foldMargin, raiseEq, raiseProb float64) {
	switch p.Level {
	case Easy:
		return 150, 0.75, 0.75, 0.5
	case Hard:
		return 1000, 1.1, 0.60, 0.85
	}
	return 400, 1.0, 0.65, 0.7
}

// Decide returns the action for the observation's seat plus table talk.
func (p *PokerPolicy) Decide(o agent.PokerObservation) agent.ActionOut {
	hole := parseCards(o.HoleCards)
	board := parseCards(o.Board)
	if len(hole) != 2 {
		// No hole cards to reason about: take the passive line.
		if o.ToCall > 0 {
			return agent.ActionOut{Action: "call"}
		}
		return agent.ActionOut{Action: "check"}
	}

	eq := p.equity(hole, board)
	bb := o.Blinds["bb"]
	if bb <= 0 {
		bb = 20
	}
	pot := float64(o.Pot)
	_, foldMargin, raiseEq, raiseProb := p.tuning()

	if o.ToCall > 0 {
		b := float64(o.ToCall)
		potOdds := b / (pot + b)
		evCall := eq*(pot+b) - (1-eq)*b
		eps := 0.15 * float64(bb)

		switch {
		case p.Level == Hard && eq >= 0.92 && p.rng.Float64() < 0.4:
			return agent.ActionOut{Action: "all_in", Comment: p.talk("raise")}
		case eq >= raiseEq && p.rng.Float64() < raiseProb && o.Stacks["hero"] > o.ToCall:
			return agent.ActionOut{Action: "raise", Amount: intp(p.raiseSize(pot, bb)), Comment: p.talk("raise")}
		case evCall >= -eps || eq >= potOdds*foldMargin:
			return agent.ActionOut{Action: "call", Comment: p.talk("call")}
		}
		return agent.ActionOut{Action: "fold", Comment: p.talk("fold")}
	}

	// Nothing to call: probe with strong hands, shove the near-nuts on the
	// hard setting, occasionally bluff, otherwise take the free card.
	if p.Level == Hard && eq >= 0.95 && p.rng.Float64() < 0.15 {
		return agent.ActionOut{Action: "all_in", Comment: p.talk("raise")}
	}
	if eq >= raiseEq && p.rng.Float64() < raiseProb {
		return agent.ActionOut{Action: "raise", Amount: intp(p.raiseSize(pot, bb)), Comment: p.talk("raise")}
	}
	if p.Level == Hard && eq > 0.30 && eq < 0.40 && p.rng.Float64() < 0.15 {
		return agent.ActionOut{Action: "raise", Amount: intp(2 * bb), Comment: p.talk("bluff")}
	}
	return agent.ActionOut{Action: "check", Comment: p.talk("check")}
}

// raiseSize picks the additional amount over the call: two thirds of the
// pot, floored at one big blind.
func (p *PokerPolicy) raiseSize(pot float64, bb int) int {
	b := math.Round(0.66 * pot)
	if b < float64(bb) {
		b = float64(bb)
	}
	return int(b)
}

// equity estimates hero's chance against a uniform random villain hand.
// On the river it enumerates every villain combo exactly; earlier streets
// sample villain hands and runouts.
func (p *PokerPolicy) equity(hole, board []engine.Card) float64 {
	avail := remaining(hole, board)
	if len(board) >= 5 {
		return exactRiverEquity(hole, board, avail)
	}

	sims, _, _, _ := p.tuning()
	need := 2 + (5 - len(board))
	var win, tie float64
	scratch := make([]engine.Card, len(avail))
	for s := 0; s < sims; s++ {
		copy(scratch, avail)
		for i := 0; i < need; i++ {
			j := i + p.rng.Intn(len(scratch)-i)
			scratch[i], scratch[j] = scratch[j], scratch[i]
		}
		villain := scratch[:2]
		runout := scratch[2:need]
		full := append(append([]engine.Card{}, board...), runout...)
		hero := engine.EvalScore(append(append([]engine.Card{}, hole...), full...))
		vill := engine.EvalScore(append(append([]engine.Card{}, villain...), full...))
		if hero > vill {
			win++
		} else if hero == vill {
			tie++
		}
	}
	return (win + 0.5*tie) / float64(sims)
}

// exactRiverEquity enumerates all C(45,2) villain combos on a complete
// board. Equity counts ties as half.
func exactRiverEquity(hole, board []engine.Card, avail []engine.Card) float64 {
	heroScore := engine.EvalScore(append(append([]engine.Card{}, hole...), board...))
	var total, win, tie int64
	for i := 0; i < len(avail); i++ {
		for j := i + 1; j < len(avail); j++ {
			total++
			vill := engine.EvalScore(append([]engine.Card{avail[i], avail[j]}, board...))
			if heroScore > vill {
				win++
			} else if heroScore == vill {
				tie++
			}
		}
	}
	if total == 0 {
		return 0.5
	}
	return (float64(win) + 0.5*float64(tie)) / float64(total)
}

// remaining is the deck minus every card hero can see.
func remaining(hole, board []engine.Card) []engine.Card {
	used := map[engine.Card]bool{}
	for _, c := range hole {
		used[c] = true
	}
	for _, c := range board {
		used[c] = true
	}
	out := make([]engine.Card, 0, 52)
	for s := 0; s < 4; s++ {
		for rnk := 2; rnk <= 14; rnk++ {
			c := engine.Card{Rank: rnk, Suit: "cdhs"[s]}
			if !used[c] {
				out = append(out, c)
			}
		}
	}
	return out
}

func parseCards(ss []string) []engine.Card {
	out := make([]engine.Card, 0, len(ss))
	for _, s := range ss {
		if c, err := engine.ParseCard(s); err == nil {
			out = append(out, c)
		}
	}
	return out
}

func intp(n int) *int { return &n }
