package engine

import (
	poker "github.com/paulhankin/poker"
)

// EvalScore ranks a set of cards with the paulhankin evaluator, picking the
// best five when given six or seven. Larger score = stronger hand. It backs
// the strategy layer's equity math and cross-checks the native evaluator in
// tests; Evaluate remains the authority for showdown names and tiebreaks.
func EvalScore(cards []Card) int16 {
	n := len(cards)
	pcs := make([]poker.Card, n)
	for i, c := range cards {
		pcs[i] = toPH(c)
	}
	switch n {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		return poker.Eval7(&a7)
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		return poker.Eval5(&a5)
	case 3:
		var a3 [3]poker.Card
		copy(a3[:], pcs)
		return poker.Eval3(&a3)
	default:
		return bestFiveScore(pcs)
	}
}

// Convert our engine.Card -> library card.
func toPH(c Card) poker.Card {
	var s poker.Suit
	switch c.Suit {
	case 'c':
		s = poker.Club
	case 'd':
		s = poker.Diamond
	case 'h':
		s = poker.Heart
	case 's':
		s = poker.Spade
	default:
		s = poker.Club
	}
	// Our ranks: 2..14 (Ace=14). Library: 1..13 (Ace=1).
	var r poker.Rank
	if c.Rank == 14 {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(c.Rank)
	}
	card, _ := poker.MakeCard(s, r)
	return card
}

func bestFiveScore(pcs []poker.Card) int16 {
	n := len(pcs)
	if n < 5 {
		var a5 [5]poker.Card
		copy(a5[:n], pcs)
		return poker.Eval5(&a5) // shouldn't happen in normal flow
	}
	best := int16(-32768)
	choose := [5]int{}
	var five [5]poker.Card
	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := 0; i < 5; i++ {
				five[i] = pcs[choose[i]]
			}
			score := poker.Eval5(&five)
			if score > best {
				best = score
			}
			return
		}
		for i := start; i <= n-(5-k); i++ {
			choose[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return best
}

// DescribeCards returns the library's description of the best hand in cards,
// or "" if the input doesn't describe.
func DescribeCards(cards []Card) string {
	pcs := make([]poker.Card, len(cards))
	for i, c := range cards {
		pcs[i] = toPH(c)
	}
	d, err := poker.Describe(pcs)
	if err != nil {
		return ""
	}
	return d
}

// Scores returns raw library scores for the two holes against the board
// (larger is better). Used by the driver's river sanity check.
func (g *Poker) Scores() (int, int) {
	p := EvalScore(append(append([]Card{}, g.Player.Hole...), g.Board...))
	o := EvalScore(append(append([]Card{}, g.Opponent.Hole...), g.Board...))
	return int(p), int(o)
}

// EvalDebug returns poker.Describe() strings for both sides (7-card view).
func (g *Poker) EvalDebug() (playerDesc, opponentDesc string) {
	playerDesc = DescribeCards(append(append([]Card{}, g.Player.Hole...), g.Board...))
	opponentDesc = DescribeCards(append(append([]Card{}, g.Opponent.Hole...), g.Board...))
	return
}
