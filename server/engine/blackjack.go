package engine

// Blackjack is a single heads-up hand: player against the house side.
// One caller drives it; actions on a finished hand are no-ops that
// return an explanatory string.
type Blackjack struct {
	Deck         *Deck
	PlayerHand   []Card
	OpponentHand []Card
	Turn         Seat
	Finished     bool
	Winner       string // "player", "opponent" or "push"; empty while live
}

// NewBlackjack deals a fresh hand: two cards each, alternating player,
// opponent. Naturals resolve immediately: both 21 is a push, one 21 wins
// outright.
func NewBlackjack(seed int64) *Blackjack {
	return newBlackjackWithDeck(NewDeck(seed))
}

func newBlackjackWithDeck(d *Deck) *Blackjack {
	g := &Blackjack{
		Deck: d,
		Turn: Player,
	}
	for i := 0; i < 2; i++ {
		g.PlayerHand = append(g.PlayerHand, g.Deck.mustDraw())
		g.OpponentHand = append(g.OpponentHand, g.Deck.mustDraw())
	}
	pNat := isNatural(g.PlayerHand)
	oNat := isNatural(g.OpponentHand)
	switch {
	case pNat && oNat:
		g.finish(WinPush)
	case pNat:
		g.finish(WinPlayer)
	case oNat:
		g.finish(WinOpponent)
	}
	return g
}

// HandValue totals a blackjack hand. Face cards count 10, aces count 11
// until the total busts, then drop to 1 one at a time. soft reports whether
// an ace is still counted as 11.
func HandValue(cards []Card) (total int, soft bool) {
	aces := 0
	for _, c := range cards {
		switch {
		case c.Rank == 14:
			aces++
			total += 11
		case c.Rank >= 11:
			total += 10
		default:
			total += c.Rank
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

func isNatural(cards []Card) bool {
	total, _ := HandValue(cards)
	return len(cards) == 2 && total == 21
}

// Hit draws one card for the player. Busting ends the hand for the opponent.
func (g *Blackjack) Hit() string {
	if g.Finished {
		return "hand finished"
	}
	if g.Turn != Player {
		return "out of turn"
	}
	g.PlayerHand = append(g.PlayerHand, g.Deck.mustDraw())
	if total, _ := HandValue(g.PlayerHand); total > 21 {
		g.finish(WinOpponent)
		return "bust"
	}
	return "hit"
}

// Stand passes the turn to the opponent. It never resolves by itself.
func (g *Blackjack) Stand() string {
	if g.Finished {
		return "hand finished"
	}
	if g.Turn != Player {
		return "out of turn"
	}
	g.Turn = Opponent
	return "stand"
}

// OpponentHit draws one card for the opponent. Busting ends the hand for
// the player.
func (g *Blackjack) OpponentHit() string {
	if g.Finished {
		return "hand finished"
	}
	if g.Turn != Opponent {
		return "out of turn"
	}
	g.OpponentHand = append(g.OpponentHand, g.Deck.mustDraw())
	if total, _ := HandValue(g.OpponentHand); total > 21 {
		g.finish(WinPlayer)
		return "bust"
	}
	return "hit"
}

// OpponentStand resolves the hand by comparing totals.
func (g *Blackjack) OpponentStand() string {
	if g.Finished {
		return "hand finished"
	}
	if g.Turn != Opponent {
		return "out of turn"
	}
	g.resolve()
	return "stand"
}

// OpponentPlayOut runs the fixed house line: hit below 17, then stand.
func (g *Blackjack) OpponentPlayOut() string {
	if g.Finished {
		return "hand finished"
	}
	if g.Turn != Opponent {
		return "out of turn"
	}
	for {
		total, _ := HandValue(g.OpponentHand)
		if total >= 17 {
			break
		}
		g.OpponentHand = append(g.OpponentHand, g.Deck.mustDraw())
		if total, _ := HandValue(g.OpponentHand); total > 21 {
			g.finish(WinPlayer)
			return "bust"
		}
	}
	g.resolve()
	return "stand"
}

func (g *Blackjack) resolve() {
	p, _ := HandValue(g.PlayerHand)
	o, _ := HandValue(g.OpponentHand)
	switch {
	case p > o:
		g.finish(WinPlayer)
	case o > p:
		g.finish(WinOpponent)
	default:
		g.finish(WinPush)
	}
}

func (g *Blackjack) finish(winner string) {
	g.Finished = true
	g.Winner = winner
}

// Result reports the finished hand, or nil while it is still live.
func (g *Blackjack) Result() *Result {
	if !g.Finished {
		return nil
	}
	p, _ := HandValue(g.PlayerHand)
	o, _ := HandValue(g.OpponentHand)
	outcome := WinPush
	switch g.Winner {
	case WinPlayer:
		outcome = "win"
	case WinOpponent:
		outcome = "loss"
	}
	return &Result{
		Game:          "blackjack",
		Outcome:       outcome,
		PlayerScore:   p,
		OpponentScore: o,
		Rounds:        1,
	}
}
