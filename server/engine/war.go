package engine

import "math/rand"

// War is the escalation game: the full deck split into two piles, one battle
// per round, ties escalate into wars. No decisions, only PlayRound.
type War struct {
	PlayerPile   []Card
	OpponentPile []Card

	// Face-up cards of the current battle, for display.
	PlayerBattle   []Card
	OpponentBattle []Card

	// Cards at stake while a war is unresolved.
	WarPot []Card

	InWar      bool
	Finished   bool
	Winner     string // "player" or "opponent"
	LastResult string // "player_wins", "opponent_wins", "war" or "game_over"
	Rounds     int

	rng *rand.Rand
}

// NewWar shuffles a full deck and splits it evenly between the two piles.
func NewWar(seed int64) *War {
	r := seededRand(seed)
	d := newDeck(r)
	half := len(d.cards) / 2
	return &War{
		PlayerPile:   append([]Card{}, d.cards[:half]...),
		OpponentPile: append([]Card{}, d.cards[half:]...),
		rng:          r,
	}
}

// PlayRound runs one battle. An empty pile at the start of a round loses
// immediately, war pending or not: there is no card left to flip. A tie
// moves the battle cards into the war pot, stakes up to three face-down
// cards from each side and leaves the pot for the next round. Running out
// of cards while staking does not end the game mid-war; the next round's
// opening check settles it.
func (w *War) PlayRound() string {
	if w.Finished {
		return "game_over"
	}
	if len(w.PlayerPile) == 0 {
		w.finish(WinOpponent)
		return "game_over"
	}
	if len(w.OpponentPile) == 0 {
		w.finish(WinPlayer)
		return "game_over"
	}

	p := w.popPlayer()
	o := w.popOpponent()
	w.PlayerBattle = []Card{p}
	w.OpponentBattle = []Card{o}

	battle := append(append([]Card{}, w.WarPot...), p, o)
	w.WarPot = nil
	w.Rounds++

	switch {
	case p.Rank > o.Rank:
		w.collect(&w.PlayerPile, battle)
		w.InWar = false
		w.LastResult = "player_wins"
	case o.Rank > p.Rank:
		w.collect(&w.OpponentPile, battle)
		w.InWar = false
		w.LastResult = "opponent_wins"
	default:
		w.WarPot = battle
		w.InWar = true
		w.LastResult = "war"
		for i := 0; i < 3; i++ {
			if len(w.PlayerPile) > 0 {
				w.WarPot = append(w.WarPot, w.popPlayer())
			}
			if len(w.OpponentPile) > 0 {
				w.WarPot = append(w.WarPot, w.popOpponent())
			}
		}
	}

	if len(w.PlayerPile) == 0 && !w.InWar {
		w.finish(WinOpponent)
	} else if len(w.OpponentPile) == 0 && !w.InWar {
		w.finish(WinPlayer)
	}
	return w.LastResult
}

func (w *War) popPlayer() Card {
	c := w.PlayerPile[0]
	w.PlayerPile = w.PlayerPile[1:]
	return c
}

func (w *War) popOpponent() Card {
	c := w.OpponentPile[0]
	w.OpponentPile = w.OpponentPile[1:]
	return c
}

// collect shuffles the spoils onto the bottom of a pile. The order after a
// win doesn't matter for fairness, but shuffling stops cycles of the same
// cards meeting in the same order forever.
func (w *War) collect(pile *[]Card, cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := w.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	*pile = append(*pile, cards...)
}

func (w *War) finish(winner string) {
	w.Finished = true
	w.Winner = winner
}

// CardsInPlay totals every card the game tracks; it stays 52 for the whole
// game.
func (w *War) CardsInPlay() int {
	return len(w.PlayerPile) + len(w.OpponentPile) + len(w.WarPot)
}

// Result reports the finished game, or nil while piles still contest.
// Scores are the final pile sizes.
func (w *War) Result() *Result {
	if !w.Finished {
		return nil
	}
	outcome := "loss"
	if w.Winner == WinPlayer {
		outcome = "win"
	}
	return &Result{
		Game:          "war",
		Outcome:       outcome,
		PlayerScore:   len(w.PlayerPile),
		OpponentScore: len(w.OpponentPile),
		Rounds:        w.Rounds,
	}
}
