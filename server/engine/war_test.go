package engine

import "testing"

func TestNewWarSplitsDeckEvenly(t *testing.T) {
	w := NewWar(5)
	if len(w.PlayerPile) != 26 || len(w.OpponentPile) != 26 {
		t.Fatalf("piles %d / %d", len(w.PlayerPile), len(w.OpponentPile))
	}
	if w.CardsInPlay() != 52 {
		t.Fatalf("cards in play %d", w.CardsInPlay())
	}
	if w.Finished || w.InWar {
		t.Fatal("fresh game should be live and not at war")
	}
}

func TestWarHigherRankTakesBattle(t *testing.T) {
	w := &War{
		PlayerPile:   cards(t, "As 5c"),
		OpponentPile: cards(t, "2c 7d"),
		rng:          seededRand(1),
	}
	if res := w.PlayRound(); res != "player_wins" {
		t.Fatalf("round result %q", res)
	}
	if len(w.PlayerBattle) != 1 || w.PlayerBattle[0].String() != "As" {
		t.Fatalf("player battle card %v", w.PlayerBattle)
	}
	if len(w.OpponentBattle) != 1 || w.OpponentBattle[0].String() != "2c" {
		t.Fatalf("opponent battle card %v", w.OpponentBattle)
	}
	if len(w.PlayerPile) != 3 || len(w.OpponentPile) != 1 {
		t.Fatalf("piles after battle %d / %d", len(w.PlayerPile), len(w.OpponentPile))
	}
	if w.CardsInPlay() != 4 {
		t.Fatalf("cards in play %d", w.CardsInPlay())
	}
}

func TestWarSingleCardEndgame(t *testing.T) {
	w := &War{
		PlayerPile:   cards(t, "As"),
		OpponentPile: cards(t, "2c"),
		rng:          seededRand(2),
	}
	if res := w.PlayRound(); res != "player_wins" {
		t.Fatalf("round result %q", res)
	}
	if !w.Finished || w.Winner != WinPlayer {
		t.Fatalf("finished=%v winner=%q", w.Finished, w.Winner)
	}
	r := w.Result()
	if r == nil || r.Outcome != "win" || r.PlayerScore != 2 || r.OpponentScore != 0 || r.Rounds != 1 {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestWarTieEscalatesAndResolves(t *testing.T) {
	w := &War{
		PlayerPile:   cards(t, "5c 2c 3c 4c 6h"),
		OpponentPile: cards(t, "5d 2d 3d 4d 7s"),
		rng:          seededRand(3),
	}
	if res := w.PlayRound(); res != "war" {
		t.Fatalf("tie should declare war, got %q", res)
	}
	if !w.InWar || len(w.WarPot) != 8 {
		t.Fatalf("war pot should hold 2 battle + 6 staked cards, got %d (inWar=%v)", len(w.WarPot), w.InWar)
	}
	if len(w.PlayerPile) != 1 || len(w.OpponentPile) != 1 {
		t.Fatalf("piles during war %d / %d", len(w.PlayerPile), len(w.OpponentPile))
	}
	if w.CardsInPlay() != 10 {
		t.Fatalf("cards in play %d", w.CardsInPlay())
	}
	if res := w.PlayRound(); res != "opponent_wins" {
		t.Fatalf("war resolution %q", res)
	}
	if !w.Finished || w.Winner != WinOpponent {
		t.Fatalf("player emptied out, finished=%v winner=%q", w.Finished, w.Winner)
	}
	r := w.Result()
	if r == nil || r.Outcome != "loss" || r.PlayerScore != 0 || r.OpponentScore != 10 || r.Rounds != 2 {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestWarShortStakesThenEmptyPileLoses(t *testing.T) {
	w := &War{
		PlayerPile:   cards(t, "5c 9h"),
		OpponentPile: cards(t, "5d 2d 3d 4d 9s"),
		rng:          seededRand(4),
	}
	if res := w.PlayRound(); res != "war" {
		t.Fatalf("round result %q", res)
	}
	// Player staked its single remaining card; the opponent staked three.
	if len(w.WarPot) != 6 || len(w.PlayerPile) != 0 || len(w.OpponentPile) != 1 {
		t.Fatalf("pot=%d piles %d / %d", len(w.WarPot), len(w.PlayerPile), len(w.OpponentPile))
	}
	if w.Finished {
		t.Fatal("running out during a war must not end the game mid-round")
	}
	if res := w.PlayRound(); res != "game_over" {
		t.Fatalf("expected game_over, got %q", res)
	}
	if w.Winner != WinOpponent {
		t.Fatalf("winner=%q", w.Winner)
	}
	if w.CardsInPlay() != 7 {
		t.Fatalf("cards in play %d", w.CardsInPlay())
	}
}

func TestWarConservationAndTermination(t *testing.T) {
	for _, seed := range []int64{11, 23, 77} {
		w := NewWar(seed)
		const maxRounds = 500000
		rounds := 0
		for !w.Finished && rounds < maxRounds {
			w.PlayRound()
			rounds++
			if w.CardsInPlay() != 52 {
				t.Fatalf("seed %d round %d: cards in play %d", seed, rounds, w.CardsInPlay())
			}
		}
		if !w.Finished {
			t.Fatalf("seed %d: game did not finish in %d rounds", seed, maxRounds)
		}
		if w.Winner != WinPlayer && w.Winner != WinOpponent {
			t.Fatalf("seed %d: winner %q", seed, w.Winner)
		}
	}
}

func TestWarRoundAfterGameOverIsNoOp(t *testing.T) {
	w := &War{
		PlayerPile:   cards(t, "As"),
		OpponentPile: cards(t, "2c"),
		rng:          seededRand(6),
	}
	w.PlayRound()
	rounds := w.Rounds
	if res := w.PlayRound(); res != "game_over" {
		t.Fatalf("expected game_over, got %q", res)
	}
	if w.Rounds != rounds {
		t.Fatal("finished game must not keep counting rounds")
	}
}
