package engine

import "testing"

// deckOf builds a deck that deals the given cards in order.
func deckOf(t *testing.T, list string) *Deck {
	t.Helper()
	return &Deck{cards: cards(t, list)}
}

func TestHandValueSoftAces(t *testing.T) {
	cases := []struct {
		hand  string
		total int
		soft  bool
	}{
		{"Ah As 9c", 21, true},
		{"Ah As Ad 8c", 21, true},
		{"Kh Qc", 20, false},
		{"Th Td 5c", 25, false},
		{"Ah 6c", 17, true},
		{"Ah 6c Td", 17, false},
		{"Ah Kd", 21, true},
	}
	for _, c := range cases {
		total, soft := HandValue(cards(t, c.hand))
		if total != c.total || soft != c.soft {
			t.Fatalf("%q: got (%d, %v), want (%d, %v)", c.hand, total, soft, c.total, c.soft)
		}
	}
}

func TestBlackjackDealsAlternating(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "5c 9h 7d 8s Th"))
	if g.PlayerHand[0].String() != "5c" || g.PlayerHand[1].String() != "7d" {
		t.Fatalf("player hand %v", g.PlayerHand)
	}
	if g.OpponentHand[0].String() != "9h" || g.OpponentHand[1].String() != "8s" {
		t.Fatalf("opponent hand %v", g.OpponentHand)
	}
	if g.Finished || g.Turn != Player {
		t.Fatalf("fresh hand should be the player's turn, finished=%v", g.Finished)
	}
}

func TestBlackjackPlayerNaturalWinsInstantly(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "Ah 9c Kd 8d"))
	if !g.Finished || g.Winner != WinPlayer {
		t.Fatalf("expected instant player win, finished=%v winner=%q", g.Finished, g.Winner)
	}
}

func TestBlackjackDoubleNaturalPushes(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "Ah As Kd Qc"))
	if !g.Finished || g.Winner != WinPush {
		t.Fatalf("expected push, finished=%v winner=%q", g.Finished, g.Winner)
	}
	r := g.Result()
	if r == nil || r.Outcome != "push" || r.PlayerScore != 21 || r.OpponentScore != 21 {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestBlackjackOpponentNaturalWinsInstantly(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "9c Ah 8d Kc"))
	if !g.Finished || g.Winner != WinOpponent {
		t.Fatalf("expected instant opponent win, finished=%v winner=%q", g.Finished, g.Winner)
	}
}

func TestBlackjackHitBusts(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "5c 9h 7d 8s 2c Th"))
	if res := g.Hit(); res != "hit" { // 5+7+2 = 14
		t.Fatalf("first hit: %q", res)
	}
	if res := g.Hit(); res != "bust" { // +10 = 24
		t.Fatalf("expected bust, got %q", res)
	}
	if !g.Finished || g.Winner != WinOpponent {
		t.Fatalf("bust should finish for the opponent, winner=%q", g.Winner)
	}
}

func TestBlackjackStandThenPlayOut(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "5c 9h 6d 5s Th 2c 3d"))
	g.Hit() // 5+6+10 = 21
	if res := g.Stand(); res != "stand" {
		t.Fatalf("stand: %q", res)
	}
	if g.Turn != Opponent {
		t.Fatalf("turn should pass to opponent, got %q", g.Turn)
	}
	if res := g.OpponentPlayOut(); res != "stand" {
		t.Fatalf("play out: %q", res)
	}
	// Opponent: 9+5 = 14, draws 2 (16), draws 3 (19), stands.
	if len(g.OpponentHand) != 4 {
		t.Fatalf("opponent should hold 4 cards, got %d", len(g.OpponentHand))
	}
	if !g.Finished || g.Winner != WinPlayer {
		t.Fatalf("21 beats 19, winner=%q", g.Winner)
	}
}

func TestBlackjackPlayOutBusts(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "Kc Th Qd 6s 9d"))
	g.Stand()
	if res := g.OpponentPlayOut(); res != "bust" {
		t.Fatalf("expected bust, got %q", res)
	}
	if g.Winner != WinPlayer {
		t.Fatalf("opponent bust should award player, winner=%q", g.Winner)
	}
}

func TestBlackjackPlayOutStandsOnSoftSeventeen(t *testing.T) {
	// Opponent holds Ah 6s: soft 17, the fixed house line stands.
	g := newBlackjackWithDeck(deckOf(t, "Kc Ah Qd 6s"))
	g.Stand()
	g.OpponentPlayOut()
	if len(g.OpponentHand) != 2 {
		t.Fatalf("house line should stand on soft 17, drew to %d cards", len(g.OpponentHand))
	}
	if g.Winner != WinPlayer {
		t.Fatalf("20 beats 17, winner=%q", g.Winner)
	}
}

func TestBlackjackOpponentHitAndStand(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "Kc 9h Qd 5s 6c"))
	g.Stand()
	if res := g.OpponentHit(); res != "hit" {
		t.Fatalf("opponent hit: %q", res)
	}
	// 9+5+6 = 20: push against the player's 20.
	if res := g.OpponentStand(); res != "stand" {
		t.Fatalf("opponent stand: %q", res)
	}
	if g.Winner != WinPush {
		t.Fatalf("expected push, winner=%q", g.Winner)
	}
}

func TestBlackjackTerminalActionsAreNoOps(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "Ah 9c Kd 8d 2c"))
	if !g.Finished {
		t.Fatal("natural should finish the hand")
	}
	pLen, oLen := len(g.PlayerHand), len(g.OpponentHand)
	for _, res := range []string{g.Hit(), g.Stand(), g.OpponentHit(), g.OpponentStand(), g.OpponentPlayOut()} {
		if res != "hand finished" {
			t.Fatalf("expected no-op on finished hand, got %q", res)
		}
	}
	if len(g.PlayerHand) != pLen || len(g.OpponentHand) != oLen {
		t.Fatal("finished hand must not change")
	}
}

func TestBlackjackOutOfTurnIsNoOp(t *testing.T) {
	g := newBlackjackWithDeck(deckOf(t, "5c 9h 7d 8s Th"))
	if res := g.OpponentHit(); res != "out of turn" {
		t.Fatalf("opponent acting on player turn: %q", res)
	}
	if res := g.OpponentStand(); res != "out of turn" {
		t.Fatalf("opponent standing on player turn: %q", res)
	}
	if g.Finished {
		t.Fatal("out-of-turn stand must not resolve the hand")
	}
	g.Stand()
	if res := g.Hit(); res != "out of turn" {
		t.Fatalf("player acting on opponent turn: %q", res)
	}
	if g.Result() != nil {
		t.Fatal("result should be nil while live")
	}
}
