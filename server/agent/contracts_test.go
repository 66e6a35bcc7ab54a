package agent

import (
	"strings"
	"testing"

	"ai-cardroom/server/engine"
)

func TestParseActionFindsJSONInProse(t *testing.T) {
	raw := "Sure thing!\n```json\n{\"action\": \"raise\", \"raise_amount\": 60, \"comment\": \"pay up\"}\n```"
	a, err := ParseAction(raw)
	if err != nil {
		t.Fatalf("ParseAction returned error: %v", err)
	}
	if a.Action != "raise" || a.Amount == nil || *a.Amount != 60 {
		t.Fatalf("unexpected action %+v", a)
	}
	if a.Comment != "pay up" {
		t.Fatalf("unexpected comment %q", a.Comment)
	}
}

func TestParseActionRejectsJunk(t *testing.T) {
	if _, err := ParseAction("I fold I guess"); err == nil {
		t.Fatal("expected error for text without JSON")
	}
	if _, err := ParseAction("{action: fold}"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseCommandShorthand(t *testing.T) {
	a := ParseCommand("  R 50 ")
	if a.Action != "raise" || a.Amount == nil || *a.Amount != 50 {
		t.Fatalf("unexpected %+v", a)
	}
	if ParseCommand("h").Action != "hit" {
		t.Fatal("h should expand to hit")
	}
	if ParseCommand("").Action != "" {
		t.Fatal("empty line should produce an empty action")
	}
}

func TestNormalizeCoercions(t *testing.T) {
	owing := PokerObservation{ToCall: 40, Blinds: map[string]int{"sb": 10, "bb": 20}}
	free := PokerObservation{ToCall: 0, Blinds: map[string]int{"sb": 10, "bb": 20}}

	if got := Normalize(owing, ActionOut{Action: "check"}); got.Kind != engine.Call {
		t.Fatalf("check owing chips should call, got %q", got.Kind)
	}
	if got := Normalize(free, ActionOut{Action: "call"}); got.Kind != engine.Check {
		t.Fatalf("call owing nothing should check, got %q", got.Kind)
	}
	if got := Normalize(free, ActionOut{Action: "BET", Amount: intp(35)}); got.Kind != engine.Raise || got.Amount != 35 {
		t.Fatalf("bet should play as raise, got %+v", got)
	}
	if got := Normalize(free, ActionOut{Action: "raise"}); got.Kind != engine.Raise || got.Amount != 40 {
		t.Fatalf("raise without amount should raise two big blinds, got %+v", got)
	}
	if got := Normalize(free, ActionOut{Action: "shove"}); got.Kind != engine.AllIn {
		t.Fatalf("shove should go all in, got %q", got.Kind)
	}
	if got := Normalize(owing, ActionOut{Action: "interpretive dance"}); got.Kind != engine.Call {
		t.Fatalf("unknown verb owing chips should call, got %q", got.Kind)
	}
	if got := Normalize(free, ActionOut{}); got.Kind != engine.Check {
		t.Fatalf("empty decision owing nothing should check, got %q", got.Kind)
	}
	if got := Normalize(owing, ActionOut{Action: "fold"}); got.Kind != engine.Fold {
		t.Fatalf("fold should pass through, got %q", got.Kind)
	}
}

func TestNormalizeBlackjackDefaultsToStand(t *testing.T) {
	if got := NormalizeBlackjack(ActionOut{Action: " HIT "}); got != "hit" {
		t.Fatalf("got %q", got)
	}
	for _, verb := range []string{"stand", "double", "split", "", "🃏"} {
		if got := NormalizeBlackjack(ActionOut{Action: verb}); got != "stand" {
			t.Fatalf("%q should stand, got %q", verb, got)
		}
	}
}

func TestCleanCommentTruncates(t *testing.T) {
	long := strings.Repeat("x", 200)
	if got := CleanComment("  " + long + "  "); len(got) != 120 {
		t.Fatalf("expected 120 chars, got %d", len(got))
	}
	if got := CleanComment(" fine "); got != "fine" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildPokerObservation(t *testing.T) {
	g := engine.NewPoker(engine.Config{SB: 10, BB: 20, StartStack: 1000})
	g.NewHand(7)
	o := BuildPokerObservation(g, engine.Player)
	if o.Game != "poker" || o.Seat != "player" || o.Street != "preflop" {
		t.Fatalf("unexpected observation %+v", o)
	}
	if len(o.HoleCards) != 2 || len(o.Board) != 0 {
		t.Fatalf("cards: hole=%v board=%v", o.HoleCards, o.Board)
	}
	// First hand: the player holds the button, owes the half blind.
	if !o.Dealer {
		t.Fatal("player should hold the button on the first hand")
	}
	if o.ToCall != 10 {
		t.Fatalf("to_call=%d", o.ToCall)
	}
	if o.Stacks["hero"] != 990 || o.Stacks["villain"] != 980 {
		t.Fatalf("stacks %v", o.Stacks)
	}
	if o.Blinds["sb"] != 10 || o.Blinds["bb"] != 20 {
		t.Fatalf("blinds %v", o.Blinds)
	}
	if o.MinRaise != 20 || o.MaxRaise != 980 {
		t.Fatalf("raise bounds %d..%d", o.MinRaise, o.MaxRaise)
	}
	if len(o.Legal) == 0 {
		t.Fatalf("legal actions empty")
	}
}

func TestBuildBlackjackObservationSeats(t *testing.T) {
	g := engine.NewBlackjack(11)
	house := BuildBlackjackObservation(g, engine.Opponent)
	if house.Game != "blackjack" || house.Seat != "opponent" {
		t.Fatalf("unexpected observation %+v", house)
	}
	if len(house.YourCards) != 2 || len(house.PlayerCards) != 2 {
		t.Fatalf("house view cards %v / %v", house.YourCards, house.PlayerCards)
	}
	if house.Upcard != "" {
		t.Fatalf("house view has nothing hidden, got upcard %q", house.Upcard)
	}
	if house.YourTotal < 4 || house.YourTotal > 21 {
		t.Fatalf("implausible total %d", house.YourTotal)
	}

	player := BuildBlackjackObservation(g, engine.Player)
	if player.Upcard != g.OpponentHand[0].String() {
		t.Fatalf("player view upcard %q, want %q", player.Upcard, g.OpponentHand[0].String())
	}
	if len(player.PlayerCards) != 0 {
		t.Fatalf("player view should not mirror its own hand, got %v", player.PlayerCards)
	}
	if player.DeckLeft != g.Deck.Len() {
		t.Fatalf("deck_left %d, want %d", player.DeckLeft, g.Deck.Len())
	}
	if !g.Finished && g.Turn == engine.Player && len(player.Legal) != 2 {
		t.Fatalf("player to act should see hit/stand, got %v", player.Legal)
	}
}

func intp(n int) *int { return &n }
