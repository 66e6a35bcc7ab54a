package agent

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ai-cardroom/server/engine"
)

// PokerObservation is the state snapshot handed to a strategy component
// before it acts. Hero means the seat about to act. MinRaise/MaxRaise bound
// the additional chips over the call a raise may add.
type PokerObservation struct {
	Game      string         `json:"game"`
	Seat      string         `json:"seat"` // "player" | "opponent"
	Street    string         `json:"street"`
	Dealer    bool           `json:"dealer"`
	HoleCards []string       `json:"hole_cards"` // e.g. ["As","Kd"]
	Board     []string       `json:"board"`      // 0..5 cards
	Stacks    map[string]int `json:"stacks"`     // {hero, villain} chips behind
	Blinds    map[string]int `json:"blinds"`     // {sb, bb}
	Pot       int            `json:"pot"`
	ToCall    int            `json:"to_call"`
	MinRaise  int            `json:"min_raise"`
	MaxRaise  int            `json:"max_raise"`
	Legal     []string       `json:"legal_actions"`
}

// BlackjackObservation describes the table from one seat's view. The house
// seat sees the player's full hand; the player seat sees only the house
// upcard until the reveal.
type BlackjackObservation struct {
	Game        string   `json:"game"`
	Seat        string   `json:"seat"`
	YourTotal   int      `json:"your_total"`
	YourSoft    bool     `json:"your_soft"`
	YourCards   []string `json:"your_cards"`
	PlayerTotal int      `json:"player_total,omitempty"`
	PlayerCards []string `json:"player_cards,omitempty"`
	Upcard      string   `json:"upcard,omitempty"`
	DeckLeft    int      `json:"deck_left"`
	Legal       []string `json:"legal_moves"`
	Finished    bool     `json:"finished"`
}

// ActionOut is a decision as it arrives from a strategy component or a
// human: a verb, an optional raise amount and optional table talk.
type ActionOut struct {
	Action  string `json:"action"`
	Amount  *int   `json:"raise_amount,omitempty"` // additional chips over the call
	Comment string `json:"comment,omitempty"`      // <=120 chars
}

// BuildPokerObservation converts engine state into the snapshot a strategy
// sees for the given seat.
func BuildPokerObservation(g *engine.Poker, seat engine.Seat) PokerObservation {
	hero, villain := g.Player, g.Opponent
	if seat == engine.Opponent {
		hero, villain = g.Opponent, g.Player
	}
	legal := []string{}
	for _, k := range g.Legal(seat) {
		legal = append(legal, string(k))
	}
	toCall := g.ToCall(seat)
	maxRaise := hero.Chips - toCall
	if maxRaise < 0 {
		maxRaise = 0
	}
	minRaise := g.Cfg.BB
	if minRaise > maxRaise {
		minRaise = maxRaise
	}
	return PokerObservation{
		Game:      "poker",
		Seat:      string(seat),
		Street:    g.Street,
		Dealer:    g.DealerIsPlayer == (seat == engine.Player),
		HoleCards: cardsToStr(hero.Hole),
		Board:     cardsToStr(g.Board),
		Stacks:    map[string]int{"hero": hero.Chips, "villain": villain.Chips},
		Blinds:    map[string]int{"sb": g.Cfg.SB, "bb": g.Cfg.BB},
		Pot:       g.Pot,
		ToCall:    toCall,
		MinRaise:  minRaise,
		MaxRaise:  maxRaise,
		Legal:     legal,
	}
}

func BuildBlackjackObservation(g *engine.Blackjack, seat engine.Seat) BlackjackObservation {
	o := BlackjackObservation{
		Game:     "blackjack",
		Seat:     string(seat),
		DeckLeft: g.Deck.Len(),
		Finished: g.Finished,
	}
	if !g.Finished && g.Turn == seat {
		o.Legal = []string{"hit", "stand"}
	}
	if seat == engine.Opponent {
		o.YourTotal, o.YourSoft = engine.HandValue(g.OpponentHand)
		o.YourCards = cardsToStr(g.OpponentHand)
		o.PlayerTotal, _ = engine.HandValue(g.PlayerHand)
		o.PlayerCards = cardsToStr(g.PlayerHand)
		return o
	}
	o.YourTotal, o.YourSoft = engine.HandValue(g.PlayerHand)
	o.YourCards = cardsToStr(g.PlayerHand)
	if len(g.OpponentHand) > 0 {
		o.Upcard = g.OpponentHand[0].String()
	}
	return o
}

func cardsToStr(cs []engine.Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

// ParseAction pulls the first JSON object out of raw text and decodes it.
// Decision text often wraps the JSON in prose or code fences, so scan for
// braces rather than demanding a clean document.
func ParseAction(raw string) (ActionOut, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ActionOut{}, fmt.Errorf("no JSON object in %q", raw)
	}
	var a ActionOut
	if err := json.Unmarshal([]byte(raw[start:end+1]), &a); err != nil {
		return ActionOut{}, fmt.Errorf("decode action: %w", err)
	}
	a.Comment = CleanComment(a.Comment)
	return a, nil
}

// ParseCommand reads an interactive line like "call", "raise 50" or "hit".
// Single letters expand to the obvious verb.
func ParseCommand(line string) ActionOut {
	f := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(f) == 0 {
		return ActionOut{}
	}
	out := ActionOut{Action: f[0]}
	switch f[0] {
	case "h":
		out.Action = "hit"
	case "s":
		out.Action = "stand"
	case "c":
		out.Action = "call"
	case "k":
		out.Action = "check"
	case "f":
		out.Action = "fold"
	case "r":
		out.Action = "raise"
	case "a":
		out.Action = "all_in"
	}
	if len(f) > 1 {
		if n, err := strconv.Atoi(f[1]); err == nil {
			out.Amount = &n
		}
	}
	return out
}

// Normalize turns a raw poker decision into an engine action, substituting
// conservative defaults instead of failing: a check that owes chips calls, a
// call owing nothing checks, "bet" plays as raise, a raise without an amount
// raises two big blinds, and an unrecognized verb calls when owed and checks
// when free. The engine applies its own coercions on top; this layer only
// has to guarantee something legal comes out.
func Normalize(o PokerObservation, a ActionOut) engine.Action {
	verb := strings.ToLower(strings.TrimSpace(a.Action))
	switch verb {
	case "bet":
		verb = "raise"
	case "allin", "all-in", "all in", "shove":
		verb = "all_in"
	}
	switch verb {
	case "fold":
		return engine.Action{Kind: engine.Fold}
	case "check":
		if o.ToCall > 0 {
			return engine.Action{Kind: engine.Call}
		}
		return engine.Action{Kind: engine.Check}
	case "call":
		if o.ToCall == 0 {
			return engine.Action{Kind: engine.Check}
		}
		return engine.Action{Kind: engine.Call}
	case "raise":
		amt := 2 * o.Blinds["bb"]
		if a.Amount != nil && *a.Amount > 0 {
			amt = *a.Amount
		}
		return engine.Action{Kind: engine.Raise, Amount: amt}
	case "all_in":
		return engine.Action{Kind: engine.AllIn}
	}
	if o.ToCall > 0 {
		return engine.Action{Kind: engine.Call}
	}
	return engine.Action{Kind: engine.Check}
}

// NormalizeBlackjack maps a raw decision onto "hit" or "stand". Anything
// unrecognized stands, which is always legal.
func NormalizeBlackjack(a ActionOut) string {
	if strings.ToLower(strings.TrimSpace(a.Action)) == "hit" {
		return "hit"
	}
	return "stand"
}

// CleanComment trims table talk and caps it at 120 characters.
func CleanComment(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
