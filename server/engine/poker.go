package engine

import "fmt"

// Config carries the table stakes for a poker session.
type Config struct{ SB, BB, StartStack int }

// PokerSide is one seat's chips and per-hand betting state.
type PokerSide struct {
	Hole   []Card
	Chips  int
	Bet    int
	Folded bool
	Acted  bool
}

// Poker is a heads-up no-limit hold'em session. Chips and the dealer button
// persist across hands; everything else resets in NewHand. One caller drives
// it turn by turn; illegal-but-plausible requests are coerced to the nearest
// legal action, never rejected with an error.
type Poker struct {
	Cfg   Config
	Deck  *Deck
	Board []Card

	Player   PokerSide
	Opponent PokerSide

	Pot            int
	CurBet         int
	DealerIsPlayer bool

	Street      string // "preflop", "flop", "turn", "river", "showdown"
	Turn        Seat
	Finished    bool
	Winner      string // "player", "opponent" or "tie"
	WinningHand string
}

func NewPoker(cfg Config) *Poker {
	return &Poker{
		Cfg:      cfg,
		Player:   PokerSide{Chips: cfg.StartStack},
		Opponent: PokerSide{Chips: cfg.StartStack},
	}
}

// NewHand flips the dealer button, reshuffles, deals two hole cards to each
// seat and posts the blinds. The dealer posts the small blind and acts first
// preflop.
func (g *Poker) NewHand(seed int64) {
	g.startHand(NewDeck(seed))
}

func (g *Poker) startHand(d *Deck) {
	g.Deck = d
	g.Board = nil
	g.Pot, g.CurBet = 0, 0
	g.Street = "preflop"
	g.Finished = false
	g.Winner, g.WinningHand = "", ""
	g.DealerIsPlayer = !g.DealerIsPlayer

	g.Player = PokerSide{Chips: g.Player.Chips, Hole: []Card{g.Deck.mustDraw(), g.Deck.mustDraw()}}
	g.Opponent = PokerSide{Chips: g.Opponent.Chips, Hole: []Card{g.Deck.mustDraw(), g.Deck.mustDraw()}}

	dealer, nonDealer := g.seats()
	g.pay(dealer, g.Cfg.SB)
	g.pay(nonDealer, g.Cfg.BB)
	g.CurBet = g.Cfg.BB
	// Posting the big blind counts as having acted for round completion.
	g.side(nonDealer).Acted = true
	g.Turn = dealer
}

func (g *Poker) side(s Seat) *PokerSide {
	if s == Player {
		return &g.Player
	}
	return &g.Opponent
}

func (g *Poker) seats() (dealer, nonDealer Seat) {
	if g.DealerIsPlayer {
		return Player, Opponent
	}
	return Opponent, Player
}

// pay moves amt chips from the seat into the pot, capped by the stack.
func (g *Poker) pay(seat Seat, amt int) int {
	s := g.side(seat)
	if amt > s.Chips {
		amt = s.Chips
	}
	if amt < 0 {
		amt = 0
	}
	s.Chips -= amt
	s.Bet += amt
	g.Pot += amt
	return amt
}

// ToCall is the amount the seat owes to match the current bet.
func (g *Poker) ToCall(seat Seat) int {
	t := g.CurBet - g.side(seat).Bet
	if t < 0 {
		t = 0
	}
	return t
}

// Legal lists the sensible verbs for the seat. The engine coerces anything
// else, so this is advisory, mainly for building strategy prompts.
func (g *Poker) Legal(seat Seat) []ActionKind {
	if g.Finished || seat != g.Turn {
		return nil
	}
	var out []ActionKind
	if g.ToCall(seat) == 0 {
		out = append(out, Check)
	} else {
		out = append(out, Fold, Call)
	}
	if g.Player.Chips > 0 && g.Opponent.Chips > 0 {
		out = append(out, Raise, AllIn)
	}
	return out
}

// Act applies one betting decision for the seat and returns what actually
// happened: "fold", "check", "call N", "raise to N", "all in N" or a no-op
// explanation. A check that owes chips becomes a call; a raise below one big
// blind is lifted to it; an unknown verb plays as a call.
func (g *Poker) Act(seat Seat, a Action) string {
	if g.Finished {
		return "hand finished"
	}
	if seat != g.Turn {
		return "out of turn"
	}
	s := g.side(seat)
	owed := g.ToCall(seat)

	var res string
	switch a.Kind {
	case Fold:
		s.Folded = true
		g.finishFold(other(seat))
		return "fold"
	case Check:
		if owed > 0 {
			res = fmt.Sprintf("call %d", g.pay(seat, owed))
		} else {
			res = "check"
		}
		s.Acted = true
	case Call:
		res = fmt.Sprintf("call %d", g.pay(seat, owed))
		s.Acted = true
	case Raise:
		amt := a.Amount
		if amt < g.Cfg.BB {
			amt = g.Cfg.BB // raise floor: one big blind over the call
		}
		res = g.bump(seat, owed+amt)
	case AllIn:
		res = g.bump(seat, s.Chips)
	default:
		res = fmt.Sprintf("call %d", g.pay(seat, owed))
		s.Acted = true
	}
	g.advance()
	return res
}

// bump puts amount more chips in, capped by the stack. Topping the current
// bet reopens the action for the other seat; a short amount plays as a call
// that cannot be matched further.
func (g *Poker) bump(seat Seat, amount int) string {
	s := g.side(seat)
	if amount > s.Chips {
		amount = s.Chips
	}
	if amount <= 0 {
		s.Acted = true
		return "check"
	}
	g.pay(seat, amount)
	s.Acted = true
	if s.Bet > g.CurBet {
		g.CurBet = s.Bet
		g.side(other(seat)).Acted = false
		if s.Chips == 0 {
			return fmt.Sprintf("all in %d", s.Bet)
		}
		return fmt.Sprintf("raise to %d", s.Bet)
	}
	return fmt.Sprintf("call %d", amount)
}

func (g *Poker) advance() {
	if g.Finished {
		return
	}
	if g.roundDone() {
		g.nextStreet()
		return
	}
	g.Turn = other(g.Turn)
}

// A betting round ends when both seats have acted since the last bet change
// and the bets match. A bet matched as far as a short stack allows also
// closes the round; no further action is possible there.
func (g *Poker) roundDone() bool {
	if !g.Player.Acted || !g.Opponent.Acted {
		return false
	}
	if g.Player.Bet == g.Opponent.Bet {
		return true
	}
	return g.Player.Chips == 0 || g.Opponent.Chips == 0
}

func (g *Poker) nextStreet() {
	g.Player.Bet, g.Opponent.Bet = 0, 0
	g.Player.Acted, g.Opponent.Acted = false, false
	g.CurBet = 0
	switch g.Street {
	case "preflop":
		g.Deck.mustDraw() // burn
		g.Board = append(g.Board, g.Deck.mustDraw(), g.Deck.mustDraw(), g.Deck.mustDraw())
		g.Street = "flop"
	case "flop":
		g.Deck.mustDraw()
		g.Board = append(g.Board, g.Deck.mustDraw())
		g.Street = "turn"
	case "turn":
		g.Deck.mustDraw()
		g.Board = append(g.Board, g.Deck.mustDraw())
		g.Street = "river"
	case "river":
		g.showdown()
		return
	}
	_, nonDealer := g.seats()
	g.Turn = nonDealer // dealer acts last postflop
}

func (g *Poker) showdown() {
	g.Street = "showdown"
	winner, pName, oName := CompareHands(g.Player.Hole, g.Opponent.Hole, g.Board)
	switch winner {
	case WinPlayer:
		g.WinningHand = pName
		g.Player.Chips += g.Pot
	case WinOpponent:
		g.WinningHand = oName
		g.Opponent.Chips += g.Pot
	default:
		// Split pot in integer halves; an odd chip is dropped.
		g.WinningHand = pName
		g.Player.Chips += g.Pot / 2
		g.Opponent.Chips += g.Pot / 2
	}
	g.Pot = 0
	g.Finished = true
	g.Winner = winner
}

func (g *Poker) finishFold(winner Seat) {
	g.side(winner).Chips += g.Pot
	g.Pot = 0
	g.Finished = true
	g.Winner = string(winner)
}

// ResetChips restores both stacks to the configured starting stack. Drivers
// call it between hands once a seat is felted.
func (g *Poker) ResetChips() {
	g.Player.Chips = g.Cfg.StartStack
	g.Opponent.Chips = g.Cfg.StartStack
}

// Result reports the finished hand from the player's side, or nil while the
// hand is live. Scores are the chip counts after the pot is awarded.
func (g *Poker) Result() *Result {
	if !g.Finished {
		return nil
	}
	outcome := WinPush
	switch g.Winner {
	case WinPlayer:
		outcome = "win"
	case WinOpponent:
		outcome = "loss"
	}
	return &Result{
		Game:          "poker",
		Outcome:       outcome,
		PlayerScore:   g.Player.Chips,
		OpponentScore: g.Opponent.Chips,
		Rounds:        1,
	}
}
