package engine

// Seat identifies a side of a heads-up game.
type Seat string

const (
	Player   Seat = "player"
	Opponent Seat = "opponent"
)

func other(s Seat) Seat {
	if s == Player {
		return Opponent
	}
	return Player
}

type ActionKind string

const (
	Fold  ActionKind = "fold"
	Check ActionKind = "check"
	Call  ActionKind = "call"
	Raise ActionKind = "raise"
	AllIn ActionKind = "all_in"
)

// Action is a betting decision supplied by a driver or strategy component.
// Amount is the additional raise over the call, not the total bet.
type Action struct {
	Kind   ActionKind `json:"action"`
	Amount int        `json:"raise_amount,omitempty"`
}

// Winner values shared by the three games.
const (
	WinPlayer   = "player"
	WinOpponent = "opponent"
	WinTie      = "tie"
	WinPush     = "push"
)

// Result is the final tuple a finished game emits, from the player's side.
type Result struct {
	Game          string `json:"game_type"`
	Outcome       string `json:"outcome"` // "win", "loss" or "push"
	PlayerScore   int    `json:"player_score"`
	OpponentScore int    `json:"opponent_score"`
	Rounds        int    `json:"rounds"`
}

type Card struct {
	Rank int
	Suit byte
} // e.g. "As" => rank 14, suit 's'
