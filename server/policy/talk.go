package policy

import "math/rand"

// Canned table talk, one pool per event. The strategy layer is scripted, so
// the chatter is too. Lines stay well under the 120-char comment cap.
var talkPools = map[string][]string{
	"raise": {
		"Think you can handle this?",
		"Let's make it interesting.",
		"Pressure's on.",
	},
	"bluff": {
		"Your move, champ.",
		"I dare you.",
	},
	"call": {
		"I'll see that bet.",
		"Keep them coming.",
		"Not scared yet.",
	},
	"check": {
		"Checking. Make your move.",
		"Free card. Enjoy it.",
	},
	"fold": {
		"Take it. Won't happen twice.",
		"I'll let you have this one.",
	},
	"hit": {
		"Watch and learn, rookie.",
		"Dealing myself some help.",
	},
	"stand": {
		"That's all I need.",
		"Standing. Beat that.",
	},
	"war": {
		"To war we go.",
		"Again! This is getting good.",
	},
	"player_wins": {
		"Lucky flip.",
		"Enjoy it while it lasts.",
	},
	"opponent_wins": {
		"Too easy.",
		"That's how it's done.",
	},
}

func pickTalk(rng *rand.Rand, event string) string {
	pool := talkPools[event]
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.Intn(len(pool))]
}

func (p *PokerPolicy) talk(event string) string     { return pickTalk(p.rng, event) }
func (b *BlackjackPolicy) talk(event string) string { return pickTalk(b.rng, event) }

// WarComment chats about a war round result: "war", "player_wins" or
// "opponent_wins".
func WarComment(rng *rand.Rand, result string) string { return pickTalk(rng, result) }
