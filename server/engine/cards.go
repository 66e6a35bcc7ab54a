package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrEmptyDeck is returned by Draw when no cards remain.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is a shuffled 52-card deck. Cards leave through Draw and never return.
type Deck struct {
	cards []Card
}

func seededRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewDeck builds all 52 (suit,rank) pairs and shuffles them.
// Seed 0 means "seed from the clock"; tests pass a fixed seed.
func NewDeck(seed int64) *Deck {
	return newDeck(seededRand(seed))
}

func newDeck(r *rand.Rand) *Deck {
	var cards []Card
	for s := 0; s < 4; s++ {
		for rnk := 2; rnk <= 14; rnk++ {
			cards = append(cards, Card{Rank: rnk, Suit: "cdhs"[s]})
		}
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return &Deck{cards: cards}
}

func (d *Deck) Len() int { return len(d.cards) }

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// mustDraw is for engine flows where the deck provably cannot run out
// (a heads-up hand never consumes 52 cards). Running out there means the
// deck was corrupted, so panic rather than limp on.
func (d *Deck) mustDraw() Card {
	c, err := d.Draw()
	if err != nil {
		panic("engine: draw from empty deck")
	}
	return c
}

func (c Card) String() string {
	ranks := "  23456789TJQKA"
	return fmt.Sprintf("%c%c", ranks[c.Rank], c.Suit)
}

// ParseCard reads the two-character form produced by Card.String, e.g. "As", "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("bad card %q", s)
	}
	var rank int
	switch s[0] {
	case 'A':
		rank = 14
	case 'K':
		rank = 13
	case 'Q':
		rank = 12
	case 'J':
		rank = 11
	case 'T':
		rank = 10
	default:
		if s[0] >= '2' && s[0] <= '9' {
			rank = int(s[0] - '0')
		}
	}
	if rank == 0 {
		return Card{}, fmt.Errorf("bad rank in %q", s)
	}
	switch s[1] {
	case 'c', 'd', 'h', 's':
	default:
		return Card{}, fmt.Errorf("bad suit in %q", s)
	}
	return Card{Rank: rank, Suit: s[1]}, nil
}
