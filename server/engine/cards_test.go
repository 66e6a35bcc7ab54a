package engine

import (
	"errors"
	"testing"
)

func TestNewDeckHasEverySuitRankPairOnce(t *testing.T) {
	d := NewDeck(42)
	if d.Len() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.Len())
	}
	seen := map[Card]bool{}
	for d.Len() > 0 {
		c, err := d.Draw()
		if err != nil {
			t.Fatalf("Draw returned error with cards remaining: %v", err)
		}
		if c.Rank < 2 || c.Rank > 14 {
			t.Fatalf("bad rank %d", c.Rank)
		}
		switch c.Suit {
		case 'c', 'd', 'h', 's':
		default:
			t.Fatalf("bad suit %q", c.Suit)
		}
		if seen[c] {
			t.Fatalf("duplicate card %s", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 distinct cards, got %d", len(seen))
	}
}

func TestNewDeckSameSeedSameOrder(t *testing.T) {
	a := NewDeck(7)
	b := NewDeck(7)
	for a.Len() > 0 {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			t.Fatalf("same seed diverged: %s vs %s", ca, cb)
		}
	}
}

func TestNewDeckDifferentSeedsShuffleDifferently(t *testing.T) {
	a := NewDeck(1)
	b := NewDeck(2)
	same := true
	for a.Len() > 0 {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			same = false
		}
	}
	if same {
		t.Fatal("seeds 1 and 2 produced identical orderings")
	}
}

func TestDrawFromEmptyDeck(t *testing.T) {
	d := NewDeck(3)
	for i := 0; i < 52; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("draw %d failed early: %v", i, err)
		}
	}
	if d.Len() != 0 {
		t.Fatalf("expected empty deck, got %d cards", d.Len())
	}
	if _, err := d.Draw(); !errors.Is(err, ErrEmptyDeck) {
		t.Fatalf("expected ErrEmptyDeck, got %v", err)
	}
}

func TestCardStringAndParse(t *testing.T) {
	for _, s := range []string{"As", "Td", "2c", "Kh", "9s", "Jd"} {
		c, err := ParseCard(s)
		if err != nil {
			t.Fatalf("ParseCard(%q) returned error: %v", s, err)
		}
		if got := c.String(); got != s {
			t.Fatalf("round trip %q -> %q", s, got)
		}
	}
	for _, s := range []string{"", "A", "1s", "Ax", "10c", "tD"} {
		if _, err := ParseCard(s); err == nil {
			t.Fatalf("ParseCard(%q) should fail", s)
		}
	}
}
