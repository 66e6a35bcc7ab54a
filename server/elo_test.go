package main

import (
	"math"
	"testing"
)

func TestEloOutcomeZeroSum(t *testing.T) {
	e := NewElo(1500, 32)
	dA, dB := e.UpdateOutcome("win")
	if dA <= 0 || dB >= 0 {
		t.Fatalf("expected winner up loser down, got dA=%v dB=%v", dA, dB)
	}
	if math.Abs(dA+dB) > 1e-9 {
		t.Fatalf("expected zero-sum deltas, got dA=%v dB=%v", dA, dB)
	}
	if e.A <= e.B {
		t.Fatalf("expected A above B after a win, got A=%v B=%v", e.A, e.B)
	}
	if e.Games != 1 {
		t.Fatalf("expected 1 game, got %d", e.Games)
	}
}

func TestEloPushAtEqualRatingsMovesNothing(t *testing.T) {
	e := NewElo(1500, 32)
	dA, _ := e.UpdateOutcome("push")
	if math.Abs(dA) > 1e-12 {
		t.Fatalf("expected no movement on push at equal ratings, got %v", dA)
	}
}

func TestEloPokerMarginOutweighsPlainWin(t *testing.T) {
	plain := NewElo(1500, 32)
	margin := NewElo(1500, 32)
	dPlain, _ := plain.UpdateOutcome("win")
	// Big pot, big margin: potScale clamps at 3, marginScale adds on top.
	dMargin, _ := margin.UpdatePoker(300, 600, 20)
	if dMargin <= dPlain {
		t.Fatalf("expected tempered poker update to exceed plain win (%v vs %v)", dMargin, dPlain)
	}
}

func TestEloPokerLossMovesDown(t *testing.T) {
	e := NewElo(1500, 32)
	dA, dB := e.UpdatePoker(-250, 500, 20)
	if dA >= 0 || dB <= 0 {
		t.Fatalf("expected player down on chip loss, got dA=%v dB=%v", dA, dB)
	}
}

func TestEloScalingHelpers(t *testing.T) {
	if got := potScale(10000, 20); got != 3.0 {
		t.Fatalf("expected pot scale clamp at 3.0, got %v", got)
	}
	if got := potScale(10, 20); got != 0.5 {
		t.Fatalf("expected pot scale floor 0.5, got %v", got)
	}
	if got := potScale(40, 20); got != 1.0 {
		t.Fatalf("expected baseline pot scale 1.0, got %v", got)
	}
	if got := potScale(40, 0); got != 1.0 {
		t.Fatalf("expected degenerate blind to scale 1.0, got %v", got)
	}
	if got := marginScale(0, 20); got != 1.0 {
		t.Fatalf("expected no margin boost at zero margin, got %v", got)
	}
	if got := marginScale(400, 20); got <= 1.0 || got > 1.35 {
		t.Fatalf("margin boost out of range: %v", got)
	}
	if got := decay(0); got != 1.0 {
		t.Fatalf("expected decay(0)=1, got %v", got)
	}
	if got := decay(100); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("expected decay(100)=0.5, got %v", got)
	}
}
