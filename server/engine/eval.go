package engine

import (
	"fmt"
	"sort"
)

// HandCategory orders poker hand classes from weakest to strongest.
type HandCategory int

const (
	HighCard HandCategory = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c HandCategory) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	}
	return "Unknown"
}

// HandRank is a comparable hand strength: category first, then the
// category-specific tiebreak vector, compared lexicographically.
type HandRank struct {
	Category HandCategory
	Tiebreak []int
}

func (h HandRank) Name() string { return h.Category.String() }

// Compare returns 1 if h beats o, -1 if o beats h, 0 on an exact tie.
func (h HandRank) Compare(o HandRank) int {
	if h.Category != o.Category {
		if h.Category > o.Category {
			return 1
		}
		return -1
	}
	n := len(h.Tiebreak)
	if len(o.Tiebreak) < n {
		n = len(o.Tiebreak)
	}
	for i := 0; i < n; i++ {
		if h.Tiebreak[i] != o.Tiebreak[i] {
			if h.Tiebreak[i] > o.Tiebreak[i] {
				return 1
			}
			return -1
		}
	}
	if len(h.Tiebreak) != len(o.Tiebreak) {
		if len(h.Tiebreak) > len(o.Tiebreak) {
			return 1
		}
		return -1
	}
	return 0
}

// Evaluate returns the best 5-card hand reachable from hole+community.
// Fewer than 5 cards total is a pre-flop display case: category HighCard
// with the card values in descending order. Malformed input (duplicate or
// invalid cards, more than the 7 a hold'em hand can see) is a programming
// error and panics.
func Evaluate(hole, community []Card) HandRank {
	all := append(append([]Card{}, hole...), community...)
	checkCards(all)
	if len(all) > 7 {
		panic(fmt.Sprintf("engine: evaluate %d cards", len(all)))
	}
	if len(all) < 5 {
		values := make([]int, len(all))
		for i, c := range all {
			values[i] = c.Rank
		}
		sort.Slice(values, func(i, j int) bool { return values[i] > values[j] })
		return HandRank{Category: HighCard, Tiebreak: values}
	}

	var best HandRank
	pick := [5]int{}
	five := make([]Card, 5)
	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := 0; i < 5; i++ {
				five[i] = all[pick[i]]
			}
			r := evalFive(five)
			if best.Category == 0 || r.Compare(best) > 0 {
				best = r
			}
			return
		}
		for i := start; i <= len(all)-(5-k); i++ {
			pick[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return best
}

// CompareHands evaluates both holes against the community and names the
// winner: "player", "opponent" or "tie". The hand names come along for
// display.
func CompareHands(playerHole, opponentHole, community []Card) (winner, playerName, opponentName string) {
	joint := append(append(append([]Card{}, playerHole...), opponentHole...), community...)
	checkCards(joint)
	p := Evaluate(playerHole, community)
	o := Evaluate(opponentHole, community)
	switch p.Compare(o) {
	case 1:
		return WinPlayer, p.Name(), o.Name()
	case -1:
		return WinOpponent, p.Name(), o.Name()
	}
	return WinTie, p.Name(), o.Name()
}

func evalFive(cards []Card) HandRank {
	values := make([]int, 5)
	for i, c := range cards {
		values[i] = c.Rank
	}
	sort.Slice(values, func(i, j int) bool { return values[i] > values[j] })

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}
	straight := isRun(values)

	// Wheel: A-5-4-3-2 plays as a five-high straight.
	if values[0] == 14 && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2 {
		straight = true
		values = []int{5, 4, 3, 2, 1}
	}

	byValue := map[int]int{}
	for _, v := range values {
		byValue[v]++
	}
	most := 0
	for _, n := range byValue {
		if n > most {
			most = n
		}
	}

	switch {
	case flush && straight && values[0] == 14 && values[4] == 10:
		return HandRank{Category: RoyalFlush, Tiebreak: values}
	case flush && straight:
		return HandRank{Category: StraightFlush, Tiebreak: values}
	case most == 4:
		return HandRank{Category: FourOfAKind, Tiebreak: append(withCount(byValue, 4), withCount(byValue, 1)...)}
	case most == 3 && len(byValue) == 2:
		return HandRank{Category: FullHouse, Tiebreak: append(withCount(byValue, 3), withCount(byValue, 2)...)}
	case flush:
		return HandRank{Category: Flush, Tiebreak: values}
	case straight:
		return HandRank{Category: Straight, Tiebreak: values}
	case most == 3:
		return HandRank{Category: ThreeOfAKind, Tiebreak: append(withCount(byValue, 3), withCount(byValue, 1)...)}
	case most == 2 && len(byValue) == 3:
		return HandRank{Category: TwoPair, Tiebreak: append(withCount(byValue, 2), withCount(byValue, 1)...)}
	case most == 2:
		return HandRank{Category: Pair, Tiebreak: append(withCount(byValue, 2), withCount(byValue, 1)...)}
	}
	return HandRank{Category: HighCard, Tiebreak: values}
}

// isRun reports whether descending-sorted values step down by exactly one.
func isRun(values []int) bool {
	for i := 0; i < len(values)-1; i++ {
		if values[i]-values[i+1] != 1 {
			return false
		}
	}
	return true
}

// withCount returns the values appearing exactly n times, highest first.
func withCount(byValue map[int]int, n int) []int {
	var out []int
	for v, c := range byValue {
		if c == n {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

func checkCards(cards []Card) {
	if len(cards) == 0 {
		panic("engine: evaluate with no cards")
	}
	seen := map[Card]bool{}
	for _, c := range cards {
		if c.Rank < 2 || c.Rank > 14 {
			panic(fmt.Sprintf("engine: bad card rank %d", c.Rank))
		}
		switch c.Suit {
		case 'c', 'd', 'h', 's':
		default:
			panic(fmt.Sprintf("engine: bad card suit %q", c.Suit))
		}
		if seen[c] {
			panic(fmt.Sprintf("engine: duplicate card %s", c))
		}
		seen[c] = true
	}
}
