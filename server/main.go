package main

import (
	"ai-cardroom/server/agent"
	"ai-cardroom/server/engine"
	"ai-cardroom/server/policy"
	"ai-cardroom/server/store"
	"bufio"
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	mrand "math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

//
// ===== pretty printing =====
//

var useColor bool
var debugState bool

const (
	colReset  = "\033[0m"
	colBold   = "\033[1m"
	colDim    = "\033[2m"
	colGreen  = "\033[32m"
	colRed    = "\033[31m"
	colYellow = "\033[33m"
	colBlue   = "\033[34m"
	colMag    = "\033[35m"
	colCyan   = "\033[36m"
)

func c(code, s string) string {
	if !useColor {
		return s
	}
	return code + s + colReset
}
func bold(s string) string { return c(colBold, s) }
func dim(s string) string  { return c(colDim, s) }
func good(s string) string { return c(colGreen, s) }
func warn(s string) string { return c(colYellow, s) }
func bad(s string) string  { return c(colRed, s) }
func cyan(s string) string { return c(colCyan, s) }
func mag(s string) string  { return c(colMag, s) }
func blue(s string) string { return c(colBlue, s) }
func seatTag(seat engine.Seat) string {
	if seat == engine.Player {
		return cyan("You  ")
	}
	return mag("House")
}
func potTag(pot int) string { return dim(fmt.Sprintf("Pot=%d", pot)) }
func section(title string)  { fmt.Printf("\n%s %s %s\n", dim("──"), bold(title), dim("──")) }
func sub(title string)      { fmt.Printf("%s %s\n", dim("•"), bold(title)) }

func suitGlyph(s byte) string {
	switch s {
	case 's':
		return "♠"
	case 'h':
		return "♥"
	case 'd':
		return "♦"
	case 'c':
		return "♣"
	}
	return string(s)
}

// prettyCard renders the two-char card form with a suit glyph; hearts and
// diamonds come out red when color is on.
func prettyCard(s string) string {
	if len(s) != 2 {
		return s
	}
	out := string(s[0]) + suitGlyph(s[1])
	if s[1] == 'h' || s[1] == 'd' {
		return c(colRed, out)
	}
	return out
}

func cardsStr(cs []engine.Card) string {
	parts := make([]string, len(cs))
	for i, cd := range cs {
		parts[i] = prettyCard(cd.String())
	}
	return strings.Join(parts, " ")
}

func prettyCards(ss []string) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = prettyCard(s)
	}
	return strings.Join(parts, " ")
}

func hidden() string { return dim("[??]") }

func totalStr(cards []engine.Card) string {
	t, soft := engine.HandValue(cards)
	if soft {
		return fmt.Sprintf("soft %d", t)
	}
	return strconv.Itoa(t)
}

//
// ===== bootstrap =====
//

func mustEnv(keys ...string) {
	for _, k := range keys {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing required env var %s. Put it in .env (dev) or set it on the host (prod).", k)
		}
	}
}
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
func floatDef(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}
func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

var stopFlag atomic.Bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	useColor = (os.Getenv("NO_COLOR") == "") && (strings.TrimSpace(os.Getenv("USE_COLOR")) != "0")
	debugState = asBool(os.Getenv("DEBUG"))

	var migrate, serve bool
	for _, a := range os.Args[1:] {
		switch a {
		case "--migrate":
			migrate = true
		case "--serve":
			serve = true
		}
	}

	maxSeconds := atoiDef(os.Getenv("MAX_SECONDS"), 0)
	stopFile := os.Getenv("STOP_FILE")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchSignals(cancel)

	var deadline time.Time
	if maxSeconds > 0 {
		deadline = time.Now().Add(time.Duration(maxSeconds) * time.Second)
	}
	checkStop := func() bool {
		select {
		case <-ctx.Done():
			stopFlag.Store(true)
		default:
		}
		if stopFlag.Load() {
			return true
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			stopFlag.Store(true)
			return true
		}
		if stopFile != "" {
			if _, err := os.Stat(stopFile); err == nil {
				stopFlag.Store(true)
				return true
			}
		}
		return false
	}

	if !serve && !migrate {
		// Table session. Persistence is optional: no DATABASE_URL means the
		// session stays in memory only.
		gracefulOnly := !asBool(os.Getenv("STOP_IMMEDIATE"))
		var db store.Store
		if dsn := getenv("DATABASE_URL", ""); dsn != "" {
			s, err := store.Open(dsn)
			if err != nil {
				log.Printf("DB disabled (open failed): %v", err)
			} else {
				db = s
				defer db.Close()
				if asBool(getenv("AUTO_MIGRATE", "1")) {
					if err := db.Migrate(context.Background()); err != nil {
						log.Printf("migrate failed (continuing without DB): %v", err)
						db = nil
					}
				}
			}
		}
		runSession(ctx, checkStop, gracefulOnly, db)
		return
	}

	// HTTP read surface (and standalone migrate)
	mustEnv("DATABASE_URL")
	dsn := os.Getenv("DATABASE_URL")
	port := getenv("PORT", "8080")

	db, err := store.Open(dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if migrate || asBool(os.Getenv("AUTO_MIGRATE")) {
		if err := db.Migrate(context.Background()); err != nil {
			log.Fatal(err)
		}
		log.Println("migrated")
	}
	if migrate {
		return
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Printf("DB ping failed (serving anyway): %v", err)
	}
	r := Router(db)
	srv := &http.Server{Addr: ":" + port, Handler: r, ReadTimeout: 15 * time.Second, WriteTimeout: 15 * time.Second}
	log.Printf("listening on http://localhost:%s (Ctrl+C to stop)", port)
	log.Fatal(srv.ListenAndServe())
}

func watchSignals(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	stopFlag.Store(true)
	cancel()
}

//
// ===== randomness =====
//

type seedStream struct{ state uint64 }

func newSeedStream(base uint64) seedStream { return seedStream{state: base} }
func (s *seedStream) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return z
}
func secureBaseSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err == nil {
		return binary.LittleEndian.Uint64(b[:]) ^ uint64(time.Now().UnixNano()) ^ uint64(os.Getpid())
	}
	return uint64(time.Now().UnixNano()) ^ 0xA5A5A5A5A5A5A5A5
}
func deckSeedFromEnvOrCrypto() uint64 {
	if s := os.Getenv("DECK_SEED"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return uint64(v)
		}
	}
	return secureBaseSeed()
}

//
// ===== player input =====
//

// playerInput supplies the player seat's decisions: a human on stdin, or a
// stand-in policy when AUTOPLAY is set. A closed stdin flips to autoplay so
// piped sessions finish instead of hanging.
type playerInput struct {
	autoplay bool
	sc       *bufio.Scanner
	seed     int64
	poker    *policy.PokerPolicy
	bj       *policy.BlackjackPolicy
}

func newPlayerInput(autoplay bool, seed int64) *playerInput {
	pi := &playerInput{autoplay: autoplay, sc: bufio.NewScanner(os.Stdin), seed: seed}
	if autoplay {
		pi.ensurePolicies()
	}
	return pi
}

func (pi *playerInput) ensurePolicies() {
	if pi.poker == nil {
		lvl := policy.ParseLevel(strings.ToLower(getenv("AUTOPLAY_LEVEL", "hard")))
		pi.poker = policy.NewPokerPolicy(lvl, pi.seed)
		pi.bj = policy.NewBlackjackPolicy(lvl, pi.seed+1)
	}
}

func (pi *playerInput) toAutoplay() {
	log.Printf("stdin closed; switching player seat to autoplay")
	pi.ensurePolicies()
	pi.autoplay = true
}

func (pi *playerInput) pokerAction(obs agent.PokerObservation) agent.ActionOut {
	if pi.autoplay {
		out := pi.poker.Decide(obs)
		out.Comment = "" // the stand-in keeps quiet
		return out
	}
	status := fmt.Sprintf("%s %s · board %s · %s · to call %d · stack %d",
		seatTag(engine.Player), prettyCards(obs.HoleCards), boardOrDash(obs.Board),
		potTag(obs.Pot), obs.ToCall, obs.Stacks["hero"])
	if obs.MaxRaise > 0 {
		status += dim(fmt.Sprintf(" · raise %d..%d", obs.MinRaise, obs.MaxRaise))
	}
	fmt.Println(status)
	for {
		fmt.Print(cyan("> ") + dim(strings.Join(obs.Legal, "/")+" · "))
		if !pi.sc.Scan() {
			pi.toAutoplay()
			return pi.poker.Decide(obs)
		}
		line := strings.TrimSpace(pi.sc.Text())
		if line == "" {
			continue
		}
		return agent.ParseCommand(line)
	}
}

func (pi *playerInput) blackjackAction(g *engine.Blackjack) string {
	if pi.autoplay {
		obs := agent.BuildBlackjackObservation(g, engine.Player)
		return agent.NormalizeBlackjack(pi.bj.Decide(obs))
	}
	for {
		fmt.Print(cyan("> ") + dim("hit/stand · "))
		if !pi.sc.Scan() {
			pi.toAutoplay()
			return pi.blackjackAction(g)
		}
		out := agent.ParseCommand(pi.sc.Text())
		switch out.Action {
		case "hit", "stand":
			return out.Action
		case "":
			continue
		}
		fmt.Println(dim("hit or stand."))
	}
}

// waitFlip paces war rounds in interactive mode. Returns false when the
// player quits.
func (pi *playerInput) waitFlip() bool {
	if pi.autoplay {
		return true
	}
	fmt.Print(dim("[enter] flip · q quits: "))
	if !pi.sc.Scan() {
		pi.toAutoplay()
		return true
	}
	return strings.ToLower(strings.TrimSpace(pi.sc.Text())) != "q"
}

func boardOrDash(board []string) string {
	if len(board) == 0 {
		return dim("—")
	}
	return prettyCards(board)
}

//
// ===== session =====
//

// session ties one table visit together: the games played, the running
// ratings, the result log and the optional store behind them.
type session struct {
	ctx       context.Context
	checkStop func() bool
	graceful  bool // finish the current hand before stopping

	id       string
	opponent string
	level    policy.Level

	db     store.Store
	career store.Rating

	elo    Elo
	gYou   *Glicko2
	gHouse *Glicko2
	tau    float64

	in    *playerInput
	seeds seedStream

	stats  SessionStats
	scores []float64 // per-game score for the Glicko-2 rating period
}

func runSession(ctx context.Context, checkStop func() bool, gracefulOnly bool, db store.Store) {
	game := strings.ToLower(getenv("GAME", "blackjack"))
	rounds := atoiDef(os.Getenv("ROUNDS"), 5)
	level := policy.ParseLevel(strings.ToLower(getenv("DIFFICULTY", "medium")))
	autoplay := asBool(os.Getenv("AUTOPLAY"))

	base := deckSeedFromEnvOrCrypto()
	s := &session{
		ctx:       ctx,
		checkStop: checkStop,
		graceful:  gracefulOnly,
		id:        uuid.NewString(),
		opponent:  "house-" + string(level),
		level:     level,
		db:        db,
		career: store.Rating{
			Elo: store.DefaultElo, GRating: store.DefaultGR,
			GRD: store.DefaultGRD, GSigma: store.DefaultGSigma,
		},
		elo:    NewElo(floatDef(os.Getenv("ELO_START"), 1500), floatDef(os.Getenv("ELO_K"), 32)),
		gYou:   NewGlicko2(),
		gHouse: NewGlicko2(),
		tau:    floatDef(os.Getenv("GLICKO_TAU"), 0.5),
		seeds:  newSeedStream(base),
	}
	s.in = newPlayerInput(autoplay, int64(s.seeds.next()))

	if db != nil {
		r, err := db.GetOrInitRating(ctx, s.opponent)
		if err != nil {
			log.Printf("career rating unavailable: %v", err)
		} else {
			s.career = r
			s.elo.B = r.Elo
			s.gHouse = NewGlicko2With(r.GRating, r.GRD, r.GSigma)
		}
	}

	section("CARD ROOM")
	log.Printf("session %s", s.id)
	log.Printf("game=%s difficulty=%s rounds=%d autoplay=%v", game, level, rounds, autoplay)
	log.Printf("deck seed base: %d (set DECK_SEED to reproduce)", base)
	if db != nil {
		log.Printf("house career: elo=%.1f glicko=%.1f rd=%.1f games=%d",
			s.career.Elo, s.career.GRating, s.career.GRD, s.career.Games)
	}
	if !autoplay {
		fmt.Println(dim("commands: f fold · k check · c call · r N raise by N · a all-in · h hit · s stand"))
	}

	switch game {
	case "blackjack":
		s.blackjack(rounds)
	case "poker":
		s.poker(rounds)
	case "war":
		s.war(rounds)
	default:
		log.Fatalf("unknown GAME %q (want blackjack, poker or war)", game)
	}

	s.summary()
}

// record logs the finished game into the session tallies and, when a store
// is attached, persists the game row together with the house's current
// rating state.
func (s *session) record(res *engine.Result, margin float64) {
	s.stats.AddResult(res, margin)
	if s.db == nil {
		return
	}
	rec := store.GameRecord{
		ID:            uuid.NewString(),
		SessionID:     s.id,
		GameType:      res.Game,
		Opponent:      s.opponent,
		Difficulty:    string(s.level),
		Outcome:       res.Outcome,
		PlayerScore:   res.PlayerScore,
		OpponentScore: res.OpponentScore,
		Rounds:        res.Rounds,
	}
	err := s.db.RecordResult(s.ctx, rec, s.opponent,
		s.elo.B, s.gHouse.Rating, s.gHouse.RD, s.gHouse.Volatility, 1)
	if err != nil {
		log.Printf("record game: %v", err)
	}
}

func (s *session) announce(res *engine.Result) {
	scoreline := dim(fmt.Sprintf("  %d – %d", res.PlayerScore, res.OpponentScore))
	switch res.Outcome {
	case "win":
		fmt.Println(good(bold("You win.")) + scoreline)
	case "loss":
		fmt.Println(bad(bold("House wins.")) + scoreline)
	default:
		fmt.Println(warn(bold("Push.")) + scoreline)
	}
}

func (s *session) printElo(dA, dB float64) {
	fmt.Printf("%s you %.1f (%+.1f) · house %.1f (%+.1f)\n",
		dim("elo →"), s.elo.A, dA, s.elo.B, dB)
}

// hardStop abandons the hand in flight when STOP_IMMEDIATE is set. A graceful
// stop only lands between hands.
func (s *session) hardStop() bool {
	if s.graceful {
		return false
	}
	if s.checkStop() {
		log.Printf("immediate stop requested; abandoning the hand in flight")
		return true
	}
	return false
}

func (s *session) talkLine(comment string) {
	if comment == "" {
		return
	}
	fmt.Printf("%s %s\n", seatTag(engine.Opponent), blue("“"+comment+"”"))
}

//
// ===== blackjack =====
//

func (s *session) blackjack(rounds int) {
	pol := policy.NewBlackjackPolicy(s.level, int64(s.seeds.next()))
	for i := 0; i < rounds; i++ {
		if s.checkStop() {
			log.Printf("stopping before hand %d", i+1)
			return
		}
		section(fmt.Sprintf("BLACKJACK — hand %d/%d", i+1, rounds))
		g := engine.NewBlackjack(int64(s.seeds.next()))
		fmt.Printf("%s %s  (%s)\n", seatTag(engine.Player), cardsStr(g.PlayerHand), totalStr(g.PlayerHand))
		fmt.Printf("%s %s %s\n", seatTag(engine.Opponent), prettyCard(g.OpponentHand[0].String()), hidden())
		if g.Finished {
			fmt.Println(warn(bold("Natural 21 on the deal.")))
		}

		for !g.Finished && g.Turn == engine.Player {
			if s.hardStop() {
				return
			}
			if s.in.blackjackAction(g) == "hit" {
				note := g.Hit()
				fmt.Printf("%s hit → %s  (%s)\n", seatTag(engine.Player), cardsStr(g.PlayerHand), totalStr(g.PlayerHand))
				if note == "bust" {
					fmt.Println(bad("Bust."))
				}
			} else {
				g.Stand()
				fmt.Printf("%s stand on %s\n", seatTag(engine.Player), totalStr(g.PlayerHand))
			}
		}

		revealed := false
		if !g.Finished && g.Turn == engine.Opponent {
			fmt.Printf("%s reveals %s  (%s)\n", seatTag(engine.Opponent), cardsStr(g.OpponentHand), totalStr(g.OpponentHand))
			revealed = true
			if s.level == policy.Medium {
				// The stock house line: hit below 17, stand on 17.
				g.OpponentPlayOut()
				fmt.Printf("%s plays out → %s  (%s)\n", seatTag(engine.Opponent), cardsStr(g.OpponentHand), totalStr(g.OpponentHand))
			} else {
				for !g.Finished && g.Turn == engine.Opponent {
					if s.hardStop() {
						return
					}
					out := pol.Decide(agent.BuildBlackjackObservation(g, engine.Opponent))
					s.talkLine(out.Comment)
					if agent.NormalizeBlackjack(out) == "hit" {
						note := g.OpponentHit()
						fmt.Printf("%s hit → %s  (%s)\n", seatTag(engine.Opponent), cardsStr(g.OpponentHand), totalStr(g.OpponentHand))
						if note == "bust" {
							fmt.Println(good("House busts."))
						}
					} else {
						g.OpponentStand()
						fmt.Printf("%s stand on %s\n", seatTag(engine.Opponent), totalStr(g.OpponentHand))
					}
				}
			}
		}
		if !revealed {
			fmt.Printf("%s had %s  (%s)\n", seatTag(engine.Opponent), cardsStr(g.OpponentHand), totalStr(g.OpponentHand))
		}

		res := g.Result()
		s.announce(res)
		dA, dB := s.elo.UpdateOutcome(res.Outcome)
		s.printElo(dA, dB)

		margin := 0.0
		switch res.Outcome {
		case "win":
			margin = 1
		case "loss":
			margin = -1
		}
		s.scores = append(s.scores, ScoreFromWL(res.Outcome == "win", res.Outcome == "push"))
		s.record(res, margin)
	}
}

//
// ===== poker =====
//

func (s *session) poker(rounds int) {
	cfg := engine.Config{
		SB:         atoiDef(os.Getenv("SMALL_BLIND"), 10),
		BB:         atoiDef(os.Getenv("BIG_BLIND"), 20),
		StartStack: atoiDef(os.Getenv("START_STACK"), 1000),
	}
	if cfg.BB <= 0 {
		cfg.BB = 20
	}
	pol := policy.NewPokerPolicy(s.level, int64(s.seeds.next()))
	g := engine.NewPoker(cfg)

	for i := 0; i < rounds; i++ {
		if s.checkStop() {
			log.Printf("stopping before hand %d", i+1)
			return
		}
		section(fmt.Sprintf("POKER — hand %d/%d", i+1, rounds))
		startChips := g.Player.Chips
		g.NewHand(int64(s.seeds.next()))

		btn := "house"
		if g.DealerIsPlayer {
			btn = "you"
		}
		fmt.Printf("%s %s  blinds %d/%d · dealer %s · stacks you %d · house %d\n",
			seatTag(engine.Player), cardsStr(g.Player.Hole), cfg.SB, cfg.BB, btn,
			g.Player.Chips, g.Opponent.Chips)

		handPot := 0
		lastStreet := ""
		for !g.Finished {
			if s.hardStop() {
				return
			}
			if g.Street != lastStreet {
				lastStreet = g.Street
				if len(g.Board) > 0 {
					sub(fmt.Sprintf("%s  %s  %s", strings.ToUpper(g.Street), cardsStr(g.Board), potTag(g.Pot)))
				} else {
					sub(fmt.Sprintf("%s  %s", strings.ToUpper(g.Street), potTag(g.Pot)))
				}
			}
			seat := g.Turn
			obs := agent.BuildPokerObservation(g, seat)
			if debugState {
				if b, err := json.Marshal(obs); err == nil {
					log.Printf("obs %s", b)
				}
			}

			// Both stacks in the middle: check the runout down.
			if obs.ToCall == 0 && obs.Stacks["hero"] == 0 {
				if g.Pot > handPot {
					handPot = g.Pot
				}
				g.Act(seat, engine.Action{Kind: engine.Check})
				fmt.Printf("%s check  %s\n", seatTag(seat), potTag(g.Pot))
				continue
			}

			var out agent.ActionOut
			if seat == engine.Player {
				out = s.in.pokerAction(obs)
			} else {
				out = pol.Decide(obs)
				s.talkLine(out.Comment)
			}

			preAct := g.Pot
			if preAct > handPot {
				handPot = preAct
			}
			note := g.Act(seat, agent.Normalize(obs, out))
			if g.Finished {
				// The closing action's chips are already paid out of the pot;
				// a closing call still counts toward the hand's pot size.
				if add, ok := strings.CutPrefix(note, "call "); ok {
					if n, err := strconv.Atoi(add); err == nil {
						handPot = preAct + n
					}
				}
			} else if g.Pot > handPot {
				handPot = g.Pot
			}
			fmt.Printf("%s %s  %s\n", seatTag(seat), note, potTag(g.Pot))
		}

		if g.Street == "showdown" {
			sub(fmt.Sprintf("SHOWDOWN  %s", cardsStr(g.Board)))
			pDesc, oDesc := g.EvalDebug()
			fmt.Printf("%s %s  %s\n", seatTag(engine.Player), cardsStr(g.Player.Hole), dim(pDesc))
			fmt.Printf("%s %s  %s\n", seatTag(engine.Opponent), cardsStr(g.Opponent.Hole), dim(oDesc))
			fmt.Printf("Winning hand: %s\n", bold(g.WinningHand))

			// Cross-check the table ruling against the score table.
			ps, os2 := g.Scores()
			verdict := "tie"
			if ps > os2 {
				verdict = string(engine.Player)
			} else if os2 > ps {
				verdict = string(engine.Opponent)
			}
			if verdict != g.Winner {
				log.Printf("eval check: score table says %s (%d vs %d), ruling was %s", verdict, ps, os2, g.Winner)
			}
		}

		res := g.Result()
		delta := g.Player.Chips - startChips
		s.announce(res)
		fmt.Printf("%s %s chips this hand · pot %d\n", dim("net →"), fmt.Sprintf("%+d", delta), handPot)

		dA, dB := s.elo.UpdatePoker(delta, handPot, cfg.BB)
		s.printElo(dA, dB)
		s.scores = append(s.scores, ScoreFromMargin(delta, float64(cfg.StartStack), 1.0))
		s.record(res, float64(delta)/float64(cfg.BB))

		if g.Player.Chips == 0 || g.Opponent.Chips == 0 {
			felted := "You are"
			if g.Opponent.Chips == 0 {
				felted = "House is"
			}
			fmt.Println(warn(felted + " felted — stacks reset for the next hand."))
			g.ResetChips()
		}
	}
}

//
// ===== war =====
//

func (s *session) war(rounds int) {
	talkRng := mrand.New(mrand.NewSource(int64(s.seeds.next())))
	for i := 0; i < rounds; i++ {
		if s.checkStop() {
			log.Printf("stopping before game %d", i+1)
			return
		}
		section(fmt.Sprintf("WAR — game %d/%d", i+1, rounds))
		w := engine.NewWar(int64(s.seeds.next()))
		fmt.Printf("Deck split %d/%d. High card takes the battle; ties go to war.\n",
			len(w.PlayerPile), len(w.OpponentPile))

		for !w.Finished {
			if s.checkStop() {
				log.Printf("stopping mid-game")
				return
			}
			if !s.in.waitFlip() {
				log.Printf("player quit at round %d", w.Rounds+1)
				return
			}
			r := w.PlayRound()
			if r == "game_over" {
				break
			}
			line := fmt.Sprintf("%s %s  vs  %s %s",
				seatTag(engine.Player), cardsStr(w.PlayerBattle),
				seatTag(engine.Opponent), cardsStr(w.OpponentBattle))
			switch r {
			case "player_wins":
				fmt.Printf("%s  → %s  %s\n", line, good("yours"),
					dim(fmt.Sprintf("(%d–%d)", len(w.PlayerPile), len(w.OpponentPile))))
			case "opponent_wins":
				fmt.Printf("%s  → %s  %s\n", line, bad("house's"),
					dim(fmt.Sprintf("(%d–%d)", len(w.PlayerPile), len(w.OpponentPile))))
			case "war":
				fmt.Printf("%s  → %s  %s\n", line, warn(bold("WAR")),
					dim(fmt.Sprintf("%d cards at stake", len(w.WarPot))))
			}
			if r == "war" || talkRng.Float64() < 0.05 {
				s.talkLine(policy.WarComment(talkRng, r))
			}
			if debugState && w.CardsInPlay() != 52 {
				log.Printf("card count off: %d in play", w.CardsInPlay())
			}
		}

		res := w.Result()
		fmt.Printf("Game over after %d rounds.\n", res.Rounds)
		s.announce(res)
		dA, dB := s.elo.UpdateOutcome(res.Outcome)
		s.printElo(dA, dB)
		s.scores = append(s.scores, ScoreFromWL(res.Outcome == "win", res.Outcome == "push"))
		s.record(res, float64(res.PlayerScore-res.OpponentScore)/52.0)
	}
}

//
// ===== summary =====
//

func (s *session) summary() {
	section("SESSION RESULTS")
	o := &s.stats.Overall
	if o.Games == 0 {
		fmt.Println(dim("No games finished."))
		return
	}

	fmt.Printf("RESULTS → games=%d wins=%d losses=%d pushes=%d win_rate=%.1f%%\n",
		o.Games, o.Wins, o.Losses, o.Pushes, 100*o.WinRate())
	lo, hi := WilsonCI95(o.Wins, o.Pushes, o.Games)
	fmt.Printf("CI (Wilson) → [%.3f, %.3f]\n", lo, hi)
	if len(o.Margins) > 1 {
		blo, bhi := BootstrapCI95(o.Margins, 2000)
		fmt.Printf("CI (bootstrap) → mean margin %.2f in [%.2f, %.2f]\n", o.MeanMargin(), blo, bhi)
	}
	fmt.Printf("Elo final → you=%.1f house=%.1f (K=%.0f over %d games)\n",
		s.elo.A, s.elo.B, s.elo.K, s.elo.Games)

	// One Glicko-2 rating period per session: both sides update against the
	// other's start-of-period values.
	youBefore, houseBefore := s.gYou.Rating, s.gHouse.Rating
	if len(s.scores) > 0 {
		youSnap, houseSnap := s.gYou.Copy(), s.gHouse.Copy()
		s.gYou.Update(houseSnap, s.scores, s.tau)
		flipped := make([]float64, len(s.scores))
		for i, v := range s.scores {
			flipped[i] = 1 - v
		}
		s.gHouse.Update(youSnap, flipped, s.tau)
	}
	fmt.Printf("Glicko2 final → you=%.1f±%.0f (%+.1f) house=%.1f±%.0f (%+.1f)\n",
		s.gYou.Rating, s.gYou.RD, s.gYou.Rating-youBefore,
		s.gHouse.Rating, s.gHouse.RD, s.gHouse.Rating-houseBefore)

	if s.db != nil {
		err := s.db.UpdateRating(s.ctx, s.opponent,
			s.elo.B, s.gHouse.Rating, s.gHouse.RD, s.gHouse.Volatility, 0)
		if err != nil {
			log.Printf("persist rating: %v", err)
		} else {
			log.Printf("house career updated: %s elo=%.1f glicko=%.1f", s.opponent, s.elo.B, s.gHouse.Rating)
		}
	}
}
