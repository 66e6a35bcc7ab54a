package store

import (
	"context"
	"embed"
	"strings"
	"time"
)

//go:embed schema_pg.sql schema_sqlite.sql
var schemas embed.FS

// Career rating defaults for a profile never seen before. The schema
// defaults must stay in sync with these.
const (
	DefaultElo    = 1500.0
	DefaultGR     = 1500.0
	DefaultGRD    = 350.0
	DefaultGSigma = 0.06
)

// GameRecord is one finished game as the driver reports it.
type GameRecord struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	CreatedAt     time.Time `json:"created_at"`
	GameType      string    `json:"game_type"`
	Opponent      string    `json:"opponent"`
	Difficulty    string    `json:"difficulty"`
	Outcome       string    `json:"outcome"`
	PlayerScore   int       `json:"player_score"`
	OpponentScore int       `json:"opponent_score"`
	Rounds        int       `json:"rounds"`
}

func (g GameRecord) withDefaults() GameRecord {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	return g
}

// Rating is an opponent profile's persisted career rating state.
type Rating struct {
	Opponent string  `json:"opponent"`
	Elo      float64 `json:"elo"`
	GRating  float64 `json:"g_rating"`
	GRD      float64 `json:"g_rd"`
	GSigma   float64 `json:"g_sigma"`
	Games    int     `json:"games"`
}

// GameSummary aggregates outcomes for one game type.
type GameSummary struct {
	GameType string `json:"game_type"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Pushes   int    `json:"pushes"`
	Total    int    `json:"total"`
}

// Store persists game results and opponent career ratings. The session
// driver is the only writer; the HTTP surface reads.
type Store interface {
	Migrate(ctx context.Context) error
	InsertGame(ctx context.Context, g GameRecord) error
	// RecordResult inserts the game row and persists the opponent's updated
	// rating atomically.
	RecordResult(ctx context.Context, g GameRecord, opponent string, elo, gRating, gRD, gSigma float64, gamesInc int) error
	RecentGames(ctx context.Context, limit int) ([]GameRecord, error)
	SummaryByGame(ctx context.Context) ([]GameSummary, error)
	GetOrInitRating(ctx context.Context, opponent string) (Rating, error)
	UpdateRating(ctx context.Context, opponent string, elo, gRating, gRD, gSigma float64, gamesInc int) error
	Leaderboard(ctx context.Context) ([]Rating, error)
	Ping(ctx context.Context) error
	Close()
}

// Open picks a backend from the DSN: postgres:// and postgresql:// URLs get
// the pgx pool, anything else is treated as a SQLite path (":memory:" works).
func Open(dsn string) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return openPG(dsn)
	}
	return openSQLite(dsn)
}
