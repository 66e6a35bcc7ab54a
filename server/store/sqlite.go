package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is the file-backed (or in-memory) store on the pure-Go driver.
type SQLite struct{ db *sql.DB }

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func openSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Every pooled connection would get its own empty in-memory database,
	// so pin :memory: DSNs to a single connection.
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close()                         { s.db.Close() }
func (s *SQLite) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLite) Migrate(ctx context.Context) error {
	sqlBytes, err := schemas.ReadFile("schema_sqlite.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(sqlBytes))
	return err
}

func (s *SQLite) InsertGame(ctx context.Context, g GameRecord) error {
	g = g.withDefaults()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO games(
            id, session_id, created_at, game_type, opponent, difficulty,
            outcome, player_score, opponent_score, rounds
        ) VALUES (?,?,?,?,?,?,?,?,?,?)
    `, g.ID, g.SessionID, toMillis(g.CreatedAt), g.GameType, g.Opponent, g.Difficulty,
		g.Outcome, g.PlayerScore, g.OpponentScore, g.Rounds)
	return err
}

func (s *SQLite) GetOrInitRating(ctx context.Context, opponent string) (Rating, error) {
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO opponents(name) VALUES (?)`, opponent); err != nil {
		return Rating{}, err
	}
	r := Rating{Opponent: opponent}
	err := s.db.QueryRowContext(ctx, `
		SELECT elo, g_rating, g_rd, g_sigma, games
		  FROM opponents WHERE name = ?
	`, opponent).Scan(&r.Elo, &r.GRating, &r.GRD, &r.GSigma, &r.Games)
	return r, err
}

func (s *SQLite) UpdateRating(ctx context.Context, opponent string, elo, gRating, gRD, gSigma float64, gamesInc int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE opponents
		   SET elo = ?,
		       g_rating = ?,
		       g_rd = ?,
		       g_sigma = ?,
		       games = games + ?,
		       updated_at = ?
		 WHERE name = ?
	`, elo, gRating, gRD, gSigma, gamesInc, toMillis(time.Now()), opponent)
	return err
}

func (s *SQLite) RecordResult(ctx context.Context, g GameRecord, opponent string, elo, gRating, gRD, gSigma float64, gamesInc int) error {
	g = g.withDefaults()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // safe if already committed

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO games(
            id, session_id, created_at, game_type, opponent, difficulty,
            outcome, player_score, opponent_score, rounds
        ) VALUES (?,?,?,?,?,?,?,?,?,?)
    `, g.ID, g.SessionID, toMillis(g.CreatedAt), g.GameType, g.Opponent, g.Difficulty,
		g.Outcome, g.PlayerScore, g.OpponentScore, g.Rounds); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO opponents(name, elo, g_rating, g_rd, g_sigma, games, updated_at)
        VALUES (?,?,?,?,?,?,?)
        ON CONFLICT(name) DO UPDATE
          SET elo = excluded.elo,
              g_rating = excluded.g_rating,
              g_rd = excluded.g_rd,
              g_sigma = excluded.g_sigma,
              games = opponents.games + excluded.games,
              updated_at = excluded.updated_at
    `, opponent, elo, gRating, gRD, gSigma, gamesInc, toMillis(time.Now())); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLite) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, created_at, game_type, opponent, difficulty,
		       outcome, player_score, opponent_score, rounds
		  FROM games
		 ORDER BY created_at DESC
		 LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GameRecord
	for rows.Next() {
		var g GameRecord
		var ms int64
		if err := rows.Scan(&g.ID, &g.SessionID, &ms, &g.GameType, &g.Opponent,
			&g.Difficulty, &g.Outcome, &g.PlayerScore, &g.OpponentScore, &g.Rounds); err != nil {
			return nil, err
		}
		g.CreatedAt = fromMillis(ms)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLite) SummaryByGame(ctx context.Context) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_type,
		       SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END) AS wins,
		       SUM(CASE WHEN outcome = 'loss' THEN 1 ELSE 0 END) AS losses,
		       SUM(CASE WHEN outcome = 'push' THEN 1 ELSE 0 END) AS pushes,
		       COUNT(*) AS total
		  FROM games
		 GROUP BY game_type
		 ORDER BY game_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GameSummary
	for rows.Next() {
		var sum GameSummary
		if err := rows.Scan(&sum.GameType, &sum.Wins, &sum.Losses, &sum.Pushes, &sum.Total); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLite) Leaderboard(ctx context.Context) ([]Rating, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, elo, g_rating, g_rd, g_sigma, games
		  FROM opponents
		 ORDER BY elo DESC, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Rating
	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.Opponent, &r.Elo, &r.GRating, &r.GRD, &r.GSigma, &r.Games); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
