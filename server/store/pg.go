package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG is the Postgres backend on a pgx pool.
type PG struct{ *pgxpool.Pool }

func openPG(dsn string) (*PG, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &PG{p}, nil
}

func (db *PG) Close()                         { db.Pool.Close() }
func (db *PG) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func (db *PG) Migrate(ctx context.Context) error {
	sqlBytes, err := schemas.ReadFile("schema_pg.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

func (db *PG) InsertGame(ctx context.Context, g GameRecord) error {
	g = g.withDefaults()
	_, err := db.Exec(ctx, `
        INSERT INTO games(
            id, session_id, created_at, game_type, opponent, difficulty,
            outcome, player_score, opponent_score, rounds
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `, g.ID, g.SessionID, g.CreatedAt, g.GameType, g.Opponent, g.Difficulty,
		g.Outcome, g.PlayerScore, g.OpponentScore, g.Rounds)
	return err
}

// Ensure an opponents row exists and fetch it.
func (db *PG) GetOrInitRating(ctx context.Context, opponent string) (Rating, error) {
	// Create if missing
	if _, err := db.Exec(ctx, `INSERT INTO opponents(name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, opponent); err != nil {
		return Rating{}, err
	}
	// Read current
	r := Rating{Opponent: opponent}
	err := db.QueryRow(ctx, `
		SELECT elo, g_rating, g_rd, g_sigma, games
		  FROM opponents WHERE name = $1
	`, opponent).Scan(&r.Elo, &r.GRating, &r.GRD, &r.GSigma, &r.Games)
	return r, err
}

// Persist final ratings and increment the career game counter.
func (db *PG) UpdateRating(ctx context.Context, opponent string, elo, gRating, gRD, gSigma float64, gamesInc int) error {
	_, err := db.Exec(ctx, `
		UPDATE opponents
		   SET elo = $2,
		       g_rating = $3,
		       g_rd = $4,
		       g_sigma = $5,
		       games = games + $6,
		       updated_at = now()
		 WHERE name = $1
	`, opponent, elo, gRating, gRD, gSigma, gamesInc)
	return err
}

// Insert the game row and upsert the opponent rating atomically.
func (db *PG) RecordResult(ctx context.Context, g GameRecord, opponent string, elo, gRating, gRD, gSigma float64, gamesInc int) error {
	g = g.withDefaults()
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // safe if already committed

	if _, err := tx.Exec(ctx, `
        INSERT INTO games(
            id, session_id, created_at, game_type, opponent, difficulty,
            outcome, player_score, opponent_score, rounds
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `, g.ID, g.SessionID, g.CreatedAt, g.GameType, g.Opponent, g.Difficulty,
		g.Outcome, g.PlayerScore, g.OpponentScore, g.Rounds); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
        INSERT INTO opponents(name, elo, g_rating, g_rd, g_sigma, games)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (name) DO UPDATE
          SET elo = EXCLUDED.elo,
              g_rating = EXCLUDED.g_rating,
              g_rd = EXCLUDED.g_rd,
              g_sigma = EXCLUDED.g_sigma,
              games = opponents.games + $6,
              updated_at = now()
    `, opponent, elo, gRating, gRD, gSigma, gamesInc); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (db *PG) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(ctx, `
		SELECT id, session_id, created_at, game_type, opponent, difficulty,
		       outcome, player_score, opponent_score, rounds
		  FROM games
		 ORDER BY created_at DESC
		 LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.ID, &g.SessionID, &g.CreatedAt, &g.GameType, &g.Opponent,
			&g.Difficulty, &g.Outcome, &g.PlayerScore, &g.OpponentScore, &g.Rounds); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (db *PG) SummaryByGame(ctx context.Context) ([]GameSummary, error) {
	rows, err := db.Query(ctx, `
		SELECT game_type,
		       SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END)::int AS wins,
		       SUM(CASE WHEN outcome = 'loss' THEN 1 ELSE 0 END)::int AS losses,
		       SUM(CASE WHEN outcome = 'push' THEN 1 ELSE 0 END)::int AS pushes,
		       COUNT(*)::int AS total
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
		var s GameSummary
		if err := rows.Scan(&s.GameType, &s.Wins, &s.Losses, &s.Pushes, &s.Total); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (db *PG) Leaderboard(ctx context.Context) ([]Rating, error) {
	rows, err := db.Query(ctx, `
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
