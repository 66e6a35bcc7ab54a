package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"ai-cardroom/server/store"
)

// Router serves the read-only stats API. The session driver is the only
// writer; everything here is a query over the store.
func Router(db store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health
	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	// Win/loss/push per game type
	r.Get("/api/summary", func(w http.ResponseWriter, req *http.Request) {
		rows, err := db.SummaryByGame(req.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if rows == nil {
			rows = []store.GameSummary{}
		}
		writeJSON(w, map[string]any{"rows": rows})
	})

	// Recent results, newest first
	r.Get("/api/games", func(w http.ResponseWriter, req *http.Request) {
		limit := 0
		if s := req.URL.Query().Get("limit"); s != "" {
			if _, err := fmt.Sscan(s, &limit); err != nil {
				http.Error(w, "bad limit", 400)
				return
			}
		}
		rows, err := db.RecentGames(req.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if rows == nil {
			rows = []store.GameRecord{}
		}
		writeJSON(w, map[string]any{"rows": rows})
	})

	// Opponent profiles by Elo
	r.Get("/api/leaderboard", func(w http.ResponseWriter, req *http.Request) {
		rows, err := db.Leaderboard(req.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if rows == nil {
			rows = []store.Rating{}
		}
		writeJSON(w, map[string]any{"rows": rows})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
