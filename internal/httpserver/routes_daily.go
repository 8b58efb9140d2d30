// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start (or resume) today's puzzle
//   - POST /daily/guess       → submit a guess for today's puzzle
//   - GET  /daily/leaderboard → fetch top results for today (or ?date=)
//
// Each player (JWT user or anonymous cookie) gets one finished result per
// date, enforced by the DB; in-progress sessions live in memory.
// The solution is chosen deterministically from date + salt.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solved"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	salt     string
	mu       sync.Mutex               // guards sessions and byGame
	sessions map[string]*dailySession // keyed by userID|date
	byGame   map[string]*dailySession // keyed by game ID
}

// dailySession holds transient state for an in-progress daily puzzle.
type dailySession struct {
	game      *game.Session
	userID    string
	date      string
	wordIndex int
	start     time.Time // first accepted guess
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
		byGame:   make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key, word index and solution.
func (d *dailyServer) today() (date string, idx int, answer game.Word) {
	date = daily.DateKey(d.srv.now())
	idx = daily.WordIndex(date, d.salt, d.srv.catalog.Solutions().Len())
	return date, idx, d.srv.catalog.SolutionAt(idx)
}

// playerID returns the authenticated user ID, or a stable anonymous ID.
func playerID(w http.ResponseWriter, r *http.Request) string {
	if id := userFrom(r); id != "" {
		return id
	}
	return "anon:" + ensureAnonID(w, r)
}

// newRes is returned by /daily/new.
type newRes struct {
	GameID     string `json:"gameId"`
	Date       string `json:"date"`
	Played     bool   `json:"played"`
	WordLength int    `json:"wordLength"`
	MaxTurns   int    `json:"maxTurns"`
}

// handleNew creates or resumes today's session.
//   - Already finished today (DB row) → Played=true, no game.
//   - Otherwise reuse the in-memory session or create one.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := playerID(w, r)
	date, idx, answer := d.today()

	if d.srv.db != nil {
		played, err := d.srv.db.AlreadyPlayed(r.Context(), uid, date)
		if err != nil {
			writeError(w, err)
			return
		}
		if played {
			writeJSON(w, http.StatusOK, newRes{Date: date, Played: true})
			return
		}
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	d.purgeLocked(date)

	sess, ok := d.sessions[key]
	if !ok {
		sess = &dailySession{
			game:      game.NewSession(answer, d.srv.sessionOptions()...),
			userID:    uid,
			date:      date,
			wordIndex: idx,
		}
		d.sessions[key] = sess
		d.byGame[sess.game.ID()] = sess
		metrics.Sessions.WithLabelValues("daily").Inc()
	}
	g := sess.game
	writeJSON(w, http.StatusOK, newRes{GameID: g.ID(), Date: date, Played: g.Over(), WordLength: g.WordLength(), MaxTurns: g.MaxTurns()})
}

// purgeLocked drops sessions from previous dates. Caller holds d.mu.
func (d *dailyServer) purgeLocked(today string) {
	for k, s := range d.sessions {
		if s.date != today {
			delete(d.sessions, k)
			delete(d.byGame, s.game.ID())
		}
	}
}

// handleGuess applies a guess to the caller's daily session and stores the
// result once the session finishes.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	uid := playerID(w, r)

	d.mu.Lock()
	sess, ok := d.byGame[req.GameID]
	if ok && sess.userID != uid {
		ok = false
	}
	if ok && sess.start.IsZero() {
		sess.start = d.srv.now()
	}
	d.mu.Unlock()
	if !ok {
		writeError(w, store.ErrNotFound)
		return
	}

	res, err := d.srv.submit(r.Context(), sess.game, req.Guess, "daily", userFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if res.State.Terminal() && d.srv.db != nil {
		err := d.srv.db.InsertDailyResult(r.Context(), solved.DailyResult{
			UserID:    uid,
			Date:      sess.date,
			WordIndex: sess.wordIndex,
			Guesses:   res.Turn,
			Solved:    res.State == game.StateSolved,
			ElapsedMs: int(d.srv.now().Sub(sess.start).Milliseconds()),
		})
		if err != nil {
			metrics.PersistErrors.WithLabelValues("daily").Inc()
			log.Warn().Err(err).Str("user", uid).Str("date", sess.date).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// handleLeaderboard returns the top 20 results for ?date= (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date, err := daily.ParseDateKey(r.URL.Query().Get("date"), d.srv.now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_date"})
		return
	}
	rows := []solved.LBRow{}
	if d.srv.db != nil {
		if rows, err = d.srv.db.Leaderboard(r.Context(), date, limitParam(r, 20)); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "rows": rows})
}
