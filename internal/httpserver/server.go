// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words",
//     GET /solved and POST /solved (track a word solved elsewhere).
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Solver endpoints: POST /solver/new|apply|reset, GET /solver/{id}/candidates.
//   - Stateless endpoints: POST /score, POST /filter.
//   - Daily puzzle endpoints: mounted under /daily (routes_daily.go).
//
// Notes:
//   - Each game owns one *game.Session and each solver one *solver.Pruner;
//     pruners share the catalog's immutable universes.
//   - Optional auth decorates requests with a user when a valid JWT is
//     present; every route still works for guests.
//   - Solved games are persisted best-effort; failures are logged, never
//     returned to the player.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solved"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

const defaultCandidateLimit = 50

// Server bundles router, catalog, per-player stores and the solved-word DB.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	catalog *words.Catalog
	games   store.Store[*game.Session]
	solvers store.Store[*solver.Pruner]
	db      *solved.Store
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, cat *words.Catalog, db *solved.Store) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		catalog: cat,
		games:   store.NewMemoryStore[*game.Session](cfg.MaxSessions),
		solvers: store.NewMemoryStore[*solver.Pruner](cfg.MaxSessions),
		db:      db,
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS
	s.r.Use(s.withOptionalAuth)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-solver",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "POST /solver/new", "POST /solver/apply", "POST /score", "POST /filter", "/daily/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.catalog.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g, "wordLength": s.catalog.WordLength()})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// --- games ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/game/{id}", s.handleGetGame)

	// --- solvers ---
	s.r.Route("/solver", func(r chi.Router) {
		r.Post("/new", s.handleNewSolver)
		r.Post("/apply", s.handleApply)
		r.Post("/reset", s.handleReset)
		r.Get("/{id}/candidates", s.handleCandidates)
	})

	// --- stateless ---
	s.r.Post("/score", s.handleScore)
	s.r.Post("/filter", s.handleFilter)
	s.r.Get("/solved", s.handleSolvedWords)
	s.r.Post("/solved", s.handleTrackSolved)

	s.mountDaily(s.r)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors to HTTP status codes and a stable code.
func writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrSessionOver):
		status, code = http.StatusConflict, "session_over"
	case errors.Is(err, game.ErrInvalidLength):
		status, code = http.StatusBadRequest, "invalid_length"
	case errors.Is(err, game.ErrNotAlphabetic):
		status, code = http.StatusBadRequest, "not_alphabetic"
	case errors.Is(err, game.ErrNotInWordList):
		status, code = http.StatusBadRequest, "not_in_word_list"
	case errors.Is(err, game.ErrInvalidFeedbackChar):
		status, code = http.StatusBadRequest, "invalid_feedback_char"
	case errors.Is(err, game.ErrLengthMismatch):
		status, code = http.StatusBadRequest, "length_mismatch"
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": code, "detail": err.Error()})
}

// decodeOptional decodes a JSON body; an empty body leaves v untouched.
func decodeOptional(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func badJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
}

// limitParam reads ?limit=, defaulting to defaultCandidateLimit.
func limitParam(r *http.Request, fallback int) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func wordStrings(ws []game.Word, limit int) []string {
	if limit > 0 && len(ws) > limit {
		ws = ws[:limit]
	}
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

// sessionOptions applies the configured turn limit and dictionary policy.
func (s *Server) sessionOptions(extra ...game.Option) []game.Option {
	opts := []game.Option{game.WithMaxTurns(s.cfg.MaxTurns)}
	if s.cfg.StrictGuesses {
		opts = append(opts, game.WithDictionary(s.catalog))
	}
	return append(opts, extra...)
}

// recordSolved persists a solved game (best effort).
func (s *Server) recordSolved(ctx context.Context, word game.Word, guesses int, user, mode string) {
	if s.db == nil {
		return
	}
	err := s.db.RecordSolved(ctx, solved.Solve{
		Word:    word.String(),
		UserID:  user,
		Mode:    mode,
		Guesses: guesses,
	})
	if err != nil {
		metrics.PersistErrors.WithLabelValues("solved").Inc()
		log.Warn().Err(err).Str("word", word.String()).Str("mode", mode).Msg("record solved word")
	}
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID     string `json:"gameId"`
	WordLength int    `json:"wordLength"`
	MaxTurns   int    `json:"maxTurns"`
}

// handleNewGame creates a new in-memory session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeOptional(r, &req); err != nil {
		badJSON(w)
		return
	}

	answer := s.catalog.RandomSolution()
	if req.Answer != "" {
		a, err := game.ParseWord(req.Answer, s.catalog.WordLength())
		if err != nil {
			writeError(w, err)
			return
		}
		if !s.catalog.IsAllowed(a) {
			writeError(w, game.ErrNotInWordList)
			return
		}
		answer = a
	}

	g := game.NewSession(answer, s.sessionOptions()...)
	if err := s.games.Save(r.Context(), g.ID(), g); err != nil {
		writeError(w, err)
		return
	}
	metrics.Sessions.WithLabelValues("game").Inc()
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID(), WordLength: g.WordLength(), MaxTurns: g.MaxTurns()})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks    game.Feedback `json:"marks"`
	Code     string        `json:"code"`
	State    game.State    `json:"state"`
	Turn     int           `json:"turn"`
	Solution string        `json:"solution,omitempty"`
}

// handleGuess submits a guess and persists the solved word on a win.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	g, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.submit(r.Context(), g, req.Guess, "game", userFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// submit runs one guess through a session and handles the side effects of
// the resulting transition.
func (s *Server) submit(ctx context.Context, g *game.Session, raw, mode, user string) (guessRes, error) {
	out, err := g.Submit(raw)
	if err != nil {
		metrics.ObserveGuess(mode, "rejected")
		return guessRes{}, err
	}
	metrics.ObserveGuess(mode, out.State.String())

	res := guessRes{Marks: out.Feedback, Code: out.Feedback.String(), State: out.State, Turn: out.Turn}
	if out.State.Terminal() {
		res.Solution = g.Solution().String()
		log.Info().Str("gameId", g.ID()).Str("mode", mode).Str("state", out.State.String()).Int("turns", res.Turn).Msg("game finished")
	}
	if out.State == game.StateSolved {
		s.recordSolved(ctx, g.Solution(), out.Turn, user, mode)
	}
	return res, nil
}

// handleGetGame returns a snapshot; the solution is revealed once over.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// ------------------------------ SOLVER -------------------------------------

type newSolverReq struct {
	Pool string `json:"pool"` // "solutions" (default) | "allowed"
}
type solverRes struct {
	SolverID   string   `json:"solverId"`
	Count      int      `json:"count"`
	Candidates []string `json:"candidates,omitempty"`
}

// handleNewSolver allocates a pruner over the chosen catalog pool.
func (s *Server) handleNewSolver(w http.ResponseWriter, r *http.Request) {
	var req newSolverReq
	if err := decodeOptional(r, &req); err != nil {
		badJSON(w)
		return
	}
	u := s.catalog.Solutions()
	switch req.Pool {
	case "", "solutions":
	case "allowed":
		u = s.catalog.Allowed()
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_pool"})
		return
	}
	p := u.NewPruner()
	id := genID()
	if err := s.solvers.Save(r.Context(), id, p); err != nil {
		writeError(w, err)
		return
	}
	metrics.Sessions.WithLabelValues("solver").Inc()
	writeJSON(w, http.StatusOK, solverRes{SolverID: id, Count: p.Len()})
}

type applyReq struct {
	SolverID string `json:"solverId"`
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"` // X/Y/G or 0/1/2
	Limit    int    `json:"limit"`
}

// handleApply narrows a solver's candidates with one guess + feedback.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	p, err := s.solvers.Get(r.Context(), req.SolverID)
	if err != nil {
		writeError(w, err)
		return
	}
	guess, err := game.ParseWord(req.Guess, s.catalog.WordLength())
	if err != nil {
		writeError(w, err)
		return
	}
	fb, err := game.ParseFeedback(req.Feedback, guess.Len())
	if err != nil {
		writeError(w, err)
		return
	}
	cands, err := p.Apply(guess, fb)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.Candidates.Observe(float64(len(cands)))
	limit := req.Limit
	if limit <= 0 {
		limit = defaultCandidateLimit
	}
	writeJSON(w, http.StatusOK, solverRes{SolverID: req.SolverID, Count: len(cands), Candidates: wordStrings(cands, limit)})
}

type resetReq struct {
	SolverID string `json:"solverId"`
}

// handleReset restores a solver's full candidate set.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	p, err := s.solvers.Get(r.Context(), req.SolverID)
	if err != nil {
		writeError(w, err)
		return
	}
	p.Reset()
	writeJSON(w, http.StatusOK, solverRes{SolverID: req.SolverID, Count: p.Len()})
}

// handleCandidates lists a solver's current candidates (sorted).
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.solvers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	cands := p.Candidates()
	writeJSON(w, http.StatusOK, solverRes{SolverID: id, Count: len(cands), Candidates: wordStrings(cands, limitParam(r, defaultCandidateLimit))})
}

// ---------------------------- STATELESS ------------------------------------

type scoreReq struct {
	Guess    string `json:"guess"`
	Solution string `json:"solution"`
}
type scoreRes struct {
	Marks   game.Feedback `json:"marks"`
	Code    string        `json:"code"`
	Numeric string        `json:"numeric"`
}

// handleScore runs the feedback engine on an arbitrary pair.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	guess, err := game.ParseWord(req.Guess, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	sol, err := game.ParseWord(req.Solution, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	fb, err := game.Generate(guess, sol)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreRes{Marks: fb, Code: fb.String(), Numeric: fb.Numeric()})
}

type filterReq struct {
	Guesses  []string `json:"guesses"`
	Feedback []string `json:"feedback"`
	Pool     string   `json:"pool"`
	Limit    int      `json:"limit"`
}

// handleFilter prunes a fresh candidate set with a whole guess history.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	if len(req.Guesses) != len(req.Feedback) {
		writeError(w, game.ErrLengthMismatch)
		return
	}
	u := s.catalog.Solutions()
	if req.Pool == "allowed" {
		u = s.catalog.Allowed()
	}
	p := u.NewPruner()
	cands := p.Candidates()
	for i := range req.Guesses {
		guess, err := game.ParseWord(req.Guesses[i], s.catalog.WordLength())
		if err != nil {
			writeError(w, err)
			return
		}
		fb, err := game.ParseFeedback(req.Feedback[i], guess.Len())
		if err != nil {
			writeError(w, err)
			return
		}
		if cands, err = p.Apply(guess, fb); err != nil {
			writeError(w, err)
			return
		}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultCandidateLimit
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(cands), "candidates": wordStrings(cands, limit)})
}

// handleSolvedWords lists every word solved so far.
func (s *Server) handleSolvedWords(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusOK, map[string]any{"words": []string{}})
		return
	}
	ws, err := s.db.Words(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": ws})
}

type trackReq struct {
	Word    string `json:"word"`
	Guesses int    `json:"guesses"` // optional
}

// handleTrackSolved records a word solved outside a hosted session, e.g. a
// puzzle narrowed down with /filter.
func (s *Server) handleTrackSolved(w http.ResponseWriter, r *http.Request) {
	var req trackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w)
		return
	}
	word, err := game.ParseWord(req.Word, s.catalog.WordLength())
	if err != nil {
		writeError(w, err)
		return
	}
	if !s.catalog.IsAllowed(word) {
		writeError(w, game.ErrNotInWordList)
		return
	}
	if s.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "persistence_disabled"})
		return
	}
	err = s.db.RecordSolved(r.Context(), solved.Solve{Word: word.String(), UserID: userFrom(r), Mode: "helper", Guesses: req.Guesses})
	if err != nil {
		metrics.PersistErrors.WithLabelValues("solved").Inc()
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"word": word.String(), "tracked": true})
}

// --------------------------- optional auth ---------------------------------

// ctxUserKey is the context key type for storing authUser.
type ctxUserKey struct{}

// authUser is placed into request context by withOptionalAuth.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// withOptionalAuth decorates requests with user context if a valid HS256
// JWT is present (id or sub claim). It never 401s.
func (s *Server) withOptionalAuth(next http.Handler) http.Handler {
	secret := []byte(s.cfg.Secret())
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := bearerOrCookie(r); tok != "" {
			claims := jwt.MapClaims{}
			t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err == nil && t.Valid {
				id, _ := claims["id"].(string)
				if id == "" {
					id, _ = claims["sub"].(string)
				}
				username, _ := claims["username"].(string)
				if id != "" {
					ctx := context.WithValue(r.Context(), ctxUserKey{}, &authUser{ID: id, Username: username})
					r = r.WithContext(ctx)
				}
			} else {
				log.Debug().Err(err).Msg("ignoring invalid token")
			}
		}
		next.ServeHTTP(w, r)
	})
}

// userFrom returns the authenticated user ID or "".
func userFrom(r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return ""
}

const (
	authCookieName = "wordle_token"
	anonCookieName = "wordle_anon"
)

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(authCookieName); err == nil {
		return c.Value
	}
	return ""
}

// ensureAnonID returns an existing anon cookie or sets a new one.
// Used to give guests a stable identity for the daily puzzle.
func ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
